package middleware

import (
	"errors"
	"fmt"
	"strings"

	"go-paye/internal/shared/apperror"
	"go-paye/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errTokenNotFound = apperror.ErrUnauthorized.WithReason("token not found")
	errInvalidToken  = apperror.ErrUnauthorized.WithReason("invalid token")
	errTokenExpired  = apperror.ErrUnauthorized.WithReason("token expired")
	errMissingUserID = apperror.ErrUnauthorized.WithReason("user id not found in token")
)

// AuthMiddleware validates an HS256 bearer token (or access_token cookie)
// and puts user_id and role into the gin context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, errTokenNotFound)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return secret, nil
		})

		if err != nil || !token.Valid {
			errObj := errInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = errTokenExpired
			}
			abortWith(c, errObj)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, errInvalidToken)
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			userID, _ = claims["sub"].(string)
		}
		if userID == "" {
			abortWith(c, errMissingUserID)
			return
		}

		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("role", role)

		c.Next()
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}
