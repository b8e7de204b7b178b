package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"go-paye/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAppError_WithReason(t *testing.T) {
	base := apperror.New(apperror.CodeInvalidInput, "invalid date range", http.StatusBadRequest)

	err := base.WithReason("start_date %s is after end_date %s", "2024-03-10", "2024-03-01")

	assert.ErrorIs(t, err, base)
	assert.Equal(t, "invalid date range: start_date 2024-03-10 is after end_date 2024-03-01", err.Error())
	assert.Equal(t, base.Code, err.Code)
	assert.Equal(t, base.HTTPStatus, err.HTTPStatus)
}

func TestToHTTP(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		err := fmt.Errorf("row 3: %w", apperror.ErrInvalidInput)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, apperror.CodeInvalidInput, httpErr.Code)
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "boom")
	})
}

func TestMapValidationError(t *testing.T) {
	type req struct {
		StartDate string `json:"start_date" validate:"required"`
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	err := v.Struct(req{})

	mapped := apperror.MapValidationError(err)

	var appErr *apperror.AppError
	assert.True(t, errors.As(mapped, &appErr))
	assert.Equal(t, "Start Date is required", appErr.Message)
}

func TestInit_DecimalFields(t *testing.T) {
	apperror.Init()

	type req struct {
		AnnualGrossPay decimal.Decimal `json:"annual_gross_pay" binding:"gte=0"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(req{AnnualGrossPay: decimal.NewFromInt(1200000)}))
	assert.NoError(t, binding.Validator.ValidateStruct(req{}))

	err := binding.Validator.ValidateStruct(req{AnnualGrossPay: decimal.NewFromInt(-1)})
	mapped := apperror.MapValidationError(err)

	var appErr *apperror.AppError
	assert.True(t, errors.As(mapped, &appErr))
	assert.Equal(t, "Annual Gross Pay is invalid", appErr.Message)
}
