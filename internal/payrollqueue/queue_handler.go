package payrollqueue

import (
	"net/http"

	"go-paye/internal/payroll"
	"go-paye/internal/shared/apperror"
	"go-paye/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	apperror.Init()
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Enqueue accepts the same body as /payrolls/calculate/batch and answers
// 202 with the batch id; the outcome arrives on the result topic.
func (h *Handler) Enqueue(c *gin.Context) {
	var req payroll.BatchCalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Enqueue(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, resp, nil)
}
