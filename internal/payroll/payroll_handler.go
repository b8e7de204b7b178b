package payroll

import (
	"encoding/json"
	"net/http"
	"time"

	payrollerrors "go-paye/internal/payroll/errors"
	"go-paye/internal/shared/apperror"
	"go-paye/internal/shared/contextutil"
	"go-paye/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	contentTypeCSV = "text/csv; charset=utf-8"
	contentTypePDF = "application/pdf"
	idempotencyTTL = 24 * time.Hour
)

type Handler struct {
	service Service
	rdb     *redis.Client
	now     func() time.Time
	logger  *zap.Logger
}

// NewHandler also runs apperror.Init: the request DTOs carry decimal
// binding tags that gin's validator cannot evaluate without it.
func NewHandler(service Service) *Handler {
	apperror.Init()
	return &Handler{service: service, now: time.Now, logger: zap.L().Named("payroll.handler")}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	h := NewHandler(service)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.writeServiceError(c, apperror.MapValidationError(err))
}

func (h *Handler) Calculate(c *gin.Context) {
	var req CalculatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Calculate(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CalculateBatch(c *gin.Context) {
	lockKey := c.GetString("idempotency_lock_key")
	cacheKey := c.GetString("idempotency_cache_key")

	if h.rdb != nil && lockKey != "" {
		defer h.rdb.Del(c.Request.Context(), lockKey)
	}

	var req BatchCalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.CalculateBatch(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewBatchMeta(resp.Total, resp.Failed)
	envelope := response.ApiEnvelope{Ok: true, Data: resp, Meta: &meta}

	if h.rdb != nil && cacheKey != "" {
		if payload, marshalErr := json.Marshal(envelope); marshalErr == nil {
			if err := h.rdb.Set(c.Request.Context(), cacheKey, payload, idempotencyTTL).Err(); err != nil {
				contextutil.GetLogger(c.Request.Context(), h.logger).Warn("failed to cache batch response", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, envelope)
}

// Import takes a multipart "file" upload. ?format=csv answers with the
// results file instead of JSON.
func (h *Handler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, apperror.RequiredField("file"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer file.Close()

	batch, err := h.service.ProcessCSV(c.Request.Context(), file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		data, err := batch.CSV()
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Attachment(c, http.StatusOK, contentTypeCSV, "payroll_results_"+h.now().Format("20060102_150405")+".csv", data)
		return
	}

	resp := batch.Response()
	meta := response.NewBatchMeta(resp.Total, resp.Failed)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) Template(c *gin.Context) {
	data, err := h.service.Template(h.now())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Attachment(c, http.StatusOK, contentTypeCSV, "payroll_template.csv", data)
}

func (h *Handler) Payslip(c *gin.Context) {
	var req PayslipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	file, err := h.service.Payslip(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if len(file.Content) == 0 {
		h.writeServiceError(c, payrollerrors.ErrInvalidInput.WithReason("payslip is empty"))
		return
	}

	response.Attachment(c, http.StatusOK, contentTypePDF, file.FileName, file.Content)
}
