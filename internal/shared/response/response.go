package response

import (
	"github.com/gin-gonic/gin"
)

// BatchMeta summarises an order-preserving batch response.
type BatchMeta struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

func NewBatchMeta(total, failed int) BatchMeta {
	return BatchMeta{
		Total:     total,
		Succeeded: total - failed,
		Failed:    failed,
	}
}

type ApiEnvelope struct {
	Ok    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Meta  *BatchMeta `json:"meta,omitempty"`
	Error any        `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *BatchMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:    true,
		Data:  data,
		Meta:  meta,
		Error: nil,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok:   false,
		Data: nil,
		Meta: nil,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

// Attachment writes a downloadable file (CSV results, PDF payslips).
func Attachment(c *gin.Context, status int, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(status, contentType, data)
}
