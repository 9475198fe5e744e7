package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/scriptvault/backend/internal/services"
	"github.com/scriptvault/backend/pkg/response"
	"gorm.io/gorm"
)

type SystemLogHandler struct {
	logService *services.SystemLogService
}

func NewSystemLogHandler(db *gorm.DB) *SystemLogHandler {
	return &SystemLogHandler{
		logService: services.NewSystemLogService(db),
	}
}

// List returns audit log entries, newest first
// GET /api/system-logs
func (h *SystemLogHandler) List(c *gin.Context) {
	var req services.SystemLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	resp, err := h.logService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, resp.Items, response.Pagination{
		Page:  resp.Page,
		Limit: resp.Limit,
		Total: resp.Total,
		Pages: int((resp.Total + int64(resp.Limit) - 1) / int64(resp.Limit)),
	})
}
