package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/scriptvault/backend/internal/middleware"
	"github.com/scriptvault/backend/internal/services"
	"github.com/scriptvault/backend/pkg/response"
	"gorm.io/gorm"
)

type ScriptHandler struct {
	scriptService *services.ScriptService
}

func NewScriptHandler(db *gorm.DB) *ScriptHandler {
	return &ScriptHandler{
		scriptService: services.NewScriptService(db),
	}
}

// List returns all of the caller's scripts, paginated
// GET /api/scripts
func (h *ScriptHandler) List(c *gin.Context) {
	var req services.ScriptListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	resp, err := h.scriptService.List(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, resp.Items, resp.Pagination)
}

// ListByProject returns the scripts of one project, paginated
// GET /api/scripts/project/:projectId
func (h *ScriptHandler) ListByProject(c *gin.Context) {
	projectID, ok := parseID(c, "projectId")
	if !ok {
		return
	}

	var req services.ScriptListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	req.ProjectID = projectID

	resp, err := h.scriptService.List(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, resp.Items, resp.Pagination)
}

// GetByID returns a single script
// GET /api/scripts/:id
func (h *ScriptHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	script, err := h.scriptService.GetByID(middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "", script)
}

// Create creates a new script under one of the caller's projects
// POST /api/scripts
func (h *ScriptHandler) Create(c *gin.Context) {
	var req services.CreateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	script, err := h.scriptService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Script created successfully", script)
}

// Update updates a script, incrementing its version
// PUT /api/scripts/:id
func (h *ScriptHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	script, err := h.scriptService.Update(middleware.GetUserID(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "Script updated successfully", script)
}

// Delete deletes a script
// DELETE /api/scripts/:id
func (h *ScriptHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.scriptService.Delete(middleware.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "Script deleted successfully", nil)
}
