package services

import (
	"errors"
	"time"

	"github.com/scriptvault/backend/internal/models"
	"github.com/scriptvault/backend/pkg/response"
	"gorm.io/gorm"
)

// ScriptService implements owner-scoped script operations and keeps the
// parent project's derived fields (scripts_count, last_updated) in sync
// after every mutation.
type ScriptService struct {
	db *gorm.DB
}

func NewScriptService(db *gorm.DB) *ScriptService {
	return &ScriptService{db: db}
}

type ScriptListRequest struct {
	ProjectID uint   `form:"-"`
	Platform  string `form:"platform"`
	Status    string `form:"status"`
	Search    string `form:"search"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type ScriptListResponse struct {
	Items      []models.Script     `json:"items"`
	Pagination response.Pagination `json:"pagination"`
}

type CreateScriptRequest struct {
	Name       string   `json:"name"`
	Platform   string   `json:"platform"`
	Transcript string   `json:"transcript"`
	ProjectID  uint     `json:"project"`
	Tags       []string `json:"tags"`
}

type UpdateScriptRequest struct {
	Name       *string   `json:"name"`
	Platform   *string   `json:"platform"`
	Transcript *string   `json:"transcript"`
	Status     *string   `json:"status"`
	Tags       *[]string `json:"tags"`
}

func (s *ScriptService) ownedByCaller(ownerID, scriptID uint) (*models.Script, error) {
	var script models.Script
	err := s.db.Where("id = ? AND owner_id = ?", scriptID, ownerID).First(&script).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Script not found")
		}
		return nil, err
	}
	return &script, nil
}

// verifyProjectOwnership confirms the project exists and belongs to the
// caller before any script operation references it.
func (s *ScriptService) verifyProjectOwnership(ownerID, projectID uint) error {
	var count int64
	err := s.db.Model(&models.Project{}).
		Where("id = ? AND owner_id = ?", projectID, ownerID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return response.NewNotFound("Project not found")
	}
	return nil
}

// refreshProjectStats recomputes the derived scripts_count from the live
// child rows and bumps the project's last_updated.
func (s *ScriptService) refreshProjectStats(projectID uint) error {
	var count int64
	if err := s.db.Model(&models.Script{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		return err
	}
	return s.db.Model(&models.Project{}).Where("id = ?", projectID).Updates(map[string]interface{}{
		"scripts_count": count,
		"last_updated":  time.Now(),
	}).Error
}

// List returns the caller's scripts, newest activity first. When ProjectID
// is set, project ownership is verified first and results are limited to
// that project. Search matches name or transcript as a literal substring,
// case-insensitively.
func (s *ScriptService) List(ownerID uint, req *ScriptListRequest) (*ScriptListResponse, error) {
	if req.ProjectID != 0 {
		if err := s.verifyProjectOwnership(ownerID, req.ProjectID); err != nil {
			return nil, err
		}
	}
	if req.Platform != "" {
		if err := validatePlatform(req.Platform); err != nil {
			return nil, err
		}
	}
	if req.Status != "" {
		if err := validateStatus(req.Status, models.ScriptStatuses); err != nil {
			return nil, err
		}
	}

	page := req.Page
	limit := req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	query := s.db.Model(&models.Script{}).Where("owner_id = ?", ownerID)
	if req.ProjectID != 0 {
		query = query.Where("project_id = ?", req.ProjectID)
	}
	if req.Platform != "" {
		query = query.Where("platform = ?", req.Platform)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Search != "" {
		pattern := likePattern(req.Search)
		query = query.Where(
			"LOWER(name) LIKE ?"+likeEscape+" OR LOWER(transcript) LIKE ?"+likeEscape,
			pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var scripts []models.Script
	offset := (page - 1) * limit
	err := query.Order("last_updated DESC, id DESC").Offset(offset).Limit(limit).Find(&scripts).Error
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &ScriptListResponse{
		Items: scripts,
		Pagination: response.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// GetByID returns a single script owned by the caller.
func (s *ScriptService) GetByID(ownerID, scriptID uint) (*models.Script, error) {
	return s.ownedByCaller(ownerID, scriptID)
}

// Create creates a script under one of the caller's projects. The owner is
// always the verified caller, version starts at 1, and the creation-time
// display fields are computed once. The parent project's derived fields are
// refreshed before returning.
func (s *ScriptService) Create(ownerID uint, req *CreateScriptRequest) (*models.Script, error) {
	if err := models.ValidateScript(req.Name, req.Platform, req.Transcript, req.ProjectID); err != nil {
		return nil, err
	}
	if err := s.verifyProjectOwnership(ownerID, req.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	script := models.Script{
		Name:        req.Name,
		Platform:    req.Platform,
		Transcript:  req.Transcript,
		ProjectID:   req.ProjectID,
		OwnerID:     ownerID,
		Version:     1,
		Status:      models.ScriptStatusDraft,
		Tags:        req.Tags,
		LastUpdated: now,
		UploadDate:  now.Format("02 Jan 06"),
		UploadTime:  now.Format("15:04"),
	}
	if err := s.db.Create(&script).Error; err != nil {
		return nil, err
	}

	if err := s.refreshProjectStats(script.ProjectID); err != nil {
		return nil, err
	}

	return &script, nil
}

// Update overwrites the supplied fields and increments version by exactly
// one, whether or not any content field actually changed.
func (s *ScriptService) Update(ownerID, scriptID uint, req *UpdateScriptRequest) (*models.Script, error) {
	if err := models.ValidateScriptUpdate(req.Name, req.Platform, req.Transcript, req.Status); err != nil {
		return nil, err
	}

	script, err := s.ownedByCaller(ownerID, scriptID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"version":      gorm.Expr("version + 1"),
		"last_updated": time.Now(),
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Platform != nil {
		updates["platform"] = *req.Platform
	}
	if req.Transcript != nil {
		updates["transcript"] = *req.Transcript
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if err := s.db.Model(script).Updates(updates).Error; err != nil {
		return nil, err
	}
	if req.Tags != nil {
		script.Tags = *req.Tags
		if err := s.db.Model(script).Update("tags", script.Tags).Error; err != nil {
			return nil, err
		}
	}

	if err := s.refreshProjectStats(script.ProjectID); err != nil {
		return nil, err
	}

	// Reload so the returned document reflects the applied increment.
	return s.ownedByCaller(ownerID, scriptID)
}

// Delete removes a script and refreshes the parent project's derived fields.
func (s *ScriptService) Delete(ownerID, scriptID uint) error {
	script, err := s.ownedByCaller(ownerID, scriptID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.Script{}, script.ID).Error; err != nil {
		return err
	}

	return s.refreshProjectStats(script.ProjectID)
}
