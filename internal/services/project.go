package services

import (
	"errors"
	"time"

	"github.com/scriptvault/backend/internal/models"
	"github.com/scriptvault/backend/pkg/response"
	"gorm.io/gorm"
)

// ProjectService implements owner-scoped project operations. Every query it
// issues carries an owner_id filter, so a project belonging to another user
// behaves exactly like a missing one.
type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectListRequest struct {
	Status string `form:"status"`
	Search string `form:"search"`
}

type ProjectListResponse struct {
	Total int64            `json:"total"`
	Items []models.Project `json:"items"`
}

type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
}

type UpdateProjectRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
}

// ownedByCaller scopes a project lookup to the calling user.
func (s *ProjectService) ownedByCaller(ownerID, projectID uint) (*models.Project, error) {
	var project models.Project
	err := s.db.Where("id = ? AND owner_id = ?", projectID, ownerID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("Project not found")
		}
		return nil, err
	}
	return &project, nil
}

// List returns the caller's projects, newest activity first, with the total
// count matching the filter.
func (s *ProjectService) List(ownerID uint, req *ProjectListRequest) (*ProjectListResponse, error) {
	query := s.db.Model(&models.Project{}).Where("owner_id = ?", ownerID)

	if req.Status != "" {
		if err := validateStatus(req.Status, models.ProjectStatuses); err != nil {
			return nil, err
		}
		query = query.Where("status = ?", req.Status)
	}
	if req.Search != "" {
		query = query.Where("LOWER(name) LIKE ?"+likeEscape, likePattern(req.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var projects []models.Project
	if err := query.Order("last_updated DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	return &ProjectListResponse{Total: total, Items: projects}, nil
}

// GetByID returns a single project owned by the caller.
func (s *ProjectService) GetByID(ownerID, projectID uint) (*models.Project, error) {
	return s.ownedByCaller(ownerID, projectID)
}

// Create creates a project. The owner is always the verified caller; any
// owner value supplied by the client is ignored.
func (s *ProjectService) Create(ownerID uint, req *CreateProjectRequest) (*models.Project, error) {
	if err := models.ValidateProject(req.Name, req.Description, req.Status); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusActive
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
		Status:      status,
		Tags:        req.Tags,
		LastUpdated: time.Now(),
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// Update overwrites the supplied fields. Owner and id are immutable.
func (s *ProjectService) Update(ownerID, projectID uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.ownedByCaller(ownerID, projectID)
	if err != nil {
		return nil, err
	}

	name := project.Name
	description := project.Description
	status := project.Status
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Status != nil {
		status = *req.Status
	}
	if err := models.ValidateProject(name, description, status); err != nil {
		return nil, err
	}

	project.Name = name
	project.Description = description
	project.Status = status
	if req.Tags != nil {
		project.Tags = *req.Tags
	}
	project.LastUpdated = time.Now()

	if err := s.db.Save(project).Error; err != nil {
		return nil, err
	}

	return project, nil
}

// Delete removes a project and all scripts referencing it. Children are
// deleted first, then the parent, inside one transaction.
func (s *ProjectService) Delete(ownerID, projectID uint) error {
	project, err := s.ownedByCaller(ownerID, projectID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Script{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, project.ID).Error
	})
}
