package services

import (
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/scriptvault/backend/internal/models"
	"github.com/scriptvault/backend/pkg/logger"
	"gorm.io/gorm"
)

var globalLogDB *gorm.DB

// InitSystemLogger wires the audit log writer to the database. Called once
// at startup.
func InitSystemLogger(db *gorm.DB) {
	globalLogDB = db
}

func LogInfo(module, action, message string, userID *uint, ip, userAgent string, extra interface{}) {
	writeLog("info", module, action, message, userID, ip, userAgent, extra)
}

func LogWarning(module, action, message string, userID *uint, ip, userAgent string, extra interface{}) {
	writeLog("warning", module, action, message, userID, ip, userAgent, extra)
}

func LogError(module, action, message string, userID *uint, ip, userAgent string, extra interface{}) {
	writeLog("error", module, action, message, userID, ip, userAgent, extra)
}

func writeLog(level, module, action, message string, userID *uint, ip, userAgent string, extra interface{}) {
	if globalLogDB == nil {
		return
	}

	var extraStr string
	if extra != nil {
		if b, err := json.Marshal(extra); err == nil {
			extraStr = string(b)
		}
	}

	entry := &models.SystemLog{
		Level:     level,
		Module:    module,
		Action:    action,
		Message:   message,
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
		Extra:     extraStr,
		CreatedAt: time.Now(),
	}
	globalLogDB.Create(entry)
}

type SystemLogService struct {
	db *gorm.DB
}

func NewSystemLogService(db *gorm.DB) *SystemLogService {
	return &SystemLogService{db: db}
}

type SystemLogListRequest struct {
	Level  string `form:"level"`
	Module string `form:"module"`
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type SystemLogListResponse struct {
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Items []models.SystemLog `json:"items"`
}

func (s *SystemLogService) List(req *SystemLogListRequest) (*SystemLogListResponse, error) {
	page := req.Page
	limit := req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	query := s.db.Model(&models.SystemLog{})
	if req.Level != "" {
		query = query.Where("level = ?", req.Level)
	}
	if req.Module != "" {
		query = query.Where("module = ?", req.Module)
	}
	if req.Search != "" {
		query = query.Where("LOWER(message) LIKE ?"+likeEscape, likePattern(req.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var logs []models.SystemLog
	err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return &SystemLogListResponse{Total: total, Page: page, Limit: limit, Items: logs}, nil
}

// Cleanup removes log rows older than the retention window.
func (s *SystemLogService) Cleanup(retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

var cleanupCron *cron.Cron

// StartLogCleanupScheduler prunes expired system log rows once a day.
func StartLogCleanupScheduler(db *gorm.DB, retentionDays int) {
	svc := NewSystemLogService(db)

	cleanupCron = cron.New()
	cleanupCron.AddFunc("0 3 * * *", func() {
		removed, err := svc.Cleanup(retentionDays)
		if err != nil {
			logger.Error().Err(err).Msg("system log cleanup failed")
			return
		}
		if removed > 0 {
			logger.Info().Int64("removed", removed).Msg("system log cleanup done")
		}
	})
	cleanupCron.Start()
}

// StopLogCleanupScheduler stops the cleanup scheduler.
func StopLogCleanupScheduler() {
	if cleanupCron != nil {
		cleanupCron.Stop()
	}
}
