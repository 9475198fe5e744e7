package models

import (
	"net/mail"
	"strings"

	"github.com/scriptvault/backend/pkg/response"
)

// Field-level constraints, enforced before any store call.
const (
	MaxNameLen        = 100
	MaxDescriptionLen = 500
	MaxTranscriptLen  = 10000
	MinPasswordLen    = 6
)

func containsValue(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// ValidateRegistration checks the fields of a registration request.
func ValidateRegistration(name, email, password string) *response.AppError {
	var fields []string
	if strings.TrimSpace(name) == "" || len(name) > MaxNameLen {
		fields = append(fields, "name")
	}
	if email == "" || !validEmail(email) {
		fields = append(fields, "email")
	}
	if len(password) < MinPasswordLen {
		fields = append(fields, "password")
	}
	if len(fields) > 0 {
		return response.NewValidation("Please provide name, email, and password", fields...)
	}
	return nil
}

// ValidateProfile checks profile update fields using the same constraints
// as registration.
func ValidateProfile(name, email string) *response.AppError {
	var fields []string
	if strings.TrimSpace(name) == "" || len(name) > MaxNameLen {
		fields = append(fields, "name")
	}
	if email == "" || !validEmail(email) {
		fields = append(fields, "email")
	}
	if len(fields) > 0 {
		return response.NewValidation("Please provide a valid name and email", fields...)
	}
	return nil
}

// ValidateProject checks project fields. Status is only validated when set.
func ValidateProject(name, description, status string) *response.AppError {
	var fields []string
	if strings.TrimSpace(name) == "" || len(name) > MaxNameLen {
		fields = append(fields, "name")
	}
	if len(description) > MaxDescriptionLen {
		fields = append(fields, "description")
	}
	if status != "" && !containsValue(ProjectStatuses, status) {
		fields = append(fields, "status")
	}
	if len(fields) > 0 {
		return response.NewValidation("Invalid project fields", fields...)
	}
	return nil
}

// ValidateScript checks the fields of a script create request.
func ValidateScript(name, platform, transcript string, projectID uint) *response.AppError {
	var fields []string
	if strings.TrimSpace(name) == "" || len(name) > MaxNameLen {
		fields = append(fields, "name")
	}
	if platform == "" || !containsValue(ScriptPlatforms, platform) {
		fields = append(fields, "platform")
	}
	if transcript == "" || len(transcript) > MaxTranscriptLen {
		fields = append(fields, "transcript")
	}
	if projectID == 0 {
		fields = append(fields, "project")
	}
	if len(fields) > 0 {
		return response.NewValidation("Name, platform, transcript, and project are required", fields...)
	}
	return nil
}

// ValidateScriptUpdate checks only the fields supplied in a partial update.
func ValidateScriptUpdate(name, platform, transcript, status *string) *response.AppError {
	var fields []string
	if name != nil && (strings.TrimSpace(*name) == "" || len(*name) > MaxNameLen) {
		fields = append(fields, "name")
	}
	if platform != nil && !containsValue(ScriptPlatforms, *platform) {
		fields = append(fields, "platform")
	}
	if transcript != nil && (*transcript == "" || len(*transcript) > MaxTranscriptLen) {
		fields = append(fields, "transcript")
	}
	if status != nil && !containsValue(ScriptStatuses, *status) {
		fields = append(fields, "status")
	}
	if len(fields) > 0 {
		return response.NewValidation("Invalid script fields", fields...)
	}
	return nil
}
