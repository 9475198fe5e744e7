package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Response is the unified API response format.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Total      *int64      `json:"total,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes a paginated listing. Pages is ceil(Total/Limit).
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// AppError represents a structured application error with HTTP status.
// Fields lists the input fields that failed validation, when applicable.
type AppError struct {
	HTTPStatus int
	Message    string
	Fields     []string
}

func (e *AppError) Error() string {
	return e.Message
}

// Pre-defined error constructors matching the API error taxonomy.

func NewValidation(msg string, fields ...string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Message: msg, Fields: fields}
}

func NewUnauthenticated(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Message: msg}
}

func NewAccountDeactivated() *AppError {
	return &AppError{HTTPStatus: http.StatusForbidden, Message: "Account is deactivated"}
}

func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Message: msg}
}

func NewDuplicateEmail() *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Message: "User already exists with this email"}
}

func NewInternal(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Message: msg}
}

var devMode bool

// SetDevMode controls whether internal error details are exposed to clients.
// Called once at startup; read-only afterwards.
func SetDevMode(enabled bool) {
	devMode = enabled
}

// --- Gin response helpers ---

// Success sends a 200 OK response with data.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 Created response with data.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// List sends a non-paginated listing with its total matching count.
func List(c *gin.Context, data interface{}, total int64) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Total:   &total,
	})
}

// Paginated sends a paginated listing.
func Paginated(c *gin.Context, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: &p,
	})
}

// Error sends an error response. If err is an *AppError, its status and
// message are used; any other error becomes a 500 whose detail is hidden
// unless dev mode is enabled.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		body := Response{
			Success: false,
			Message: appErr.Message,
		}
		if len(appErr.Fields) > 0 {
			body.Error = "invalid fields: " + strings.Join(appErr.Fields, ", ")
		}
		c.JSON(appErr.HTTPStatus, body)
		return
	}

	body := Response{
		Success: false,
		Message: "Internal server error",
	}
	if devMode {
		body.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// Convenience error response functions

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Response{Success: false, Message: msg})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Success: false, Message: msg})
}

func ServerError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Response{Success: false, Message: msg})
}
