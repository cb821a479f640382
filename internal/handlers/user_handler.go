package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Anilrajput6441/Gema-Assignment/internal/services"
	"github.com/Anilrajput6441/Gema-Assignment/internal/utils"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	BaseHandler
	service services.UserService
	export  services.ExportService
}

func NewUserHandler(service services.UserService, export services.ExportService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		export:      export,
	}
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if strings.TrimSpace(req.StudentName) == "" || strings.TrimSpace(req.Email) == "" {
		h.RespondWithError(c, http.StatusBadRequest, "Student name and email are required", nil)
		return
	}

	h.LogRequest(c, "Creating user", "email", req.Email)

	result, created, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if !created {
		h.RespondWithSuccess(c, http.StatusOK, "User already exists", result)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "User created successfully", result)
}

// SubmitExams handles POST /api/users/:userId/exams
func (h *UserHandler) SubmitExams(c *gin.Context) {
	userID := ParseStringIDParam(c, "userId")
	if userID == "" {
		return
	}

	var req services.SubmitExamsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.Exams == nil {
		h.RespondWithError(c, http.StatusBadRequest, "Exams array is required", nil)
		return
	}

	h.LogRequest(c, "Submitting exams", "user_id", userID, "exam_count", len(req.Exams))

	result, err := h.service.SubmitExams(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			h.RespondWithError(c, http.StatusNotFound, "User not found. Please create user first.", err)
			return
		}
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "All exam data submitted successfully", result)
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithList(c, len(users), users)
}

// GetUser handles GET /api/users/:userId
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := ParseStringIDParam(c, "userId")
	if userID == "" {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "", user)
}

// GetUserExamsByType handles GET /api/users/:userId/exams/:examType
func (h *UserHandler) GetUserExamsByType(c *gin.Context) {
	userID := ParseStringIDParam(c, "userId")
	if userID == "" {
		return
	}
	examType := ParseStringIDParam(c, "examType")
	if examType == "" {
		return
	}

	user, err := h.service.GetUserExamsByType(c.Request.Context(), userID, examType)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithList(c, len(user.Exams), user)
}

// GetUserReport handles GET /api/users/:userId/report
func (h *UserHandler) GetUserReport(c *gin.Context) {
	userID := ParseStringIDParam(c, "userId")
	if userID == "" {
		return
	}

	report, err := h.service.GetUserReport(c.Request.Context(), userID, c.Query("examType"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "", report)
}

// ExportUsers handles GET /api/users/export
func (h *UserHandler) ExportUsers(c *gin.Context) {
	data, err := h.export.ExportUsers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	sendWorkbook(c, "speaking-reports.xlsx", data)
}

// ExportUser handles GET /api/users/:userId/export
func (h *UserHandler) ExportUser(c *gin.Context) {
	userID := ParseStringIDParam(c, "userId")
	if userID == "" {
		return
	}

	data, err := h.export.ExportUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	sendWorkbook(c, userID+"-report.xlsx", data)
}
