package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Anilrajput6441/Gema-Assignment/internal/services"
	"github.com/Anilrajput6441/Gema-Assignment/internal/utils"
	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	BaseHandler
	service services.AssessmentService
}

func NewAssessmentHandler(service services.AssessmentService, logger utils.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateAssessment handles POST /api/assessments
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req services.CreateAssessmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Creating assessment", "exam_type", req.ExamType)

	assessment, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "", assessment)
}

// ListAssessments handles GET /api/assessments with optional latest and examType
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	examType := c.Query("examType")
	latest, _ := strconv.ParseBool(c.Query("latest"))

	if latest {
		assessment, err := h.service.Latest(c.Request.Context(), examType)
		if err != nil {
			if errors.Is(err, services.ErrAssessmentNotFound) {
				h.RespondWithError(c, http.StatusNotFound, "No assessments found", nil)
				return
			}
			h.handleServiceError(c, err)
			return
		}
		h.RespondWithSuccess(c, http.StatusOK, "", assessment)
		return
	}

	assessments, err := h.service.List(c.Request.Context(), examType)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithList(c, len(assessments), assessments)
}

// GetAssessment handles GET /api/assessments/:id
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	assessment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "", assessment)
}
