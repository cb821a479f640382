package handlers

import (
	"net/http"

	"github.com/Anilrajput6441/Gema-Assignment/internal/services"
	"github.com/Anilrajput6441/Gema-Assignment/internal/utils"
	"github.com/gin-gonic/gin"
)

// ScoringHandler exposes the exam registry and the stateless score helpers
type ScoringHandler struct {
	BaseHandler
	service services.ScoringService
}

func NewScoringHandler(service services.ScoringService, logger utils.Logger) *ScoringHandler {
	return &ScoringHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListExamTypes handles GET /api/exam-types
func (h *ScoringHandler) ListExamTypes(c *gin.Context) {
	configs := h.service.ExamTypes()
	h.RespondWithList(c, len(configs), configs)
}

// ConvertScore handles POST /api/scores/convert
func (h *ScoringHandler) ConvertScore(c *gin.Context) {
	var req services.ConvertScoreRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.Convert(&req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "", result)
}

// Feedback handles POST /api/feedback
func (h *ScoringHandler) Feedback(c *gin.Context) {
	var req services.FeedbackRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.Feedback(&req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "", result)
}
