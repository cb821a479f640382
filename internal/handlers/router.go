package handlers

import (
	"net/http"

	"github.com/Anilrajput6441/Gema-Assignment/internal/services"
	"github.com/Anilrajput6441/Gema-Assignment/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

type HandlerManager struct {
	userHandler       *UserHandler
	assessmentHandler *AssessmentHandler
	scoringHandler    *ScoringHandler
	healthHandler     *HealthHandler
	logger            utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	storage Pinger,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		userHandler:       NewUserHandler(serviceManager.User(), serviceManager.Export(), logger),
		assessmentHandler: NewAssessmentHandler(serviceManager.Assessment(), logger),
		scoringHandler:    NewScoringHandler(serviceManager.Scoring(), logger),
		healthHandler:     NewHealthHandler(storage, logger),
		logger:            logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", hm.healthHandler.Health)
		api.GET("/health/ready", hm.healthHandler.Ready)

		// User routes
		users := api.Group("/users")
		{
			users.POST("", hm.userHandler.CreateUser)
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/export", hm.userHandler.ExportUsers)
			users.GET("/:userId", hm.userHandler.GetUser)
			users.POST("/:userId/exams", hm.userHandler.SubmitExams)
			users.GET("/:userId/exams/:examType", hm.userHandler.GetUserExamsByType)
			users.GET("/:userId/report", hm.userHandler.GetUserReport)
			users.GET("/:userId/export", hm.userHandler.ExportUser)
		}

		// Assessment routes
		assessments := api.Group("/assessments")
		{
			assessments.POST("", hm.assessmentHandler.CreateAssessment)
			assessments.GET("", hm.assessmentHandler.ListAssessments)
			assessments.GET("/:id", hm.assessmentHandler.GetAssessment)
		}

		// Scoring utilities
		api.GET("/exam-types", hm.scoringHandler.ListExamTypes)
		api.POST("/scores/convert", hm.scoringHandler.ConvertScore)
		api.POST("/feedback", hm.scoringHandler.Feedback)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Route 404 not found"})
	})
}

// NewEngine builds the gin engine with logging, recovery and the API routes
func (hm *HandlerManager) NewEngine() *gin.Engine {
	router := gin.New()
	router.Use(
		utils.ContextLogger(hm.logger),
		utils.LoggerMiddleware(hm.logger),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			utils.GetLoggerFromContext(c, hm.logger).Error("Panic recovered", "panic", recovered)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: "Something went wrong!"})
		}),
	)
	hm.SetupRoutes(router)
	return router
}

// WithCORS wraps the handler with CORS headers for the given origins
func WithCORS(next http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}
