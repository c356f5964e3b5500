package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rehber-app/anket-client/internal/services"
	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/utils"
)

type HandlerManager struct {
	userHandler    *UserHandler
	surveyHandler  *SurveyHandler
	studentHandler *StudentHandler
	sessions       *store.Sessions
	logger         utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessions *store.Sessions,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		userHandler:    NewUserHandler(serviceManager.User(), logger),
		surveyHandler:  NewSurveyHandler(serviceManager, logger),
		studentHandler: NewStudentHandler(serviceManager.Student(), logger),
		sessions:       sessions,
		logger:         logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(RequestID())

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/health", HealthCheck)

	api := v1.Group("")
	api.Use(Session(hm.sessions), utils.ContextLogger(hm.logger))
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", hm.userHandler.Login)
			auth.POST("/logout", hm.userHandler.Logout)
		}

		api.GET("/admin/guides", hm.userHandler.ListGuides)

		guides := api.Group("/guides")
		{
			guides.GET("/:id", hm.userHandler.GetGuide)
			guides.GET("/:id/students", hm.userHandler.GetGuideStudents)
			guides.GET("/:id/results", hm.userHandler.GetGuideResults)
		}

		surveys := api.Group("/surveys")
		{
			surveys.GET("", hm.surveyHandler.ListSurveys)
			surveys.GET("/:id", hm.surveyHandler.GetSurvey)
			surveys.GET("/:id/results", hm.surveyHandler.GetResults)
			surveys.DELETE("/:id/results", hm.surveyHandler.ClearResults)
			surveys.GET("/:id/statistics", hm.surveyHandler.GetStatistics)
			surveys.GET("/:id/class-stats/:class", hm.surveyHandler.GetClassStatistics)
			surveys.GET("/:id/dashboard", hm.surveyHandler.GetDashboard)
			surveys.GET("/:id/export.xlsx", hm.surveyHandler.ExportResults)
			surveys.POST("/:id/submit", hm.surveyHandler.SubmitSurvey)
		}

		students := api.Group("/students")
		{
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.PUT("/:id", hm.studentHandler.UpdateStudent)
			students.GET("/:id/results", hm.studentHandler.GetStudentResults)
		}

		api.GET("/classes/:class/students", hm.studentHandler.ListByClass)
	}

	// Dropping a session must not create one first.
	v1.DELETE("/session", hm.DropSession)

	// Health check endpoint
	router.GET("/health", HealthCheck)
}

// DropSession discards everything the session holds.
func (hm *HandlerManager) DropSession(c *gin.Context) {
	id := c.GetHeader(SessionHeader)
	if id == "" || !hm.sessions.Drop(id) {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Session not found"})
		return
	}
	hm.logger.Info("Session dropped", "session_id", id, "request_id", c.GetString(utils.RequestIDKey))
	c.Status(http.StatusNoContent)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "anket-client",
	})
}
