package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindforge/mindforge-api/internal/app/controllers"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/middleware"
	"github.com/mindforge/mindforge-api/internal/pkg/observability"
)

// ReadinessChecker reports whether the backing storage can serve requests
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// Handlers groups everything the router dispatches to
type Handlers struct {
	Auth            *controllers.AuthController
	User            *controllers.UserController
	Bootcamp        *controllers.BootcampController
	Session         *controllers.SessionController
	Attendance      *controllers.AttendanceController
	Discussion      *controllers.DiscussionController
	Progress        *controllers.ProgressController
	KnowledgeStream *controllers.KnowledgeStreamController
	Communication   *controllers.CommunicationController
	// Notifications upgrades the connection to the notification WebSocket
	Notifications  gin.HandlerFunc
	AuthMiddleware *middleware.AuthMiddleware
	Readiness      ReadinessChecker
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Handlers) {
	router.NoRoute(middleware.NotFoundHandler)
	router.NoMethod(middleware.MethodNotAllowedHandler)
	router.HandleMethodNotAllowed = true

	setupOpsRoutes(router, h.Readiness)

	api := router.Group("/api")
	authMW := h.AuthMiddleware
	staff := authMW.RoleRequired(models.RoleFacilitator, models.RoleAdmin)

	// --- Public routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", authMW.JWTAuth(), h.Auth.Me)
	}

	api.GET("/bootcamps", h.Bootcamp.ListBootcamps)
	api.GET("/bootcamps/:id", h.Bootcamp.GetBootcamp)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMW.JWTAuth())

	users := authenticated.Group("/users")
	{
		users.GET("/me", h.User.GetProfile)
		users.GET("", authMW.RoleRequired(models.RoleAdmin), h.User.ListUsers)
		users.GET("/:id", authMW.RoleRequired(models.RoleAdmin), h.User.GetUser)
	}

	// Every bootcamp subroute shares the :id wildcard with /bootcamps/:id
	bootcamps := authenticated.Group("/bootcamps")
	{
		bootcamps.POST("", staff, h.Bootcamp.CreateBootcamp)
		bootcamps.PUT("/:id", staff, h.Bootcamp.UpdateBootcamp)
		bootcamps.DELETE("/:id", staff, h.Bootcamp.DeleteBootcamp)
		bootcamps.POST("/:id/enroll", authMW.RoleRequired(models.RoleStudent), h.Bootcamp.Enroll)
		bootcamps.GET("/:id/enrollments", staff, h.Bootcamp.ListEnrollments)

		bootcamps.GET("/:id/sessions", h.Session.ListSessions)
		bootcamps.POST("/:id/sessions", staff, h.Session.CreateSession)

		bootcamps.GET("/:id/discussions", h.Discussion.ListDiscussions)
		bootcamps.POST("/:id/discussions", staff, h.Discussion.CreateDiscussion)

		bootcamps.GET("/:id/progress", staff, h.Progress.ListBootcampProgress)
	}

	sessions := authenticated.Group("/sessions")
	{
		sessions.GET("/:id", h.Session.GetSession)
		sessions.PUT("/:id", staff, h.Session.UpdateSession)
		sessions.DELETE("/:id", staff, h.Session.DeleteSession)

		sessions.GET("/:id/activities", h.Session.ListActivities)
		sessions.POST("/:id/activities", staff, h.Session.CreateActivity)
		sessions.PUT("/:id/activities/:activityId", staff, h.Session.UpdateActivity)
		sessions.DELETE("/:id/activities/:activityId", staff, h.Session.DeleteActivity)

		sessions.GET("/:id/attendance", staff, h.Attendance.ListAttendance)
		sessions.POST("/:id/attendance", staff, h.Attendance.RecordAttendance)
		sessions.PUT("/:id/attendance/:studentId", staff, h.Attendance.UpdateAttendance)
	}

	discussions := authenticated.Group("/discussions")
	{
		discussions.GET("/:id", h.Discussion.GetDiscussion)
		discussions.PUT("/:id", staff, h.Discussion.UpdateDiscussion)
		discussions.DELETE("/:id", staff, h.Discussion.DeleteDiscussion)
	}

	authenticated.POST("/progress", staff, h.Progress.CreateProgress)
	authenticated.GET("/rubrics", h.Progress.ListRubrics)
	authenticated.GET("/rubrics/:skill", h.Progress.GetRubric)

	students := authenticated.Group("/students/:studentId")
	{
		students.GET("/progress", h.Progress.ListStudentProgress)
		students.GET("/knowledge-streams", h.KnowledgeStream.ListStudentKnowledgeStreams)
		students.POST("/knowledge-streams", staff, h.KnowledgeStream.AssignKnowledgeStream)
	}

	streams := authenticated.Group("/knowledge-streams")
	{
		streams.GET("", h.KnowledgeStream.ListKnowledgeStreams)
		streams.GET("/:id", h.KnowledgeStream.GetKnowledgeStream)
		streams.POST("", staff, h.KnowledgeStream.CreateKnowledgeStream)
	}

	communications := authenticated.Group("/communications")
	{
		communications.POST("", h.Communication.CreateCommunication)
		communications.GET("", h.Communication.ListCommunications)
		communications.GET("/unread", h.Communication.UnreadCommunications)
		communications.GET("/:id", h.Communication.GetCommunication)
		communications.PUT("/:id", h.Communication.UpdateCommunication)
		communications.DELETE("/:id", h.Communication.DeleteCommunication)
		communications.POST("/:id/read", h.Communication.MarkRead)
	}

	if h.Notifications != nil {
		api.GET("/notifications/ws", authMW.JWTAuthQuery(), h.Notifications)
	}
}

func setupOpsRoutes(router *gin.Engine, readiness ReadinessChecker) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.Success(gin.H{"status": "ok"}))
	})

	router.GET("/ready", func(c *gin.Context) {
		if readiness != nil {
			if err := readiness.Ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, dto.Failure(http.StatusServiceUnavailable, "Database unavailable", nil))
				return
			}
		}
		c.JSON(http.StatusOK, dto.Success(gin.H{"status": "ready"}))
	})

	router.GET("/metrics", gin.WrapH(observability.Handler()))
}
