package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/app/services"
	"github.com/mindforge/mindforge-api/internal/middleware"
)

// SessionController handles sessions and their activities
type SessionController struct {
	sessionService  services.SessionService
	activityService services.ActivityService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService services.SessionService, activityService services.ActivityService) *SessionController {
	return &SessionController{
		sessionService:  sessionService,
		activityService: activityService,
	}
}

// ListSessions returns the bootcamp's sessions ordered by day
// @Summary List sessions of a bootcamp
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=[]models.Session}
// @Failure 404 {object} dto.Envelope "Bootcamp not found"
// @Router /bootcamps/{id}/sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	bootcampID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	sessions, err := c.sessionService.ListByBootcamp(ctx.Request.Context(), bootcampID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(sessions))
}

// CreateSession adds a session to a bootcamp
// @Summary Create session
// @Description Day numbers are unique within a bootcamp
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp ID" Format(uuid)
// @Param request body dto.CreateSessionRequest true "Session"
// @Success 201 {object} dto.Envelope{data=models.Session}
// @Failure 400 {object} dto.Envelope "A session for this day already exists"
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Failure 404 {object} dto.Envelope "Bootcamp not found"
// @Router /bootcamps/{id}/sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	bootcampID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateSessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.sessionService.Create(ctx.Request.Context(), principal, bootcampID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessWithMessage(session, "Session created successfully"))
}

// GetSession returns a session with its activities
// @Summary Get session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Session}
// @Failure 404 {object} dto.Envelope "Session not found"
// @Router /sessions/{id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	session, err := c.sessionService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(session))
}

// UpdateSession updates a session
// @Summary Update session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID" Format(uuid)
// @Param request body dto.UpdateSessionRequest true "Changes"
// @Success 200 {object} dto.Envelope{data=models.Session}
// @Failure 400 {object} dto.Envelope "Validation failed"
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Failure 404 {object} dto.Envelope "Session not found"
// @Router /sessions/{id} [put]
func (c *SessionController) UpdateSession(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateSessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.sessionService.Update(ctx.Request.Context(), principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessWithMessage(session, "Session updated successfully"))
}

// DeleteSession deletes a session with its activities and attendance
// @Summary Delete session
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Failure 404 {object} dto.Envelope "Session not found"
// @Router /sessions/{id} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.sessionService.Delete(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListActivities returns the session's activities ordered by time
// @Summary List activities
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=[]models.SessionActivity}
// @Failure 404 {object} dto.Envelope "Session not found"
// @Router /sessions/{id}/activities [get]
func (c *SessionController) ListActivities(ctx *gin.Context) {
	sessionID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	activities, err := c.activityService.ListBySession(ctx.Request.Context(), sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(activities))
}

// CreateActivity adds an activity to a session
// @Summary Create activity
// @Description Start times ("HH:MM") are unique within a session
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID" Format(uuid)
// @Param request body dto.CreateActivityRequest true "Activity"
// @Success 201 {object} dto.Envelope{data=models.SessionActivity}
// @Failure 400 {object} dto.Envelope "An activity at this time already exists"
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Router /sessions/{id}/activities [post]
func (c *SessionController) CreateActivity(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateActivityRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	activity, err := c.activityService.Create(ctx.Request.Context(), principal, sessionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessWithMessage(activity, "Activity created successfully"))
}

// UpdateActivity updates an activity
// @Summary Update activity
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID" Format(uuid)
// @Param activityId path string true "Activity ID" Format(uuid)
// @Param request body dto.UpdateActivityRequest true "Changes"
// @Success 200 {object} dto.Envelope{data=models.SessionActivity}
// @Failure 404 {object} dto.Envelope "Activity not found"
// @Router /sessions/{id}/activities/{activityId} [put]
func (c *SessionController) UpdateActivity(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	activityID, ok := uuidParam(ctx, "activityId")
	if !ok {
		return
	}
	var req dto.UpdateActivityRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	activity, err := c.activityService.Update(ctx.Request.Context(), principal, sessionID, activityID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessWithMessage(activity, "Activity updated successfully"))
}

// DeleteActivity removes an activity
// @Summary Delete activity
// @Tags activities
// @Security BearerAuth
// @Param id path string true "Session ID" Format(uuid)
// @Param activityId path string true "Activity ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} dto.Envelope "Activity not found"
// @Router /sessions/{id}/activities/{activityId} [delete]
func (c *SessionController) DeleteActivity(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	activityID, ok := uuidParam(ctx, "activityId")
	if !ok {
		return
	}
	if err := c.activityService.Delete(ctx.Request.Context(), principal, sessionID, activityID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
