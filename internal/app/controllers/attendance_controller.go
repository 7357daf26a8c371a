package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/app/services"
	"github.com/mindforge/mindforge-api/internal/middleware"
)

// AttendanceController handles session attendance
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// ListAttendance returns the session's attendance records
// @Summary List attendance
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=[]models.AttendanceRecord}
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Router /sessions/{id}/attendance [get]
func (c *AttendanceController) ListAttendance(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	records, err := c.attendanceService.List(ctx.Request.Context(), principal, sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(records))
}

// RecordAttendance records one student's attendance
// @Summary Record attendance
// @Description The student must be enrolled in the session's bootcamp
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID" Format(uuid)
// @Param request body dto.RecordAttendanceRequest true "Attendance"
// @Success 201 {object} dto.Envelope{data=models.AttendanceRecord}
// @Failure 400 {object} dto.Envelope "Not enrolled or already recorded"
// @Router /sessions/{id}/attendance [post]
func (c *AttendanceController) RecordAttendance(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.RecordAttendanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	record, err := c.attendanceService.Record(ctx.Request.Context(), principal, sessionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessWithMessage(record, "Attendance recorded successfully"))
}

// UpdateAttendance changes a recorded attendance
// @Summary Update attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID" Format(uuid)
// @Param studentId path string true "Student profile ID" Format(uuid)
// @Param request body dto.UpdateAttendanceRequest true "Changes"
// @Success 200 {object} dto.Envelope{data=models.AttendanceRecord}
// @Failure 404 {object} dto.Envelope "Attendance record not found"
// @Router /sessions/{id}/attendance/{studentId} [put]
func (c *AttendanceController) UpdateAttendance(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := uuidParam(ctx, "studentId")
	if !ok {
		return
	}
	var req dto.UpdateAttendanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	record, err := c.attendanceService.Update(ctx.Request.Context(), principal, sessionID, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessWithMessage(record, "Attendance updated successfully"))
}
