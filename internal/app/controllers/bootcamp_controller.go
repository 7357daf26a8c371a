package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/app/services"
	"github.com/mindforge/mindforge-api/internal/middleware"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
)

// BootcampController handles bootcamp and enrollment endpoints
type BootcampController struct {
	bootcampService services.BootcampService
}

// NewBootcampController creates a new BootcampController
func NewBootcampController(bootcampService services.BootcampService) *BootcampController {
	return &BootcampController{bootcampService: bootcampService}
}

// ListBootcamps returns a filtered page of bootcamps
// @Summary List bootcamps
// @Description Public listing, newest first
// @Tags bootcamps
// @Produce json
// @Param status query string false "Status" Enums(DRAFT, PUBLISHED, IN_PROGRESS, COMPLETED, CANCELLED)
// @Param facilitatorId query string false "Facilitator profile ID" Format(uuid)
// @Param subject query string false "Subject"
// @Param format query string false "Format" Enums(ONLINE, IN_PERSON, HYBRID)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.Envelope{data=object{bootcamps=[]models.Bootcamp}}
// @Failure 400 {object} dto.Envelope "Invalid filter"
// @Router /bootcamps [get]
func (c *BootcampController) ListBootcamps(ctx *gin.Context) {
	var req dto.BootcampFilterRequest
	if !middleware.BindQuery(ctx, &req) {
		return
	}
	filter := models.BootcampFilter{
		Status:  models.BootcampStatus(req.Status),
		Subject: req.Subject,
		Format:  models.BootcampFormat(req.Format),
	}
	if req.FacilitatorID != "" {
		id := uuid.MustParse(req.FacilitatorID)
		filter.FacilitatorID = &id
	}
	page := helpers.ParsePagination(ctx)

	bootcamps, total, err := c.bootcampService.List(ctx.Request.Context(), filter, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewPaginatedResponse(bootcamps, total, page.Page, page.Limit, "bootcamps"))
}

// GetBootcamp returns one bootcamp
// @Summary Get bootcamp
// @Tags bootcamps
// @Produce json
// @Param id path string true "Bootcamp ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Bootcamp}
// @Failure 404 {object} dto.Envelope "Bootcamp not found"
// @Router /bootcamps/{id} [get]
func (c *BootcampController) GetBootcamp(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	bootcamp, err := c.bootcampService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(bootcamp))
}

// CreateBootcamp creates a bootcamp
// @Summary Create bootcamp
// @Description Facilitators own the bootcamps they create. Admins must name the owning facilitator. New bootcamps start as DRAFT unless a status is given.
// @Tags bootcamps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBootcampRequest true "Bootcamp"
// @Success 201 {object} dto.Envelope{data=models.Bootcamp}
// @Failure 400 {object} dto.Envelope "Validation failed"
// @Failure 403 {object} dto.Envelope "Only facilitators and admins may perform this action"
// @Router /bootcamps [post]
func (c *BootcampController) CreateBootcamp(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req dto.CreateBootcampRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	bootcamp, err := c.bootcampService.Create(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessWithMessage(bootcamp, "Bootcamp created successfully"))
}

// UpdateBootcamp updates a bootcamp
// @Summary Update bootcamp
// @Description Capacity cannot drop below the current enrollment count
// @Tags bootcamps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp ID" Format(uuid)
// @Param request body dto.UpdateBootcampRequest true "Changes"
// @Success 200 {object} dto.Envelope{data=models.Bootcamp}
// @Failure 400 {object} dto.Envelope "Validation failed"
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Failure 404 {object} dto.Envelope "Bootcamp not found"
// @Router /bootcamps/{id} [put]
func (c *BootcampController) UpdateBootcamp(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateBootcampRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	bootcamp, err := c.bootcampService.Update(ctx.Request.Context(), principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessWithMessage(bootcamp, "Bootcamp updated successfully"))
}

// DeleteBootcamp deletes a bootcamp with its sessions, topics and enrollments
// @Summary Delete bootcamp
// @Tags bootcamps
// @Security BearerAuth
// @Param id path string true "Bootcamp ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Failure 404 {object} dto.Envelope "Bootcamp not found"
// @Router /bootcamps/{id} [delete]
func (c *BootcampController) DeleteBootcamp(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.bootcampService.Delete(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Enroll enrolls the calling student
// @Summary Enroll in bootcamp
// @Description Students only. Fails when already enrolled, when the bootcamp is not PUBLISHED or when it is full.
// @Tags bootcamps
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp ID" Format(uuid)
// @Success 201 {object} dto.Envelope{data=dto.EnrollmentResponse}
// @Failure 400 {object} dto.Envelope "Already enrolled, not available or full"
// @Failure 403 {object} dto.Envelope "Students only"
// @Failure 404 {object} dto.Envelope "Bootcamp not found"
// @Router /bootcamps/{id}/enroll [post]
func (c *BootcampController) Enroll(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.bootcampService.Enroll(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessWithMessage(resp, "Enrolled successfully"))
}

// ListEnrollments returns the bootcamp's enrollments
// @Summary List enrollments
// @Tags bootcamps
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=[]models.Enrollment}
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Router /bootcamps/{id}/enrollments [get]
func (c *BootcampController) ListEnrollments(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	enrollments, err := c.bootcampService.ListEnrollments(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(enrollments))
}
