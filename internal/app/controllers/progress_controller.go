package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/app/services"
	"github.com/mindforge/mindforge-api/internal/middleware"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
)

// ProgressController handles progress records and rubrics
type ProgressController struct {
	progressService services.ProgressService
}

// NewProgressController creates a new ProgressController
func NewProgressController(progressService services.ProgressService) *ProgressController {
	return &ProgressController{progressService: progressService}
}

// CreateProgress records an assessment of a student's skill
// @Summary Record progress
// @Description Level must be one of the rubric's levels. Admins must name the assessing facilitator.
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProgressRequest true "Assessment"
// @Success 201 {object} dto.Envelope{data=models.ProgressRecord}
// @Failure 400 {object} dto.Envelope "Validation failed"
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Failure 404 {object} dto.Envelope "Student or rubric not found"
// @Router /progress [post]
func (c *ProgressController) CreateProgress(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req dto.CreateProgressRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	record, err := c.progressService.Create(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessWithMessage(record, "Progress recorded successfully"))
}

// ListStudentProgress returns a student's progress, newest first
// @Summary List a student's progress
// @Description Visible to the student, their parent, facilitators and admins
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student profile ID" Format(uuid)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.Envelope{data=object{progress=[]models.ProgressRecord}}
// @Failure 403 {object} dto.Envelope "Access denied"
// @Router /students/{studentId}/progress [get]
func (c *ProgressController) ListStudentProgress(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := uuidParam(ctx, "studentId")
	if !ok {
		return
	}
	page := helpers.ParsePagination(ctx)

	records, total, err := c.progressService.ListByStudent(ctx.Request.Context(), principal, studentID, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewPaginatedResponse(records, total, page.Page, page.Limit, "progress"))
}

// ListBootcampProgress returns the progress recorded within a bootcamp
// @Summary List a bootcamp's progress
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp ID" Format(uuid)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.Envelope{data=object{progress=[]models.ProgressRecord}}
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Failure 404 {object} dto.Envelope "Bootcamp not found"
// @Router /bootcamps/{id}/progress [get]
func (c *ProgressController) ListBootcampProgress(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	bootcampID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	page := helpers.ParsePagination(ctx)

	records, total, err := c.progressService.ListByBootcamp(ctx.Request.Context(), principal, bootcampID, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewPaginatedResponse(records, total, page.Page, page.Limit, "progress"))
}

// ListRubrics returns every skill rubric
// @Summary List rubrics
// @Tags rubrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope{data=[]models.Rubric}
// @Router /rubrics [get]
func (c *ProgressController) ListRubrics(ctx *gin.Context) {
	rubrics, err := c.progressService.ListRubrics(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(rubrics))
}

// GetRubric returns the rubric for one skill
// @Summary Get rubric
// @Tags rubrics
// @Produce json
// @Security BearerAuth
// @Param skill path string true "Skill" example(CRITICAL_THINKING)
// @Success 200 {object} dto.Envelope{data=models.Rubric}
// @Failure 404 {object} dto.Envelope "Rubric not found"
// @Router /rubrics/{skill} [get]
func (c *ProgressController) GetRubric(ctx *gin.Context) {
	rubric, err := c.progressService.GetRubric(ctx.Request.Context(), ctx.Param("skill"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(rubric))
}
