package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/app/services"
	"github.com/mindforge/mindforge-api/internal/middleware"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
)

// KnowledgeStreamController handles knowledge streams and their assignment
type KnowledgeStreamController struct {
	streamService services.KnowledgeStreamService
}

// NewKnowledgeStreamController creates a new KnowledgeStreamController
func NewKnowledgeStreamController(streamService services.KnowledgeStreamService) *KnowledgeStreamController {
	return &KnowledgeStreamController{streamService: streamService}
}

// ListKnowledgeStreams godoc
// @Summary List knowledge streams
// @Tags knowledge-streams
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.Envelope{data=object{knowledgeStreams=[]models.KnowledgeStream}}
// @Router /knowledge-streams [get]
func (c *KnowledgeStreamController) ListKnowledgeStreams(ctx *gin.Context) {
	page := helpers.ParsePagination(ctx)
	streams, total, err := c.streamService.List(ctx.Request.Context(), page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewPaginatedResponse(streams, total, page.Page, page.Limit, "knowledgeStreams"))
}

// GetKnowledgeStream godoc
// @Summary Get knowledge stream
// @Tags knowledge-streams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Knowledge stream ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.KnowledgeStream}
// @Failure 404 {object} dto.Envelope "Knowledge stream not found"
// @Router /knowledge-streams/{id} [get]
func (c *KnowledgeStreamController) GetKnowledgeStream(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	stream, err := c.streamService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(stream))
}

// CreateKnowledgeStream godoc
// @Summary Create knowledge stream
// @Tags knowledge-streams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateKnowledgeStreamRequest true "Knowledge stream"
// @Success 201 {object} dto.Envelope{data=models.KnowledgeStream}
// @Failure 400 {object} dto.Envelope "A knowledge stream with this name already exists"
// @Router /knowledge-streams [post]
func (c *KnowledgeStreamController) CreateKnowledgeStream(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req dto.CreateKnowledgeStreamRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	stream, err := c.streamService.Create(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessWithMessage(stream, "Knowledge stream created successfully"))
}

// AssignKnowledgeStream godoc
// @Summary Assign a knowledge stream to a student
// @Tags knowledge-streams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student profile ID" Format(uuid)
// @Param request body dto.AssignKnowledgeStreamRequest true "Assignment"
// @Success 201 {object} dto.Envelope{data=models.StudentKnowledgeStream}
// @Failure 400 {object} dto.Envelope "Knowledge stream already assigned to this student"
// @Failure 404 {object} dto.Envelope "Student or knowledge stream not found"
// @Router /students/{studentId}/knowledge-streams [post]
func (c *KnowledgeStreamController) AssignKnowledgeStream(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := uuidParam(ctx, "studentId")
	if !ok {
		return
	}
	var req dto.AssignKnowledgeStreamRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	assignment, err := c.streamService.Assign(ctx.Request.Context(), principal, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessWithMessage(assignment, "Knowledge stream assigned successfully"))
}

// ListStudentKnowledgeStreams godoc
// @Summary List a student's knowledge streams
// @Tags knowledge-streams
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student profile ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=[]models.StudentKnowledgeStream}
// @Failure 403 {object} dto.Envelope "Access denied"
// @Router /students/{studentId}/knowledge-streams [get]
func (c *KnowledgeStreamController) ListStudentKnowledgeStreams(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := uuidParam(ctx, "studentId")
	if !ok {
		return
	}
	assignments, err := c.streamService.ListForStudent(ctx.Request.Context(), principal, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(assignments))
}
