package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/app/services"
	"github.com/mindforge/mindforge-api/internal/middleware"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
)

// DiscussionController handles discussion topics
type DiscussionController struct {
	discussionService services.DiscussionService
}

// NewDiscussionController creates a new DiscussionController
func NewDiscussionController(discussionService services.DiscussionService) *DiscussionController {
	return &DiscussionController{discussionService: discussionService}
}

// ListDiscussions returns a page of the bootcamp's topics
// @Summary List discussion topics
// @Tags discussions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp ID" Format(uuid)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.Envelope{data=object{discussions=[]models.DiscussionTopic}}
// @Failure 404 {object} dto.Envelope "Bootcamp not found"
// @Router /bootcamps/{id}/discussions [get]
func (c *DiscussionController) ListDiscussions(ctx *gin.Context) {
	bootcampID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	page := helpers.ParsePagination(ctx)

	topics, total, err := c.discussionService.ListByBootcamp(ctx.Request.Context(), bootcampID, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewPaginatedResponse(topics, total, page.Page, page.Limit, "discussions"))
}

// CreateDiscussion adds a topic to a bootcamp
// @Summary Create discussion topic
// @Tags discussions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bootcamp ID" Format(uuid)
// @Param request body dto.CreateDiscussionRequest true "Topic"
// @Success 201 {object} dto.Envelope{data=models.DiscussionTopic}
// @Failure 400 {object} dto.Envelope "A discussion topic for this day already exists"
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Router /bootcamps/{id}/discussions [post]
func (c *DiscussionController) CreateDiscussion(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	bootcampID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateDiscussionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	topic, err := c.discussionService.Create(ctx.Request.Context(), principal, bootcampID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessWithMessage(topic, "Discussion topic created successfully"))
}

// GetDiscussion returns one topic
// @Summary Get discussion topic
// @Tags discussions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Topic ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.DiscussionTopic}
// @Failure 404 {object} dto.Envelope "Discussion topic not found"
// @Router /discussions/{id} [get]
func (c *DiscussionController) GetDiscussion(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	topic, err := c.discussionService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(topic))
}

// UpdateDiscussion updates a topic
// @Summary Update discussion topic
// @Tags discussions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Topic ID" Format(uuid)
// @Param request body dto.UpdateDiscussionRequest true "Changes"
// @Success 200 {object} dto.Envelope{data=models.DiscussionTopic}
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Failure 404 {object} dto.Envelope "Discussion topic not found"
// @Router /discussions/{id} [put]
func (c *DiscussionController) UpdateDiscussion(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateDiscussionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	topic, err := c.discussionService.Update(ctx.Request.Context(), principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessWithMessage(topic, "Discussion topic updated successfully"))
}

// DeleteDiscussion removes a topic
// @Summary Delete discussion topic
// @Tags discussions
// @Security BearerAuth
// @Param id path string true "Topic ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 403 {object} dto.Envelope "You can only manage your own bootcamps"
// @Failure 404 {object} dto.Envelope "Discussion topic not found"
// @Router /discussions/{id} [delete]
func (c *DiscussionController) DeleteDiscussion(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.discussionService.Delete(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
