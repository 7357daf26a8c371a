package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/app/services"
	"github.com/mindforge/mindforge-api/internal/middleware"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
)

// CommunicationController handles messages, announcements and read receipts
type CommunicationController struct {
	communicationService services.CommunicationService
}

// NewCommunicationController creates a new CommunicationController
func NewCommunicationController(communicationService services.CommunicationService) *CommunicationController {
	return &CommunicationController{communicationService: communicationService}
}

// CreateCommunication godoc
// @Summary Create communication
// @Description Defaults to a DRAFT message. SENT communications are delivered immediately.
// @Tags communications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCommunicationRequest true "Communication"
// @Success 201 {object} dto.Envelope{data=models.Communication}
// @Failure 400 {object} dto.Envelope "Validation failed"
// @Router /communications [post]
func (c *CommunicationController) CreateCommunication(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req dto.CreateCommunicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	communication, err := c.communicationService.Create(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessWithMessage(communication, "Communication created successfully"))
}

// ListCommunications godoc
// @Summary List communications
// @Description box=inbox (default) lists what the caller received, box=sent what they authored
// @Tags communications
// @Produce json
// @Security BearerAuth
// @Param box query string false "Mailbox" Enums(inbox, sent) default(inbox)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.Envelope{data=object{communications=[]models.InboxItem}}
// @Failure 400 {object} dto.Envelope "Unknown mailbox"
// @Router /communications [get]
func (c *CommunicationController) ListCommunications(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	page := helpers.ParsePagination(ctx)

	switch box := ctx.DefaultQuery("box", "inbox"); box {
	case "inbox":
		items, total, err := c.communicationService.Inbox(ctx.Request.Context(), principal, page)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, helpers.NewPaginatedResponse(items, total, page.Page, page.Limit, "communications"))
	case "sent":
		sent, total, err := c.communicationService.Outbox(ctx.Request.Context(), principal, page)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, helpers.NewPaginatedResponse(sent, total, page.Page, page.Limit, "communications"))
	default:
		middleware.HandleAPIError(ctx, apperrors.Validation("Invalid mailbox",
			apperrors.FieldError{Field: "box", Message: "must be one of: inbox sent"}))
	}
}

// UnreadCommunications godoc
// @Summary Unread communications
// @Tags communications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope{data=dto.UnreadResponse}
// @Router /communications/unread [get]
func (c *CommunicationController) UnreadCommunications(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	unread, err := c.communicationService.Unread(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(unread))
}

// GetCommunication godoc
// @Summary Get communication
// @Description Senders always see their communications. Recipients only see SENT ones.
// @Tags communications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Communication ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.Communication}
// @Failure 403 {object} dto.Envelope "You do not have access to this communication"
// @Failure 404 {object} dto.Envelope "Communication not found"
// @Router /communications/{id} [get]
func (c *CommunicationController) GetCommunication(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	communication, err := c.communicationService.Get(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(communication))
}

// UpdateCommunication godoc
// @Summary Update communication
// @Description Only the sender may edit, and only before it is sent
// @Tags communications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Communication ID" Format(uuid)
// @Param request body dto.UpdateCommunicationRequest true "Changes"
// @Success 200 {object} dto.Envelope{data=models.Communication}
// @Failure 400 {object} dto.Envelope "Cannot update a communication that has already been sent"
// @Failure 403 {object} dto.Envelope "Only the sender can modify this communication"
// @Router /communications/{id} [put]
func (c *CommunicationController) UpdateCommunication(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateCommunicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	communication, err := c.communicationService.Update(ctx.Request.Context(), principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessWithMessage(communication, "Communication updated successfully"))
}

// DeleteCommunication godoc
// @Summary Delete communication
// @Tags communications
// @Security BearerAuth
// @Param id path string true "Communication ID" Format(uuid)
// @Success 204 "No Content"
// @Failure 403 {object} dto.Envelope "Only the sender can modify this communication"
// @Failure 404 {object} dto.Envelope "Communication not found"
// @Router /communications/{id} [delete]
func (c *CommunicationController) DeleteCommunication(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.communicationService.Delete(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// MarkRead godoc
// @Summary Mark communication as read
// @Description Idempotent. The first call creates the receipt (201), later calls return it (200).
// @Tags communications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Communication ID" Format(uuid)
// @Success 201 {object} dto.Envelope{data=dto.ReadReceiptResponse}
// @Success 200 {object} dto.Envelope{data=dto.ReadReceiptResponse}
// @Failure 403 {object} dto.Envelope "Only recipients can mark a communication as read"
// @Failure 404 {object} dto.Envelope "Communication not found"
// @Router /communications/{id}/read [post]
func (c *CommunicationController) MarkRead(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	receipt, created, err := c.communicationService.MarkRead(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.ReadReceiptResponse{Receipt: receipt, AlreadyRead: !created}
	if created {
		ctx.JSON(http.StatusCreated, dto.SuccessWithMessage(resp, services.MsgMarkedAsRead))
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessWithMessage(resp, services.MsgAlreadyMarkedAsRead))
}
