package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/pagination"
	"parishbooks/internal/services"
)

// MessageHandler handles outbound member-messaging requests.
type MessageHandler struct {
	messageService services.MessageServicer
	auditService   services.AuditServicer
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService services.MessageServicer, auditService services.AuditServicer) *MessageHandler {
	return &MessageHandler{messageService: messageService, auditService: auditService}
}

// SendMessageRequest represents the request payload for sending a message.
type SendMessageRequest struct {
	Body      string   `json:"body" binding:"required,max=1000"`
	MemberIDs []string `json:"member_ids" binding:"required,min=1,dive,uuid"`
}

// SendMessage queues an SMS to the selected members
// @Summary     Send a message to members
// @Tags        messages
// @Accept      json
// @Produce     json
// @Param       request body SendMessageRequest true "Message details"
// @Success     202 {object} models.Message "Message queued"
// @Failure     400 {object} ErrorResponse "No recipients with phone numbers"
// @Router      /messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	message, err := h.messageService.SendToMembers(req.Body, req.MemberIDs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("SEND_MESSAGE", "message", message.ID, c.ClientIP(),
		map[string]interface{}{"recipients": len(message.Recipients)})

	c.JSON(http.StatusAccepted, gin.H{"message": message})
}

// GetMessages lists sent messages.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.messageService.GetMessages(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMessageByID returns a message with its per-recipient delivery status.
func (h *MessageHandler) GetMessageByID(c *gin.Context) {
	message, err := h.messageService.GetMessageByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
