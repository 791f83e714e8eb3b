package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heartlinkapp/heartlink-backend/internal/usecase/message"
)

type MessageHandler struct {
	messageUseCase *message.MessageUseCase
}

func NewMessageHandler(messageUseCase *message.MessageUseCase) *MessageHandler {
	return &MessageHandler{messageUseCase: messageUseCase}
}

// Send handles POST /messages
// @Summary Send a message
// @Description Matched users chat freely; an unmatched sender gets one
// @Description icebreaker message per conversation, further attempts fail
// @Description with code MATCH_REQUIRED until the pair matches.
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body message.SendMessageRequest true "Message"
// @Success 201 {object} domain.Message
// @Failure 403 {object} ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req message.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	msg, err := h.messageUseCase.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Conversations handles GET /messages/conversations
func (h *MessageHandler) Conversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	conversations, err := h.messageUseCase.Conversations(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// Messages handles GET /messages/conversations/:conversation_id
func (h *MessageHandler) Messages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	conversationID, ok := pathUUID(c, "conversation_id")
	if !ok {
		return
	}

	limit, offset := pagination(c)
	messages, err := h.messageUseCase.Messages(c.Request.Context(), conversationID, userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// MarkRead handles PUT /messages/conversations/:conversation_id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	conversationID, ok := pathUUID(c, "conversation_id")
	if !ok {
		return
	}

	if err := h.messageUseCase.MarkRead(c.Request.Context(), conversationID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conversation marked read"})
}

// Delete handles DELETE /messages/:message_id
func (h *MessageHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	messageID, ok := pathUUID(c, "message_id")
	if !ok {
		return
	}

	if err := h.messageUseCase.DeleteMessage(c.Request.Context(), messageID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

// Unread handles GET /messages/unread
func (h *MessageHandler) Unread(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	total, conversations, err := h.messageUseCase.UnreadTotal(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_unread":  total,
		"conversations": conversations,
	})
}

// Search handles GET /messages/search?q=...
func (h *MessageHandler) Search(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "q query parameter required"})
		return
	}

	limit, _ := pagination(c)
	messages, err := h.messageUseCase.Search(c.Request.Context(), userID, query, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Block handles POST /messages/block/:user_id
func (h *MessageHandler) Block(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.messageUseCase.BlockUser(c.Request.Context(), userID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user blocked"})
}

// Unblock handles DELETE /messages/block/:user_id
func (h *MessageHandler) Unblock(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.messageUseCase.UnblockUser(c.Request.Context(), userID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user unblocked"})
}
