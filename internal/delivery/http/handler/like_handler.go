package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heartlinkapp/heartlink-backend/internal/usecase/like"
)

type LikeHandler struct {
	likeUseCase *like.LikeUseCase
}

func NewLikeHandler(likeUseCase *like.LikeUseCase) *LikeHandler {
	return &LikeHandler{likeUseCase: likeUseCase}
}

// Send handles POST /likes
// @Summary Like another user
// @Tags likes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body like.SendLikeRequest true "Target user"
// @Success 201 {object} like.SendLikeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /likes [post]
func (h *LikeHandler) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req like.SendLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	resp, err := h.likeUseCase.SendLike(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Unlike handles DELETE /likes/:user_id
func (h *LikeHandler) Unlike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.likeUseCase.Unlike(c.Request.Context(), userID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "like removed"})
}

// Check handles GET /likes/check/:user_id
func (h *LikeHandler) Check(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	liked, likedBy, mutual, err := h.likeUseCase.CheckLike(c.Request.Context(), userID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"liked":     liked,
		"liked_by":  likedBy,
		"is_mutual": mutual,
	})
}

// Sent handles GET /likes/sent
func (h *LikeHandler) Sent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	likes, err := h.likeUseCase.SentLikes(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// Received handles GET /likes/received
func (h *LikeHandler) Received(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	likes, err := h.likeUseCase.ReceivedLikes(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// Mutual handles GET /likes/mutual
func (h *LikeHandler) Mutual(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	likes, err := h.likeUseCase.MutualLikes(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// Stats handles GET /likes/stats
func (h *LikeHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.likeUseCase.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
