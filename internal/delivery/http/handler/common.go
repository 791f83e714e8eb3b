package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

// ErrorResponse is the error body every endpoint returns. Code is a
// stable machine-readable discriminator for errors clients branch on.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// errorStatus maps a domain sentinel to its HTTP status and code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMatchRequired):
		return http.StatusForbidden, "MATCH_REQUIRED"
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrPhotoNotFound),
		errors.Is(err, domain.ErrPreferencesNotFound),
		errors.Is(err, domain.ErrLikeNotFound),
		errors.Is(err, domain.ErrConversationNotFound),
		errors.Is(err, domain.ErrMessageNotFound),
		errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrAdminNotFound),
		errors.Is(err, domain.ErrReportNotFound),
		errors.Is(err, domain.ErrNotBlocked):
		return http.StatusNotFound, ""
	case errors.Is(err, domain.ErrEmailAlreadyTaken),
		errors.Is(err, domain.ErrProfileExists),
		errors.Is(err, domain.ErrLikeAlreadyExists),
		errors.Is(err, domain.ErrPhotoLimitReached),
		errors.Is(err, domain.ErrAlreadyBlocked),
		errors.Is(err, domain.ErrReportAlreadyClosed):
		return http.StatusConflict, ""
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrInvalidOTP):
		return http.StatusUnauthorized, ""
	case errors.Is(err, domain.ErrUserBanned):
		return http.StatusForbidden, "ACCOUNT_BANNED"
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotParticipant),
		errors.Is(err, domain.ErrNotMessageOwner),
		errors.Is(err, domain.ErrUserBlocked),
		errors.Is(err, domain.ErrProfileUnavailable):
		return http.StatusForbidden, ""
	case errors.Is(err, domain.ErrCannotLikeSelf),
		errors.Is(err, domain.ErrInvalidAgeRange),
		errors.Is(err, domain.ErrUnderage):
		return http.StatusBadRequest, ""
	default:
		return http.StatusInternalServerError, ""
	}
}

// respondError translates a usecase error into the HTTP reply.
func respondError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(status, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}

// currentAdminID reads the authenticated admin set by the admin middleware.
func currentAdminID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("admin_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a UUID path parameter, replying 400 on garbage.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
