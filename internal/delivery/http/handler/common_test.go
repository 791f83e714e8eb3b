package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrMatchRequired, http.StatusForbidden, "MATCH_REQUIRED"},
		{domain.ErrUserBanned, http.StatusForbidden, "ACCOUNT_BANNED"},
		{domain.ErrProfileNotFound, http.StatusNotFound, ""},
		{domain.ErrProfileExists, http.StatusConflict, ""},
		{domain.ErrPhotoLimitReached, http.StatusConflict, ""},
		{domain.ErrUnderage, http.StatusBadRequest, ""},
		{domain.ErrInvalidAgeRange, http.StatusBadRequest, ""},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, ""},
		{domain.ErrNotParticipant, http.StatusForbidden, ""},
		{assert.AnError, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, code := errorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestErrorStatusUnwraps(t *testing.T) {
	status, _ := errorStatus(fmt.Errorf("creating profile: %w", domain.ErrUnderage))
	assert.Equal(t, http.StatusBadRequest, status)
}
