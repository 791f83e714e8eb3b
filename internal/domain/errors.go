package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyTaken    = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserBanned           = errors.New("account is banned")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrInvalidOTP           = errors.New("invalid or expired code")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileExists        = errors.New("profile already exists")
	ErrProfileUnavailable   = errors.New("profile is not available")
	ErrUnderage             = errors.New("user must be at least 18 years old")
	ErrPhotoNotFound        = errors.New("photo not found")
	ErrPhotoLimitReached    = errors.New("photo limit reached")
	ErrPreferencesNotFound  = errors.New("match preferences not found")
	ErrInvalidAgeRange      = errors.New("age minimum must not exceed age maximum")
	ErrCannotLikeSelf       = errors.New("you cannot like yourself")
	ErrLikeAlreadyExists    = errors.New("you have already liked this user")
	ErrLikeNotFound         = errors.New("like not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("you are not part of this conversation")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotMessageOwner      = errors.New("you can only delete your own messages")
	ErrMatchRequired        = errors.New("you need to match with this user to continue chatting")
	ErrUserBlocked          = errors.New("messaging is not available with this user")
	ErrAlreadyBlocked       = errors.New("user is already blocked")
	ErrNotBlocked           = errors.New("user is not blocked")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrReportAlreadyClosed  = errors.New("report has already been reviewed")
	ErrForbidden            = errors.New("forbidden")
)
