package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/admin"
)

type AdminHandler struct {
	adminUseCase *admin.AdminUseCase
}

func NewAdminHandler(adminUseCase *admin.AdminUseCase) *AdminHandler {
	return &AdminHandler{adminUseCase: adminUseCase}
}

// Login handles POST /admin/login
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body admin.LoginRequest true "Credentials"
// @Success 200 {object} admin.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req admin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	resp, err := h.adminUseCase.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	filters := repository.UserFilters{
		Email: c.Query("email"),
	}
	if v := c.Query("is_banned"); v != "" {
		banned := v == "true"
		filters.IsBanned = &banned
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}
	filters.Limit, filters.Offset = pagination(c)

	resp, err := h.adminUseCase.ListUsers(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetUser handles GET /admin/users/:user_id
func (h *AdminHandler) GetUser(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	detail, err := h.adminUseCase.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// BanUser handles POST /admin/users/:user_id/ban
func (h *AdminHandler) BanUser(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	var req admin.BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.adminUseCase.BanUser(c.Request.Context(), userID, &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user banned"})
}

// UnbanUser handles POST /admin/users/:user_id/unban
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.adminUseCase.UnbanUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user unbanned"})
}

// DeleteUser handles DELETE /admin/users/:user_id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	if err := h.adminUseCase.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// reportRequest is the user-facing report payload.
type reportRequest struct {
	ReportedUserID uuid.UUID `json:"reported_user_id" binding:"required"`
	Reason         string    `json:"reason" binding:"required,max=200"`
	Details        *string   `json:"details" binding:"omitempty,max=1000"`
}

// ReportUser handles POST /reports (user-facing)
func (h *AdminHandler) ReportUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	report, err := h.adminUseCase.ReportUser(c.Request.Context(), userID, req.ReportedUserID, req.Reason, req.Details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// ListReports handles GET /admin/reports?status=PENDING
func (h *AdminHandler) ListReports(c *gin.Context) {
	status := domain.ReportStatus(c.Query("status"))
	limit, offset := pagination(c)

	reports, err := h.adminUseCase.ListReports(c.Request.Context(), status, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// ReviewReport handles PUT /admin/reports/:report_id
func (h *AdminHandler) ReviewReport(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}
	reportID, ok := pathUUID(c, "report_id")
	if !ok {
		return
	}

	var req admin.ReviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	report, err := h.adminUseCase.ReviewReport(c.Request.Context(), reportID, adminID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// UnverifiedPhotos handles GET /admin/photos/unverified
func (h *AdminHandler) UnverifiedPhotos(c *gin.Context) {
	limit, offset := pagination(c)

	photos, err := h.adminUseCase.UnverifiedPhotos(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

// VerifyPhoto handles PUT /admin/photos/:photo_id/verify?approve=true
func (h *AdminHandler) VerifyPhoto(c *gin.Context) {
	photoID, ok := pathUUID(c, "photo_id")
	if !ok {
		return
	}
	approve, err := strconv.ParseBool(c.DefaultQuery("approve", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid approve parameter"})
		return
	}

	if err := h.adminUseCase.VerifyPhoto(c.Request.Context(), photoID, approve); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "photo reviewed"})
}
