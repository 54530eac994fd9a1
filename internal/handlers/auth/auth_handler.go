// internal/handlers/auth/auth_handler.go
package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/user"
	"vahanbazaar-service/internal/middleware"
	xerrors "vahanbazaar-service/internal/pkg/errors"
	"vahanbazaar-service/internal/pkg/response"
	"vahanbazaar-service/internal/service/auth"
)

type AuthHandler struct {
	authService *auth.Service
	logger      *zap.Logger
}

func NewAuthHandler(authService *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

type requestOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// RequestOTP sends a login code to the phone.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req requestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "phone is required", err)
		return
	}

	err := h.authService.RequestOTP(c.Request.Context(), req.Phone)
	if errors.Is(err, xerrors.ErrRateLimited) {
		response.Error(c, http.StatusTooManyRequests, "too many code requests, try again later", err)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to send code", err)
		return
	}

	response.Success(c, http.StatusOK, "code sent", nil)
}

type verifyOTPRequest struct {
	Phone  string `json:"phone" binding:"required"`
	Code   string `json:"code" binding:"required"`
	Device string `json:"device"`
}

// VerifyOTP exchanges a code for an access token, creating the account on
// first login.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "phone and code are required", err)
		return
	}

	result, err := h.authService.VerifyOTP(
		c.Request.Context(),
		req.Phone, req.Code, req.Device,
		c.ClientIP(), c.Request.UserAgent(),
	)
	if errors.Is(err, xerrors.ErrOTPMismatch) {
		response.Error(c, http.StatusUnauthorized, "wrong or expired code", err)
		return
	}
	if errors.Is(err, xerrors.ErrRateLimited) {
		response.Error(c, http.StatusTooManyRequests, "too many attempts, try again later", err)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to verify code", err)
		return
	}

	response.Success(c, http.StatusOK, "logged in", result)
}

// GetMe returns the authenticated user.
func (h *AuthHandler) GetMe(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	u, err := h.authService.Me(c.Request.Context(), identityID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "user not found", err)
		return
	}

	response.Success(c, http.StatusOK, "user retrieved", u)
}

// UpdateProfile updates the caller's profile fields.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid profile payload", err)
		return
	}

	u, err := h.authService.UpdateProfile(c.Request.Context(), identityID, &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to update profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile updated", u)
}

// Logout revokes the current token.
func (h *AuthHandler) Logout(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)
	jti := middleware.MustGetJTI(c)

	err := h.authService.Logout(c.Request.Context(), identityID, jti, middleware.GetTokenExpiry(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to log out", err)
		return
	}

	response.Success(c, http.StatusOK, "logged out", nil)
}
