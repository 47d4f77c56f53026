package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/mailer"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/otp"
	"github.com/BruksfildServices01/salon-booking/internal/token"
)

type AuthHandler struct {
	db       *gorm.DB
	tokens   *token.Issuer
	mail     mailer.Sender
	throttle *otp.Throttle
}

func NewAuthHandler(db *gorm.DB, tokens *token.Issuer, mail mailer.Sender, throttle *otp.Throttle) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, mail: mail, throttle: throttle}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=client salon-owner"`
}

type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profile_image" binding:"omitempty,url"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_exists", "User with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "An unexpected error occurred.")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}

	code, err := otp.Generate()
	if err != nil {
		httperr.Internal(c, "failed_to_generate_otp", "An unexpected error occurred.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         role,
	}
	user.SetOTP(code, otp.Expiry())

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Handle(c, err)
		return
	}

	// The user stays created even when delivery fails; /request-otp is
	// the recovery path.
	if err := h.mail.SendOTP(email, code); err != nil {
		httperr.Internal(c, "email_delivery_failed", "Failed to send email.")
		return
	}

	httpresp.MessageData(c, http.StatusCreated,
		"User registered successfully. Please verify your account with the OTP sent to your email.",
		gin.H{"user": userSummary(&user)},
	)
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, err := h.findByEmail(req.Email)
	if err != nil {
		httperr.BadRequest(c, "user_not_found", "User not found.")
		return
	}

	if user.IsVerified {
		httperr.BadRequest(c, "already_verified", "User is already verified.")
		return
	}

	if user.OTP == nil || *user.OTP != req.OTP {
		httperr.BadRequest(c, "invalid_otp", "Invalid OTP.")
		return
	}
	if otp.IsExpired(user.OTPExpires) {
		httperr.BadRequest(c, "otp_expired", "OTP has expired.")
		return
	}

	user.IsVerified = true
	user.ClearOTP()
	if err := h.db.Save(user).Error; err != nil {
		httperr.Handle(c, err)
		return
	}

	access, refresh, err := h.issueTokens(user.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "An unexpected error occurred.")
		return
	}

	httpresp.MessageData(c, http.StatusOK, "Account verified successfully.", gin.H{
		"user":          userSummary(user),
		"token":         access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// Unknown email and wrong password answer the same message so the
	// response never reveals which check failed.
	user, err := h.findByEmail(req.Email)
	if err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	if !user.IsVerified {
		if err := h.reissueOTP(c, user, h.mail.SendOTP); err != nil {
			return
		}
		httperr.Unauthorized(c, "account_not_verified",
			"Account not verified. Please verify your account with the OTP sent to your email.")
		return
	}

	access, refresh, err := h.issueTokens(user.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "An unexpected error occurred.")
		return
	}

	httpresp.MessageData(c, http.StatusOK, "Login successful.", gin.H{
		"user":          userSummary(user),
		"token":         access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) RequestOTP(c *gin.Context) {
	h.resendOTP(c, h.mail.SendOTP, "OTP sent successfully.")
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	h.resendOTP(c, h.mail.SendPasswordReset, "Password reset OTP sent successfully.")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, err := h.findByEmail(req.Email)
	if err != nil {
		httperr.BadRequest(c, "user_not_found", "User not found.")
		return
	}

	// Reset does not require a verified account.
	if user.OTP == nil || *user.OTP != req.OTP {
		httperr.BadRequest(c, "invalid_otp", "Invalid OTP.")
		return
	}
	if otp.IsExpired(user.OTPExpires) {
		httperr.BadRequest(c, "otp_expired", "OTP has expired.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "An unexpected error occurred.")
		return
	}

	user.PasswordHash = string(hashed)
	user.ClearOTP()
	if err := h.db.Save(user).Error; err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Password reset successfully.")
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Not authorized to access this route.")
		return
	}

	httpresp.OK(c, gin.H{"user": userSummary(user)})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Not authorized to access this route.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.ProfileImage != "" {
		user.ProfileImage = req.ProfileImage
	}

	if err := h.db.Save(user).Error; err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.MessageData(c, http.StatusOK, "Profile updated successfully.", gin.H{"user": userSummary(user)})
}

// --------- Helpers ---------

func (h *AuthHandler) findByEmail(email string) (*models.User, error) {
	var user models.User
	err := h.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (h *AuthHandler) issueTokens(userID uint) (string, string, error) {
	access, err := h.tokens.IssueAccess(userID)
	if err != nil {
		return "", "", err
	}
	refresh, err := h.tokens.IssueRefresh(userID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// reissueOTP stores a fresh code on the user and emails it. It writes
// the error response itself and returns non-nil when the caller must
// stop.
func (h *AuthHandler) reissueOTP(c *gin.Context, user *models.User, send func(to, code string) error) error {
	if allowed, _ := h.throttle.Allow(c.Request.Context(), user.Email); !allowed {
		httperr.TooManyRequests(c, "too_many_requests", "Too many OTP requests. Please try again later.")
		return httperr.ErrBusiness("too_many_requests")
	}

	code, err := otp.Generate()
	if err != nil {
		httperr.Internal(c, "failed_to_generate_otp", "An unexpected error occurred.")
		return err
	}

	user.SetOTP(code, otp.Expiry())
	if err := h.db.Save(user).Error; err != nil {
		httperr.Handle(c, err)
		return err
	}

	if err := send(user.Email, code); err != nil {
		httperr.Internal(c, "email_delivery_failed", "Failed to send email.")
		return err
	}

	return nil
}

func (h *AuthHandler) resendOTP(c *gin.Context, send func(to, code string) error, successMessage string) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, err := h.findByEmail(req.Email)
	if err != nil {
		httperr.BadRequest(c, "user_not_found", "User not found.")
		return
	}

	if err := h.reissueOTP(c, user, send); err != nil {
		return
	}

	httpresp.Message(c, http.StatusOK, successMessage)
}

func userSummary(u *models.User) gin.H {
	out := gin.H{
		"id":          u.ID,
		"name":        u.Name,
		"email":       u.Email,
		"phone":       u.Phone,
		"role":        u.Role,
		"is_verified": u.IsVerified,
	}
	if u.ProfileImage != "" {
		out["profile_image"] = u.ProfileImage
	}
	return out
}
