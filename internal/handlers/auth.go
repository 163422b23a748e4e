package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"myhealth-server/internal/apperr"
	"myhealth-server/internal/config"
	"myhealth-server/internal/models"
	"myhealth-server/internal/store"
	"myhealth-server/internal/utils"
)

const refreshCookie = "refresh_token"

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Users *store.UserStore
	Cfg   *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *store.UserStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Users: users, Cfg: cfg}
}

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"omitempty,oneof=patient doctor"` // defaults to patient
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	existing, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		internalError(c, "Database error", err)
		return
	}
	if existing != nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	}

	role := models.RolePatient
	if req.Role != "" {
		role = models.Role(req.Role)
	}
	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		internalError(c, "Failed to hash password", err)
		return
	}
	if err := h.Users.Create(c.Request.Context(), &user); err != nil {
		internalError(c, "Failed to create user", err)
		return
	}

	utils.Created(c, "User registered successfully", user.Sanitize())
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	User         models.UserSanitized `json:"user"`
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		internalError(c, "Database error", err)
		return
	}
	if user == nil || !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	accessToken, refreshToken, ok := h.issueTokens(c, user)
	if !ok {
		return
	}

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Sanitize(),
	})
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResponse represents the response body for successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken rotates the refresh token: the presented one is revoked and a
// new pair is issued. The cookie wins over the request body.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := c.Request.Context()
	presented, err := c.Cookie(refreshCookie)
	if err != nil || presented == "" {
		var req RefreshTokenRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}
		presented = req.RefreshToken
	}

	claims, err := utils.ValidateToken(presented, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	now := time.Now()
	if _, err := h.Users.FindActiveRefreshToken(ctx, presented, claims.UserID, now); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
		} else {
			internalError(c, "Database error checking refresh token", err)
		}
		return
	}

	user, err := h.Users.FindByID(ctx, claims.UserID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			utils.Unauthorized(c, "User no longer exists")
		} else {
			internalError(c, "Failed to find user associated with token", err)
		}
		return
	}

	if err := h.Users.RevokeRefreshToken(ctx, presented, now); err != nil {
		internalError(c, "Failed to revoke refresh token", err)
		return
	}

	accessToken, refreshToken, ok := h.issueTokens(c, user)
	if !ok {
		return
	}

	utils.Success(c, "Access token refreshed successfully", RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Logout revokes the refresh token from the cookie or the body and clears the
// cookie. An unknown token still logs out.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(refreshCookie)
	if token == "" {
		var req LogoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request payload: "+err.Error())
			return
		}
		token = req.RefreshToken
	}
	if token == "" {
		utils.BadRequest(c, "Refresh token is required")
		return
	}

	if err := h.Users.RevokeRefreshToken(c.Request.Context(), token, time.Now()); err != nil {
		internalError(c, "Failed to revoke refresh token", err)
		return
	}

	c.SetCookie(refreshCookie, "", -1, "/", "", !h.Cfg.IsDevelopment(), true)
	utils.Success(c, "Logout successful. Refresh token has been invalidated.", nil)
}

// GetProfile handles fetching the currently authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), actor.ID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			utils.NotFound(c, "User profile not found")
		} else {
			internalError(c, "Database error", err)
		}
		return
	}

	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}

// UpdateProfileRequest represents the request body for updating user profile.
// Empty fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone" binding:"omitempty,max=20"`
	Address     string `json:"address" binding:"omitempty,max=256"`
	DateOfBirth string `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateProfile handles updating the currently authenticated user's profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), actor.ID)
	if err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.DateOfBirth != "" {
		dob, _ := time.Parse("2006-01-02", req.DateOfBirth)
		user.DateOfBirth = &dob
	}

	if err := h.Users.Save(c.Request.Context(), user); err != nil {
		internalError(c, "Failed to update profile", err)
		return
	}

	utils.Success(c, "Profile updated successfully", user.Sanitize())
}

// issueTokens signs a new token pair, stores the refresh token and sets it as
// an HTTP-only cookie. It writes the error response itself.
func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) (string, string, bool) {
	accessToken, refreshToken, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		internalError(c, "Failed to generate tokens", err)
		return "", "", false
	}

	stored := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: utils.RefreshExpiry(h.Cfg, time.Now()),
	}
	if err := h.Users.CreateRefreshToken(c.Request.Context(), &stored); err != nil {
		internalError(c, "Failed to store refresh token", err)
		return "", "", false
	}

	c.SetCookie(
		refreshCookie,
		refreshToken,
		h.Cfg.JWTRefreshExpirationHours*60*60,
		"/",
		"",
		!h.Cfg.IsDevelopment(), // Secure outside development
		true,
	)
	return accessToken, refreshToken, true
}
