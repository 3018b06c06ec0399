// internal/services/auth_service.go
package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gamebazaar/gamebazaar-backend/internal/apperrors"
	"github.com/gamebazaar/gamebazaar-backend/internal/config"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username    string                 `json:"username" validate:"required,username"`
	Email       string                 `json:"email" validate:"required,email"`
	Password    string                 `json:"password" validate:"required,strong_password"`
	ProfileData map[string]interface{} `json:"profile_data,omitempty"`
}

type UpdateProfileRequest struct {
	Username    string                 `json:"username,omitempty" validate:"omitempty,username"`
	Avatar      string                 `json:"avatar,omitempty" validate:"omitempty,max=512"`
	ProfileData map[string]interface{} `json:"profile_data,omitempty"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	// Check if user already exists
	var existingUser models.User
	if err := s.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existingUser).Error; err == nil {
		if existingUser.Email == req.Email {
			return nil, apperrors.Conflict("user with this email already exists")
		}
		return nil, apperrors.Conflict("username already taken")
	}

	// Registration always creates a regular user; admins are promoted
	// through the admin API, never self-assigned.
	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Role:        models.UserRoleUser,
		Status:      models.UserStatusActive,
		ProfileData: models.JSONB(req.ProfileData),
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Internal("failed to create user", err)
	}

	return s.buildAuthResponse(user)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.Forbidden("account is " + string(user.Status))
	}

	now := time.Now()
	s.db.Model(&user).UpdateColumn("last_login_at", &now)

	return s.buildAuthResponse(&user)
}

func (s *AuthService) RefreshToken(refreshToken string) (*AuthResponse, error) {
	subject, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, apperrors.NotFound("user")
	}

	return s.buildAuthResponse(&user)
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, apperrors.NotFound("user")
	}
	return &user, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, apperrors.NotFound("user")
	}

	updates := make(map[string]interface{})
	if req.Username != "" && req.Username != user.Username {
		var count int64
		s.db.Model(&models.User{}).Where("username = ? AND id <> ?", req.Username, userID).Count(&count)
		if count > 0 {
			return nil, apperrors.Conflict("username already taken")
		}
		updates["username"] = req.Username
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}
	if req.ProfileData != nil {
		updates["profile_data"] = models.JSONB(req.ProfileData)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, apperrors.Internal("failed to update profile", err)
		}
	}

	s.db.First(&user, userID)
	return &user, nil
}

func (s *AuthService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(
		user.ID,
		user.Username,
		string(user.Role),
		s.cfg.JWT.AccessTokenTTL,
	)
	if err != nil {
		return nil, apperrors.Internal("failed to generate access token", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, apperrors.Internal("failed to generate refresh token", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
