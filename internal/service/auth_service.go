package service

import (
	"corpready_backend/internal/config"
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/util"
	"corpready_backend/pkg/logger"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Mailer   Mailer
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, mailer Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Mailer:   mailer,
		Cfg:      cfg,
	}
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func generateToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	user.IsActive = true
	user.VerifyToken = generateToken()

	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.ErrEmailRegistered
		}
		return err
	}

	// 验证邮件 best-effort，注册本身已经成功
	go func(u model.User) {
		if err := s.Mailer.SendVerification(&u, u.VerifyToken); err != nil {
			logger.Log.Error("failed to send verification email",
				zap.Uint("userId", u.ID), zap.Error(err))
		}
	}(*user)

	return nil
}

func (s *AuthService) VerifyEmail(token string) error {
	user, err := s.UserRepo.FindByVerifyToken(token)
	if err != nil {
		return util.ErrInvalidToken
	}

	user.IsVerified = true
	user.VerifyToken = ""
	return s.UserRepo.Update(user)
}

func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, util.ErrUserDisabled
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	user.LastLogin = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	return pair, nil
}

// issueTokens 签发新的令牌对并落库刷新令牌，旧会话随之失效
func (s *AuthService) issueTokens(user *model.User) (*TokenPair, error) {
	access, err := util.GenerateJWT(user, util.TokenAccess, s.Cfg.JWT.Secret, s.Cfg.JWT.AccessExpire)
	if err != nil {
		return nil, err
	}

	refresh, err := util.GenerateJWT(user, util.TokenRefresh, s.Cfg.JWT.Secret, s.Cfg.JWT.RefreshExpire)
	if err != nil {
		return nil, err
	}

	user.RefreshToken = refresh
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := util.ParseJWT(refreshToken, s.Cfg.JWT.Secret)
	if err != nil || claims.Kind != util.TokenRefresh {
		return nil, util.ErrInvalidToken
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, util.ErrInvalidToken
	}

	if !user.IsActive {
		return nil, util.ErrUserDisabled
	}

	// 与库中当前刷新令牌比对，旧令牌一经轮换立即作废
	if user.RefreshToken != refreshToken {
		return nil, util.ErrRefreshMismatch
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	return pair, nil
}

func (s *AuthService) Logout(userID uint) error {
	return s.UserRepo.UpdateRefreshToken(userID, "")
}

// ForgotPassword 不暴露邮箱是否存在，未注册邮箱也返回成功
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	expires := time.Now().Add(2 * time.Hour)
	user.ResetToken = generateToken()
	user.ResetTokenExpires = &expires
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}

	go func(u model.User) {
		if err := s.Mailer.SendPasswordReset(&u, u.ResetToken); err != nil {
			logger.Log.Error("failed to send password reset email",
				zap.Uint("userId", u.ID), zap.Error(err))
		}
	}(*user)

	return nil
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	user, err := s.UserRepo.FindByResetToken(token)
	if err != nil {
		return util.ErrInvalidToken
	}

	if user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		return util.ErrResetTokenExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashedPassword)
	user.ResetToken = ""
	user.ResetTokenExpires = nil
	user.RefreshToken = ""
	return s.UserRepo.Update(user)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
