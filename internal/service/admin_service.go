package service

import (
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/util"
	"corpready_backend/pkg/logger"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminService struct {
	UserRepo     *repository.UserRepository
	AdminLogRepo *repository.AdminLogRepository
}

func NewAdminService(userRepo *repository.UserRepository, adminLogRepo *repository.AdminLogRepository) *AdminService {
	return &AdminService{UserRepo: userRepo, AdminLogRepo: adminLogRepo}
}

func (s *AdminService) ListUsers(page, limit int, role string) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit, role)
}

func (s *AdminService) GetUser(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ResetUserPassword 重置为临时密码并清空刷新令牌，强制重新登录
func (s *AdminService) ResetUserPassword(adminID, userID uint) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrUserNotFound
		}
		return "", err
	}

	b := make([]byte, 4)
	rand.Read(b)
	tempPassword := "tmp-" + hex.EncodeToString(b)

	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user.Password = string(hashed)
	user.RefreshToken = ""
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	s.LogAction(adminID, "reset_password", "user", userID, "")
	return tempPassword, nil
}

var validRoles = map[model.UserRole]bool{
	model.Learner: true,
	model.Admin:   true,
	model.Curator: true,
	model.Ops:     true,
	model.Partner: true,
}

func (s *AdminService) ChangeRole(adminID, userID uint, role model.UserRole) (*model.User, error) {
	if !validRoles[role] {
		return nil, util.ErrPermissionDenied
	}
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	old := user.Role
	user.Role = role
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	s.LogAction(adminID, "change_role", "user", userID, string(old)+" -> "+string(role))
	return user, nil
}

// DeactivateUser 停用即踢下线：IsActive 置假并清空刷新令牌
func (s *AdminService) DeactivateUser(adminID, userID uint) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	if err := s.UserRepo.Deactivate(userID); err != nil {
		return err
	}
	s.LogAction(adminID, "deactivate_user", "user", userID, "")
	return nil
}

func (s *AdminService) ReactivateUser(adminID, userID uint) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	user.IsActive = true
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}
	s.LogAction(adminID, "reactivate_user", "user", userID, "")
	return nil
}

// LogAction 追加审计记录，落库失败只记日志，不阻断业务操作
func (s *AdminService) LogAction(adminID uint, action, targetType string, targetID uint, detail string) {
	entry := &model.AdminActionLog{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
	}
	if err := s.AdminLogRepo.Append(entry); err != nil {
		logger.Log.Error("failed to append admin action log",
			zap.Uint("adminId", adminID), zap.String("action", action), zap.Error(err))
	}
}

func (s *AdminService) ListActionLogs(page, limit int, adminID uint) ([]model.AdminActionLog, int64, error) {
	return s.AdminLogRepo.List(page, limit, adminID)
}
