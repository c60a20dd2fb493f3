package util

import "errors"

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserDisabled        = errors.New("account disabled")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshMismatch     = errors.New("refresh token revoked or replaced")
	ErrCourseNotFound      = errors.New("course not found")
	ErrVideoNotFound       = errors.New("video not found")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrCertNotFound        = errors.New("certificate not found")
	ErrInternshipNotFound  = errors.New("internship not found")
	ErrAlreadyApplied      = errors.New("already applied to this internship")
	ErrSessionNotFound     = errors.New("mentor session not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrEmptyAnswers        = errors.New("no answers submitted")
	ErrResetTokenExpired   = errors.New("reset token expired")
)
