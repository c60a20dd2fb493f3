package service

import (
	"corpready_backend/internal/config"
	"corpready_backend/internal/model"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// Mailer 通知邮件出口。所有调用方都按 best-effort 处理：
// 发送失败只记日志，不回滚、不影响主流程。
type Mailer interface {
	SendVerification(user *model.User, token string) error
	SendPasswordReset(user *model.User, token string) error
	SendCourseCompletion(user *model.User, courseName string) error
	SendCertificateReady(user *model.User, cert *model.Certificate) error
}

type EmailService struct {
	Cfg *config.Config
}

var _ Mailer = (*EmailService)(nil)

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{Cfg: cfg}
}

func (s *EmailService) send(to *model.User, subject, plain, html string) error {
	from := sgmail.NewEmail(s.Cfg.Email.FromName, s.Cfg.Email.FromAddress)
	recipient := sgmail.NewEmail(to.Name, to.Email)
	message := sgmail.NewSingleEmail(from, subject, recipient, plain, html)

	req := sendgrid.GetRequest(s.Cfg.Email.SendgridAPIKey, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(message)

	res, err := sendgrid.API(req)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid error (status %d): %s", res.StatusCode, res.Body)
	}
	return nil
}

func (s *EmailService) SendVerification(user *model.User, token string) error {
	link := fmt.Sprintf("%s/api/auth/verify-email?token=%s", s.Cfg.Server.BaseURL, token)
	plain := fmt.Sprintf("Hi %s,\n\nPlease verify your CorpReady account: %s\n", user.Name, link)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Please verify your CorpReady account: <a href="%s">Verify Email</a></p>`, user.Name, link)
	return s.send(user, "Verify your CorpReady account", plain, html)
}

func (s *EmailService) SendPasswordReset(user *model.User, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.Cfg.Server.BaseURL, token)
	plain := fmt.Sprintf("Hi %s,\n\nReset your CorpReady password: %s\nThe link expires in 2 hours.\n", user.Name, link)
	html := fmt.Sprintf(`<p>Hi %s,</p><p><a href="%s">Reset your CorpReady password</a>. The link expires in 2 hours.</p>`, user.Name, link)
	return s.send(user, "Reset your CorpReady password", plain, html)
}

func (s *EmailService) SendCourseCompletion(user *model.User, courseName string) error {
	plain := fmt.Sprintf("Congratulations %s!\n\nYou completed the course \"%s\".\n", user.Name, courseName)
	html := fmt.Sprintf(`<p>Congratulations %s!</p><p>You completed the course <b>%s</b>.</p>`, user.Name, courseName)
	return s.send(user, fmt.Sprintf("Course completed: %s", courseName), plain, html)
}

func (s *EmailService) SendCertificateReady(user *model.User, cert *model.Certificate) error {
	verifyLink := fmt.Sprintf("%s/api/certificates/verify/%s", s.Cfg.Server.BaseURL, cert.CertificateCode)
	plain := fmt.Sprintf("Hi %s,\n\nYour certificate for \"%s\" is ready.\nCode: %s\nVerify: %s\n",
		user.Name, cert.CourseName, cert.CertificateCode, verifyLink)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Your certificate for <b>%s</b> is ready.</p><p>Code: <code>%s</code> — <a href="%s">verify</a></p>`,
		user.Name, cert.CourseName, cert.CertificateCode, verifyLink)
	return s.send(user, "Your CorpReady certificate is ready", plain, html)
}
