package service

import (
	"corpready_backend/internal/config"
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/util"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

type CertificateService struct {
	CertRepo *repository.CertificateRepository
	UserRepo *repository.UserRepository
	Config   *config.Config
}

func NewCertificateService(
	certRepo *repository.CertificateRepository,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *CertificateService {
	return &CertificateService{
		CertRepo: certRepo,
		UserRepo: userRepo,
		Config:   cfg,
	}
}

// EnsureIssued 幂等签发：同一 (用户, 课程) 只产生一张证书。
// 视频完课和测验通过两条路径都汇聚到这里，靠唯一索引兜底并发，
// 返回值 created 表示本次调用是否真的新建了证书。
func (s *CertificateService) EnsureIssued(userID, courseID uint, courseName string) (*model.Certificate, bool, error) {
	existing, err := s.CertRepo.FindByUserAndCourse(userID, courseID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	cert := &model.Certificate{
		UserID:          userID,
		CourseID:        courseID,
		CourseName:      courseName,
		CertificateCode: generateCertificateCode(),
		IssuedAt:        time.Now(),
	}
	if err := s.CertRepo.Create(cert); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发双发，对方已插入，读回即可
			existing, ferr := s.CertRepo.FindByUserAndCourse(userID, courseID)
			if ferr != nil {
				return nil, false, ferr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return cert, true, nil
}

// generateCertificateCode 形如 CR-3F9A-0B7C-D218，便于口头/邮件转述
func generateCertificateCode() string {
	b := make([]byte, 6)
	rand.Read(b)
	return fmt.Sprintf("CR-%02X%02X-%02X%02X-%02X%02X", b[0], b[1], b[2], b[3], b[4], b[5])
}

func (s *CertificateService) ListByUser(userID uint) ([]model.Certificate, error) {
	return s.CertRepo.ListByUser(userID)
}

func (s *CertificateService) GetByID(userID, certID uint) (*model.Certificate, error) {
	cert, err := s.CertRepo.FindByID(certID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCertNotFound
		}
		return nil, err
	}
	if cert.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return cert, nil
}

// Verify 公开校验入口，按证书编号查询，不要求登录
func (s *CertificateService) Verify(code string) (*model.Certificate, *model.User, error) {
	cert, err := s.CertRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrCertNotFound
		}
		return nil, nil, err
	}
	user, err := s.UserRepo.FindByID(cert.UserID)
	if err != nil {
		return nil, nil, err
	}
	return cert, user, nil
}

// RenderPDF 渲染证书 PDF 并缓存到磁盘，同一证书只渲染一次
func (s *CertificateService) RenderPDF(cert *model.Certificate) (string, error) {
	if cert.PDFPath != "" {
		if _, err := os.Stat(cert.PDFPath); err == nil {
			return cert.PDFPath, nil
		}
	}

	user, err := s.UserRepo.FindByID(cert.UserID)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.Config.Certificate.CacheDir, fmt.Sprintf("cert_%d.pdf", cert.ID))
	if err := renderCertificatePDF(path, user.Name, cert); err != nil {
		return "", err
	}
	if err := s.CertRepo.UpdatePDFPath(cert.ID, path); err != nil {
		return "", err
	}
	cert.PDFPath = path
	return path, nil
}

func renderCertificatePDF(path, userName string, cert *model.Certificate) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	w, h := pdf.GetPageSize()
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(30, 64, 175)
	pdf.Rect(8, 8, w-16, h-16, "D")

	pdf.SetFont("Helvetica", "B", 34)
	pdf.SetTextColor(30, 64, 175)
	pdf.SetY(40)
	pdf.CellFormat(0, 14, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(10)
	pdf.CellFormat(0, 8, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(20, 20, 20)
	pdf.Ln(4)
	pdf.CellFormat(0, 12, userName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(4)
	pdf.CellFormat(0, 8, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(20, 20, 20)
	pdf.Ln(2)
	pdf.CellFormat(0, 10, cert.CourseName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetY(h - 42)
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued on %s", cert.IssuedAt.Format("January 2, 2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Certificate No. %s", cert.CertificateCode), "", 1, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}
