package controller

import (
	"corpready_backend/internal/service"
	"corpready_backend/internal/util"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertService *service.CertificateService
}

func NewCertificateController(certService *service.CertificateService) *CertificateController {
	return &CertificateController{CertService: certService}
}

// ListMine godoc
// @Summary 我的证书
// @Tags 证书
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/certificates [get]
func (c *CertificateController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	certs, err := c.CertService.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// Download godoc
// @Summary 下载证书 PDF
// @Description 首次下载时渲染并缓存，之后直接返回缓存文件
// @Tags 证书
// @Produce  application/pdf
// @Security BearerAuth
// @Param   id path int true "证书 ID"
// @Success 200 {file} file
// @Failure 403 {object} util.Response "不是本人的证书"
// @Failure 404 {object} util.Response "证书不存在"
// @Router /api/certificates/{id}/download [get]
func (c *CertificateController) Download(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	certID := util.MustParseUint(ctx.Param("id"))
	cert, err := c.CertService.GetByID(claims.UserID, certID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCertNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	path, err := c.CertService.RenderPDF(cert)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.FileAttachment(path, fmt.Sprintf("certificate_%s.pdf", cert.CertificateCode))
}

// Verify godoc
// @Summary 公开验证证书
// @Description 无需登录，按证书编号返回持有人与课程信息
// @Tags 证书
// @Produce  json
// @Param   code path string true "证书编号"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "证书编号无效"
// @Router /api/certificates/verify/{code} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	code := ctx.Param("code")
	cert, user, err := c.CertService.Verify(code)
	if err != nil {
		if errors.Is(err, util.ErrCertNotFound) {
			// 公开接口约定 404 也带 valid 字段
			ctx.JSON(http.StatusNotFound, util.Response{
				Code:    http.StatusNotFound,
				Message: "Certificate not found",
				Data:    gin.H{"valid": false},
			})
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{
		"valid":           true,
		"certificateCode": cert.CertificateCode,
		"courseName":      cert.CourseName,
		"holderName":      user.Name,
		"holderEmail":     user.Email,
		"issuedAt":        cert.IssuedAt,
	})
}
