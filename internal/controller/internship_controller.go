package controller

import (
	"corpready_backend/internal/model"
	"corpready_backend/internal/service"
	"corpready_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InternshipController struct {
	InternshipService *service.InternshipService
	AdminService      *service.AdminService
}

func NewInternshipController(internshipService *service.InternshipService, adminService *service.AdminService) *InternshipController {
	return &InternshipController{InternshipService: internshipService, AdminService: adminService}
}

// List godoc
// @Summary 实习岗位列表
// @Tags 实习
// @Produce  json
// @Param   page query int false "页码，默认 1"
// @Param   limit query int false "每页数量，默认 10"
// @Param   mode query string false "remote / onsite / hybrid"
// @Param   location query string false "按城市过滤"
// @Success 200 {object} util.Response{data=object}
// @Router /api/internships [get]
func (c *InternshipController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	items, total, err := c.InternshipService.List(page, limit, ctx.Query("mode"), ctx.Query("location"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": items, "total": total, "page": page, "limit": limit})
}

// Get godoc
// @Summary 实习岗位详情
// @Tags 实习
// @Produce  json
// @Param   id path int true "岗位 ID"
// @Success 200 {object} util.Response{data=model.Internship}
// @Failure 404 {object} util.Response "岗位不存在"
// @Router /api/internships/{id} [get]
func (c *InternshipController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	item, err := c.InternshipService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrInternshipNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, item)
}

// Save godoc
// @Summary 收藏岗位
// @Description 重复收藏不报错
// @Tags 实习
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "岗位 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "岗位不存在"
// @Router /api/internships/{id}/save [post]
func (c *InternshipController) Save(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.InternshipService.SaveForUser(claims.UserID, id); err != nil {
		if errors.Is(err, util.ErrInternshipNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Unsave godoc
// @Summary 取消收藏
// @Tags 实习
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "岗位 ID"
// @Success 200 {object} util.Response
// @Router /api/internships/{id}/save [delete]
func (c *InternshipController) Unsave(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.InternshipService.UnsaveForUser(claims.UserID, id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Apply godoc
// @Summary 投递岗位
// @Description 同一岗位只记一次投递
// @Tags 实习
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "岗位 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "岗位不存在"
// @Failure 409 {object} util.Response "已投递过该岗位"
// @Router /api/internships/{id}/apply [post]
func (c *InternshipController) Apply(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.InternshipService.Apply(claims.UserID, id); err != nil {
		switch {
		case errors.Is(err, util.ErrInternshipNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyApplied):
			util.Conflict(ctx, "已投递过该岗位")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// ListSaved godoc
// @Summary 我收藏的岗位
// @Tags 实习
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Internship}
// @Router /api/internships/saved [get]
func (c *InternshipController) ListSaved(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	items, err := c.InternshipService.ListSaved(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// ListApplications godoc
// @Summary 我的投递记录
// @Tags 实习
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.InternshipApplication}
// @Router /api/internships/applications [get]
func (c *InternshipController) ListApplications(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	items, err := c.InternshipService.ListApplications(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// Create godoc
// @Summary 新建岗位（管理端）
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.Internship true "岗位"
// @Success 201 {object} util.Response{data=model.Internship}
// @Router /api/admin/internships [post]
func (c *InternshipController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var item model.Internship
	if err := ctx.ShouldBindJSON(&item); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if item.Source == "" {
		item.Source = model.InternshipSourceAdmin
	}
	if err := c.InternshipService.Create(&item); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	c.AdminService.LogAction(claims.UserID, "create_internship", "internship", item.ID, item.Title)
	util.Created(ctx, item)
}

// Update godoc
// @Summary 更新岗位（管理端）
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "岗位 ID"
// @Param   body body model.Internship true "岗位"
// @Success 200 {object} util.Response{data=model.Internship}
// @Failure 404 {object} util.Response "岗位不存在"
// @Router /api/admin/internships/{id} [put]
func (c *InternshipController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))
	var item model.Internship
	if err := ctx.ShouldBindJSON(&item); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	item.ID = id
	if err := c.InternshipService.Update(&item); err != nil {
		if errors.Is(err, util.ErrInternshipNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	c.AdminService.LogAction(claims.UserID, "update_internship", "internship", id, item.Title)
	util.Success(ctx, item)
}

// Delete godoc
// @Summary 删除岗位（管理端）
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "岗位 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "岗位不存在"
// @Router /api/admin/internships/{id} [delete]
func (c *InternshipController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.InternshipService.Delete(id); err != nil {
		if errors.Is(err, util.ErrInternshipNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	c.AdminService.LogAction(claims.UserID, "delete_internship", "internship", id, "")
	util.Success(ctx, nil)
}
