package controller

import (
	"corpready_backend/internal/model"
	"corpready_backend/internal/service"
	"corpready_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
	AdminService  *service.AdminService
}

func NewCourseController(courseService *service.CourseService, adminService *service.AdminService) *CourseController {
	return &CourseController{CourseService: courseService, AdminService: adminService}
}

// ListDomains godoc
// @Summary 领域列表
// @Tags 课程目录
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Domain}
// @Router /api/domains [get]
func (c *CourseController) ListDomains(ctx *gin.Context) {
	domains, err := c.CourseService.ListDomains()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, domains)
}

// ListTopics godoc
// @Summary 领域下的主题列表
// @Tags 课程目录
// @Produce  json
// @Param   id path int true "领域 ID"
// @Success 200 {object} util.Response{data=[]model.Topic}
// @Failure 404 {object} util.Response "领域不存在"
// @Router /api/domains/{id}/topics [get]
func (c *CourseController) ListTopics(ctx *gin.Context) {
	domainID := util.MustParseUint(ctx.Param("id"))
	topics, err := c.CourseService.ListTopics(domainID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, topics)
}

// ListCourses godoc
// @Summary 课程列表
// @Tags 课程
// @Produce  json
// @Param   page query int false "页码，默认 1"
// @Param   limit query int false "每页数量，默认 10"
// @Param   topicId query int false "按主题过滤"
// @Success 200 {object} util.Response{data=object}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	topicID := util.MustParseUint(ctx.Query("topicId"))

	courses, total, err := c.CourseService.ListCourses(page, limit, topicID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": courses, "total": total, "page": page, "limit": limit})
}

// GetCourse godoc
// @Summary 课程详情
// @Description 返回课程及其模块与视频，按序排列
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	course, err := c.CourseService.GetCourse(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

type GenerateCourseBody struct {
	Domain         string   `json:"domain" binding:"required"`
	Topics         []string `json:"topics"`
	TargetAudience string   `json:"targetAudience"`
	SkillLevel     string   `json:"skillLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
}

// Generate godoc
// @Summary AI 生成课程
// @Description 调用工作流引擎生成大纲并用 YouTube 视频填充，生成结果直接入库
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GenerateCourseBody true "生成参数"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/courses/generate [post]
func (c *CourseController) Generate(ctx *gin.Context) {
	var body GenerateCourseBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Generate(ctx.Request.Context(), service.GenerateCourseRequest{
		Domain:         body.Domain,
		Topics:         body.Topics,
		TargetAudience: body.TargetAudience,
		SkillLevel:     body.SkillLevel,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// SearchVideos godoc
// @Summary 搜索 YouTube 视频
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   q query string true "检索词"
// @Param   limit query int false "返回数量，默认 10"
// @Success 200 {object} util.Response{data=[]service.YouTubeVideo}
// @Router /api/videos/search [get]
func (c *CourseController) SearchVideos(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "缺少检索词")
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	videos, err := c.CourseService.SearchVideos(ctx.Request.Context(), query, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, videos)
}

// UpdateCourse godoc
// @Summary 更新课程（管理端）
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Param   body body model.Course true "课程"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))
	existing, err := c.CourseService.GetCourse(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var body model.Course
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	existing.Title = body.Title
	existing.Description = body.Description
	existing.EstimatedHours = body.EstimatedHours
	existing.SkillLevel = body.SkillLevel
	existing.TargetAudience = body.TargetAudience

	if err := c.CourseService.UpdateCourse(existing); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	c.AdminService.LogAction(claims.UserID, "update_course", "course", id, existing.Title)
	util.Success(ctx, existing)
}

// DeleteCourse godoc
// @Summary 删除课程（管理端）
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.CourseService.DeleteCourse(id); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	c.AdminService.LogAction(claims.UserID, "delete_course", "course", id, "")
	util.Success(ctx, nil)
}
