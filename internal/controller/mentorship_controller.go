package controller

import (
	"corpready_backend/internal/service"
	"corpready_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type MentorshipController struct {
	MentorshipService *service.MentorshipService
}

func NewMentorshipController(mentorshipService *service.MentorshipService) *MentorshipController {
	return &MentorshipController{MentorshipService: mentorshipService}
}

// ListMentors godoc
// @Summary 导师列表
// @Tags 导师
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Mentor}
// @Router /api/mentors [get]
func (c *MentorshipController) ListMentors(ctx *gin.Context) {
	mentors, err := c.MentorshipService.ListMentors()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, mentors)
}

// BookSession godoc
// @Summary 预约导师会话
// @Description 预约成功后返回会议链接
// @Tags 导师
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.BookSessionRequest true "预约信息"
// @Success 201 {object} util.Response{data=model.MentorSession}
// @Failure 404 {object} util.Response "导师不存在"
// @Router /api/mentorship/sessions [post]
func (c *MentorshipController) BookSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.BookSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	session, err := c.MentorshipService.BookSession(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, session)
}

// ListSessions godoc
// @Summary 我的会话
// @Tags 导师
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.MentorSession}
// @Router /api/mentorship/sessions [get]
func (c *MentorshipController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	sessions, err := c.MentorshipService.ListSessions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// CancelSession godoc
// @Summary 取消会话
// @Description 只能取消本人未结束的会话
// @Tags 导师
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "会话 ID"
// @Success 200 {object} util.Response{data=model.MentorSession}
// @Failure 403 {object} util.Response "无权取消"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/mentorship/sessions/{id}/cancel [post]
func (c *MentorshipController) CancelSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	sessionID := util.MustParseUint(ctx.Param("id"))
	session, err := c.MentorshipService.CancelSession(claims.UserID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, session)
}
