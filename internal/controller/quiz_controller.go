package controller

import (
	"corpready_backend/internal/service"
	"corpready_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// GetCourseQuiz godoc
// @Summary 课程测验
// @Description 题目不包含正确答案
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程 ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "课程无测验"
// @Router /api/courses/{id}/quiz [get]
func (c *QuizController) GetCourseQuiz(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	quiz, err := c.QuizService.GetCourseQuiz(courseID)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// SubmitQuiz godoc
// @Summary 提交测验
// @Description 返回得分与是否通过，通过且首次达标时附带新签发的证书
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验 ID"
// @Param   body body service.SubmitQuizRequest true "答案，questionID 到选项下标"
// @Success 200 {object} util.Response{data=service.QuizResult}
// @Failure 400 {object} util.Response "答案为空"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	quizID := util.MustParseUint(ctx.Param("id"))
	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.QuizService.SubmitQuiz(claims.UserID, quizID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyAnswers):
			util.BadRequest(ctx, "答案不能为空")
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// ListAttempts godoc
// @Summary 我的测验记录
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验 ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	quizID := util.MustParseUint(ctx.Param("id"))
	attempts, err := c.QuizService.ListAttempts(claims.UserID, quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}
