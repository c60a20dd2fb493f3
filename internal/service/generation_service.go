package service

import (
	"bytes"
	"context"
	"corpready_backend/internal/config"
	"corpready_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// GenerationService 调用外部 AI 课程生成工作流引擎。
// 引擎不可用时返回一个最小课程骨架，保证生成入口总能出结果。
type GenerationService struct {
	Cfg config.WorkflowConfig
}

func NewGenerationService(cfg config.WorkflowConfig) *GenerationService {
	return &GenerationService{Cfg: cfg}
}

type GenerateCourseRequest struct {
	Domain         string   `json:"domain"`
	Topics         []string `json:"topics"`
	TargetAudience string   `json:"targetAudience"`
	SkillLevel     string   `json:"skillLevel"`
}

type GeneratedModule struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	SearchTerms []string `json:"searchTerms"` // 每个模块的 YouTube 检索词
}

type GeneratedCourse struct {
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	EstimatedHours float64           `json:"estimatedHours"`
	Modules        []GeneratedModule `json:"modules"`
}

func (s *GenerationService) GenerateCourse(ctx context.Context, req GenerateCourseRequest) *GeneratedCourse {
	course, err := s.callWorkflow(ctx, req)
	if err != nil {
		logger.Log.Warn("course generation workflow failed, using fallback",
			zap.String("domain", req.Domain), zap.Error(err))
		return fallbackCourse(req)
	}
	return course
}

func (s *GenerationService) callWorkflow(ctx context.Context, req GenerateCourseRequest) (*GeneratedCourse, error) {
	if s.Cfg.WebhookURL == "" {
		return nil, fmt.Errorf("workflow webhook not configured")
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Cfg.WebhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if s.Cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.Cfg.APIKey)
	}

	client := &http.Client{Timeout: s.Cfg.Timeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("workflow engine error (status %d): %s", resp.StatusCode, string(body))
	}

	var course GeneratedCourse
	if err := json.Unmarshal(body, &course); err != nil {
		return nil, err
	}

	if course.Title == "" || len(course.Modules) == 0 {
		return nil, fmt.Errorf("workflow engine returned an empty course")
	}

	return &course, nil
}

func fallbackCourse(req GenerateCourseRequest) *GeneratedCourse {
	title := fmt.Sprintf("%s Fundamentals", req.Domain)
	modules := make([]GeneratedModule, 0, len(req.Topics))
	for _, topic := range req.Topics {
		modules = append(modules, GeneratedModule{
			Title:       topic,
			Description: fmt.Sprintf("Introduction to %s", topic),
			SearchTerms: []string{fmt.Sprintf("%s %s tutorial", req.Domain, topic)},
		})
	}
	if len(modules) == 0 {
		modules = append(modules, GeneratedModule{
			Title:       "Getting Started",
			Description: fmt.Sprintf("Getting started with %s", req.Domain),
			SearchTerms: []string{fmt.Sprintf("%s tutorial for beginners", req.Domain)},
		})
	}

	return &GeneratedCourse{
		Title:          title,
		Description:    fmt.Sprintf("A starter course on %s for %s.", req.Domain, req.TargetAudience),
		EstimatedHours: float64(len(modules)),
		Modules:        modules,
	}
}
