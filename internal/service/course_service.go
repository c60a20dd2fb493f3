package service

import (
	"context"
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/util"
	"corpready_backend/pkg/logger"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseService struct {
	CatalogRepo *repository.CatalogRepository
	CourseRepo  *repository.CourseRepository
	Generation  *GenerationService
	YouTube     *YouTubeService
}

func NewCourseService(
	catalogRepo *repository.CatalogRepository,
	courseRepo *repository.CourseRepository,
	generation *GenerationService,
	youtube *YouTubeService,
) *CourseService {
	return &CourseService{
		CatalogRepo: catalogRepo,
		CourseRepo:  courseRepo,
		Generation:  generation,
		YouTube:     youtube,
	}
}

func (s *CourseService) ListDomains() ([]model.Domain, error) {
	return s.CatalogRepo.ListDomains()
}

func (s *CourseService) ListTopics(domainID uint) ([]model.Topic, error) {
	if _, err := s.CatalogRepo.FindDomainByID(domainID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.CatalogRepo.ListTopics(domainID)
}

func (s *CourseService) ListCourses(page, limit int, topicID uint) ([]model.Course, int64, error) {
	return s.CourseRepo.List(page, limit, topicID)
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// Generate 调工作流引擎出大纲，再用 YouTube 详情填充每个模块的视频，最后整树落库
func (s *CourseService) Generate(ctx context.Context, req GenerateCourseRequest) (*model.Course, error) {
	generated := s.Generation.GenerateCourse(ctx, req)

	domain, err := s.CatalogRepo.FindOrCreateDomain(req.Domain)
	if err != nil {
		return nil, err
	}

	topicName := req.Domain
	if len(req.Topics) > 0 {
		topicName = strings.Join(req.Topics, ", ")
	}
	topic, err := s.CatalogRepo.FindOrCreateTopic(domain.ID, topicName)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		TopicID:        topic.ID,
		Title:          generated.Title,
		Description:    generated.Description,
		EstimatedHours: generated.EstimatedHours,
		SkillLevel:     req.SkillLevel,
		TargetAudience: req.TargetAudience,
		Source:         model.CourseSourceGenerated,
	}

	for i, genModule := range generated.Modules {
		mod := model.CourseModule{
			Title:       genModule.Title,
			Description: genModule.Description,
			Order:       i + 1,
		}

		for _, term := range genModule.SearchTerms {
			found, err := s.YouTube.Search(ctx, term, 3)
			if err != nil {
				// 检索失败的模块先留空，后续可由管理员补录
				logger.Log.Warn("youtube search failed during generation",
					zap.String("term", term), zap.Error(err))
				continue
			}
			for _, v := range found {
				mod.Videos = append(mod.Videos, model.Video{
					YouTubeID:       v.VideoID,
					Title:           v.Title,
					Thumbnail:       v.Thumbnail,
					ChannelTitle:    v.ChannelTitle,
					DurationSeconds: v.DurationSeconds,
					Duration:        v.Duration,
					ViewCount:       v.ViewCount,
					LikeCount:       v.LikeCount,
					Order:           len(mod.Videos) + 1,
				})
			}
		}

		course.Modules = append(course.Modules, mod)
	}

	if err := s.CourseRepo.CreateTree(course); err != nil {
		return nil, err
	}

	return course, nil
}

func (s *CourseService) UpdateCourse(course *model.Course) error {
	return s.CourseRepo.Update(course)
}

func (s *CourseService) DeleteCourse(id uint) error {
	if _, err := s.CourseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.CourseRepo.Delete(id)
}

// SearchVideos 前端选课页的视频检索入口
func (s *CourseService) SearchVideos(ctx context.Context, query string, maxResults int) ([]YouTubeVideo, error) {
	return s.YouTube.Search(ctx, query, maxResults)
}
