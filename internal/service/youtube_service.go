package service

import (
	"context"
	"corpready_backend/internal/config"
	"corpready_backend/internal/util"
	"corpready_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const videoDetailKeyPrefix = "yt:video:"

// YouTubeVideo Data API 检索结果，时长与计数已经格式化好
type YouTubeVideo struct {
	VideoID         string `json:"videoId"`
	Title           string `json:"title"`
	Thumbnail       string `json:"thumbnail"`
	ChannelTitle    string `json:"channelTitle"`
	DurationSeconds int    `json:"durationSeconds"`
	Duration        string `json:"duration"`
	ViewCount       string `json:"viewCount"`
	LikeCount       string `json:"likeCount"`
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type youtubeVideosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type YouTubeService struct {
	Cfg    config.YouTubeConfig
	Redis  *redis.Client
	client *resty.Client
}

func NewYouTubeService(cfg config.YouTubeConfig, rdb *redis.Client) *YouTubeService {
	return &YouTubeService{
		Cfg:    cfg,
		Redis:  rdb,
		client: resty.New().SetBaseURL(cfg.BaseURL).SetTimeout(15 * time.Second),
	}
}

// Search 搜索视频并补全时长、播放量等详情
func (s *YouTubeService) Search(ctx context.Context, query string, maxResults int) ([]YouTubeVideo, error) {
	if maxResults <= 0 || maxResults > 25 {
		maxResults = 5
	}

	var searchResp youtubeSearchResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"q":          query,
			"type":       "video",
			"maxResults": strconv.Itoa(maxResults),
			"key":        s.Cfg.APIKey,
		}).
		SetResult(&searchResp).
		Get("/search")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("youtube search error (status %d): %s", resp.StatusCode(), resp.String())
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	return s.VideoDetails(ctx, ids)
}

// VideoDetails 批量查询详情，单条结果 Redis 缓存 24 小时
func (s *YouTubeService) VideoDetails(ctx context.Context, videoIDs []string) ([]YouTubeVideo, error) {
	videos := make([]YouTubeVideo, 0, len(videoIDs))
	missing := make([]string, 0, len(videoIDs))

	for _, id := range videoIDs {
		if cached := s.fromCache(ctx, id); cached != nil {
			videos = append(videos, *cached)
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) == 0 {
		return videos, nil
	}

	var detailResp youtubeVideosResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "snippet,contentDetails,statistics",
			"id":   strings.Join(missing, ","),
			"key":  s.Cfg.APIKey,
		}).
		SetResult(&detailResp).
		Get("/videos")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("youtube videos error (status %d): %s", resp.StatusCode(), resp.String())
	}

	for _, item := range detailResp.Items {
		seconds, err := util.ParseISO8601Duration(item.ContentDetails.Duration)
		if err != nil {
			logger.Log.Warn("unparseable youtube duration",
				zap.String("videoId", item.ID), zap.String("duration", item.ContentDetails.Duration))
		}
		viewCount, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
		likeCount, _ := strconv.ParseInt(item.Statistics.LikeCount, 10, 64)

		video := YouTubeVideo{
			VideoID:         item.ID,
			Title:           item.Snippet.Title,
			Thumbnail:       item.Snippet.Thumbnails.Medium.URL,
			ChannelTitle:    item.Snippet.ChannelTitle,
			DurationSeconds: seconds,
			Duration:        util.FormatDuration(seconds),
			ViewCount:       util.FormatCount(viewCount),
			LikeCount:       util.FormatCount(likeCount),
		}
		videos = append(videos, video)
		s.toCache(ctx, video)
	}

	return videos, nil
}

func (s *YouTubeService) fromCache(ctx context.Context, videoID string) *YouTubeVideo {
	if s.Redis == nil {
		return nil
	}
	val, err := s.Redis.Get(ctx, videoDetailKeyPrefix+videoID).Result()
	if err != nil {
		return nil
	}
	var video YouTubeVideo
	if err := json.Unmarshal([]byte(val), &video); err != nil {
		return nil
	}
	return &video
}

func (s *YouTubeService) toCache(ctx context.Context, video YouTubeVideo) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(video)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, videoDetailKeyPrefix+video.VideoID, data, 24*time.Hour).Err(); err != nil {
		logger.Log.Warn("failed to cache youtube video detail", zap.Error(err))
	}
}
