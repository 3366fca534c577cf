package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mecha-board/mecha-board-backend/internal/models"
	"github.com/mecha-board/mecha-board-backend/internal/utils"
	"gorm.io/gorm"
)

// ErrNewsItemNotFound 条目不存在
var ErrNewsItemNotFound = errors.New("news item not found")

// NewsService 封装新闻条目的数据库操作和业务逻辑
type NewsService struct {
	db *gorm.DB
}

// NewNewsService 创建并返回一个新的 NewsService 实例
func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db}
}

// CreateNews 校验并创建新闻条目
// 摘要去除首尾空白且最长200字符，链接必须是绝对URL，
// 作者为空时回退为缺省署名
func (s *NewsService) CreateNews(req *models.NewsItemCreateRequest) (*models.NewsItem, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	summary := strings.TrimSpace(req.Summary)
	if err := utils.ValidateSummary(summary); err != nil {
		return nil, err
	}
	if err := utils.ValidateLink(req.Link); err != nil {
		return nil, err
	}
	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = models.DefaultAuthor
	}
	if err := utils.ValidateAuthor(author); err != nil {
		return nil, err
	}

	item := &models.NewsItem{
		Summary: summary,
		Link:    req.Link,
		Author:  author,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create news item: %w", err)
	}

	return item, nil
}

// GetNewsItemByID 根据ID获取单条新闻
func (s *NewsService) GetNewsItemByID(id uint) (*models.NewsItem, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var item models.NewsItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsItemNotFound
		}
		return nil, fmt.Errorf("failed to get news item by ID: %w", err)
	}
	return &item, nil
}

// GetNewsItems 按排序模式返回新闻列表，不分页
//   - top:     仅今天（本地日历日）创建的条目，按 (得分, 创建时间) 倒序
//   - new:     全部条目按创建时间倒序，忽略得分
//   - classic: 全部条目按 (得分, 创建时间) 倒序，等同全局默认排序
func (s *NewsService) GetNewsItems(mode models.SortMode) ([]models.NewsItem, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	query := s.db.Model(&models.NewsItem{})
	switch mode {
	case models.SortModeNew:
		query = query.Order("created_at DESC")
	case models.SortModeTop:
		// "top" 榜以本地时区的日历日为界，隔天自动翻篇
		start, end := todayBounds(time.Now())
		query = query.Where("created_at >= ? AND created_at < ?", start, end).
			Order("vote_score DESC, created_at DESC")
	case models.SortModeClassic, "":
		query = query.Order("vote_score DESC, created_at DESC")
	default:
		return nil, fmt.Errorf("%w: invalid sort mode: %s", utils.ErrValidation, mode)
	}

	var items []models.NewsItem
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get news items: %w", err)
	}
	return items, nil
}

// GetAllNewsItems 返回全部条目，默认排序
func (s *NewsService) GetAllNewsItems() ([]models.NewsItem, error) {
	return s.GetNewsItems(models.SortModeClassic)
}

// todayBounds 返回 now 所在本地日历日的起止时间 [start, end)
// 日界使用进程本地时区，两个后端因此行为一致
func todayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
