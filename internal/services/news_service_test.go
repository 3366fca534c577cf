package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mecha-board/mecha-board-backend/internal/database"
	"github.com/mecha-board/mecha-board-backend/internal/models"
	"github.com/mecha-board/mecha-board-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存数据库
// cache=shared 让连接池里的多个连接看到同一个库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

// setCreatedAt 测试里直接改写创建时间，用来构造昨天/排序场景
func setCreatedAt(t *testing.T, db *gorm.DB, itemID uint, ts time.Time) {
	t.Helper()
	err := db.Model(&models.NewsItem{}).Where("id = ?", itemID).
		UpdateColumn("created_at", ts).Error
	require.NoError(t, err)
}

func TestCreateNews(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)

	first, err := svc.CreateNews(&models.NewsItemCreateRequest{
		Summary: "  X launches Y  ",
		Link:    "https://ex.com/a",
	})
	require.NoError(t, err)
	assert.Equal(t, "X launches Y", first.Summary, "summary should be trimmed")
	assert.Equal(t, models.DefaultAuthor, first.Author, "blank author should default")
	assert.Equal(t, 0, first.VoteScore)
	assert.NotZero(t, first.ID)

	second, err := svc.CreateNews(&models.NewsItemCreateRequest{
		Summary: "Another item",
		Link:    "https://ex.com/b",
		Author:  "pilot_07",
	})
	require.NoError(t, err)
	assert.Equal(t, "pilot_07", second.Author)
	assert.Greater(t, second.ID, first.ID, "IDs should be strictly increasing")
}

func TestCreateNews_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)

	cases := []struct {
		name string
		req  models.NewsItemCreateRequest
	}{
		{"empty summary", models.NewsItemCreateRequest{Summary: "   ", Link: "https://ex.com/a"}},
		{"oversized summary", models.NewsItemCreateRequest{Summary: strings.Repeat("x", 201), Link: "https://ex.com/a"}},
		{"relative link", models.NewsItemCreateRequest{Summary: "ok", Link: "/news/1"}},
		{"schemeless link", models.NewsItemCreateRequest{Summary: "ok", Link: "ex.com/a"}},
		{"oversized author", models.NewsItemCreateRequest{Summary: "ok", Link: "https://ex.com/a", Author: strings.Repeat("y", 51)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateNews(&tc.req)
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}

	// 刚好到上限的输入要能通过
	item, err := svc.CreateNews(&models.NewsItemCreateRequest{
		Summary: strings.Repeat("x", 200),
		Link:    "https://ex.com/max",
		Author:  strings.Repeat("y", 50),
	})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
}

func TestGetNewsItemByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)

	created, err := svc.CreateNews(&models.NewsItemCreateRequest{
		Summary: "findable",
		Link:    "https://ex.com/find",
	})
	require.NoError(t, err)

	found, err := svc.GetNewsItemByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Summary, found.Summary)

	_, err = svc.GetNewsItemByID(9999)
	assert.ErrorIs(t, err, ErrNewsItemNotFound)
}

func TestGetNewsItems_SortNew(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)

	now := time.Now()
	var ids []uint
	for i := 0; i < 3; i++ {
		item, err := svc.CreateNews(&models.NewsItemCreateRequest{
			Summary: fmt.Sprintf("item %d", i),
			Link:    fmt.Sprintf("https://ex.com/%d", i),
		})
		require.NoError(t, err)
		setCreatedAt(t, db, item.ID, now.Add(time.Duration(i)*time.Minute))
		ids = append(ids, item.ID)
	}

	// 最旧的条目给最高分，确认 new 排序完全忽略得分
	err := db.Model(&models.NewsItem{}).Where("id = ?", ids[0]).
		UpdateColumn("vote_score", 100).Error
	require.NoError(t, err)

	items, err := svc.GetNewsItems(models.SortModeNew)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, ids[2], items[0].ID)
	assert.Equal(t, ids[1], items[1].ID)
	assert.Equal(t, ids[0], items[2].ID)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i-1].CreatedAt.Before(items[i].CreatedAt),
			"created_at should be non-increasing")
	}
}

func TestGetNewsItems_SortClassic(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)

	low, err := svc.CreateNews(&models.NewsItemCreateRequest{Summary: "low", Link: "https://ex.com/low"})
	require.NoError(t, err)
	high, err := svc.CreateNews(&models.NewsItemCreateRequest{Summary: "high", Link: "https://ex.com/high"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.NewsItem{}).Where("id = ?", high.ID).
		UpdateColumn("vote_score", 5).Error)

	items, err := svc.GetNewsItems(models.SortModeClassic)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, high.ID, items[0].ID)
	assert.Equal(t, low.ID, items[1].ID)

	// classic 与全局默认排序一致
	all, err := svc.GetAllNewsItems()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, items[0].ID, all[0].ID)
}

func TestGetNewsItems_SortTop(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)

	yesterday, err := svc.CreateNews(&models.NewsItemCreateRequest{Summary: "yesterday", Link: "https://ex.com/old"})
	require.NoError(t, err)
	today, err := svc.CreateNews(&models.NewsItemCreateRequest{Summary: "today", Link: "https://ex.com/new"})
	require.NoError(t, err)

	// 昨天的条目即使得分最高也不进 top 榜
	setCreatedAt(t, db, yesterday.ID, time.Now().AddDate(0, 0, -1))
	require.NoError(t, db.Model(&models.NewsItem{}).Where("id = ?", yesterday.ID).
		UpdateColumn("vote_score", 100).Error)

	items, err := svc.GetNewsItems(models.SortModeTop)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, today.ID, items[0].ID)
}

func TestGetNewsItems_InvalidMode(t *testing.T) {
	db := newTestDB(t)
	svc := NewNewsService(db)

	_, err := svc.GetNewsItems("hottest")
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestTodayBounds(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 4, 5, 0, time.Local)
	start, end := todayBounds(now)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local), end)
}
