package models

import (
	"time"
)

// DefaultAuthor 未填写作者时的缺省署名
const DefaultAuthor = "Anonymous"

// SortMode 新闻列表排序模式枚举
type SortMode string

const (
	SortModeTop     SortMode = "top"     // 仅今天创建的条目，按得分倒序
	SortModeNew     SortMode = "new"     // 全部条目，按创建时间倒序
	SortModeClassic SortMode = "classic" // 全部条目，按得分倒序（默认排序）
)

func (m SortMode) Valid() bool {
	switch m {
	case SortModeTop, SortModeNew, SortModeClassic:
		return true
	}
	return false
}

// NewsItem 对应数据库中的 'news_items' 表
type NewsItem struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Summary string `json:"summary" gorm:"not null;type:varchar(200)"`                    // 新闻摘要，去除首尾空白，最长200字符
	Link    string `json:"link" gorm:"not null;type:varchar(1000)"`                      // 原文链接，必须是绝对URL
	Author  string `json:"author" gorm:"type:varchar(50);not null;default:'Anonymous'"`  // 作者，最长50字符

	// 冗余的净得分 = 赞成票 − 反对票（跨全部投票来源），
	// 每次投票变更后由投票流水同步重算
	VoteScore int `json:"vote_score" gorm:"not null;default:0;index:idx_news_items_rank,priority:1,sort:desc"`

	// 创建时写入一次，之后不变
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_news_items_rank,priority:2,sort:desc"`

	// 关联的投票记录，父条目删除时级联删除
	Votes []Vote `json:"-" gorm:"foreignKey:NewsItemID;constraint:OnDelete:CASCADE"`
}

// TableName 为 NewsItem 模型指定数据库表名
func (NewsItem) TableName() string {
	return "news_items"
}

// NewsItemResponse 用于向前端返回新闻条目
type NewsItemResponse struct {
	ID        uint      `json:"id"`
	Summary   string    `json:"summary"`
	Link      string    `json:"link"`
	Author    string    `json:"author"`
	VoteScore int       `json:"vote_score"`
	CreatedAt time.Time `json:"created_at"`
}

// NewsItemCreateRequest 用于创建新闻条目时的请求体
type NewsItemCreateRequest struct {
	Summary string `json:"summary" binding:"required"`
	Link    string `json:"link" binding:"required"`
	Author  string `json:"author" binding:"omitempty,max=50"`
}

func (n *NewsItem) ToResponse() NewsItemResponse {
	return NewsItemResponse{
		ID:        n.ID,
		Summary:   n.Summary,
		Link:      n.Link,
		Author:    n.Author,
		VoteScore: n.VoteScore,
		CreatedAt: n.CreatedAt,
	}
}
