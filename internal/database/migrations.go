package database

import (
	"fmt"
	"log"

	"github.com/mecha-board/mecha-board-backend/internal/models"
	"gorm.io/gorm"
)

// migration 一次结构变更，必须幂等（每次启动都会重跑全部步骤）
type migration struct {
	ID  string
	Run func(db *gorm.DB) error
}

// 按顺序执行的迁移列表；只追加，不修改已有条目
var migrations = []migration{
	{ID: "001_create_base_tables", Run: createBaseTables},
	{ID: "002_add_author_column", Run: addAuthorColumn},
	{ID: "003_add_vote_source_column", Run: addVoteSourceColumn},
}

// RunMigrations 按顺序执行全部迁移，适合在每次进程启动时调用
func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	for _, m := range migrations {
		if err := m.Run(db); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.ID, err)
		}
	}

	log.Printf("database migration completed, %d steps applied", len(migrations))
	return nil
}

func createBaseTables(db *gorm.DB) error {
	return db.AutoMigrate(&models.NewsItem{}, &models.Vote{})
}

// addAuthorColumn 为早期没有 author 列的库补列
// 先探测列是否存在再新增，避免重复建列报错
func addAuthorColumn(db *gorm.DB) error {
	if db.Migrator().HasColumn(&models.NewsItem{}, "author") {
		return nil
	}
	return db.Migrator().AddColumn(&models.NewsItem{}, "author")
}

// addVoteSourceColumn 为早期没有 vote_source 列的库补列，
// 并确保包含该列的投票身份唯一索引存在
func addVoteSourceColumn(db *gorm.DB) error {
	if !db.Migrator().HasColumn(&models.Vote{}, "vote_source") {
		if err := db.Migrator().AddColumn(&models.Vote{}, "vote_source"); err != nil {
			return err
		}
	}
	if !db.Migrator().HasIndex(&models.Vote{}, "idx_votes_identity") {
		return db.Migrator().CreateIndex(&models.Vote{}, "idx_votes_identity")
	}
	return nil
}
