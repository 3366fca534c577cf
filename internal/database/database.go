package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mecha-board/mecha-board-backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New 根据配置选择后端并建立数据库连接：
// 配置了连接串（DATABASE_URL 或 database.url）时使用 PostgreSQL，
// 否则使用嵌入式 SQLite 文件。
// 连接失败直接返回错误，不做后端降级
func New(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var db *gorm.DB
	var err error
	if cfg.Database.UsePostgres() {
		db, err = gorm.Open(postgres.Open(cfg.Database.DSN(cfg.Environment)), gormConfig)
	} else {
		db, err = openSQLite(cfg.Database.SQLitePath, gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// get the underlying sql.DB instance to configure the connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// set connection pool parameters
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("database connected successfully")
	return db, nil
}

// openSQLite 打开嵌入式后端，数据目录不存在时创建
func openSQLite(path string, gormConfig *gorm.Config) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}
	// 打开外键约束，级联删除依赖它
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path)
	return gorm.Open(sqlite.Open(dsn), gormConfig)
}

// Close 关闭数据库连接
func Close(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("database closed successfully")
	return nil
}
