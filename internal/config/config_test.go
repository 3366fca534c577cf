package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  addr: ":8080"
database:
  url: ""
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Database.UsePostgres())
	assert.Equal(t, "data/mecha_board.db", cfg.Database.SQLitePath, "sqlite path should default")
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

// DATABASE_URL 环境变量覆盖配置文件并切换到 PostgreSQL 后端
func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "host=db user=board dbname=mecha_board port=5432")
	t.Setenv("APP_ENV", "production")

	path := writeConfigFile(t, `
database:
  url: ""
  sqlite_path: "data/mecha_board.db"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Database.UsePostgres())
	assert.Equal(t, "production", cfg.Environment)
}

func TestDatabaseConfigDSN(t *testing.T) {
	d := DatabaseConfig{URL: "host=db user=board dbname=mecha_board port=5432"}

	// 开发环境原样使用连接串
	assert.Equal(t, d.URL, d.DSN("development"))

	// 生产环境强制加密传输
	assert.Equal(t, d.URL+" sslmode=require", d.DSN("production"))

	// 已显式指定 sslmode 时不再追加
	explicit := DatabaseConfig{URL: "host=db dbname=mecha_board sslmode=verify-full"}
	assert.Equal(t, explicit.URL, explicit.DSN("production"))
}
