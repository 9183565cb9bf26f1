package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "library.sid", cfg.Session.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "catalog.events", cfg.MQ.Exchange)
	assert.Equal(t, uint32(5), cfg.MQ.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.MQ.BreakerTimeout)
	assert.Equal(t, "Admin", cfg.Admin.Name)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("LIBRARY_MONGO_URI", "mongodb://db:27017")
	t.Setenv("LIBRARY_STORE_DRIVER", "MySQL")

	cfg, err := LoadFile(writeConfig(t, "server:\n  port: 8080\n"))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, DriverMySQL, cfg.Store.Driver)
}

func TestValidate(t *testing.T) {
	t.Run("未知驱动", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "store:\n  driver: sqlite\n"))
		assert.Error(t, err)
	})

	t.Run("生产环境默认密钥", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "server:\n  mode: release\n"))
		assert.Error(t, err)
	})

	t.Run("非法端口", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "server:\n  port: 70000\n"))
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		User: "root", Password: "pw", Host: "db", Port: 3306, DBName: "library",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:pw@tcp(db:3306)/library?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai&clientFoundRows=true",
		d.DSN())
}
