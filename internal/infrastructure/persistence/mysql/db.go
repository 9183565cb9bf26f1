package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/readieg/library/internal/infrastructure/config"
	"github.com/readieg/library/pkg/logger"
)

// NewDB 创建数据库连接（store.driver=mysql时使用）
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 学习要点：合理的连接池配置对性能至关重要
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	logger.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("MySQL连接成功")

	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. 用户不会被删除，没有DeletedAt
type UserModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:100;not null;comment:姓名"`
	Email        string    `gorm:"uniqueIndex;size:191;not null;comment:邮箱（小写）"`
	Role         string    `gorm:"size:10;not null;default:user;comment:角色 user|admin"`
	PasswordHash string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	CreatedAt    time.Time `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 可选数值字段用指针,缺省存NULL
// 2. tags以JSON数组存储(serializer:json),标签过滤用JSON_CONTAINS
// 3. 物理删除,没有DeletedAt
// 4. 索引与文档存储一致:title / author / (series, series_number)
type BookModel struct {
	ID           uint      `gorm:"primaryKey"`
	Title        string    `gorm:"index;size:200;not null;comment:书名"`
	Author       string    `gorm:"index;size:100;not null;comment:作者"`
	Description  string    `gorm:"type:text;comment:简介"`
	Series       string    `gorm:"index:idx_series;size:200;not null;default:'';comment:系列"`
	SeriesNumber *float64  `gorm:"index:idx_series;comment:系列序号"`
	Tags         []string  `gorm:"serializer:json;type:json;comment:标签"`
	Year         *int      `gorm:"index;comment:出版年份"`
	Rating       *float64  `gorm:"comment:评分0-5"`
	Pages        *int      `gorm:"comment:页数"`
	CreatedAt    time.Time `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
