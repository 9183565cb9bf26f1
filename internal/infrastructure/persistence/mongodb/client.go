package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/readieg/library/internal/infrastructure/config"
	"github.com/readieg/library/pkg/logger"
)

// 集合名
const (
	BooksCollection = "books"
	UsersCollection = "users"
)

// Connect 创建MongoDB连接并确保索引存在
// 设计说明：
// 1. Client由main构造并注入各Repository，不使用全局连接句柄
// 2. 连接后立刻Ping，连不上直接返回错误
// 3. 索引创建是幂等的，每次启动都执行
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("连接MongoDB失败: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("MongoDB连接测试失败: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("创建索引失败: %w", err)
	}

	logger.Info().Str("database", cfg.Database).Msg("MongoDB连接成功")
	return client, db, nil
}

// EnsureIndexes 创建列表查询与唯一约束需要的索引
//
//	books: title / author / tags / (series, seriesNumber)
//	users: email 唯一
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	books := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "series", Value: 1}, {Key: "seriesNumber", Value: 1}}},
	}
	if _, err := db.Collection(BooksCollection).Indexes().CreateMany(ctx, books); err != nil {
		return err
	}

	users := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, users); err != nil {
		return err
	}
	return nil
}
