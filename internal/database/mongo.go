package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect はMongoDBへ接続し、到達性を確認したクライアントを返す。
// mongoURLはMongoDBの接続URLを指定する（例: "mongodb://localhost:27017"）。
func Connect(ctx context.Context, mongoURL string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("データベース接続の初期化に失敗しました: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("データベースへの到達確認に失敗しました: %w", err)
	}

	return client, nil
}

// HealthChecker はMongoDBの到達性確認を提供する。
type HealthChecker struct {
	client *mongo.Client
}

// NewHealthChecker はHealthCheckerを生成する。
func NewHealthChecker(client *mongo.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// Ping はプライマリノードへの到達性を確認する。
func (h *HealthChecker) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}
