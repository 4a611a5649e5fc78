package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/config"
)

// Client Redis 客户端封装
// 用于 Token 黑名单、接口限流与排课报告缓存
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 接口限流（固定窗口计数） ──

const rateLimitPrefix = "rate_limit:"

// CheckRateLimit 窗口内请求计数 +1 并判断是否超限
// 首次命中时设置窗口过期；返回 false 表示已超限
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	full := rateLimitPrefix + key
	n, err := c.rdb.Incr(ctx, full).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, full, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// ── 排课报告缓存 ──

const runReportPrefix = "schedule_run:report:"

// CacheRunReport 缓存一次排课运行的校验报告 JSON
func (c *Client) CacheRunReport(ctx context.Context, runID string, report []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, runReportPrefix+runID, report, ttl).Err()
}

// GetRunReport 读取缓存的校验报告，未命中返回 (nil, nil)
func (c *Client) GetRunReport(ctx context.Context, runID string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, runReportPrefix+runID).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteRunReport 删除缓存的校验报告（运行被删除时调用）
func (c *Client) DeleteRunReport(ctx context.Context, runID string) error {
	return c.rdb.Del(ctx, runReportPrefix+runID).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
