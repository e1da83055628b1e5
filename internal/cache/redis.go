package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/affiliate-next/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "aff"

// Store Redis JSON 缓存，key 统一带前缀
// 客户端为 nil 时所有操作静默跳过，调用方按未命中处理
type Store struct {
	client *redis.Client
	prefix string
}

var defaultStore = &Store{prefix: defaultPrefix}

// NewStore 基于已有客户端创建缓存
func NewStore(client *redis.Client, prefix string) *Store {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// InitRedis 初始化全局 Redis 客户端
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		defaultStore = &Store{prefix: defaultPrefix}
		return nil
	}
	addr := strings.TrimSpace(cfg.Host)
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", addr, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	defaultStore = NewStore(client, cfg.Prefix)
	return nil
}

// Default 返回全局缓存
func Default() *Store {
	return defaultStore
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return defaultStore.Enabled()
}

// Client 获取全局 Redis 客户端
func Client() *redis.Client {
	return defaultStore.Client()
}

// Close 关闭全局客户端
func Close() error {
	if !Enabled() {
		return nil
	}
	return defaultStore.client.Close()
}

// GetJSON 读取全局缓存
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	return defaultStore.GetJSON(ctx, key, dest)
}

// SetJSON 写入全局缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return defaultStore.SetJSON(ctx, key, value, ttl)
}

// Del 删除全局缓存
func Del(ctx context.Context, key string) error {
	return defaultStore.Del(ctx, key)
}

// Enabled 判断是否可用
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// Client 获取 Redis 客户端
func (s *Store) Client() *redis.Client {
	if !s.Enabled() {
		return nil
	}
	return s.client
}

// Ping 检查连通性
func (s *Store) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// GetJSON 获取 JSON 缓存
func (s *Store) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	val, err := s.client.Get(ctx, s.buildKey(key)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func (s *Store) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.buildKey(key), payload, ttl).Err()
}

// Del 删除缓存
func (s *Store) Del(ctx context.Context, key string) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Del(ctx, s.buildKey(key)).Err()
}

func (s *Store) buildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return s.prefix
	}
	return fmt.Sprintf("%s:%s", s.prefix, trimmed)
}
