package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/config"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

// 全局Redis客户端实例
var redisClient *redis.Client

// GetClient 获取Redis客户端实例
func GetClient() *redis.Client {
	return redisClient
}

// InitClient 初始化Redis连接
func InitClient() error {
	redisConfig := config.GetConfig().Redis

	redisClient = redis.NewClient(&redis.Options{
		Addr:         redisConfig.Address,
		Password:     redisConfig.Password,
		DB:           redisConfig.DB,
		PoolSize:     redisConfig.PoolSize,
		MinIdleConns: redisConfig.MinIdleConns,
		DialTimeout:  time.Duration(redisConfig.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(redisConfig.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(redisConfig.WriteTimeout) * time.Second,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		redisClient = nil
		return errors.Wrap(errors.ErrRedisConnectionFailed, "Redis连接测试失败", err)
	}

	logger.Info("Redis连接初始化成功")
	return nil
}

// Close 关闭Redis连接
func Close() error {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			return errors.Wrap(errors.ErrRedisOperationFailed, "关闭Redis连接失败", err)
		}
		logger.Info("Redis连接已关闭")
	}
	return nil
}
