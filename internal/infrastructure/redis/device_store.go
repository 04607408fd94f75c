package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bujia-iot/jt808-zinx/internal/domain/jt808"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/config"
	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

// 设备状态的Redis键前缀
const (
	keySessionPrefix      = "jt808:sess:"
	keyLastLocationPrefix = "jt808:last_location:"
	keyAuthCodePrefix     = "jt808:auth:"

	lastLocationTTL = 24 * time.Hour
)

// SessionState 写入Redis的会话快照，供外部系统查询设备在线状态
type SessionState struct {
	DeviceID        string `json:"deviceId"`
	RemoteAddr      string `json:"remoteAddr"`
	ProtocolVersion string `json:"protocolVersion"`
	ConnectedAt     int64  `json:"connectedAt"`
	LastSeenAt      int64  `json:"lastSeenAt"`
}

func sessionTTL() time.Duration {
	minutes := config.GetConfig().DeviceConnection.SessionTimeoutMinutes
	if minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

// SaveSession 保存设备会话快照
func SaveSession(ctx context.Context, state *SessionState) error {
	if redisClient == nil {
		return errors.New(errors.ErrRedisConnectionFailed, "Redis客户端未初始化")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(errors.ErrRedisOperationFailed, "序列化会话失败", err)
	}
	if err := redisClient.Set(ctx, keySessionPrefix+state.DeviceID, data, sessionTTL()).Err(); err != nil {
		return errors.Wrap(errors.ErrRedisOperationFailed, "保存会话失败", err)
	}
	return nil
}

// TouchSession 刷新会话的最后活跃时间与过期时间
func TouchSession(ctx context.Context, deviceID string) error {
	if redisClient == nil {
		return errors.New(errors.ErrRedisConnectionFailed, "Redis客户端未初始化")
	}

	key := keySessionPrefix + deviceID
	data, err := redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return errors.Wrap(errors.ErrRedisOperationFailed, "读取会话失败", err)
	}
	state := &SessionState{}
	if err := json.Unmarshal(data, state); err != nil {
		return errors.Wrap(errors.ErrRedisOperationFailed, "解析会话失败", err)
	}
	state.LastSeenAt = time.Now().Unix()
	return SaveSession(ctx, state)
}

// DeleteSession 删除设备会话快照
func DeleteSession(ctx context.Context, deviceID string) error {
	if redisClient == nil {
		return errors.New(errors.ErrRedisConnectionFailed, "Redis客户端未初始化")
	}
	if err := redisClient.Del(ctx, keySessionPrefix+deviceID).Err(); err != nil {
		return errors.Wrap(errors.ErrRedisOperationFailed, "删除会话失败", err)
	}
	return nil
}

// GetSession 查询设备会话快照，设备不在线时返回ErrDeviceNotFound
func GetSession(ctx context.Context, deviceID string) (*SessionState, error) {
	if redisClient == nil {
		return nil, errors.New(errors.ErrRedisConnectionFailed, "Redis客户端未初始化")
	}
	data, err := redisClient.Get(ctx, keySessionPrefix+deviceID).Bytes()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDeviceNotFound, "设备会话不存在", err)
	}
	state := &SessionState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, errors.Wrap(errors.ErrRedisOperationFailed, "解析会话失败", err)
	}
	return state, nil
}

// SaveLastLocation 保存设备最新位置，保留24小时
func SaveLastLocation(ctx context.Context, deviceID string, record *jt808.LocationRecord) error {
	if redisClient == nil {
		return errors.New(errors.ErrRedisConnectionFailed, "Redis客户端未初始化")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(errors.ErrRedisOperationFailed, "序列化位置失败", err)
	}
	if err := redisClient.Set(ctx, keyLastLocationPrefix+deviceID, data, lastLocationTTL).Err(); err != nil {
		return errors.Wrap(errors.ErrRedisOperationFailed, "保存位置失败", err)
	}
	return nil
}

// GetLastLocation 查询设备最新位置
func GetLastLocation(ctx context.Context, deviceID string) (*jt808.LocationRecord, error) {
	if redisClient == nil {
		return nil, errors.New(errors.ErrRedisConnectionFailed, "Redis客户端未初始化")
	}
	data, err := redisClient.Get(ctx, keyLastLocationPrefix+deviceID).Bytes()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDeviceNotFound, "设备位置不存在", err)
	}
	record := &jt808.LocationRecord{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, errors.Wrap(errors.ErrRedisOperationFailed, "解析位置失败", err)
	}
	return record, nil
}

// SaveAuthCode 保存注册应答下发的鉴权码，供后续鉴权比对
func SaveAuthCode(ctx context.Context, deviceID, authCode string) error {
	if redisClient == nil {
		return errors.New(errors.ErrRedisConnectionFailed, "Redis客户端未初始化")
	}
	if err := redisClient.Set(ctx, keyAuthCodePrefix+deviceID, authCode, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrRedisOperationFailed, "保存鉴权码失败", err)
	}
	return nil
}

// GetAuthCode 查询设备鉴权码
func GetAuthCode(ctx context.Context, deviceID string) (string, error) {
	if redisClient == nil {
		return "", errors.New(errors.ErrRedisConnectionFailed, "Redis客户端未初始化")
	}
	authCode, err := redisClient.Get(ctx, keyAuthCodePrefix+deviceID).Result()
	if err != nil {
		return "", errors.Wrap(errors.ErrDeviceNotFound, "设备鉴权码不存在", err)
	}
	return authCode, nil
}
