package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/redis"
	"github.com/bujia-iot/jt808-zinx/pkg/session"
)

// HandleHealthCheck 健康检查
func HandleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{
		Code:    0,
		Message: "ok",
		Data: gin.H{
			"onlineDevices": session.GetManager().Count(),
		},
	})
}

// HandleDeviceList 在线设备列表
func HandleDeviceList(c *gin.Context) {
	devices := make([]DeviceInfo, 0, session.GetManager().Count())
	session.GetManager().Range(func(s *session.DeviceSession) bool {
		devices = append(devices, DeviceInfo{
			DeviceID:        s.DeviceID,
			RemoteAddr:      s.RemoteAddr,
			ProtocolVersion: s.ProtocolVersion,
			Authenticated:   s.Authenticated,
			ConnectedAt:     s.ConnectedAt.Unix(),
			LastSeenAt:      s.LastSeen().Unix(),
		})
		return true
	})

	c.JSON(http.StatusOK, APIResponse{
		Code:      0,
		Message:   "ok",
		RequestID: uuid.NewString(),
		Data:      devices,
	})
}

// HandleDeviceStatus 单设备状态：内存会话 + Redis中的最新位置
func HandleDeviceStatus(c *gin.Context) {
	deviceID := c.Param("deviceId")

	deviceSession, online := session.GetManager().GetByDeviceID(deviceID)
	data := gin.H{
		"deviceId": deviceID,
		"online":   online,
	}
	if online {
		data["remoteAddr"] = deviceSession.RemoteAddr
		data["protocolVersion"] = deviceSession.ProtocolVersion
		data["authenticated"] = deviceSession.Authenticated
		data["connectedAt"] = deviceSession.ConnectedAt.Unix()
		data["lastSeenAt"] = deviceSession.LastSeen().Unix()
	}

	if redis.GetClient() != nil {
		if record, err := redis.GetLastLocation(c.Request.Context(), deviceID); err == nil {
			data["lastLocation"] = record
		}
	}

	if !online {
		c.JSON(http.StatusNotFound, APIResponse{
			Code:      404,
			Message:   "设备不在线",
			RequestID: uuid.NewString(),
			Data:      data,
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Code:      0,
		Message:   "ok",
		RequestID: uuid.NewString(),
		Data:      data,
	})
}
