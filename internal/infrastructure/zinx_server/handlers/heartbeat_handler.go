package handlers

import (
	"context"
	"time"

	"github.com/aceld/zinx/ziface"
	"github.com/sirupsen/logrus"

	"github.com/bujia-iot/jt808-zinx/internal/adapter/uplink"
	"github.com/bujia-iot/jt808-zinx/internal/domain/jt808"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/redis"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/zinx_server"
)

// HeartbeatHandler 处理终端心跳(0x0002)
type HeartbeatHandler struct {
	JT808HandlerBase
}

// Handle 处理心跳请求
func (h *HeartbeatHandler) Handle(request ziface.IRequest) {
	parsed := h.ExtractParsedMessage(request)
	if parsed.Header == nil {
		return
	}
	header := parsed.Header
	h.LogMessage("HeartbeatHandler", request, header)

	if deviceSession, ok := h.SessionOf(request); ok {
		if redis.GetClient() != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := redis.TouchSession(ctx, deviceSession.DeviceID); err != nil {
				logger.WithFields(logrus.Fields{
					"deviceId": deviceSession.DeviceID,
					"error":    err.Error(),
				}).Debug("刷新会话快照失败")
			}
		}
	} else {
		logger.WithFields(logrus.Fields{
			"connID":   request.GetConnection().GetConnID(),
			"deviceId": header.DeviceID,
		}).Warn("未注册连接发送心跳")
	}

	h.ReplyGeneralAck(request, header, jt808.ResultSuccess)

	if err := uplink.Publish(uplink.TypeHeartbeat, header, nil); err != nil {
		logger.WithField("error", err.Error()).Debug("发布心跳事件失败")
	}

	zinx_server.ExtendReadDeadline(request.GetConnection())
}
