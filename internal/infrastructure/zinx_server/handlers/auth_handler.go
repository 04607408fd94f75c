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
	"github.com/bujia-iot/jt808-zinx/pkg/session"
)

// AuthHandler 处理终端鉴权(0x0102)
type AuthHandler struct {
	JT808HandlerBase
}

// Handle 处理终端鉴权请求
func (h *AuthHandler) Handle(request ziface.IRequest) {
	parsed := h.ExtractParsedMessage(request)
	if parsed.Header == nil {
		return
	}
	header := parsed.Header
	h.LogMessage("AuthHandler", request, header)

	if !parsed.Success {
		h.ReplyGeneralAck(request, header, jt808.ResultBadMessage)
		return
	}

	authCode, _ := parsed.Fields["authCode"].(string)
	if authCode == "" {
		h.ReplyGeneralAck(request, header, jt808.ResultBadMessage)
		return
	}

	// 与注册时下发的鉴权码比对；Redis不可用时放行，
	// 单点缓存故障不应让整批设备掉线
	if redis.GetClient() != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		expected, err := redis.GetAuthCode(ctx, header.DeviceID)
		if err == nil && expected != authCode {
			logger.WithFields(logrus.Fields{
				"deviceId": header.DeviceID,
			}).Warn("鉴权码不匹配，拒绝鉴权")
			h.ReplyGeneralAck(request, header, jt808.ResultFailure)
			return
		}
	}

	conn := request.GetConnection()

	// 没有经过注册直接鉴权的设备，补建会话
	deviceSession, ok := session.GetManager().GetByConnID(conn.GetConnID())
	if !ok {
		deviceSession = session.NewDeviceSession(header.DeviceID, conn)
		deviceSession.ProtocolVersion = header.ProtocolVersion.String()
		session.GetManager().Bind(deviceSession)
	}
	deviceSession.Authenticated = true
	deviceSession.Touch()
	conn.SetProperty(zinx_server.PropKeyAuthenticated, true)

	if redis.GetClient() != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		saveSessionSnapshot(ctx, deviceSession)
	}

	h.ReplyGeneralAck(request, header, jt808.ResultSuccess)

	if err := uplink.Publish(uplink.TypeAuth, header, parsed.Fields); err != nil {
		logger.WithField("error", err.Error()).Warn("发布鉴权事件失败")
	}

	zinx_server.ExtendReadDeadline(conn)

	logger.WithField("deviceId", header.DeviceID).Info("终端鉴权通过")
}
