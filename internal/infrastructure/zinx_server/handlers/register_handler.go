package handlers

import (
	"context"
	"time"

	"github.com/aceld/zinx/ziface"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bujia-iot/jt808-zinx/internal/adapter/uplink"
	"github.com/bujia-iot/jt808-zinx/internal/domain/jt808"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/redis"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/zinx_server"
	"github.com/bujia-iot/jt808-zinx/pkg/session"
)

// RegisterHandler 处理终端注册(0x0100)，应答注册应答(0x8100)
type RegisterHandler struct {
	JT808HandlerBase
}

// Handle 处理终端注册请求
func (h *RegisterHandler) Handle(request ziface.IRequest) {
	parsed := h.ExtractParsedMessage(request)
	if parsed.Header == nil {
		return
	}
	header := parsed.Header
	h.LogMessage("RegisterHandler", request, header)

	if !parsed.Success {
		logger.WithFields(logrus.Fields{
			"deviceId": header.DeviceID,
			"error":    parsed.Error,
		}).Warn("注册消息体解码失败")
		h.ReplyGeneralAck(request, header, jt808.ResultBadMessage)
		return
	}

	// 建立会话，重复注册视为重连
	conn := request.GetConnection()
	deviceSession := session.NewDeviceSession(header.DeviceID, conn)
	deviceSession.ProtocolVersion = header.ProtocolVersion.String()
	if previous := session.GetManager().Bind(deviceSession); previous != nil {
		logger.WithFields(logrus.Fields{
			"deviceId":   header.DeviceID,
			"oldConnID":  previousConnID(previous),
			"newConnID":  conn.GetConnID(),
			"remoteAddr": deviceSession.RemoteAddr,
		}).Info("设备重连，替换旧会话")
		if previous.Conn != nil && previous.Conn.GetConnID() != conn.GetConnID() {
			previous.Conn.Stop()
		}
	}

	// 下发鉴权码并记录，等待终端鉴权
	authCode := uuid.NewString()
	sequence := deviceSession.NextSequence()
	frame, err := jt808.BuildRegisterResponse(
		header.DeviceID, sequence, header.SequenceNumber, jt808.RegisterSuccess, authCode)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"deviceId": header.DeviceID,
			"error":    err.Error(),
		}).Error("构造注册应答失败")
		return
	}
	if err := zinx_server.SendFrame(conn, frame); err != nil {
		return
	}

	if redis.GetClient() != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redis.SaveAuthCode(ctx, header.DeviceID, authCode); err != nil {
			logger.WithFields(logrus.Fields{
				"deviceId": header.DeviceID,
				"error":    err.Error(),
			}).Warn("保存鉴权码失败")
		}
		saveSessionSnapshot(ctx, deviceSession)
	}

	if err := uplink.Publish(uplink.TypeRegister, header, parsed.Fields); err != nil {
		logger.WithField("error", err.Error()).Warn("发布注册事件失败")
	}

	zinx_server.ExtendReadDeadline(conn)

	logger.WithFields(logrus.Fields{
		"deviceId":      header.DeviceID,
		"terminalModel": parsed.Fields["terminalModel"],
		"plateNumber":   parsed.Fields["plateNumber"],
	}).Info("终端注册成功")
}

func previousConnID(s *session.DeviceSession) uint64 {
	if s.Conn == nil {
		return 0
	}
	return s.Conn.GetConnID()
}

// saveSessionSnapshot 将会话快照写入Redis
func saveSessionSnapshot(ctx context.Context, s *session.DeviceSession) {
	state := &redis.SessionState{
		DeviceID:        s.DeviceID,
		RemoteAddr:      s.RemoteAddr,
		ProtocolVersion: s.ProtocolVersion,
		ConnectedAt:     s.ConnectedAt.Unix(),
		LastSeenAt:      s.LastSeen().Unix(),
	}
	if err := redis.SaveSession(ctx, state); err != nil {
		logger.WithFields(logrus.Fields{
			"deviceId": s.DeviceID,
			"error":    err.Error(),
		}).Warn("保存会话快照失败")
	}
}
