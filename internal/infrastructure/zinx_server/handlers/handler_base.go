package handlers

import (
	"github.com/aceld/zinx/ziface"
	"github.com/aceld/zinx/znet"
	"github.com/sirupsen/logrus"

	"github.com/bujia-iot/jt808-zinx/internal/domain/jt808"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/zinx_server"
	"github.com/bujia-iot/jt808-zinx/pkg/session"
)

// JT808HandlerBase 消息处理器公共基类
type JT808HandlerBase struct {
	znet.BaseRouter
}

// ExtractParsedMessage 提取解码器挂载的解析结果，
// 缺失时退化为就地重新解析
func (h *JT808HandlerBase) ExtractParsedMessage(request ziface.IRequest) *jt808.ParsedMessage {
	if attached := request.GetResponse(); attached != nil {
		if parsed, ok := attached.(*jt808.ParsedMessage); ok {
			return parsed
		}
	}
	return jt808.ParseFrame(request.GetData())
}

// SessionOf 查询当前连接的设备会话并刷新活跃时间
func (h *JT808HandlerBase) SessionOf(request ziface.IRequest) (*session.DeviceSession, bool) {
	s, ok := session.GetManager().GetByConnID(request.GetConnection().GetConnID())
	if ok {
		s.Touch()
	}
	return s, ok
}

// NextSequenceFor 分配下行流水号，会话未建立时从0开始
func (h *JT808HandlerBase) NextSequenceFor(header *jt808.MessageHeader) uint16 {
	if s, ok := session.GetManager().GetByDeviceID(header.DeviceID); ok {
		return s.NextSequence()
	}
	return 0
}

// ReplyGeneralAck 向终端下发平台通用应答(0x8001)
func (h *JT808HandlerBase) ReplyGeneralAck(request ziface.IRequest, header *jt808.MessageHeader, result uint8) {
	frame, err := jt808.BuildGeneralAck(
		header.DeviceID,
		h.NextSequenceFor(header),
		header.SequenceNumber,
		header.MessageID,
		result,
	)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"deviceId": header.DeviceID,
			"msgId":    header.MessageID,
			"error":    err.Error(),
		}).Error("构造通用应答失败")
		return
	}

	if err := zinx_server.SendFrame(request.GetConnection(), frame); err != nil {
		logger.WithFields(logrus.Fields{
			"deviceId": header.DeviceID,
			"error":    err.Error(),
		}).Error("下发通用应答失败")
	}
}

// LogMessage 记录一条上行消息的处理日志
func (h *JT808HandlerBase) LogMessage(name string, request ziface.IRequest, header *jt808.MessageHeader) {
	logger.WithFields(logrus.Fields{
		"handler":  name,
		"connID":   request.GetConnection().GetConnID(),
		"deviceId": header.DeviceID,
		"msgId":    header.MessageID,
		"seq":      header.SequenceNumber,
		"version":  header.ProtocolVersion.String(),
	}).Debug("收到上行消息")
}
