package handlers

import (
	"github.com/aceld/zinx/ziface"
	"github.com/sirupsen/logrus"

	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/zinx_server"
)

// GeneralAckHandler 处理终端通用应答(0x0001)。
// 终端对下行命令的确认，只做记录，不再应答。
type GeneralAckHandler struct {
	JT808HandlerBase
}

// Handle 处理终端通用应答
func (h *GeneralAckHandler) Handle(request ziface.IRequest) {
	parsed := h.ExtractParsedMessage(request)
	if parsed.Header == nil {
		return
	}
	header := parsed.Header
	h.LogMessage("GeneralAckHandler", request, header)

	h.SessionOf(request)

	if !parsed.Success {
		logger.WithFields(logrus.Fields{
			"deviceId": header.DeviceID,
			"error":    parsed.Error,
		}).Warn("终端通用应答解码失败")
		return
	}

	logger.WithFields(logrus.Fields{
		"deviceId":     header.DeviceID,
		"ackSequence":  parsed.Fields["ackSequence"],
		"ackMessageId": parsed.Fields["ackMessageId"],
		"result":       parsed.Fields["result"],
	}).Info("终端确认下行命令")

	zinx_server.ExtendReadDeadline(request.GetConnection())
}
