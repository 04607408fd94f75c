package handlers

import (
	"github.com/aceld/zinx/ziface"
	"github.com/sirupsen/logrus"

	"github.com/bujia-iot/jt808-zinx/internal/adapter/uplink"
	"github.com/bujia-iot/jt808-zinx/internal/domain/jt808"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/zinx_server"
)

// MultimediaHandler 处理多媒体事件信息上传(0x0800)。
// 多媒体数据本体(0x0801)的分包重组不在网关内处理，
// 事件经消息总线转发给下游存储服务。
type MultimediaHandler struct {
	JT808HandlerBase
}

// Handle 处理多媒体事件上传
func (h *MultimediaHandler) Handle(request ziface.IRequest) {
	parsed := h.ExtractParsedMessage(request)
	if parsed.Header == nil {
		return
	}
	header := parsed.Header
	h.LogMessage("MultimediaHandler", request, header)

	if !parsed.Success {
		h.ReplyGeneralAck(request, header, jt808.ResultBadMessage)
		return
	}

	h.SessionOf(request)
	h.ReplyGeneralAck(request, header, jt808.ResultSuccess)

	if err := uplink.Publish(uplink.TypeMultimedia, header, parsed.Fields); err != nil {
		logger.WithFields(logrus.Fields{
			"deviceId": header.DeviceID,
			"error":    err.Error(),
		}).Warn("发布多媒体事件失败")
	}

	zinx_server.ExtendReadDeadline(request.GetConnection())

	logger.WithFields(logrus.Fields{
		"deviceId":       header.DeviceID,
		"multimediaId":   parsed.Fields["multimediaId"],
		"multimediaType": parsed.Fields["multimediaType"],
		"eventCode":      parsed.Fields["eventCode"],
	}).Info("多媒体事件已上报")
}
