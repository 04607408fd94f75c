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

// BatchLocationHandler 处理定位数据批量上传(0x0704)
type BatchLocationHandler struct {
	JT808HandlerBase
}

// Handle 处理批量位置上传
func (h *BatchLocationHandler) Handle(request ziface.IRequest) {
	parsed := h.ExtractParsedMessage(request)
	if parsed.Header == nil {
		return
	}
	header := parsed.Header
	h.LogMessage("BatchLocationHandler", request, header)

	if !parsed.Success {
		logger.WithFields(logrus.Fields{
			"deviceId": header.DeviceID,
			"error":    parsed.Error,
		}).Warn("批量位置解码失败")
		h.ReplyGeneralAck(request, header, jt808.ResultBadMessage)
		return
	}

	h.SessionOf(request)

	locations, _ := parsed.Fields["locations"].([]*jt808.LocationRecord)

	// 盲区补报以最后一条为设备当前位置
	if len(locations) > 0 && redis.GetClient() != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redis.SaveLastLocation(ctx, header.DeviceID, locations[len(locations)-1]); err != nil {
			logger.WithFields(logrus.Fields{
				"deviceId": header.DeviceID,
				"error":    err.Error(),
			}).Warn("保存最新位置失败")
		}
	}

	h.ReplyGeneralAck(request, header, jt808.ResultSuccess)

	if err := uplink.Publish(uplink.TypeBatchLocation, header, parsed.Fields); err != nil {
		logger.WithFields(logrus.Fields{
			"deviceId": header.DeviceID,
			"error":    err.Error(),
		}).Warn("发布批量位置事件失败")
	}

	zinx_server.ExtendReadDeadline(request.GetConnection())

	logger.WithFields(logrus.Fields{
		"deviceId": header.DeviceID,
		"count":    len(locations),
	}).Debug("批量位置已处理")
}
