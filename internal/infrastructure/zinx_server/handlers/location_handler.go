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

// LocationHandler 处理位置信息汇报(0x0200)
type LocationHandler struct {
	JT808HandlerBase
}

// Handle 处理位置汇报
func (h *LocationHandler) Handle(request ziface.IRequest) {
	parsed := h.ExtractParsedMessage(request)
	if parsed.Header == nil {
		return
	}
	header := parsed.Header
	h.LogMessage("LocationHandler", request, header)

	if !parsed.Success {
		logger.WithFields(logrus.Fields{
			"deviceId": header.DeviceID,
			"error":    parsed.Error,
		}).Warn("位置汇报解码失败")
		h.ReplyGeneralAck(request, header, jt808.ResultBadMessage)
		return
	}

	if err := jt808.Validate(header.MessageID, parsed.Fields); err != nil {
		logger.WithFields(logrus.Fields{
			"deviceId": header.DeviceID,
			"error":    err.Error(),
		}).Warn("位置汇报校验失败")
		h.ReplyGeneralAck(request, header, jt808.ResultBadMessage)
		return
	}

	h.SessionOf(request)

	record, _ := parsed.Fields["location"].(*jt808.LocationRecord)
	if record != nil && redis.GetClient() != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redis.SaveLastLocation(ctx, header.DeviceID, record); err != nil {
			logger.WithFields(logrus.Fields{
				"deviceId": header.DeviceID,
				"error":    err.Error(),
			}).Warn("保存最新位置失败")
		}
	}

	h.ReplyGeneralAck(request, header, jt808.ResultSuccess)

	if err := uplink.Publish(uplink.TypeLocation, header, parsed.Fields); err != nil {
		logger.WithFields(logrus.Fields{
			"deviceId": header.DeviceID,
			"error":    err.Error(),
		}).Warn("发布位置事件失败")
	}

	zinx_server.ExtendReadDeadline(request.GetConnection())

	if record != nil {
		logger.WithFields(logrus.Fields{
			"deviceId":  header.DeviceID,
			"latitude":  record.Latitude,
			"longitude": record.Longitude,
			"speed":     record.Speed,
			"timestamp": record.Timestamp,
		}).Debug("位置汇报已处理")
	}
}
