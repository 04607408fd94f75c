package uplink

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/bujia-iot/jt808-zinx/internal/domain/jt808"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/config"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

// 上行消息类型，作为NATS主题的最后一段
const (
	TypeRegister      = "register"
	TypeAuth          = "auth"
	TypeHeartbeat     = "heartbeat"
	TypeLocation      = "location"
	TypeBatchLocation = "batch_location"
	TypeMultimedia    = "multimedia"
	TypeOffline       = "offline"
)

// UplinkMessage 发布到消息总线的统一上行载荷
type UplinkMessage struct {
	Type      string               `json:"type"`
	DeviceID  string               `json:"deviceId"`
	MessageID uint16               `json:"messageId"`
	Sequence  uint16               `json:"sequence"`
	Version   string               `json:"version,omitempty"`
	Fields    jt808.FieldMap       `json:"fields,omitempty"`
	Header    *jt808.MessageHeader `json:"header,omitempty"`
	Timestamp int64                `json:"timestamp"`
}

// Publisher 将解码后的上行消息发布到NATS，
// 下游业务平台按主题订阅消费
type Publisher struct {
	conn          *nats.Conn
	subjectPrefix string
}

// 全局发布器实例，未初始化时发布调用为空操作
var defaultPublisher *Publisher

// Init 建立NATS连接并初始化全局发布器
func Init() error {
	cfg := config.GetConfig().NATS
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = "jt808.uplink"
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.WithField("error", err).Warn("NATS连接断开")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("url", nc.ConnectedUrl()).Info("NATS重连成功")
		}),
	)
	if err != nil {
		return errors.Wrap(errors.ErrUplinkPublishFailed, "NATS连接失败", err)
	}

	defaultPublisher = &Publisher{
		conn:          conn,
		subjectPrefix: cfg.SubjectPrefix,
	}
	logger.WithField("url", cfg.URL).Info("NATS连接初始化成功")
	return nil
}

// Close 排空并关闭NATS连接
func Close() {
	if defaultPublisher != nil && defaultPublisher.conn != nil {
		if err := defaultPublisher.conn.Drain(); err != nil {
			logger.WithField("error", err).Warn("NATS排空失败")
		}
		defaultPublisher = nil
	}
}

// Publish 发布一条上行消息。总线未初始化时丢弃并记录debug日志，
// 网关不因业务总线缺席而拒绝终端接入。
func Publish(msgType string, header *jt808.MessageHeader, fields jt808.FieldMap) error {
	if defaultPublisher == nil {
		logger.WithField("type", msgType).Debug("消息总线未初始化，丢弃上行消息")
		return nil
	}
	return defaultPublisher.publish(msgType, header, fields)
}

func (p *Publisher) publish(msgType string, header *jt808.MessageHeader, fields jt808.FieldMap) error {
	message := &UplinkMessage{
		Type:      msgType,
		DeviceID:  header.DeviceID,
		MessageID: header.MessageID,
		Sequence:  header.SequenceNumber,
		Version:   header.ProtocolVersion.String(),
		Fields:    fields,
		Header:    header,
		Timestamp: time.Now().UnixMilli(),
	}

	data, err := json.Marshal(message)
	if err != nil {
		return errors.Wrap(errors.ErrUplinkPublishFailed, "序列化上行消息失败", err)
	}

	subject := p.subjectPrefix + "." + msgType
	if err := p.conn.Publish(subject, data); err != nil {
		return errors.Wrap(errors.ErrUplinkPublishFailed, "发布上行消息失败", err)
	}

	logger.WithFields(map[string]interface{}{
		"subject":  subject,
		"deviceId": header.DeviceID,
		"msgId":    header.MessageID,
	}).Debug("上行消息已发布")
	return nil
}
