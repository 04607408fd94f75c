package zinx_server

import (
	"github.com/aceld/zinx/ziface"
	"github.com/sirupsen/logrus"

	"github.com/bujia-iot/jt808-zinx/internal/domain/jt808"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/config"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
)

// JT808Decoder 协议解码拦截器。
// 读到的帧经ParseFrame解析后，把消息ID写入Zinx消息用于路由，
// 解析结果挂到拦截链响应上，处理器通过request.GetResponse()取用。
type JT808Decoder struct{}

// NewJT808Decoder 创建协议解码器
func NewJT808Decoder() *JT808Decoder {
	return &JT808Decoder{}
}

// GetLengthField 协议按0x7E定界而非长度字段，返回nil关闭框架的长度解包
func (d *JT808Decoder) GetLengthField() *ziface.LengthField {
	return nil
}

// Intercept 实现ziface.IDecoder
func (d *JT808Decoder) Intercept(chain ziface.IChain) ziface.IcResp {
	iMessage := chain.GetIMessage()
	if iMessage == nil {
		return chain.ProceedWithIMessage(iMessage, nil)
	}

	data := iMessage.GetData()
	logger.HexDump("收到终端数据", data, config.GetConfig().Logger.LogHexDump)

	parsed := jt808.ParseFrame(data)
	if parsed.Header == nil {
		// 帧层或消息头解析失败，无从路由，丢弃该帧
		logger.WithFields(logrus.Fields{
			"dataLen": len(data),
			"error":   parsed.Error,
		}).Warn("丢弃无法解析的帧")
		return nil
	}

	request := chain.Request()
	if iRequest, ok := request.(ziface.IRequest); ok {
		conn := iRequest.GetConnection()
		conn.SetProperty(PropKeyDeviceID, parsed.Header.DeviceID)
		conn.SetProperty(PropKeyProtocolVersion, parsed.Header.ProtocolVersion.String())
		conn.SetProperty(PropKeyLastSequence, parsed.Header.SequenceNumber)
	}

	// 即使消息体解码失败也向下游路由，由处理器决定应答错误码
	iMessage.SetMsgID(uint32(parsed.Header.MessageID))
	iMessage.SetDataLen(uint32(len(data)))
	iMessage.SetData(data)

	return chain.ProceedWithIMessage(iMessage, parsed)
}
