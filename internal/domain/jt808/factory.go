package jt808

import (
	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

// 下行消息构造器。只是EncodeBody + 消息头编码 + 封帧的组合薄层，
// 流水号由调用方（会话层）分配。

// BuildFrame 构造任意已注册消息的完整下行帧
func BuildFrame(messageID uint16, deviceID string, sequence uint16, fields FieldMap) ([]byte, error) {
	body, err := EncodeBody(messageID, fields)
	if err != nil {
		return nil, err
	}
	if len(body) > int(propBodyLengthMask) {
		return nil, errors.Newf(errors.ErrInvalidParameter,
			"message 0x%04X body length %d exceeds properties field capacity", messageID, len(body))
	}

	header := &MessageHeader{
		MessageID:      messageID,
		BodyLength:     uint16(len(body)),
		DeviceID:       deviceID,
		SequenceNumber: sequence,
	}
	headerBytes, err := header.Encode()
	if err != nil {
		return nil, err
	}
	return Wrap(append(headerBytes, body...)), nil
}

// BuildGeneralAck 构造平台通用应答(0x8001)，
// 回应终端消息的流水号与消息ID
func BuildGeneralAck(deviceID string, sequence, ackSequence, ackMessageID uint16, result uint8) ([]byte, error) {
	return BuildFrame(MsgPlatformGeneralAck, deviceID, sequence, FieldMap{
		"ackSequence":  ackSequence,
		"ackMessageId": ackMessageID,
		"result":       result,
	})
}

// BuildRegisterResponse 构造终端注册应答(0x8100)。
// 鉴权码只在注册成功时下发
func BuildRegisterResponse(deviceID string, sequence, ackSequence uint16, result uint8, authCode string) ([]byte, error) {
	fields := FieldMap{
		"ackSequence": ackSequence,
		"result":      result,
	}
	if result == RegisterSuccess {
		fields["authCode"] = authCode
	}
	return BuildFrame(MsgRegisterResponse, deviceID, sequence, fields)
}

// BuildSetParameters 构造设置终端参数(0x8103)
func BuildSetParameters(deviceID string, sequence uint16, parameters []ParameterRecord) ([]byte, error) {
	if len(parameters) > 0xFF {
		return nil, errors.Newf(errors.ErrInvalidParameter,
			"too many parameter records: %d", len(parameters))
	}
	return BuildFrame(MsgSetParameters, deviceID, sequence, FieldMap{
		"count":      uint8(len(parameters)),
		"parameters": parameters,
	})
}

// BuildTerminalControl 构造终端控制(0x8105)，parameters为空时不携带参数
func BuildTerminalControl(deviceID string, sequence uint16, command uint8, parameters string) ([]byte, error) {
	fields := FieldMap{
		"command": command,
	}
	if parameters != "" {
		fields["parameters"] = parameters
	}
	return BuildFrame(MsgTerminalControl, deviceID, sequence, fields)
}

// CameraShotCommand 摄像头立即拍摄命令参数
type CameraShotCommand struct {
	ChannelID  uint8  `json:"channelId"`  // 逻辑通道号，从1开始
	Command    uint16 `json:"command"`    // 0=停止拍摄 0xFFFF=录像 其它=拍照张数
	Interval   uint16 `json:"interval"`   // 拍照间隔/录像时间（秒）
	SaveFlag   uint8  `json:"saveFlag"`   // 0=实时上传 1=保存
	Resolution uint8  `json:"resolution"` // 分辨率代码
	Quality    uint8  `json:"quality"`    // 图像/视频质量 1-10
	Brightness uint8  `json:"brightness"`
	Contrast   uint8  `json:"contrast"`
	Saturation uint8  `json:"saturation"`
	Chroma     uint8  `json:"chroma"`
}

// BuildCameraShot 构造摄像头立即拍摄命令(0x8801)，编码前先校验取值约束
func BuildCameraShot(deviceID string, sequence uint16, cmd *CameraShotCommand) ([]byte, error) {
	fields := FieldMap{
		"channelId":  cmd.ChannelID,
		"command":    cmd.Command,
		"interval":   cmd.Interval,
		"saveFlag":   cmd.SaveFlag,
		"resolution": cmd.Resolution,
		"quality":    cmd.Quality,
		"brightness": cmd.Brightness,
		"contrast":   cmd.Contrast,
		"saturation": cmd.Saturation,
		"chroma":     cmd.Chroma,
	}
	if err := Validate(MsgCameraShot, fields); err != nil {
		return nil, err
	}
	return BuildFrame(MsgCameraShot, deviceID, sequence, fields)
}
