package jt808

import (
	"testing"

	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

// buildAndParse 构造下行帧后立即回解，失败直接终止测试
func buildAndParse(t *testing.T, frame []byte, err error) *ParsedMessage {
	t.Helper()
	if err != nil {
		t.Fatalf("构造下行帧失败: %v", err)
	}
	parsed := ParseFrame(frame)
	if !parsed.Success {
		t.Fatalf("回解下行帧失败: %v", parsed.Error)
	}
	return parsed
}

func TestBuildGeneralAck(t *testing.T) {
	frame, err := BuildGeneralAck("123456789012", 100, 55, MsgLocationReport, ResultSuccess)
	parsed := buildAndParse(t, frame, err)

	if parsed.Header.MessageID != MsgPlatformGeneralAck {
		t.Errorf("MessageID不一致: 期望 0x%04X, 实际 0x%04X", MsgPlatformGeneralAck, parsed.Header.MessageID)
	}
	if parsed.Header.DeviceID != "123456789012" {
		t.Errorf("DeviceID不一致: 期望 123456789012, 实际 %s", parsed.Header.DeviceID)
	}
	if parsed.Header.SequenceNumber != 100 {
		t.Errorf("SequenceNumber不一致: 期望 100, 实际 %d", parsed.Header.SequenceNumber)
	}
	if parsed.Fields["ackSequence"] != uint16(55) {
		t.Errorf("ackSequence不一致: 期望 55, 实际 %v", parsed.Fields["ackSequence"])
	}
	if parsed.Fields["ackMessageId"] != uint16(MsgLocationReport) {
		t.Errorf("ackMessageId不一致: 期望 0x0200, 实际 %v", parsed.Fields["ackMessageId"])
	}
	if parsed.Fields["result"] != ResultSuccess {
		t.Errorf("result不一致: 期望 0, 实际 %v", parsed.Fields["result"])
	}
}

func TestBuildRegisterResponseSuccess(t *testing.T) {
	frame, err := BuildRegisterResponse("013912345678", 1, 10, RegisterSuccess, "token-abc123")
	parsed := buildAndParse(t, frame, err)

	if parsed.Fields["result"] != RegisterSuccess {
		t.Errorf("result不一致: 期望 0, 实际 %v", parsed.Fields["result"])
	}
	if parsed.Fields["authCode"] != "token-abc123" {
		t.Errorf("authCode不一致: 期望 token-abc123, 实际 %v", parsed.Fields["authCode"])
	}
}

func TestBuildRegisterResponseFailureOmitsAuthCode(t *testing.T) {
	// 注册失败时即使传入鉴权码也不下发
	frame, err := BuildRegisterResponse("013912345678", 2, 11, RegisterTerminalNotFound, "should-not-appear")
	parsed := buildAndParse(t, frame, err)

	if parsed.Fields["result"] != RegisterTerminalNotFound {
		t.Errorf("result不一致: 期望 %d, 实际 %v", RegisterTerminalNotFound, parsed.Fields["result"])
	}
	if _, present := parsed.Fields["authCode"]; present {
		t.Error("失败应答不应携带authCode")
	}
}

func TestBuildSetParameters(t *testing.T) {
	parameters := []ParameterRecord{
		{ID: 0x0001, Value: []byte{0x00, 0x00, 0x00, 0x1E}},
		{ID: 0x0027, Value: []byte{0x00, 0x00, 0x00, 0x0A}},
	}
	frame, err := BuildSetParameters("123456789012", 3, parameters)
	parsed := buildAndParse(t, frame, err)

	if parsed.Header.MessageID != MsgSetParameters {
		t.Errorf("MessageID不一致: 期望 0x8103, 实际 0x%04X", parsed.Header.MessageID)
	}
	if parsed.Fields["count"] != uint8(2) {
		t.Errorf("count不一致: 期望 2, 实际 %v", parsed.Fields["count"])
	}
	restored := parsed.Fields["parameters"].([]ParameterRecord)
	if len(restored) != 2 || restored[0].ID != 0x0001 || restored[1].ID != 0x0027 {
		t.Errorf("参数项不一致: 实际 %+v", restored)
	}
}

func TestBuildTerminalControl(t *testing.T) {
	// 带参数的控制命令
	frame, err := BuildTerminalControl("123456789012", 4, 1, "URL;1;12345")
	parsed := buildAndParse(t, frame, err)
	if parsed.Fields["command"] != uint8(1) {
		t.Errorf("command不一致: 期望 1, 实际 %v", parsed.Fields["command"])
	}
	if parsed.Fields["parameters"] != "URL;1;12345" {
		t.Errorf("parameters不一致: 期望 URL;1;12345, 实际 %v", parsed.Fields["parameters"])
	}

	// 无参数的控制命令（终端复位）
	frame, err = BuildTerminalControl("123456789012", 5, 4, "")
	parsed = buildAndParse(t, frame, err)
	if parsed.Fields["command"] != uint8(4) {
		t.Errorf("command不一致: 期望 4, 实际 %v", parsed.Fields["command"])
	}
	if _, present := parsed.Fields["parameters"]; present {
		t.Error("无参数控制命令不应携带parameters")
	}
}

func TestBuildCameraShot(t *testing.T) {
	cmd := &CameraShotCommand{
		ChannelID:  1,
		Command:    3, // 拍3张
		Interval:   5,
		SaveFlag:   1,
		Resolution: 1,
		Quality:    8,
		Brightness: 128,
		Contrast:   64,
		Saturation: 64,
		Chroma:     128,
	}
	frame, err := BuildCameraShot("123456789012", 6, cmd)
	parsed := buildAndParse(t, frame, err)

	if parsed.Header.MessageID != MsgCameraShot {
		t.Errorf("MessageID不一致: 期望 0x8801, 实际 0x%04X", parsed.Header.MessageID)
	}
	if parsed.Fields["channelId"] != uint8(1) {
		t.Errorf("channelId不一致: 期望 1, 实际 %v", parsed.Fields["channelId"])
	}
	if parsed.Fields["command"] != uint16(3) {
		t.Errorf("command不一致: 期望 3, 实际 %v", parsed.Fields["command"])
	}
	if parsed.Fields["quality"] != uint8(8) {
		t.Errorf("quality不一致: 期望 8, 实际 %v", parsed.Fields["quality"])
	}
}

func TestBuildCameraShotRejectsInvalidParams(t *testing.T) {
	cmd := &CameraShotCommand{
		ChannelID: 0, // 通道号从1开始
		Quality:   5,
		SaveFlag:  0,
	}
	_, err := BuildCameraShot("123456789012", 7, cmd)
	if !errors.IsErrCode(err, errors.ErrValidationRange) {
		t.Errorf("非法拍摄参数未被检出, 错误: %v", err)
	}
}

func TestBuildFrameInvalidDeviceID(t *testing.T) {
	_, err := BuildGeneralAck("not-a-number", 1, 1, MsgTerminalHeartbeat, ResultSuccess)
	if !errors.IsErrCode(err, errors.ErrInvalidParameter) {
		t.Errorf("非法终端手机号未被检出, 错误: %v", err)
	}
}
