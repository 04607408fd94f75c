package jt808

import (
	"bytes"
	"testing"

	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

func TestParseHeaderRegisterEnvelope(t *testing.T) {
	// 终端注册消息的信封：消息ID 0x0100, 属性 0x0004(体长4),
	// 手机号 123456789012, 流水号 1, 消息体 AA BB CC DD
	body := []byte{
		0x01, 0x00,
		0x00, 0x04,
		0x12, 0x34, 0x56, 0x78, 0x90, 0x12,
		0x00, 0x01,
		0xAA, 0xBB, 0xCC, 0xDD,
	}

	frame := Wrap(body)
	unwrapped, err := Unwrap(frame)
	if err != nil {
		t.Fatalf("解帧失败: %v", err)
	}

	header, err := ParseHeader(unwrapped)
	if err != nil {
		t.Fatalf("解析消息头失败: %v", err)
	}
	if header.MessageID != 0x0100 {
		t.Errorf("MessageID不一致: 期望 0x0100, 实际 0x%04X", header.MessageID)
	}
	if header.DeviceID != "123456789012" {
		t.Errorf("DeviceID不一致: 期望 123456789012, 实际 %s", header.DeviceID)
	}
	if header.SequenceNumber != 1 {
		t.Errorf("SequenceNumber不一致: 期望 1, 实际 %d", header.SequenceNumber)
	}
	if header.BodyLength != 4 {
		t.Errorf("BodyLength不一致: 期望 4, 实际 %d", header.BodyLength)
	}
	if header.Fragmented {
		t.Error("未设置分包标志却解析出分包")
	}
	if header.Length() != HeaderBaseLen {
		t.Errorf("消息头长度不一致: 期望 %d, 实际 %d", HeaderBaseLen, header.Length())
	}

	payload := unwrapped[header.Length() : header.Length()+int(header.BodyLength)]
	if !bytes.Equal(payload, []byte{0xAA, 0xBB, 0xCC, 0xDD}) {
		t.Errorf("消息体不一致: 期望 AABBCCDD, 实际 %X", payload)
	}
}

func TestHeaderEncodeRoundTrip(t *testing.T) {
	original := &MessageHeader{
		MessageID:      MsgLocationReport,
		BodyLength:     28,
		EncryptionType: 0,
		DeviceID:       "013912345678",
		SequenceNumber: 42,
	}

	encoded, err := original.Encode()
	if err != nil {
		t.Fatalf("编码消息头失败: %v", err)
	}
	if len(encoded) != HeaderBaseLen {
		t.Fatalf("消息头长度不一致: 期望 %d, 实际 %d", HeaderBaseLen, len(encoded))
	}

	// 补上声明的消息体长度再解析
	padded := append(encoded, make([]byte, 28)...)
	restored, err := ParseHeader(padded)
	if err != nil {
		t.Fatalf("解析消息头失败: %v", err)
	}
	if restored.MessageID != original.MessageID {
		t.Errorf("MessageID不一致: 期望 0x%04X, 实际 0x%04X", original.MessageID, restored.MessageID)
	}
	if restored.BodyLength != original.BodyLength {
		t.Errorf("BodyLength不一致: 期望 %d, 实际 %d", original.BodyLength, restored.BodyLength)
	}
	if restored.DeviceID != original.DeviceID {
		t.Errorf("DeviceID不一致: 期望 %s, 实际 %s", original.DeviceID, restored.DeviceID)
	}
	if restored.SequenceNumber != original.SequenceNumber {
		t.Errorf("SequenceNumber不一致: 期望 %d, 实际 %d", original.SequenceNumber, restored.SequenceNumber)
	}
}

func TestHeaderFragmentInfo(t *testing.T) {
	original := &MessageHeader{
		MessageID:      MsgMultimediaEvent,
		BodyLength:     0,
		DeviceID:       "123456789012",
		SequenceNumber: 7,
		Fragment:       &FragmentInfo{Total: 3, Current: 2},
	}

	encoded, err := original.Encode()
	if err != nil {
		t.Fatalf("编码消息头失败: %v", err)
	}
	if len(encoded) != HeaderBaseLen+FragmentInfoLen {
		t.Fatalf("分包消息头长度不一致: 期望 %d, 实际 %d", HeaderBaseLen+FragmentInfoLen, len(encoded))
	}

	restored, err := ParseHeader(encoded)
	if err != nil {
		t.Fatalf("解析消息头失败: %v", err)
	}
	if !restored.Fragmented {
		t.Fatal("分包标志丢失")
	}
	if restored.Fragment == nil {
		t.Fatal("分包信息丢失")
	}
	if restored.Fragment.Total != 3 || restored.Fragment.Current != 2 {
		t.Errorf("分包信息不一致: 期望 3/2, 实际 %d/%d", restored.Fragment.Total, restored.Fragment.Current)
	}
	if restored.Length() != HeaderBaseLen+FragmentInfoLen {
		t.Errorf("消息头长度不一致: 期望 %d, 实际 %d", HeaderBaseLen+FragmentInfoLen, restored.Length())
	}
}

func TestParseHeaderTruncated(t *testing.T) {
	// 不足12字节
	_, err := ParseHeader([]byte{0x01, 0x00, 0x00})
	if !errors.IsErrCode(err, errors.ErrHeaderTruncated) {
		t.Errorf("截断消息头未被检出, 错误: %v", err)
	}

	// 分包标志置位但缺少分包信息
	truncated := []byte{
		0x08, 0x00,
		0x20, 0x00, // bit13分包标志
		0x12, 0x34, 0x56, 0x78, 0x90, 0x12,
		0x00, 0x01,
	}
	_, err = ParseHeader(truncated)
	if !errors.IsErrCode(err, errors.ErrHeaderTruncated) {
		t.Errorf("缺失分包信息未被检出, 错误: %v", err)
	}

	// 声明的消息体长度超过实际剩余字节
	declared := []byte{
		0x02, 0x00,
		0x00, 0x10, // 声明体长16但后面没有字节
		0x12, 0x34, 0x56, 0x78, 0x90, 0x12,
		0x00, 0x01,
	}
	_, err = ParseHeader(declared)
	if !errors.IsErrCode(err, errors.ErrHeaderTruncated) {
		t.Errorf("声明体长超限未被检出, 错误: %v", err)
	}
}

func TestDetectProtocolVersion(t *testing.T) {
	cases := []struct {
		name         string
		messageID    uint16
		reservedBits uint8
		expected     ProtocolVersion
	}{
		{"保留位非零判2019", MsgLocationReport, 0x01, Version2019},
		{"2019专有消息ID", 0x0004, 0, Version2019},
		{"补传分包请求", 0x0005, 0, Version2019},
		{"查询服务器时间应答", 0x8004, 0, Version2019},
		{"默认2013", MsgTerminalRegister, 0, Version2013},
		{"心跳默认2013", MsgTerminalHeartbeat, 0, Version2013},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectProtocolVersion(tc.messageID, tc.reservedBits)
			if got != tc.expected {
				t.Errorf("版本判定不一致: 期望 %s, 实际 %s", tc.expected, got)
			}
		})
	}
}
