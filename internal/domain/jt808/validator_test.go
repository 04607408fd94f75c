package jt808

import (
	"strings"
	"testing"

	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

func TestValidateUnknownMessageID(t *testing.T) {
	err := Validate(0xFFFF, FieldMap{})
	if !errors.IsErrCode(err, errors.ErrUnknownMessageID) {
		t.Errorf("未知消息ID未被检出, 错误: %v", err)
	}
}

func TestValidateValidLocationReport(t *testing.T) {
	fields := FieldMap{
		"location": &LocationRecord{
			StatusFlags: 2,
			Latitude:    39904200,
			Longitude:   116407400,
			Timestamp:   "231222143000",
		},
	}
	if err := Validate(MsgLocationReport, fields); err != nil {
		t.Errorf("合法位置汇报被误判: %v", err)
	}
}

func TestValidateMissingField(t *testing.T) {
	err := Validate(MsgPlatformGeneralAck, FieldMap{
		"ackSequence": uint16(1),
		"result":      uint8(0),
		// 缺少ackMessageId
	})
	if !errors.IsErrCode(err, errors.ErrValidationMissingField) {
		t.Errorf("缺失字段未被检出, 错误: %v", err)
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	err := Validate(MsgTerminalAuth, FieldMap{
		"authCode": 12345, // 应为string
	})
	if !errors.IsErrCode(err, errors.ErrValidationTypeMismatch) {
		t.Errorf("类型不匹配未被检出, 错误: %v", err)
	}
}

func TestValidateScalarTypeRange(t *testing.T) {
	// result声明为uint8，传入超出uint8范围的值
	err := Validate(MsgPlatformGeneralAck, FieldMap{
		"ackSequence":  uint16(1),
		"ackMessageId": uint16(0x0200),
		"result":       300,
	})
	if !errors.IsErrCode(err, errors.ErrValidationRange) {
		t.Errorf("uint8范围越界未被检出, 错误: %v", err)
	}
}

func TestValidateDeclaredRange(t *testing.T) {
	fields := FieldMap{
		"channelId":  uint8(1),
		"command":    uint16(1),
		"interval":   uint16(0),
		"saveFlag":   uint8(0),
		"resolution": uint8(1),
		"quality":    uint8(11), // 声明范围1-10
		"brightness": uint8(128),
		"contrast":   uint8(64),
		"saturation": uint8(64),
		"chroma":     uint8(128),
	}
	err := Validate(MsgCameraShot, fields)
	if !errors.IsErrCode(err, errors.ErrValidationRange) {
		t.Errorf("min/max越界未被检出, 错误: %v", err)
	}
}

func TestValidateEnumViolation(t *testing.T) {
	err := Validate(MsgPlatformGeneralAck, FieldMap{
		"ackSequence":  uint16(1),
		"ackMessageId": uint16(0x0002),
		"result":       uint8(9), // 枚举只允许0-4
	})
	if !errors.IsErrCode(err, errors.ErrValidationEnum) {
		t.Errorf("枚举越界未被检出, 错误: %v", err)
	}
}

func TestValidatePatternViolation(t *testing.T) {
	err := Validate(MsgTerminalRegister, FieldMap{
		"provinceId":     uint16(11),
		"cityId":         uint16(100),
		"manufacturerId": []byte{1, 2, 3, 4, 5},
		"terminalModel":  "GT06",
		"terminalId":     "ID_001!", // 正则只允许字母数字
		"plateColor":     uint8(1),
	})
	if !errors.IsErrCode(err, errors.ErrValidationPattern) {
		t.Errorf("正则违例未被检出, 错误: %v", err)
	}
}

func TestValidateFixedStringTooLong(t *testing.T) {
	err := Validate(MsgTerminalRegister, FieldMap{
		"provinceId":     uint16(11),
		"cityId":         uint16(100),
		"manufacturerId": []byte{1, 2, 3, 4, 5},
		"terminalModel":  "GT06",
		"terminalId":     "TOOLONGID", // 声明7字节
		"plateColor":     uint8(1),
	})
	if !errors.IsErrCode(err, errors.ErrValidationRange) {
		t.Errorf("定长字符串超长未被检出, 错误: %v", err)
	}
}

func TestValidateFirstViolationWins(t *testing.T) {
	// terminalModel超长与plateColor越界同时存在，按字段顺序报前者
	err := Validate(MsgTerminalRegister, FieldMap{
		"provinceId":     uint16(11),
		"cityId":         uint16(100),
		"manufacturerId": []byte{1, 2, 3, 4, 5},
		"terminalModel":  "THIS-MODEL-NAME-IS-WAY-TOO-LONG",
		"terminalId":     "A123456",
		"plateColor":     uint8(99),
	})
	if !errors.IsErrCode(err, errors.ErrValidationRange) {
		t.Fatalf("错误码不一致: 期望字符串超长, 实际: %v", err)
	}
	if !strings.Contains(err.Error(), "terminalModel") {
		t.Errorf("应报告第一个违例字段terminalModel, 实际: %s", err.Error())
	}
}

func TestValidateBCDConstraints(t *testing.T) {
	schema := &FieldSchema{Name: "simCard", Type: FieldBCD, Length: 5}

	if err := validateField(schema, "0123456789"); err != nil {
		t.Errorf("合法BCD被误判: %v", err)
	}
	if err := validateField(schema, "123456789012"); !errors.IsErrCode(err, errors.ErrValidationRange) {
		t.Errorf("BCD超长未被检出, 错误: %v", err)
	}
	if err := validateField(schema, "12ab"); !errors.IsErrCode(err, errors.ErrValidationPattern) {
		t.Errorf("非数字BCD未被检出, 错误: %v", err)
	}
}
