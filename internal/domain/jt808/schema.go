package jt808

import (
	"fmt"
	"regexp"
)

// 消息结构注册表。进程启动时构建，运行期只读，可被任意并发调用方共享。
// 字段顺序即线上字节顺序，解码与编码都严格按表中顺序推进。
var messageRegistry = map[uint16]*MessageStructure{
	MsgTerminalGeneralAck: {
		Name:      "终端通用应答",
		Direction: DirectionUplink,
		Fields: []FieldSchema{
			{Name: "ackSequence", Type: FieldUint16},
			{Name: "ackMessageId", Type: FieldUint16},
			{Name: "result", Type: FieldUint8, Enum: []uint32{0, 1, 2, 3}},
		},
	},
	MsgTerminalHeartbeat: {
		Name:      "终端心跳",
		Direction: DirectionUplink,
		Fields:    []FieldSchema{}, // 空消息体
	},
	MsgTerminalRegister: {
		Name:      "终端注册",
		Direction: DirectionUplink,
		Fields: []FieldSchema{
			{Name: "provinceId", Type: FieldUint16},
			{Name: "cityId", Type: FieldUint16},
			{Name: "manufacturerId", Type: FieldBytes, Length: 5},
			{Name: "terminalModel", Type: FieldString, Length: 20},
			{Name: "terminalId", Type: FieldString, Length: 7, Pattern: `^[0-9A-Za-z]*$`},
			{Name: "plateColor", Type: FieldUint8, HasRange: true, Min: 0, Max: 9},
			{Name: "plateNumber", Type: FieldString, Variable: true, Optional: true},
		},
	},
	MsgTerminalAuth: {
		Name:      "终端鉴权",
		Direction: DirectionUplink,
		Fields: []FieldSchema{
			{Name: "authCode", Type: FieldString, Variable: true},
		},
	},
	MsgLocationReport: {
		Name:      "位置信息汇报",
		Direction: DirectionUplink,
		Fields: []FieldSchema{
			{Name: "location", Type: FieldLocation},
			{Name: "additional", Type: FieldBytes, Variable: true, Optional: true},
		},
	},
	MsgBatchLocationReport: {
		Name:      "定位数据批量上传",
		Direction: DirectionUplink,
		Fields: []FieldSchema{
			{Name: "locationType", Type: FieldUint8, Enum: []uint32{0, 1}},
			{Name: "locations", Type: FieldArray, Element: ElementLocation, WithCount: true},
		},
	},
	MsgMultimediaEvent: {
		Name:      "多媒体事件信息上传",
		Direction: DirectionUplink,
		Fields: []FieldSchema{
			{Name: "multimediaId", Type: FieldUint32},
			{Name: "multimediaType", Type: FieldUint8, Enum: []uint32{0, 1, 2}},
			{Name: "formatCode", Type: FieldUint8, Enum: []uint32{0, 1, 2, 3, 4}},
			{Name: "eventCode", Type: FieldUint8, HasRange: true, Min: 0, Max: 7},
			{Name: "channelId", Type: FieldUint8},
		},
	},
	MsgPlatformGeneralAck: {
		Name:      "平台通用应答",
		Direction: DirectionDownlink,
		Fields: []FieldSchema{
			{Name: "ackSequence", Type: FieldUint16},
			{Name: "ackMessageId", Type: FieldUint16},
			{Name: "result", Type: FieldUint8, Enum: []uint32{0, 1, 2, 3, 4}},
		},
	},
	MsgRegisterResponse: {
		Name:      "终端注册应答",
		Direction: DirectionDownlink,
		Fields: []FieldSchema{
			{Name: "ackSequence", Type: FieldUint16},
			{Name: "result", Type: FieldUint8, Enum: []uint32{0, 1, 2, 3, 4}},
			{Name: "authCode", Type: FieldString, Variable: true, Optional: true},
		},
	},
	MsgSetParameters: {
		Name:      "设置终端参数",
		Direction: DirectionDownlink,
		Fields: []FieldSchema{
			{Name: "count", Type: FieldUint8},
			{Name: "parameters", Type: FieldArray, Element: ElementParameter},
		},
	},
	MsgTerminalControl: {
		Name:      "终端控制",
		Direction: DirectionDownlink,
		Fields: []FieldSchema{
			{Name: "command", Type: FieldUint8, Enum: []uint32{1, 2, 3, 4, 5, 6, 7}},
			{Name: "parameters", Type: FieldString, Variable: true, Optional: true},
		},
	},
	MsgCameraShot: {
		Name:      "摄像头立即拍摄命令",
		Direction: DirectionDownlink,
		Fields: []FieldSchema{
			{Name: "channelId", Type: FieldUint8, HasRange: true, Min: 1, Max: 255},
			{Name: "command", Type: FieldUint16},
			{Name: "interval", Type: FieldUint16},
			{Name: "saveFlag", Type: FieldUint8, Enum: []uint32{0, 1}},
			{Name: "resolution", Type: FieldUint8, HasRange: true, Min: 0, Max: 8},
			{Name: "quality", Type: FieldUint8, HasRange: true, Min: 1, Max: 10},
			{Name: "brightness", Type: FieldUint8},
			{Name: "contrast", Type: FieldUint8, HasRange: true, Min: 0, Max: 127},
			{Name: "saturation", Type: FieldUint8, HasRange: true, Min: 0, Max: 127},
			{Name: "chroma", Type: FieldUint8},
		},
	},
}

// patternCache 预编译的正则约束，init阶段构建。
// 注册表里写错正则属于编程错误，直接panic终止启动。
var patternCache = map[string]*regexp.Regexp{}

func init() {
	for messageID, structure := range messageRegistry {
		for _, field := range structure.Fields {
			if field.Pattern == "" {
				continue
			}
			if _, ok := patternCache[field.Pattern]; ok {
				continue
			}
			compiled, err := regexp.Compile(field.Pattern)
			if err != nil {
				panic(fmt.Sprintf("消息0x%04X字段%s的正则约束非法: %v", messageID, field.Name, err))
			}
			patternCache[field.Pattern] = compiled
		}
	}
}

// Lookup 查询消息ID对应的消息体结构
func Lookup(messageID uint16) (*MessageStructure, bool) {
	structure, ok := messageRegistry[messageID]
	return structure, ok
}
