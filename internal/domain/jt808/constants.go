package jt808

// 帧结构常量
const (
	// FrameDelimiter JT808帧定界符，帧首尾各一个
	FrameDelimiter byte = 0x7E

	// MinFrameLen 最小帧长度：定界符(1) + 校验和(1) + 定界符(1)
	MinFrameLen = 3

	// HeaderBaseLen 消息头固定部分长度：消息ID(2) + 属性(2) + 终端手机号BCD(6) + 流水号(2)
	HeaderBaseLen = 12

	// FragmentInfoLen 分包信息长度：总包数(2) + 包序号(2)
	FragmentInfoLen = 4

	// DeviceIDBCDLen 终端手机号的BCD字节数（12位十进制数字）
	DeviceIDBCDLen = 6

	// LocationRecordLen 位置信息汇报基本信息的固定长度
	LocationRecordLen = 28

	// ParameterRecordMinLen 终端参数项最小长度：参数ID(4) + 长度(1)
	ParameterRecordMinLen = 5
)

// 消息属性字段位定义
const (
	propBodyLengthMask   = 0x03FF // bit0-9 消息体长度
	propEncryptionShift  = 10     // bit10-12 加密方式
	propEncryptionMask   = 0x07
	propFragmentedBit    = 1 << 13 // bit13 分包标志
	propReservedShift    = 14      // bit14-15 保留位/版本标识
	propReservedMask     = 0x03
)

// 消息ID定义（0x0xxx为终端上行，0x8xxx为平台下行）
const (
	MsgTerminalGeneralAck  uint16 = 0x0001 // 终端通用应答
	MsgTerminalHeartbeat   uint16 = 0x0002 // 终端心跳
	MsgTerminalRegister    uint16 = 0x0100 // 终端注册
	MsgTerminalAuth        uint16 = 0x0102 // 终端鉴权
	MsgLocationReport      uint16 = 0x0200 // 位置信息汇报
	MsgBatchLocationReport uint16 = 0x0704 // 定位数据批量上传
	MsgMultimediaEvent     uint16 = 0x0800 // 多媒体事件信息上传
	MsgPlatformGeneralAck  uint16 = 0x8001 // 平台通用应答
	MsgRegisterResponse    uint16 = 0x8100 // 终端注册应答
	MsgSetParameters       uint16 = 0x8103 // 设置终端参数
	MsgTerminalControl     uint16 = 0x8105 // 终端控制
	MsgCameraShot          uint16 = 0x8801 // 摄像头立即拍摄命令
)

// 通用应答结果码
const (
	ResultSuccess     uint8 = 0 // 成功/确认
	ResultFailure     uint8 = 1 // 失败
	ResultBadMessage  uint8 = 2 // 消息有误
	ResultUnsupported uint8 = 3 // 不支持
	ResultAlarmAck    uint8 = 4 // 报警处理确认（仅平台通用应答）
)

// 注册应答结果码
const (
	RegisterSuccess            uint8 = 0 // 成功
	RegisterVehicleRegistered  uint8 = 1 // 车辆已被注册
	RegisterVehicleNotFound    uint8 = 2 // 数据库中无该车辆
	RegisterTerminalRegistered uint8 = 3 // 终端已被注册
	RegisterTerminalNotFound   uint8 = 4 // 数据库中无该终端
)

// version2019MessageIDs 仅在2019版协议中定义的消息ID，
// 用于在保留位为0时推断协议版本
var version2019MessageIDs = map[uint16]struct{}{
	0x0004: {}, // 查询服务器时间请求
	0x0005: {}, // 终端补传分包请求
	0x8004: {}, // 查询服务器时间应答
}
