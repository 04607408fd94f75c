package jt808

// ProtocolVersion 协议版本枚举
type ProtocolVersion uint8

const (
	VersionUnknown ProtocolVersion = iota
	Version2011                    // JT/T 808-2011
	Version2013                    // JT/T 808-2013
	Version2019                    // JT/T 808-2019
)

// String 返回协议版本的可读名称
func (v ProtocolVersion) String() string {
	switch v {
	case Version2011:
		return "2011"
	case Version2013:
		return "2013"
	case Version2019:
		return "2019"
	default:
		return "unknown"
	}
}

// FieldType 消息体字段类型枚举（封闭集合，编解码按此穷举）
type FieldType uint8

const (
	FieldUint8 FieldType = iota + 1
	FieldUint16
	FieldUint32
	FieldBCD
	FieldString
	FieldBytes
	FieldLocation
	FieldArray
)

// String 返回字段类型的可读名称
func (t FieldType) String() string {
	switch t {
	case FieldUint8:
		return "uint8"
	case FieldUint16:
		return "uint16"
	case FieldUint32:
		return "uint32"
	case FieldBCD:
		return "bcd"
	case FieldString:
		return "string"
	case FieldBytes:
		return "bytes"
	case FieldLocation:
		return "location"
	case FieldArray:
		return "array"
	default:
		return "invalid"
	}
}

// ElementType 数组字段的元素类型
type ElementType uint8

const (
	ElementNone ElementType = iota
	ElementLocation
	ElementParameter
)

// Direction 消息方向
type Direction uint8

const (
	DirectionUplink   Direction = iota + 1 // 终端→平台
	DirectionDownlink                      // 平台→终端
)

// FieldSchema 单个消息体字段的结构定义。
// 字段含义随Type而定：Length/Variable只对bcd/string/bytes有效，
// Element/WithCount只对array有效。Variable与Length互斥。
type FieldSchema struct {
	Name     string
	Type     FieldType
	Length   int  // 固定字节长度（bcd/string/bytes）
	Variable bool // 变长字段：解码时消费作用域内剩余全部字节
	Optional bool // 可选字段：缺失时不报错（只允许位于结构尾部）

	// 取值约束，由Validate检查
	HasRange bool
	Min      uint32
	Max      uint32
	Enum     []uint32
	Pattern  string // 正则约束（string/bcd字段）

	// 数组字段元信息
	Element   ElementType
	WithCount bool // 元素列表前是否带2字节数量前缀
}

// MessageStructure 单个消息ID对应的消息体结构，
// 进程启动时构建，运行期只读。
type MessageStructure struct {
	Name      string
	Direction Direction
	Fields    []FieldSchema
}

// FieldMap 解码后的字段名→值映射
type FieldMap map[string]interface{}

// FragmentInfo 分包信息
type FragmentInfo struct {
	Total   uint16 `json:"total"`   // 消息总包数
	Current uint16 `json:"current"` // 包序号，从1开始
}

// MessageHeader 消息头（信封）
type MessageHeader struct {
	MessageID       uint16          `json:"messageId"`
	Properties      uint16          `json:"properties"` // 原始属性字段
	BodyLength      uint16          `json:"bodyLength"`
	EncryptionType  uint8           `json:"encryptionType"`
	Fragmented      bool            `json:"fragmented"`
	ReservedBits    uint8           `json:"reservedBits"`
	ProtocolVersion ProtocolVersion `json:"protocolVersion"`
	DeviceID        string          `json:"deviceId"` // 12位十进制数字（6字节BCD）
	SequenceNumber  uint16          `json:"sequenceNumber"`
	Fragment        *FragmentInfo   `json:"fragment,omitempty"` // 仅分包时存在
}

// ParsedMessage 统一的帧解析结果结构
type ParsedMessage struct {
	Success  bool
	Header   *MessageHeader // 消息头解析成功后即填充
	Fields   FieldMap       // 解码后的消息体字段
	RawFrame []byte         // 原始帧数据
	Error    error          // 解析错误
}
