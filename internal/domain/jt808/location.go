package jt808

import (
	"encoding/binary"

	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

// LocationRecord 位置信息汇报的基本信息部分，固定28字节。
// 纬度/经度为度数乘以10^6的整数，速度单位0.1km/h，
// 时间为BCD编码的YYMMDDHHMMSS。附加信息项不属于本结构，
// 由所在消息结构中的后续字段承载。
type LocationRecord struct {
	AlarmFlags  uint32 `json:"alarmFlags"`  // 报警标志位
	StatusFlags uint32 `json:"statusFlags"` // 状态标志位
	Latitude    uint32 `json:"latitude"`    // 纬度（度 × 10^6）
	Longitude   uint32 `json:"longitude"`   // 经度（度 × 10^6）
	Altitude    uint16 `json:"altitude"`    // 海拔高度（米）
	Speed       uint16 `json:"speed"`       // 速度（0.1km/h）
	Direction   uint16 `json:"direction"`   // 方向（0-359度）
	Timestamp   string `json:"timestamp"`   // 时间 YYMMDDHHMMSS
}

// MarshalBinary 序列化为28字节的线上格式
func (r *LocationRecord) MarshalBinary() ([]byte, error) {
	timestamp, err := StringToBCD(r.Timestamp, 6)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidParameter, "invalid location timestamp", err)
	}

	buf := make([]byte, 0, LocationRecordLen)
	buf = binary.BigEndian.AppendUint32(buf, r.AlarmFlags)
	buf = binary.BigEndian.AppendUint32(buf, r.StatusFlags)
	buf = binary.BigEndian.AppendUint32(buf, r.Latitude)
	buf = binary.BigEndian.AppendUint32(buf, r.Longitude)
	buf = binary.BigEndian.AppendUint16(buf, r.Altitude)
	buf = binary.BigEndian.AppendUint16(buf, r.Speed)
	buf = binary.BigEndian.AppendUint16(buf, r.Direction)
	buf = append(buf, timestamp...)
	return buf, nil
}

// UnmarshalBinary 从28字节的线上格式反序列化
func (r *LocationRecord) UnmarshalBinary(data []byte) error {
	if len(data) < LocationRecordLen {
		return errors.Newf(errors.ErrDecodeTruncated,
			"location record requires %d bytes, got %d", LocationRecordLen, len(data))
	}
	r.AlarmFlags = binary.BigEndian.Uint32(data[0:4])
	r.StatusFlags = binary.BigEndian.Uint32(data[4:8])
	r.Latitude = binary.BigEndian.Uint32(data[8:12])
	r.Longitude = binary.BigEndian.Uint32(data[12:16])
	r.Altitude = binary.BigEndian.Uint16(data[16:18])
	r.Speed = binary.BigEndian.Uint16(data[18:20])
	r.Direction = binary.BigEndian.Uint16(data[20:22])
	r.Timestamp = BCDToString(data[22:28])
	return nil
}

// ParameterRecord 终端参数项：参数ID(4) + 参数长度(1) + 参数值
type ParameterRecord struct {
	ID     uint32 `json:"id"`
	Length uint8  `json:"length"`
	Value  []byte `json:"value"`
}

// MarshalBinary 序列化为线上格式，Length以Value实际长度为准
func (p *ParameterRecord) MarshalBinary() ([]byte, error) {
	if len(p.Value) > 0xFF {
		return nil, errors.Newf(errors.ErrInvalidParameter,
			"parameter 0x%04X value too long: %d bytes", p.ID, len(p.Value))
	}
	buf := make([]byte, 0, ParameterRecordMinLen+len(p.Value))
	buf = binary.BigEndian.AppendUint32(buf, p.ID)
	buf = append(buf, uint8(len(p.Value)))
	buf = append(buf, p.Value...)
	return buf, nil
}

// UnmarshalBinary 从线上格式反序列化，返回消费的字节数需由调用方
// 通过ParameterRecordMinLen+Length自行推进
func (p *ParameterRecord) UnmarshalBinary(data []byte) error {
	if len(data) < ParameterRecordMinLen {
		return errors.Newf(errors.ErrDecodeTruncated,
			"parameter record requires at least %d bytes, got %d", ParameterRecordMinLen, len(data))
	}
	p.ID = binary.BigEndian.Uint32(data[0:4])
	p.Length = data[4]
	if len(data) < ParameterRecordMinLen+int(p.Length) {
		return errors.Newf(errors.ErrDecodeTruncated,
			"parameter 0x%04X declares %d value bytes, only %d remain",
			p.ID, p.Length, len(data)-ParameterRecordMinLen)
	}
	p.Value = make([]byte, p.Length)
	copy(p.Value, data[ParameterRecordMinLen:ParameterRecordMinLen+int(p.Length)])
	return nil
}
