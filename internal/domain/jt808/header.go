package jt808

import (
	"encoding/binary"

	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

// ParseHeader 解析消息头（信封）。
// 布局：消息ID(2) + 消息体属性(2) + 终端手机号BCD(6) + 流水号(2) [+ 分包信息(4)]，
// 多字节字段均为大端序。任何一步剩余字节不足都返回ErrHeaderTruncated。
func ParseHeader(body []byte) (*MessageHeader, error) {
	if len(body) < HeaderBaseLen {
		return nil, errors.Newf(errors.ErrHeaderTruncated,
			"header requires %d bytes, got %d", HeaderBaseLen, len(body))
	}

	header := &MessageHeader{
		MessageID:  binary.BigEndian.Uint16(body[0:2]),
		Properties: binary.BigEndian.Uint16(body[2:4]),
	}
	header.BodyLength = header.Properties & propBodyLengthMask
	header.EncryptionType = uint8((header.Properties >> propEncryptionShift) & propEncryptionMask)
	header.Fragmented = header.Properties&propFragmentedBit != 0
	header.ReservedBits = uint8((header.Properties >> propReservedShift) & propReservedMask)
	header.ProtocolVersion = DetectProtocolVersion(header.MessageID, header.ReservedBits)

	// 终端手机号：6字节BCD，12位十进制数字，各版本布局一致
	header.DeviceID = BCDToString(body[4:10])
	header.SequenceNumber = binary.BigEndian.Uint16(body[10:12])

	if header.Fragmented {
		if len(body) < HeaderBaseLen+FragmentInfoLen {
			return nil, errors.Newf(errors.ErrHeaderTruncated,
				"fragmented header requires %d bytes, got %d",
				HeaderBaseLen+FragmentInfoLen, len(body))
		}
		header.Fragment = &FragmentInfo{
			Total:   binary.BigEndian.Uint16(body[12:14]),
			Current: binary.BigEndian.Uint16(body[14:16]),
		}
	}

	// 属性中声明的消息体长度不能超过消息头之后实际剩余的字节数
	if int(header.BodyLength) > len(body)-header.Length() {
		return nil, errors.Newf(errors.ErrHeaderTruncated,
			"declared body length %d exceeds remaining %d bytes",
			header.BodyLength, len(body)-header.Length())
	}

	return header, nil
}

// DetectProtocolVersion 根据结构特征推断协议版本。
// 2011/2013版信封中没有显式版本字段，保留位非零或出现2019版
// 专有消息ID时判定为2019版，否则默认2013版。
// 2011与2013在结构上无法区分，本函数不会返回Version2011。
func DetectProtocolVersion(messageID uint16, reservedBits uint8) ProtocolVersion {
	if reservedBits != 0 {
		return Version2019
	}
	if _, ok := version2019MessageIDs[messageID]; ok {
		return Version2019
	}
	return Version2013
}

// Length 返回消息头占用的字节数
func (h *MessageHeader) Length() int {
	if h.Fragmented {
		return HeaderBaseLen + FragmentInfoLen
	}
	return HeaderBaseLen
}

// Encode 将消息头编码为线上字节。Properties由BodyLength、
// EncryptionType、分包标志和保留位重新组装，不使用Properties原始值。
func (h *MessageHeader) Encode() ([]byte, error) {
	deviceID, err := StringToBCD(h.DeviceID, DeviceIDBCDLen)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidParameter, "invalid device ID", err)
	}

	properties := h.BodyLength & propBodyLengthMask
	properties |= uint16(h.EncryptionType&propEncryptionMask) << propEncryptionShift
	if h.Fragment != nil {
		properties |= propFragmentedBit
	}
	properties |= uint16(h.ReservedBits&propReservedMask) << propReservedShift

	buf := make([]byte, 0, HeaderBaseLen+FragmentInfoLen)
	buf = binary.BigEndian.AppendUint16(buf, h.MessageID)
	buf = binary.BigEndian.AppendUint16(buf, properties)
	buf = append(buf, deviceID...)
	buf = binary.BigEndian.AppendUint16(buf, h.SequenceNumber)
	if h.Fragment != nil {
		buf = binary.BigEndian.AppendUint16(buf, h.Fragment.Total)
		buf = binary.BigEndian.AppendUint16(buf, h.Fragment.Current)
	}
	return buf, nil
}
