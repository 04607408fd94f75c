package jt808

import (
	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

// BCDToString 将BCD字节解码为十进制数字字符串，
// 每个字节产生两位数字（高半字节在前）。
// 这里不校验半字节是否为0-9，非法半字节由Validate负责发现。
func BCDToString(data []byte) string {
	const hexDigits = "0123456789abcdef"
	result := make([]byte, 0, len(data)*2)
	for _, b := range data {
		result = append(result, hexDigits[(b>>4)&0x0F], hexDigits[b&0x0F])
	}
	return string(result)
}

// StringToBCD 将十进制数字字符串编码为定长BCD字节，
// 位数不足时左补零：StringToBCD("1234", 3) => [0x00, 0x12, 0x34]
func StringToBCD(s string, length int) ([]byte, error) {
	if len(s) > length*2 {
		return nil, errors.Newf(errors.ErrInvalidParameter,
			"BCD value %q exceeds %d digits", s, length*2)
	}

	// 左补零对齐到2*length位
	padded := make([]byte, length*2)
	for i := range padded {
		padded[i] = '0'
	}
	copy(padded[length*2-len(s):], s)

	result := make([]byte, length)
	for i := 0; i < length; i++ {
		high := padded[i*2]
		low := padded[i*2+1]
		if high < '0' || high > '9' || low < '0' || low > '9' {
			return nil, errors.Newf(errors.ErrInvalidParameter,
				"BCD value %q contains non-decimal character", s)
		}
		result[i] = (high-'0')<<4 | (low - '0')
	}
	return result, nil
}

// trimNUL 去除字符串字段中的NUL填充字节
func trimNUL(data []byte) string {
	result := make([]byte, 0, len(data))
	for _, b := range data {
		if b != 0x00 {
			result = append(result, b)
		}
	}
	return string(result)
}

// GetMessageName 获取消息ID的可读名称
func GetMessageName(messageID uint16) string {
	if structure, ok := Lookup(messageID); ok {
		return structure.Name
	}
	return "未知消息"
}
