package jt808

import (
	"bytes"

	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

// 帧层编解码。帧格式：0x7E + 消息头/消息体 + 校验和(1字节) + 0x7E，
// 校验和为两个定界符之间除校验和自身外所有字节的异或。
//
// 注意：本实现不做0x7D转义。所建模的终端侧实现同样不转义，
// 双方必须保持一致，否则线上已部署设备的报文将无法互通。

// CalculateChecksum 计算异或校验和
func CalculateChecksum(data []byte) byte {
	var checksum byte
	for _, b := range data {
		checksum ^= b
	}
	return checksum
}

// Wrap 将消息头+消息体封装为完整帧：追加校验和并加上首尾定界符
func Wrap(body []byte) []byte {
	frame := make([]byte, 0, len(body)+3)
	frame = append(frame, FrameDelimiter)
	frame = append(frame, body...)
	frame = append(frame, CalculateChecksum(body))
	frame = append(frame, FrameDelimiter)
	return frame
}

// Unwrap 剥离帧定界符并验证校验和，返回消息头+消息体。
// 定界符不足两个、首尾重合或帧长不足时返回ErrFrameMalformed，
// 校验和不匹配时返回ErrFrameChecksumMismatch。
func Unwrap(frame []byte) ([]byte, error) {
	if len(frame) < MinFrameLen {
		return nil, errors.Newf(errors.ErrFrameMalformed,
			"frame too short: %d bytes, expected at least %d", len(frame), MinFrameLen)
	}

	start := bytes.IndexByte(frame, FrameDelimiter)
	end := bytes.LastIndexByte(frame, FrameDelimiter)
	if start < 0 || end < 0 || start == end {
		return nil, errors.New(errors.ErrFrameMalformed,
			"frame must contain two distinct delimiters")
	}

	// 定界符之间至少要有1字节校验和
	content := frame[start+1 : end]
	if len(content) < 1 {
		return nil, errors.New(errors.ErrFrameMalformed,
			"frame has no room for checksum byte")
	}

	body := content[:len(content)-1]
	received := content[len(content)-1]
	calculated := CalculateChecksum(body)
	if received != calculated {
		return nil, errors.Newf(errors.ErrFrameChecksumMismatch,
			"checksum mismatch: calculated=0x%02X, received=0x%02X", calculated, received)
	}

	return body, nil
}
