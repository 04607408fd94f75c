package jt808

import (
	"bytes"
	"testing"

	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

func TestFrameRoundTrip(t *testing.T) {
	body := []byte{0x01, 0x00, 0x00, 0x04, 0x12, 0x34, 0x56, 0x78, 0x90, 0x12, 0x00, 0x01}

	frame := Wrap(body)
	if frame[0] != FrameDelimiter || frame[len(frame)-1] != FrameDelimiter {
		t.Fatalf("帧首尾定界符不正确: %02X ... %02X", frame[0], frame[len(frame)-1])
	}
	if len(frame) != len(body)+3 {
		t.Errorf("帧长度不一致: 期望 %d, 实际 %d", len(body)+3, len(frame))
	}

	restored, err := Unwrap(frame)
	if err != nil {
		t.Fatalf("解帧失败: %v", err)
	}
	if !bytes.Equal(restored, body) {
		t.Errorf("消息内容不一致: 期望 %X, 实际 %X", body, restored)
	}
}

func TestFrameEmptyBody(t *testing.T) {
	// 空消息体也是合法帧：0x7E + 校验和(0x00) + 0x7E
	frame := Wrap(nil)
	if len(frame) != MinFrameLen {
		t.Fatalf("空消息体帧长度不一致: 期望 %d, 实际 %d", MinFrameLen, len(frame))
	}

	restored, err := Unwrap(frame)
	if err != nil {
		t.Fatalf("解帧失败: %v", err)
	}
	if len(restored) != 0 {
		t.Errorf("空消息体应解出0字节, 实际 %d 字节", len(restored))
	}
}

func TestFrameChecksumSensitivity(t *testing.T) {
	body := []byte{0x02, 0x00, 0x00, 0x00, 0x13, 0x80, 0x00, 0x10, 0x10, 0x01, 0x00, 0x05}
	frame := Wrap(body)

	// 逐位翻转校验和字节，每一位都必须被发现
	checksumPos := len(frame) - 2
	for bit := 0; bit < 8; bit++ {
		corrupted := make([]byte, len(frame))
		copy(corrupted, frame)
		corrupted[checksumPos] ^= 1 << bit

		_, err := Unwrap(corrupted)
		if !errors.IsErrCode(err, errors.ErrFrameChecksumMismatch) {
			t.Errorf("翻转校验和第%d位未被检出, 错误: %v", bit, err)
		}
	}
}

func TestFrameMalformed(t *testing.T) {
	cases := []struct {
		name  string
		frame []byte
	}{
		{"过短", []byte{0x7E, 0x7E}},
		{"无定界符", []byte{0x01, 0x02, 0x03, 0x04}},
		{"仅一个定界符", []byte{0x7E, 0x01, 0x02, 0x03}},
		{"定界符重合", []byte{0x01, 0x02, 0x7E, 0x03}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unwrap(tc.frame)
			if !errors.IsErrCode(err, errors.ErrFrameMalformed) {
				t.Errorf("畸形帧未被检出, 错误: %v", err)
			}
		})
	}
}

func TestCalculateChecksum(t *testing.T) {
	if got := CalculateChecksum(nil); got != 0x00 {
		t.Errorf("空数据校验和不一致: 期望 0x00, 实际 0x%02X", got)
	}
	if got := CalculateChecksum([]byte{0xAA}); got != 0xAA {
		t.Errorf("单字节校验和不一致: 期望 0xAA, 实际 0x%02X", got)
	}
	if got := CalculateChecksum([]byte{0x12, 0x34, 0x56}); got != 0x12^0x34^0x56 {
		t.Errorf("多字节校验和不一致: 期望 0x%02X, 实际 0x%02X", 0x12^0x34^0x56, got)
	}
}
