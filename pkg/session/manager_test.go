package session

import (
	"testing"
)

func TestSequenceAllocation(t *testing.T) {
	s := NewDeviceSession("123456789012", nil)

	if seq := s.NextSequence(); seq != 1 {
		t.Errorf("首个流水号不一致: 期望 1, 实际 %d", seq)
	}
	if seq := s.NextSequence(); seq != 2 {
		t.Errorf("第二个流水号不一致: 期望 2, 实际 %d", seq)
	}
}

func TestManagerBindAndLookup(t *testing.T) {
	m := NewManager()

	s := NewDeviceSession("123456789012", nil)
	if previous := m.Bind(s); previous != nil {
		t.Errorf("首次注册不应返回旧会话: %+v", previous)
	}
	if m.Count() != 1 {
		t.Errorf("会话数不一致: 期望 1, 实际 %d", m.Count())
	}

	restored, ok := m.GetByDeviceID("123456789012")
	if !ok || restored != s {
		t.Error("按设备号查询会话失败")
	}

	// 同一设备重连替换旧会话
	replacement := NewDeviceSession("123456789012", nil)
	previous := m.Bind(replacement)
	if previous != s {
		t.Error("重连应返回被替换的旧会话")
	}
	if m.Count() != 1 {
		t.Errorf("重连后会话数不一致: 期望 1, 实际 %d", m.Count())
	}

	restored, _ = m.GetByDeviceID("123456789012")
	if restored != replacement {
		t.Error("重连后应查到新会话")
	}
}

func TestManagerRange(t *testing.T) {
	m := NewManager()
	m.Bind(NewDeviceSession("111111111111", nil))
	m.Bind(NewDeviceSession("222222222222", nil))

	visited := 0
	m.Range(func(_ *DeviceSession) bool {
		visited++
		return true
	})
	if visited != 2 {
		t.Errorf("遍历数量不一致: 期望 2, 实际 %d", visited)
	}
}
