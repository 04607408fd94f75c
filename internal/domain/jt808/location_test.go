package jt808

import (
	"bytes"
	"testing"

	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

func TestLocationRecordSerialization(t *testing.T) {
	// 创建测试数据：北京天安门附近的一次汇报
	original := &LocationRecord{
		AlarmFlags:  1,
		StatusFlags: 3,
		Latitude:    39904200,
		Longitude:   116407400,
		Altitude:    100,
		Speed:       605,
		Direction:   90,
		Timestamp:   "231222143000",
	}

	// 测试序列化
	data, err := original.MarshalBinary()
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	if len(data) != LocationRecordLen {
		t.Fatalf("序列化长度不一致: 期望 %d, 实际 %d", LocationRecordLen, len(data))
	}

	// 测试反序列化
	restored := &LocationRecord{}
	err = restored.UnmarshalBinary(data)
	if err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}

	// 验证数据一致性
	if restored.AlarmFlags != original.AlarmFlags {
		t.Errorf("AlarmFlags不一致: 期望 %d, 实际 %d", original.AlarmFlags, restored.AlarmFlags)
	}
	if restored.StatusFlags != original.StatusFlags {
		t.Errorf("StatusFlags不一致: 期望 %d, 实际 %d", original.StatusFlags, restored.StatusFlags)
	}
	if restored.Latitude != original.Latitude {
		t.Errorf("Latitude不一致: 期望 %d, 实际 %d", original.Latitude, restored.Latitude)
	}
	if restored.Longitude != original.Longitude {
		t.Errorf("Longitude不一致: 期望 %d, 实际 %d", original.Longitude, restored.Longitude)
	}
	if restored.Altitude != original.Altitude {
		t.Errorf("Altitude不一致: 期望 %d, 实际 %d", original.Altitude, restored.Altitude)
	}
	if restored.Speed != original.Speed {
		t.Errorf("Speed不一致: 期望 %d, 实际 %d", original.Speed, restored.Speed)
	}
	if restored.Direction != original.Direction {
		t.Errorf("Direction不一致: 期望 %d, 实际 %d", original.Direction, restored.Direction)
	}
	if restored.Timestamp != original.Timestamp {
		t.Errorf("Timestamp不一致: 期望 %s, 实际 %s", original.Timestamp, restored.Timestamp)
	}
}

func TestLocationRecordTruncated(t *testing.T) {
	record := &LocationRecord{}
	err := record.UnmarshalBinary(make([]byte, LocationRecordLen-1))
	if !errors.IsErrCode(err, errors.ErrDecodeTruncated) {
		t.Errorf("截断位置记录未被检出, 错误: %v", err)
	}
}

func TestParameterRecordSerialization(t *testing.T) {
	// 创建测试数据：心跳间隔参数(0x0001)设为60秒
	original := &ParameterRecord{
		ID:    0x0001,
		Value: []byte{0x00, 0x00, 0x00, 0x3C},
	}

	data, err := original.MarshalBinary()
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	if len(data) != ParameterRecordMinLen+len(original.Value) {
		t.Fatalf("序列化长度不一致: 期望 %d, 实际 %d", ParameterRecordMinLen+len(original.Value), len(data))
	}

	restored := &ParameterRecord{}
	err = restored.UnmarshalBinary(data)
	if err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	if restored.ID != original.ID {
		t.Errorf("ID不一致: 期望 0x%04X, 实际 0x%04X", original.ID, restored.ID)
	}
	if int(restored.Length) != len(original.Value) {
		t.Errorf("Length不一致: 期望 %d, 实际 %d", len(original.Value), restored.Length)
	}
	if !bytes.Equal(restored.Value, original.Value) {
		t.Errorf("Value不一致: 期望 %X, 实际 %X", original.Value, restored.Value)
	}
}

func TestParameterRecordTruncated(t *testing.T) {
	record := &ParameterRecord{}

	// 不足最小长度
	err := record.UnmarshalBinary([]byte{0x00, 0x00, 0x00, 0x01})
	if !errors.IsErrCode(err, errors.ErrDecodeTruncated) {
		t.Errorf("截断参数项未被检出, 错误: %v", err)
	}

	// 声明的值长度超过剩余字节
	err = record.UnmarshalBinary([]byte{0x00, 0x00, 0x00, 0x01, 0x04, 0xAA})
	if !errors.IsErrCode(err, errors.ErrDecodeTruncated) {
		t.Errorf("参数值长度超限未被检出, 错误: %v", err)
	}
}
