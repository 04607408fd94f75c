package jt808

import (
	"encoding/binary"

	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

// 消息体通用编解码器。按注册表中的字段顺序推进游标，
// 线上格式不含字段名，解码顺序必须与编码顺序严格一致。

// fieldReader 解码游标，所有越界读取统一报ErrDecodeTruncated并带上字段名
type fieldReader struct {
	data []byte
	pos  int
}

func (r *fieldReader) remaining() int {
	return len(r.data) - r.pos
}

func (r *fieldReader) read(n int, fieldName string) ([]byte, error) {
	if r.remaining() < n {
		return nil, errors.Newf(errors.ErrDecodeTruncated,
			"field %s requires %d bytes, only %d remain", fieldName, n, r.remaining())
	}
	chunk := r.data[r.pos : r.pos+n]
	r.pos += n
	return chunk, nil
}

// DecodeBody 按消息ID对应的结构解码消息体
func DecodeBody(messageID uint16, body []byte) (FieldMap, error) {
	structure, ok := Lookup(messageID)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownMessageID,
			"unknown message ID 0x%04X", messageID)
	}

	fields := make(FieldMap, len(structure.Fields))
	reader := &fieldReader{data: body}
	for _, schema := range structure.Fields {
		// 可选字段只允许位于结构尾部，没有剩余字节时直接跳过
		if schema.Optional && reader.remaining() == 0 {
			continue
		}
		value, err := decodeField(reader, &schema)
		if err != nil {
			return nil, err
		}
		fields[schema.Name] = value
	}
	return fields, nil
}

func decodeField(reader *fieldReader, schema *FieldSchema) (interface{}, error) {
	switch schema.Type {
	case FieldUint8:
		chunk, err := reader.read(1, schema.Name)
		if err != nil {
			return nil, err
		}
		return chunk[0], nil

	case FieldUint16:
		chunk, err := reader.read(2, schema.Name)
		if err != nil {
			return nil, err
		}
		return binary.BigEndian.Uint16(chunk), nil

	case FieldUint32:
		chunk, err := reader.read(4, schema.Name)
		if err != nil {
			return nil, err
		}
		return binary.BigEndian.Uint32(chunk), nil

	case FieldBCD:
		chunk, err := reader.read(schema.Length, schema.Name)
		if err != nil {
			return nil, err
		}
		return BCDToString(chunk), nil

	case FieldString:
		chunk, err := readSized(reader, schema)
		if err != nil {
			return nil, err
		}
		return trimNUL(chunk), nil

	case FieldBytes:
		chunk, err := readSized(reader, schema)
		if err != nil {
			return nil, err
		}
		value := make([]byte, len(chunk))
		copy(value, chunk)
		return value, nil

	case FieldLocation:
		chunk, err := reader.read(LocationRecordLen, schema.Name)
		if err != nil {
			return nil, err
		}
		record := &LocationRecord{}
		if err := record.UnmarshalBinary(chunk); err != nil {
			return nil, err
		}
		return record, nil

	case FieldArray:
		return decodeArray(reader, schema)

	default:
		return nil, errors.Newf(errors.ErrDecodeUnsupportedType,
			"field %s has unsupported type %d", schema.Name, schema.Type)
	}
}

// readSized 读取定长或变长（消费剩余全部字节）的原始字节
func readSized(reader *fieldReader, schema *FieldSchema) ([]byte, error) {
	if schema.Variable {
		return reader.read(reader.remaining(), schema.Name)
	}
	return reader.read(schema.Length, schema.Name)
}

func decodeArray(reader *fieldReader, schema *FieldSchema) (interface{}, error) {
	switch schema.Element {
	case ElementLocation:
		// 带数量前缀时读2字节数量，否则恰好读一条
		count := 1
		if schema.WithCount {
			chunk, err := reader.read(2, schema.Name)
			if err != nil {
				return nil, err
			}
			count = int(binary.BigEndian.Uint16(chunk))
		}
		records := make([]*LocationRecord, 0, count)
		for i := 0; i < count; i++ {
			chunk, err := reader.read(LocationRecordLen, schema.Name)
			if err != nil {
				return nil, err
			}
			record := &LocationRecord{}
			if err := record.UnmarshalBinary(chunk); err != nil {
				return nil, err
			}
			records = append(records, record)
		}
		return records, nil

	case ElementParameter:
		// 参数项无数量前缀时依赖最小长度判断是否还有下一条
		records := make([]ParameterRecord, 0)
		for reader.remaining() >= ParameterRecordMinLen {
			record := ParameterRecord{}
			if err := record.UnmarshalBinary(reader.data[reader.pos:]); err != nil {
				return nil, err
			}
			reader.pos += ParameterRecordMinLen + int(record.Length)
			records = append(records, record)
		}
		return records, nil

	default:
		return nil, errors.Newf(errors.ErrDecodeUnsupportedType,
			"field %s has unsupported array element type %d", schema.Name, schema.Element)
	}
}

// EncodeBody 按消息ID对应的结构编码消息体。
// 非可选字段缺失时报ErrEncodeMissingField，可选字段缺失时跳过。
func EncodeBody(messageID uint16, fields FieldMap) ([]byte, error) {
	structure, ok := Lookup(messageID)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownMessageID,
			"unknown message ID 0x%04X", messageID)
	}

	body := make([]byte, 0, 64)
	for _, schema := range structure.Fields {
		value, present := fields[schema.Name]
		if !present {
			if schema.Optional {
				continue
			}
			return nil, errors.Newf(errors.ErrEncodeMissingField,
				"message 0x%04X missing required field %s", messageID, schema.Name)
		}
		encoded, err := encodeField(&schema, value)
		if err != nil {
			return nil, err
		}
		body = append(body, encoded...)
	}
	return body, nil
}

func encodeField(schema *FieldSchema, value interface{}) ([]byte, error) {
	switch schema.Type {
	case FieldUint8:
		n, ok := toUint64(value)
		if !ok {
			return nil, typeError(schema, value)
		}
		return []byte{uint8(n)}, nil

	case FieldUint16:
		n, ok := toUint64(value)
		if !ok {
			return nil, typeError(schema, value)
		}
		return binary.BigEndian.AppendUint16(nil, uint16(n)), nil

	case FieldUint32:
		n, ok := toUint64(value)
		if !ok {
			return nil, typeError(schema, value)
		}
		return binary.BigEndian.AppendUint32(nil, uint32(n)), nil

	case FieldBCD:
		s, ok := value.(string)
		if !ok {
			return nil, typeError(schema, value)
		}
		return StringToBCD(s, schema.Length)

	case FieldString:
		s, ok := value.(string)
		if !ok {
			return nil, typeError(schema, value)
		}
		if schema.Variable {
			return []byte(s), nil
		}
		return padFixed([]byte(s), schema.Length), nil

	case FieldBytes:
		b, ok := value.([]byte)
		if !ok {
			return nil, typeError(schema, value)
		}
		if schema.Variable {
			return b, nil
		}
		return padFixed(b, schema.Length), nil

	case FieldLocation:
		record, ok := toLocationRecord(value)
		if !ok {
			return nil, typeError(schema, value)
		}
		return record.MarshalBinary()

	case FieldArray:
		return encodeArray(schema, value)

	default:
		return nil, errors.Newf(errors.ErrDecodeUnsupportedType,
			"field %s has unsupported type %d", schema.Name, schema.Type)
	}
}

func encodeArray(schema *FieldSchema, value interface{}) ([]byte, error) {
	switch schema.Element {
	case ElementLocation:
		records, ok := value.([]*LocationRecord)
		if !ok {
			return nil, typeError(schema, value)
		}
		buf := make([]byte, 0, 2+len(records)*LocationRecordLen)
		if schema.WithCount {
			buf = binary.BigEndian.AppendUint16(buf, uint16(len(records)))
		}
		for _, record := range records {
			encoded, err := record.MarshalBinary()
			if err != nil {
				return nil, err
			}
			buf = append(buf, encoded...)
		}
		return buf, nil

	case ElementParameter:
		records, ok := value.([]ParameterRecord)
		if !ok {
			return nil, typeError(schema, value)
		}
		buf := make([]byte, 0, len(records)*8)
		for i := range records {
			encoded, err := records[i].MarshalBinary()
			if err != nil {
				return nil, err
			}
			buf = append(buf, encoded...)
		}
		return buf, nil

	default:
		return nil, errors.Newf(errors.ErrDecodeUnsupportedType,
			"field %s has unsupported array element type %d", schema.Name, schema.Element)
	}
}

// padFixed 定长字段右侧NUL填充，超长时静默截断到声明长度
func padFixed(data []byte, length int) []byte {
	result := make([]byte, length)
	copy(result, data)
	return result
}

func typeError(schema *FieldSchema, value interface{}) error {
	return errors.Newf(errors.ErrValidationTypeMismatch,
		"field %s expects %s value, got %T", schema.Name, schema.Type, value)
}

// toUint64 将解码产物或外部构造的数值统一为uint64。
// float64用于兼容经JSON反序列化的HTTP指令参数。
func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int8:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int16:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int32:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case float64:
		if v < 0 || v != float64(uint64(v)) {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

func toLocationRecord(value interface{}) (*LocationRecord, bool) {
	switch v := value.(type) {
	case *LocationRecord:
		return v, true
	case LocationRecord:
		return &v, true
	default:
		return nil, false
	}
}
