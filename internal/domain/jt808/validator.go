package jt808

import (
	"math"

	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

// Validate 按消息结构校验字段值映射，与解码过程相互独立，
// 可用于校验外部手工构造的下行数据再编码。
// 按字段顺序检查：存在性 → 类型与取值范围 → min/max → 枚举 → 正则，
// 返回发现的第一个违例，不做聚合。
func Validate(messageID uint16, fields FieldMap) error {
	structure, ok := Lookup(messageID)
	if !ok {
		return errors.Newf(errors.ErrUnknownMessageID,
			"unknown message ID 0x%04X", messageID)
	}

	for _, schema := range structure.Fields {
		value, present := fields[schema.Name]
		if !present {
			if schema.Optional {
				continue
			}
			return errors.Newf(errors.ErrValidationMissingField,
				"message 0x%04X missing required field %s", messageID, schema.Name)
		}
		if err := validateField(&schema, value); err != nil {
			return err
		}
	}
	return nil
}

func validateField(schema *FieldSchema, value interface{}) error {
	switch schema.Type {
	case FieldUint8, FieldUint16, FieldUint32:
		return validateScalar(schema, value)
	case FieldBCD:
		return validateBCD(schema, value)
	case FieldString:
		return validateString(schema, value)
	case FieldBytes:
		return validateBytes(schema, value)
	case FieldLocation:
		if _, ok := toLocationRecord(value); !ok {
			return typeError(schema, value)
		}
		return nil
	case FieldArray:
		return validateArray(schema, value)
	default:
		return errors.Newf(errors.ErrDecodeUnsupportedType,
			"field %s has unsupported type %d", schema.Name, schema.Type)
	}
}

func validateScalar(schema *FieldSchema, value interface{}) error {
	n, ok := toUint64(value)
	if !ok {
		return typeError(schema, value)
	}

	var typeMax uint64
	switch schema.Type {
	case FieldUint8:
		typeMax = math.MaxUint8
	case FieldUint16:
		typeMax = math.MaxUint16
	default:
		typeMax = math.MaxUint32
	}
	if n > typeMax {
		return errors.Newf(errors.ErrValidationRange,
			"field %s value %d exceeds %s range", schema.Name, n, schema.Type)
	}

	if schema.HasRange && (n < uint64(schema.Min) || n > uint64(schema.Max)) {
		return errors.Newf(errors.ErrValidationRange,
			"field %s value %d out of range [%d, %d]", schema.Name, n, schema.Min, schema.Max)
	}
	if len(schema.Enum) > 0 {
		matched := false
		for _, allowed := range schema.Enum {
			if n == uint64(allowed) {
				matched = true
				break
			}
		}
		if !matched {
			return errors.Newf(errors.ErrValidationEnum,
				"field %s value %d not in allowed set %v", schema.Name, n, schema.Enum)
		}
	}
	return nil
}

func validateBCD(schema *FieldSchema, value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return typeError(schema, value)
	}
	if len(s) > schema.Length*2 {
		return errors.Newf(errors.ErrValidationRange,
			"field %s value %q exceeds %d BCD digits", schema.Name, s, schema.Length*2)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return errors.Newf(errors.ErrValidationPattern,
				"field %s value %q contains non-decimal character", schema.Name, s)
		}
	}
	return validatePattern(schema, s)
}

func validateString(schema *FieldSchema, value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return typeError(schema, value)
	}
	if !schema.Variable && len(s) > schema.Length {
		return errors.Newf(errors.ErrValidationRange,
			"field %s value length %d exceeds declared %d bytes", schema.Name, len(s), schema.Length)
	}
	return validatePattern(schema, s)
}

func validateBytes(schema *FieldSchema, value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return typeError(schema, value)
	}
	if !schema.Variable && len(b) > schema.Length {
		return errors.Newf(errors.ErrValidationRange,
			"field %s value length %d exceeds declared %d bytes", schema.Name, len(b), schema.Length)
	}
	return nil
}

func validateArray(schema *FieldSchema, value interface{}) error {
	switch schema.Element {
	case ElementLocation:
		if _, ok := value.([]*LocationRecord); !ok {
			return typeError(schema, value)
		}
	case ElementParameter:
		if _, ok := value.([]ParameterRecord); !ok {
			return typeError(schema, value)
		}
	default:
		return errors.Newf(errors.ErrDecodeUnsupportedType,
			"field %s has unsupported array element type %d", schema.Name, schema.Element)
	}
	return nil
}

func validatePattern(schema *FieldSchema, s string) error {
	if schema.Pattern == "" {
		return nil
	}
	compiled, ok := patternCache[schema.Pattern]
	if !ok {
		// init阶段已编译全部注册表正则，走到这里说明schema不是来自注册表
		return errors.Newf(errors.ErrValidationPattern,
			"field %s has uncompiled pattern %q", schema.Name, schema.Pattern)
	}
	if !compiled.MatchString(s) {
		return errors.Newf(errors.ErrValidationPattern,
			"field %s value %q does not match pattern %q", schema.Name, s, schema.Pattern)
	}
	return nil
}
