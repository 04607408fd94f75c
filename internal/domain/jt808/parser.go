package jt808

// ParseFrame 解析一个完整帧：剥离定界符并校验 → 解析消息头 →
// 按注册表解码消息体。入参须是单个完整帧，TCP流的切分由传输层负责。
// 任何阶段失败都不panic，错误通过ParsedMessage.Error返回；
// 消息头解析成功后即填充Header，便于调用方在体解码失败时仍能定位设备。
func ParseFrame(raw []byte) *ParsedMessage {
	result := &ParsedMessage{
		RawFrame: raw,
	}

	body, err := Unwrap(raw)
	if err != nil {
		result.Error = err
		return result
	}

	header, err := ParseHeader(body)
	if err != nil {
		result.Error = err
		return result
	}
	result.Header = header

	payload := body[header.Length() : header.Length()+int(header.BodyLength)]
	fields, err := DecodeBody(header.MessageID, payload)
	if err != nil {
		result.Error = err
		return result
	}

	result.Fields = fields
	result.Success = true
	return result
}
