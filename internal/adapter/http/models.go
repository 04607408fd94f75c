package http

// APIResponse 统一的API响应结构
type APIResponse struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// DeviceInfo 设备列表项
type DeviceInfo struct {
	DeviceID        string `json:"deviceId"`
	RemoteAddr      string `json:"remoteAddr"`
	ProtocolVersion string `json:"protocolVersion"`
	Authenticated   bool   `json:"authenticated"`
	ConnectedAt     int64  `json:"connectedAt"`
	LastSeenAt      int64  `json:"lastSeenAt"`
}

// ParameterItem 设置终端参数请求中的单个参数项，
// value为参数值的十六进制字符串
type ParameterItem struct {
	ID    uint32 `json:"id" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// SetParametersRequest 设置终端参数(0x8103)请求
type SetParametersRequest struct {
	Parameters []ParameterItem `json:"parameters" binding:"required,min=1"`
}

// TerminalControlRequest 终端控制(0x8105)请求
type TerminalControlRequest struct {
	Command    uint8  `json:"command" binding:"required"`
	Parameters string `json:"parameters"`
}

// CameraShotRequest 摄像头立即拍摄(0x8801)请求
type CameraShotRequest struct {
	ChannelID  uint8  `json:"channelId" binding:"required"`
	Command    uint16 `json:"command"`
	Interval   uint16 `json:"interval"`
	SaveFlag   uint8  `json:"saveFlag"`
	Resolution uint8  `json:"resolution"`
	Quality    uint8  `json:"quality" binding:"required"`
	Brightness uint8  `json:"brightness"`
	Contrast   uint8  `json:"contrast"`
	Saturation uint8  `json:"saturation"`
	Chroma     uint8  `json:"chroma"`
}
