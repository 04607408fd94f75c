package zinx_server

// 连接属性键
const (
	PropKeyDeviceID        = "DeviceId"        // 终端手机号
	PropKeyProtocolVersion = "ProtocolVersion" // 推断出的协议版本
	PropKeyLastSequence    = "LastSequence"    // 最近一次上行流水号
	PropKeyRemoteAddr      = "RemoteAddr"
	PropKeyAuthenticated   = "Authenticated" // 是否已通过鉴权
)
