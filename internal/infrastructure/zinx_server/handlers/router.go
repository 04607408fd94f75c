package handlers

import (
	"github.com/aceld/zinx/ziface"

	"github.com/bujia-iot/jt808-zinx/internal/domain/jt808"
)

// RegisterRouters 按消息ID注册全部上行消息处理器
func RegisterRouters(server ziface.IServer) {
	server.AddRouter(uint32(jt808.MsgTerminalGeneralAck), &GeneralAckHandler{})
	server.AddRouter(uint32(jt808.MsgTerminalHeartbeat), &HeartbeatHandler{})
	server.AddRouter(uint32(jt808.MsgTerminalRegister), &RegisterHandler{})
	server.AddRouter(uint32(jt808.MsgTerminalAuth), &AuthHandler{})
	server.AddRouter(uint32(jt808.MsgLocationReport), &LocationHandler{})
	server.AddRouter(uint32(jt808.MsgBatchLocationReport), &BatchLocationHandler{})
	server.AddRouter(uint32(jt808.MsgMultimediaEvent), &MultimediaHandler{})
}
