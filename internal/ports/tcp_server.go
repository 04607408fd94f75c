package ports

import (
	"fmt"

	"github.com/aceld/zinx/zconf"
	"github.com/aceld/zinx/ziface"
	"github.com/aceld/zinx/znet"

	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/config"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/zinx_server"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/zinx_server/handlers"
)

// TCPServer 封装面向终端的Zinx TCP服务器
type TCPServer struct {
	server ziface.IServer
	cfg    *config.Config
}

// NewTCPServer 创建TCP服务器实例
func NewTCPServer() *TCPServer {
	return &TCPServer{
		cfg: config.GetConfig(),
	}
}

// Start 配置并启动TCP服务器（非阻塞）
func (s *TCPServer) Start() error {
	if err := s.initialize(); err != nil {
		return err
	}

	handlers.RegisterRouters(s.server)

	s.server.SetOnConnStart(zinx_server.OnConnectionStart)
	s.server.SetOnConnStop(zinx_server.OnConnectionStop)

	go s.server.Serve()

	logger.Infof("TCP服务器已启动: %s", config.FormatTCPAddress())
	return nil
}

// Stop 停止TCP服务器
func (s *TCPServer) Stop() {
	if s.server != nil {
		s.server.Stop()
		logger.Info("TCP服务器已停止")
	}
}

// initialize 初始化Zinx服务器配置并挂载协议解码器
func (s *TCPServer) initialize() error {
	zinxCfg := s.cfg.TCPServer.Zinx

	zconf.GlobalObject.Name = zinxCfg.Name
	zconf.GlobalObject.Host = s.cfg.TCPServer.Host
	zconf.GlobalObject.TCPPort = s.cfg.TCPServer.Port
	zconf.GlobalObject.Version = zinxCfg.Version
	zconf.GlobalObject.MaxConn = zinxCfg.MaxConn
	zconf.GlobalObject.MaxPacketSize = zinxCfg.MaxPacketSize
	zconf.GlobalObject.WorkerPoolSize = uint32(zinxCfg.WorkerPoolSize)
	zconf.GlobalObject.MaxWorkerTaskLen = uint32(zinxCfg.MaxWorkerTaskLen)
	zconf.GlobalObject.LogIsolationLevel = 2

	s.server = znet.NewUserConfServer(zconf.GlobalObject)
	if s.server == nil {
		return fmt.Errorf("创建Zinx服务器实例失败")
	}

	s.server.SetDecoder(zinx_server.NewJT808Decoder())

	return nil
}
