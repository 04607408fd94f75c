package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bujia-iot/jt808-zinx/internal/adapter/uplink"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/config"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/redis"
	"github.com/bujia-iot/jt808-zinx/internal/ports"
)

var configFile = flag.String("config", "configs/gateway.yaml", "配置文件路径")

func main() {
	flag.Parse()

	// 加载配置文件
	if err := config.Load(*configFile); err != nil {
		fmt.Printf("加载配置文件失败: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	loggerConfig := config.GetConfig().Logger
	if err := logger.Init(&loggerConfig); err != nil {
		fmt.Printf("初始化日志系统失败: %v\n", err)
		os.Exit(1)
	}

	logger.Info("车载终端网关 (JT808 Gateway) 启动中...")

	// 初始化Redis连接。缓存不可用时降级运行，
	// 仅丢失跨进程的会话快照与最新位置查询
	if err := redis.InitClient(); err != nil {
		logger.Errorf("初始化Redis连接失败: %v", err)
	}

	// 初始化消息总线。总线不可用时上行消息仅记录日志
	if err := uplink.Init(); err != nil {
		logger.Errorf("初始化消息总线失败: %v", err)
	}

	// 启动HTTP API服务器，保证命令接口先于终端接入可用
	httpServer := ports.NewHTTPServer()
	if err := httpServer.Start(); err != nil {
		logger.Errorf("启动HTTP API服务器失败: %v", err)
	}

	// 启动Zinx TCP服务器
	tcpServer := ports.NewTCPServer()
	if err := tcpServer.Start(); err != nil {
		logger.Errorf("启动TCP服务器失败: %v", err)
		os.Exit(1)
	}

	logger.Info("车载终端网关启动完成，等待终端连接...")

	// 等待中断信号
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	logger.Info("收到退出信号，开始关闭网关...")

	tcpServer.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Stop(ctx); err != nil {
		logger.Errorf("关闭HTTP服务器失败: %v", err)
	}

	uplink.Close()

	if err := redis.Close(); err != nil {
		logger.Errorf("关闭Redis连接失败: %v", err)
	}

	logger.Info("车载终端网关已退出")
}
