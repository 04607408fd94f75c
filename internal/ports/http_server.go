package ports

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	httpadapter "github.com/bujia-iot/jt808-zinx/internal/adapter/http"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/config"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
)

// HTTPServer 管理平台侧的HTTP命令API
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer 创建HTTP服务器实例
func NewHTTPServer() *HTTPServer {
	return &HTTPServer{}
}

// Start 启动HTTP服务器（非阻塞）
func (s *HTTPServer) Start() error {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	registerRoutes(engine)

	timeoutSeconds := config.GetConfig().HTTPAPIServer.TimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	s.server = &http.Server{
		Addr:         config.FormatHTTPAddress(),
		Handler:      engine,
		ReadTimeout:  time.Duration(timeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(timeoutSeconds) * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("HTTP服务器异常退出: %v", err)
		}
	}()

	logger.Infof("HTTP API服务器已启动: %s", s.server.Addr)
	return nil
}

// Stop 优雅停止HTTP服务器
func (s *HTTPServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP服务器停止失败: %w", err)
	}
	logger.Info("HTTP API服务器已停止")
	return nil
}

// registerRoutes 注册API路由
func registerRoutes(engine *gin.Engine) {
	engine.GET("/health", httpadapter.HandleHealthCheck)

	api := engine.Group("/api/v1")
	{
		api.GET("/devices", httpadapter.HandleDeviceList)
		api.GET("/devices/:deviceId", httpadapter.HandleDeviceStatus)
		api.POST("/devices/:deviceId/parameters", httpadapter.HandleSetParameters)
		api.POST("/devices/:deviceId/control", httpadapter.HandleTerminalControl)
		api.POST("/devices/:deviceId/camera-shot", httpadapter.HandleCameraShot)
	}
}
