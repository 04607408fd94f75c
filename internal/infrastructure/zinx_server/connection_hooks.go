package zinx_server

import (
	"context"
	"net"
	"time"

	"github.com/aceld/zinx/ziface"
	"github.com/sirupsen/logrus"

	"github.com/bujia-iot/jt808-zinx/internal/adapter/uplink"
	"github.com/bujia-iot/jt808-zinx/internal/domain/jt808"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/config"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/redis"
	"github.com/bujia-iot/jt808-zinx/pkg/session"
)

// OnConnectionStart 连接建立钩子：设置TCP参数与初始读超时。
// 注册前的连接用较短的超时，防止僵尸连接占用资源。
func OnConnectionStart(conn ziface.IConnection) {
	remoteAddr := conn.RemoteAddr().String()
	conn.SetProperty(PropKeyRemoteAddr, remoteAddr)

	if tcpConn, ok := conn.GetTCPConnection().(*net.TCPConn); ok {
		tcpConn.SetKeepAlive(true)
		tcpConn.SetKeepAlivePeriod(30 * time.Second)
		tcpConn.SetNoDelay(true)

		initialSeconds := config.GetConfig().TCPServer.InitialReadDeadlineSeconds
		if initialSeconds > 0 {
			tcpConn.SetReadDeadline(time.Now().Add(time.Duration(initialSeconds) * time.Second))
		}
	}

	logger.WithFields(logrus.Fields{
		"connID":     conn.GetConnID(),
		"remoteAddr": remoteAddr,
	}).Info("新连接已建立")
}

// OnConnectionStop 连接断开钩子：清理会话并发布离线事件
func OnConnectionStop(conn ziface.IConnection) {
	connID := conn.GetConnID()

	deviceSession, ok := session.GetManager().RemoveByConnID(connID)
	if !ok {
		logger.WithField("connID", connID).Info("未注册连接已断开")
		return
	}

	if redis.GetClient() != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redis.DeleteSession(ctx, deviceSession.DeviceID); err != nil {
			logger.WithFields(logrus.Fields{
				"deviceId": deviceSession.DeviceID,
				"error":    err.Error(),
			}).Warn("清理会话快照失败")
		}
	}

	header := &jt808.MessageHeader{DeviceID: deviceSession.DeviceID}
	if err := uplink.Publish(uplink.TypeOffline, header, nil); err != nil {
		logger.WithFields(logrus.Fields{
			"deviceId": deviceSession.DeviceID,
			"error":    err.Error(),
		}).Warn("发布离线事件失败")
	}

	logger.WithFields(logrus.Fields{
		"connID":   connID,
		"deviceId": deviceSession.DeviceID,
		"duration": time.Since(deviceSession.ConnectedAt).String(),
	}).Info("设备连接已断开")
}

// ExtendReadDeadline 消息处理后延长读超时，心跳周期内无数据则断开
func ExtendReadDeadline(conn ziface.IConnection) {
	seconds := config.GetConfig().TCPServer.DefaultReadDeadlineSeconds
	if seconds <= 0 {
		return
	}
	if tcpConn, ok := conn.GetTCPConnection().(*net.TCPConn); ok {
		tcpConn.SetReadDeadline(time.Now().Add(time.Duration(seconds) * time.Second))
	}
}
