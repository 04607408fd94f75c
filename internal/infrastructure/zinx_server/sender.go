package zinx_server

import (
	"github.com/aceld/zinx/ziface"
	"github.com/sirupsen/logrus"

	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/config"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
	"github.com/bujia-iot/jt808-zinx/pkg/errors"
)

// SendFrame 将完整帧原样写入TCP连接。
// 终端侧没有Zinx的TLV封包，必须绕过SendMsg直接写原始字节。
func SendFrame(conn ziface.IConnection, frame []byte) error {
	if conn == nil {
		return errors.New(errors.ErrDeviceNotConnected, "连接不存在")
	}

	tcpConn := conn.GetTCPConnection()
	if tcpConn == nil {
		return errors.New(errors.ErrDeviceNotConnected, "TCP连接已关闭")
	}

	if _, err := tcpConn.Write(frame); err != nil {
		logger.WithFields(logrus.Fields{
			"connID": conn.GetConnID(),
			"error":  err.Error(),
		}).Error("下行帧发送失败")
		return errors.Wrap(errors.ErrDeviceNotConnected, "下行帧发送失败", err)
	}

	logger.HexDump("下行帧已发送", frame, config.GetConfig().Logger.LogHexDump)
	return nil
}
