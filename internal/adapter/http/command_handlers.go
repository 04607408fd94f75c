package http

import (
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bujia-iot/jt808-zinx/internal/domain/jt808"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/logger"
	"github.com/bujia-iot/jt808-zinx/internal/infrastructure/zinx_server"
	"github.com/bujia-iot/jt808-zinx/pkg/session"
)

// sendToDevice 查找设备会话并下发帧，统一处理响应
func sendToDevice(c *gin.Context, deviceID string, build func(s *session.DeviceSession) ([]byte, error)) {
	requestID := uuid.NewString()

	deviceSession, ok := session.GetManager().GetByDeviceID(deviceID)
	if !ok {
		c.JSON(http.StatusNotFound, APIResponse{
			Code:      404,
			Message:   "设备不在线",
			RequestID: requestID,
		})
		return
	}

	frame, err := build(deviceSession)
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Code:      400,
			Message:   err.Error(),
			RequestID: requestID,
		})
		return
	}

	if err := zinx_server.SendFrame(deviceSession.Conn, frame); err != nil {
		c.JSON(http.StatusBadGateway, APIResponse{
			Code:      502,
			Message:   err.Error(),
			RequestID: requestID,
		})
		return
	}

	logger.WithFields(logrus.Fields{
		"deviceId":  deviceID,
		"requestId": requestID,
		"frameLen":  len(frame),
	}).Info("下行命令已发送")

	c.JSON(http.StatusOK, APIResponse{
		Code:      0,
		Message:   "命令已下发",
		RequestID: requestID,
	})
}

// HandleSetParameters 设置终端参数(0x8103)
func HandleSetParameters(c *gin.Context) {
	deviceID := c.Param("deviceId")

	req := &SetParametersRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Code: 400, Message: err.Error()})
		return
	}

	parameters := make([]jt808.ParameterRecord, 0, len(req.Parameters))
	for _, item := range req.Parameters {
		value, err := hex.DecodeString(item.Value)
		if err != nil {
			c.JSON(http.StatusBadRequest, APIResponse{
				Code:    400,
				Message: "参数值必须是十六进制字符串: " + err.Error(),
			})
			return
		}
		parameters = append(parameters, jt808.ParameterRecord{
			ID:     item.ID,
			Length: uint8(len(value)),
			Value:  value,
		})
	}

	sendToDevice(c, deviceID, func(s *session.DeviceSession) ([]byte, error) {
		return jt808.BuildSetParameters(deviceID, s.NextSequence(), parameters)
	})
}

// HandleTerminalControl 终端控制(0x8105)
func HandleTerminalControl(c *gin.Context) {
	deviceID := c.Param("deviceId")

	req := &TerminalControlRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Code: 400, Message: err.Error()})
		return
	}

	sendToDevice(c, deviceID, func(s *session.DeviceSession) ([]byte, error) {
		return jt808.BuildTerminalControl(deviceID, s.NextSequence(), req.Command, req.Parameters)
	})
}

// HandleCameraShot 摄像头立即拍摄命令(0x8801)
func HandleCameraShot(c *gin.Context) {
	deviceID := c.Param("deviceId")

	req := &CameraShotRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Code: 400, Message: err.Error()})
		return
	}

	cmd := &jt808.CameraShotCommand{
		ChannelID:  req.ChannelID,
		Command:    req.Command,
		Interval:   req.Interval,
		SaveFlag:   req.SaveFlag,
		Resolution: req.Resolution,
		Quality:    req.Quality,
		Brightness: req.Brightness,
		Contrast:   req.Contrast,
		Saturation: req.Saturation,
		Chroma:     req.Chroma,
	}

	sendToDevice(c, deviceID, func(s *session.DeviceSession) ([]byte, error) {
		return jt808.BuildCameraShot(deviceID, s.NextSequence(), cmd)
	})
}
