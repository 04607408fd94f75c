package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/aceld/zinx/ziface"
)

// DeviceSession 单个终端连接的会话状态。
// 下行流水号由会话独占分配，避免跨连接共享计数器。
type DeviceSession struct {
	DeviceID        string
	Conn            ziface.IConnection
	RemoteAddr      string
	ProtocolVersion string
	ConnectedAt     time.Time
	Authenticated   bool

	lastSeenUnix int64
	sequence     uint32
}

// NewDeviceSession 创建会话
func NewDeviceSession(deviceID string, conn ziface.IConnection) *DeviceSession {
	s := &DeviceSession{
		DeviceID:    deviceID,
		Conn:        conn,
		ConnectedAt: time.Now(),
	}
	if conn != nil {
		s.RemoteAddr = conn.RemoteAddr().String()
	}
	s.Touch()
	return s
}

// NextSequence 分配下一个下行流水号（按16位回绕）
func (s *DeviceSession) NextSequence() uint16 {
	return uint16(atomic.AddUint32(&s.sequence, 1))
}

// Touch 更新最后活跃时间
func (s *DeviceSession) Touch() {
	atomic.StoreInt64(&s.lastSeenUnix, time.Now().Unix())
}

// LastSeen 最后活跃时间
func (s *DeviceSession) LastSeen() time.Time {
	return time.Unix(atomic.LoadInt64(&s.lastSeenUnix), 0)
}

// Manager 设备会话注册表，deviceID与连接ID双向索引。
// 连接处理器持有Manager句柄访问，不依赖包级可变状态。
type Manager struct {
	byDevice sync.Map // deviceID(string) -> *DeviceSession
	byConn   sync.Map // connID(uint64) -> *DeviceSession
	count    int64
}

// NewManager 创建会话注册表
func NewManager() *Manager {
	return &Manager{}
}

// Bind 注册设备会话。同一设备重连时替换旧会话并返回旧值。
func (m *Manager) Bind(s *DeviceSession) (previous *DeviceSession) {
	if old, loaded := m.byDevice.Swap(s.DeviceID, s); loaded {
		previous = old.(*DeviceSession)
		if previous.Conn != nil {
			m.byConn.Delete(previous.Conn.GetConnID())
		}
		atomic.AddInt64(&m.count, -1)
	}
	if s.Conn != nil {
		m.byConn.Store(s.Conn.GetConnID(), s)
	}
	atomic.AddInt64(&m.count, 1)
	return previous
}

// GetByDeviceID 按设备号查询会话
func (m *Manager) GetByDeviceID(deviceID string) (*DeviceSession, bool) {
	value, ok := m.byDevice.Load(deviceID)
	if !ok {
		return nil, false
	}
	return value.(*DeviceSession), true
}

// GetByConnID 按连接ID查询会话
func (m *Manager) GetByConnID(connID uint64) (*DeviceSession, bool) {
	value, ok := m.byConn.Load(connID)
	if !ok {
		return nil, false
	}
	return value.(*DeviceSession), true
}

// RemoveByConnID 连接断开时移除会话，返回被移除的会话。
// 设备索引只在仍指向该连接时才清除，避免误删重连后的新会话。
func (m *Manager) RemoveByConnID(connID uint64) (*DeviceSession, bool) {
	value, loaded := m.byConn.LoadAndDelete(connID)
	if !loaded {
		return nil, false
	}
	s := value.(*DeviceSession)
	if current, ok := m.byDevice.Load(s.DeviceID); ok && current.(*DeviceSession) == s {
		m.byDevice.Delete(s.DeviceID)
		atomic.AddInt64(&m.count, -1)
	}
	return s, true
}

// Range 遍历全部在线会话，回调返回false时终止
func (m *Manager) Range(fn func(s *DeviceSession) bool) {
	m.byDevice.Range(func(_, value interface{}) bool {
		return fn(value.(*DeviceSession))
	})
}

// Count 在线会话数
func (m *Manager) Count() int64 {
	return atomic.LoadInt64(&m.count)
}

// 进程级默认注册表
var defaultManager = NewManager()

// GetManager 获取默认会话注册表
func GetManager() *Manager {
	return defaultManager
}
