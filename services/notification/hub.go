package notification

import (
	"sync"

	"propshare/services/logger"

	"github.com/olahol/melody"
)

// SessionUserKey là key lưu userID trong melody session
const SessionUserKey = "userID"

type Observer interface {
	Notify(message []byte) error
}

type MelodyObserver struct {
	session *melody.Session
	userID  uint
}

func NewMelodyObserver(session *melody.Session, userID uint) *MelodyObserver {
	return &MelodyObserver{
		session: session,
		userID:  userID,
	}
}

func (o *MelodyObserver) Notify(message []byte) error {
	return o.session.Write(message)
}

// Hub giữ danh sách observer theo user để gửi thông báo riêng
type Hub struct {
	mu        sync.RWMutex
	melody    *melody.Melody
	observers map[uint][]Observer
	logger    logger.Logger
}

func NewHub(m *melody.Melody, l logger.Logger) *Hub {
	if l == nil {
		l = logger.NewNop()
	}
	h := &Hub{
		melody:    m,
		observers: make(map[uint][]Observer),
		logger:    l,
	}
	if m != nil {
		m.HandleConnect(h.handleConnect)
		m.HandleDisconnect(h.handleDisconnect)
	}
	return h
}

func sessionUser(s *melody.Session) (uint, bool) {
	v, ok := s.Get(SessionUserKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func (h *Hub) handleConnect(s *melody.Session) {
	if userID, ok := sessionUser(s); ok {
		h.Register(userID, NewMelodyObserver(s, userID))
	}
}

func (h *Hub) handleDisconnect(s *melody.Session) {
	if userID, ok := sessionUser(s); ok {
		h.Remove(userID, func(o Observer) bool {
			mo, ok := o.(*MelodyObserver)
			return ok && mo.session == s
		})
	}
}

func (h *Hub) Register(userID uint, o Observer) {
	h.mu.Lock()
	h.observers[userID] = append(h.observers[userID], o)
	h.mu.Unlock()
	h.logger.Info("Người quan sát đã đăng ký cho userID: %d", userID)
}

// Remove xóa các observer của user thỏa match
func (h *Hub) Remove(userID uint, match func(Observer) bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.observers[userID][:0]
	for _, o := range h.observers[userID] {
		if !match(o) {
			kept = append(kept, o)
		}
	}
	if len(kept) == 0 {
		delete(h.observers, userID)
	} else {
		h.observers[userID] = kept
	}
	h.logger.Info("Đã xóa người quan sát cho userID: %d", userID)
}

// Online trả về số kết nối đang mở của user
func (h *Hub) Online(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers[userID])
}

// NotifyUser gửi tới mọi kết nối của user, trả về số kết nối đã nhận
func (h *Hub) NotifyUser(userID uint, message []byte) int {
	h.mu.RLock()
	observers := append([]Observer(nil), h.observers[userID]...)
	h.mu.RUnlock()

	delivered := 0
	for _, o := range observers {
		if err := o.Notify(message); err != nil {
			h.logger.Warn("Không gửi được thông báo tới userID %d: %v", userID, err)
			continue
		}
		delivered++
	}
	return delivered
}

func (h *Hub) Broadcast(message []byte) error {
	return NewMelodyService(h.melody).SendMessage(string(message))
}
