package app

import (
	"sync"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/service"
)

// EventRelay 事件中继
// 服务层在容器装配时就拿到发布器，而 WebSocket 中心要等路由建好才存在，
// 中继先以空实现兜底，路由层调用 Bind 接入真正的推送
type EventRelay struct {
	mu   sync.RWMutex
	sink service.EventPublisher
}

// NewEventRelay 创建事件中继，初始为丢弃事件
func NewEventRelay() *EventRelay {
	return &EventRelay{sink: service.NopPublisher()}
}

// Bind 接入真正的事件接收端（WebSocket 中心）
func (r *EventRelay) Bind(sink service.EventPublisher) {
	if sink == nil {
		return
	}
	r.mu.Lock()
	r.sink = sink
	r.mu.Unlock()
}

// Publish 转发事件到当前接收端
func (r *EventRelay) Publish(action string, data interface{}) {
	r.mu.RLock()
	sink := r.sink
	r.mu.RUnlock()
	sink.Publish(action, data)
}

var _ service.EventPublisher = (*EventRelay)(nil)
