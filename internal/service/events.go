package service

// EventPublisher pushes graph change events to connected clients.
// The WebSocket hub implements it; services stay transport-agnostic.
// EventPublisher 向已连接客户端推送图谱变更事件，由 WebSocket 中心实现
type EventPublisher interface {
	Publish(action string, data interface{})
}

// noopPublisher 丢弃所有事件，用于未接入推送的场景（任务、测试）
type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

// NopPublisher returns a publisher that drops every event.
// NopPublisher 返回一个丢弃所有事件的发布器
func NopPublisher() EventPublisher {
	return noopPublisher{}
}
