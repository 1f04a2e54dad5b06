// Package safe_close coordinates graceful shutdown across goroutines
// Package safe_close 协调多个 goroutine 的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose broadcasts a close signal to attached goroutines and waits for
// all of them to finish. The first error sent with the signal is kept.
// SafeClose 向所有挂载的 goroutine 广播关闭信号，并等待它们全部结束。
// 随关闭信号发送的第一个错误会被保留。
type SafeClose struct {
	mu          sync.Mutex
	closeSignal chan struct{}
	closed      bool
	err         error
	wg          sync.WaitGroup
}

// NewSafeClose creates a SafeClose ready to accept attachments
// NewSafeClose 创建一个可挂载的 SafeClose
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach starts f in its own goroutine. f must call done exactly once when it
// finishes and must return promptly after closeSignal fires.
// Attach 在独立 goroutine 中启动 f。f 结束时必须调用一次 done，
// 并且在 closeSignal 触发后尽快返回。
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal fires the close signal. Repeated calls are no-ops; only the
// first non-nil error is recorded.
// SendCloseSignal 触发关闭信号。重复调用为空操作，只记录第一个非 nil 错误。
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// ReceiveCloseSignal exposes the signal channel for select loops
// ReceiveCloseSignal 暴露信号通道，供 select 循环使用
func (s *SafeClose) ReceiveCloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until every attached goroutine reported done, then
// returns the recorded close error, if any.
// WaitClosed 阻塞到所有挂载的 goroutine 完成，返回记录的关闭错误。
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
