package safe_close

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeCloseAttachAndWait(t *testing.T) {
	sc := NewSafeClose()

	var finished int32
	for i := 0; i < 3; i++ {
		sc.Attach(func(done func(), closeSignal <-chan struct{}) {
			defer done()
			<-closeSignal
			atomic.AddInt32(&finished, 1)
		})
	}

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
	assert.Equal(t, int32(3), atomic.LoadInt32(&finished))
}

func TestSafeCloseFirstErrorWins(t *testing.T) {
	sc := NewSafeClose()
	first := errors.New("listener down")

	sc.SendCloseSignal(first)
	// 重复发送应为空操作，不覆盖首个错误
	sc.SendCloseSignal(errors.New("later"))

	assert.Equal(t, first, sc.WaitClosed())
}

func TestSafeCloseReceiveCloseSignal(t *testing.T) {
	sc := NewSafeClose()

	select {
	case <-sc.ReceiveCloseSignal():
		t.Fatal("close signal fired before SendCloseSignal")
	default:
	}

	sc.SendCloseSignal(nil)

	select {
	case <-sc.ReceiveCloseSignal():
	case <-time.After(time.Second):
		t.Fatal("close signal not observable after SendCloseSignal")
	}
}

func TestSafeCloseDoneIdempotent(t *testing.T) {
	sc := NewSafeClose()

	sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		<-closeSignal
		done()
		done()
	})

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}
