package queue

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	defaultLocalWorkers    = 1
	defaultLocalBufferSize = 64
)

// ErrQueueStopped is returned when submitting to a queue that has been stopped.
var ErrQueueStopped = errors.New("queue has been stopped")

// LocalQueue hands messages to a fixed number of in process workers. It is
// used during development and whenever no broker is configured.
type LocalQueue struct {
	handler  MessageHandler
	messages chan []byte

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

func NewLocalQueue(config *LocalConfig, handler MessageHandler) *LocalQueue {
	workers := config.Workers

	if workers <= 0 {
		workers = defaultLocalWorkers
	}

	bufferSize := config.BufferSize

	if bufferSize <= 0 {
		bufferSize = defaultLocalBufferSize
	}

	queue := &LocalQueue{
		handler:  handler,
		messages: make(chan []byte, bufferSize),
	}

	for i := 0; i < workers; i++ {
		queue.wg.Add(1)
		go queue.work()
	}

	return queue
}

func (l *LocalQueue) work() {
	defer l.wg.Done()

	for message := range l.messages {
		if err := l.handler.HandleMessage(message); err != nil {
			log.Err(err).Msg("failed to handle incoming execution request")
		}
	}
}

// SubmitMessageToQueue blocks while the buffer is full.
func (l *LocalQueue) SubmitMessageToQueue(data []byte) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.stopped {
		return ErrQueueStopped
	}

	l.messages <- data
	return nil
}

// Stop drains every submitted message before returning.
func (l *LocalQueue) Stop() {
	l.mu.Lock()

	if l.stopped {
		l.mu.Unlock()
		return
	}

	l.stopped = true
	close(l.messages)
	l.mu.Unlock()

	l.wg.Wait()
}
