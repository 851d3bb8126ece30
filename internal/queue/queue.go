package queue

import (
	"github.com/pkg/errors"
)

//go:generate mockgen -destination=mocks/mock_queue.go -package=mocks remote-execution-client/internal/queue Queue

type Queue interface {
	SubmitMessageToQueue(data []byte) error
	Stop()
}

// MessageHandler processes a single message body taken from a queue.
type MessageHandler interface {
	HandleMessage(data []byte) error
}

type NsqConfig struct {
	Topic            string
	Channel          string
	NsqLookupAddress string
	NsqLookupPort    int
	MaxInFlight      int
	Consumer         bool
	Producer         bool
}

type SqsConfig struct {
	QueueURL        string
	WaitTimeSeconds int
	MaxInFlight     int
	Consumer        bool
}

type LocalConfig struct {
	Workers    int
	BufferSize int
}

type Config struct {
	// ForceLocalMode keeps every message in process, nothing is sent to NSQ
	// or SQS.
	ForceLocalMode bool

	Nsq   *NsqConfig
	Sqs   *SqsConfig
	Local *LocalConfig

	// Handler is required for any consuming queue.
	Handler MessageHandler
}

// NewQueue picks the local queue when forced, SQS when a queue url is
// configured and NSQ otherwise.
func NewQueue(config *Config) (Queue, error) {
	switch {
	case config.ForceLocalMode:
		if config.Handler == nil {
			return nil, errors.New("a message handler is required for the local queue")
		}

		local := config.Local

		if local == nil {
			local = &LocalConfig{}
		}

		return NewLocalQueue(local, config.Handler), nil
	case config.Sqs != nil && config.Sqs.QueueURL != "":
		queue, err := newSqsQueue(config.Sqs, config.Handler)

		if err != nil {
			return nil, err
		}

		return queue, nil
	case config.Nsq != nil:
		queue, err := newNsqQueue(config.Nsq, config.Handler)

		if err != nil {
			return nil, err
		}

		return queue, nil
	}

	return nil, errors.New("no queue has been configured")
}
