package queue

import (
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type NsqQueue struct {
	topic string

	producer *nsq.Producer
	consumer *nsq.Consumer
}

func newNsqQueue(params *NsqConfig, handler MessageHandler) (*NsqQueue, error) {
	queue := &NsqQueue{topic: params.Topic}
	address := fmt.Sprintf("%s:%d", params.NsqLookupAddress, params.NsqLookupPort)

	if params.Producer {
		producer, err := nsq.NewProducer(address, nsq.NewConfig())

		if err != nil {
			return nil, errors.Wrap(err, "failed to create NSQ producer")
		}

		queue.producer = producer
	}

	if !params.Consumer {
		return queue, nil
	}

	if handler == nil {
		return nil, errors.New("a message handler is required for the NSQ consumer")
	}

	config := nsq.NewConfig()
	config.MaxInFlight = params.MaxInFlight

	consumer, err := nsq.NewConsumer(params.Topic, params.Channel, config)

	if err != nil {
		return nil, errors.Wrap(err, "failed to create NSQ consumer")
	}

	consumer.AddConcurrentHandlers(nsqMessageHandler(handler), params.MaxInFlight)

	if err = consumer.ConnectToNSQD(address); err != nil {
		return nil, errors.Wrap(err, "failed to connect to NSQ lookup")
	}

	queue.consumer = consumer
	return queue, nil
}

// nsqMessageHandler never hands an error back to NSQ, which would requeue the
// message. Failed executions are recorded by the handler instead.
func nsqMessageHandler(handler MessageHandler) nsq.HandlerFunc {
	return func(m *nsq.Message) error {
		if err := handler.HandleMessage(m.Body); err != nil {
			log.Err(err).
				Str("id", string(m.ID[:])).
				Msg("failed to handle incoming execution request")
		}

		return nil
	}
}

func (n *NsqQueue) SubmitMessageToQueue(data []byte) error {
	if n.producer == nil {
		return errors.New("NSQ queue has not been configured as a producer")
	}

	return errors.Wrap(n.producer.Publish(n.topic, data), "failed to publish to NSQ")
}

func (n *NsqQueue) Stop() {
	log.Info().Msg("stopping NSQ queue")

	if n.consumer != nil {
		n.consumer.Stop()
		<-n.consumer.StopChan
	}

	if n.producer != nil {
		n.producer.Stop()
	}
}
