package queue

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// errorPollDelay spaces out receive calls while SQS is failing.
	errorPollDelay = time.Second

	// maxReceiveBatch is the most messages SQS returns from one receive.
	maxReceiveBatch = 10
)

type SqsQueue struct {
	config  *SqsConfig
	handler MessageHandler

	sqsQueue *sqs.SQS

	stopFlag atomic.Bool
	stopped  chan struct{}
}

func newSqsQueue(config *SqsConfig, handler MessageHandler) (*SqsQueue, error) {
	queue := &SqsQueue{config: config, handler: handler, stopped: make(chan struct{})}

	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to create aws session")
	}

	queue.sqsQueue = sqs.New(sess)

	// if we are a consumer lets go and start polling for messages
	// this will be in its own go routine which will have a
	// stop flag for each iteration to check.
	if !queue.config.Consumer {
		close(queue.stopped)
		return queue, nil
	}

	if handler == nil {
		return nil, errors.New("a message handler is required for the SQS consumer")
	}

	go queue.startPollingMessages()

	return queue, nil
}

// receiveBatchSize keeps the batch within the 1 to 10 messages SQS accepts.
func receiveBatchSize(maxInFlight int) int64 {
	switch {
	case maxInFlight < 1:
		return 1
	case maxInFlight > maxReceiveBatch:
		return maxReceiveBatch
	}

	return int64(maxInFlight)
}

func (s *SqsQueue) startPollingMessages() {
	defer close(s.stopped)

	for !s.stopFlag.Load() {
		output, err := s.sqsQueue.ReceiveMessage(&sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(s.config.QueueURL),
			MaxNumberOfMessages: aws.Int64(receiveBatchSize(s.config.MaxInFlight)),
			WaitTimeSeconds:     aws.Int64(int64(s.config.WaitTimeSeconds)),
		})

		if err != nil {
			log.Error().Err(err).Msg("failed to gather SQS messages")
			time.Sleep(errorPollDelay)
			continue
		}

		wg := sync.WaitGroup{}

		for _, message := range output.Messages {
			wg.Add(1)

			go func(m *sqs.Message) {
				defer wg.Done()
				s.handleMessage(m)
			}(message)
		}

		// only this amount of messages are in flight, the next batch is not
		// received until every message of this one has completed.
		wg.Wait()
	}
}

// handleMessage always deletes the message, a failed execution is recorded
// rather than retried.
func (s *SqsQueue) handleMessage(m *sqs.Message) {
	defer func() {
		if _, deleteErr := s.sqsQueue.DeleteMessage(&sqs.DeleteMessageInput{
			QueueUrl:      aws.String(s.config.QueueURL),
			ReceiptHandle: m.ReceiptHandle,
		}); deleteErr != nil {
			log.Err(deleteErr).Str("id", aws.StringValue(m.MessageId)).
				Msg("failed to delete handled execution request")
		}
	}()

	if handleErr := s.handler.HandleMessage([]byte(aws.StringValue(m.Body))); handleErr != nil {
		log.Err(handleErr).Str("id", aws.StringValue(m.MessageId)).
			Msg("failed to handle incoming execution request")
	}
}

func (s *SqsQueue) SubmitMessageToQueue(data []byte) error {
	_, err := s.sqsQueue.SendMessage(&sqs.SendMessageInput{
		MessageBody: aws.String(string(data)),
		QueueUrl:    aws.String(s.config.QueueURL),
	})

	return errors.Wrap(err, "failed to send SQS message")
}

// Stop waits for the in flight batch to complete.
func (s *SqsQueue) Stop() {
	log.Info().Msg("stopping SQS queue")

	s.stopFlag.Store(true)
	<-s.stopped
}
