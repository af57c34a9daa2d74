package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/metrics"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	queueConfig "github.com/babylonlabs-io/staking-queue-client/config"
)

const defaultPublishTimeout = 5 * time.Second

//go:generate mockery --name=EventPublisher --output=../../tests/mocks --outpkg=mocks --filename=mock_event_publisher.go
type EventPublisher interface {
	PublishRewardClaimed(ctx context.Context, ev *RewardClaimedEvent) error
	Shutdown()
}

// QueueManager publishes claim events to RabbitMQ.
type QueueManager struct {
	mu             sync.Mutex
	conn           *amqp.Connection
	channel        *amqp.Channel
	queueName      string
	publishTimeout time.Duration
}

func NewQueueManager(cfg *queueConfig.QueueConfig) (*QueueManager, error) {
	amqpURI := fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url)

	conn, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the queue: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a queue channel: %w", err)
	}

	args := amqp.Table{}
	if cfg.QueueType != "" {
		args["x-queue-type"] = cfg.QueueType
	}

	_, err = channel.QueueDeclare(
		RewardClaimedQueueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		args,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", RewardClaimedQueueName, err)
	}

	publishTimeout := cfg.QueueProcessingTimeout
	if publishTimeout <= 0 {
		publishTimeout = defaultPublishTimeout
	}

	return &QueueManager{
		conn:           conn,
		channel:        channel,
		queueName:      RewardClaimedQueueName,
		publishTimeout: publishTimeout,
	}, nil
}

func (qm *QueueManager) PublishRewardClaimed(ctx context.Context, ev *RewardClaimedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal reward claimed event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, qm.publishTimeout)
	defer cancel()

	// amqp channels are not safe for concurrent publishing
	qm.mu.Lock()
	defer qm.mu.Unlock()

	err = qm.channel.PublishWithContext(ctx,
		"", // default exchange routes by queue name
		qm.queueName,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.ClaimID,
			Timestamp:    time.Unix(ev.Timestamp, 0),
			Body:         body,
		},
	)
	if err != nil {
		metrics.RecordQueueSendError()
		return fmt.Errorf("failed to publish reward claimed event %s: %w", ev.ClaimID, err)
	}

	log.Ctx(ctx).Debug().
		Str("claim_id", ev.ClaimID).
		Str("queue", qm.queueName).
		Msg("published reward claimed event")
	return nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")

	qm.mu.Lock()
	defer qm.mu.Unlock()

	if err := qm.channel.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close queue channel")
	}
	if err := qm.conn.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close queue connection")
	}
}

// NoopPublisher drops every event, used when no queue is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishRewardClaimed(ctx context.Context, ev *RewardClaimedEvent) error {
	return nil
}

func (NoopPublisher) Shutdown() {}

// NewEventPublisher returns a RabbitMQ publisher, or a NoopPublisher when cfg is nil.
func NewEventPublisher(cfg *queueConfig.QueueConfig) (EventPublisher, error) {
	if cfg == nil {
		log.Info().Msg("no queue configured, reward claimed events will not be published")
		return NoopPublisher{}, nil
	}
	return NewQueueManager(cfg)
}
