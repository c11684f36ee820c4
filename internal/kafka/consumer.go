package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/gammazero/workerpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"github.com/trooper-recruit/engage-api/internal/config"
	"github.com/trooper-recruit/engage-api/pkg/util"
	"go.uber.org/fx"
)

const numWorkers = 4

type Consumer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

type kafkaConsumer struct {
	reader     *kafka.Reader
	metrics    *prometheus.HistogramVec
	handler    MessageHandler
	workerPool *workerpool.WorkerPool
	done       chan struct{}
}

func NewConsumer(cfg *config.Config, handler MessageHandler) (Consumer, error) {
	if !cfg.Kafka.Enabled {
		return &noopConsumer{}, nil
	}

	metrics, err := util.GetHistogramVec("kafka_events_consumed", "status", "topic", "group")
	if err != nil {
		return nil, fmt.Errorf("get histogram vec: %w", err)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Kafka.Brokers,
		Topic:       cfg.Kafka.Topic,
		GroupID:     cfg.Kafka.GroupID,
		StartOffset: kafka.LastOffset,
	})

	return &kafkaConsumer{
		reader:     reader,
		metrics:    metrics,
		handler:    handler,
		workerPool: workerpool.New(numWorkers),
		done:       make(chan struct{}),
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context) error {
	log.Infow(ctx, "starting kafka consumer", "topic", c.reader.Config().Topic)

	for ctx.Err() == nil {
		select {
		case <-c.done:
			return nil
		default:
		}

		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			log.Errorw(ctx, "error reading message", "error", err)
			continue
		}

		c.workerPool.Submit(func() {
			c.processMessage(ctx, msg)
		})
	}
	return nil
}

func (c *kafkaConsumer) Stop(ctx context.Context) error {
	log.Infow(ctx, "stopping kafka consumer")
	close(c.done)
	c.workerPool.StopWait()
	return c.reader.Close()
}

func (c *kafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) {
	start := time.Now()

	err := c.handle(ctx, msg)

	status := "success"
	if err != nil {
		status = "error"
		log.Errorw(ctx, "error processing event", "error", err,
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"value", json.RawMessage(msg.Value),
		)
	}

	c.metrics.
		WithLabelValues(status, msg.Topic, c.reader.Config().GroupID).
		Observe(time.Since(start).Seconds())
}

func (c *kafkaConsumer) handle(ctx context.Context, msg kafka.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PANIC RECOVER: %+v", r)
		}
	}()

	var event EngagementEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Warnw(ctx, "skipping undecodable event", "error", err, "value", string(msg.Value))
		return nil
	}
	return c.handler.Handle(ctx, event)
}

type noopConsumer struct{}

func (*noopConsumer) Start(context.Context) error { return nil }
func (*noopConsumer) Stop(context.Context) error  { return nil }

// StartConsumeEvents runs the consumer for the lifetime of the fx app.
func StartConsumeEvents(lc fx.Lifecycle, consumer Consumer) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := consumer.Start(ctx); err != nil {
					log.Errorw(ctx, "kafka consumer stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			return consumer.Stop(stopCtx)
		},
	})
}
