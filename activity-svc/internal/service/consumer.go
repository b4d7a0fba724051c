package service

import (
	"context"
	"encoding/json"
	"time"

	"bella-vista/domain"

	"go.uber.org/zap"
)

const defaultRetryDelay = time.Second

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Logger *zap.Logger

	// RetryDelay is the pause after a failed read before the next attempt.
	RetryDelay time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface, logger *zap.Logger) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		Logger: logger,

		RetryDelay: defaultRetryDelay,
	}
}

// Start reads change events until ctx is cancelled. Malformed messages and
// store failures are logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	c.Logger.Info("activity consumer started")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Logger.Info("activity consumer stopped")
				return
			}
			c.Logger.Warn("read message failed", zap.Error(err))
			if !c.wait(ctx) {
				c.Logger.Info("activity consumer stopped")
				return
			}
			continue
		}

		var event domain.ChangeEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Logger.Warn("malformed change event", zap.ByteString("key", message.Key), zap.Error(err))
			continue
		}

		c.ProcessEvent(ctx, event)
	}
}

// wait sleeps for RetryDelay and reports false if ctx ended first.
func (c *Consumer) wait(ctx context.Context) bool {
	timer := time.NewTimer(c.RetryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, event domain.ChangeEvent) {
	if !event.Known() {
		c.Logger.Debug("ignoring unknown event type", zap.String("type", event.Type))
		return
	}

	if err := c.Store.Record(ctx, event); err != nil {
		c.Logger.Error("record change event failed",
			zap.String("resource", event.Resource),
			zap.String("id", event.ID),
			zap.Error(err))
		return
	}

	c.Logger.Debug("change event recorded",
		zap.String("type", event.Type),
		zap.String("resource", event.Resource),
		zap.String("id", event.ID))
}
