package http

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/glbter/fund-returns/entities"
)

const DefaultEventBuffer = 64

type RenderPublisher interface {
	PublishRender(ctx context.Context, event entities.RenderEvent) error
}

// RenderEvents hands render events from request handlers to a single
// publishing goroutine. Enqueue never blocks: events are dropped when the
// buffer is full or the broker has signalled flow control.
type RenderEvents struct {
	logger    *zap.Logger
	publisher RenderPublisher
	events    chan entities.RenderEvent
	blocked   atomic.Bool
}

func NewRenderEvents(publisher RenderPublisher, size int, logger *zap.Logger) *RenderEvents {
	if size <= 0 {
		size = DefaultEventBuffer
	}

	return &RenderEvents{
		logger:    logger.With(zap.String("caller", "RenderEvents")),
		publisher: publisher,
		events:    make(chan entities.RenderEvent, size),
	}
}

func (e *RenderEvents) Enqueue(event entities.RenderEvent) bool {
	if e.blocked.Load() {
		e.logger.Debug("broker blocked, render event skipped", zap.String("rid", event.ID))
		return false
	}

	select {
	case e.events <- event:
		return true
	default:
		e.logger.Warn("render event buffer full, event dropped", zap.String("rid", event.ID))
		return false
	}
}

// SetBlocked mirrors the broker's connection.blocked state.
func (e *RenderEvents) SetBlocked(blocked bool) {
	e.blocked.Store(blocked)
}

// Run publishes queued events until ctx is done.
func (e *RenderEvents) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-e.events:
			if err := e.publisher.PublishRender(ctx, event); err != nil {
				e.logger.Warn(fmt.Errorf("publish render: %w", err).Error(), zap.String("rid", event.ID))
			}
		}
	}
}
