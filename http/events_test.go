package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/glbter/fund-returns/entities"
)

func TestNewRenderEvents_DefaultBuffer(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"zero", 0, DefaultEventBuffer},
		{"negative", -3, DefaultEventBuffer},
		{"configured", 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewRenderEvents(&MockPublisher{}, tt.size, zap.NewNop())
			assert.Equal(t, tt.want, cap(e.events))
		})
	}
}

func TestRenderEvents_EnqueueDropsWhenFull(t *testing.T) {
	e := NewRenderEvents(&MockPublisher{}, 2, zap.NewNop())

	assert.True(t, e.Enqueue(entities.RenderEvent{ID: "a"}))
	assert.True(t, e.Enqueue(entities.RenderEvent{ID: "b"}))
	assert.False(t, e.Enqueue(entities.RenderEvent{ID: "c"}))

	assert.Equal(t, "a", (<-e.events).ID)
	assert.Equal(t, "b", (<-e.events).ID)
	assert.Empty(t, e.events)
}

func TestRenderEvents_SkipsWhileBlocked(t *testing.T) {
	pub := &MockPublisher{}
	e := NewRenderEvents(pub, 2, zap.NewNop())

	e.SetBlocked(true)
	assert.False(t, e.Enqueue(entities.RenderEvent{ID: "a"}))
	assert.Empty(t, e.events)

	e.SetBlocked(false)
	assert.True(t, e.Enqueue(entities.RenderEvent{ID: "b"}))
	assert.Len(t, e.events, 1)

	pub.AssertNotCalled(t, "PublishRender", mock.Anything, mock.Anything)
}

func TestRenderEvents_RunPublishesInOrder(t *testing.T) {
	got := make(chan string, 3)
	pub := &MockPublisher{}
	pub.On("PublishRender", mock.Anything, mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) { got <- args.Get(1).(entities.RenderEvent).ID })

	e := NewRenderEvents(pub, 4, zap.NewNop())
	for _, id := range []string{"a", "b", "c"} {
		e.Enqueue(entities.RenderEvent{ID: id})
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(stopped)
	}()

	for _, want := range []string{"a", "b", "c"} {
		select {
		case id := <-got:
			assert.Equal(t, want, id)
		case <-time.After(time.Second):
			t.Fatalf("event %s was not published", want)
		}
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
