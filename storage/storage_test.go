package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"food-ordering-api/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisReviewCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisReviewCache(client, time.Hour)
	ctx := context.Background()

	seen, err := cache.IsReviewed(ctx, 7)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, cache.MarkReviewed(ctx, 7))
	seen, err = cache.IsReviewed(ctx, 7)
	require.NoError(t, err)
	assert.True(t, seen)
	assert.True(t, mr.Exists("review:order:7"))

	mr.FastForward(2 * time.Hour)
	seen, err = cache.IsReviewed(ctx, 7)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRedisReviewCache_Down(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisReviewCache(client, time.Hour)
	mr.Close()

	_, err := cache.IsReviewed(context.Background(), 1)
	assert.Error(t, err)
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w)

	ev := models.OrderEvent{
		Type:        models.EventOrderCreated,
		OrderID:     42,
		Status:      models.StatusRegistered,
		FinalAmount: decimal.NewFromInt(73000),
	}
	require.NoError(t, p.PublishOrderEvent(context.Background(), ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, "order.created", string(msg.Headers[0].Value))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "73000", body["final_amount"])
	assert.Equal(t, "REGISTERED", body["status"])

	w.err = errors.New("broker down")
	assert.Error(t, p.PublishOrderEvent(context.Background(), ev))
}
