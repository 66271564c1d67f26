package mq

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestorial/pkg/trace"
)

func TestNewMessageCarriesTraceID(t *testing.T) {
	ctx := trace.WithContext(context.Background(), "trace-1")
	msg, err := NewMessage(ctx, map[string]string{"project_id": "project-1"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)
	assert.Equal(t, "trace-1", msg.Headers[trace.HeaderName])

	var body map[string]string
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "project-1", body["project_id"])
}

func TestNewMessageWithoutTrace(t *testing.T) {
	msg, err := NewMessage(context.Background(), struct{}{})
	require.NoError(t, err)
	assert.Nil(t, msg.Headers)
}

func TestNewMessageRejectsUnencodable(t *testing.T) {
	_, err := NewMessage(context.Background(), make(chan int))
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p EventPublisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), "x", nil))
}
