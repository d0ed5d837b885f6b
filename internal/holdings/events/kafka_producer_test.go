package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gartstein/holdings/internal/holdings/models"
	"github.com/gartstein/holdings/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// MockKafkaWriter implements KafkaWriter for testing
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestNewProducerWithoutBrokers(t *testing.T) {
	_, err := NewProducer(nil, zaptest.NewLogger(t), "holdings")
	assert.Error(t, err)
}

func TestProducer_Produce(t *testing.T) {
	t.Run("successful produce", func(t *testing.T) {
		producer := newProducer(new(MockKafkaWriter), zaptest.NewLogger(t))
		producer.Produce(Event{Type: RecordCreated, ID: uuid.New()})

		assert.Equal(t, 1, len(producer.events))
	})

	t.Run("dropped event when queue full", func(t *testing.T) {
		core, recorded := observer.New(zap.WarnLevel)
		producer := newProducer(new(MockKafkaWriter), zap.New(core))
		producer.events = make(chan Event, 1)
		id := uuid.New()

		producer.Produce(Event{Type: RecordCreated, ID: id})
		producer.Produce(Event{Type: RecordCreated, ID: id})

		assert.Equal(t, 1, recorded.FilterMessage("Kafka producer queue full, dropping event").Len())
		assert.Equal(t, 1, recorded.FilterField(zap.String("record_id", id.String())).Len())
	})
}

func TestProducer_SendEvent(t *testing.T) {
	company := models.Draft{Name: "Acme", Services: []string{"Wealth Management"}}.Normalized().Record(uuid.New())

	t.Run("successful send", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)
		producer := newProducer(mockWriter, zaptest.NewLogger(t))

		event := Event{Type: RecordCreated, ID: company.ID, Company: &company}
		producer.sendEvent(context.Background(), event)

		mockWriter.AssertCalled(t, "WriteMessages", mock.Anything, []kafka.Message{
			{
				Key:   []byte(company.ID.String()),
				Value: mustMarshal(event),
			},
		})
	})

	t.Run("favorite payload", func(t *testing.T) {
		event := Event{Type: FavoriteToggled, ID: company.ID, Favorite: utils.Ptr(true)}
		var decoded map[string]interface{}
		assert.NoError(t, json.Unmarshal(mustMarshal(event), &decoded))
		assert.Equal(t, "favorite_toggled", decoded["type"])
		assert.Equal(t, true, decoded["favorite"])
		assert.NotContains(t, decoded, "company")
	})

	t.Run("serialization error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		producer := newProducer(new(MockKafkaWriter), zap.New(core))

		oldMarshal := jsonMarshal
		jsonMarshal = func(_ interface{}) ([]byte, error) {
			return nil, errors.New("mock marshal error")
		}
		defer func() { jsonMarshal = oldMarshal }()

		producer.sendEvent(context.Background(), Event{Type: RecordCreated, ID: company.ID})

		assert.Equal(t, 1, recorded.FilterMessage("Failed to serialize event").Len())
		assert.Equal(t, 1, recorded.FilterField(zap.String("record_id", company.ID.String())).Len())
	})

	t.Run("write error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		mockWriter := new(MockKafkaWriter)
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("kafka error"))
		producer := newProducer(mockWriter, zap.New(core))

		producer.sendEvent(context.Background(), Event{Type: RecordDeleted, ID: company.ID})

		assert.Equal(t, 1, recorded.FilterMessage("Failed to produce event").Len())
	})
}

func TestProducer_Close(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	mockWriter.On("Close").Return(nil)
	producer := newProducer(mockWriter, zaptest.NewLogger(t))
	go producer.eventLoop()

	producer.Close()

	select {
	case <-producer.done:
	default:
		t.Error("event loop still running after Close")
	}
	mockWriter.AssertCalled(t, "Close")
}

func TestProducer_CloseFlushesQueue(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	var closed bool
	mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		assert.False(t, closed, "write after the writer was closed")
	}).Return(nil)
	mockWriter.On("Close").Run(func(mock.Arguments) { closed = true }).Return(nil)
	producer := newProducer(mockWriter, zaptest.NewLogger(t))

	for i := 0; i < 3; i++ {
		producer.Produce(Event{Type: RecordCreated, ID: uuid.New()})
	}
	go producer.eventLoop()
	producer.Close()

	mockWriter.AssertNumberOfCalls(t, "WriteMessages", 3)
	mockWriter.AssertCalled(t, "Close")
	assert.Empty(t, producer.events)
}

func TestProducer_EventLoop(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)
	mockWriter.On("Close").Return(nil)
	producer := newProducer(mockWriter, zaptest.NewLogger(t))

	go producer.eventLoop()
	producer.Produce(Event{Type: RecordUpdated, ID: uuid.New()})

	assert.Eventually(t, func() bool {
		return len(producer.events) == 0
	}, time.Second, 10*time.Millisecond)

	producer.Close()
	mockWriter.AssertCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestNoOpProducer(t *testing.T) {
	p := NewNoOpProducer()
	p.Produce(Event{Type: RecordCreated, ID: uuid.New()})
	p.Close()
}

func mustMarshal(event Event) []byte {
	data, _ := json.Marshal(event)
	return data
}
