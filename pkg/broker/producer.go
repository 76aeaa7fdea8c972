package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"
)

type Producer struct {
	l *slog.Logger
	w *kafka.Writer
}

func NewProducer(l *slog.Logger, brokers []string) *Producer {
	l = l.WithGroup("kafka")

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Compression:            0,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l: l,
		w: w,
	}
}

type RowChangedEvent struct {
	Op    string    `json:"op"`
	RowID uuid.UUID `json:"row_id"`
}

// SendRowChanged publishes a change signal for one table topic. Consumers
// treat the payload as a signal only and refetch the whole table.
func (p *Producer) SendRowChanged(ctx context.Context, topic, op string, rowID uuid.UUID) {
	event := RowChangedEvent{
		Op:    op,
		RowID: rowID,
	}

	b, err := json.Marshal(event)
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(rowID.String()),
		Value: b,
		Topic: topic,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}
