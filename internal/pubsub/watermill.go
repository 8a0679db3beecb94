package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// GoChannelBus implements Publisher and Subscriber on top of watermill's
// in-process GoChannel transport. All components of the radio service run in
// one process, so an in-memory bus is sufficient; swapping in a networked
// watermill backend only requires changing this constructor.
type GoChannelBus struct {
	pub    message.Publisher
	sub    message.Subscriber
	logger watermill.LoggerAdapter
}

const metaKeyTopic = "topic"

// NewGoChannelBus initializes the in-memory Pub/Sub bus.
func NewGoChannelBus() *GoChannelBus {
	logger := watermill.NewStdLogger(false, false)
	goChannel := gochannel.NewGoChannel(
		gochannel.Config{
			// Buffer fan-out so a slow subscriber cannot stall the engine.
			OutputChannelBuffer: 64,
		},
		logger,
	)

	return &GoChannelBus{
		pub:    goChannel,
		sub:    goChannel,
		logger: logger,
	}
}

// Publish implements the Publisher interface.
func (b *GoChannelBus) Publish(ctx context.Context, msg Message) error {
	wmMsg := message.NewMessage(watermill.NewUUID(), msg.Payload)
	wmMsg.Metadata.Set(metaKeyTopic, msg.Topic)
	for k, v := range msg.Metadata {
		wmMsg.Metadata.Set(k, v)
	}
	return b.pub.Publish(msg.Topic, wmMsg)
}

// Subscribe implements the Subscriber interface. It returns once the
// subscription is active; message handling continues in the background until
// the context is canceled or the bus is closed.
func (b *GoChannelBus) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := b.sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wmMsg := range messages {
			metadata := make(map[string]string, len(wmMsg.Metadata))
			for k, v := range wmMsg.Metadata {
				if k != metaKeyTopic {
					metadata[k] = v
				}
			}
			msg := Message{
				Topic:    topic,
				Payload:  wmMsg.Payload,
				Metadata: metadata,
			}

			if err := handler(ctx, msg); err != nil {
				slog.Error("Failed to handle message", "topic", topic, "msg_id", wmMsg.UUID, "error", err)
				wmMsg.Nack()
			} else {
				wmMsg.Ack()
			}
		}
		slog.Debug("Subscription message loop ended", "topic", topic)
	}()

	return nil
}

// Close shuts down the bus and stops message consumption.
func (b *GoChannelBus) Close() error {
	return b.sub.Close()
}
