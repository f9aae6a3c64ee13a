package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"TikLite.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Producer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	// amqp channel不是并发安全的
	mu sync.Mutex
}

func NewProducer(rabbitmqURL string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	producer := &Producer{
		conn:    conn,
		channel: ch,
	}

	// 声明exchanges和queues
	if err := setupTopology(ch); err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return producer, nil
}

func setupTopology(ch *amqp091.Channel) error {
	// 关系事件广播给所有API实例
	err := ch.ExchangeDeclare(
		constants.RelationExchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare relation event exchange: %w", err)
	}

	err = ch.ExchangeDeclare(
		constants.SearchExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare search event exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		constants.SearchQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare search index queue: %w", err)
	}

	for _, key := range []string{VideoRoutingKey, UserRoutingKey} {
		if err = ch.QueueBind(constants.SearchQueue, key, constants.SearchExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind search index queue (%s): %w", key, err)
		}
	}
	return nil
}

func (p *Producer) publish(ctx context.Context, exchange, key string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(
		ctx,
		exchange,
		key,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
		},
	)
}

func (p *Producer) PublishRelationEvent(ctx context.Context, event *RelationEvent) error {
	stamp(&event.EventID, &event.Timestamp)
	if err := p.publish(ctx, constants.RelationExchange, "", event); err != nil {
		return fmt.Errorf("failed to publish relation event: %w", err)
	}
	hlog.CtxDebugf(ctx, "Published relation event: %s", event.EventID)
	return nil
}

func (p *Producer) PublishVideoEvent(ctx context.Context, event *VideoEvent) error {
	stamp(&event.EventID, &event.Timestamp)
	if err := p.publish(ctx, constants.SearchExchange, VideoRoutingKey, event); err != nil {
		return fmt.Errorf("failed to publish video event: %w", err)
	}
	hlog.CtxInfof(ctx, "Published video event: %s %s video=%d", event.EventID, event.Type, event.VideoID)
	return nil
}

func (p *Producer) PublishUserEvent(ctx context.Context, event *UserEvent) error {
	stamp(&event.EventID, &event.Timestamp)
	if err := p.publish(ctx, constants.SearchExchange, UserRoutingKey, event); err != nil {
		return fmt.Errorf("failed to publish user event: %w", err)
	}
	hlog.CtxInfof(ctx, "Published user event: %s %s user=%d", event.EventID, event.Type, event.UserID)
	return nil
}

func (p *Producer) HealthCheck() error {
	if p.conn == nil || p.conn.IsClosed() {
		return fmt.Errorf("rabbitmq connection is closed")
	}
	return nil
}

func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
