package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"TikLite.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	err = ch.Qos(
		10,    // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	if err = setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return &Consumer{conn: conn, channel: ch}, nil
}

// ConsumeRelationEvents 每个实例一个独占队列，实例退出后队列自动删除
func (c *Consumer) ConsumeRelationEvents(ctx context.Context, handler RelationEventHandler) error {
	q, err := c.channel.QueueDeclare(
		"",    // 由broker生成队列名
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare relation queue: %w", err)
	}
	if err = c.channel.QueueBind(q.Name, "", constants.RelationExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind relation queue: %w", err)
	}
	msgs, err := c.channel.Consume(q.Name, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	go c.loop(ctx, "relation", msgs, func(d amqp091.Delivery) (bool, error) {
		var event RelationEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			return false, err
		}
		return true, handler.HandleRelationEvent(ctx, &event)
	})
	return nil
}

// ConsumeIndexEvents 搜索索引事件，routing key区分视频和用户
func (c *Consumer) ConsumeIndexEvents(ctx context.Context, handler IndexEventHandler) error {
	msgs, err := c.channel.Consume(
		constants.SearchQueue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	go c.loop(ctx, "index", msgs, func(d amqp091.Delivery) (bool, error) {
		switch d.RoutingKey {
		case VideoRoutingKey:
			var event VideoEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				return false, err
			}
			return true, handler.HandleVideoEvent(ctx, &event)
		case UserRoutingKey:
			var event UserEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				return false, err
			}
			return true, handler.HandleUserEvent(ctx, &event)
		default:
			return false, fmt.Errorf("unknown routing key %q", d.RoutingKey)
		}
	})
	return nil
}

// handle返回(decoded, err)：解码失败直接丢弃，处理失败重新入队
func (c *Consumer) loop(ctx context.Context, name string, msgs <-chan amqp091.Delivery, handle func(amqp091.Delivery) (bool, error)) {
	for {
		select {
		case <-ctx.Done():
			hlog.Infof("%s event consumer context cancelled", name)
			return
		case d, ok := <-msgs:
			if !ok {
				hlog.Infof("%s event consumer channel closed", name)
				return
			}
			decoded, err := handle(d)
			if err != nil {
				if !decoded {
					hlog.Errorf("Failed to decode %s event: %v", name, err)
					d.Nack(false, false) // 拒绝消息，不重新入队
					continue
				}
				hlog.Errorf("Failed to handle %s event: %v", name, err)
				d.Nack(false, true) // 拒绝消息，重新入队
				continue
			}
			d.Ack(false) // 确认消息
		}
	}
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
