// Package mq 基于RabbitMQ的领域事件发布
//
// 设计说明：
// 1. 使用topic类型Exchange，路由键形如 book.created / book.updated / book.deleted
// 2. 消息体为JSON，DeliveryMode=Persistent
// 3. 发布失败只记日志和指标，调用方不因事件失败而失败（存储是事实来源）
// 4. 未启用时使用NoopPublisher
//
// 消费者示例（绑定所有图书事件）：
//
//	ch.QueueBind("search.indexer", "book.*", "catalog.events", false, nil)
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/readieg/library/pkg/logger"
	"github.com/readieg/library/pkg/metrics"
)

// 路由键
const (
	RoutingBookCreated = "book.created"
	RoutingBookUpdated = "book.updated"
	RoutingBookDeleted = "book.deleted"
)

// Event 图书变更事件
type Event struct {
	Event string    `json:"event"` // 与路由键相同
	ID    string    `json:"id"`
	At    time.Time `json:"at"`
}

// NewEvent 构造事件，At使用UTC
func NewEvent(routingKey, id string, at time.Time) Event {
	return Event{Event: routingKey, ID: id, At: at.UTC()}
}

// EventPublisher 事件发布接口（应用层依赖它，不依赖amqp）
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
	Close() error
}

// channel 抽象出amqp.Channel中用到的方法，便于测试
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher RabbitMQ发布者
// amqp.Channel不是并发安全的，发布时加锁
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// NewPublisher 连接RabbitMQ并声明topic Exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	logger.Info().Str("exchange", exchange).Msg("事件发布者已创建")

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish 发布一条JSON消息
func (p *Publisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := encode(event)
	if err != nil {
		metrics.RecordPublish(p.exchange, routingKey, err)
		return err
	}

	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	p.mu.Unlock()

	metrics.RecordPublish(p.exchange, routingKey, err)
	if err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	logger.Debug().Str("routing_key", routingKey).RawJSON("body", body).Msg("事件已发布")
	return nil
}

// Close 关闭Channel与连接
func (p *Publisher) Close() error {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

func encode(event interface{}) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("消息序列化失败: %w", err)
	}
	return body, nil
}

// NoopPublisher 未启用消息队列时使用
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                        { return nil }

// PublishBestEffort 发布事件，失败只记录日志
func PublishBestEffort(ctx context.Context, p EventPublisher, routingKey string, event interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, event); err != nil {
		logger.Warn().Err(err).Str("routing_key", routingKey).Msg("事件发布失败")
	}
}
