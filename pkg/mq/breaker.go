package mq

import (
	"context"
	"time"

	"github.com/readieg/library/pkg/circuitbreaker"
	"github.com/readieg/library/pkg/logger"
)

// GuardedPublisher 用熔断器包装EventPublisher
// Broker连续失败后直接跳过发布，Timeout后再放行一次探测
type GuardedPublisher struct {
	next EventPublisher
	cb   *circuitbreaker.CircuitBreaker
}

// NewGuardedPublisher failures为0时默认5次，timeout为0时默认30秒
func NewGuardedPublisher(next EventPublisher, failures uint32, timeout time.Duration) *GuardedPublisher {
	if failures == 0 {
		failures = 5
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cb := circuitbreaker.New("mq-publisher", circuitbreaker.Config{
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(failures),
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("熔断器状态变化")
		},
	})

	return &GuardedPublisher{next: next, cb: cb}
}

// Publish 熔断时返回circuitbreaker.ErrOpenState
func (g *GuardedPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	return g.cb.Execute(func() error {
		return g.next.Publish(ctx, routingKey, event)
	})
}

func (g *GuardedPublisher) Close() error { return g.next.Close() }

// State 熔断器当前状态
func (g *GuardedPublisher) State() circuitbreaker.State { return g.cb.State() }
