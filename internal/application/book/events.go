package book

import (
	"context"
	"time"

	"github.com/readieg/library/pkg/metrics"
	"github.com/readieg/library/pkg/mq"
)

// mutationNotifier 变更成功后的副作用:计数 + 发布事件
// 事件发布失败只记日志,不影响请求结果
type mutationNotifier struct {
	publisher mq.EventPublisher
	now       func() time.Time
}

func newNotifier(publisher mq.EventPublisher) mutationNotifier {
	if publisher == nil {
		publisher = mq.NoopPublisher{}
	}
	return mutationNotifier{publisher: publisher, now: time.Now}
}

func (n mutationNotifier) notify(ctx context.Context, routingKey, action, id string) {
	metrics.RecordBookMutation(action)
	mq.PublishBestEffort(ctx, n.publisher, routingKey, mq.NewEvent(routingKey, id, n.now()))
}
