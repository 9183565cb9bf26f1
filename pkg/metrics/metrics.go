// Package metrics 提供基于Prometheus的指标收集
//
// # 核心概念
//
// **1. Counter（计数器）**：只增不减的累计值，如HTTP请求总数、鉴权拒绝次数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值，如正在处理的请求数
//
// **3. Histogram（直方图）**：观测值的分布，如请求耗时、存储操作耗时
//
// # 本服务暴露的指标
//
//	http_requests_total{method,path,status}          HTTP请求总数
//	http_request_duration_seconds{method,path}       HTTP请求耗时
//	http_requests_in_progress                        正在处理的请求数
//	auth_decisions_total{decision}                   鉴权链结果（fast_path/hydrated/denied/...）
//	store_operation_duration_seconds{store,op}       存储操作耗时（mongo/mysql）
//	book_mutations_total{action}                     图书变更次数（created/updated/deleted）
//	messages_published_total{exchange,routing_key,result}  事件发布次数
//
// # 使用示例
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(metrics.Handler()))
//
//	func (r *repo) Find(ctx context.Context, q book.ListQuery) ([]*book.Book, error) {
//	    defer metrics.ObserveStoreOp("mongo", "book_find", time.Now())
//	    ...
//	}
//
// # 标签规范
//
// 避免高基数标签：path使用路由模板（/api/books/:id），不要用真实URL；不要用user_id做标签
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 鉴权链决策
const (
	DecisionFastPath = "fast_path" // 缓存角色命中，未访问存储
	DecisionHydrated = "hydrated"  // 读取存储后放行
	DecisionDenied   = "denied"    // 403
	DecisionNoAuth   = "no_auth"   // 401
	DecisionRevoked  = "revoked"   // 会话标识无法解析，会话被销毁
)

var (
	once sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// AuthDecisionsTotal 鉴权链决策次数
	AuthDecisionsTotal *prometheus.CounterVec

	// StoreOperationDuration 存储操作耗时
	StoreOperationDuration *prometheus.HistogramVec

	// BookMutationsTotal 图书变更次数
	BookMutationsTotal *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数
	// 标签：exchange（交换机）、routing_key（路由键）、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. sync.Once保证只注册一次，重复调用安全
// 3. 未初始化时下面的便捷函数都是空操作（单元测试不需要关心指标）
func InitMetrics() {
	once.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		AuthDecisionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_decisions_total",
				Help: "鉴权链决策次数",
			},
			[]string{"decision"},
		)

		StoreOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "store_operation_duration_seconds",
				Help: "存储操作耗时（秒）",
				// 单次存储往返，通常在毫秒级
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"store", "op"},
		)

		BookMutationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_mutations_total",
				Help: "图书变更次数",
			},
			[]string{"action"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"exchange", "routing_key", "result"},
		)
	})
}

// Handler /metrics端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}

// RecordAuthDecision 记录一次鉴权决策
func RecordAuthDecision(decision string) {
	IncCounterVec(AuthDecisionsTotal, map[string]string{"decision": decision})
}

// ObserveStoreOp 记录存储操作耗时，配合defer使用：
//
//	defer metrics.ObserveStoreOp("mongo", "book_find", time.Now())
func ObserveStoreOp(store, op string, start time.Time) {
	ObserveHistogramVec(StoreOperationDuration,
		map[string]string{"store": store, "op": op},
		time.Since(start).Seconds())
}

// RecordBookMutation 记录一次图书变更
func RecordBookMutation(action string) {
	IncCounterVec(BookMutationsTotal, map[string]string{"action": action})
}

// RecordPublish 记录一次事件发布
func RecordPublish(exchange, routingKey string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	IncCounterVec(MessagesPublishedTotal, map[string]string{
		"exchange":    exchange,
		"routing_key": routingKey,
		"result":      result,
	})
}
