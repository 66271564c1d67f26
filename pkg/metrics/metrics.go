package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 登录尝试计数
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gestorial_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // 取值：success, invalid, unavailable
	)

	// 授权判定计数
	AuthorizationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gestorial_authorization_decisions_total",
			Help: "Authorization decisions by check and outcome",
		},
		[]string{"check", "outcome"}, // 取值：minimum_role, edit_project, permission
	)

	// 会话恢复计数
	SessionRehydrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gestorial_session_rehydrations_total",
			Help: "Session rehydration attempts from persistent storage",
		},
		[]string{"result"}, // 取值：restored, missing, unavailable, corrupt, stale, invalid_token
	)

	// 数据源查询延迟（秒）
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gestorial_store_query_duration_seconds",
			Help:    "Store query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms 到约 1s
		},
		[]string{"operation", "backend"},
	)

	// 慢查询计数
	SlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gestorial_db_slow_query_total",
			Help: "Total number of slow SQL queries",
		},
	)

	// 事件发布计数
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gestorial_events_published_total",
			Help: "Domain events handed to the publisher",
		},
		[]string{"routing_key", "status"}, // 取值：ok, failed
	)
)

// IncrementLogin 记录一次登录结果
func IncrementLogin(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}

// RecordDecision 记录授权判定
func RecordDecision(check string, allowed bool) {
	outcome := "deny"
	if allowed {
		outcome = "allow"
	}
	AuthorizationDecisions.WithLabelValues(check, outcome).Inc()
}

// IncrementRehydration 记录会话恢复结果
func IncrementRehydration(result string) {
	SessionRehydrations.WithLabelValues(result).Inc()
}

// RecordStoreQuery 记录数据源查询延迟
func RecordStoreQuery(operation, backend string, duration time.Duration) {
	StoreQueryDuration.WithLabelValues(operation, backend).Observe(duration.Seconds())
}

// IncrementSlowQuery 记录慢查询
func IncrementSlowQuery() {
	SlowQueryCount.Inc()
}

// IncrementPublished 记录事件发布结果
func IncrementPublished(routingKey string, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	EventsPublished.WithLabelValues(routingKey, status).Inc()
}
