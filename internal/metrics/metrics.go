// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hitoshi/rollcall/internal/model"
)

// Collector は認証イベントのPrometheusメトリクスを収集する。
// auth.MetricsRecorderを実装する。
type Collector struct {
	registrations *prometheus.CounterVec
	loginSuccess  *prometheus.CounterVec
	loginFail     *prometheus.CounterVec
	roleMismatch  prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_registrations_total",
			Help: "アカウント登録の合計数（ロール別）",
		}, []string{"role"}),
		loginSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_login_success_total",
			Help: "ログイン成功の合計数（ロール別）",
		}, []string{"role"}),
		loginFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_login_fail_total",
			Help: "ログイン失敗の合計数（理由別）",
		}, []string{"reason"}),
		roleMismatch: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_role_mismatch_total",
			Help: "ロール不一致によるログイン拒否の合計数",
		}),
	}

	reg.MustRegister(
		c.registrations,
		c.loginSuccess,
		c.loginFail,
		c.roleMismatch,
	)

	return c
}

// RecordRegistration はアカウント登録を記録する。
func (c *Collector) RecordRegistration(role model.Role) {
	c.registrations.WithLabelValues(string(role)).Inc()
}

// RecordLoginSuccess はログイン成功を記録する。
func (c *Collector) RecordLoginSuccess(role model.Role) {
	c.loginSuccess.WithLabelValues(string(role)).Inc()
}

// RecordLoginFailure はログイン失敗を記録する。
func (c *Collector) RecordLoginFailure(reason string) {
	c.loginFail.WithLabelValues(reason).Inc()
}

// RecordRoleMismatch はロール不一致によるログイン拒否を記録する。
func (c *Collector) RecordRoleMismatch() {
	c.roleMismatch.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
