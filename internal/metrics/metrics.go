// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス収集のインターフェース。
// サービス層から利用する。
type Recorder interface {
	RecordEntryLookup(found bool)
	RecordSearch(duration time.Duration, results int)
	RecordWordOfDay(refreshed bool)
	RecordSuggestionCreated()
	RecordSuggestionApplied(result string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	entryLookups       *prometheus.CounterVec
	searches           prometheus.Counter
	searchLatency      prometheus.Histogram
	searchResults      prometheus.Counter
	wordOfDayHits      prometheus.Counter
	wordOfDayRefreshes prometheus.Counter
	suggestionsCreated prometheus.Counter
	suggestionsApplied *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		entryLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hanji_entry_lookups_total",
			Help: "エントリ単体取得の合計数（検出有無別）",
		}, []string{"found"}),
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hanji_searches_total",
			Help: "全文検索リクエストの合計数",
		}),
		searchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hanji_search_latency_seconds",
			Help:    "全文検索のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		searchResults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hanji_search_results_total",
			Help: "全文検索が返した結果行の合計数",
		}),
		wordOfDayHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hanji_word_of_day_cache_hits_total",
			Help: "今日の単語キャッシュヒットの合計数",
		}),
		wordOfDayRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hanji_word_of_day_refreshes_total",
			Help: "今日の単語の再サンプリング実行の合計数",
		}),
		suggestionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hanji_suggestions_created_total",
			Help: "作成された提案の合計数",
		}),
		suggestionsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hanji_suggestions_applied_total",
			Help: "提案適用試行の合計数（結果別）",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.entryLookups,
		c.searches,
		c.searchLatency,
		c.searchResults,
		c.wordOfDayHits,
		c.wordOfDayRefreshes,
		c.suggestionsCreated,
		c.suggestionsApplied,
	)

	return c
}

// RecordEntryLookup はエントリ単体取得を記録する。
func (c *Collector) RecordEntryLookup(found bool) {
	label := "false"
	if found {
		label = "true"
	}
	c.entryLookups.WithLabelValues(label).Inc()
}

// RecordSearch は全文検索の実行を記録する。
func (c *Collector) RecordSearch(duration time.Duration, results int) {
	c.searches.Inc()
	c.searchLatency.Observe(duration.Seconds())
	c.searchResults.Add(float64(results))
}

// RecordWordOfDay は今日の単語の取得を記録する。
// refreshedは再サンプリングを伴った取得かどうかを表す。
func (c *Collector) RecordWordOfDay(refreshed bool) {
	if refreshed {
		c.wordOfDayRefreshes.Inc()
	} else {
		c.wordOfDayHits.Inc()
	}
}

// RecordSuggestionCreated は提案の作成を記録する。
func (c *Collector) RecordSuggestionCreated() {
	c.suggestionsCreated.Inc()
}

// RecordSuggestionApplied は提案適用の試行結果を記録する。
// resultには applied / already_applied / failed のいずれかを渡す。
func (c *Collector) RecordSuggestionApplied(result string) {
	c.suggestionsApplied.WithLabelValues(result).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ Recorder = (*Collector)(nil)
