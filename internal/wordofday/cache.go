// Package wordofday は「今日の単語」のプロセス内単一値キャッシュを提供する。
//
// キャッシュはプロセスローカルであり、複数インスタンス間で共有されない。
// 同一の暦日内に別インスタンスが別の単語を返すことは許容される。
package wordofday

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hitoshi/hanji/internal/metrics"
	"github.com/hitoshi/hanji/internal/model"
	"github.com/hitoshi/hanji/internal/projection"
	"github.com/hitoshi/hanji/internal/repository"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL はキャッシュの既定の鮮度ウィンドウ。
// 壁時計の経過時間で判定する粗い有効期限であり、精密なタイマーではない。
const DefaultTTL = 24 * time.Hour

// Cache は直近にサンプリングしたエントリ（射影前の生レコード)と
// その取得時刻を保持する単一値キャッシュ。
//
// 再サンプリングはsingleflightで直列化され、同時に陳腐化を観測した
// 呼び出しが揃ってサンプリングを発行することはない。待機した呼び出しは
// 先行する再サンプリングの結果を受け取る。
type Cache struct {
	store repository.EntryStore
	ttl   time.Duration

	// now はテストから差し替えるための時刻源。
	now func() time.Time

	mu        sync.RWMutex
	last      *repository.EntryRecord
	fetchedAt time.Time

	group   singleflight.Group
	metrics metrics.Recorder
}

// New はCacheの新しいインスタンスを生成する。
// ttlに0以下を渡した場合はDefaultTTLを使用する。recorderはnilでもよい。
func New(store repository.EntryStore, ttl time.Duration, recorder metrics.Recorder) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:   store,
		ttl:     ttl,
		now:     time.Now,
		metrics: recorder,
	}
}

// Get は今日の単語を返す。
//
// キャッシュが鮮度ウィンドウ内であればストレージへアクセスせず既存値を
// 射影して返す。未取得または陳腐化している場合は無作為抽出を1回だけ
// 実行し、キャッシュを置き換えてから返す。
func (c *Cache) Get(ctx context.Context) (*model.Entry, error) {
	if rec, ok := c.cached(); ok {
		if c.metrics != nil {
			c.metrics.RecordWordOfDay(false)
		}
		entry := projection.ProjectEntry(rec)
		return &entry, nil
	}

	v, err, _ := c.group.Do("word-of-day", func() (interface{}, error) {
		// singleflight待機中に先行呼び出しが更新済みの場合は再利用する
		if rec, ok := c.cached(); ok {
			return rec, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}

	entry := projection.ProjectEntry(v.(*repository.EntryRecord))
	return &entry, nil
}

// cached は鮮度ウィンドウ内のキャッシュ値を返す。
func (c *Cache) cached() (*repository.EntryRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.last == nil {
		return nil, false
	}
	if c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.last, true
}

// refresh は無作為抽出を1回実行し、キャッシュ値と時刻を置き換える。
func (c *Cache) refresh(ctx context.Context) (*repository.EntryRecord, error) {
	rec, err := c.store.SampleOne(ctx)
	if err != nil {
		return nil, fmt.Errorf("今日の単語の抽出に失敗しました: %w", err)
	}
	if rec == nil {
		// コレクションが空なのは運用上の異常であり、上位の障害境界へ伝播させる
		return nil, fmt.Errorf("今日の単語の抽出に失敗しました: エントリコレクションが空です")
	}

	c.mu.Lock()
	c.last = rec
	c.fetchedAt = c.now()
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.RecordWordOfDay(true)
	}
	return rec, nil
}
