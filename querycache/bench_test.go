package querycache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// BenchmarkStore_Get_Hit measures cache hit performance.
func BenchmarkStore_Get_Hit(b *testing.B) {
	s, _ := New(DefaultConfig())
	s.Set("query", map[string]any{"answer": "value"}, "proj")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Get("query", "proj")
	}
}

// BenchmarkStore_Get_Miss measures cache miss performance.
func BenchmarkStore_Get_Miss(b *testing.B) {
	s, _ := New(DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Get("missing", "proj")
	}
}

// BenchmarkStore_Set measures write performance below capacity.
func BenchmarkStore_Set(b *testing.B) {
	s, _ := New(Config{MaxSize: 1 << 20, TTL: time.Hour})
	payload := map[string]any{"answer": "value"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Set(fmt.Sprintf("query-%d", i), payload, "proj")
	}
}

// BenchmarkStore_Set_Eviction measures write performance at capacity,
// where every insert scans for the oldest entry.
func BenchmarkStore_Set_Eviction(b *testing.B) {
	s, _ := New(Config{MaxSize: 1000, TTL: time.Hour})
	payload := map[string]any{"answer": "value"}

	// Fill to capacity.
	for i := 0; i < 1000; i++ {
		s.Set(fmt.Sprintf("warm-%d", i), payload, "proj")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Set(fmt.Sprintf("query-%d", i), payload, "proj")
	}
}

// BenchmarkStore_Stats measures stats snapshot performance.
func BenchmarkStore_Stats(b *testing.B) {
	s, _ := New(DefaultConfig())
	for i := 0; i < 100; i++ {
		s.Set(fmt.Sprintf("query-%d", i), map[string]any{"n": i}, "proj")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Stats()
	}
}

// BenchmarkStore_Concurrent_ReadHeavy measures a read-heavy workload.
func BenchmarkStore_Concurrent_ReadHeavy(b *testing.B) {
	s, _ := New(DefaultConfig())
	for i := 0; i < 100; i++ {
		s.Set(fmt.Sprintf("query-%d", i), map[string]any{"n": i}, "proj")
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := fmt.Sprintf("query-%d", i%100)
			if i%10 == 0 {
				s.Set(key, map[string]any{"n": i}, "proj")
			} else {
				_, _ = s.Get(key, "proj")
			}
			i++
		}
	})
}

// BenchmarkDefaultKeyer_Key measures key derivation.
func BenchmarkDefaultKeyer_Key(b *testing.B) {
	keyer := NewDefaultKeyer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = keyer.Key("what is the project's review process for incoming pull requests?", "keras")
	}
}

// BenchmarkMiddleware_Answer_Hit measures the full hit path.
func BenchmarkMiddleware_Answer_Hit(b *testing.B) {
	s, _ := New(DefaultConfig())
	mw, _ := NewMiddleware(s, nil, nil)
	ctx := context.Background()

	pipeline := func(ctx context.Context, query, projectID string) (map[string]any, error) {
		return map[string]any{"answer": "value"}, nil
	}

	// Pre-warm cache
	_, _ = mw.Answer(ctx, "query", "proj", pipeline)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mw.Answer(ctx, "query", "proj", pipeline)
	}
}
