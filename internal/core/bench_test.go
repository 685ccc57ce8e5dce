package core

import (
	"strconv"
	"testing"
)

func benchmarkBroadcast(b *testing.B, recipients int) {
	m := newTestManager()

	sender := NewSession("sender", "sender", "bench")
	if err := m.Connect(sender); err != nil {
		b.Fatalf("connect sender: %v", err)
	}

	sessions := make([]*Session, 0, recipients)
	for i := range recipients {
		s := NewSession("c"+strconv.Itoa(i), "client", "bench")
		if err := m.Connect(s); err != nil {
			b.Fatalf("connect recipient %d: %v", i, err)
		}
		sessions = append(sessions, s)
	}

	// Drain recipients so their buffers never fill.
	done := make(chan struct{})
	defer close(done)
	for _, s := range sessions {
		go func(s *Session) {
			for {
				select {
				case <-s.Events():
				case <-done:
					return
				}
			}
		}(s)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Broadcast("bench", "payload", sender.ID)
	}
}

func BenchmarkBroadcast_10(b *testing.B)  { benchmarkBroadcast(b, 10) }
func BenchmarkBroadcast_100(b *testing.B) { benchmarkBroadcast(b, 100) }
func BenchmarkBroadcast_500(b *testing.B) { benchmarkBroadcast(b, 500) }
