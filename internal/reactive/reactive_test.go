package reactive

import (
	"context"
	"testing"
)

func TestSignal(t *testing.T) {
	t.Run("Subscribe replays current value", func(t *testing.T) {
		s := NewSignal("light")
		var got []string
		s.Subscribe(func(v string) { got = append(got, v) })
		s.Set("dark")

		if len(got) != 2 || got[0] != "light" || got[1] != "dark" {
			t.Errorf("expected [light dark], got %v", got)
		}
	})

	t.Run("Unsubscribe is idempotent", func(t *testing.T) {
		s := NewSignal(0)
		calls := 0
		stop := s.Subscribe(func(int) { calls++ })
		stop()
		stop()
		s.Set(1)

		if calls != 1 {
			t.Errorf("expected 1 call (the replay), got %d", calls)
		}
		if s.Len() != 0 {
			t.Errorf("expected no listeners, got %d", s.Len())
		}
	})

	t.Run("Comparable signal skips equal values", func(t *testing.T) {
		s := NewComparableSignal(3)
		calls := 0
		s.Subscribe(func(int) { calls++ })
		s.Set(3)
		s.Set(4)

		if calls != 2 {
			t.Errorf("expected 2 calls, got %d", calls)
		}
	})

	t.Run("Update", func(t *testing.T) {
		s := NewSignal(10)
		s.Update(func(v int) int { return v * 2 })
		if s.Get() != 20 {
			t.Errorf("expected 20, got %d", s.Get())
		}
	})
}

func TestDerive(t *testing.T) {
	lang := NewSignal("en")
	title, stop := Derive(lang, func(l string) string { return "title." + l })

	if title.Get() != "title.en" {
		t.Errorf("expected title.en, got %q", title.Get())
	}
	lang.Set("es")
	if title.Get() != "title.es" {
		t.Errorf("expected title.es, got %q", title.Get())
	}

	stop()
	lang.Set("fr")
	if title.Get() != "title.es" {
		t.Errorf("expected detached signal to keep title.es, got %q", title.Get())
	}
}

func TestBatch(t *testing.T) {
	flushes := 0
	b := NewBatch(func() { flushes++ })

	b.Do(func() {
		b.Mark()
		b.Do(func() { b.Mark() })
		b.Mark()
	})
	if flushes != 1 {
		t.Errorf("expected 1 flush for nested batch, got %d", flushes)
	}

	b.Do(func() {})
	if flushes != 1 {
		t.Errorf("clean batch should not flush, got %d", flushes)
	}

	b.Mark()
	if flushes != 2 {
		t.Errorf("mark outside batch should flush immediately, got %d", flushes)
	}
}

func TestWatch(t *testing.T) {
	s := NewSignal(1)
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Watch(ctx)

	if v := <-ch; v != 1 {
		t.Fatalf("expected replayed 1, got %d", v)
	}

	s.Set(2)
	if v := <-ch; v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}

	cancel()
	for range ch {
	}
	if s.Len() != 0 {
		t.Errorf("expected watcher to unsubscribe after cancel, got %d listeners", s.Len())
	}
}
