package events

import (
	"strings"
	"sync"
	"testing"
)

func TestNormalizeMetricsDefaultsToAll(t *testing.T) {
	valid, unknown := NormalizeMetrics(nil)
	if len(unknown) != 0 {
		t.Fatalf("unexpected unknown metrics: %v", unknown)
	}
	if len(valid) != 3 {
		t.Fatalf("expected all 3 metrics, got %v", valid)
	}
}

func TestNormalizeMetricsRejectsUnknown(t *testing.T) {
	valid, unknown := NormalizeMetrics([]string{"attendance", "sound_pressure"})
	if len(valid) != 1 || valid[0] != MetricAttendance {
		t.Fatalf("unexpected valid metrics: %v", valid)
	}
	if len(unknown) != 1 || unknown[0] != "sound_pressure" {
		t.Fatalf("unexpected unknown metrics: %v", unknown)
	}
}

func TestNormalizeMetricsDedupes(t *testing.T) {
	valid, _ := NormalizeMetrics([]string{"revenue", "Revenue", " revenue "})
	if len(valid) != 1 {
		t.Fatalf("expected deduped metrics, got %v", valid)
	}
}

func TestValidEventType(t *testing.T) {
	for _, tt := range []struct {
		in string
		ok bool
	}{
		{TypeSPL, true},
		{TypeSQ, true},
		{TypeShow, true},
		{"spl", false},
		{"Demo", false},
	} {
		if got := ValidEventType(tt.in); got != tt.ok {
			t.Fatalf("ValidEventType(%q) = %v, want %v", tt.in, got, tt.ok)
		}
	}
}

func TestNewIDUniqueUnderConcurrency(t *testing.T) {
	const n = 200

	var mu sync.Mutex
	seen := make(map[string]struct{}, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := NewID(EventIDPrefix)
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("expected %d unique ids, got %d", n, len(seen))
	}
	for id := range seen {
		if !strings.HasPrefix(id, "evt_") {
			t.Fatalf("unexpected id format %q", id)
		}
	}
}
