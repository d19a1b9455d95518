package metrics

import (
	"strings"
	"sync"
	"testing"
)

func TestCounter(t *testing.T) {
	r := New()
	c := r.Counter("requests_total", "requests made")
	c.Inc()
	c.Add(4)
	if got := c.Value(); got != 5 {
		t.Errorf("value = %d, want 5", got)
	}
	if again := r.Counter("requests_total", ""); again != c {
		t.Error("same name should return the same counter")
	}
}

func TestGauge(t *testing.T) {
	r := New()
	g := r.Gauge("queue_depth", "items queued")
	g.Set(7)
	g.Inc()
	if got := g.Value(); got != 8 {
		t.Errorf("value = %d, want 8", got)
	}
}

func TestRender(t *testing.T) {
	r := New()
	r.Counter("b_total", "second").Add(2)
	r.Gauge("a_depth", "first").Set(1)

	out := r.Render()
	if !strings.Contains(out, "# HELP a_depth first") {
		t.Errorf("missing help line:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE a_depth gauge") ||
		!strings.Contains(out, "# TYPE b_total counter") {
		t.Errorf("missing type lines:\n%s", out)
	}
	if !strings.Contains(out, "a_depth 1\n") || !strings.Contains(out, "b_total 2\n") {
		t.Errorf("missing samples:\n%s", out)
	}
	// Sorted by name.
	if strings.Index(out, "a_depth") > strings.Index(out, "b_total") {
		t.Errorf("names not sorted:\n%s", out)
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Counter("hits_total", "").Inc()
			}
		}()
	}
	wg.Wait()
	if got := r.Counter("hits_total", "").Value(); got != 800 {
		t.Errorf("value = %d, want 800", got)
	}
}
