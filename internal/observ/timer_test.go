package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	timer := NewTimer()

	idx := timer.Begin("decode")
	time.Sleep(time.Millisecond)
	timer.End(idx, "3 trees")

	timer.Track("analyze", func() string {
		time.Sleep(time.Millisecond)
		return ""
	})

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "decode" || report.Phases[0].Note != "3 trees" {
		t.Errorf("first phase = %+v", report.Phases[0])
	}
	if report.Phases[0].DurationMS <= 0 || report.TotalMS < report.Phases[0].DurationMS {
		t.Errorf("report durations = %+v", report)
	}

	summary := timer.Summary()
	for _, want := range []string{"decode", "analyze", "total", "// 3 trees"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(0, "nope")
	timer.End(-1, "nope")
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Errorf("phases = %+v", got.Phases)
	}
}
