package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/namehunt/internal/model"
)

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistoryWithWidth(&buf, nil, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No hunts recorded.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}

func TestRenderHistorySummary(t *testing.T) {
	hunts := []model.HuntRecord{
		{EndedAt: time.Unix(100, 0), Attempts: 100, Available: 1, Taken: 90},
		{EndedAt: time.Unix(200, 0), Attempts: 300, Available: 3, Taken: 250},
	}
	var buf bytes.Buffer
	if err := RenderHistoryWithWidth(&buf, hunts, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Hunts: 2",
		"Attempts: 400",
		"Available: 4",
		"Taken: 340",
		"Hit rate: 1.00%",
		"Best hunt: 3 found",
		"Found per hunt:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderHistoryTrimsToWidth(t *testing.T) {
	hunts := make([]model.HuntRecord, 10)
	for i := range hunts {
		hunts[i] = model.HuntRecord{EndedAt: time.Unix(int64(i), 0), Attempts: 10, Available: i}
	}
	var buf bytes.Buffer
	if err := RenderHistoryWithWidth(&buf, hunts, 4); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	spark := strings.TrimPrefix(last, "Found per hunt: ")
	if len(spark) != 4 {
		t.Fatalf("expected sparkline trimmed to 4 chars, got %q", spark)
	}
}

func TestHitRate(t *testing.T) {
	if got := HitRate(0, 0); got != 0 {
		t.Fatalf("expected 0 for no attempts, got %f", got)
	}
	if got := HitRate(200, 5); got != 0.025 {
		t.Fatalf("expected 0.025, got %f", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	flat := Sparkline([]float64{2, 2, 2})
	if len(flat) != 3 {
		t.Fatalf("expected 3 chars, got %q", flat)
	}
	if flat != strings.Repeat(string(flat[0]), 3) {
		t.Fatalf("expected uniform sparkline for flat values, got %q", flat)
	}
	ramp := Sparkline([]float64{0, 5, 10})
	if len(ramp) != 3 {
		t.Fatalf("expected 3 chars, got %q", ramp)
	}
	if ramp[0] != sparkChars[0] || ramp[2] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("expected full range in sparkline, got %q", ramp)
	}
}
