// Package report renders hunt history summaries.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/namehunt/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
)

// HitRate returns the share of attempts that came back available.
func HitRate(attempts, available int) float64 {
	if attempts <= 0 {
		return 0
	}
	return float64(available) / float64(attempts)
}

// RenderHistory prints a summary of past hunts plus a found-per-hunt
// sparkline sized to the terminal.
func RenderHistory(w io.Writer, hunts []model.HuntRecord) error {
	return RenderHistoryWithWidth(w, hunts, terminalWidth())
}

// RenderHistoryWithWidth prints the history summary using a fixed width.
func RenderHistoryWithWidth(w io.Writer, hunts []model.HuntRecord, width int) error {
	if len(hunts) == 0 {
		_, err := fmt.Fprintln(w, "No hunts recorded.")
		return err
	}

	var totalAttempts, totalAvailable, totalTaken int
	bestAvailable := 0
	for _, h := range hunts {
		totalAttempts += h.Attempts
		totalAvailable += h.Available
		totalTaken += h.Taken
		if h.Available > bestAvailable {
			bestAvailable = h.Available
		}
	}

	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Hunts: %d\n", len(hunts)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Attempts: %d\n", totalAttempts); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Available: %d\n", totalAvailable); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Taken: %d\n", totalTaken); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Hit rate: %.2f%%\n", HitRate(totalAttempts, totalAvailable)*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best hunt: %d found\n", bestAvailable); err != nil {
		return err
	}

	values := make([]float64, len(hunts))
	for i, h := range hunts {
		values[i] = float64(h.Available)
	}
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	if _, err := fmt.Fprintf(w, "Found per hunt: %s\n", Sparkline(values)); err != nil {
		return err
	}
	return nil
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
