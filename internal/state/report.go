package state

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/dandelion9999/protein-floor-tracker/internal/model"
)

// WeekReport renders the current week (Monday start, in now's location) as
// CSV: seven rows of date,calories,protein,carbs,fat, one decimal place.
func WeekReport(env model.StateEnvelope, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"date", "calories", "protein", "carbs", "fat"}); err != nil {
		return nil, fmt.Errorf("write report header: %w", err)
	}

	start := mondayOf(now)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		total := env.TotalForDay(day)
		record := []string{
			day.Format("2006-01-02"),
			formatRounded(total.Calories),
			formatRounded(total.Protein),
			formatRounded(total.Carbs),
			formatRounded(total.Fat),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush report: %w", err)
	}
	return buf.Bytes(), nil
}

func formatRounded(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func mondayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
