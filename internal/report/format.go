package report

import (
	"encoding/json"
	"fmt"
	"io"

	"lapwatch/internal/stopwatch"
)

// FormatText writes the summary in human-readable format.
func FormatText(w io.Writer, s *Summary) {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "lapwatch - Session Summary")
	fmt.Fprintln(w, "==========================")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Elapsed: %s\n", stopwatch.FormatDuration(s.Elapsed))
	fmt.Fprintf(w, "Laps:    %d\n", len(s.Laps))

	if len(s.Laps) == 0 {
		return
	}

	fmt.Fprintln(w, "")
	for _, lap := range s.Laps {
		fmt.Fprintln(w, "  "+stopwatch.FormatLap(lap))
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Splits:")
	fmt.Fprintf(w, "  Fastest: %s (lap %02d)\n", stopwatch.FormatDuration(s.Splits.Min), s.Splits.Fastest)
	fmt.Fprintf(w, "  Slowest: %s (lap %02d)\n", stopwatch.FormatDuration(s.Splits.Max), s.Splits.Slowest)
	fmt.Fprintf(w, "  Average: %s\n", stopwatch.FormatDuration(s.Splits.Avg))
}

// FormatJSON writes the summary in JSON format.
func FormatJSON(w io.Writer, s *Summary) error {
	output := struct {
		Elapsed   string     `json:"elapsed"`
		ElapsedMS int64      `json:"elapsedMs"`
		Laps      []jsonLap  `json:"laps"`
		Splits    *jsonStats `json:"splits,omitempty"`
	}{
		Elapsed:   stopwatch.FormatDuration(s.Elapsed),
		ElapsedMS: s.Elapsed.Milliseconds(),
		Laps:      make([]jsonLap, 0, len(s.Laps)),
	}

	for _, lap := range s.Laps {
		output.Laps = append(output.Laps, jsonLap{
			Index:   lap.Index,
			Total:   stopwatch.FormatDuration(lap.Total),
			Split:   stopwatch.FormatDuration(lap.Split),
			TotalMS: lap.Total.Milliseconds(),
			SplitMS: lap.Split.Milliseconds(),
		})
	}

	if len(s.Laps) > 0 {
		output.Splits = &jsonStats{
			Fastest: s.Splits.Fastest,
			Slowest: s.Splits.Slowest,
			Min:     stopwatch.FormatDuration(s.Splits.Min),
			Max:     stopwatch.FormatDuration(s.Splits.Max),
			Avg:     stopwatch.FormatDuration(s.Splits.Avg),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

type jsonLap struct {
	Index   int    `json:"index"`
	Total   string `json:"total"`
	Split   string `json:"split"`
	TotalMS int64  `json:"totalMs"`
	SplitMS int64  `json:"splitMs"`
}

type jsonStats struct {
	Fastest int    `json:"fastestLap"`
	Slowest int    `json:"slowestLap"`
	Min     string `json:"min"`
	Max     string `json:"max"`
	Avg     string `json:"avg"`
}
