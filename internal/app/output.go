package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/NivBraz/wordtally/internal/config"
	"github.com/NivBraz/wordtally/internal/models"
)

// WriteResult renders result as JSON or as plain text lines
func WriteResult(w io.Writer, result *models.Result, format string, pretty bool) error {
	if format == config.FormatText {
		return writeText(w, result)
	}

	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(result, "", "    ")
	} else {
		out, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeText(w io.Writer, result *models.Result) error {
	ew := &errWriter{w: w}

	if len(result.Queries) > 0 {
		for _, q := range result.Queries {
			mode := "case-insensitive"
			if q.CaseSensitive {
				mode = "case-sensitive"
			}
			ew.printf("%s (%s): %d\n", q.Word, mode, q.Count)
		}
		return ew.err
	}

	for _, wc := range result.Words {
		ew.printf("%s: %d\n", wc.Word, wc.Count)
	}
	if len(result.TopWords) > 0 {
		ew.printf("\ntop %d:\n", len(result.TopWords))
		for i, wc := range result.TopWords {
			ew.printf("%2d. %s (%d)\n", i+1, wc.Word, wc.Count)
		}
	}
	if s := result.Stats; s != nil {
		ew.printf("\n%d distinct, %d total, %d sources ok, %d failed, %dms\n",
			s.DistinctWords, s.TotalWords, s.SourcesProcessed, s.SourcesFailed, s.TimeElapsed)
	}
	return ew.err
}

// errWriter keeps the first write error and skips later writes
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
