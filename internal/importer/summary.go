package importer

import (
	"fmt"
	"os"
	"time"
)

// Summary is one line of the plain-text import log kept by the standalone
// conversion tool.
type Summary struct {
	Time    time.Time
	File    string
	Rows    int
	Headers int
	Result  Result
	Err     error
}

// AppendSummary appends one human-readable line per run to the log file,
// creating it on first use.
func AppendSummary(path string, s Summary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open import log: %w", err)
	}
	defer f.Close()

	status := "ok"
	if s.Err != nil {
		status = "failed: " + s.Err.Error()
	}
	_, err = fmt.Fprintf(f, "%s file=%s rows=%d headers=%d products=%d variants=%d conversions=%d skipped=%d status=%s\n",
		s.Time.Format(time.RFC3339), s.File, s.Rows, s.Headers,
		s.Result.Products, s.Result.Variants, s.Result.Conversions, s.Result.SkippedRows, status)
	if err != nil {
		return fmt.Errorf("append import log: %w", err)
	}
	return nil
}
