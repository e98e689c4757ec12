// Package tsv converts datapoints to and from the tab-separated table the
// edit workflow hands to the user's editor.
//
// The format is deliberately bare: no quoting or escaping is performed, so a
// comment containing a tab or newline will corrupt the round-trip. That is a
// documented limitation of the format, not something the codec repairs.
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/felixmde/beeline/internal/beeminder"
)

// Header is the fixed first line of every table.
const Header = "TIMESTAMP\tVALUE\tCOMMENT\tID"

// timeLayout formats timestamps at second granularity in the caller's zone.
const timeLayout = "2006-01-02 15:04:05"

// Row is one edited table line. An empty ID marks a row the user added, so
// reconciliation turns it into a create rather than an update.
type Row struct {
	ID        string
	Timestamp time.Time // UTC
	Value     float64
	Comment   string
}

// Encode writes the header and one line per datapoint, preserving input
// order. Timestamps are rendered in loc so the editor shows local time; the
// zone is an explicit parameter to keep the codec deterministic under test.
func Encode(w io.Writer, dps []beeminder.Datapoint, loc *time.Location) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return err
	}
	for _, dp := range dps {
		ts := dp.Timestamp.In(loc).Format(timeLayout)
		value := strconv.FormatFloat(dp.Value, 'f', -1, 64)
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n", ts, value, dp.Comment, dp.ID); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses an edited table back into rows. The first line is dropped
// unconditionally as the header. Timestamp and value are required on every
// remaining line; a malformed line fails the whole decode so a broken edit
// never half-applies. Blank lines are not skipped — they hit the same error
// path. A missing or empty ID field normalizes to "no id".
func Decode(r io.Reader, loc *time.Location) ([]Row, error) {
	sc := bufio.NewScanner(r)
	sc.Scan() // header

	var rows []Row
	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		fields := strings.SplitN(text, "\t", 4)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: missing value field in %q", line, text)
		}
		ts, err := time.ParseInLocation(timeLayout, fields[0], loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad timestamp in %q: %w", line, text, err)
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad value in %q: %w", line, text, err)
		}

		row := Row{Timestamp: ts.UTC(), Value: value}
		if len(fields) > 2 {
			row.Comment = fields[2]
		}
		if len(fields) > 3 {
			row.ID = fields[3]
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return rows, nil
}
