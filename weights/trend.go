package weights

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// TrendRow is one line of the trend log: the weights after a decision.
type TrendRow struct {
	Episode int
	Weights Vector
}

// TrendLog is an append-only CSV with one row per completed decision:
// the episode index followed by one column per weight.
type TrendLog struct {
	path    string
	episode int
}

// OpenTrendLog prepares a trend log at path. When the file already exists,
// episode numbering continues after its last row.
func OpenTrendLog(path string) (*TrendLog, error) {
	t := &TrendLog{path: path}

	rows, err := ReadTrend(path)
	if err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, err
	}
	if len(rows) > 0 {
		t.episode = rows[len(rows)-1].Episode + 1
	}
	return t, nil
}

func (t *TrendLog) Path() string {
	return t.path
}

// Episode returns the index the next appended row will carry.
func (t *TrendLog) Episode() int {
	return t.episode
}

func (t *TrendLog) Append(v Vector) error {
	if dir := filepath.Dir(t.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create directory for %s", t.path)
		}
	}

	fresh := false
	info, err := os.Stat(t.path)
	if os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		fresh = true
	}

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to open trend log %s", t.path)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if fresh {
		if err := writer.Write(trendHeader(len(v))); err != nil {
			return errors.Wrap(err, "failed to write trend header")
		}
	}

	row := make([]string, 0, len(v)+1)
	row = append(row, strconv.Itoa(t.episode))
	for _, w := range v {
		row = append(row, strconv.FormatFloat(w, 'g', -1, 64))
	}
	if err := writer.Write(row); err != nil {
		return errors.Wrap(err, "failed to write trend row")
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrapf(err, "failed to flush trend log %s", t.path)
	}

	t.episode++
	return nil
}

func trendHeader(n int) []string {
	header := make([]string, 0, n+1)
	header = append(header, "episode")
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("weight_%d", i))
	}
	return header
}

// ReadTrend parses a trend log written by TrendLog.
func ReadTrend(path string) ([]TrendRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open trend log %s", path)
	}
	defer f.Close()

	return readTrend(f)
}

func readTrend(r io.Reader) ([]TrendRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse trend log")
	}

	var rows []TrendRow
	for i, record := range records {
		if i == 0 && len(record) > 0 && record[0] == "episode" {
			continue
		}
		if len(record) == 0 {
			continue
		}
		episode, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, errors.Wrapf(err, "bad episode on line %d", i+1)
		}
		row := TrendRow{Episode: episode, Weights: make(Vector, 0, len(record)-1)}
		for _, field := range record[1:] {
			w, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "bad weight on line %d", i+1)
			}
			row.Weights = append(row.Weights, w)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
