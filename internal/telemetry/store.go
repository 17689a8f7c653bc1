// Package telemetry records emitted summaries to daily CSV files for
// offline inspection. It sits outside the data path: write failures are
// logged by the caller and never affect the pipeline.
package telemetry

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/luki/thermopipe/internal/led"
)

const (
	dirName    = ".thermopipe"
	timeLayout = "2006-01-02T15:04:05"
	fileLayout = "2006-01-02"
)

// Record is one telemetry row: a consumed summary and the pattern it
// classified to.
type Record struct {
	Time    time.Time
	Mean    float64
	Samples uint32
	Pattern led.Pattern
}

// Store appends records to <dir>/YYYY-MM-DD.csv with the format:
//
//	time,mean,samples,pattern
type Store struct {
	dir     string
	current *os.File
	writer  *csv.Writer
	curDate string
}

// New creates a store rooted at dir, creating it if needed. An empty
// dir selects ~/.thermopipe.
func New(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot find home dir: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Write appends one record to the day's CSV file, rotating the file at
// midnight.
func (s *Store) Write(rec Record) error {
	dateStr := rec.Time.Format(fileLayout)

	if s.curDate != dateStr || s.current == nil {
		s.Close()
		path := filepath.Join(s.dir, dateStr+".csv")
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		s.current = f
		s.writer = csv.NewWriter(f)
		s.curDate = dateStr

		info, _ := f.Stat()
		if info.Size() == 0 {
			s.writer.Write([]string{"time", "mean", "samples", "pattern"})
		}
	}

	s.writer.Write([]string{
		rec.Time.Format(timeLayout),
		fmt.Sprintf("%.2f", rec.Mean),
		strconv.FormatUint(uint64(rec.Samples), 10),
		rec.Pattern.String(),
	})
	s.writer.Flush()
	return s.writer.Error()
}

// Close flushes and closes the current file.
func (s *Store) Close() {
	if s.writer != nil {
		s.writer.Flush()
	}
	if s.current != nil {
		s.current.Close()
		s.current = nil
	}
}

// Dir returns the store's data directory.
func (s *Store) Dir() string { return s.dir }

// DefaultDir returns the default data directory.
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dirName)
}

// ListDays returns available record dates (newest first). An empty dir
// selects the default directory.
func ListDays(dir string) ([]string, error) {
	if dir == "" {
		dir = DefaultDir()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var days []string
	for i := len(entries) - 1; i >= 0; i-- {
		name := entries[i].Name()
		if strings.HasSuffix(name, ".csv") {
			days = append(days, strings.TrimSuffix(name, ".csv"))
		}
	}
	return days, nil
}

// LoadDay reads all records from a specific day's CSV file.
func LoadDay(dir, day string) ([]Record, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	return LoadFile(filepath.Join(dir, day+".csv"))
}

// LoadFile reads all records from a CSV file. Malformed rows are
// skipped rather than failing the whole load.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var records []Record
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "time" {
			continue
		}
		if len(row) < 4 {
			continue
		}

		t, err := time.ParseInLocation(timeLayout, row[0], time.Local)
		if err != nil {
			continue
		}
		mean, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}
		samples, _ := strconv.ParseUint(row[2], 10, 32)
		pattern, _ := led.ParsePattern(row[3])

		records = append(records, Record{
			Time:    t,
			Mean:    mean,
			Samples: uint32(samples),
			Pattern: pattern,
		})
	}

	return records, nil
}
