package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	// StatusSuccess marks a pair whose enabled steps all succeeded.
	StatusSuccess = "Success"
	// StatusFailed marks a pair with at least one failed step.
	StatusFailed = "Failed"

	logFileFormat   = "migration_log_%s.csv"
	runLogFormat    = "migration_%s.log"
	fileStampLayout = "20060102_150405"
)

// Header is the first row of every migration log.
var Header = []string{"Timestamp", "Source Repo", "Target Repo", "Status", "Error"}

// Record is one row of the migration log, describing the outcome of a single pair.
type Record struct {
	Timestamp time.Time
	Source    string
	Target    string
	Status    string
	Error     string
}

func (r Record) row() []string {
	return []string{r.Timestamp.Format(time.RFC3339), r.Source, r.Target, r.Status, r.Error}
}

// Sink receives one record per processed pair.
type Sink interface {
	Append(record Record) error
}

// MigrationLog is the CSV log of a single run.
type MigrationLog struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	writer *csv.Writer
}

// RunLogPath returns the path of the structured run log that accompanies the CSV log.
func RunLogPath(dir string, runTime time.Time) string {
	return filepath.Join(dir, fmt.Sprintf(runLogFormat, runTime.Format(fileStampLayout)))
}

// NewMigrationLog creates dir if needed, then creates the log file named after
// runTime and writes the header row.
func NewMigrationLog(dir string, runTime time.Time) (*MigrationLog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf(logFileFormat, runTime.Format(fileStampLayout)))

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration log: %w", err)
	}

	log := &MigrationLog{path: path, file: file, writer: csv.NewWriter(file)}

	if err := log.write(Header); err != nil {
		file.Close()
		return nil, err
	}

	return log, nil
}

// Path returns the location of the log file.
func (l *MigrationLog) Path() string {
	return l.path
}

// Append writes one record and flushes it to disk.
func (l *MigrationLog) Append(record Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.write(record.row())
}

func (l *MigrationLog) write(row []string) error {
	if err := l.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write migration log: %w", err)
	}

	l.writer.Flush()
	if err := l.writer.Error(); err != nil {
		return fmt.Errorf("failed to flush migration log: %w", err)
	}

	return nil
}

// Close flushes any buffered rows and closes the file.
func (l *MigrationLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.writer.Flush()
	if err := l.writer.Error(); err != nil {
		l.file.Close()
		return err
	}

	return l.file.Close()
}

// Multi fans every record out to each of the given sinks, stopping at the first error.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Append(record Record) error {
	for _, sink := range m {
		if err := sink.Append(record); err != nil {
			return err
		}
	}

	return nil
}

// BestEffort wraps sink so that its errors are handed to onError instead of
// being returned. Use it for sinks whose failure must not stop a run.
func BestEffort(sink Sink, onError func(Record, error)) Sink {
	return bestEffortSink{sink: sink, onError: onError}
}

type bestEffortSink struct {
	sink    Sink
	onError func(Record, error)
}

func (b bestEffortSink) Append(record Record) error {
	if err := b.sink.Append(record); err != nil && b.onError != nil {
		b.onError(record, err)
	}

	return nil
}
