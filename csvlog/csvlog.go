// Package csvlog appends rows of named values to a semicolon separated file.
package csvlog

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
)

// NotAvailable fills columns without a value.
const NotAvailable = "n/a"

// Logger writes one row per Log call. The header is written only when the
// file is created.
type Logger struct {
	f      io.WriteCloser
	w      *csv.Writer
	fields []string
}

// Open opens path for appending.
func Open(path string, fields []string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "opening csv log")
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "opening csv log")
	}
	l := newLogger(f, fields)
	if fi.Size() == 0 {
		if err := l.write(fields); err != nil {
			f.Close()
			return nil, err
		}
	}
	return l, nil
}

func newLogger(f io.WriteCloser, fields []string) *Logger {
	w := csv.NewWriter(f)
	w.Comma = ';'
	return &Logger{
		f:      f,
		w:      w,
		fields: append([]string(nil), fields...),
	}
}

// Log writes values in column order. Columns missing in values are filled
// with NotAvailable, keys without a column are ignored.
func (l *Logger) Log(values map[string]string) error {
	row := make([]string, len(l.fields))
	for i, k := range l.fields {
		v, ok := values[k]
		if !ok {
			v = NotAvailable
		}
		row[i] = v
	}
	return l.write(row)
}

func (l *Logger) write(row []string) error {
	if err := l.w.Write(row); err != nil {
		return errors.Wrap(err, "writing csv log")
	}
	l.w.Flush()
	return errors.Wrap(l.w.Error(), "writing csv log")
}

// Close closes the file.
func (l *Logger) Close() error {
	return l.f.Close()
}
