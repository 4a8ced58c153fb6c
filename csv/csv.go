// Package csv reads profile URLs from and writes profiles to CSV files.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/coachdir"
	"github.com/fwojciec/coachdir/fs"
)

// byteOrderMark is written by spreadsheet exports and stripped on read.
const byteOrderMark = "\ufeff"

var (
	_ coachdir.URLReader     = (*URLReader)(nil)
	_ coachdir.ProfileWriter = (*ProfileWriter)(nil)
)

// URLReader reads the URL column from a CSV file with a header row.
type URLReader struct {
	Path   string
	Column string
}

// NewURLReader creates a URLReader for the named header column.
func NewURLReader(path, column string) *URLReader {
	return &URLReader{Path: path, Column: column}
}

// ReadURLs returns the non-blank values below the header of the URL column.
// Returns EINVALID if the column does not exist.
func (r *URLReader) ReadURLs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", r.Path, err)
	}
	defer file.Close()

	cr := csv.NewReader(file)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, coachdir.Errorf(coachdir.EINVALID, "%s has no header row", r.Path)
	} else if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.Path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], byteOrderMark)
	}

	col := -1
	for i, h := range header {
		if strings.TrimSpace(h) == r.Column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, coachdir.Errorf(coachdir.EINVALID, "column %q not found in %s; available columns: %s",
			r.Column, r.Path, strings.Join(header, ", "))
	}

	var urls []string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("reading %s: %w", r.Path, err)
		}
		if col >= len(record) {
			continue
		}
		if v := strings.TrimSpace(record[col]); v != "" {
			urls = append(urls, v)
		}
	}
	return urls, nil
}

// ProfileWriter writes profiles to a CSV file. The file is replaced
// atomically.
type ProfileWriter struct {
	Path string
}

// NewProfileWriter creates a ProfileWriter for path.
func NewProfileWriter(path string) *ProfileWriter {
	return &ProfileWriter{Path: path}
}

// WriteProfiles writes a header row and one row per profile.
func (w *ProfileWriter) WriteProfiles(ctx context.Context, profiles []coachdir.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records := make([][]string, 0, len(profiles)+1)
	records = append(records, coachdir.Columns())
	for _, p := range profiles {
		records = append(records, p.Row())
	}

	return fs.WriteAtomic(w.Path, func(tmp string) error {
		file, err := os.Create(tmp)
		if err != nil {
			return err
		}
		if err := csv.NewWriter(file).WriteAll(records); err != nil {
			file.Close()
			return fmt.Errorf("writing %s: %w", w.Path, err)
		}
		return file.Close()
	})
}
