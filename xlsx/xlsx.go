// Package xlsx reads profile URLs from and writes profiles to Excel
// workbooks using excelize.
package xlsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/coachdir"
	"github.com/fwojciec/coachdir/fs"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the sheet profiles are written to.
const SheetName = "Profiles"

// columnWidth is applied to every output column.
const columnWidth = 30

var (
	_ coachdir.URLReader     = (*URLReader)(nil)
	_ coachdir.ProfileWriter = (*ProfileWriter)(nil)
)

// URLReader reads the URL column from the first sheet of a workbook.
type URLReader struct {
	Path   string
	Column string
}

// NewURLReader creates a URLReader for the named header column.
func NewURLReader(path, column string) *URLReader {
	return &URLReader{Path: path, Column: column}
}

// ReadURLs returns the non-blank cells below the header of the URL column.
// Returns EINVALID if the column does not exist.
func (r *URLReader) ReadURLs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", r.Path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, coachdir.Errorf(coachdir.EINVALID, "%s has no sheets", r.Path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.Path, err)
	}
	if len(rows) == 0 {
		return nil, coachdir.Errorf(coachdir.EINVALID, "%s has no header row", r.Path)
	}

	col := headerIndex(rows[0], r.Column)
	if col < 0 {
		return nil, coachdir.Errorf(coachdir.EINVALID, "column %q not found in %s; available columns: %s",
			r.Column, r.Path, strings.Join(rows[0], ", "))
	}

	var urls []string
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[col]); v != "" {
			urls = append(urls, v)
		}
	}
	return urls, nil
}

func headerIndex(header []string, column string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == column {
			return i
		}
	}
	return -1
}

// ProfileWriter writes profiles to a single-sheet workbook.
// The file is replaced atomically.
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
	return fs.WriteAtomic(w.Path, func(tmp string) error {
		f, err := build(profiles)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.SaveAs(tmp); err != nil {
			return fmt.Errorf("saving %s: %w", w.Path, err)
		}
		return nil
	})
}

func build(profiles []coachdir.Profile) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, err
	}

	if err := setRow(f, 1, coachdir.Columns()); err != nil {
		f.Close()
		return nil, err
	}
	for i, p := range profiles {
		if err := setRow(f, i+2, p.Row()); err != nil {
			f.Close()
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		f.Close()
		return nil, err
	}

	last, err := excelize.ColumnNumberToName(len(coachdir.Columns()))
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "A", last, columnWidth); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(SheetName, cell, &cells)
}
