package fpbench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WriteTable writes rows as comma separated load,mean,min,max lines. There
// is no header; consumers match columns by position.
func WriteTable(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	record := make([]string, 4)
	for _, r := range rows {
		record[0] = formatFloat(r.Load)
		record[1] = formatFloat(r.Mean)
		record[2] = formatFloat(r.Min)
		record[3] = formatFloat(r.Max)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("fpbench: write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("fpbench: flush table: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FileName returns the table file name for an implementation name.
// Characters that are awkward in file names become '_'.
func FileName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '.' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return clean + ".csv"
}

// WriteCSV writes the curve's table to dir, creating dir if needed, and
// returns the path of the written file.
func (c Curve) WriteCSV(dir string) (path string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("fpbench: create output dir: %w", err)
	}
	path = filepath.Join(dir, FileName(c.Name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("fpbench: create table: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("fpbench: close table: %w", cerr)
		}
	}()
	if err := WriteTable(f, c.Rows); err != nil {
		return "", err
	}
	return path, nil
}
