package series

import (
	"encoding/csv"
	"github.com/araddon/dateparse"
	"github.com/kadaan/linedensity/lib/errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	DefaultFilePattern = regexp.MustCompile(`(?i)\.csv$`)
)

// ParseTimestamp accepts a plain number or any date format understood by
// dateparse, which is converted to unix milliseconds.
func ParseTimestamp(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f, nil
	}
	t, err := dateparse.ParseStrict(v)
	if err != nil {
		return 0, err
	}
	return float64(t.UnixMilli()), nil
}

// ReadCSV tokenizes the first limit data rows of r, or every row when limit
// is not positive. Rows must have a timestamp and a value column; extra
// columns are ignored.
func ReadCSV(name string, r io.Reader, hasHeader bool, limit int) (Raw, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	raw := Raw{Name: name, Points: make([]Point, 0, max(limit, 0))}
	line := 0
	for limit <= 0 || len(raw.Points) < limit {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return Raw{}, errors.WrapDataError(err, "failed to read %s", name)
		}
		if hasHeader && line == 1 {
			continue
		}
		if len(record) < 2 {
			return Raw{}, errors.NewDataError("%s line %d has %d column(s), need 2", name, line, len(record))
		}
		t, err := ParseTimestamp(record[0])
		if err != nil {
			return Raw{}, errors.WrapDataError(err, "%s line %d has invalid timestamp %q", name, line, record[0])
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return Raw{}, errors.WrapDataError(err, "%s line %d has invalid value %q", name, line, record[1])
		}
		raw.Points = append(raw.Points, Point{T: t, V: v})
	}
	if limit > 0 && len(raw.Points) < limit {
		return Raw{}, errors.NewDataError("%s has %d data rows, need %d", name, len(raw.Points), limit)
	}
	return raw, nil
}

// ListFiles returns the regular files of dir whose names match pattern,
// sorted by name.
func ListFiles(dir string, pattern *regexp.Regexp) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapDataError(err, "failed to list %s", dir)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if pattern != nil && !pattern.MatchString(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// LoadCSVDirectory reads count files from dir, limit rows each. A limit that
// is not positive reads every row.
func LoadCSVDirectory(dir string, pattern *regexp.Regexp, count int, hasHeader bool, limit int) ([]Raw, error) {
	files, err := ListFiles(dir, pattern)
	if err != nil {
		return nil, err
	}
	if len(files) < count {
		return nil, errors.NewDataError("%s has %d matching file(s), need %d", dir, len(files), count)
	}
	raws := make([]Raw, 0, count)
	for _, file := range files[:count] {
		raw, err := readCSVFile(file, hasHeader, limit)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func readCSVFile(file string, hasHeader bool, limit int) (Raw, error) {
	f, err := os.Open(file)
	if err != nil {
		return Raw{}, errors.WrapDataError(err, "failed to open %s", file)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	return ReadCSV(filepath.Base(file), f, hasHeader, limit)
}
