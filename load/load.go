// Package load reads two-column spectrum data from instrument exports.
//
// The parser is deliberately forgiving: comma, semicolon, tab, and
// whitespace separated files all work, header and comment lines are
// skipped, and decimal commas (common in European instrument software) are
// accepted when the field carries no thousands separator ambiguity.
package load

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-spectra/spectra/signal"
)

// ErrNoData indicates no parsable two-column rows were found.
var ErrNoData = errors.New("load: no numeric two-column rows found")

// ReadFile loads samples from a file.
func ReadFile(path string) ([]signal.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	samples, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	return samples, nil
}

// Read parses samples from two-column text. Lines without two leading
// numeric fields (headers, units, comments) are skipped; extra columns
// beyond the first two are ignored.
func Read(r io.Reader) ([]signal.Sample, error) {
	var out []signal.Sample

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		fields := splitColumns(line)
		if len(fields) < 2 {
			continue
		}

		wavelength, ok1 := parseNumber(fields[0])
		intensity, ok2 := parseNumber(fields[1])
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, signal.Sample{Wavelength: wavelength, Intensity: intensity})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}

func splitColumns(line string) []string {
	for _, sep := range []string{"\t", ";", ","} {
		if strings.Contains(line, sep) {
			parts := strings.Split(line, sep)
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts
		}
	}
	return strings.Fields(line)
}

func parseNumber(field string) (float64, bool) {
	v, err := strconv.ParseFloat(field, 64)
	if err == nil {
		return v, true
	}
	// Decimal comma fallback: only when there is exactly one comma, so
	// "1,234,5" style garbage stays rejected.
	if strings.Count(field, ",") == 1 {
		v, err = strconv.ParseFloat(strings.Replace(field, ",", ".", 1), 64)
		if err == nil {
			return v, true
		}
	}
	return 0, false
}
