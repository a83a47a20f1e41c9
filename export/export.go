// Package export writes and reads feature lists in the flat CSV exchange
// format: one row per feature with label, wavelength, and intensity.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cwbudde/algo-spectra/spectra/feature"
)

var header = []string{"Peak #", "Wavelength (nm)", "Intensity (a.u.)"}

// WriteCSV writes feats with a header row. Wavelength and intensity are
// formatted to one decimal place.
func WriteCSV(w io.Writer, feats []feature.Feature) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, f := range feats {
		row := []string{
			strconv.Itoa(f.Label),
			strconv.FormatFloat(f.Wavelength, 'f', 1, 64),
			strconv.FormatFloat(f.Intensity, 'f', 1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row for %s: %w", f.DisplayLabel(), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the format written by [WriteCSV]. Feature kinds are not
// part of the flat format; all rows read back as classical.
func ReadCSV(r io.Reader) ([]feature.Feature, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("export: read: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export: empty input, expected a header row")
	}

	out := make([]feature.Feature, 0, len(records)-1)
	for i, rec := range records[1:] {
		label, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("export: row %d: bad label %q: %w", i+1, rec[0], err)
		}
		wavelength, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("export: row %d: bad wavelength %q: %w", i+1, rec[1], err)
		}
		intensity, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("export: row %d: bad intensity %q: %w", i+1, rec[2], err)
		}
		out = append(out, feature.Feature{
			Label:      label,
			Wavelength: wavelength,
			Intensity:  intensity,
			Kind:       feature.KindClassical,
		})
	}
	return out, nil
}
