package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/menisim/internal/meniscus"
)

// CSVHeader is the first line of every profile CSV.
const CSVHeader = "r,z"

// Output is the structured result handed to a calling environment.
type Output struct {
	X   []float64 `json:"x"`
	Y   []float64 `json:"y"`
	CSV string    `json:"csv"`
}

func NewOutput(prof *meniscus.Profile) Output {
	return Output{
		X:   prof.R,
		Y:   prof.Z,
		CSV: CSV(prof.R, prof.Z),
	}
}

// CSV renders r and z as "r,z" lines with 12 significant digits, each
// newline-terminated.
func CSV(r, z []float64) string {
	var sb strings.Builder
	_ = WriteCSV(&sb, r, z)
	return sb.String()
}

func WriteCSV(w io.Writer, r, z []float64) error {
	if len(r) != len(z) {
		return fmt.Errorf("export: length mismatch: %d radii, %d heights", len(r), len(z))
	}
	if _, err := io.WriteString(w, CSVHeader+"\n"); err != nil {
		return err
	}
	for i := range r {
		if _, err := fmt.Fprintf(w, "%.12g,%.12g\n", r[i], z[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadCSV parses a profile written by WriteCSV. Lines starting with '#' are
// skipped, so a commented header is accepted too.
func ReadCSV(rd io.Reader) ([]float64, []float64, error) {
	cr := csv.NewReader(rd)
	cr.Comment = '#'
	cr.FieldsPerRecord = 2

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) > 0 && records[0][0] == "r" {
		records = records[1:]
	}

	r := make([]float64, 0, len(records))
	z := make([]float64, 0, len(records))
	for i, rec := range records {
		rv, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("export: row %d: %w", i+1, err)
		}
		zv, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("export: row %d: %w", i+1, err)
		}
		r = append(r, rv)
		z = append(z, zv)
	}
	return r, z, nil
}
