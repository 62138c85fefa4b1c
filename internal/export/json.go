package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/menisim/internal/meniscus"
)

type ExportData struct {
	ID              string             `json:"id,omitempty"`
	Params          meniscus.Params    `json:"params"`
	Integrator      string             `json:"integrator"`
	CapillaryLength float64            `json:"capillary_length"`
	ZMin            float64            `json:"z_min"`
	Iterations      int                `json:"iterations"`
	Residual        float64            `json:"residual"`
	Samples         int                `json:"samples"`
	R               []float64          `json:"r"`
	Z               []float64          `json:"z"`
	Slope           []float64          `json:"slope,omitempty"`
	Metrics         map[string]float64 `json:"metrics,omitempty"`
}

func NewExportData(id string, params meniscus.Params, integrator string, prof *meniscus.Profile, m map[string]float64) ExportData {
	return ExportData{
		ID:              id,
		Params:          params,
		Integrator:      integrator,
		CapillaryLength: prof.CapillaryLength,
		ZMin:            prof.ZMin,
		Iterations:      prof.Iterations,
		Residual:        prof.Residual,
		Samples:         prof.Len(),
		R:               prof.R,
		Z:               prof.Z,
		Slope:           prof.Slope,
		Metrics:         m,
	}
}

func WriteJSON(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}
