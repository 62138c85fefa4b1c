package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/menisim/internal/meniscus"
)

// Chart plots z(r) in millimetres. Profiles longer than width are
// interpolated down by asciigraph.
func Chart(prof *meniscus.Profile, width, height int) string {
	if prof == nil || prof.Len() == 0 {
		return ""
	}
	data := make([]float64, prof.Len())
	for i, z := range prof.Z {
		data[i] = z * 1e3
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("z (mm) over r = 0..%.3g mm", prof.R[prof.Len()-1]*1e3)),
	)
}

// Summary lists the solve diagnostics and metrics, one per line.
func Summary(prof *meniscus.Profile, metrics map[string]float64) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(MetricLabel.Render(fmt.Sprintf("%-18s", label)))
		b.WriteString(MetricValue.Render(value))
		b.WriteString("\n")
	}

	line("capillary length", fmt.Sprintf("%.6g m", prof.CapillaryLength))
	line("z_min", fmt.Sprintf("%.12g", prof.ZMin))
	line("target slope", fmt.Sprintf("%.6g", prof.UGoal))
	line("iterations", fmt.Sprintf("%d", prof.Iterations))
	line("residual", fmt.Sprintf("%.3g", prof.Residual))
	line("samples", fmt.Sprintf("%d", prof.Len()))
	if len(metrics) > 0 {
		b.WriteString(Separator(30) + "\n")
	}

	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		line(name, fmt.Sprintf("%.6g", metrics[name]))
	}
	return b.String()
}
