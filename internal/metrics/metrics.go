// ABOUTME: Prometheus metrics export for completed update-check reports.
// ABOUTME: Writes text exposition files for the node_exporter textfile collector.

package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aghstrategies/check-wp-cli/internal/report"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
)

// Exporter converts a completed report into Prometheus gauges and writes
// them as a textfile-collector exposition file.
type Exporter struct {
	logger   *logrus.Logger
	registry *prometheus.Registry

	pendingUpdates   *prometheus.GaugeVec
	categorySeverity *prometheus.GaugeVec
	overallSeverity  prometheus.Gauge
}

// NewExporter creates an exporter with its own private registry so runs
// never leak state into the default registry.
func NewExporter(logger *logrus.Logger) *Exporter {
	e := &Exporter{
		logger:   logger,
		registry: prometheus.NewRegistry(),

		pendingUpdates: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wordpress_pending_updates",
				Help: "Number of pending updates per category",
			},
			[]string{"category"},
		),

		categorySeverity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wordpress_update_severity",
				Help: "Severity code per category (0=OK, 1=WARNING, 2=CRITICAL, 3=UNKNOWN)",
			},
			[]string{"category"},
		),

		overallSeverity: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordpress_check_severity",
				Help: "Overall severity code of the update check",
			},
		),
	}

	e.registry.MustRegister(e.pendingUpdates, e.categorySeverity, e.overallSeverity)
	return e
}

// Record sets the gauges from a completed report. A clean category counts
// zero pending updates even though it carries one detail line.
func (e *Exporter) Record(rep *report.Report) {
	for _, cat := range rep.Categories {
		pending := len(cat.Lines)
		if cat.NoFindings() {
			pending = 0
		}
		e.pendingUpdates.WithLabelValues(string(cat.Category)).Set(float64(pending))
		e.categorySeverity.WithLabelValues(string(cat.Category)).Set(float64(cat.Severity.Code()))
	}
	e.overallSeverity.Set(float64(rep.Overall.Code()))
}

// WriteFile writes the recorded metrics in text exposition format. The
// file is written to a temp name in the same directory and renamed into
// place so the textfile collector never reads a partial file.
func (e *Exporter) WriteFile(path string) error {
	families, err := e.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp metrics file: %w", err)
	}
	defer os.Remove(tmp.Name())

	encoder := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			tmp.Close()
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp metrics file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming metrics file: %w", err)
	}

	e.logger.WithField("path", path).Debug("Wrote metrics file")
	return nil
}
