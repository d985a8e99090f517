// Copyright 2026 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package edx

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsScan holds Prometheus metrics for directory scans.
type metricsScan struct {
	once sync.Once

	scans            prometheus.Counter
	files            *prometheus.CounterVec
	skipped          *prometheus.CounterVec
	records          *prometheus.CounterVec
	identifierAbsent prometheus.Counter
	saves            *prometheus.CounterVec

	scanDuration prometheus.Histogram
}

var scanMetrics metricsScan

func (m *metricsScan) init() {
	m.once.Do(func() {
		m.scans = prometheus.NewCounter(prometheus.CounterOpts{Name: "edx_scans_total", Help: "Completed directory scans"})
		m.files = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "edx_scan_files_total", Help: "CSV files visited, by classification"}, []string{"class"})
		m.skipped = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "edx_scan_skipped_total", Help: "Candidate files skipped, by reason"}, []string{"reason"})
		m.records = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "edx_scan_records_total", Help: "Records emitted, by dataset"}, []string{"dataset"})
		m.identifierAbsent = prometheus.NewCounter(prometheus.CounterOpts{Name: "edx_scan_identifier_absent_total", Help: "Processed files without a measurement identifier in their path"})
		m.saves = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "edx_save_files_total", Help: "Dataset files written, by dataset and outcome"}, []string{"dataset", "outcome"})

		buckets := []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}
		m.scanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "edx_scan_seconds", Help: "Duration of a full directory scan", Buckets: buckets})

		prometheus.MustRegister(
			m.scans, m.files, m.skipped, m.records, m.identifierAbsent, m.saves,
			m.scanDuration,
		)
	})
}

func recordFile(class FileClass) { scanMetrics.init(); scanMetrics.files.WithLabelValues(class.String()).Inc() }
func recordSkip(reason string) { scanMetrics.init(); scanMetrics.skipped.WithLabelValues(reason).Inc() }
func recordIdentifierAbsent() { scanMetrics.init(); scanMetrics.identifierAbsent.Inc() }
func recordRecords(dataset string, n int) {
	scanMetrics.init()
	scanMetrics.records.WithLabelValues(dataset).Add(float64(n))
}
func recordSave(dataset string, err error) {
	scanMetrics.init()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	scanMetrics.saves.WithLabelValues(dataset, outcome).Inc()
}
func recordScan(seconds float64) {
	scanMetrics.init()
	scanMetrics.scans.Inc()
	scanMetrics.scanDuration.Observe(seconds)
}
