/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package transfer

import "github.com/prometheus/client_golang/prometheus"

const (
	directionUpload   = "upload"
	directionDownload = "download"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics counts transferred archives and bytes.
type Metrics struct {
	Bytes     *prometheus.CounterVec
	Transfers *prometheus.CounterVec
}

// NewMetrics creates the transfer counters and registers them with reg when
// reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agml",
			Subsystem: "transfer",
			Name:      "bytes_total",
			Help:      "Dataset archive bytes moved to or from blob storage.",
		}, []string{"direction"}),
		Transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agml",
			Name:      "transfers_total",
			Help:      "Dataset archive transfers by direction and outcome.",
		}, []string{"direction", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.Bytes, m.Transfers)
	}
	return m
}

func (m *Metrics) observe(direction string, n int64, err error) {
	if m == nil {
		return
	}
	m.Bytes.WithLabelValues(direction).Add(float64(n))
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	m.Transfers.WithLabelValues(direction, outcome).Inc()
}
