/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package ldifparser

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsSubsystemParser = "parser"
)

type parserCollector struct {
	stats *Stats

	linesDesc         *prometheus.Desc
	entriesDesc       *prometheus.Desc
	attributesDesc    *prometheus.Desc
	commentsDesc      *prometheus.Desc
	continuationsDesc *prometheus.Desc
	binaryValuesDesc  *prometheus.Desc
}

// NewParserCollector creates a prometheus collector exposing the parse
// counters of the provided parser. The parser must have stats enabled.
func NewParserCollector(p *Parser) prometheus.Collector {
	return &parserCollector{
		stats: p.Stats,

		linesDesc: prometheus.NewDesc(
			prometheus.BuildFQName("", metricsSubsystemParser, "lines_total"),
			"Total number of raw input lines consumed",
			nil,
			nil,
		),
		entriesDesc: prometheus.NewDesc(
			prometheus.BuildFQName("", metricsSubsystemParser, "entries_total"),
			"Total number of entries begun",
			nil,
			nil,
		),
		attributesDesc: prometheus.NewDesc(
			prometheus.BuildFQName("", metricsSubsystemParser, "attributes_total"),
			"Total number of attribute values emitted",
			nil,
			nil,
		),
		commentsDesc: prometheus.NewDesc(
			prometheus.BuildFQName("", metricsSubsystemParser, "comments_total"),
			"Total number of comment lines skipped",
			nil,
			nil,
		),
		continuationsDesc: prometheus.NewDesc(
			prometheus.BuildFQName("", metricsSubsystemParser, "continuations_total"),
			"Total number of folded continuation lines consumed",
			nil,
			nil,
		),
		binaryValuesDesc: prometheus.NewDesc(
			prometheus.BuildFQName("", metricsSubsystemParser, "binary_values_total"),
			"Total number of base64 marked values decoded",
			nil,
			nil,
		),
	}
}

// Describe is implemented with DescribeByCollect. That's possible because
// the Collect method always returns the same metrics with the same
// descriptors.
func (pc *parserCollector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(pc, ch)
}

// Collect first clones the parser's counters, then creates constant metrics
// based on the cloned data.
func (pc *parserCollector) Collect(ch chan<- prometheus.Metric) {
	stats := pc.stats.Clone()
	if stats == nil {
		return
	}

	ch <- prometheus.MustNewConstMetric(
		pc.linesDesc,
		prometheus.CounterValue,
		float64(stats.Lines),
	)

	ch <- prometheus.MustNewConstMetric(
		pc.entriesDesc,
		prometheus.CounterValue,
		float64(stats.Entries),
	)

	ch <- prometheus.MustNewConstMetric(
		pc.attributesDesc,
		prometheus.CounterValue,
		float64(stats.Attributes),
	)

	ch <- prometheus.MustNewConstMetric(
		pc.commentsDesc,
		prometheus.CounterValue,
		float64(stats.Comments),
	)

	ch <- prometheus.MustNewConstMetric(
		pc.continuationsDesc,
		prometheus.CounterValue,
		float64(stats.Continuations),
	)

	ch <- prometheus.MustNewConstMetric(
		pc.binaryValuesDesc,
		prometheus.CounterValue,
		float64(stats.BinaryValues),
	)
}
