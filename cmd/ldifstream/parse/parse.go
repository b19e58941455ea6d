/*
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2025 The LibreGraph Authors.
 */

package parse

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/bombsimon/logrusr/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/libregraph/ldifstream/pkg/ldifentry"
	"github.com/libregraph/ldifstream/pkg/ldifparser"
)

var (
	DefaultLogTimestamp = true
	DefaultLogLevel     = "info"

	DefaultPrintEvents     = false
	DefaultCheckDuplicates = false

	DefaultWithMetrics       = false
	DefaultMetricsListenAddr = "127.0.0.1:6389"

	DefaultEnvBase = "LDIFSTREAM_"
)

func setDefaults() {
	envDefaultLogLevel := os.Getenv(withEnvBase("DEFAULT_LOG_LEVEL"))
	if envDefaultLogLevel != "" {
		DefaultLogLevel = envDefaultLogLevel
	}

	envDefaultMetricsListenAddr := os.Getenv(withEnvBase("DEFAULT_METRICS_LISTEN"))
	if envDefaultMetricsListenAddr != "" {
		DefaultMetricsListenAddr = envDefaultMetricsListenAddr
	}
}

func withEnvBase(name string) string {
	return DefaultEnvBase + name
}

func CommandParse() *cobra.Command {
	setDefaults()

	parseCmd := &cobra.Command{
		Use:   "parse <file.ldif>",
		Short: "Parse a LDIF file and report its event stream",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := parse(cmd, args); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				var exitCodeErr *ErrorWithExitCode
				if errors.As(err, &exitCodeErr) {
					os.Exit(exitCodeErr.Code)
				} else {
					os.Exit(1)
				}
			}
		},
	}

	parseCmd.Flags().BoolVar(&DefaultLogTimestamp, "log-timestamp", DefaultLogTimestamp, "Prefix each log line with timestamp")
	parseCmd.Flags().StringVar(&DefaultLogLevel, "log-level", DefaultLogLevel, "Log level (one of panic, fatal, error, warn, info or debug)")

	parseCmd.Flags().BoolVar(&DefaultPrintEvents, "print", DefaultPrintEvents, "Print every parse event to stdout")
	parseCmd.Flags().BoolVar(&DefaultCheckDuplicates, "check-duplicates", DefaultCheckDuplicates, "Fail when the file contains duplicate entry DNs")

	parseCmd.Flags().BoolVar(&DefaultWithMetrics, "with-metrics", DefaultWithMetrics, "Enable metrics")
	parseCmd.Flags().StringVar(&DefaultMetricsListenAddr, "metrics-listen", DefaultMetricsListenAddr, "TCP listen address for metrics")

	return parseCmd
}

func parse(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(!DefaultLogTimestamp, DefaultLogLevel)
	if err != nil {
		return StartupError(fmt.Errorf("failed to create logger: %w", err))
	}

	fn := args[0]

	src, err := ldifparser.OpenFileSource(fn)
	if err != nil {
		return StartupError(err)
	}
	defer src.Close()

	parser := ldifparser.NewParser(src, &ldifparser.Options{
		Logger: logrusr.New(logger),
	})
	parser.SetStats(true)

	// Metrics support.
	if DefaultWithMetrics && DefaultMetricsListenAddr != "" {
		metricsRegistry := prometheus.NewPedanticRegistry()
		registerer := prometheus.WrapRegistererWithPrefix("ldifstream_", metricsRegistry)
		registerer.MustRegister(ldifparser.NewParserCollector(parser))

		// Add the standard process and Go metrics to the custom registry.
		metricsRegistry.MustRegister(
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
			prometheus.NewGoCollector(),
		)
		go func() {
			handler := http.NewServeMux()
			logger.WithField("listenAddr", DefaultMetricsListenAddr).Infoln("metrics enabled, starting listener")
			handler.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
			if listenErr := http.ListenAndServe(DefaultMetricsListenAddr, handler); listenErr != nil {
				logger.WithError(listenErr).Errorln("unable to start metrics listener")
			}
		}()
	}

	var handler ldifparser.Handler
	var collector *ldifentry.Collector
	inventory := ldifentry.NewInventory()
	if DefaultPrintEvents {
		handler = &printHandler{out: os.Stdout}
	} else {
		collector = ldifentry.NewCollector(&ldifentry.Options{
			Inventory: inventory,
		})
		handler = collector
	}

	if err := parser.Run(handler); err != nil {
		return ParseError(err)
	}

	if collector != nil {
		if DefaultCheckDuplicates {
			if _, treeErr := ldifentry.TreeFromEntries(collector.Entries()); treeErr != nil {
				return ParseError(treeErr)
			}
		}
		inventory.Walk(func(name string, count uint64) bool {
			logger.WithFields(logrus.Fields{
				"attribute": name,
				"count":     count,
			}).Debugln("attribute usage")
			return false
		})
	}

	stats := parser.Stats.Clone()
	logger.WithFields(logrus.Fields{
		"lines":         stats.Lines,
		"entries":       stats.Entries,
		"attributes":    stats.Attributes,
		"comments":      stats.Comments,
		"continuations": stats.Continuations,
		"binary_values": stats.BinaryValues,
	}).Infoln("parse complete")

	return nil
}

type printHandler struct {
	out *os.File
}

func (h *printHandler) BeginEntry(dn string) error {
	_, err := fmt.Fprintf(h.out, "begin-entry %s\n", dn)
	return err
}

func (h *printHandler) Attribute(name string, value ldifparser.Value) error {
	var err error
	if value.IsBinary() {
		_, err = fmt.Fprintf(h.out, "attribute %s (%d bytes, base64 %s)\n", name, len(value.Bytes()), base64.StdEncoding.EncodeToString(value.Bytes()))
	} else {
		_, err = fmt.Fprintf(h.out, "attribute %s=%s\n", name, value)
	}
	return err
}

func (h *printHandler) EndEntry(dn string) error {
	_, err := fmt.Fprintf(h.out, "end-entry %s\n", dn)
	return err
}
