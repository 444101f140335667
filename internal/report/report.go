// Package report holds the on-disk benchmark session format shared by
// cmd/bench and cmd/buildGraph, plus the markdown and Prometheus renderings.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// BenchmarkResult holds results for one test run.
type BenchmarkResult struct {
	Implementation      string  `json:"implementation"`
	Kind                string  `json:"kind"`
	NumProducers        int     `json:"num_producers"`
	NumConsumers        int     `json:"num_consumers"`
	NumMessages         int64   `json:"num_messages"`          // produced count
	NumMessagesConsumed int64   `json:"num_messages_consumed"` // consumed count
	Leftover            uint64  `json:"leftover,omitempty"`
	TestDuration        string  `json:"test_duration"`
	ActualElapsed       string  `json:"actual_elapsed"`
	Throughput          float64 `json:"throughput_msgs_sec"` // based on consumed count
	Timestamp           int64   `json:"timestamp"`
	GoVersion           string  `json:"go_version"`
}

// NsPerMsg derives the per-message cost from the recorded elapsed time. It
// returns false for runs that consumed nothing or carry a bad duration.
func (b BenchmarkResult) NsPerMsg() (float64, bool) {
	dur, err := time.ParseDuration(b.ActualElapsed)
	if err != nil || b.NumMessagesConsumed == 0 {
		return 0, false
	}
	return float64(dur.Nanoseconds()) / float64(b.NumMessagesConsumed), true
}

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU            int     `json:"num_cpu"`
	TrueCPU           int     `json:"true_cpu,omitempty"`
	SimulatedCPUCount int     `json:"simulated_cpu_count,omitempty"`
	CPUModel          string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz       float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH            string  `json:"go_arch"`
	TotalMemory       uint64  `json:"total_memory_bytes,omitempty"`
}

// CPUs is the GOMAXPROCS value the session ran with.
func (s SystemInfo) CPUs() int {
	if s.SimulatedCPUCount != 0 {
		return s.SimulatedCPUCount
	}
	return s.NumCPU
}

// FullReport represents a complete test session.
type FullReport struct {
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// Load reads all sessions from a JSON file.
func Load(path string) ([]FullReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, errors.Wrapf(err, "decoding %q", path)
	}
	return sessions, nil
}

// Append adds sessions to the JSON file at path, creating it if needed. An
// existing file that does not decode is an error rather than being replaced.
func Append(path string, sessions []FullReport) error {
	var previous []FullReport
	if _, err := os.Stat(path); err == nil {
		previous, err = Load(path)
		if err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(append(previous, sessions...), "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding sessions")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing %q", path)
}

// Meta describes an implementation for the markdown table.
type Meta struct {
	Package  string
	Features []string
}

// WriteMarkdown renders the benchmarks of session as a table sorted by
// throughput, highest first.
func WriteMarkdown(w io.Writer, session FullReport, meta map[string]Meta) error {
	rows := append([]BenchmarkResult(nil), session.Benchmarks...)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Throughput > rows[j].Throughput
	})

	var sb strings.Builder
	sb.WriteString("## Last Session Benchmark Summary\n\n")
	fmt.Fprintf(&sb, "GOMAXPROCS=%d, %s\n\n", session.SystemInfo.CPUs(), session.SessionTime)
	sb.WriteString("| Implementation           | Package         | Features                    | Prod/Cons | Throughput (msgs/sec) |\n")
	sb.WriteString("|--------------------------|-----------------|-----------------------------|-----------|-----------------------|\n")
	for _, r := range rows {
		m := meta[r.Implementation]
		fmt.Fprintf(&sb, "| %-24s | %-15s | %-27s | %-9s | %21.0f |\n",
			r.Implementation, m.Package, strings.Join(m.Features, ", "),
			fmt.Sprintf("%d/%d", r.NumProducers, r.NumConsumers), r.Throughput)
	}
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "writing markdown")
}

// Registry builds a Prometheus registry holding one gauge sample per
// benchmark in sessions. Later sessions overwrite earlier samples with the
// same labels.
func Registry(sessions []FullReport) *prometheus.Registry {
	labels := []string{"implementation", "kind", "producers", "consumers", "cpus"}
	throughput := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fwdc",
		Subsystem: "bench",
		Name:      "throughput_msgs_per_second",
		Help:      "Consumed messages per second in the last timed run.",
	}, labels)
	nsPerMsg := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fwdc",
		Subsystem: "bench",
		Name:      "ns_per_msg",
		Help:      "Wall time per consumed message in the last timed run.",
	}, labels)
	leftover := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fwdc",
		Subsystem: "bench",
		Name:      "leftover_messages",
		Help:      "Messages still held after consumers drained.",
	}, labels)

	reg := prometheus.NewRegistry()
	reg.MustRegister(throughput, nsPerMsg, leftover)
	for _, s := range sessions {
		cpus := strconv.Itoa(s.SystemInfo.CPUs())
		for _, b := range s.Benchmarks {
			lv := []string{b.Implementation, b.Kind,
				strconv.Itoa(b.NumProducers), strconv.Itoa(b.NumConsumers), cpus}
			throughput.WithLabelValues(lv...).Set(b.Throughput)
			leftover.WithLabelValues(lv...).Set(float64(b.Leftover))
			if ns, ok := b.NsPerMsg(); ok {
				nsPerMsg.WithLabelValues(lv...).Set(ns)
			}
		}
	}
	return reg
}

// WriteTextfile writes sessions in the node_exporter textfile format.
func WriteTextfile(path string, sessions []FullReport) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, Registry(sessions)), "writing textfile %q", path)
}
