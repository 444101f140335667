package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"time"

	"github.com/golang/glog"
	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/i5heu/GoFwdContainers/internal/report"
	"github.com/i5heu/GoFwdContainers/internal/testbench"
	"github.com/i5heu/GoFwdContainers/pkg/config"
)

// target is what every registered implementation hands to the harness.
type target = testbench.Target[*int]

// Implementation represents one container under benchmark.
type Implementation[T any, Q testbench.Target[T]] struct {
	name        string
	description string
	pkgName     string
	kind        string
	features    []string
	newTarget   func(capacity uint64) Q
}

func (impl Implementation[T, Q]) hasFeature(f string) bool {
	return slices.Contains(impl.features, f)
}

// supports reports whether impl can be driven with cfg. SPSC targets only
// tolerate a single producer and a single consumer.
func (impl Implementation[T, Q]) supports(cfg config.Config) bool {
	if impl.hasFeature("SPSC") {
		return config.IsSPSC(cfg)
	}
	return true
}

func metaByName() map[string]report.Meta {
	out := make(map[string]report.Meta)
	for _, impl := range getImplementations() {
		out[impl.name] = report.Meta{Package: impl.pkgName, Features: impl.features}
	}
	return out
}

// outputMarkdownTable loads the JSON file and prints the last session as a
// markdown table.
func outputMarkdownTable(jsonFile string) error {
	sessions, err := report.Load(jsonFile)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no sessions found in %s", jsonFile)
	}
	return report.WriteMarkdown(os.Stdout, sessions[len(sessions)-1], metaByName())
}

// cpuSettings picks the GOMAXPROCS values to test.
func cpuSettings(requested, trueCPUs int) []int {
	if requested > 0 {
		return []int{min(requested, trueCPUs)}
	}
	commonCPUs := []int{1, 2, 3, 4, 6, 8, 12, 16, 32, 48, 56, 64, 96, 128, 192, 256, 384, 512}
	var out []int
	for _, v := range commonCPUs {
		if v <= trueCPUs {
			out = append(out, v)
		}
	}
	return out
}

func main() {
	testIterations := flag.Int("iter", 5, "Number of test iterations per concurrency setting")
	cpuMaxFlag := flag.Int("cpu", 0, "If non-zero, test only that GOMAXPROCS value; if 0, test common CPU/vCPU values up to runtime.NumCPU()")
	jsonExport := flag.Bool("json", false, "Export results as JSON to -jsonfile")
	highConcurrency := flag.Bool("high-concurrency", false, "Include high concurrency configurations")
	markdownTable := flag.Bool("markdown-table", false, "Output markdown table from -jsonfile and exit")
	jsonFile := flag.String("jsonfile", "test-results.json", "Path to JSON file for export and markdown table")
	textfile := flag.String("textfile", "", "If set, write Prometheus textfile metrics for this run to this path")
	progressFlag := flag.Bool("progress", false, "Display a progress bar with ETA")
	testDuration := flag.Duration("duration", 5*time.Second, "Duration of each timed run")
	capacity := flag.Uint64("capacity", 1024, "Capacity of each container under test")
	flag.Parse()
	defer glog.Flush()

	if *markdownTable {
		if err := outputMarkdownTable(*jsonFile); err != nil {
			glog.Exitf("markdown table: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	trueCPUs := runtime.NumCPU()
	cpus := cpuSettings(*cpuMaxFlag, trueCPUs)
	cfgs := config.Sweep(*highConcurrency)
	impls := getImplementations()

	totalTests := 0
	for _, cfg := range cfgs {
		for _, impl := range impls {
			if impl.supports(cfg) {
				totalTests++
			}
		}
	}
	totalTests *= len(cpus) * (*testIterations)

	var bar *progressbar.ProgressBar
	if *progressFlag {
		bar = progressbar.NewOptions(totalTests,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Progress"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
		)
	}

	sessions := runSessions(ctx, cpus, trueCPUs, cfgs, impls, *testIterations, *testDuration, *capacity, bar)

	if bar != nil {
		_ = bar.Finish()
	}

	if *jsonExport {
		if err := report.Append(*jsonFile, sessions); err != nil {
			glog.Exitf("json export: %v", err)
		}
		fmt.Printf("\nWrote results to %s\n", *jsonFile)
	}
	if *textfile != "" {
		if err := report.WriteTextfile(*textfile, sessions); err != nil {
			glog.Exitf("textfile export: %v", err)
		}
		glog.Infof("wrote Prometheus textfile %s", *textfile)
	}
}

func runSessions(
	ctx context.Context,
	cpus []int,
	trueCPUs int,
	cfgs []config.Config,
	impls []Implementation[*int, target],
	iterations int,
	testDuration time.Duration,
	capacity uint64,
	bar *progressbar.ProgressBar,
) []report.FullReport {
	var sessions []report.FullReport

	for _, n := range cpus {
		runtime.GOMAXPROCS(n)
		sysInfo := gatherSystemInfo()
		sysInfo.NumCPU = n
		sysInfo.TrueCPU = trueCPUs
		sysInfo.SimulatedCPUCount = n

		fmt.Printf("\n=============================\n")
		fmt.Printf("GOMAXPROCS = %d\n", n)
		fmt.Printf("=============================\n")

		var results []report.BenchmarkResult
		for _, cfg := range cfgs {
			fmt.Printf("  [Concurrency: producers=%d, consumers=%d]\n", cfg.NumProducers, cfg.NumConsumers)
			for iteration := 1; iteration <= iterations; iteration++ {
				fmt.Printf("    iteration %d/%d\n", iteration, iterations)
				for _, impl := range impls {
					if !impl.supports(cfg) {
						continue
					}
					if ctx.Err() != nil {
						glog.Warning("interrupted, keeping partial results")
						return append(sessions, session(sysInfo, results))
					}

					runtime.GC()
					q := impl.newTarget(capacity)
					time.Sleep(250 * time.Millisecond)

					res := testbench.RunTimedTest(ctx, q, cfg, testDuration, func(i int) *int {
						v := i
						return &v
					})

					fmt.Printf("    %s => produced=%d, consumed=%d, throughput=%.0f msg/s, took=%v\n",
						impl.name, res.Produced, res.Consumed, res.Throughput(), res.Elapsed)
					if res.Produced != res.Consumed {
						glog.Warningf("%s lost messages: produced=%d consumed=%d", impl.name, res.Produced, res.Consumed)
					}
					if bar != nil {
						_ = bar.Add(1)
					}

					results = append(results, report.BenchmarkResult{
						Implementation:      impl.name,
						Kind:                impl.kind,
						NumProducers:        cfg.NumProducers,
						NumConsumers:        cfg.NumConsumers,
						NumMessages:         res.Produced,
						NumMessagesConsumed: res.Consumed,
						Leftover:            res.Leftover,
						TestDuration:        testDuration.String(),
						ActualElapsed:       res.Elapsed.String(),
						Throughput:          res.Throughput(),
						Timestamp:           time.Now().Unix(),
						GoVersion:           runtime.Version(),
					})
				}
			}
		}
		sessions = append(sessions, session(sysInfo, results))
	}
	return sessions
}

func session(sysInfo report.SystemInfo, results []report.BenchmarkResult) report.FullReport {
	return report.FullReport{
		SessionTime: time.Now().Format(time.RFC3339),
		SystemInfo:  sysInfo,
		Benchmarks:  results,
	}
}

// gatherSystemInfo collects basic CPU and memory details.
func gatherSystemInfo() report.SystemInfo {
	var cpuModel string
	var cpuSpeed float64
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		cpuModel = infos[0].ModelName
		cpuSpeed = infos[0].Mhz
	} else if err != nil {
		glog.V(1).Infof("cpu info unavailable: %v", err)
	}

	var totalMemory uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		totalMemory = vm.Total
	}

	return report.SystemInfo{
		NumCPU:      runtime.NumCPU(),
		CPUModel:    cpuModel,
		CPUSpeedMHz: cpuSpeed,
		GOARCH:      runtime.GOARCH,
		TotalMemory: totalMemory,
	}
}
