package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"slices"
	"sort"
	"strconv"

	"github.com/golang/glog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/i5heu/GoFwdContainers/internal/report"
)

// concurrencyStats holds "5%-avg-min", median, and "5%-avg-max" for one
// concurrency level.
type concurrencyStats struct {
	x      float64 // category index plus per-implementation offset
	orig   float64 // producers + consumers
	min    float64 // average of bottom 5%
	median float64
	max    float64 // average of top 5%
}

// statsPoints implements XYer and YErrorer so we can plot lines + error bars.
type statsPoints []concurrencyStats

func (s statsPoints) Len() int                { return len(s) }
func (s statsPoints) XY(i int) (x, y float64) { return s[i].x, s[i].median }
func (s statsPoints) YError(i int) (low, high float64) {
	return s[i].median - s[i].min, s[i].max - s[i].median
}

// categoryTicks implements a categorical X-axis: 0,1,2,... => labels.
type categoryTicks struct {
	positions []float64
	labels    []string
}

func (ct categoryTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, pos := range ct.positions {
		if pos >= min && pos <= max {
			ticks = append(ticks, plot.Tick{Value: pos, Label: ct.labels[i]})
		}
	}
	return ticks
}

// samples maps implementation -> producers+consumers -> ns/msg values.
type samples map[string]map[float64][]float64

// groupByCPU collects ns/msg samples per GOMAXPROCS setting.
func groupByCPU(sessions []report.FullReport) map[int]samples {
	out := make(map[int]samples)
	for _, session := range sessions {
		cpus := session.SystemInfo.CPUs()
		if out[cpus] == nil {
			out[cpus] = make(samples)
		}
		for _, b := range session.Benchmarks {
			ns, ok := b.NsPerMsg()
			if !ok {
				continue
			}
			byConc := out[cpus][b.Implementation]
			if byConc == nil {
				byConc = make(map[float64][]float64)
				out[cpus][b.Implementation] = byConc
			}
			x := float64(b.NumProducers + b.NumConsumers)
			byConc[x] = append(byConc[x], ns)
		}
	}
	return out
}

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	dark  = color.RGBA{R: 30, G: 30, B: 30, A: 255}
)

func darkTheme(p *plot.Plot) {
	p.BackgroundColor = dark
	p.Title.TextStyle.Color = white
	p.X.Label.TextStyle.Color = white
	p.Y.Label.TextStyle.Color = white
	p.X.Color = white
	p.Y.Color = white
	p.X.Tick.Label.Color = white
	p.Y.Tick.Label.Color = white
	p.Legend.TextStyle.Color = white
	p.Legend.Top = true
	p.Legend.Left = true
}

// logTicks spaces roughly one label every 30px over a 9in tall image.
func logTicks(min, max float64) []plot.Tick {
	const nTicks = 648.0 / 30.0
	if min <= 0 {
		min = 1e-9
	}
	start, end := math.Log10(min), math.Log10(max)
	step := (end - start) / nTicks

	var ticks []plot.Tick
	for i := 0.0; i <= nTicks; i++ {
		y := math.Pow(10, start+i*step)
		ticks = append(ticks, plot.Tick{Value: y, Label: formatNs(y)})
	}
	return ticks
}

// latencyPlot draws one line with error bars per implementation.
func latencyPlot(cpus int, implMap samples) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Time per message (5%%-avg-min / median / 5%%-avg-max) vs. concurrency, GOMAXPROCS=%d", cpus)
	p.X.Label.Text = "NumProducers + NumConsumers"
	p.Y.Label.Text = "Time per Msg"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.TickerFunc(logTicks)
	darkTheme(p)
	p.Add(plotter.NewGrid())

	concSet := make(map[float64]struct{})
	for _, byConc := range implMap {
		for conc := range byConc {
			concSet[conc] = struct{}{}
		}
	}
	var concValues []float64
	for v := range concSet {
		concValues = append(concValues, v)
	}
	sort.Float64s(concValues)

	index := make(map[float64]float64, len(concValues))
	ticks := categoryTicks{}
	for i, v := range concValues {
		index[v] = float64(i)
		ticks.positions = append(ticks.positions, float64(i))
		ticks.labels = append(ticks.labels, strconv.FormatFloat(v, 'f', -1, 64))
	}
	p.X.Tick.Marker = ticks

	names := make([]string, 0, len(implMap))
	for name := range implMap {
		names = append(names, name)
	}
	sort.Strings(names)

	colors := plotutil.SoftColors
	shapes := []draw.GlyphDrawer{
		draw.CircleGlyph{},
		draw.SquareGlyph{},
		draw.TriangleGlyph{},
		draw.CrossGlyph{},
		draw.PlusGlyph{},
	}

	// Offset each implementation slightly so error bars don't overlap.
	const offsetRange = 0.4
	offsetStep := offsetRange / float64(max(len(names), 1))
	startOffset := -offsetRange/2 + offsetStep/2

	for i, name := range names {
		stats := buildStats(implMap[name])
		if len(stats) == 0 {
			continue
		}
		for j := range stats {
			stats[j].x = index[stats[j].orig] + startOffset + float64(i)*offsetStep
		}
		sort.Slice(stats, func(a, b int) bool { return stats[a].x < stats[b].x })
		sp := statsPoints(stats)
		c := colors[i%len(colors)]

		line, err := plotter.NewLine(sp)
		if err != nil {
			return nil, err
		}
		line.Color = c

		points, err := plotter.NewScatter(sp)
		if err != nil {
			return nil, err
		}
		points.GlyphStyle.Radius = vg.Points(5)
		points.Color = c
		points.Shape = shapes[i%len(shapes)]

		bars, err := plotter.NewYErrorBars(sp)
		if err != nil {
			return nil, err
		}
		bars.Color = c

		p.Add(line, points, bars)
		p.Legend.Add(name, line, points)
	}
	return p, nil
}

// throughputPlot draws the median throughput of every implementation in the
// given session as a bar chart, one bar group per producer/consumer pair.
func throughputPlot(session report.FullReport) (*plot.Plot, error) {
	type key struct {
		impl string
		conc int
	}
	vals := make(map[key][]float64)
	var names []string
	var concs []int
	for _, b := range session.Benchmarks {
		conc := b.NumProducers + b.NumConsumers
		k := key{b.Implementation, conc}
		vals[k] = append(vals[k], b.Throughput)
		if !slices.Contains(names, b.Implementation) {
			names = append(names, b.Implementation)
		}
		if !slices.Contains(concs, conc) {
			concs = append(concs, conc)
		}
	}
	sort.Strings(names)
	sort.Ints(concs)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Median throughput, GOMAXPROCS=%d", session.SystemInfo.CPUs())
	p.Y.Label.Text = "msgs/sec"
	p.X.Label.Text = "NumProducers + NumConsumers"
	darkTheme(p)

	width := vg.Points(60 / float64(max(len(names), 1)))
	labels := make([]string, len(concs))
	for i, c := range concs {
		labels[i] = strconv.Itoa(c)
	}

	for i, name := range names {
		ys := make(plotter.Values, len(concs))
		for j, c := range concs {
			if v := vals[key{name, c}]; len(v) > 0 {
				sort.Float64s(v)
				ys[j] = median(v)
			}
		}
		bars, err := plotter.NewBarChart(ys, width)
		if err != nil {
			return nil, err
		}
		bars.Color = plotutil.SoftColors[i%len(plotutil.SoftColors)]
		bars.LineStyle.Width = 0
		bars.Offset = width * vg.Length(float64(i)-float64(len(names)-1)/2)
		p.Add(bars)
		p.Legend.Add(name, bars)
	}
	p.NominalX(labels...)
	return p, nil
}

// buildStats computes "average of bottom 5%", median, and "average of top 5%".
func buildStats(byConc map[float64][]float64) []concurrencyStats {
	var out []concurrencyStats
	for x, vals := range byConc {
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		out = append(out, concurrencyStats{
			x:      x,
			orig:   x,
			min:    averageOfRange(vals, 0.0, 0.05),
			median: median(vals),
			max:    averageOfRange(vals, 0.95, 1.0),
		})
	}
	return out
}

// averageOfRange returns the average of sortedVals in [startFrac, endFrac) of
// its length, falling back to the median when that slice is empty.
func averageOfRange(sortedVals []float64, startFrac, endFrac float64) float64 {
	n := len(sortedVals)
	if n == 0 {
		return 0
	}
	startIndex := max(int(float64(n)*startFrac), 0)
	endIndex := min(int(float64(n)*endFrac), n)
	if startIndex >= endIndex {
		return median(sortedVals)
	}
	sum := 0.0
	for _, v := range sortedVals[startIndex:endIndex] {
		sum += v
	}
	return sum / float64(endIndex-startIndex)
}

func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return 0.5 * (sorted[mid-1] + sorted[mid])
}

// formatNs formats a nanoseconds value in ns, µs, ms, or s.
func formatNs(ns float64) string {
	switch {
	case ns < 1e3:
		return fmt.Sprintf("%.0fns", ns)
	case ns < 1e6:
		return fmt.Sprintf("%.1fµs", ns/1e3)
	case ns < 1e9:
		return fmt.Sprintf("%.1fms", ns/1e6)
	default:
		return fmt.Sprintf("%.2fs", ns/1e9)
	}
}

func main() {
	jsonFile := flag.String("jsonfile", "test-results.json", "Path to JSON file containing test sessions")
	outputPrefix := flag.String("out", "benchmark_graph", "Output graph image filename prefix")
	flag.Parse()
	defer glog.Flush()

	sessions, err := report.Load(*jsonFile)
	if err != nil {
		glog.Exitf("loading sessions: %v", err)
	}
	if len(sessions) == 0 {
		glog.Exitf("no sessions in %s", *jsonFile)
	}

	failed := false
	for cpus, implMap := range groupByCPU(sessions) {
		p, err := latencyPlot(cpus, implMap)
		if err != nil {
			glog.Errorf("building plot for %d CPU(s): %v", cpus, err)
			failed = true
			continue
		}
		filename := fmt.Sprintf("%s_%d.png", *outputPrefix, cpus)
		if err := p.Save(12*vg.Inch, 9*vg.Inch, filename); err != nil {
			glog.Errorf("saving plot for %d CPU(s): %v", cpus, err)
			failed = true
			continue
		}
		fmt.Printf("Graph for %d CPU(s) saved to %s\n", cpus, filename)
	}

	last := sessions[len(sessions)-1]
	if p, err := throughputPlot(last); err != nil {
		glog.Errorf("building throughput chart: %v", err)
		failed = true
	} else {
		filename := *outputPrefix + "_throughput.png"
		if err := p.Save(12*vg.Inch, 6*vg.Inch, filename); err != nil {
			glog.Errorf("saving throughput chart: %v", err)
			failed = true
		} else {
			fmt.Printf("Throughput chart saved to %s\n", filename)
		}
	}
	if failed {
		os.Exit(1)
	}
}
