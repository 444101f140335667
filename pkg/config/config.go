// Package config re-exports the harness configuration and the standard
// producer/consumer sweep, so other programs can describe a benchmark run
// without importing the harness itself.
package config

import "github.com/i5heu/GoFwdContainers/internal/testbench"

// Config is an alias for testbench.Config.
type Config = testbench.Config

// Symmetric returns a config with n producers and n consumers.
func Symmetric(n int) Config {
	return Config{NumProducers: n, NumConsumers: n}
}

// IsSPSC reports whether cfg has exactly one producer and one consumer.
func IsSPSC(cfg Config) bool {
	return cfg.NumProducers == 1 && cfg.NumConsumers == 1
}

// Sweep lists the producer/consumer pairs a benchmark session runs. The 1/1
// pair always comes first so single-producer single-consumer targets get
// measured. high adds the 100, 250 and 500 pairs.
func Sweep(high bool) []Config {
	sizes := []int{1, 2, 10, 50}
	if high {
		sizes = append(sizes, 100, 250, 500)
	}
	cfgs := make([]Config, len(sizes))
	for i, n := range sizes {
		cfgs[i] = Symmetric(n)
	}
	return cfgs
}
