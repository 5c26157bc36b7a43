// Package nfnet holds architecture hyperparameter tables for SlowFast
// NFNet variants.
package nfnet

import (
	"fmt"
	"sort"
)

// BlockParams describes one NFNet variant: per-stage widths, depths and
// convolution patterns, plus the stochastic depth rate applied across the
// network. Per-stage slices all have NumStages entries.
type BlockParams struct {
	Width      []int
	Depth      []int
	Expansion  []float64
	GroupWidth []int
	BigWidth   []bool
	DropRate   float64

	// Kernel and stride patterns are [temporal, spatial] pairs, one per
	// stage, for the stem and the residual stages respectively.
	StemKernelPattern [][2]int
	StemStridePattern [][2]int
	KernelPattern     [][2]int
	StridePattern     [][2]int
}

// NumStages returns the number of residual stages, taken from Width.
func (p BlockParams) NumStages() int {
	return len(p.Width)
}

// Validate checks that every per-stage slice has the same length and that
// the drop rate is a probability.
func (p BlockParams) Validate() error {
	n := p.NumStages()
	if n == 0 {
		return fmt.Errorf("nfnet: no stages defined")
	}
	fields := map[string]int{
		"depth":               len(p.Depth),
		"expansion":           len(p.Expansion),
		"group_width":         len(p.GroupWidth),
		"big_width":           len(p.BigWidth),
		"stem_kernel_pattern": len(p.StemKernelPattern),
		"stem_stride_pattern": len(p.StemStridePattern),
		"kernel_pattern":      len(p.KernelPattern),
		"stride_pattern":      len(p.StridePattern),
	}
	for name, got := range fields {
		if got != n {
			return fmt.Errorf("nfnet: %s has %d entries, want %d", name, got, n)
		}
	}
	if p.DropRate < 0 || p.DropRate >= 1 {
		return fmt.Errorf("nfnet: drop rate %v outside [0, 1)", p.DropRate)
	}
	return nil
}

// SlowFastParams maps variant names to their hyperparameters. The slow
// pathway runs at low frame rate with wide channels; the fast pathway runs
// at high frame rate with thin channels and temporal kernels throughout.
var SlowFastParams = map[string]BlockParams{
	"F0-slow": {
		Width:             []int{256, 512, 1536, 1536},
		Depth:             []int{1, 2, 6, 3},
		Expansion:         []float64{0.5, 0.5, 0.5, 0.5},
		GroupWidth:        []int{128, 128, 128, 128},
		BigWidth:          []bool{true, true, true, true},
		DropRate:          0.2,
		StemKernelPattern: [][2]int{{1, 3}, {1, 3}, {1, 3}, {3, 3}},
		StemStridePattern: [][2]int{{2, 2}, {1, 1}, {1, 1}, {2, 2}},
		KernelPattern:     [][2]int{{1, 1}, {1, 1}, {3, 1}, {3, 1}},
		StridePattern:     [][2]int{{1, 1}, {1, 2}, {1, 2}, {1, 2}},
	},
	"F0-fast": {
		Width:             []int{32, 64, 192, 192},
		Depth:             []int{1, 2, 6, 3},
		Expansion:         []float64{0.5, 0.5, 0.5, 0.5},
		GroupWidth:        []int{16, 16, 16, 16},
		BigWidth:          []bool{true, true, true, true},
		DropRate:          0.2,
		StemKernelPattern: [][2]int{{3, 3}, {1, 3}, {1, 3}, {3, 3}},
		StemStridePattern: [][2]int{{2, 2}, {1, 1}, {1, 1}, {2, 2}},
		KernelPattern:     [][2]int{{3, 1}, {3, 1}, {3, 1}, {3, 1}},
		StridePattern:     [][2]int{{1, 1}, {1, 2}, {1, 2}, {1, 2}},
	},
}

// Params looks up a variant by name.
func Params(name string) (BlockParams, error) {
	p, ok := SlowFastParams[name]
	if !ok {
		return BlockParams{}, fmt.Errorf("nfnet: unknown variant %q (have %v)", name, VariantNames())
	}
	return p, nil
}

// VariantNames returns the known variant names in sorted order.
func VariantNames() []string {
	names := make([]string, 0, len(SlowFastParams))
	for name := range SlowFastParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
