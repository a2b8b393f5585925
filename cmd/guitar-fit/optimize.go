package main

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-guitar/guitar"
	fitcommon "github.com/cwbudde/algo-guitar/internal/fitcommon"
	"github.com/cwbudde/mayfly"
)

type knobDef struct {
	Name  string
	Min   float64
	Max   float64
	IsInt bool
}

type candidate struct {
	Vals []float64
}

func knobDefs() []knobDef {
	return []knobDef{
		{Name: "decay", Min: 0.95, Max: 1.0},
		{Name: "quant", Min: 16, Max: 1024, IsInt: true},
	}
}

func initCandidate(p guitar.Params) candidate {
	defs := knobDefs()
	return candidate{Vals: []float64{
		fitcommon.Clamp(p.Decay, defs[0].Min, defs[0].Max),
		fitcommon.Clamp(float64(p.Quant), defs[1].Min, defs[1].Max),
	}}
}

func applyCandidate(base guitar.Params, c candidate) guitar.Params {
	p := base
	for i, d := range knobDefs() {
		if i >= len(c.Vals) {
			break
		}
		switch d.Name {
		case "decay":
			p.Decay = c.Vals[i]
		case "quant":
			p.Quant = int(math.Round(c.Vals[i]))
		}
	}
	return p
}

func fromNormalized(pos []float64, defs []knobDef) candidate {
	vals := make([]float64, len(defs))
	for i := range defs {
		x := 0.0
		if i < len(pos) {
			x = fitcommon.Clamp(pos[i], 0, 1)
		}
		v := defs[i].Min + x*(defs[i].Max-defs[i].Min)
		if defs[i].IsInt {
			v = math.Round(v)
		}
		vals[i] = v
	}
	return candidate{Vals: vals}
}

func knobMap(defs []knobDef, c candidate) map[string]float64 {
	out := make(map[string]float64, len(defs))
	for i, d := range defs {
		if i < len(c.Vals) {
			out[d.Name] = c.Vals[i]
		}
	}
	return out
}

func newMayflyConfig(variant string, pop int, dims int, iters int) (*mayfly.Config, error) {
	var cfg *mayfly.Config
	switch variant {
	case "ma":
		cfg = mayfly.NewDefaultConfig()
	case "desma":
		cfg = mayfly.NewDESMAConfig()
	case "olce":
		cfg = mayfly.NewOLCEConfig()
	case "eobbma":
		cfg = mayfly.NewEOBBMAConfig()
	case "gsasma":
		cfg = mayfly.NewGSASMAConfig()
	case "mpma":
		cfg = mayfly.NewMPMAConfig()
	case "aoblmoa":
		cfg = mayfly.NewAOBLMOAConfig()
	default:
		return nil, fmt.Errorf("unknown variant %q", variant)
	}
	cfg.ProblemSize = dims
	cfg.LowerBound = 0.0
	cfg.UpperBound = 1.0
	cfg.MaxIterations = iters
	cfg.NPop = pop
	cfg.NPopF = pop
	// Mayfly pairs NC/2 parents from both populations.
	cfg.NC = 2 * pop
	cfg.NM = fitcommon.MaxInt(1, int(math.Round(0.05*float64(pop))))
	return cfg, nil
}

func runMayfly(cfg *mayfly.Config) (_ *mayfly.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	return mayfly.Optimize(cfg)
}
