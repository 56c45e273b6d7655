// Package gcode compiles vector drawing layers into a sequential
// machine-motion instruction stream for a laser or plotting tool.
//
// The compiler is a single-pass, synchronous, side-effect-free pipeline:
// flatten curves, transform to machine space, plan pass-stepped toolpaths,
// and serialize. All inputs are immutable snapshots and the output is a
// fully materialized Result, which makes independent runs safe to execute
// concurrently before Merge combines them.
package gcode

import (
	"time"

	"github.com/vasalvit/svg2gcode/geom"
)

// Compile runs the full pipeline for one layer selection and operation
// profile. layerName selects layers by exact, case-sensitive match; the
// empty string selects all layers. Configuration problems surface as a
// ConfigError before any instruction is planned; recoverable conditions
// accumulate in Result.Warnings.
func Compile(layers []geom.Layer, layerName string, cfg Config, prof Profile) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := prof.Validate(); err != nil {
		return nil, err
	}

	// Document bounds are computed over the full geometry before any
	// layer filtering, so that a per-layer run and an all-layer run
	// agree on the derived bed size.
	docBounds := geom.LayersBounds(layers, cfg.Tolerance)
	pipe := newPipeline(cfg, docBounds)

	selected, warns := selectLayers(layers, layerName)

	pl := newPlanner(cfg, prof, pipe)
	pl.warnings = append(pl.warnings, warns...)
	if cfg.ZeroMachine {
		pl.instructions = append(pl.instructions, Instruction{Kind: ZeroInstruction})
	}
	for _, l := range selected {
		pl.layer(l)
	}

	return &Result{
		Layer:        layerName,
		Instructions: pl.instructions,
		Bounds:       pl.bounds,
		Duration:     time.Duration(pl.minutes * float64(time.Minute)),
		Warnings:     pl.warnings,
		Unit:         cfg.Unit,
		Precision:    cfg.Precision,
		Header:       headerBlock(cfg, prof),
		Footer:       footerBlock(cfg, prof),
		offCommand:   prof.offCommand(),
	}, nil
}

// headerBlock returns the caller-supplied header verbatim, or generates
// the minimal default preamble: absolute positioning, optional initial
// tool-off, unit selection, optional Z start position.
func headerBlock(cfg Config, prof Profile) []string {
	if len(cfg.Header) > 0 {
		return append([]string(nil), cfg.Header...)
	}
	h := []string{"G90;"}
	if cfg.LaserOffStart {
		h = append(h, prof.offCommand())
	}
	if cfg.Unit == Inches {
		h = append(h, "G20;")
	} else {
		h = append(h, "G21;")
	}
	if cfg.SetZAxisStart {
		h = append(h, "G1 Z"+formatNumber(cfg.ZAxisStart, cfg.Precision)+";")
	}
	return h
}

// footerBlock returns the caller-supplied footer verbatim, or generates
// the default epilogue: final tool-off and optional return to origin.
func footerBlock(cfg Config, prof Profile) []string {
	if len(cfg.Footer) > 0 {
		return append([]string(nil), cfg.Footer...)
	}
	var f []string
	if cfg.LaserOffEnd {
		f = append(f, prof.offCommand())
	}
	if cfg.MoveToOriginEnd {
		f = append(f, "G0 X0 Y0;")
	}
	return f
}
