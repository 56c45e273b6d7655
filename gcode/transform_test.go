package gcode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vasalvit/svg2gcode/geom"
)

var docBounds = geom.Rect{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 100, Y: 50}}

func TestPipelineBottomLeftIdentity(t *testing.T) {
	cfg := DefaultConfig()
	pipe := newPipeline(cfg, docBounds)

	p := pipe.Apply(geom.Point{X: 10, Y: 20})
	require.Equal(t, geom.Point{X: 10, Y: 20}, p)
}

func TestPipelineTopLeft(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Origin = OriginTopLeft
	cfg.UseDocumentSize = false
	cfg.BedWidth = 200
	cfg.BedHeight = 100
	pipe := newPipeline(cfg, docBounds)

	p := pipe.Apply(geom.Point{X: 0, Y: 0})
	require.InDelta(t, 0, p.X, 1e-9)
	require.InDelta(t, 100, p.Y, 1e-9)

	p = pipe.Apply(geom.Point{X: 10, Y: 30})
	require.InDelta(t, 10, p.X, 1e-9)
	require.InDelta(t, 70, p.Y, 1e-9)
}

func TestPipelineCenter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Origin = OriginCenter
	cfg.UseDocumentSize = false
	cfg.BedWidth = 200
	cfg.BedHeight = 100
	pipe := newPipeline(cfg, docBounds)

	p := pipe.Apply(geom.Point{X: 100, Y: 50})
	require.InDelta(t, 0, p.X, 1e-9)
	require.InDelta(t, 0, p.Y, 1e-9)
}

func TestPipelineCenterFromDocument(t *testing.T) {
	// With use_document_size the bed is the document extent, so the
	// document center maps to the origin.
	cfg := DefaultConfig()
	cfg.Origin = OriginCenter
	pipe := newPipeline(cfg, docBounds)

	p := pipe.Apply(geom.Point{X: 50, Y: 25})
	require.InDelta(t, 0, p.X, 1e-9)
	require.InDelta(t, 0, p.Y, 1e-9)
}

func TestPipelineInches(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Unit = Inches
	pipe := newPipeline(cfg, docBounds)

	p := pipe.Apply(geom.Point{X: 25.4, Y: 50.8})
	require.InDelta(t, 1, p.X, 1e-9)
	require.InDelta(t, 2, p.Y, 1e-9)
}

func TestPipelineRoundTrip(t *testing.T) {
	configs := []func(*Config){
		func(c *Config) {},
		func(c *Config) { c.InvertY = true },
		func(c *Config) { c.Origin = OriginCenter },
		func(c *Config) { c.Origin = OriginTopLeft },
		func(c *Config) {
			c.Origin = OriginTopLeft
			c.UseDocumentSize = false
			c.BedWidth = 300
			c.BedHeight = 150
		},
		func(c *Config) { c.Unit = Inches },
		func(c *Config) { c.ScaleX = 2.5; c.ScaleY = 0.5 },
		func(c *Config) { c.ScaleX = -1; c.InvertY = true },
		func(c *Config) { c.OffsetX = 17; c.OffsetY = -4.5 },
		func(c *Config) {
			c.Unit = Inches
			c.ScaleX = 3
			c.ScaleY = 3
			c.InvertY = true
			c.Origin = OriginCenter
			c.OffsetX = -2
			c.OffsetY = 8
		},
	}
	points := []geom.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 20},
		{X: -3.25, Y: 47.75},
		{X: 100, Y: 50},
	}
	for i, mutate := range configs {
		cfg := DefaultConfig()
		mutate(&cfg)
		require.NoError(t, cfg.Validate())
		pipe := newPipeline(cfg, docBounds)
		for _, p := range points {
			q := pipe.Invert(pipe.Apply(p))
			require.InDeltaf(t, p.X, q.X, 1e-9, "config %d point %v", i, p)
			require.InDeltaf(t, p.Y, q.Y, 1e-9, "config %d point %v", i, p)
		}
	}
}
