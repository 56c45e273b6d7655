package gcode

import "fmt"

// ConfigError is a fatal configuration problem detected before any
// instruction is emitted. Param names the offending option.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Param, e.Reason)
}

// MergeError is a fatal problem combining compile results.
type MergeError struct {
	Reason string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge failed: %s", e.Reason)
}

// WarningKind classifies recoverable conditions reported alongside a
// compile result. Warnings never abort a run.
type WarningKind int

const (
	// GeometryWarning marks degraded or skipped geometry: zero-length
	// segments, curve subdivision hitting its depth limit.
	GeometryWarning WarningKind = iota
	// SelectionWarning marks a layer filter that matched nothing.
	SelectionWarning
)

func (k WarningKind) String() string {
	switch k {
	case GeometryWarning:
		return "geometry"
	case SelectionWarning:
		return "selection"
	}
	return "unknown"
}

// Warning is a recoverable condition recorded during compilation.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

func warnf(kind WarningKind, format string, args ...interface{}) Warning {
	return Warning{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
