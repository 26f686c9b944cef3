// Package paramstore implements spec.md §6's "Parameter store"
// collaborator: a closed set of recognised `key = value` settings
// parsed from text, with typed getters and sensible defaults, grounded
// on original_source/src/Parameter.c for the text format and on the
// teacher's internal/config.TuningConfig for the typed-accessor shape.
package paramstore

import "fmt"

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
)

// Value is a tagged union over the four types spec.md §6 names
// ("bool/int/float/string").
type Value struct {
	kind valueKind
	s    string
	i    int64
	f    float64
	b    bool
}

func stringValue(s string) Value { return Value{kind: kindString, s: s} }
func intValue(i int64) Value     { return Value{kind: kindInt, i: i} }
func floatValue(f float64) Value { return Value{kind: kindFloat, f: f} }
func boolValue(b bool) Value     { return Value{kind: kindBool, b: b} }

func (v Value) String() string {
	switch v.kind {
	case kindString:
		return v.s
	case kindInt:
		return fmt.Sprintf("%d", v.i)
	case kindFloat:
		return fmt.Sprintf("%g", v.f)
	case kindBool:
		return fmt.Sprintf("%t", v.b)
	default:
		return ""
	}
}
