package cube

import "fmt"

// HeaderValue is a tagged union over the value types a FITS-style
// header keyword can carry (spec.md §3 "Cube" — "associated header
// keyword map (string -> string|integer|float|bool)").
type HeaderValue struct {
	kind headerKind
	s    string
	i    int64
	f    float64
	b    bool
}

type headerKind int

const (
	headerString headerKind = iota
	headerInt
	headerFloat
	headerBool
)

func HeaderString(v string) HeaderValue  { return HeaderValue{kind: headerString, s: v} }
func HeaderInt(v int64) HeaderValue      { return HeaderValue{kind: headerInt, i: v} }
func HeaderFloat(v float64) HeaderValue  { return HeaderValue{kind: headerFloat, f: v} }
func HeaderBool(v bool) HeaderValue      { return HeaderValue{kind: headerBool, b: v} }

// String renders the value for header emission regardless of kind.
func (v HeaderValue) String() string {
	switch v.kind {
	case headerInt:
		return fmt.Sprintf("%d", v.i)
	case headerFloat:
		return fmt.Sprintf("%g", v.f)
	case headerBool:
		return fmt.Sprintf("%t", v.b)
	default:
		return v.s
	}
}

// Int returns the value as an integer and whether the kind matched.
func (v HeaderValue) Int() (int64, bool) { return v.i, v.kind == headerInt }

// Float returns the value as a float and whether the kind matched.
func (v HeaderValue) Float() (float64, bool) { return v.f, v.kind == headerFloat }

// Bool returns the value as a bool and whether the kind matched.
func (v HeaderValue) Bool() (bool, bool) { return v.b, v.kind == headerBool }

// Header is a FITS-style keyword map. Lookup is by key; insertion
// order is preserved only because it matters when re-emitting a
// header (DESIGN NOTES §9: "insertion order need not be preserved
// except when emitting the header").
type Header struct {
	order []string
	kv    map[string]HeaderValue
}

// NewHeader creates an empty header keyword map.
func NewHeader() *Header {
	return &Header{kv: make(map[string]HeaderValue)}
}

// Set inserts or overwrites a keyword, preserving first-insertion order.
func (h *Header) Set(key string, v HeaderValue) {
	if _, ok := h.kv[key]; !ok {
		h.order = append(h.order, key)
	}
	h.kv[key] = v
}

// Get returns the value for key and whether it was present.
func (h *Header) Get(key string) (HeaderValue, bool) {
	v, ok := h.kv[key]
	return v, ok
}

// Delete removes a keyword if present.
func (h *Header) Delete(key string) {
	if _, ok := h.kv[key]; !ok {
		return
	}
	delete(h.kv, key)
	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Keys returns keyword names in insertion order.
func (h *Header) Keys() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// Clone returns a deep copy of the header map.
func (h *Header) Clone() *Header {
	out := NewHeader()
	for _, k := range h.order {
		out.Set(k, h.kv[k])
	}
	return out
}

// RewriteRegionKeywords updates CRPIXn and NAXISn to reflect a
// sub-volume cut, per spec.md §6 ("the header's CRPIXn and NAXISn
// keywords must be rewritten to reflect the sub-volume").
func (h *Header) RewriteRegionKeywords(r Region) {
	naxis := [3]string{"NAXIS1", "NAXIS2", "NAXIS3"}
	crpix := [3]string{"CRPIX1", "CRPIX2", "CRPIX3"}
	mins := [3]int{r.XMin, r.YMin, r.ZMin}
	maxs := [3]int{r.XMax, r.YMax, r.ZMax}
	for i := 0; i < 3; i++ {
		h.Set(naxis[i], HeaderInt(int64(maxs[i]-mins[i]+1)))
		if cur, ok := h.Get(crpix[i]); ok {
			if f, isFloat := cur.Float(); isFloat {
				h.Set(crpix[i], HeaderFloat(f-float64(mins[i])))
				continue
			}
			if iv, isInt := cur.Int(); isInt {
				h.Set(crpix[i], HeaderInt(iv-int64(mins[i])))
				continue
			}
		}
		// Missing keyword: seed with a default per spec.md §7's
		// "warning" kind (missing header keyword supplied with a default).
		h.Set(crpix[i], HeaderFloat(1.0-float64(mins[i])))
	}
}
