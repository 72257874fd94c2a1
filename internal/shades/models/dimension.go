package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// ============================================================
// Fractions
// ============================================================

// Fraction is an eighth-inch increment as entered in the dimension form.
type Fraction string

const (
	FractionZero          Fraction = "0"
	FractionOneEighth     Fraction = "1/8"
	FractionOneQuarter    Fraction = "1/4"
	FractionThreeEighths  Fraction = "3/8"
	FractionOneHalf       Fraction = "1/2"
	FractionFiveEighths   Fraction = "5/8"
	FractionThreeQuarters Fraction = "3/4"
	FractionSevenEighths  Fraction = "7/8"
)

var fractionOrder = []Fraction{
	FractionZero,
	FractionOneEighth,
	FractionOneQuarter,
	FractionThreeEighths,
	FractionOneHalf,
	FractionFiveEighths,
	FractionThreeQuarters,
	FractionSevenEighths,
}

var fractionValues = map[Fraction]float64{
	FractionZero:          0,
	FractionOneEighth:     0.125,
	FractionOneQuarter:    0.25,
	FractionThreeEighths:  0.375,
	FractionOneHalf:       0.5,
	FractionFiveEighths:   0.625,
	FractionThreeQuarters: 0.75,
	FractionSevenEighths:  0.875,
}

// Fractions lists the selectable fractions in ascending order.
func Fractions() []Fraction {
	out := make([]Fraction, len(fractionOrder))
	copy(out, fractionOrder)
	return out
}

// Decimal resolves the fraction through the lookup table. Unknown values are 0.
func (f Fraction) Decimal() float64 {
	return fractionValues[f]
}

// ============================================================
// Dimension
// ============================================================

type Dimension struct {
	Whole    float64  `json:"whole"`
	Fraction Fraction `json:"fraction,omitempty"`
}

func Inches(whole float64, fraction Fraction) Dimension {
	return Dimension{Whole: whole, Fraction: fraction}
}

// Value is the effective length in inches.
func (d Dimension) Value() float64 {
	return d.Whole + d.Fraction.Decimal()
}

// String renders the dimension the way it is shown to customers, e.g. 36 3/8".
func (d Dimension) String() string {
	whole := strconv.FormatFloat(d.Whole, 'f', -1, 64)
	if d.Fraction.Decimal() == 0 {
		return whole + `"`
	}
	return fmt.Sprintf(`%s %s"`, whole, d.Fraction)
}

// ============================================================
// Measurements
// ============================================================

// Measurements holds the dimension values for one shape. It only carries the
// fields the shape declares; see NewMeasurements.
type Measurements struct {
	keys   []string
	values map[string]Dimension
}

// NewMeasurements keeps the declared fields, in declaration order, and drops
// everything else. Declared fields without a value are left unset.
func NewMeasurements(fields []Field, values map[string]Dimension) Measurements {
	m := Measurements{values: make(map[string]Dimension, len(fields))}
	for _, f := range fields {
		d, ok := values[f.Key]
		if !ok {
			continue
		}
		m.keys = append(m.keys, f.Key)
		m.values[f.Key] = d
	}
	return m
}

// Restrict returns a copy limited to the given fields.
func (m Measurements) Restrict(fields []Field) Measurements {
	return NewMeasurements(fields, m.values)
}

// With returns a copy with key set to d.
func (m Measurements) With(key string, d Dimension) Measurements {
	out := Measurements{values: make(map[string]Dimension, len(m.values)+1)}
	out.keys = append(out.keys, m.keys...)
	for k, v := range m.values {
		out.values[k] = v
	}
	if _, ok := out.values[key]; !ok {
		out.keys = append(out.keys, key)
	}
	out.values[key] = d
	return out
}

func (m Measurements) Get(key string) (Dimension, bool) {
	d, ok := m.values[key]
	return d, ok
}

// Value returns the effective inches for key, or 0 when unset.
func (m Measurements) Value(key string) float64 {
	return m.values[key].Value()
}

// Keys returns the populated field keys in declaration order.
func (m Measurements) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m Measurements) Len() int {
	return len(m.keys)
}

// Map returns a copy of the raw values.
func (m Measurements) Map() map[string]Dimension {
	out := make(map[string]Dimension, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

func (m Measurements) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Map())
}

// UnmarshalJSON loads stored values as-is. Callers re-restrict to the shape's
// fields before pricing.
func (m *Measurements) UnmarshalJSON(data []byte) error {
	var raw map[string]Dimension
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.values = make(map[string]Dimension, len(raw))
	m.keys = m.keys[:0]
	for k, v := range raw {
		m.keys = append(m.keys, k)
		m.values[k] = v
	}
	sort.Strings(m.keys)
	return nil
}
