package domain

const kgToLb = 2.2046226218

// Units is a unit of body weight.
type Units string

const (
	UnitsKg Units = "kg"
	UnitsLb Units = "lb"
)

// Valid reports whether u is a known unit.
func (u Units) Valid() bool { return u == UnitsKg || u == UnitsLb }

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to Units) float64 {
	if from == to {
		return v
	}
	if from == UnitsKg && to == UnitsLb {
		return v * kgToLb
	}
	if from == UnitsLb && to == UnitsKg {
		return v / kgToLb
	}
	return v
}
