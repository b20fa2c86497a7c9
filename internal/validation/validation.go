package validation

import (
	"math"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

// NonNegativeFloat also rejects NaN so it never reaches the totals
// computation, where it would propagate silently.
func NonNegativeFloat(field string, val float64, v Violations) {
	if math.IsNaN(val) {
		v[field] = "not_a_number"
		return
	}
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if math.IsNaN(val) {
		v[field] = "not_a_number"
		return
	}
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}
