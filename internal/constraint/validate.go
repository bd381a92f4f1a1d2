package constraint

import (
	"strconv"
	"strings"
)

// Validation messages rendered inline next to a range field.
const (
	MsgRequired    = "Required"
	MsgMinNegative = "Min cannot be negative."
	MsgMaxNegative = "Max cannot be negative."
	MsgMinAboveMax = "Min must be ≤ Max."
)

// RangeValue is an inclusive [min, max] bound on a nutrient.
// A nil bound means unconstrained.
type RangeValue struct {
	Min *float64
	Max *float64
}

// Empty reports whether neither bound is set.
func (v RangeValue) Empty() bool {
	return v.Min == nil && v.Max == nil
}

// ParseAmount converts raw field text to an optional amount.
// Empty and malformed input both degrade to absent rather than zero; the
// required-field rule catches the absence where it matters.
func ParseAmount(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &n
}

// Validate checks a single range value. It returns one of the Msg*
// constants, or "" when the value is acceptable.
func Validate(v RangeValue, required bool) string {
	if required && (v.Min == nil || v.Max == nil) {
		return MsgRequired
	}
	if v.Min != nil && *v.Min < 0 {
		return MsgMinNegative
	}
	if v.Max != nil && *v.Max < 0 {
		return MsgMaxNegative
	}
	if v.Min != nil && v.Max != nil && *v.Min > *v.Max {
		return MsgMinAboveMax
	}
	return ""
}
