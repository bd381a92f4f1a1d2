package constraint

import "sort"

// Form holds the meal-generation constraint form: one range per nutrient,
// dietary flag toggles, and selected allergens. Errors become visible per
// field once that field is touched; submit touches everything.
//
// Form is not safe for concurrent use; it belongs to a single screen.
type Form struct {
	fields    []Field
	ranges    map[RangeKey]RangeValue
	flags     map[DietaryFlag]bool
	allergens map[string]bool
	touched   map[RangeKey]bool
	errors    map[RangeKey]string
}

// NewForm creates an empty form over the canonical field table.
func NewForm() *Form {
	return &Form{
		fields:    Fields(),
		ranges:    make(map[RangeKey]RangeValue),
		flags:     make(map[DietaryFlag]bool),
		allergens: make(map[string]bool),
		touched:   make(map[RangeKey]bool),
		errors:    make(map[RangeKey]string),
	}
}

// Fields returns the field descriptors backing this form, in order.
func (f *Form) Fields() []Field {
	fields := make([]Field, len(f.fields))
	copy(fields, f.fields)
	return fields
}

// Range returns the current value for a range key.
func (f *Form) Range(key RangeKey) RangeValue {
	return f.ranges[key]
}

// SetMin records a raw min edit for a range. Malformed text degrades to
// an absent bound.
func (f *Form) SetMin(key RangeKey, raw string) {
	v := f.ranges[key]
	v.Min = ParseAmount(raw)
	f.ranges[key] = v
}

// SetMax records a raw max edit for a range.
func (f *Form) SetMax(key RangeKey, raw string) {
	v := f.ranges[key]
	v.Max = ParseAmount(raw)
	f.ranges[key] = v
}

// SetRange replaces a range wholesale with already-parsed bounds.
func (f *Form) SetRange(key RangeKey, v RangeValue) {
	f.ranges[key] = v
}

// Blur marks a field touched and re-validates only that field.
func (f *Form) Blur(key RangeKey) {
	f.touched[key] = true
	f.validateField(key)
}

// Touched reports whether a field has been interacted with.
func (f *Form) Touched(key RangeKey) bool {
	return f.touched[key]
}

// VisibleError returns the error to render for a field: empty until the
// field is touched, even if it would fail validation.
func (f *Form) VisibleError(key RangeKey) string {
	if !f.touched[key] {
		return ""
	}
	return f.errors[key]
}

// Errors returns a copy of the current error map.
func (f *Form) Errors() map[RangeKey]string {
	errs := make(map[RangeKey]string, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	return errs
}

// HasErrors reports whether any field currently holds a validation error.
// This is the guard the submit orchestration checks; it does not re-run
// validation.
func (f *Form) HasErrors() bool {
	for _, msg := range f.errors {
		if msg != "" {
			return true
		}
	}
	return false
}

// Submit validates every field regardless of interaction history, marks
// them all touched, and reports whether submission may proceed. When it
// may not, firstInvalid names the field to focus, resolved in declared
// field order rather than whatever order a renderer happens to use.
func (f *Form) Submit() (ok bool, firstInvalid RangeKey) {
	ok = true
	for _, field := range f.fields {
		f.touched[field.Key] = true
		f.validateField(field.Key)
		if f.errors[field.Key] != "" && ok {
			ok = false
			firstInvalid = field.Key
		}
	}
	return ok, firstInvalid
}

// ToggleFlag switches a dietary flag on or off. Any subset is legal.
func (f *Form) ToggleFlag(flag DietaryFlag, on bool) {
	if on {
		f.flags[flag] = true
	} else {
		delete(f.flags, flag)
	}
}

// EnabledFlags returns the enabled dietary flags in display order.
func (f *Form) EnabledFlags() []DietaryFlag {
	var enabled []DietaryFlag
	for _, flag := range DietaryFlags() {
		if f.flags[flag] {
			enabled = append(enabled, flag)
		}
	}
	return enabled
}

// SelectAllergen adds or removes an allergen from the excluded set.
// Allergens carry no validation; the set is forwarded verbatim.
func (f *Form) SelectAllergen(name string, on bool) {
	if on {
		f.allergens[name] = true
	} else {
		delete(f.allergens, name)
	}
}

// SelectedAllergens returns the selected allergens in stable order.
func (f *Form) SelectedAllergens() []string {
	names := make([]string, 0, len(f.allergens))
	for name := range f.allergens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *Form) validateField(key RangeKey) {
	field, ok := FieldFor(key)
	if !ok {
		return
	}
	f.errors[key] = Validate(f.ranges[key], field.Required)
}
