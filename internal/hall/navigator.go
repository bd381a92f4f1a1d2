package hall

import "errors"

// Navigation errors.
var (
	ErrNoHallSelected   = errors.New("no dining hall selected")
	ErrHallAlreadySet   = errors.New("a dining hall is already selected")
	ErrPeriodNotOffered = errors.New("meal period not offered today")
)

// Step identifies which selection screen is active.
type Step string

// Selection steps.
const (
	StepPickHall   Step = "pick_hall"
	StepPickPeriod Step = "pick_period"
)

// Selection is the handoff produced when a meal period is chosen.
// It carries everything the menu screen needs to mount.
type Selection struct {
	HallID int
	Period MealPeriod
}

// Navigator is the two-step hall/period selection state machine.
// It starts at StepPickHall; selecting a hall advances to StepPickPeriod,
// and Back returns to StepPickHall. Choosing a period is an exit from the
// machine, not a third state.
type Navigator struct {
	step     Step
	selected *Hall
}

// NewNavigator creates a Navigator at the hall-picking step.
func NewNavigator() *Navigator {
	return &Navigator{step: StepPickHall}
}

// Step returns the active selection step.
func (n *Navigator) Step() Step {
	return n.step
}

// SelectedHall returns the selected hall, or nil before one is picked.
func (n *Navigator) SelectedHall() *Hall {
	if n.selected == nil {
		return nil
	}
	cpy := *n.selected
	return &cpy
}

// SelectHall picks a hall and advances to the period-picking step.
// There is no skip-ahead path: selecting while already on the period step
// is rejected.
func (n *Navigator) SelectHall(h Hall) error {
	if n.step != StepPickHall {
		return ErrHallAlreadySet
	}
	cpy := h
	n.selected = &cpy
	n.step = StepPickPeriod
	return nil
}

// Back clears the selected hall and returns to the hall-picking step.
func (n *Navigator) Back() {
	n.selected = nil
	n.step = StepPickHall
}

// OfferedPeriods returns the periods the selected hall serves today.
// A hall listed with no periods is still orderable: it is treated as
// offering all three. Before a hall is selected the offer is empty.
func (n *Navigator) OfferedPeriods() []MealPeriod {
	if n.selected == nil {
		return nil
	}
	return OfferedPeriods(*n.selected)
}

// ChoosePeriod finalizes the selection and returns the menu-screen handoff.
// The navigator itself does not transition; the caller discards it (or calls
// Back) once the handoff is consumed.
func (n *Navigator) ChoosePeriod(p MealPeriod) (Selection, error) {
	if n.step != StepPickPeriod || n.selected == nil {
		return Selection{}, ErrNoHallSelected
	}
	for _, offered := range OfferedPeriods(*n.selected) {
		if offered == p {
			return Selection{HallID: n.selected.ID, Period: p}, nil
		}
	}
	return Selection{}, ErrPeriodNotOffered
}

// OfferedPeriods resolves the offered-period fallback for a hall.
func OfferedPeriods(h Hall) []MealPeriod {
	if len(h.MealsToday) == 0 {
		return AllMealPeriods()
	}
	periods := make([]MealPeriod, len(h.MealsToday))
	copy(periods, h.MealsToday)
	return periods
}
