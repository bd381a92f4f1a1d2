package menu

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fuelstack/fuelstack/internal/hall"
)

// Fetcher loads a menu for one (hall, period) key. *Service implements it.
type Fetcher interface {
	Menu(ctx context.Context, hallID int, period hall.MealPeriod) ([]Item, error)
}

// BrowserState is an immutable view of the menu browser.
type BrowserState struct {
	// Loading is true while a fetch for the current key is in flight.
	Loading bool

	// HallID and Period identify the current selection.
	HallID int
	Period hall.MealPeriod

	// Loaded is true once the current key's menu has arrived.
	Loaded bool

	// Groups is the station-grouped menu for the current key.
	Groups StationGroups

	// Err is the fetch failure for the current key, if any.
	Err error
}

// Browser tracks the menu for the currently selected (hall, period).
// Every Load supersedes the previous one: a response that arrives for an
// abandoned key is discarded instead of overwriting the current menu.
type Browser struct {
	fetcher Fetcher
	logger  zerolog.Logger

	mu    sync.Mutex
	gen   uint64
	state BrowserState
}

// NewBrowser creates a menu browser over a fetcher.
func NewBrowser(fetcher Fetcher, logger zerolog.Logger) *Browser {
	return &Browser{fetcher: fetcher, logger: logger}
}

// Load switches the browser to a new (hall, period) key and fetches its
// menu in the background. The returned channel closes when this load
// settles, whether its result was applied or discarded.
func (b *Browser) Load(ctx context.Context, hallID int, period hall.MealPeriod) <-chan struct{} {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.state = BrowserState{
		Loading: true,
		HallID:  hallID,
		Period:  period,
	}
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		items, err := b.fetcher.Menu(ctx, hallID, period)
		b.complete(gen, hallID, period, items, err)
	}()
	return done
}

// State returns the current browser state.
func (b *Browser) State() BrowserState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Browser) complete(gen uint64, hallID int, period hall.MealPeriod, items []Item, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		b.logger.Debug().
			Int("hall_id", hallID).
			Str("meal_period", string(period)).
			Msg("discarding superseded menu response")
		return
	}

	if err != nil {
		b.state = BrowserState{
			HallID: hallID,
			Period: period,
			Err:    err,
		}
		return
	}

	b.state = BrowserState{
		HallID: hallID,
		Period: period,
		Loaded: true,
		Groups: GroupByStation(items),
	}
}
