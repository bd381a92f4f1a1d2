package menu

// StationGroups partitions a menu by station for display. Stations keep
// the order they first appear in the source menu, and items keep their
// relative order within a station. Station names are compared exactly:
// "Grill" and "grill" are distinct stations, as upstream data intends.
type StationGroups struct {
	stations []string
	items    map[string][]Item
}

// GroupByStation partitions items by station name.
func GroupByStation(items []Item) StationGroups {
	g := StationGroups{items: make(map[string][]Item)}
	for _, item := range items {
		if _, seen := g.items[item.Station]; !seen {
			g.stations = append(g.stations, item.Station)
		}
		g.items[item.Station] = append(g.items[item.Station], item)
	}
	return g
}

// Stations returns station names in first-appearance order.
func (g StationGroups) Stations() []string {
	stations := make([]string, len(g.stations))
	copy(stations, g.stations)
	return stations
}

// Items returns the items for a station, in menu order.
func (g StationGroups) Items(station string) []Item {
	items := make([]Item, len(g.items[station]))
	copy(items, g.items[station])
	return items
}

// Len returns the total number of grouped items.
func (g StationGroups) Len() int {
	n := 0
	for _, items := range g.items {
		n += len(items)
	}
	return n
}

// Flatten returns every item ordered by station, then by original menu
// order. Regrouping the flattened sequence reproduces the same groups.
func (g StationGroups) Flatten() []Item {
	flat := make([]Item, 0, g.Len())
	for _, station := range g.stations {
		flat = append(flat, g.items[station]...)
	}
	return flat
}
