package models

// CategoryAll is the category sentinel meaning "no category restriction".
const CategoryAll = "all"

type FilterMode string

const (
	// FilterLastWins recomputes the view from the full collection using only
	// the filter that was just changed.
	FilterLastWins FilterMode = "last_filter_wins"
	// FilterComposed ANDs every stored criterion on each recompute.
	FilterComposed FilterMode = "composed"
)

func ParseFilterMode(s string) (FilterMode, bool) {
	switch FilterMode(s) {
	case FilterLastWins, "":
		return FilterLastWins, true
	case FilterComposed:
		return FilterComposed, true
	}
	return FilterLastWins, false
}

type FilterCriteria struct {
	CategoryName     string  `json:"category_name"`
	MaxPrice         float64 `json:"max_price"`
	AvailabilityOnly bool    `json:"availability_only"`
}

type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
