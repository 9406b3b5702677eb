package models

// PlaceStat counts how many times a place card was shown.
type PlaceStat struct {
	PlaceID    string   `json:"placeId"`
	PlaceName  string   `json:"placeName"`
	ShowCount  int      `json:"showCount"`
	Categories []string `json:"categories"`
	FirstShown ISOTime  `json:"firstShown"`
	LastShown  ISOTime  `json:"lastShown"`
}

// PlaceTable is the placeStatisticsData document: placeId -> PlaceStat.
type PlaceTable = OrderedMap[*PlaceStat]

func NewPlaceTable() *PlaceTable {
	return NewOrderedMap[*PlaceStat]()
}

// CategoryStat is one row of the category roll-up over place shows.
type CategoryStat struct {
	Category   string `json:"category"`
	ShowCount  int    `json:"showCount"`
	PlaceCount int    `json:"placeCount"`
}
