package models

const (
	DateKeyLayout = "2006-01-02"

	UserTypeUser  = "user"
	UserTypePlace = "place"
)

// DayStat aggregates every counter recorded on one UTC calendar day.
type DayStat struct {
	Date              string `json:"date"`
	TotalActions      int    `json:"totalActions"`
	PlaceViews        int    `json:"placeViews"`
	RouteViews        int    `json:"routeViews"`
	CategoryViews     int    `json:"categoryViews"`
	PlaceShows        int    `json:"placeShows"`
	UserRegistrations int    `json:"userRegistrations"`
	RouteCreations    int    `json:"routeCreations"`
	ByActionType      Counts `json:"byActionType"`
	ByUserType        Counts `json:"byUserType"`
	ByCategory        Counts `json:"byCategory"`
}

func NewDayStat(dateKey string) *DayStat {
	return &DayStat{
		Date:       dateKey,
		ByUserType: NewCounts(UserTypeUser, UserTypePlace),
	}
}

// DayTable is the statisticsData document: dateKey -> DayStat.
type DayTable = OrderedMap[*DayStat]

func NewDayTable() *DayTable {
	return NewOrderedMap[*DayStat]()
}

// Aggregate is the sum of a set of DayStat records.
type Aggregate struct {
	TotalActions      int    `json:"totalActions"`
	PlaceViews        int    `json:"placeViews"`
	RouteViews        int    `json:"routeViews"`
	CategoryViews     int    `json:"categoryViews"`
	PlaceShows        int    `json:"placeShows"`
	UserRegistrations int    `json:"userRegistrations"`
	RouteCreations    int    `json:"routeCreations"`
	ByActionType      Counts `json:"byActionType"`
	ByUserType        Counts `json:"byUserType"`
	ByCategory        Counts `json:"byCategory"`
}

func newAggregate() Aggregate {
	return Aggregate{ByUserType: NewCounts(UserTypeUser, UserTypePlace)}
}

// PeriodStats covers a date range and lists the stored days it found.
type PeriodStats struct {
	Aggregate
	Days []*DayStat `json:"days"`
}

func NewPeriodStats() *PeriodStats {
	return &PeriodStats{Aggregate: newAggregate(), Days: make([]*DayStat, 0)}
}

// TotalStats covers every stored day.
type TotalStats struct {
	Aggregate
	TotalDays int `json:"totalDays"`
}

func NewTotalStats() *TotalStats {
	return &TotalStats{Aggregate: newAggregate()}
}

// Fold adds one day's counters into the aggregate.
func (p *Aggregate) Fold(day *DayStat) {
	p.TotalActions += day.TotalActions
	p.PlaceViews += day.PlaceViews
	p.RouteViews += day.RouteViews
	p.CategoryViews += day.CategoryViews
	p.PlaceShows += day.PlaceShows
	p.UserRegistrations += day.UserRegistrations
	p.RouteCreations += day.RouteCreations
	p.ByActionType.Merge(day.ByActionType)
	p.ByUserType.Merge(day.ByUserType)
	p.ByCategory.Merge(day.ByCategory)
}
