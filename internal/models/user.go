package models

// Identity is the user object exposed by the embedding host, if any. It
// keeps the host's field names.
type Identity struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	IsBot     bool   `json:"is_bot"`
}

// UserStats are the personal activity counters embedded in a profile.
type UserStats struct {
	TotalPlacesViewed     int      `json:"totalPlacesViewed"`
	TotalRoutesViewed     int      `json:"totalRoutesViewed"`
	TotalCategoriesViewed int      `json:"totalCategoriesViewed"`
	ViewedCategories      Counts   `json:"viewedCategories"`
	ViewedPlaces          Counts   `json:"viewedPlaces"`
	ViewedRoutes          []string `json:"viewedRoutes"`
	LastActivity          ISOTime  `json:"lastActivity"`
}

func NewUserStats() *UserStats {
	return &UserStats{ViewedRoutes: []string{}}
}

// UserProfile is the single device-local profile stored in userData.
type UserProfile struct {
	TelegramID   *int64     `json:"telegramId"`
	Name         string     `json:"name"`
	UserType     string     `json:"userType"`
	Registered   bool       `json:"registered"`
	RegisteredAt ISOTime    `json:"registeredAt"`
	Statistics   *UserStats `json:"statistics,omitempty"`
}

// UserPatch is a shallow partial update; nil fields are left untouched.
type UserPatch struct {
	TelegramID *int64
	Name       *string
	UserType   *string
	Registered *bool
	Statistics *UserStats
}

// Apply merges the non-nil fields of the patch over p.
func (patch UserPatch) Apply(p *UserProfile) {
	if patch.TelegramID != nil {
		id := *patch.TelegramID
		p.TelegramID = &id
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.UserType != nil {
		p.UserType = *patch.UserType
	}
	if patch.Registered != nil {
		p.Registered = *patch.Registered
	}
	if patch.Statistics != nil {
		p.Statistics = patch.Statistics
	}
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type StatsSummary struct {
	TotalPlacesViewed     int             `json:"totalPlacesViewed"`
	TotalRoutesViewed     int             `json:"totalRoutesViewed"`
	TotalCategoriesViewed int             `json:"totalCategoriesViewed"`
	TopCategories         []CategoryCount `json:"topCategories"`
	LastActivity          ISOTime         `json:"lastActivity"`
}
