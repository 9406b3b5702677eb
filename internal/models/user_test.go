package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPatch_ApplyOnlySetFields(t *testing.T) {
	id := int64(99)
	p := &UserProfile{Name: "Alice", UserType: UserTypeUser}

	name := "Bob"
	UserPatch{Name: &name, TelegramID: &id}.Apply(p)

	assert.Equal(t, "Bob", p.Name)
	assert.Equal(t, UserTypeUser, p.UserType)
	require.NotNil(t, p.TelegramID)
	assert.Equal(t, int64(99), *p.TelegramID)
}

func TestUserProfile_LegacyDocumentWithoutStatistics(t *testing.T) {
	doc := `{"telegramId":null,"name":"Alice","userType":"place","registered":true,"registeredAt":"2024-01-01T00:00:00.000Z"}`

	var p UserProfile
	require.NoError(t, json.Unmarshal([]byte(doc), &p))
	assert.Nil(t, p.TelegramID)
	assert.Nil(t, p.Statistics)
	assert.Equal(t, 2024, p.RegisteredAt.Year())
}

func TestPeriodStats_Fold(t *testing.T) {
	d1 := NewDayStat("2024-01-01")
	d1.TotalActions = 3
	d1.PlaceViews = 2
	d1.ByActionType.Add(ActionPlaceView, 2)
	d1.ByUserType.Add(UserTypeUser, 1)

	d2 := NewDayStat("2024-01-02")
	d2.TotalActions = 1
	d2.RouteCreations = 1
	d2.ByCategory.Add("food", 4)

	agg := NewPeriodStats()
	agg.Fold(d1)
	agg.Fold(d2)

	assert.Equal(t, 4, agg.TotalActions)
	assert.Equal(t, 2, agg.PlaceViews)
	assert.Equal(t, 1, agg.RouteCreations)
	assert.Equal(t, 1, agg.ByUserType.Count(UserTypeUser))
	assert.Equal(t, 4, agg.ByCategory.Count("food"))
}

func TestIdentity_KeepsHostFieldNames(t *testing.T) {
	raw := `{"id":7,"first_name":"Ann","last_name":"Lee","username":"ann","is_bot":true}`

	var id Identity
	require.NoError(t, json.Unmarshal([]byte(raw), &id))
	assert.Equal(t, Identity{ID: 7, FirstName: "Ann", LastName: "Lee", Username: "ann", IsBot: true}, id)

	out, err := json.Marshal(id)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestPeriodAndTotalStats_EmptyShapes(t *testing.T) {
	data, err := json.Marshal(NewPeriodStats())
	require.NoError(t, err)
	var period map[string]any
	require.NoError(t, json.Unmarshal(data, &period))
	assert.Equal(t, []any{}, period["days"])
	assert.Equal(t, float64(0), period["totalActions"])
	assert.NotContains(t, period, "totalDays")

	data, err = json.Marshal(NewTotalStats())
	require.NoError(t, err)
	var total map[string]any
	require.NoError(t, json.Unmarshal(data, &total))
	assert.Equal(t, float64(0), total["totalDays"])
	assert.NotContains(t, total, "days")
}
