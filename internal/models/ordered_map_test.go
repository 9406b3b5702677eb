package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMap_KeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("b", 4)

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	assert.Equal(t, []int{4, 2, 3}, m.Values())
	assert.Equal(t, 3, m.Len())
}

func TestOrderedMap_Delete(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Delete("a")
	m.Delete("missing")

	assert.Equal(t, []string{"b"}, m.Keys())
	_, ok := m.Get("a")
	assert.False(t, ok)
}

func TestOrderedMap_ZeroValueUsable(t *testing.T) {
	var m OrderedMap[string]
	m.Set("k", "v")
	v, ok := m.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestOrderedMap_JSONPreservesDocumentOrder(t *testing.T) {
	var m OrderedMap[int]
	require.NoError(t, json.Unmarshal([]byte(`{"z":1,"10":2,"a":3}`), &m))
	assert.Equal(t, []string{"z", "10", "a"}, m.Keys())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"10":2,"a":3}`, string(out))
}

func TestOrderedMap_JSONNullIsEmpty(t *testing.T) {
	var m OrderedMap[int]
	m.Set("stale", 1)
	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Equal(t, 0, m.Len())
}

func TestOrderedMap_JSONRejectsArray(t *testing.T) {
	var m OrderedMap[int]
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &m))
}

func TestOrderedMap_JSONPointerValues(t *testing.T) {
	table := NewPlaceTable()
	require.NoError(t, json.Unmarshal([]byte(`{"p2":{"placeId":"p2","showCount":3},"p1":{"placeId":"p1","showCount":1}}`), table))

	require.Equal(t, []string{"p2", "p1"}, table.Keys())
	p2, _ := table.Get("p2")
	assert.Equal(t, 3, p2.ShowCount)
}

func TestCounts_AddMergeSum(t *testing.T) {
	a := NewCounts("user", "place")
	a.Add("user", 2)
	a.Add("guest", 1)

	b := NewCounts()
	b.Add("place", 5)
	b.Add("robot", 1)

	a.Merge(b)
	assert.Equal(t, []string{"user", "place", "guest", "robot"}, a.Keys())
	assert.Equal(t, map[string]int{"user": 2, "place": 5, "guest": 1, "robot": 1}, a.Map())
	assert.Equal(t, 9, a.Sum())
	assert.Equal(t, 0, a.Count("absent"))
}

func TestCounts_EmbeddedJSON(t *testing.T) {
	day := NewDayStat("2024-01-01")
	day.ByActionType.Add(ActionPlaceView, 2)

	out, err := json.Marshal(day)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"byActionType":{"place_view":2}`)
	assert.Contains(t, string(out), `"byUserType":{"user":0,"place":0}`)
	assert.Contains(t, string(out), `"byCategory":{}`)

	var back DayStat
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, 2, back.ByActionType.Count(ActionPlaceView))
	assert.Equal(t, []string{"user", "place"}, back.ByUserType.Keys())
}
