package models

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
)

const (
	ActionPlaceView        = "place_view"
	ActionRouteView        = "route_view"
	ActionCategoryView     = "category_view"
	ActionPlaceShow        = "place_show"
	ActionUserRegistration = "user_registration"
	ActionRouteCreation    = "route_creation"

	EntityPlace    = "place"
	EntityRoute    = "route"
	EntityCategory = "category"
)

// OpaqueID is an identifier compared for equality only. Older documents
// carry numeric ids; those decode into their decimal text.
type OpaqueID string

func (id *OpaqueID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = OpaqueID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if f, err := n.Float64(); err == nil {
		*id = OpaqueID(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	*id = OpaqueID(n.String())
	return nil
}

// Action is what a caller hands to the history log.
type Action struct {
	UserID     string
	UserType   string
	ActionType string
	EntityID   string
	EntityName string
	EntityType string
	Metadata   map[string]any
	Extra      map[string]any
}

// HistoryEntry is one immutable record of the activity log. Extra holds
// caller-supplied fields outside the named set; they are flattened into the
// JSON object, and a named field always wins over an extra of the same name.
type HistoryEntry struct {
	ID         OpaqueID       `json:"id"`
	Timestamp  ISOTime        `json:"timestamp"`
	UserID     OpaqueID       `json:"userId"`
	UserType   string         `json:"userType"`
	ActionType string         `json:"actionType"`
	EntityID   OpaqueID       `json:"entityId"`
	EntityName string         `json:"entityName"`
	EntityType string         `json:"entityType"`
	Metadata   map[string]any `json:"metadata"`
	Extra      map[string]any `json:"-"`
}

var historyEntryFields = map[string]struct{}{
	"id": {}, "timestamp": {}, "userId": {}, "userType": {}, "actionType": {},
	"entityId": {}, "entityName": {}, "entityType": {}, "metadata": {},
}

func IsHistoryEntryField(name string) bool {
	_, ok := historyEntryFields[name]
	return ok
}

func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	type plain HistoryEntry
	p := plain(e)
	if p.Metadata == nil {
		p.Metadata = map[string]any{}
	}
	base, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	extra := make(map[string]any, len(e.Extra))
	for k, v := range e.Extra {
		if !IsHistoryEntryField(k) {
			extra[k] = v
		}
	}
	if len(extra) == 0 {
		return base, nil
	}

	tail, err := json.Marshal(extra)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(base)+len(tail))
	out = append(out, base[:len(base)-1]...)
	out = append(out, ',')
	out = append(out, tail[1:]...)
	return out, nil
}

func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	type plain HistoryEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if IsHistoryEntryField(k) {
			continue
		}
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return err
		}
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		p.Extra[k] = value
	}

	*e = HistoryEntry(p)
	return nil
}
