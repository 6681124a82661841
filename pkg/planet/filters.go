package planet

import (
	"encoding/json"
	"time"
)

// Filter is a node of a Data API filter tree. Filters marshal to the
// {"type": ..., "field_name": ..., "config": ...} envelope the API expects.
type Filter interface {
	json.Marshaler
	isFilter()
}

type filterEnvelope struct {
	Type      string `json:"type"`
	FieldName string `json:"field_name,omitempty"`
	Config    any    `json:"config"`
}

// GeometryFilter matches scenes whose footprint intersects a geometry.
type GeometryFilter struct {
	FieldName string
	Geometry  json.RawMessage
}

func (f GeometryFilter) isFilter() {}

// MarshalJSON implements json.Marshaler.
func (f GeometryFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(filterEnvelope{
		Type:      "GeometryFilter",
		FieldName: f.FieldName,
		Config:    f.Geometry,
	})
}

// GeomFilter builds a GeometryFilter on the geometry field.
func GeomFilter(geometry json.RawMessage) Filter {
	return GeometryFilter{FieldName: "geometry", Geometry: geometry}
}

// DateRangeFilter matches scenes whose named timestamp property lies in
// an inclusive [gte, lte] range.
type DateRangeFilter struct {
	FieldName string
	GTE       time.Time
	LTE       time.Time
}

func (f DateRangeFilter) isFilter() {}

// MarshalJSON implements json.Marshaler.
func (f DateRangeFilter) MarshalJSON() ([]byte, error) {
	config := map[string]string{}
	if !f.GTE.IsZero() {
		config["gte"] = f.GTE.Format(time.RFC3339)
	}
	if !f.LTE.IsZero() {
		config["lte"] = f.LTE.Format(time.RFC3339)
	}
	return json.Marshal(filterEnvelope{
		Type:      "DateRangeFilter",
		FieldName: f.FieldName,
		Config:    config,
	})
}

// DateRange builds a DateRangeFilter on the named property.
func DateRange(field string, gte, lte time.Time) Filter {
	return DateRangeFilter{FieldName: field, GTE: gte, LTE: lte}
}

// StringInFilter matches scenes whose named property equals one of the
// given values.
type StringInFilter struct {
	FieldName string
	Values    []string
}

func (f StringInFilter) isFilter() {}

// MarshalJSON implements json.Marshaler.
func (f StringInFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(filterEnvelope{
		Type:      "StringInFilter",
		FieldName: f.FieldName,
		Config:    f.Values,
	})
}

// StringIn builds a StringInFilter on the named property.
func StringIn(field string, values ...string) Filter {
	return StringInFilter{FieldName: field, Values: values}
}

// AndFilter matches scenes satisfying every child filter.
type AndFilter struct {
	Children []Filter
}

func (f AndFilter) isFilter() {}

// MarshalJSON implements json.Marshaler.
func (f AndFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(filterEnvelope{
		Type:   "AndFilter",
		Config: f.Children,
	})
}

// And combines filters with a logical AND. A single filter is returned
// unwrapped.
func And(filters ...Filter) Filter {
	if len(filters) == 1 {
		return filters[0]
	}
	return AndFilter{Children: filters}
}
