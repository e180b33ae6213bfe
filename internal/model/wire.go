package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var jsonNull = []byte("null")

// CodeList is an ordered list of codes or names. The jobs API sends these
// either as a list or as a single scalar; strings and numbers are accepted.
type CodeList []string

// UnmarshalJSON accepts null, a string, a number, or a list of those. Values
// of any other shape are dropped rather than failing the enclosing posting.
func (c *CodeList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		*c = nil
		return nil
	}

	if data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("code list: %w", err)
		}
		out := make(CodeList, 0, len(items))
		for _, item := range items {
			if s, ok, err := scalarString(item); err == nil && ok {
				out = append(out, s)
			}
		}
		*c = out
		return nil
	}

	s, ok, err := scalarString(data)
	if err != nil || !ok {
		*c = nil
		return nil
	}
	*c = CodeList{s}
	return nil
}

// First returns the first code, or "" for an empty list.
func (c CodeList) First() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// scalarString decodes a JSON string or number; ok is false for null and "".
func scalarString(data json.RawMessage) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return "", false, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, err
		}
		s = strings.TrimSpace(s)
		return s, s != "", nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", false, fmt.Errorf("expected string or number, got %s", data)
	}
	return n.String(), true, nil
}

// OptionalFloat is a number that may be absent, null, or sent as a string.
type OptionalFloat struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	s, ok, err := scalarString(data)
	if err != nil || !ok {
		*f = OptionalFloat{}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = OptionalFloat{}
		return nil
	}
	*f = OptionalFloat{Value: v, Valid: true}
	return nil
}

// Ptr returns nil when the value is absent.
func (f OptionalFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// dateLayouts are tried in order when decoding upstream dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// OptionalTime is a timestamp that may be absent or in one of several layouts.
// Unparseable values decode as absent rather than failing the whole posting.
type OptionalTime struct {
	Time  time.Time
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *OptionalTime) UnmarshalJSON(data []byte) error {
	*t = OptionalTime{}
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			*t = OptionalTime{Time: ts.UTC(), Valid: true}
			return nil
		}
	}
	return nil
}

// Ptr returns nil when the value is absent.
func (t OptionalTime) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	ts := t.Time
	return &ts
}

// FlexGeoPoint decodes {"lat":..,"lon":..}, a "lat,lon" string, or a
// [lon, lat] array.
type FlexGeoPoint struct {
	GeoPoint
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *FlexGeoPoint) UnmarshalJSON(data []byte) error {
	*g = FlexGeoPoint{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	switch data[0] {
	case '{':
		var obj struct {
			Lat OptionalFloat `json:"lat"`
			Lon OptionalFloat `json:"lon"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		if obj.Lat.Valid && obj.Lon.Valid {
			*g = FlexGeoPoint{GeoPoint: GeoPoint{Lat: obj.Lat.Value, Lon: obj.Lon.Value}, Valid: true}
		}
	case '[':
		var pair []float64
		if err := json.Unmarshal(data, &pair); err != nil || len(pair) != 2 {
			return nil
		}
		*g = FlexGeoPoint{GeoPoint: GeoPoint{Lat: pair[1], Lon: pair[0]}, Valid: true}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return nil
		}
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errLat == nil && errLon == nil {
			*g = FlexGeoPoint{GeoPoint: GeoPoint{Lat: lat, Lon: lon}, Valid: true}
		}
	}
	return nil
}

// Point returns nil for a missing or unparseable location.
func (g *FlexGeoPoint) Point() *GeoPoint {
	if g == nil || !g.Valid {
		return nil
	}
	p := g.GeoPoint
	return &p
}
