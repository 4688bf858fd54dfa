package model

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidMapID is returned when an asset name is not a decimal integer.
var ErrInvalidMapID = errors.New("invalid map id")

// MapID identifies an in-game map by the decimal form of its numeric asset name.
type MapID string

// NormalizeMapID parses name as an integer and formats it back, so "000100000"
// and "100000" produce the same MapID.
//
// Surrounding whitespace is ignored. Anything else that is not a base-10
// integer (including the empty string) yields ErrInvalidMapID.
func NormalizeMapID(name string) (MapID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(name), 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMapID, name)
	}
	return MapID(strconv.FormatInt(n, 10)), nil
}

// CompareMapIDs orders map ids numerically, falling back to string order for
// ids that are not integers.
func CompareMapIDs(a, b MapID) int {
	x, errA := strconv.ParseInt(string(a), 10, 64)
	y, errB := strconv.ParseInt(string(b), 10, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(x, y)
	}
	return strings.Compare(string(a), string(b))
}

// MapString holds the display names of a map.
//
// Both fields default to the empty string when the archive has no value.
type MapString struct {
	Street string `json:"street"`
	Map    string `json:"map"`
}

// Locations maps each map to its display names.
type Locations map[MapID]MapString

// Lookup returns the names of id, or an empty MapString when id is unknown.
func (l Locations) Lookup(id MapID) MapString {
	return l[id]
}

// Assignments maps each map to the track it plays. An empty TrackKey means the
// map has no background music.
type Assignments map[MapID]TrackKey

// IDs returns the assigned map ids in numeric order.
func (a Assignments) IDs() []MapID {
	ids := make([]MapID, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, CompareMapIDs)
	return ids
}

// MapRef is one entry of a record's maps list.
type MapRef struct {
	ID     MapID  `json:"id"`
	Street string `json:"street"`
	Map    string `json:"map"`
}

// NewMapRef joins a map id with its display names.
func NewMapRef(id MapID, names MapString) MapRef {
	return MapRef{ID: id, Street: names.Street, Map: names.Map}
}
