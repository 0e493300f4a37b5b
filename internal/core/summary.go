package core

import (
	"errors"
	"sort"
)

// GroupField names the catch attribute used to bucket records.
type GroupField string

const (
	ByCatcher  GroupField = "catcher"
	ByBait     GroupField = "bait"
	ByLocation GroupField = "location"
)

var ErrUnknownField = errors.New("unknown group field")

// CategoryCount is the number of records sharing one value of a GroupField.
type CategoryCount struct {
	Value string
	Count int
}

// CatchOverview is what the listing page shows next to the table.
type CatchOverview struct {
	Total      int
	ByCatcher  []CategoryCount
	ByBait     []CategoryCount
	ByLocation []CategoryCount
}

// ParseGroupField maps a query value onto a GroupField.
func ParseGroupField(s string) (GroupField, error) {
	switch f := GroupField(s); f {
	case ByCatcher, ByBait, ByLocation:
		return f, nil
	default:
		return "", ErrUnknownField
	}
}

func (f GroupField) valueOf(c CatchRecord) string {
	switch f {
	case ByCatcher:
		return c.Catcher
	case ByBait:
		return c.Bait
	case ByLocation:
		return c.Location
	}
	return ""
}

// CountBy buckets records by the exact value of field, in first-seen order.
func CountBy(records []CatchRecord, field GroupField) ([]CategoryCount, error) {
	if _, err := ParseGroupField(string(field)); err != nil {
		return nil, err
	}

	out := make([]CategoryCount, 0)
	index := make(map[string]int)
	for _, rec := range records {
		v := field.valueOf(rec)
		if i, ok := index[v]; ok {
			out[i].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, CategoryCount{Value: v, Count: 1})
	}
	return out, nil
}

// SortByCount orders counts from largest to smallest. Ties keep their order.
func SortByCount(counts []CategoryCount) []CategoryCount {
	sorted := append([]CategoryCount(nil), counts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	return sorted
}

// BuildOverview derives the three chart series from a full record set.
func BuildOverview(records []CatchRecord) CatchOverview {
	// The fields are fixed constants, so CountBy cannot fail here.
	catchers, _ := CountBy(records, ByCatcher)
	baits, _ := CountBy(records, ByBait)
	locations, _ := CountBy(records, ByLocation)
	return CatchOverview{
		Total:      len(records),
		ByCatcher:  catchers,
		ByBait:     baits,
		ByLocation: locations,
	}
}
