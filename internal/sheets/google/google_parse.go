package google

import (
	"fmt"
	"strconv"
	"strings"

	"fishlog/internal/core"
)

// header is the first row written to an empty catch sheet.
var header = []any{"ID", "Species", "Weight", "Bait", "Location", "Date", "Time", "Catcher", "Image"}

// catchRow renders a record as a sheet row in header order.
func catchRow(rec core.CatchRecord) []any {
	weight := ""
	if rec.Weight != nil {
		weight = strconv.FormatFloat(*rec.Weight, 'f', -1, 64)
	}
	return []any{
		rec.ID,
		rec.Species,
		weight,
		rec.Bait,
		rec.Location,
		rec.DateOfCatch,
		rec.TimeOfCatch,
		rec.Catcher,
		rec.ImageRef,
	}
}

// parseIDs reads catch ids from a column A matrix. Header and blank rows are skipped.
func parseIDs(values [][]any) []int64 {
	ids := make([]int64, 0, len(values))
	for _, row := range values {
		cols := toStrings(row)
		if id, ok := parseID(safeGet(cols, 0)); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// findRowByID returns the zero-based row index holding id, or -1.
func findRowByID(values [][]any, id int64) int {
	for i, row := range values {
		cols := toStrings(row)
		if got, ok := parseID(safeGet(cols, 0)); ok && got == id {
			return i
		}
	}
	return -1
}

func parseID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
