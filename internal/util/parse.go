package util

import (
	"strconv"
	"strings"
)

// ParseInt parses a string to an integer, returning defaultValue if parsing fails
func ParseInt(s string, defaultValue int) int {
	if val, err := strconv.Atoi(s); err == nil {
		return val
	}
	return defaultValue
}

// ParseMarketIDs parses a comma-separated market-id list ("1,3,7") into a
// slice. Blank and malformed entries are skipped; an empty or absent value
// yields an empty slice, which callers treat as "nothing selected".
func ParseMarketIDs(s string) []uint {
	if s == "" {
		return []uint{}
	}

	parts := strings.Split(s, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if id, err := strconv.ParseUint(p, 10, 32); err == nil {
			ids = append(ids, uint(id))
		}
	}
	return ids
}
