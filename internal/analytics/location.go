package analytics

import "strings"

// StateFromLocation returns the trimmed last comma-separated part of loc.
func StateFromLocation(loc string) string {
	if i := strings.LastIndex(loc, ","); i >= 0 {
		loc = loc[i+1:]
	}
	return strings.TrimSpace(loc)
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
