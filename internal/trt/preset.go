package trt

import "strings"

// MarkerPreset is a named rule for picking a marker to use as FFOA or LFOA.
type MarkerPreset struct {
	Name    string
	Color   *MarkerColor
	Author  *string
	Comment *string
}

// Match reports whether marker satisfies every criterion of the preset.
//
// Every criterion must be set for a preset to match anything. The Author and
// Comment criteria are satisfied when the preset text does NOT occur in the
// marker's text.
func (p *MarkerPreset) Match(marker MarkerInfo) bool {
	return p.Color != nil && *p.Color == marker.Color &&
		p.Author != nil && !strings.Contains(marker.Author, *p.Author) &&
		p.Comment != nil && !strings.Contains(marker.Comment, *p.Comment)
}
