// internal/catalog/tags.go
package catalog

import (
	"strings"

	"github.com/retailx/retailx-backend/internal/models"
)

// NormalizeTags turns a tags value into the stored list form. A delimited
// string is split on commas, trimmed and stripped of empty pieces; a list
// is passed through as given; anything else yields an empty list.
func NormalizeTags(in models.TagsInput) []string {
	if s, ok := in.String(); ok {
		tags := []string{}
		for _, piece := range strings.Split(s, ",") {
			if piece = strings.TrimSpace(piece); piece != "" {
				tags = append(tags, piece)
			}
		}
		return tags
	}
	if list, ok := in.List(); ok && list != nil {
		return list
	}
	return []string{}
}
