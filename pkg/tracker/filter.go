package tracker

import (
	"strings"

	"github.com/mxpv/codetracker/pkg/model"
)

// Query narrows down a contest listing
type Query struct {
	// Search is a case-insensitive substring to look for in contest titles
	Search string
	// Platforms to include. Nil means all platforms, an empty non-nil slice means none.
	Platforms []model.Platform
	// BookmarkedOnly keeps bookmarked contests only
	BookmarkedOnly bool
}

// Filter returns contests matching the query, order is preserved
func Filter(contests []*model.Contest, query Query) []*model.Contest {
	search := strings.ToLower(query.Search)

	var platforms map[model.Platform]bool
	if query.Platforms != nil {
		platforms = make(map[model.Platform]bool, len(query.Platforms))
		for _, p := range query.Platforms {
			platforms[p] = true
		}
	}

	out := make([]*model.Contest, 0, len(contests))
	for _, contest := range contests {
		if platforms != nil && !platforms[contest.Platform] {
			continue
		}

		if query.BookmarkedOnly && !contest.IsBookmarked {
			continue
		}

		if search != "" && !strings.Contains(strings.ToLower(contest.Title), search) {
			continue
		}

		out = append(out, contest)
	}

	return out
}
