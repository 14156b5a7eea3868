// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"strings"
	"time"

	"github.com/pdiddy/research-hub/pkg/types"
)

// Normalize turns a candidate into a full paper. id and addedAt are always
// the fresh values passed in; missing citations become 0 and missing tags
// and authors become empty lists. The analysis is copied, so the caller
// keeps no reference into the store. Existence is decided elsewhere, by exact
// title match only.
func Normalize(c types.Candidate, addedAt time.Time, id string) types.Paper {
	citations := 0
	if c.Citations != nil && *c.Citations > 0 {
		citations = *c.Citations
	}

	authors := c.Authors
	if authors == nil {
		authors = []string{}
	}
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}

	return types.Paper{
		ID:        id,
		Title:     c.Title,
		Authors:   cloneStrings(authors),
		Year:      c.Year,
		Abstract:  c.Abstract,
		Journal:   c.Journal,
		Citations: citations,
		URL:       c.URL,
		Tags:      cloneStrings(tags),
		AddedAt:   addedAt,
		Analysis:  cloneAnalysis(c.Analysis),
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
