// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Model output is loosely typed: years arrive as "2017", authors as a single
// string, scores as 87.5. The decoders below accept those shapes instead of
// failing the whole response.

// flexInt accepts a JSON number or a numeric string. Anything else leaves
// it unset.
type flexInt struct {
	value int
	set   bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.value = int(v)
	f.set = true
	return nil
}

// flexStrings accepts a list of strings or a single string.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil && strings.TrimSpace(s) != "" {
		*f = []string{s}
	}
	return nil
}

// UnmarshalJSON decodes a candidate leniently.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title     string          `json:"title"`
		Authors   flexStrings     `json:"authors"`
		Year      flexInt         `json:"year"`
		Abstract  string          `json:"abstract"`
		Journal   string          `json:"journal"`
		Citations flexInt         `json:"citations"`
		URL       string          `json:"url"`
		Tags      flexStrings     `json:"tags"`
		Analysis  *AnalysisResult `json:"analysis"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Candidate{
		Title:    strings.TrimSpace(raw.Title),
		Authors:  raw.Authors,
		Year:     raw.Year.value,
		Abstract: raw.Abstract,
		Journal:  raw.Journal,
		URL:      raw.URL,
		Tags:     raw.Tags,
		Analysis: raw.Analysis,
	}
	if raw.Citations.set {
		n := raw.Citations.value
		c.Citations = &n
	}
	return nil
}

// maxSignificance is the top of the 1-100 significance scale.
const maxSignificance = 100

// UnmarshalJSON decodes an analysis leniently and clamps the significance
// score into 0-100, where 0 means absent.
func (a *AnalysisResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		KeyFindings       flexStrings `json:"keyFindings"`
		Methodology       string      `json:"methodology"`
		Limitations       flexStrings `json:"limitations"`
		FutureWork        string      `json:"futureWork"`
		SignificanceScore flexInt     `json:"significanceScore"`
		ExecutiveSummary  string      `json:"executiveSummary"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	score := raw.SignificanceScore.value
	switch {
	case score < 0:
		score = 0
	case score > maxSignificance:
		score = maxSignificance
	}

	*a = AnalysisResult{
		KeyFindings:       raw.KeyFindings,
		Methodology:       raw.Methodology,
		Limitations:       raw.Limitations,
		FutureWork:        raw.FutureWork,
		SignificanceScore: score,
		ExecutiveSummary:  raw.ExecutiveSummary,
	}
	return nil
}
