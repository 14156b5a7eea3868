// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Paper is a bibliographic record held by the library. Title is the natural
// dedup key; ID and AddedAt are assigned once at import and never change.
type Paper struct {
	// ID is an opaque identifier, unique within the library (e.g. "p-1b9d6bcd-...").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title. No two papers in the library share a title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year.
	Year int `json:"year" yaml:"year"`

	// Abstract is the paper abstract, or the executive summary for uploads.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Journal is the journal or source label.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// Citations is the citation count reported by the collaborator.
	Citations int `json:"citations" yaml:"citations"`

	// URL is the originating URL. Empty for uploads.
	URL string `json:"url" yaml:"url"`

	// Tags are free-form labels; order is not significant.
	Tags []string `json:"tags" yaml:"tags"`

	// AddedAt is when the paper entered the library.
	AddedAt time.Time `json:"addedAt" yaml:"added_at"`

	// Analysis is the structured summary attached at ingestion, if any.
	Analysis *AnalysisResult `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// HasTag reports whether the paper carries tag.
func (p Paper) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Candidate is a partial paper description, as returned by discovery search
// or synthesized during ingestion. Citations is a pointer so that an absent
// count can be told apart from zero.
type Candidate struct {
	Title     string          `json:"title" yaml:"title"`
	Authors   []string        `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year      int             `json:"year,omitempty" yaml:"year,omitempty"`
	Abstract  string          `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Journal   string          `json:"journal,omitempty" yaml:"journal,omitempty"`
	Citations *int            `json:"citations,omitempty" yaml:"citations,omitempty"`
	URL       string          `json:"url,omitempty" yaml:"url,omitempty"`
	Tags      []string        `json:"tags,omitempty" yaml:"tags,omitempty"`
	Analysis  *AnalysisResult `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// AnalysisResult is the structured summary the collaborator produces for an
// ingested document. Every field is optional.
type AnalysisResult struct {
	KeyFindings       []string `json:"keyFindings,omitempty" yaml:"key_findings,omitempty"`
	Methodology       string   `json:"methodology,omitempty" yaml:"methodology,omitempty"`
	Limitations       []string `json:"limitations,omitempty" yaml:"limitations,omitempty"`
	FutureWork        string   `json:"futureWork,omitempty" yaml:"future_work,omitempty"`
	SignificanceScore int      `json:"significanceScore,omitempty" yaml:"significance_score,omitempty"`
	ExecutiveSummary  string   `json:"executiveSummary,omitempty" yaml:"executive_summary,omitempty"`
}

// IsEmpty reports whether no field of the analysis carries a value.
func (a *AnalysisResult) IsEmpty() bool {
	if a == nil {
		return true
	}
	return len(a.KeyFindings) == 0 && a.Methodology == "" && len(a.Limitations) == 0 &&
		a.FutureWork == "" && a.SignificanceScore == 0 && a.ExecutiveSummary == ""
}

// Workspace groups papers by ID reference. PaperIDs may contain duplicates
// or IDs of papers that no longer resolve; readers filter them out.
type Workspace struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	PaperIDs    []string  `json:"paperIds" yaml:"paper_ids"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at"`
	Color       string    `json:"color" yaml:"color"`
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in a conversation log. Timestamp is a display
// string fixed at creation.
type ChatMessage struct {
	ID        string `json:"id" yaml:"id"`
	Role      Role   `json:"role" yaml:"role"`
	Content   string `json:"content" yaml:"content"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}
