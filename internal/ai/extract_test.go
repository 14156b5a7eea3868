// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractArray(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "bare array", text: `[{"title":"A"}]`, want: `[{"title":"A"}]`},
		{
			name: "markdown fence",
			text: "Here are the papers:\n```json\n[{\"title\":\"A\"},{\"title\":\"B\"}]\n```\nEnjoy.",
			want: `[{"title":"A"},{"title":"B"}]`,
		},
		{
			name: "nested arrays",
			text: `prefix [{"authors":["X","Y"]}] suffix`,
			want: `[{"authors":["X","Y"]}]`,
		},
		{
			name: "bracket inside string",
			text: `[{"title":"On ] and [ in titles"}]`,
			want: `[{"title":"On ] and [ in titles"}]`,
		},
		{
			name: "escaped quote inside string",
			text: `[{"title":"The \"best\" ] paper"}]`,
			want: `[{"title":"The \"best\" ] paper"}]`,
		},
		{
			name: "skips invalid bracket run",
			text: `See [ref one] then [{"title":"A"}]`,
			want: `[{"title":"A"}]`,
		},
		{
			name: "stops at first array not last",
			text: `[1] and later [2]`,
			want: `[1]`,
		},
		{name: "no array", text: "I could not find any papers.", want: ""},
		{name: "unbalanced", text: `[{"title":"A"}`, want: ""},
		{name: "empty", text: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractArray(tt.text))
		})
	}
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "bare object", text: `{"a":1}`, want: `{"a":1}`},
		{
			name: "object with prose",
			text: "Sure! ```json\n{\"keyFindings\":[\"x\"],\"significanceScore\":80}\n``` Hope that helps {smile}",
			want: `{"keyFindings":["x"],"significanceScore":80}`,
		},
		{name: "nested object", text: `x {"a":{"b":"}"}} y`, want: `{"a":{"b":"}"}}`},
		{name: "none", text: "no json here", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractObject(tt.text))
		})
	}
}

func TestDecodeArray(t *testing.T) {
	type item struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name        string
		text        string
		want        []item
		wantSkipped int
		wantErr     error
	}{
		{
			name: "fenced array",
			text: "```json\n[{\"title\":\"A\"},{\"title\":\"B\"}]\n```",
			want: []item{{Title: "A"}, {Title: "B"}},
		},
		{
			name: "citation markers before payload",
			text: "Based on sources [1] and [2], here are the papers:\n```json\n[{\"title\": \"Real Paper\"}]\n```",
			want: []item{{Title: "Real Paper"}},
		},
		{
			name: "string list before payload",
			text: `Keywords ["nlp", "vision"]. Results: [{"title":"A"}]`,
			want: []item{{Title: "A"}},
		},
		{
			name:        "malformed element is skipped",
			text:        `[{"title":"Good Paper"},{"title":42},{"title":"Also Good"}]`,
			want:        []item{{Title: "Good Paper"}, {Title: "Also Good"}},
			wantSkipped: 1,
		},
		{
			name: "empty array",
			text: "No matches: []",
			want: []item{},
		},
		{
			name: "empty array before payload",
			text: `Filters [] applied. [{"title":"A"}]`,
			want: []item{{Title: "A"}},
		},
		{name: "no json", text: "nothing", wantErr: ErrNoJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped, err := DecodeArray[item](tt.text)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSkipped, skipped)
		})
	}

	_, _, err := DecodeArray[item](`[1, 2]`)
	assert.Error(t, err, "numbers do not decode into structs")
	assert.False(t, errors.Is(err, ErrNoJSON))
}

func TestDecodeObject(t *testing.T) {
	type summary struct {
		Methodology string `json:"methodology"`
	}

	got, err := DecodeObject[summary](`result: {"methodology":"survey"}`)
	require.NoError(t, err)
	assert.Equal(t, "survey", got.Methodology)

	got, err = DecodeObject[summary](`Scored {"methodology": 3} first, then {"methodology":"case study"}`)
	require.NoError(t, err)
	assert.Equal(t, "case study", got.Methodology, "objects of the wrong shape are passed over")

	_, err = DecodeObject[summary]("{broken")
	assert.True(t, errors.Is(err, ErrNoJSON))
}
