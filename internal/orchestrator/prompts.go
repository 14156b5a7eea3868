// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/research-hub/pkg/types"
)

var searchPromptTmpl = template.Must(template.New("search").Parse(`Search for high-quality academic research papers related to: "{{.Query}}".
Provide exactly {{.Count}} real papers.
Return the results strictly as a JSON array of objects.
Each object must have: title, authors (array of strings), year (number), abstract (string), journal (string), citations (number), url (string), and tags (array of strings).

Return ONLY the JSON array inside markdown code blocks.`))

var summarizePromptTmpl = template.Must(template.New("summarize").Parse(`Provide a detailed, professional academic summary for a paper titled: "{{.Title}}".
Use your internal knowledge and search to find real information if it exists.

Return a JSON object with:
- keyFindings: Array of strings
- methodology: String
- limitations: Array of strings
- futureWork: String
- significanceScore: Number (1-100)
- executiveSummary: String (professional abstract)

Return ONLY the JSON.`))

var labPromptTmpl = template.Must(template.New("lab").Parse(`TASK: {{.Tool}}

RESEARCH CONTEXT:
{{.Context}}

Instructions:
Perform deep-dive analysis. If "Semantic Weaver", identify hidden connections.
If "Conflict Resolver", highlight methodology disagreements.
If "Synthesis Engine", create a summary of common themes.

Format as professional Markdown.`))

// noPapersContext stands in for the lab context of an empty library.
const noPapersContext = "No papers in workspace."

func renderSearchPrompt(query string, count int) (string, error) {
	return execute(searchPromptTmpl, struct {
		Query string
		Count int
	}{query, count})
}

func renderSummarizePrompt(title string) (string, error) {
	return execute(summarizePromptTmpl, struct{ Title string }{title})
}

func renderLabPrompt(tool LabTool, papers []types.Paper) (string, error) {
	return execute(labPromptTmpl, struct {
		Tool    LabTool
		Context string
	}{tool, labContext(papers)})
}

// labContext joins every paper's title and abstract.
func labContext(papers []types.Paper) string {
	if len(papers) == 0 {
		return noPapersContext
	}
	blocks := make([]string, len(papers))
	for i, p := range papers {
		blocks[i] = fmt.Sprintf("Title: %s\nAbstract: %s", p.Title, p.Abstract)
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}
