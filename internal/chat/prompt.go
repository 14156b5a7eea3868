// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chat

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/pdiddy/research-hub/pkg/types"
)

// Turn is one prior exchange line carried in a prompt.
type Turn struct {
	Role    types.Role
	Content string
}

// Speaker returns the label a turn is rendered with.
func (t Turn) Speaker() string {
	if t.Role == types.RoleUser {
		return "User"
	}
	return "Assistant"
}

// promptData is what the chat templates render.
type promptData struct {
	Query   string
	Papers  []types.Paper
	History []Turn
}

// brainyPromptTmpl lists the titles of the whole library; it is never scoped
// to a workspace.
var brainyPromptTmpl = template.Must(template.New("brainy").Parse(`Your name is Brainy. You are an elite AI research assistant.

CONTEXT:
{{if .Papers}}You have access to the following papers in the user's workspace:
{{range $i, $p := .Papers}}{{if $i}}
{{end}}- {{$p.Title}}{{end}}{{else}}The user has no papers in their workspace yet.{{end}}

HISTORY:
{{template "history" .History}}

USER: {{.Query}}

Answer professionally and helpfully. Keep it concise.`))

var workspacePromptTmpl = template.Must(template.New("workspace").Parse(`Using the provided context, answer the research query.

CONTEXT:
{{range $i, $p := .Papers}}{{if $i}}

{{end}}[{{$p.Title}}]
{{$p.Abstract}}{{end}}

HISTORY:
{{template "history" .History}}

QUERY: {{.Query}}`))

const historyTmpl = `{{define "history"}}{{range $i, $t := .}}{{if $i}}
{{end}}{{$t.Speaker}}: {{$t.Content}}{{end}}{{end}}`

func init() {
	template.Must(brainyPromptTmpl.Parse(historyTmpl))
	template.Must(workspacePromptTmpl.Parse(historyTmpl))
}

// BrainyPrompt renders the assistant prompt for query. papers is the whole
// library and history the prior Brainy turns.
func BrainyPrompt(query string, papers []types.Paper, history []Turn) (string, error) {
	return render(brainyPromptTmpl, promptData{Query: query, Papers: papers, History: history})
}

// WorkspacePrompt renders the workspace chat prompt for query. papers is the
// scope-resolved subset and history the prior workspace turns.
func WorkspacePrompt(query string, papers []types.Paper, history []Turn) (string, error) {
	return render(workspacePromptTmpl, promptData{Query: query, Papers: papers, History: history})
}

func render(t *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}
