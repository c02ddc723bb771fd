package documents

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"caselaw/internal/marklogic"
)

const pressSummaryTitlePrefix = "Press Summary of "

var pageTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}{{with .Citation}} - {{.}}{{end}}</title>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
{{with .Citation}}<p class="judgment-citation">{{.}}</p>{{end}}
</header>
<main class="judgment" data-uri="{{.URI}}">
{{.Content}}
</main>
</body>
</html>
`))

type page struct {
	Title    string
	Citation string
	URI      string
	Content  template.HTML
}

// DisplayTitle is the title shown for a document. Press summaries drop their
// "Press Summary of " prefix.
func DisplayTitle(title string, uri marklogic.DocumentURI) string {
	if uri.IsPressSummary() {
		return strings.TrimPrefix(title, pressSummaryTitlePrefix)
	}
	return title
}

// newSanitizer allows user-generated-content markup plus the class and id
// attributes the judgment stylesheet keys on.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "id").Globally()
	return p
}

func renderPage(policy *bluemonday.Policy, p page, body []byte) ([]byte, error) {
	p.Content = template.HTML(policy.SanitizeBytes(body)) //nolint:gosec // sanitised above
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
