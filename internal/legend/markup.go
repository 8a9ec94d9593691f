package legend

import (
	"bytes"
	"fmt"
	"html/template"
)

// brushPath is the stroke drawn as the color swatch of a label.
const brushPath = "M1.5 9.2c2.6-3.1 6.4-5.6 10.8-6.2 3.9-.5 7.5.9 11.2.6 3.3-.3 6.2-1.8 9.6-1.1.9.2 1 1.4.1 1.7-3.5 1.2-6.6 2.9-10.4 3.3-3.6.4-7.1-.8-10.6-.2-3.4.6-6.3 2.6-9.4 4.1-1.1.5-2-1.2-1.3-2.2z"

var markupTmpl = template.Must(template.New("legend").Funcs(template.FuncMap{
	"brushPath": func() string { return brushPath },
}).Parse(`{{range .Families}}<div class="family-group" data-familia="{{.ID}}">
<div class="family-header">{{.Name}}</div>
<div class="family-params">
{{- range .Labels}}
<div class="{{.Classes}}" data-param-id="{{.ParamID}}" data-familia="{{.FamilyID}}" data-active="{{.Active}}">
{{- if .Production}}<span class="param-color pp-indicator"></span>
{{- else}}<div class="param-color-wrapper"><svg class="param-color-svg brush-svg" viewBox="0 0 35 15" preserveAspectRatio="xMidYMid meet"><path d="{{brushPath}}" fill="{{.Color}}"></path></svg></div>
{{- end}}<span class="param-name">{{.Name}}</span></div>
{{- end}}
</div></div>
{{end}}
{{- with .Vessels}}<div class="ships-section">
<h4>{{.Title}}</h4>
{{- range .Ships}}
<div class="ship-item" data-ship-id="{{.Code}}"><span class="ship-color{{if .Directed}} directed{{end}}" style="background: {{.Color}}"></span><span class="ship-name">{{.Name}}</span><span class="ship-type-badge">{{.Badge}}</span></div>
{{- end}}
</div>
{{end}}
{{- if .HasDescription}}<div id="param-description" class="param-description{{if .Description}} visible{{end}}">{{.Description}}</div>
{{end}}`))

// Markup renders the legend as an HTML fragment.
func Markup(l *Legend) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markupTmpl.Execute(&buf, l); err != nil {
		return "", fmt.Errorf("render legend: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // output of html/template
}
