package flows

import (
	"strings"
	"text/template"
)

var prompts = template.Must(template.New("prompts").Parse(`
{{define "auditReport"}}You are an expert facility-maintenance auditor.
Summarize the findings of the following equipment audit and extract the concrete
action items a maintenance team must carry out. Answer in the language of the audit.

Audit:
{{.AuditText}}
{{end}}

{{define "presentation"}}You are preparing a presentation of audit results for the client "{{.ClientName}}".
Write a clear, structured presentation (introduction, key findings, risks,
recommendations, conclusion) based on the audit data below. Keep a professional tone.

Audit data:
{{.AuditData}}
{{end}}

{{define "assetDetails"}}The attached image is a QR code stuck on a piece of equipment.
Read it and describe the asset it identifies: equipment code, label, brand,
model, serial number and any other information encoded. If nothing can be read,
say so explicitly.
{{end}}
`))

const systemInstruction = "You help maintenance teams of a CMMS (GMAO). Be factual and concise."

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := prompts.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}
