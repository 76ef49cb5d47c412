package email

import (
	"bytes"
	"html/template"
)

var decisionTemplate = template.Must(template.New("decision").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Bus Pass Application Update</h2>
  <p>Dear {{.FullName}},</p>
  <p>Your application for the <strong>{{.PassTypeName}}</strong> pass has been <strong>{{.Status}}</strong>.</p>
  {{if .Remarks}}<p>Remarks: {{.Remarks}}</p>{{end}}
  {{if .Approved}}<p>Your bus pass has been issued. You can find it in your account.</p>{{end}}
  <p>Thank you for using our service.</p>
</body>
</html>`))

func renderDecisionBody(fullName, passTypeName, status, remarks string) string {
	var buf bytes.Buffer
	err := decisionTemplate.Execute(&buf, struct {
		FullName     string
		PassTypeName string
		Status       string
		Remarks      string
		Approved     bool
	}{
		FullName:     fullName,
		PassTypeName: passTypeName,
		Status:       status,
		Remarks:      remarks,
		Approved:     status == "APPROVED",
	})
	if err != nil {
		return "Your bus pass application status has been updated."
	}
	return buf.String()
}
