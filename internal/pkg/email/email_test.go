package email

import (
	"bytes"
	"testing"

	"github.com/cmlabs-hris/hris-admin-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendDecision_SkipsWithoutSMTP(t *testing.T) {
	svc, err := NewEmailService(config.SMTPConfig{})
	require.NoError(t, err)

	err = svc.SendDecision("jane@company.com", Decision{
		RecipientName: "Jane Smith",
		Subject:       "leave request",
		Reference:     "LV-002",
		Outcome:       "approved",
		Actor:         "John Doe",
	})
	assert.NoError(t, err)
}

func TestDecisionTemplate(t *testing.T) {
	svc, err := NewEmailService(config.SMTPConfig{})
	require.NoError(t, err)
	impl := svc.(*emailServiceImpl)

	var body bytes.Buffer
	require.NoError(t, impl.templates.ExecuteTemplate(&body, "decision.html", Decision{
		RecipientName: "Jane Smith",
		Subject:       "timesheet",
		Reference:     "TS-002",
		Outcome:       "rejected",
		Actor:         "John Doe",
		Note:          "Missing Friday <entries>",
	}))

	html := body.String()
	assert.Contains(t, html, "Hi Jane Smith")
	assert.Contains(t, html, "<strong>TS-002</strong>")
	assert.Contains(t, html, "Missing Friday &lt;entries&gt;")
}
