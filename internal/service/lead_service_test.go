package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altai/formrelay/internal/api/validation"
	"github.com/altai/formrelay/internal/logging"
	"github.com/altai/formrelay/internal/models"
	"github.com/altai/formrelay/internal/observability/metrics"
)

type mockVerifier struct {
	err    error
	calls  int
	tokens []string
}

func (m *mockVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	m.calls++
	m.tokens = append(m.tokens, token)
	return m.err
}

type mockForwarder struct {
	err   error
	leads []*models.Submission
}

func (m *mockForwarder) SubmitLead(ctx context.Context, lead *models.Submission) error {
	m.leads = append(m.leads, lead)
	return m.err
}

func validLead() *models.Submission {
	return &models.Submission{
		FirstName:      " José ",
		LastName:       "Pérez",
		Phone:          "55 1234 5678",
		Email:          "Jose@Example.com",
		Consent:        "on",
		RecaptchaToken: "tok",
	}
}

func newTestForms() (*Form, *Form) {
	v := validation.New()
	profiles := models.DefaultProfiles("https://javer.com.mx/descargables/1748907914225.pdf", 4)
	return NewForm(v, profiles[0]), NewForm(v, profiles[1])
}

func TestLeadServiceSubmit(t *testing.T) {
	download, contact := newTestForms()
	rejected := fmt.Errorf("%w: [invalid-input-response]", ErrChallengeFailed)
	unreachable := errors.New("dial tcp: connection refused")

	tests := []struct {
		name          string
		form          *Form
		mutate        func(*models.Submission)
		verifyErr     error
		forwardErr    error
		wantErr       error
		wantField     string
		wantVerified  bool
		wantForwarded bool
		wantDocument  string
	}{
		{
			name:          "accepted with document",
			form:          download,
			mutate:        func(*models.Submission) {},
			wantVerified:  true,
			wantForwarded: true,
			wantDocument:  "https://javer.com.mx/descargables/1748907914225.pdf",
		},
		{
			name:          "contact form has no document",
			form:          contact,
			mutate:        func(s *models.Submission) { s.LastName = "" },
			wantVerified:  true,
			wantForwarded: true,
		},
		{
			name:      "missing email",
			form:      download,
			mutate:    func(s *models.Submission) { s.Email = "   " },
			wantField: models.FieldEmail,
		},
		{
			name:      "short name",
			form:      download,
			mutate:    func(s *models.Submission) { s.FirstName = "Jo" },
			wantField: models.FieldFirstName,
		},
		{
			name:    "consent missing",
			form:    download,
			mutate:  func(s *models.Submission) { s.Consent = nil },
			wantErr: ErrConsentRequired,
		},
		{
			name:    "consent false",
			form:    download,
			mutate:  func(s *models.Submission) { s.Consent = false },
			wantErr: ErrConsentRequired,
		},
		{
			name:    "token missing",
			form:    download,
			mutate:  func(s *models.Submission) { s.RecaptchaToken = "" },
			wantErr: ErrTokenMissing,
		},
		{
			name:         "challenge rejected stops before crm",
			form:         download,
			mutate:       func(*models.Submission) {},
			verifyErr:    rejected,
			wantErr:      ErrChallengeFailed,
			wantVerified: true,
		},
		{
			name:         "verifier unreachable",
			form:         download,
			mutate:       func(*models.Submission) {},
			verifyErr:    unreachable,
			wantErr:      unreachable,
			wantVerified: true,
		},
		{
			name:          "crm failure is swallowed",
			form:          download,
			mutate:        func(*models.Submission) {},
			forwardErr:    errors.New("web-to-lead returned status 500"),
			wantVerified:  true,
			wantForwarded: true,
			wantDocument:  "https://javer.com.mx/descargables/1748907914225.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &mockVerifier{err: tt.verifyErr}
			forwarder := &mockForwarder{err: tt.forwardErr}
			svc := NewLeadService(verifier, forwarder, logging.Discard(), nil)

			lead := validLead()
			tt.mutate(lead)
			result, err := svc.Submit(context.Background(), tt.form, lead, "203.0.113.7")

			switch {
			case tt.wantField != "":
				var fieldErr *validation.FieldError
				require.True(t, errors.As(err, &fieldErr), "expected FieldError, got %v", err)
				assert.Equal(t, tt.wantField, fieldErr.Field)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, "Formulario enviado correctamente", result.Message)
				assert.Equal(t, tt.wantDocument, result.DocumentURL)
			}

			assert.Equal(t, tt.wantVerified, verifier.calls == 1)
			assert.Equal(t, tt.wantForwarded, len(forwarder.leads) == 1)
			if tt.wantForwarded {
				assert.Equal(t, "José", forwarder.leads[0].FirstName)
				assert.Equal(t, "5512345678", forwarder.leads[0].Phone)
				assert.Equal(t, "jose@example.com", forwarder.leads[0].Email)
			}
		})
	}
}

func TestLeadServiceMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewRelayMetrics(reg)
	download, _ := newTestForms()

	svc := NewLeadService(&mockVerifier{}, &mockForwarder{err: errors.New("boom")}, logging.Discard(), m)

	_, err := svc.Submit(context.Background(), download, validLead(), "")
	require.NoError(t, err)

	bad := validLead()
	bad.Phone = "123"
	_, err = svc.Submit(context.Background(), download, bad, "")
	require.Error(t, err)

	count, err := testutil.GatherAndCount(reg,
		"formrelay_leads_submissions_total",
		"formrelay_leads_invalid_fields_total",
		"formrelay_crm_forward_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
