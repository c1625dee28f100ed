package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/altai/formrelay/internal/models"
	"github.com/altai/formrelay/internal/observability/metrics"
)

// webToLeadFields maps Web-to-Lead keys to submission fields, in the order
// they are written to the form body.
var webToLeadFields = []struct {
	Key   string
	Field string
}{
	{"first_name", models.FieldFirstName},
	{"last_name", models.FieldLastName},
	{"phone", models.FieldPhone},
	{"email", models.FieldEmail},
	{models.FieldFraccionamiento, models.FieldFraccionamiento},
	{models.FieldSource, models.FieldSource},
	{models.FieldSubject, models.FieldSubject},
}

// SalesforceConfig configures the Web-to-Lead client
type SalesforceConfig struct {
	URL string
	OID string
}

// SalesforceService posts leads to a Salesforce Web-to-Lead endpoint
type SalesforceService struct {
	endpoint string
	oid      string
	client   *http.Client
	metrics  *metrics.RelayMetrics
}

// NewSalesforceService creates a new Web-to-Lead client
func NewSalesforceService(cfg SalesforceConfig, client *http.Client, m *metrics.RelayMetrics) *SalesforceService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SalesforceService{
		endpoint: cfg.URL,
		oid:      cfg.OID,
		client:   client,
		metrics:  m,
	}
}

// WebToLeadForm builds the outgoing form body. Empty fields are left out.
func WebToLeadForm(oid string, s *models.Submission) url.Values {
	form := url.Values{}
	form.Set("oid", oid)
	for _, f := range webToLeadFields {
		if v := s.Value(f.Field); v != "" {
			form.Set(f.Key, v)
		}
	}
	return form
}

// SubmitLead forwards s to the CRM. Salesforce answers 200 even for leads
// it drops, so a nil error only means the post was delivered.
func (s *SalesforceService) SubmitLead(ctx context.Context, lead *models.Submission) error {
	body := WebToLeadForm(s.oid, lead).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create Web-to-Lead request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := s.client.Do(req)
	s.metrics.ObserveUpstreamLatency("crm", time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("failed to post Web-to-Lead: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("web-to-lead returned status %d", resp.StatusCode)
	}

	return nil
}
