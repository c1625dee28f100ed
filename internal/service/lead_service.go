package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/altai/formrelay/internal/api/sanitization"
	"github.com/altai/formrelay/internal/api/validation"
	"github.com/altai/formrelay/internal/logging"
	"github.com/altai/formrelay/internal/models"
	"github.com/altai/formrelay/internal/observability/metrics"
	"github.com/altai/formrelay/internal/telemetry"
	"github.com/altai/formrelay/internal/utils"
)

// ChallengeVerifier confirms a reCAPTCHA token
type ChallengeVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// LeadForwarder delivers an accepted submission to the CRM
type LeadForwarder interface {
	SubmitLead(ctx context.Context, lead *models.Submission) error
}

// Form is a profile together with its compiled rule table
type Form struct {
	Profile models.FormProfile
	rules   *validation.RuleSet
}

// NewForm compiles the rule table for profile
func NewForm(v *validator.Validate, profile models.FormProfile) *Form {
	return &Form{
		Profile: profile,
		rules:   validation.NewRuleSet(v, profile),
	}
}

// LeadResult is what a caller sees for an accepted submission
type LeadResult struct {
	Message     string
	DocumentURL string
}

// LeadService runs the relay pipeline: validate, check consent, verify the
// challenge, forward to the CRM.
type LeadService struct {
	verifier  ChallengeVerifier
	forwarder LeadForwarder
	logger    *logging.Logger
	metrics   *metrics.RelayMetrics
}

// NewLeadService creates a new lead service
func NewLeadService(verifier ChallengeVerifier, forwarder LeadForwarder, logger *logging.Logger, m *metrics.RelayMetrics) *LeadService {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &LeadService{
		verifier:  verifier,
		forwarder: forwarder,
		logger:    logger,
		metrics:   m,
	}
}

// Submit processes one submission for form. On success the CRM has been
// attempted; its outcome never changes the result.
func (s *LeadService) Submit(ctx context.Context, form *Form, lead *models.Submission, remoteIP string) (*LeadResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "lead.submit")
	defer span.End()
	span.SetAttributes(attribute.String("form.name", form.Profile.Name))

	result, outcome, err := s.run(ctx, form, lead, remoteIP)
	s.metrics.ObserveSubmission(form.Profile.Name, outcome)
	span.SetAttributes(attribute.String("lead.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		if outcome == metrics.OutcomeError {
			span.SetStatus(codes.Error, "lead submission failed")
		}
		return nil, err
	}
	return result, nil
}

func (s *LeadService) run(ctx context.Context, form *Form, lead *models.Submission, remoteIP string) (*LeadResult, string, error) {
	sanitization.SanitizeSubmission(lead)

	if err := form.rules.Check(lead); err != nil {
		var fieldErr *validation.FieldError
		if errors.As(err, &fieldErr) {
			s.metrics.ObserveInvalidField(fieldErr.Field, fieldErr.Rule)
		}
		return nil, metrics.OutcomeInvalid, err
	}

	if !lead.ConsentAccepted() {
		return nil, metrics.OutcomeNoConsent, ErrConsentRequired
	}

	if lead.RecaptchaToken == "" {
		return nil, metrics.OutcomeTokenMissing, ErrTokenMissing
	}

	if err := s.verifier.Verify(ctx, lead.RecaptchaToken, remoteIP); err != nil {
		if errors.Is(err, ErrChallengeFailed) {
			s.logger.Warn("reCAPTCHA rejected for %s (%s): %v", form.Profile.Name, remoteIP, err)
			return nil, metrics.OutcomeChallengeFailed, err
		}
		return nil, metrics.OutcomeError, err
	}

	if err := s.forwarder.SubmitLead(ctx, lead); err != nil {
		s.metrics.ObserveCRMForward("error")
		s.logger.Error("Web-to-Lead forward failed for %s <%s> %s: %v",
			form.Profile.Name, utils.MaskEmail(lead.Email), utils.MaskPhone(lead.Phone), err)
	} else {
		s.metrics.ObserveCRMForward("ok")
		s.logger.Info("Lead forwarded for %s <%s> %s",
			form.Profile.Name, utils.MaskEmail(lead.Email), utils.MaskPhone(lead.Phone))
	}

	return &LeadResult{
		Message:     form.Profile.Message(),
		DocumentURL: form.Profile.DocumentURL,
	}, metrics.OutcomeAccepted, nil
}
