package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/altai/formrelay/internal/observability/metrics"
)

// RecaptchaConfig configures the verification client
type RecaptchaConfig struct {
	SecretKey string
	VerifyURL string
	// MinScore applies to v3 tokens only; zero disables the score check.
	MinScore float64
}

// RecaptchaService handles reCAPTCHA verification
type RecaptchaService struct {
	secretKey string
	verifyURL string
	minScore  float64
	client    *http.Client
	metrics   *metrics.RelayMetrics
}

// NewRecaptchaService creates a new reCAPTCHA service
func NewRecaptchaService(cfg RecaptchaConfig, client *http.Client, m *metrics.RelayMetrics) *RecaptchaService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RecaptchaService{
		secretKey: cfg.SecretKey,
		verifyURL: cfg.VerifyURL,
		minScore:  cfg.MinScore,
		client:    client,
		metrics:   m,
	}
}

// recaptchaResponse represents the response from Google's reCAPTCHA API
type recaptchaResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Verify checks token against the verification API. A rejected token
// yields an error wrapping ErrChallengeFailed; any other error means the
// API could not be consulted.
func (s *RecaptchaService) Verify(ctx context.Context, token, remoteIP string) error {
	if token == "" {
		return ErrTokenMissing
	}

	if s.secretKey == "" {
		return fmt.Errorf("reCAPTCHA secret key not configured")
	}

	data := url.Values{}
	data.Set("secret", s.secretKey)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create reCAPTCHA request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := s.client.Do(req)
	s.metrics.ObserveUpstreamLatency("recaptcha", time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveVerification("error")
		return fmt.Errorf("failed to verify reCAPTCHA: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.metrics.ObserveVerification("error")
		return fmt.Errorf("reCAPTCHA API returned status %d", resp.StatusCode)
	}

	var result recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.metrics.ObserveVerification("error")
		return fmt.Errorf("failed to parse reCAPTCHA response: %w", err)
	}

	if !result.Success {
		s.metrics.ObserveVerification("rejected")
		return fmt.Errorf("%w: %v", ErrChallengeFailed, result.ErrorCodes)
	}

	if s.minScore > 0 && result.Score < s.minScore {
		s.metrics.ObserveVerification("low_score")
		return fmt.Errorf("%w: score too low: %.2f < %.2f", ErrChallengeFailed, result.Score, s.minScore)
	}

	s.metrics.ObserveVerification("success")
	return nil
}
