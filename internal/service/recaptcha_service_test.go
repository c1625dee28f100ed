package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSiteverify(t *testing.T, status int, body string) (*httptest.Server, *[]map[string]string) {
	t.Helper()
	var calls []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		calls = append(calls, map[string]string{
			"secret":   r.PostForm.Get("secret"),
			"response": r.PostForm.Get("response"),
			"remoteip": r.PostForm.Get("remoteip"),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestRecaptchaVerify(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		minScore    float64
		wantErr     bool
		wantRejects bool
	}{
		{"success", http.StatusOK, `{"success": true, "hostname": "front-altai.netlify.app"}`, 0, false, false},
		{"rejected", http.StatusOK, `{"success": false, "error-codes": ["invalid-input-response"]}`, 0, true, true},
		{"v3 score ok", http.StatusOK, `{"success": true, "score": 0.9}`, 0.5, false, false},
		{"v3 score too low", http.StatusOK, `{"success": true, "score": 0.1}`, 0.5, true, true},
		{"upstream error status", http.StatusServiceUnavailable, `oops`, 0, true, false},
		{"malformed body", http.StatusOK, `{"success":`, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := newSiteverify(t, tt.status, tt.body)
			svc := NewRecaptchaService(RecaptchaConfig{
				SecretKey: "server-secret",
				VerifyURL: srv.URL,
				MinScore:  tt.minScore,
			}, srv.Client(), nil)

			err := svc.Verify(context.Background(), "client-token", "203.0.113.7")
			if !tt.wantErr {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantRejects, errors.Is(err, ErrChallengeFailed))
			}

			require.Len(t, *calls, 1)
			assert.Equal(t, "server-secret", (*calls)[0]["secret"])
			assert.Equal(t, "client-token", (*calls)[0]["response"])
			assert.Equal(t, "203.0.113.7", (*calls)[0]["remoteip"])
		})
	}
}

func TestRecaptchaVerifyWithoutCall(t *testing.T) {
	srv, calls := newSiteverify(t, http.StatusOK, `{"success": true}`)

	svc := NewRecaptchaService(RecaptchaConfig{SecretKey: "s", VerifyURL: srv.URL}, srv.Client(), nil)
	assert.ErrorIs(t, svc.Verify(context.Background(), "", ""), ErrTokenMissing)

	unconfigured := NewRecaptchaService(RecaptchaConfig{VerifyURL: srv.URL}, srv.Client(), nil)
	err := unconfigured.Verify(context.Background(), "tok", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrChallengeFailed)

	assert.Empty(t, *calls)
}

func TestRecaptchaVerifyUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc := NewRecaptchaService(RecaptchaConfig{SecretKey: "s", VerifyURL: url}, nil, nil)
	err := svc.Verify(context.Background(), "tok", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrChallengeFailed)
}
