package isva

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dropDatabas3/authgate/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:        srv.URL,
		RelyingPartyID: "www.example.com",
		API:            Credentials{ID: "api-id", Secret: "api-secret"},
		Auth:           Credentials{ID: "auth-id", Secret: "auth-secret"},
	})
}

func TestTokenGrantHitsMGARuntime(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/mga/sps/oauth/oauth20/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "auth-id", r.PostForm.Get("client_id"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1", "token_type": "Bearer", "expires_in": 3600,
		})
	}))

	tk, err := c.PasswordGrant(context.Background(), "jane", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tk.AccessToken)
}

func TestGenerateOTPParsesApiauthState(t *testing.T) {
	expiry := time.Now().Add(5 * time.Minute).UTC().Truncate(time.Second)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, otpPolicyPath, r.URL.Path)
		assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"stateId":           "state-1",
			"expires":           expiry.Format(time.RFC3339),
			"otp.user.otp-hint": "1234",
		})
	}))

	ch, err := c.GenerateOTP(context.Background(), "svc-token", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "state-1", ch.TransactionID)
	assert.Equal(t, "1234", ch.Correlation)
	assert.True(t, ch.Expiry.Equal(expiry))
}

func TestVerifyUserCompletesStateThenProvisions(t *testing.T) {
	var paths []string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case otpPolicyPath + "/state-1":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "654321", body["otp.user.otp"])
			w.WriteHeader(http.StatusNoContent)
		case usersPath:
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "user-42"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	pending := platform.PendingSignup{TransactionID: "state-1", Name: "Jane", Email: "jane@example.com"}
	userID, err := c.VerifyUser(context.Background(), "svc-token", "state-1", "654321", pending)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
	assert.Equal(t, []string{otpPolicyPath + "/state-1", usersPath}, paths)
}

func TestFIDO2PathsUseRelyingPartyID(t *testing.T) {
	var gotPath string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"challenge":"c29tZQ"}`))
	}))

	_, err := c.GenerateChallenge(context.Background(), "tok", "Jane's Key", platform.Attestation)
	require.NoError(t, err)
	assert.Equal(t, "/mga/sps/fido2/www.example.com/attestation/options", gotPath)

	_, err = c.GenerateChallenge(context.Background(), "tok", "", platform.Assertion)
	require.NoError(t, err)
	assert.Equal(t, "/mga/sps/fido2/www.example.com/assertion/options", gotPath)
}

func TestVerifyCredentialPassesMediatorPayloadThrough(t *testing.T) {
	payload := `{"attributes":{"responseData":{"access_token":"abc"}}}`
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mga/sps/fido2/www.example.com/assertion/result", r.URL.Path)
		_, _ = w.Write([]byte(payload))
	}))

	raw, err := c.VerifyCredential(context.Background(), "tok", platform.CredentialVerification{CredentialID: "cred-1"})
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(raw))
}

func TestVerifyCredentialUpstreamFailure(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"assertion rejected"}`))
	}))

	_, err := c.VerifyCredential(context.Background(), "tok", platform.CredentialVerification{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assertion result")
}
