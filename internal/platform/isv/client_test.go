package isv

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dropDatabas3/authgate/internal/platform"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:        srv.URL,
		RelyingPartyID: "example.com",
		API:            Credentials{ID: "api-id", Secret: "api-secret"},
		Auth:           Credentials{ID: "auth-id", Secret: "auth-secret"},
	})
}

func TestPasswordGrant(t *testing.T) {
	var gotForm map[string]string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, tokenPath, r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"grant_type": r.PostForm.Get("grant_type"),
			"client_id":  r.PostForm.Get("client_id"),
			"username":   r.PostForm.Get("username"),
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1", "token_type": "Bearer", "expires_in": 3600,
		})
	}))

	tk, err := c.PasswordGrant(context.Background(), "jane", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tk.AccessToken)
	assert.Equal(t, 3600, tk.ExpiresIn)
	assert.Equal(t, "password", gotForm["grant_type"])
	assert.Equal(t, "auth-id", gotForm["client_id"], "password grant uses the end-user pair")
	assert.Equal(t, "jane", gotForm["username"])
}

func TestClientCredentialsGrantUsesAPIPair(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "api-id", r.PostForm.Get("client_id"))
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "svc", "expires_in": 7200})
	}))

	tk, err := c.ClientCredentialsGrant(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "svc", tk.AccessToken)
}

func TestJWTBearerGrant(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, jwtBearerGrant, r.PostForm.Get("grant_type"))
		assert.Equal(t, "my-assertion", r.PostForm.Get("assertion"))
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "exchanged", "expires_in": 3600})
	}))

	tk, err := c.JWTBearerGrant(context.Background(), "my-assertion")
	require.NoError(t, err)
	assert.Equal(t, "exchanged", tk.AccessToken)
}

func TestTokenGrantErrorResponse(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": "invalid_grant", "error_description": "bad credentials",
		})
	}))

	_, err := c.PasswordGrant(context.Background(), "jane", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestSignedAssertion(t *testing.T) {
	c := New(Config{BaseURL: "https://tenant.test", Auth: Credentials{ID: "auth-id", Secret: "auth-secret"}})

	signed, err := c.SignedAssertion("user-42", "https://authgate.test")
	require.NoError(t, err)

	parsed, err := jwtv5.Parse(signed, func(tk *jwtv5.Token) (any, error) {
		return []byte("auth-secret"), nil
	}, jwtv5.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwtv5.MapClaims)
	assert.Equal(t, "user-42", claims["sub"])
	assert.Equal(t, "https://authgate.test", claims["iss"])
	assert.Equal(t, "https://tenant.test"+tokenPath, claims["aud"])
	assert.NotEmpty(t, claims["jti"])
}

func TestGenerateOTP(t *testing.T) {
	expiry := time.Now().Add(5 * time.Minute).UTC().Truncate(time.Second)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, otpPath, r.URL.Path)
		assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane@example.com", body["emailAddress"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "txn-1", "expiry": expiry.Format(time.RFC3339), "correlation": "1234",
		})
	}))

	ch, err := c.GenerateOTP(context.Background(), "svc-token", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "txn-1", ch.TransactionID)
	assert.Equal(t, "1234", ch.Correlation)
	assert.True(t, ch.Expiry.Equal(expiry))
}

func TestVerifyUserVerifiesThenProvisions(t *testing.T) {
	var paths []string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case otpPath + "/txn-1":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "654321", body["otp"])
			w.WriteHeader(http.StatusOK)
		case usersPath:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "jane@example.com", body["userName"])
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "user-42"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	pending := platform.PendingSignup{TransactionID: "txn-1", Name: "Jane", Email: "jane@example.com"}
	userID, err := c.VerifyUser(context.Background(), "svc-token", "txn-1", "654321", pending)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
	assert.Equal(t, []string{otpPath + "/txn-1", usersPath}, paths)
}

func TestVerifyUserBadOTP(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"messageId":"CSIAQ0158E"}`))
	}))

	_, err := c.VerifyUser(context.Background(), "svc-token", "txn-1", "000000", platform.PendingSignup{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify otp")
}

func TestGenerateChallengePaths(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"challenge":"c29tZQ"}`))
	}))

	ch, err := c.GenerateChallenge(context.Background(), "tok", "Jane's Key", platform.Attestation)
	require.NoError(t, err)
	assert.Equal(t, "/v2.0/factors/fido2/relyingparties/example.com/attestation/options", gotPath)
	assert.Equal(t, "Jane's Key", gotBody["displayName"])
	assert.Equal(t, platform.Attestation, ch.Type)
	assert.JSONEq(t, `{"challenge":"c29tZQ"}`, string(ch.Options))

	_, err = c.GenerateChallenge(context.Background(), "tok", "", platform.Assertion)
	require.NoError(t, err)
	assert.Equal(t, "/v2.0/factors/fido2/relyingparties/example.com/assertion/options", gotPath)
}

func TestVerifyCredentialReturnsRawPayload(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2.0/factors/fido2/relyingparties/example.com/assertion/result", r.URL.Path)
		_, _ = w.Write([]byte(`{"assertion":"xyz"}`))
	}))

	raw, err := c.VerifyCredential(context.Background(), "tok", platform.CredentialVerification{CredentialID: "cred-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"assertion":"xyz"}`, string(raw))
}
