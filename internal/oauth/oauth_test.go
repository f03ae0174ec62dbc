package oauth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"

	"go.withmatt.com/triage/internal/config"
)

func TestGeneratePKCE(t *testing.T) {
	verifier, challenge, err := generatePKCE()
	if err != nil {
		t.Fatalf("generatePKCE: %v", err)
	}
	sum := sha256.Sum256([]byte(verifier))
	if want := base64.RawURLEncoding.EncodeToString(sum[:]); challenge != want {
		t.Errorf("challenge = %q, want %q", challenge, want)
	}
	if len(verifier) < 43 {
		t.Errorf("verifier too short: %d", len(verifier))
	}
}

func TestRandomState(t *testing.T) {
	a, err := randomState()
	if err != nil {
		t.Fatal(err)
	}
	b, err := randomState()
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 32 || a == b {
		t.Errorf("states %q, %q", a, b)
	}
}

func TestCallbackHandler(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode string
		wantErr  bool
	}{
		{"ok", "?state=s1&code=abc", "abc", false},
		{"bad state", "?state=nope&code=abc", "", true},
		{"provider error", "?state=s1&error=access_denied", "", true},
		{"missing code", "?state=s1", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codeCh := make(chan string, 1)
			errCh := make(chan error, 1)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, callbackPath+tt.query, nil)

			callbackHandler("s1", codeCh, errCh).ServeHTTP(rec, req)

			if tt.wantErr {
				if rec.Code != http.StatusBadRequest {
					t.Errorf("status = %d, want 400", rec.Code)
				}
				select {
				case <-errCh:
				default:
					t.Error("no error reported")
				}
				return
			}
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			select {
			case code := <-codeCh:
				if code != tt.wantCode {
					t.Errorf("code = %q, want %q", code, tt.wantCode)
				}
			default:
				t.Error("no code delivered")
			}
		})
	}
}

func TestKeyringRoundTrip(t *testing.T) {
	keyring.MockInit()

	a := New(" Me@Example.com ", config.OAuthConfig{ClientID: "id"})
	if a.Email() != "me@example.com" {
		t.Errorf("Email = %q", a.Email())
	}
	if a.IsAuthenticated() {
		t.Fatal("authenticated before any token was stored")
	}
	if _, err := a.HTTPClient(context.Background()); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("HTTPClient = %v, want ErrNotSignedIn", err)
	}

	tok := &oauth2.Token{AccessToken: "at", RefreshToken: "rt", Expiry: time.Now().Add(time.Hour)}
	if err := saveTokenToKeyring("ME@example.com", tok); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !a.IsAuthenticated() {
		t.Fatal("not authenticated after storing a token")
	}
	got, err := tokenFromKeyring("me@example.com")
	if err != nil || got.AccessToken != "at" || got.RefreshToken != "rt" {
		t.Errorf("token = %+v, %v", got, err)
	}
	if _, err := a.HTTPClient(context.Background()); err != nil {
		t.Errorf("HTTPClient: %v", err)
	}

	if err := a.SignOut(); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if a.IsAuthenticated() || a.Email() != "" {
		t.Error("still authenticated after sign out")
	}
	if _, err := tokenFromKeyring("me@example.com"); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("token after sign out: %v", err)
	}
}

func TestSignIn_MissingClient(t *testing.T) {
	a := New("", config.OAuthConfig{})
	if _, err := a.SignIn(context.Background()); !errors.Is(err, ErrMissingClient) {
		t.Errorf("SignIn = %v, want ErrMissingClient", err)
	}
}

func TestDeleteToken_Missing(t *testing.T) {
	keyring.MockInit()
	if err := DeleteToken("nobody@example.com"); err != nil {
		t.Errorf("DeleteToken = %v", err)
	}
	if err := DeleteToken(""); err != nil {
		t.Errorf("DeleteToken(empty) = %v", err)
	}
}
