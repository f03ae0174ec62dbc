package oauth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/browser"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"go.withmatt.com/triage/internal/config"
	"go.withmatt.com/triage/internal/log"
)

const (
	callbackPath    = "/oauth2callback"
	keyringService  = "go.withmatt.com/triage"
	callbackTimeout = 2 * time.Minute
)

var (
	ErrNotSignedIn    = errors.New("not signed in")
	ErrMissingClient  = errors.New("missing oauth client id; set [oauth] client_id in the config file")
	errCallbackClosed = errors.New("oauth callback server closed")
)

// Profile is the signed-in user as reported by Google.
type Profile struct {
	Email   string
	Name    string
	Picture string
}

// Authenticator manages the single signed-in account. Tokens live in the
// system keyring keyed by email.
type Authenticator struct {
	cfg     *oauth2.Config
	openURL func(string) error

	mu    sync.Mutex
	email string
}

// Config returns the oauth client configuration for creds.
func Config(creds config.OAuthConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			gmail.GmailReadonlyScope,
			oauth2api.UserinfoEmailScope,
			oauth2api.UserinfoProfileScope,
		},
	}
}

// New returns an Authenticator for email, which may be empty before the
// first sign-in.
func New(email string, creds config.OAuthConfig) *Authenticator {
	return &Authenticator{
		cfg:     Config(creds),
		openURL: browser.OpenURL,
		email:   keyringAccount(email),
	}
}

// Email returns the account email, empty when nobody has signed in.
func (a *Authenticator) Email() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.email
}

// IsAuthenticated reports whether a token is stored for the account.
func (a *Authenticator) IsAuthenticated() bool {
	email := a.Email()
	if email == "" {
		return false
	}
	_, err := tokenFromKeyring(email)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		log.Printf("Unable to read oauth token for %s: %v", email, err)
	}
	return err == nil
}

// SignIn runs the browser consent flow and stores the resulting token. The
// account email is taken from the granted profile.
func (a *Authenticator) SignIn(ctx context.Context) (Profile, error) {
	if strings.TrimSpace(a.cfg.ClientID) == "" {
		return Profile{}, ErrMissingClient
	}

	tok, err := getTokenFromWeb(ctx, a.cfg, a.Email(), a.openURL)
	if err != nil {
		return Profile{}, err
	}

	profile, err := fetchProfile(ctx, oauth2.NewClient(ctx, a.cfg.TokenSource(ctx, tok)))
	if err != nil {
		return Profile{}, err
	}
	email := keyringAccount(profile.Email)
	if email == "" {
		return Profile{}, errors.New("google did not return an email for this account")
	}
	if err := saveTokenToKeyring(email, tok); err != nil {
		return Profile{}, fmt.Errorf("unable to store oauth token: %w", err)
	}

	a.mu.Lock()
	a.email = email
	a.mu.Unlock()
	return profile, nil
}

// SignOut forgets the stored token.
func (a *Authenticator) SignOut() error {
	email := a.Email()
	if err := DeleteToken(email); err != nil {
		return err
	}
	a.mu.Lock()
	a.email = ""
	a.mu.Unlock()
	return nil
}

// HTTPClient returns a client that authorizes requests with the stored
// token, refreshing it as needed.
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	email := a.Email()
	if email == "" {
		return nil, ErrNotSignedIn
	}

	tok, err := tokenFromKeyring(email)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotSignedIn
		}
		return nil, fmt.Errorf("unable to load oauth token from keyring: %w", err)
	}

	src := &persistingTokenSource{
		email: email,
		last:  tok.AccessToken,
		src:   a.cfg.TokenSource(ctx, tok),
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src)), nil
}

// Profile returns the signed-in user's name, email and avatar URL.
func (a *Authenticator) Profile(ctx context.Context) (Profile, error) {
	client, err := a.HTTPClient(ctx)
	if err != nil {
		return Profile{}, err
	}
	return fetchProfile(ctx, client)
}

func fetchProfile(ctx context.Context, client *http.Client) (Profile, error) {
	srv, err := oauth2api.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return Profile{}, fmt.Errorf("unable to create userinfo client: %w", err)
	}
	info, err := srv.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return Profile{}, fmt.Errorf("unable to fetch profile: %w", err)
	}
	return Profile{Email: info.Email, Name: info.Name, Picture: info.Picture}, nil
}

// persistingTokenSource writes refreshed tokens back to the keyring.
type persistingTokenSource struct {
	email string
	src   oauth2.TokenSource

	mu   sync.Mutex
	last string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := saveTokenToKeyring(s.email, tok); err != nil {
			log.Printf("Unable to cache oauth token in keyring: %v", err)
		}
	}
	return tok, nil
}

func getTokenFromWeb(
	ctx context.Context,
	config *oauth2.Config,
	email string,
	openURL func(string) error,
) (*oauth2.Token, error) {
	if config == nil {
		return nil, errors.New("missing oauth config")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("unable to start oauth callback server: %w", err)
	}
	defer listener.Close()

	cfg := *config
	cfg.RedirectURL = fmt.Sprintf("http://%s%s", listener.Addr().String(), callbackPath)

	state, err := randomState()
	if err != nil {
		return nil, err
	}
	pkceVerifier, pkceChallenge, err := generatePKCE()
	if err != nil {
		return nil, err
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("code_challenge", pkceChallenge),
	}
	if email != "" {
		opts = append(opts, oauth2.SetAuthURLParam("login_hint", email))
	}
	authURL := cfg.AuthCodeURL(state, opts...)

	if err := openURL(authURL); err != nil {
		log.Printf("Open this URL to authorize: %v", authURL)
	} else {
		log.Printf("If your browser does not open, visit: %v", authURL)
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.Handle(callbackPath, callbackHandler(state, codeCh, errCh))

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		err := server.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = errCallbackClosed
		}
		select {
		case errCh <- err:
		default:
		}
	}()
	defer func() { _ = server.Shutdown(context.Background()) }()

	waitCtx, cancel := context.WithTimeout(ctx, callbackTimeout)
	defer cancel()

	select {
	case code := <-codeCh:
		tok, err := cfg.Exchange(
			ctx,
			code,
			oauth2.SetAuthURLParam("code_verifier", pkceVerifier),
		)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-waitCtx.Done():
		if errors.Is(waitCtx.Err(), context.Canceled) {
			return nil, waitCtx.Err()
		}
		return nil, errors.New("timed out waiting for oauth callback")
	}
}

func callbackHandler(state string, codeCh chan<- string, errCh chan<- error) http.Handler {
	fail := func(w http.ResponseWriter, msg string, err error) {
		http.Error(w, msg, http.StatusBadRequest)
		select {
		case errCh <- err:
		default:
		}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			fail(w, "Invalid state parameter.", errors.New("oauth state mismatch"))
			return
		}
		if errText := q.Get("error"); errText != "" {
			fail(w, errText, fmt.Errorf("oauth error: %s", errText))
			return
		}
		code := q.Get("code")
		if code == "" {
			fail(w, "Missing code parameter.", errors.New("oauth callback missing code"))
			return
		}
		_, _ = w.Write([]byte("triage authentication complete. You can close this window."))
		select {
		case codeCh <- code:
		default:
		}
	})
}

func generatePKCE() (string, string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("unable to generate PKCE verifier: %w", err)
	}
	verifier := base64.RawURLEncoding.EncodeToString(buf)
	sum := sha256.Sum256([]byte(verifier))
	challenge := base64.RawURLEncoding.EncodeToString(sum[:])
	return verifier, challenge, nil
}

func randomState() (string, error) {
	const size = 16
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("unable to generate oauth state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func tokenFromKeyring(email string) (*oauth2.Token, error) {
	value, err := keyring.Get(keyringService, keyringAccount(email))
	if err != nil {
		return nil, err
	}

	var tok oauth2.Token
	if err := json.Unmarshal([]byte(value), &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

func saveTokenToKeyring(email string, token *oauth2.Token) error {
	if token == nil {
		return errors.New("missing oauth token")
	}
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	log.Printf("Saving credential to keyring for: %s", email)
	return keyring.Set(keyringService, keyringAccount(email), string(data))
}

// DeleteToken removes the stored token for email, if any.
func DeleteToken(email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	if err := keyring.Delete(keyringService, keyringAccount(email)); err != nil &&
		!errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("unable to delete token from keyring: %w", err)
	}
	return nil
}

func keyringAccount(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
