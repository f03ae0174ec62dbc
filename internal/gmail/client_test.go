package gmail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"

	"google.golang.org/api/gmail/v1"
)

func newFakeGmail(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/gmail/v1/users/me/messages", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != inboxQuery {
			t.Errorf("q = %q, want %q", got, inboxQuery)
		}
		if got := r.URL.Query().Get("maxResults"); got != "2" {
			t.Errorf("maxResults = %q, want 2", got)
		}
		_ = json.NewEncoder(w).Encode(gmail.ListMessagesResponse{
			Messages: []*gmail.Message{{Id: "b"}, {Id: "a"}},
		})
	})
	mux.HandleFunc("/gmail/v1/users/me/messages/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "full" {
			t.Errorf("format = %q, want full", got)
		}
		id := strings.TrimPrefix(r.URL.Path, "/gmail/v1/users/me/messages/")
		if id == "missing" {
			http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(gmail.Message{Id: id, LabelIds: []string{LabelUnread}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// rewriteTransport sends every request to target regardless of its host.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

type fakeCreds struct {
	email  string
	client *http.Client
	calls  int
}

func (f *fakeCreds) Email() string { return f.email }

func (f *fakeCreds) HTTPClient(context.Context) (*http.Client, error) {
	f.calls++
	return f.client, nil
}

func TestClient_ListAndGet(t *testing.T) {
	ctx := context.Background()
	srv := newFakeGmail(t)
	target, _ := url.Parse(srv.URL)
	creds := &fakeCreds{
		email:  "me@example.com",
		client: &http.Client{Transport: rewriteTransport{target: target}},
	}
	c := NewClientFromCredentials(creds)

	ids, err := c.ListInboxMessageIDs(ctx, 2)
	if err != nil {
		t.Fatalf("ListInboxMessageIDs: %v", err)
	}
	if want := []string{"b", "a"}; !slices.Equal(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}

	msg, err := c.GetMessage(ctx, "a")
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if msg.Id != "a" || !HasLabel(msg.LabelIds, LabelUnread) {
		t.Errorf("message = %+v", msg)
	}
	if creds.calls != 1 {
		t.Errorf("HTTPClient called %d times, want 1", creds.calls)
	}

	if _, err := c.GetMessage(ctx, "missing"); err == nil {
		t.Error("expected error for missing message")
	}

	creds.email = "other@example.com"
	if _, err := c.GetMessage(ctx, "a"); err != nil {
		t.Fatalf("GetMessage after account change: %v", err)
	}
	if creds.calls != 2 {
		t.Errorf("service not rebuilt after account change: %d calls", creds.calls)
	}
}
