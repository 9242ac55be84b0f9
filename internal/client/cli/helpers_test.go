package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iudanet/passvault/internal/client/auth"
	"github.com/iudanet/passvault/internal/client/iocli"
	"github.com/iudanet/passvault/internal/client/storage"
	pkgapi "github.com/iudanet/passvault/pkg/api"
)

type fakeAuth struct {
	session     *storage.SessionData
	signupEmail string
	signinEmail string
	password    string
	err         error
	verifyErr   error
	signedOut   bool
	verified    bool
}

func (f *fakeAuth) Signup(ctx context.Context, email, password string) (string, error) {
	f.signupEmail, f.password = email, password
	if f.err != nil {
		return "", f.err
	}
	return "User created successfully", nil
}

func (f *fakeAuth) Signin(ctx context.Context, email, password string) (*storage.SessionData, error) {
	f.signinEmail, f.password = email, password
	if f.err != nil {
		return nil, f.err
	}
	f.session = &storage.SessionData{Email: email, Token: "jwt", ExpiresAt: time.Now().Add(time.Hour)}
	return f.session, nil
}

func (f *fakeAuth) Signout(ctx context.Context) error {
	if f.session == nil {
		return auth.ErrNotSignedIn
	}
	f.session = nil
	f.signedOut = true
	return nil
}

func (f *fakeAuth) Verify(ctx context.Context) (*storage.SessionData, error) {
	f.verified = true
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.Current(ctx)
}

func (f *fakeAuth) Current(ctx context.Context) (*storage.SessionData, error) {
	if f.session == nil {
		return nil, auth.ErrNotSignedIn
	}
	return f.session, nil
}

type fakeVault struct {
	entries []pkgapi.Entry
	updated *pkgapi.EntryRequest
	deleted string
	err     error
}

func (f *fakeVault) ListEntries(ctx context.Context) ([]pkgapi.Entry, error) {
	return f.entries, f.err
}

func (f *fakeVault) CreateEntry(ctx context.Context, req pkgapi.EntryRequest) (*pkgapi.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	e := pkgapi.Entry{
		ID: "new-id", Title: req.Title, Username: req.Username, Password: req.Password,
		URL: req.URL, Notes: req.Notes, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	f.entries = append([]pkgapi.Entry{e}, f.entries...)
	return &e, nil
}

func (f *fakeVault) UpdateEntry(ctx context.Context, req pkgapi.EntryRequest) (*pkgapi.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = &req
	return &pkgapi.Entry{ID: req.ID, Title: req.Title, Username: req.Username, Password: req.Password}, nil
}

func (f *fakeVault) DeleteEntry(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = id
	return nil
}

type fakeClipboard struct {
	content string
	writes  []string
	err     error
}

func (f *fakeClipboard) ReadAll() (string, error) { return f.content, f.err }

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.content = text
	f.writes = append(f.writes, text)
	return nil
}

type harness struct {
	cli       *Cli
	out       *bytes.Buffer
	auth      *fakeAuth
	vault     *fakeVault
	clipboard *fakeClipboard
	opened    int
	closed    int
	serverURL string
	dbPath    string
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	t.Setenv(EnvPassword, "")

	h := &harness{
		out:       &bytes.Buffer{},
		auth:      &fakeAuth{},
		vault:     &fakeVault{},
		clipboard: &fakeClipboard{},
	}

	open := func(ctx context.Context, serverURL, dbPath string) (*Services, error) {
		h.opened++
		h.serverURL, h.dbPath = serverURL, dbPath
		return &Services{
			Auth:  h.auth,
			Vault: h.vault,
			Close: func() error { h.closed++; return nil },
		}, nil
	}

	h.cli = New(iocli.NewStream(strings.NewReader(input), h.out), h.clipboard, open)
	h.cli.sleep = func(time.Duration) {}
	return h
}

func (h *harness) signedIn() *harness {
	h.auth.session = &storage.SessionData{
		Email:     "alice@example.com",
		UserID:    "u1",
		Token:     "jwt",
		ServerURL: DefaultServerURL,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return h
}

func (h *harness) run(args ...string) error {
	return h.cli.Execute(context.Background(), "test", args)
}

var errBoom = errors.New("boom")
