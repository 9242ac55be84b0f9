package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/passvault/internal/client/auth"
)

func TestSignup(t *testing.T) {
	h := newHarness(t, "alice@example.com\nsecret123\n")

	require.NoError(t, h.run("signup"))

	assert.Equal(t, "alice@example.com", h.auth.signupEmail)
	assert.Equal(t, "secret123", h.auth.password)
	assert.Contains(t, h.out.String(), "User created successfully")
}

func TestSignup_EmailFlag(t *testing.T) {
	h := newHarness(t, "secret123\n")

	require.NoError(t, h.run("signup", "--email", "bob@example.com"))
	assert.Equal(t, "bob@example.com", h.auth.signupEmail)
}

func TestSignup_Error(t *testing.T) {
	h := newHarness(t, "alice@example.com\nsecret123\n")
	h.auth.err = errBoom

	assert.ErrorIs(t, h.run("signup"), errBoom)
}

func TestSignin(t *testing.T) {
	h := newHarness(t, "secret123\n")

	require.NoError(t, h.run("signin", "-e", "alice@example.com"))

	assert.Equal(t, "alice@example.com", h.auth.signinEmail)
	assert.Contains(t, h.out.String(), "Signed in")
	assert.Contains(t, h.out.String(), "'alice@example.com'")
}

func TestSignout(t *testing.T) {
	h := newHarness(t, "").signedIn()

	require.NoError(t, h.run("signout"))
	assert.True(t, h.auth.signedOut)
	assert.Contains(t, h.out.String(), "Signed out")

	h2 := newHarness(t, "")
	require.NoError(t, h2.run("signout"))
	assert.Contains(t, h2.out.String(), "Not signed in")
}

func TestStatus(t *testing.T) {
	h := newHarness(t, "").signedIn()

	require.NoError(t, h.run("status"))

	out := h.out.String()
	assert.True(t, h.auth.verified)
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "u1")
	assert.Contains(t, out, DefaultServerURL)
}

func TestStatus_RejectedByServer(t *testing.T) {
	h := newHarness(t, "").signedIn()
	h.auth.verifyErr = fmt.Errorf("session rejected by server: %w", auth.ErrNotSignedIn)

	require.NoError(t, h.run("status"))
	assert.Contains(t, h.out.String(), "session rejected by server")
	assert.NotContains(t, h.out.String(), "✓ Signed in")
}

func TestStatus_ServerUnreachable(t *testing.T) {
	h := newHarness(t, "").signedIn()
	h.auth.verifyErr = errors.New("failed to verify session: connection refused")

	assert.ErrorContains(t, h.run("status"), "connection refused")
}

func TestStatus_NotSignedIn(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run("status"))
	assert.Contains(t, h.out.String(), auth.ErrNotSignedIn.Error())
}
