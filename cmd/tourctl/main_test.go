package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/guidedtours/internal/adapters/authz"
	"github.com/jsamuelsen11/guidedtours/internal/adapters/persistence/memory"
	"github.com/jsamuelsen11/guidedtours/internal/domain"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

const testConfigDir = "../../configs"

func signToken(t *testing.T, actor domain.Actor) string {
	t.Helper()
	token, err := authz.NewTokenParser("test-secret", "guidedtours").Sign(actor, jwt.RegisteredClaims{})
	require.NoError(t, err)
	return token
}

var (
	editor = domain.Actor{ID: 42, Name: "editor", Roles: []string{"editor"}}
	admin  = domain.Actor{ID: 1, Name: "admin", Roles: []string{"admin"}}
)

// execute runs one tourctl invocation against store with the test profile.
func execute(t *testing.T, store ports.TourRepository, token string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	c := newCLI(&stdout, &stderr)
	c.repo = store

	cmd := newRootCmd(c)
	cmd.SetArgs(append([]string{
		"--profile", "test",
		"--config-dir", testConfigDir,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--token", token,
	}, args...))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	c.close()
	return stdout.String(), err
}

func TestLifecycleThroughCLI(t *testing.T) {
	t.Parallel()

	store := memory.New()
	editorToken := signToken(t, editor)

	out, err := execute(t, store, editorToken, "save", "--title", "Welcome &amp; hello", "--language", "en-GB")
	require.NoError(t, err)

	var saved tourJSON
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, "Welcome & hello", saved.Title)
	assert.Equal(t, 1, saved.Ordering)
	assert.Equal(t, editor.ID, saved.CreatedBy)

	out, err = execute(t, store, editorToken, "steps", "1")
	require.NoError(t, err)
	var steps []stepJSON
	require.NoError(t, json.Unmarshal([]byte(out), &steps))
	require.Len(t, steps, 1)
	assert.Equal(t, "COM_GUIDEDTOURS_BASIC_STEP", steps[0].Title)
	assert.Equal(t, "en-GB", steps[0].Language)

	out, err = execute(t, store, editorToken, "get", "1")
	require.NoError(t, err)
	var got tourJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Welcome & hello", got.TitleTranslation)

	out, err = execute(t, store, editorToken, "duplicate", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"source_id": 1`)
	assert.Contains(t, out, `"tour_id": 2`)

	_, err = execute(t, store, editorToken, "steps-language", "2", "de-DE")
	require.NoError(t, err)

	out, err = execute(t, store, editorToken, "next-ordering")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ordering": 2}`, out)

	out, err = execute(t, store, editorToken, "list")
	require.NoError(t, err)
	var tours []tourJSON
	require.NoError(t, json.Unmarshal([]byte(out), &tours))
	require.Len(t, tours, 2)
	assert.Equal(t, 0, tours[1].Published)

	out, err = execute(t, store, signToken(t, admin), "delete", "1", "2")
	require.NoError(t, err)
	var deleted deleteJSON
	require.NoError(t, json.Unmarshal([]byte(out), &deleted))
	assert.Equal(t, []int64{1, 2}, deleted.Deleted)
	assert.Empty(t, deleted.Denied)

	out, err = execute(t, store, editorToken, "list")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestDeleteDeniedReportsResult(t *testing.T) {
	t.Parallel()

	store := memory.New()
	editorToken := signToken(t, editor)

	_, err := execute(t, store, editorToken, "save", "--title", "Keep me")
	require.NoError(t, err)

	out, err := execute(t, store, editorToken, "delete", "1")
	require.ErrorIs(t, err, domain.ErrForbidden)

	var result deleteJSON
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []int64{1}, result.Denied)
	assert.Empty(t, result.IDs)
	assert.Empty(t, result.Deleted)
}

func TestSaveFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tour.json")
	body := `{"title": "From file", "description": "<p>COM_GUIDEDTOURS_X_GUIDEDTOUR</p>", "language": "*", "published": 1, "ordering": 5}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	out, err := execute(t, memory.New(), signToken(t, editor), "save", "--file", path)
	require.NoError(t, err)

	var saved tourJSON
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.Equal(t, "From file", saved.Title)
	assert.Equal(t, "COM_GUIDEDTOURS_X_GUIDEDTOUR", saved.Description)
	assert.Equal(t, 5, saved.Ordering)
}

func TestSaveUpdateKeepsUnsetFields(t *testing.T) {
	t.Parallel()

	store := memory.New()
	editorToken := signToken(t, editor)

	_, err := execute(t, store, editorToken, "save",
		"--title", "Welcome", "--description", "keep me", "--language", "en-GB", "--ordering", "7")
	require.NoError(t, err)

	out, err := execute(t, store, editorToken, "save", "--id", "1", "--title", "Renamed")
	require.NoError(t, err)

	var saved tourJSON
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.Equal(t, "Renamed", saved.Title)
	assert.Equal(t, "keep me", saved.Description)
	assert.Equal(t, "en-GB", saved.Language)
	assert.Equal(t, 7, saved.Ordering)

	out, err = execute(t, store, editorToken, "steps", "1")
	require.NoError(t, err)
	var steps []stepJSON
	require.NoError(t, json.Unmarshal([]byte(out), &steps))
	require.Len(t, steps, 1)
	assert.Equal(t, "en-GB", steps[0].Language)
}

func TestSaveFromFileBindsOnlyPresentKeys(t *testing.T) {
	t.Parallel()

	store := memory.New()
	editorToken := signToken(t, editor)

	_, err := execute(t, store, editorToken, "save", "--title", "Welcome", "--description", "keep me", "--ordering", "3")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "patch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": 1, "language": "de-DE"}`), 0o600))

	out, err := execute(t, store, editorToken, "save", "--file", path)
	require.NoError(t, err)

	var saved tourJSON
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.Equal(t, "Welcome", saved.Title)
	assert.Equal(t, "keep me", saved.Description)
	assert.Equal(t, "de-DE", saved.Language)
	assert.Equal(t, 3, saved.Ordering)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	t.Parallel()

	_, err := execute(t, memory.New(), "not.a.token", "save", "--title", "x")
	require.ErrorIs(t, err, authz.ErrInvalidToken)
}

func TestGuestCannotDuplicate(t *testing.T) {
	t.Parallel()

	_, err := execute(t, memory.New(), "", "duplicate", "1")
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInvalidIDArgument(t *testing.T) {
	t.Parallel()

	_, err := execute(t, memory.New(), "", "get", "abc")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestHealthCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, memory.New(), "", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "memory-store")
	assert.Contains(t, out, "[ OK ]")
}

func TestMigrateWithMemoryDriver(t *testing.T) {
	t.Parallel()

	out, err := execute(t, memory.New(), "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to migrate")
}

func TestTokenCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, memory.New(), "", "token", "--uid", "7", "--name", "ops", "--roles", "admin,editor")
	require.NoError(t, err)

	actor, err := authz.NewTokenParser("test-secret", "guidedtours").Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, int64(7), actor.ID)
	assert.Equal(t, []string{"admin", "editor"}, actor.Roles)

	_, err = execute(t, memory.New(), "", "token")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestRun_ReportsErrors(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--profile", "../etc", "list"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "error:")
}

func TestPrintHealth(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	healthy := printHealth(&out, map[string]error{
		"nats":     assert.AnError,
		"database": nil,
	})

	assert.False(t, healthy)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "database")
	assert.Contains(t, lines[1], "nats")
	assert.Contains(t, lines[1], assert.AnError.Error())
}
