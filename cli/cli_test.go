package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"libros-circulares/config"
	"libros-circulares/library"
)

// seededDB migrates a fresh sqlite file holding Ana (id 1) and her book Dune
// (id 1), and returns its path.
func seededDB(t *testing.T) string {
	t.Helper()
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("OUTPUT", "")

	path := filepath.Join(t.TempDir(), "cli.db")
	mgr := library.NewManager(config.Config{
		Database: config.Database{Driver: config.DriverSQLite, Path: path},
		Auth:     config.Auth{BcryptCost: bcrypt.MinCost},
	}, zap.NewNop())
	require.NoError(t, mgr.Migrate())

	ctx := context.Background()
	city := "Bogotá"
	ana, err := mgr.RegisterUser(ctx, library.NewUser{Name: "Ana", Email: "ana@x.com", City: &city}, "pw")
	require.NoError(t, err)
	_, err = mgr.DB().CreateBook(ctx, library.NewBook{Title: "Dune", Author: "Frank Herbert", OwnerID: ana})
	require.NoError(t, err)
	return path
}

// run executes librosc against the sqlite file at path with the given stdin.
func run(t *testing.T, path, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--env-file", "", "--driver", "sqlite", "--db-path", path}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func lines(ls ...string) string { return strings.Join(ls, "\n") + "\n" }

func TestInteractiveCreateAndListUsers(t *testing.T) {
	path := seededDB(t)

	out, err := run(t, path, lines(
		"1",                                             // users
		"1", "Luis", "luis@x.com", "s3cret", "Cali", "", // create user
		"2", "1", "5",
		"6",
		"11",
	))
	require.NoError(t, err)
	assert.Contains(t, out, "=== MAIN MENU - LIBROS CIRCULARES ===")
	assert.Contains(t, out, "User created with ID 2.")
	assert.Contains(t, out, "--- Results: Users (2 records) ---")
	assert.Contains(t, out, "luis@x.com")
	assert.Contains(t, out, "Goodbye!")
}

func TestInteractiveReportsAndBadInput(t *testing.T) {
	path := seededDB(t)

	out, err := run(t, path, lines(
		"42", // not an option
		"10", // reports
		"3", "Dune",
		"1", "abc",
		"16",
		"2", "1", "Neuromancer", "William Gibson", "x", // bad owner id
		"5",
		"11",
	))
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid option. Try again.")
	assert.Contains(t, out, "--- Results: Books by title or author, with owner matching 'Dune' (1 records) ---")
	assert.Contains(t, out, `Invalid input. invalid input "abc"`)
	assert.Contains(t, out, `Invalid input. invalid input "x"`)
}

func TestInteractiveUpdateAndDelete(t *testing.T) {
	path := seededDB(t)

	out, err := run(t, path, lines(
		"1",                          // users
		"3", "1", "", "", "", "", "", // nothing entered
		"3", "1", "", "", "Medellín", "", "",
		"3", "9", "", "", "Cali", "", "",
		"4", "1", "y", // Ana still owns Dune
		"6",
		"2", // books
		"4", "1", "n",
		"4", "1", "y",
		"5",
		"11",
	))
	require.NoError(t, err)
	assert.Contains(t, out, "No changes entered. Nothing to do.")
	assert.Contains(t, out, "User 1 updated.")
	assert.Contains(t, out, "No user 9 found, or nothing changed.")
	assert.Contains(t, out, "Rejected by the database:")
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, out, "Book 1 deleted.")
}

func TestSearchWithBlankValueListsEverything(t *testing.T) {
	path := seededDB(t)

	out, err := run(t, path, lines(
		"1", "2",
		"4", "ciudad", "",
		"4", "ciudad", "Cali",
		"5", "6", "11",
	))
	require.NoError(t, err)
	assert.Contains(t, out, "--- Results: Users (1 records) ---")
	assert.Contains(t, out, "No records found for Users with ciudad 'Cali'.")
	assert.NotContains(t, out, "Users with ciudad ''")

	out, err = run(t, path, "", "list", "users", "--field", "ciudad", "--value", "")
	require.NoError(t, err)
	assert.Contains(t, out, "--- Results: Users (1 records) ---")
}

func TestInteractiveStopsAtEndOfInput(t *testing.T) {
	path := seededDB(t)

	out, err := run(t, path, "1\n2\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "Goodbye!")
}

func TestInteractiveWithoutDatabase(t *testing.T) {
	t.Setenv("OUTPUT", "")
	path := filepath.Join(t.TempDir(), "missing", "cli.db")

	out, err := run(t, path, "11\n")
	require.ErrorIs(t, err, library.ErrConnectionUnavailable)
	assert.Contains(t, out, "CRITICAL: could not connect to the database.")
	assert.NotContains(t, out, "MAIN MENU")
}

func TestListCommand(t *testing.T) {
	path := seededDB(t)

	out, err := run(t, path, "", "list", "users", "--field", "ciudad", "--value", "Bogotá")
	require.NoError(t, err)
	assert.Contains(t, out, "--- Results: Users with ciudad 'Bogotá' (1 records) ---")

	out, err = run(t, path, "", "list", "books", "--field", "id_propietario", "--value", "1", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"titulo": "Dune"`)
	assert.Contains(t, out, `"count": 1`)

	_, err = run(t, path, "", "list", "authors")
	assert.ErrorContains(t, err, `unknown entity "authors"`)

	_, err = run(t, path, "", "list", "users", "--field", "secret", "--value", "x")
	assert.ErrorIs(t, err, library.ErrUnknownField)
}

func TestReportCommand(t *testing.T) {
	path := seededDB(t)

	out, err := run(t, path, "", "report")
	require.NoError(t, err)
	assert.Contains(t, out, " 1. Members of a club (--club)")
	assert.Contains(t, out, "15. Users in clubs without purchases")

	_, err = run(t, path, "", "report", "1")
	assert.ErrorContains(t, err, "needs --club")

	_, err = run(t, path, "", "report", "99")
	assert.Error(t, err)

	out, err = run(t, path, "", "report", "3", "--term", "Herbert")
	require.NoError(t, err)
	assert.Contains(t, out, "(1 records)")

	out, err = run(t, path, "", "report", "1", "--club", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "No records found for Members of a club 1.")
}

func TestResetPasswordCommand(t *testing.T) {
	path := seededDB(t)

	out, err := run(t, path, "n3w\nn3w\n", "reset-password", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Password updated for user 1.")

	_, err = run(t, path, "one\ntwo\n", "reset-password", "1")
	assert.ErrorContains(t, err, "passwords do not match")

	_, err = run(t, path, "pw\npw\n", "reset-password", "7")
	assert.ErrorIs(t, err, library.ErrNotFound)

	mgr := library.NewManager(config.Config{Database: config.Database{Driver: config.DriverSQLite, Path: path}}, zap.NewNop())
	ok, err := mgr.CheckPassword(context.Background(), 1, "n3w")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMigrateCommand(t *testing.T) {
	t.Setenv("OUTPUT", "")
	path := filepath.Join(t.TempDir(), "fresh", "cli.db")

	out, err := run(t, path, "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date.")

	out, err = run(t, path, "", "list", "meetings")
	require.NoError(t, err)
	assert.Contains(t, out, "No records found for Meetings.")
}
