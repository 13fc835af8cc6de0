package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"libros-circulares/config"
	"libros-circulares/library"
)

func TestParseBook(t *testing.T) {
	b, err := parseBook([]string{" Dune ", "Frank Herbert", "", "sci-fi", "1965", "en", "", "12,5"}, 3, true)
	require.Error(t, err, "comma decimals are not accepted in CSV")

	b, err = parseBook([]string{" Dune ", "Frank Herbert", "", "sci-fi", "1965", "en", "", "12.5"}, 3, true)
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, int64(3), b.OwnerID)
	assert.Nil(t, b.ISBN)
	assert.Equal(t, "sci-fi", *b.Genre)
	assert.Equal(t, 1965, *b.Year)
	assert.Nil(t, b.Condition)
	assert.Equal(t, 12.5, *b.SalePrice)
	assert.True(t, b.InCatalog)

	_, err = parseBook([]string{"", "Anon", "", "", "", "", "", ""}, 3, false)
	assert.ErrorContains(t, err, "title and author are required")

	_, err = parseBook([]string{"Ubik", "Philip K. Dick", "", "", "sixty-nine", "", "", ""}, 3, false)
	assert.ErrorContains(t, err, `year "sixty-nine" is not a number`)
}

func TestImportBooks(t *testing.T) {
	cfg := config.Config{Database: config.Database{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "import.db")}}
	require.NoError(t, library.Migrate(cfg.Database))
	mgr := library.NewManager(cfg, zaptest.NewLogger(t))
	ctx := context.Background()

	owner, err := mgr.DB().CreateUser(ctx, library.NewUser{Name: "Ana", Email: "ana@x.com", PasswordHash: "x"})
	require.NoError(t, err)

	csv := strings.Join([]string{
		"title,author,isbn,genre,year,language,condition,price",
		"Dune,Frank Herbert,9780441013593,sci-fi,1965,en,good,12.5",
		",Nobody,,,,,,",
		"Ubik,Philip K. Dick,,,1969,,,",
		"short,row",
		`"Cien años de soledad",García Márquez,,novela,1967,es,,`,
	}, "\n")

	imported, failed, err := importBooks(ctx, mgr.DB(), strings.NewReader(csv), owner, false, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 3, imported)
	assert.Equal(t, 2, failed)

	rs, err := mgr.DB().ReadBooks(ctx, library.Where("id_propietario", owner))
	require.NoError(t, err)
	titles := make([]string, 0, rs.Len())
	for _, row := range rs.Rows {
		titles = append(titles, row["titulo"].(string))
	}
	assert.ElementsMatch(t, []string{"Dune", "Ubik", "Cien años de soledad"}, titles)
}

func TestImportBooksRejectsHeader(t *testing.T) {
	_, _, err := importBooks(context.Background(), nil, strings.NewReader("name,writer\n"), 1, false, zaptest.NewLogger(t))
	assert.Error(t, err)

	_, _, err = importBooks(context.Background(), nil, strings.NewReader(""), 1, false, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "read header")
}

func TestImportBooksUnknownOwner(t *testing.T) {
	cfg := config.Database{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "import.db")}
	require.NoError(t, library.Migrate(cfg))
	mgr := library.NewManager(config.Config{Database: cfg}, zaptest.NewLogger(t))

	csv := "title,author,isbn,genre,year,language,condition,price\nDune,Frank Herbert,,,,,,\n"
	imported, failed, err := importBooks(context.Background(), mgr.DB(), strings.NewReader(csv), 42, false, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Zero(t, imported)
	assert.Equal(t, 1, failed)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "Dune", truncateString("Dune", 10))
	assert.Equal(t, "The Left...", truncateString("The Left Hand of Darkness", 11))
	assert.Equal(t, "Th", truncateString("The", 2))

	long := strings.Repeat("a", 46) + "ñandú y colibrí"
	got := truncateString(long, 50)
	assert.True(t, utf8.ValidString(got), "got %q", got)
	assert.Equal(t, strings.Repeat("a", 46)+"ñ...", got)
	assert.Equal(t, "Cien años...", truncateString("Cien años de soledad", 12))
	assert.Equal(t, "ñá", truncateString("ñáé", 2))
}
