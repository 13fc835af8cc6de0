package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"libros-circulares/config"
	"libros-circulares/library"
	"libros-circulares/logging"
)

// header is the expected first CSV line.
var header = []string{"title", "author", "isbn", "genre", "year", "language", "condition", "price"}

func main() {
	file := pflag.StringP("file", "f", "books.csv", "CSV file to import")
	owner := pflag.Int64("owner", 0, "user id that owns the imported books")
	catalog := pflag.Bool("catalog", true, "list imported books in the catalogue")
	envFile := pflag.String("env-file", config.DefaultEnvFile, "file of KEY=VALUE settings to load first")
	pflag.String("driver", "", "database driver: mysql or sqlite")
	pflag.String("db-path", "", "sqlite database file")
	pflag.String("log-mode", "", "debug or production")
	pflag.Parse()

	if *owner <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --owner is required")
		os.Exit(2)
	}

	if _, err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.NewConfig(pflag.CommandLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", *file, err)
		os.Exit(1)
	}
	defer f.Close()

	mgr := library.NewManager(*cfg, log)
	ctx := context.Background()

	users, err := mgr.DB().ReadUsers(ctx, library.Where("id_usuario", *owner))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reaching the database: %v\n", err)
		os.Exit(1)
	}
	if users.Len() == 0 {
		fmt.Fprintf(os.Stderr, "Error: user %d does not exist\n", *owner)
		os.Exit(1)
	}

	fmt.Printf("Importing books from %s for user %d...\n", *file, *owner)
	imported, failed, err := importBooks(ctx, mgr.DB(), f, *owner, *catalog, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *file, err)
		os.Exit(1)
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d books\n", imported)
	fmt.Printf("Errors: %d\n", failed)

	if imported > 0 {
		rs, err := mgr.DB().ReadBooks(ctx, library.Where("id_propietario", *owner))
		if err != nil {
			fmt.Printf("Error retrieving books: %v\n", err)
			return
		}
		fmt.Println("\nBooks owned by this user:")
		fmt.Printf("%-5s %-50s %-30s\n", "ID", "Title", "Author")
		fmt.Println(strings.Repeat("-", 87))
		for _, row := range rs.Rows {
			fmt.Printf("%-5v %-50s %-30s\n", row["id_libro"],
				truncateString(fmt.Sprint(row["titulo"]), 50), truncateString(fmt.Sprint(row["autor"]), 30))
		}
	}
}

// importBooks creates one book per CSV record. Bad records are reported and
// skipped; only an unreadable file stops the import.
func importBooks(ctx context.Context, db *library.Database, r io.Reader, owner int64, catalog bool, log *zap.Logger) (imported, failed int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read header: %w", err)
	}
	if !strings.EqualFold(strings.Join(first, ","), strings.Join(header, ",")) {
		return 0, 0, fmt.Errorf("unexpected header %q, want %q", strings.Join(first, ","), strings.Join(header, ","))
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return imported, failed, nil
		}
		if err != nil {
			fmt.Printf("Line %d: ERROR - %v\n", line, err)
			failed++
			continue
		}

		book, err := parseBook(rec, owner, catalog)
		if err != nil {
			fmt.Printf("Line %d: ERROR - %v\n", line, err)
			failed++
			continue
		}

		fmt.Printf("Importing: %s by %s... ", book.Title, book.Author)
		id, err := db.CreateBook(ctx, book)
		if err != nil {
			fmt.Printf("ERROR - %v\n", strings.ReplaceAll(err.Error(), "\n", ": "))
			log.Warn("book import failed", zap.Int("line", line), zap.String("title", book.Title), zap.Error(err))
			failed++
			continue
		}
		fmt.Printf("SUCCESS (ID: %d)\n", id)
		imported++
	}
}

func parseBook(rec []string, owner int64, catalog bool) (library.NewBook, error) {
	b := library.NewBook{
		Title:     strings.TrimSpace(rec[0]),
		Author:    strings.TrimSpace(rec[1]),
		OwnerID:   owner,
		ISBN:      optional(rec[2]),
		Genre:     optional(rec[3]),
		Language:  optional(rec[5]),
		Condition: optional(rec[6]),
		InCatalog: catalog,
	}
	if b.Title == "" || b.Author == "" {
		return b, errors.New("title and author are required")
	}
	if s := strings.TrimSpace(rec[4]); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			return b, fmt.Errorf("year %q is not a number", s)
		}
		b.Year = &year
	}
	if s := strings.TrimSpace(rec[7]); s != "" {
		price, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return b, fmt.Errorf("price %q is not a number", s)
		}
		b.SalePrice = &price
	}
	return b, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// truncateString cuts s to maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
