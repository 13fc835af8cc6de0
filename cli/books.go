package cli

import (
	"context"

	"libros-circulares/library"
)

func (a *app) booksMenu(ctx context.Context) error {
	books := mustEntity("books")
	return a.menu(ctx, "BOOKS", "Back", []menuItem{
		{"Create book", a.createBook},
		{"Read books", a.readMenu(books,
			menuItem{"Find by ID", a.searchBy(books, "id_libro", "Book ID")},
			menuItem{"Find by owner", a.searchBy(books, "id_propietario", "Owner ID")},
		)},
		{"Update book", a.updateBook},
		{"Delete book", a.deleteByID("Book", a.mgr.DB().DeleteBook)},
	})
}

func (a *app) createBook(ctx context.Context) error {
	a.printf("\n--- NEW BOOK ---\n")
	var b library.NewBook
	var err error
	if b.Title, err = a.prompt.require("Title: "); err != nil {
		return err
	}
	if b.Author, err = a.prompt.require("Author: "); err != nil {
		return err
	}
	if b.OwnerID, err = a.prompt.askID("Owner user ID: "); err != nil {
		return err
	}
	if b.ISBN, err = a.prompt.optional("ISBN (optional): "); err != nil {
		return err
	}
	if b.Genre, err = a.prompt.optional("Genre (optional): "); err != nil {
		return err
	}
	if b.Summary, err = a.prompt.optional("Summary (optional): "); err != nil {
		return err
	}
	if b.Year, err = a.prompt.optionalInt("Publication year (optional): "); err != nil {
		return err
	}
	if b.Publisher, err = a.prompt.optional("Publisher (optional): "); err != nil {
		return err
	}
	if b.Pages, err = a.prompt.optionalInt("Pages (optional): "); err != nil {
		return err
	}
	if b.Language, err = a.prompt.optional("Language (optional): "); err != nil {
		return err
	}
	if b.Condition, err = a.prompt.optional("Physical condition (optional): "); err != nil {
		return err
	}
	inCatalog, err := a.prompt.optionalBool("List in the catalogue? (y/N): ")
	if err != nil {
		return err
	}
	b.InCatalog = inCatalog != nil && *inCatalog
	if b.SalePrice, err = a.prompt.optionalFloat("Sale price (optional): "); err != nil {
		return err
	}
	visibility, err := a.prompt.ask("Visibility (blank for " + library.DefaultVisibility + "): ")
	if err != nil {
		return err
	}
	b.Visibility = visibility

	id, err := a.mgr.DB().CreateBook(ctx, b)
	if err != nil {
		return err
	}
	a.printf("Book created with ID %d.\n", id)
	return nil
}

func (a *app) updateBook(ctx context.Context) error {
	id, err := a.prompt.askID("Book ID to update: ")
	if err != nil {
		return err
	}
	a.printf("Leave a field blank to keep it.\n")
	var c library.BookChanges
	if c.Title, err = a.prompt.optional("New title: "); err != nil {
		return err
	}
	if c.Author, err = a.prompt.optional("New author: "); err != nil {
		return err
	}
	if c.OwnerID, err = a.prompt.optionalID("New owner user ID: "); err != nil {
		return err
	}
	if c.Genre, err = a.prompt.optional("New genre: "); err != nil {
		return err
	}
	if c.Condition, err = a.prompt.optional("New physical condition: "); err != nil {
		return err
	}
	if c.InCatalog, err = a.prompt.optionalBool("In catalogue (y/n): "); err != nil {
		return err
	}
	if c.Visibility, err = a.prompt.optional("New visibility: "); err != nil {
		return err
	}
	if c.SalePrice, err = a.prompt.optionalFloat("New sale price: "); err != nil {
		return err
	}
	if c == (library.BookChanges{}) {
		a.printf("No changes entered. Nothing to do.\n")
		return nil
	}
	n, err := a.mgr.DB().UpdateBook(ctx, id, c)
	if err != nil {
		return err
	}
	a.reportWrite("Book", id, n, "updated")
	return nil
}
