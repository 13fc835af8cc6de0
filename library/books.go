package library

import (
	"context"

	"github.com/doug-martin/goqu/v9"
)

const insertBook = `INSERT INTO libro (titulo, autor, id_propietario, isbn, genero, resumen, anio_publicacion,
		editorial, paginas, idioma, estado_fisico, en_catalogo, modalidad_publicacion, precio_venta)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateBook inserts a book for its owner and returns the new id.
func (d *Database) CreateBook(ctx context.Context, b NewBook) (int64, error) {
	return d.exec.Exec(ctx, insertBook,
		b.Title, b.Author, b.OwnerID, b.ISBN, b.Genre, b.Summary, b.Year,
		b.Publisher, b.Pages, b.Language, b.Condition, b.InCatalog,
		orDefault(b.Visibility, DefaultVisibility), b.SalePrice)
}

// ReadBooks returns all books, or those matching f.
func (d *Database) ReadBooks(ctx context.Context, f *Filter) (*ResultSet, error) {
	return d.read(ctx, booksTable, f)
}

// UpdateBook applies the given changes to book id.
func (d *Database) UpdateBook(ctx context.Context, id int64, c BookChanges) (int64, error) {
	set := goqu.Record{}
	setIf(set, "titulo", c.Title)
	setIf(set, "autor", c.Author)
	setIf(set, "id_propietario", c.OwnerID)
	setIf(set, "isbn", c.ISBN)
	setIf(set, "genero", c.Genre)
	setIf(set, "resumen", c.Summary)
	setIf(set, "anio_publicacion", c.Year)
	setIf(set, "editorial", c.Publisher)
	setIf(set, "paginas", c.Pages)
	setIf(set, "idioma", c.Language)
	setIf(set, "estado_fisico", c.Condition)
	setIf(set, "en_catalogo", c.InCatalog)
	setIf(set, "modalidad_publicacion", c.Visibility)
	setIf(set, "precio_venta", c.SalePrice)
	return d.update(ctx, booksTable, id, set)
}

// DeleteBook removes book id.
func (d *Database) DeleteBook(ctx context.Context, id int64) (int64, error) {
	return d.remove(ctx, booksTable, id)
}
