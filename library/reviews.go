package library

import "context"

const insertReview = `INSERT INTO resena (contenido, calificacion, id_usuario, id_libro, id_resena_padre)
	VALUES (?, ?, ?, ?, ?)`

// CreateReview stores a review, or a reply when ParentID is set.
func (d *Database) CreateReview(ctx context.Context, r NewReview) (int64, error) {
	return d.exec.Exec(ctx, insertReview, r.Content, r.Rating, r.UserID, r.BookID, r.ParentID)
}

// ReadReviews returns all reviews, or those matching f.
func (d *Database) ReadReviews(ctx context.Context, f *Filter) (*ResultSet, error) {
	return d.read(ctx, reviewsTable, f)
}
