package library

import "context"

const insertReading = `INSERT INTO leer_libros (id_usuario, id_club, id_libro, fecha_inicio, fecha_fin)
	VALUES (?, ?, ?, ?, ?)`

// CreateReading records that a user started a club's book. Like memberships,
// leer_libros has no generated key.
func (d *Database) CreateReading(ctx context.Context, r NewReading) (int64, error) {
	return d.exec.Exec(ctx, insertReading, r.UserID, r.ClubID, r.BookID, r.StartDate, r.EndDate)
}

// ReadReadings returns all reading records, or those matching f.
func (d *Database) ReadReadings(ctx context.Context, f *Filter) (*ResultSet, error) {
	return d.read(ctx, readingsTable, f)
}
