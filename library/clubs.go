package library

import (
	"context"

	"github.com/doug-martin/goqu/v9"
)

const insertClub = `INSERT INTO club_lectura (nombre_club, descripcion, fecha_inicio, fecha_fin, estado, id_libro,
		id_administrador, max_miembros)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// CreateClub inserts a reading club and returns its id.
func (d *Database) CreateClub(ctx context.Context, c NewClub) (int64, error) {
	return d.exec.Exec(ctx, insertClub,
		c.Name, c.Description, c.StartDate, c.EndDate, orDefault(c.Status, DefaultClubStatus),
		c.BookID, c.AdminID, c.MaxMembers)
}

// ReadClubs returns all clubs, or those matching f.
func (d *Database) ReadClubs(ctx context.Context, f *Filter) (*ResultSet, error) {
	return d.read(ctx, clubsTable, f)
}

// UpdateClub applies the given changes to club id.
func (d *Database) UpdateClub(ctx context.Context, id int64, c ClubChanges) (int64, error) {
	set := goqu.Record{}
	setIf(set, "nombre_club", c.Name)
	setIf(set, "descripcion", c.Description)
	setIf(set, "fecha_inicio", c.StartDate)
	setIf(set, "fecha_fin", c.EndDate)
	setIf(set, "estado", c.Status)
	setIf(set, "id_libro", c.BookID)
	setIf(set, "id_administrador", c.AdminID)
	setIf(set, "max_miembros", c.MaxMembers)
	return d.update(ctx, clubsTable, id, set)
}

// DeleteClub removes club id.
func (d *Database) DeleteClub(ctx context.Context, id int64) (int64, error) {
	return d.remove(ctx, clubsTable, id)
}
