package library

import "context"

const insertMembership = `INSERT INTO usuario_club (id_usuario, id_club, estado_miembro)
	VALUES (?, ?, ?)`

// CreateMembership adds a user to a club. usuario_club has no generated key,
// so the returned number is whatever the driver reports for the insert (0 on
// MySQL); callers should only look at the error.
func (d *Database) CreateMembership(ctx context.Context, m NewMembership) (int64, error) {
	return d.exec.Exec(ctx, insertMembership, m.UserID, m.ClubID, orDefault(m.Status, DefaultMemberStatus))
}

// ReadMemberships returns all memberships, or those matching f.
func (d *Database) ReadMemberships(ctx context.Context, f *Filter) (*ResultSet, error) {
	return d.read(ctx, membershipsTable, f)
}
