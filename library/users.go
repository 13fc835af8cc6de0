package library

import (
	"context"

	"github.com/doug-martin/goqu/v9"
)

const insertUser = `INSERT INTO usuario (nombre, email, password_hash, ciudad, telefono, rol)
	VALUES (?, ?, ?, ?, ?, ?)`

// CreateUser inserts a user and returns its id.
func (d *Database) CreateUser(ctx context.Context, u NewUser) (int64, error) {
	return d.exec.Exec(ctx, insertUser,
		u.Name, u.Email, u.PasswordHash, u.City, u.Phone, orDefault(u.Role, DefaultRole))
}

// ReadUsers returns all users, or those matching f.
func (d *Database) ReadUsers(ctx context.Context, f *Filter) (*ResultSet, error) {
	return d.read(ctx, usersTable, f)
}

// UpdateUser applies the given changes to user id and returns the rows
// affected. No changes means no statement and 0.
func (d *Database) UpdateUser(ctx context.Context, id int64, c UserChanges) (int64, error) {
	set := goqu.Record{}
	setIf(set, "nombre", c.Name)
	setIf(set, "email", c.Email)
	setIf(set, "password_hash", c.PasswordHash)
	setIf(set, "ciudad", c.City)
	setIf(set, "telefono", c.Phone)
	setIf(set, "rol", c.Role)
	return d.update(ctx, usersTable, id, set)
}

// DeleteUser removes user id and returns the rows affected.
func (d *Database) DeleteUser(ctx context.Context, id int64) (int64, error) {
	return d.remove(ctx, usersTable, id)
}
