package library

import "context"

const insertExchange = `INSERT INTO intercambio (estado_intercambio, mensaje_propuesta, condiciones, id_usuario_propone,
		id_usuario_recibe, id_libro_ofrecido, id_libro_solicitado)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

// CreateExchange records an exchange proposal. Ownership of the two books is
// not checked.
func (d *Database) CreateExchange(ctx context.Context, x NewExchange) (int64, error) {
	return d.exec.Exec(ctx, insertExchange,
		orDefault(x.Status, DefaultExchangeStatus), x.Message, x.Conditions,
		x.ProposerID, x.ReceiverID, x.OfferedBookID, x.RequestedBookID)
}

// ReadExchanges returns all exchanges, or those matching f.
func (d *Database) ReadExchanges(ctx context.Context, f *Filter) (*ResultSet, error) {
	return d.read(ctx, exchangesTable, f)
}

// ExchangesForUser returns the exchanges a user proposed or received.
func (d *Database) ExchangesForUser(ctx context.Context, userID int64) (*ResultSet, error) {
	return d.exec.Query(ctx,
		"SELECT * FROM intercambio WHERE id_usuario_propone = ? OR id_usuario_recibe = ?",
		userID, userID)
}
