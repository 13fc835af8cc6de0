package library

import "context"

const insertOrder = `INSERT INTO orden_compra (precio_total, estado_orden, direccion_envio, metodo_pago, id_comprador,
		id_libro, fecha_pago)
	VALUES (?, ?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))`

// CreateOrder records a purchase. The book's visibility is not touched.
func (d *Database) CreateOrder(ctx context.Context, o NewOrder) (int64, error) {
	return d.exec.Exec(ctx, insertOrder,
		o.TotalPrice, orDefault(o.Status, DefaultOrderStatus), o.ShippingAddress, o.PaymentMethod,
		o.BuyerID, o.BookID, o.PaidAt)
}

// ReadOrders returns all orders, or those matching f.
func (d *Database) ReadOrders(ctx context.Context, f *Filter) (*ResultSet, error) {
	return d.read(ctx, ordersTable, f)
}
