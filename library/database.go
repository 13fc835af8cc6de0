package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"   // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"github.com/samber/lo"

	"libros-circulares/config"
)

// Database holds the entity access functions. Every method is one statement
// through the Executor; none of them share a transaction.
type Database struct {
	exec    Executor
	dialect goqu.DialectWrapper
}

// NewDatabase binds entity access to an executor. driver picks the SQL
// dialect used for generated statements.
func NewDatabase(exec Executor, driver string) *Database {
	name := "mysql"
	if driver == config.DriverSQLite {
		name = "sqlite3"
	}
	return &Database{exec: exec, dialect: goqu.Dialect(name)}
}

// Executor exposes the executor for ad hoc statements.
func (d *Database) Executor() Executor { return d.exec }

// Filter narrows a read to rows where Field equals Value. Field must be one of
// the table's columns.
type Filter struct {
	Field string
	Value any
}

// Where builds a Filter.
func Where(field string, value any) *Filter { return &Filter{Field: field, Value: value} }

// table describes one storage table: its name, primary key and the columns a
// filter may name.
type table struct {
	name    string
	key     string
	columns []string
}

func (t table) hasColumn(field string) bool {
	return lo.Contains(t.columns, field)
}

var (
	usersTable = table{"usuario", "id_usuario", []string{
		"id_usuario", "nombre", "email", "password_hash", "ciudad", "telefono", "rol",
	}}
	booksTable = table{"libro", "id_libro", []string{
		"id_libro", "titulo", "autor", "id_propietario", "isbn", "genero", "resumen", "anio_publicacion",
		"editorial", "paginas", "idioma", "estado_fisico", "en_catalogo", "modalidad_publicacion", "precio_venta",
	}}
	clubsTable = table{"club_lectura", "id_club", []string{
		"id_club", "nombre_club", "descripcion", "fecha_inicio", "fecha_fin", "estado", "id_libro",
		"id_administrador", "max_miembros",
	}}
	membershipsTable = table{"usuario_club", "", []string{
		"id_usuario", "id_club", "estado_miembro",
	}}
	reviewsTable = table{"resena", "id_resena", []string{
		"id_resena", "contenido", "calificacion", "id_usuario", "id_libro", "id_resena_padre",
	}}
	ordersTable = table{"orden_compra", "id_orden", []string{
		"id_orden", "precio_total", "estado_orden", "direccion_envio", "metodo_pago", "id_comprador",
		"id_libro", "fecha_pago",
	}}
	exchangesTable = table{"intercambio", "id_intercambio", []string{
		"id_intercambio", "estado_intercambio", "mensaje_propuesta", "condiciones", "id_usuario_propone",
		"id_usuario_recibe", "id_libro_ofrecido", "id_libro_solicitado", "fecha_propuesta",
	}}
	readingsTable = table{"leer_libros", "", []string{
		"id_usuario", "id_club", "id_libro", "fecha_inicio", "fecha_fin",
	}}
	meetingsTable = table{"reunion", "id_reunion", []string{
		"id_reunion", "id_club", "fecha_reunion", "tema", "descripcion", "lugar",
	}}
)

// Columns lists the filterable columns of a table by its storage name, for
// menus and help text.
func Columns(tableName string) []string {
	for _, t := range allTables {
		if t.name == tableName {
			return append([]string(nil), t.columns...)
		}
	}
	return nil
}

var allTables = []table{
	usersTable, booksTable, clubsTable, membershipsTable, reviewsTable,
	ordersTable, exchangesTable, readingsTable, meetingsTable,
}

// ---------------------------------------------------------------------------
// Shared statement builders
// ---------------------------------------------------------------------------

// read returns every row of t, or only those matching f.
func (d *Database) read(ctx context.Context, t table, f *Filter) (*ResultSet, error) {
	if f == nil || f.Field == "" {
		return d.exec.Query(ctx, "SELECT * FROM "+t.name)
	}
	if !t.hasColumn(f.Field) {
		return &ResultSet{}, fmt.Errorf("%w %q for %s (allowed: %s)",
			ErrUnknownField, f.Field, t.name, strings.Join(t.columns, ", "))
	}
	query, args, err := d.dialect.From(t.name).
		Where(goqu.C(f.Field).Eq(f.Value)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return &ResultSet{}, fmt.Errorf("build %s select: %w", t.name, err)
	}
	return d.exec.Query(ctx, query, args...)
}

// update applies set to the row with primary key id. An empty set is a no-op
// that never reaches the executor.
func (d *Database) update(ctx context.Context, t table, id int64, set goqu.Record) (int64, error) {
	if len(set) == 0 {
		return 0, nil
	}
	query, args, err := d.dialect.Update(t.name).
		Set(set).
		Where(goqu.C(t.key).Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build %s update: %w", t.name, err)
	}
	return d.exec.Exec(ctx, query, args...)
}

// remove deletes the row with primary key id.
func (d *Database) remove(ctx context.Context, t table, id int64) (int64, error) {
	query, args, err := d.dialect.Delete(t.name).
		Where(goqu.C(t.key).Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build %s delete: %w", t.name, err)
	}
	return d.exec.Exec(ctx, query, args...)
}

// setIf copies *v into rec under column when the setter was given.
func setIf[T any](rec goqu.Record, column string, v *T) {
	if v != nil {
		rec[column] = *v
	}
}
