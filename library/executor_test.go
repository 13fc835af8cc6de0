package library

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"libros-circulares/config"
)

// spyExecutor records statements instead of running them.
type spyExecutor struct {
	queries []string
	args    [][]any
}

func (s *spyExecutor) record(query string, args []any) {
	s.queries = append(s.queries, query)
	s.args = append(s.args, args)
}

func (s *spyExecutor) Query(_ context.Context, query string, args ...any) (*ResultSet, error) {
	s.record(query, args)
	return &ResultSet{}, nil
}

func (s *spyExecutor) QueryRow(_ context.Context, query string, args ...any) (Row, error) {
	s.record(query, args)
	return nil, ErrNotFound
}

func (s *spyExecutor) Exec(_ context.Context, query string, args ...any) (int64, error) {
	s.record(query, args)
	return 1, nil
}

func tempExecutor(t *testing.T) *SQLExecutor {
	t.Helper()
	cfg := testConfig(t)
	require.NoError(t, Migrate(cfg))
	log := zaptest.NewLogger(t)
	return NewExecutor(NewDialProvider(cfg, log), log)
}

func TestEmptyUpdatesNeverReachStorage(t *testing.T) {
	spy := &spyExecutor{}
	db := NewDatabase(spy, config.DriverMySQL)
	ctx := context.Background()

	n, err := db.UpdateUser(ctx, 1, UserChanges{})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = db.UpdateBook(ctx, 1, BookChanges{})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = db.UpdateClub(ctx, 1, ClubChanges{})
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Empty(t, spy.queries)
}

func TestUpdateBindsValuesAsParameters(t *testing.T) {
	spy := &spyExecutor{}
	db := NewDatabase(spy, config.DriverMySQL)

	_, err := db.UpdateUser(context.Background(), 7, UserChanges{City: strPtr("Bogotá'; --")})
	require.NoError(t, err)

	require.Len(t, spy.queries, 1)
	assert.Contains(t, spy.queries[0], "UPDATE `usuario` SET `ciudad`=?")
	assert.NotContains(t, spy.queries[0], "Bogotá")
	assert.Equal(t, []any{"Bogotá'; --", int64(7)}, spy.args[0])
}

func TestUnknownFieldNeverReachesStorage(t *testing.T) {
	spy := &spyExecutor{}
	db := NewDatabase(spy, config.DriverSQLite)

	_, err := db.ReadBooks(context.Background(), Where("titulo OR 1=1", "x"))
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Empty(t, spy.queries)

	_, err = db.ReadBooks(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT * FROM libro"}, spy.queries)
}

func TestExecReturnsInsertIDAndRowCount(t *testing.T) {
	exec := tempExecutor(t)
	ctx := context.Background()

	id, err := exec.Exec(ctx, "INSERT INTO usuario (nombre, email, password_hash, rol) VALUES (?, ?, ?, ?)",
		"Ana", "ana@x.com", "h", DefaultRole)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = exec.Exec(ctx, "INSERT INTO usuario (nombre, email, password_hash, rol) VALUES (?, ?, ?, ?)",
		"Luis", "luis@x.com", "h", DefaultRole)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	n, err := exec.Exec(ctx, "UPDATE usuario SET rol = ?", "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestMalformedWriteLeavesNoRows(t *testing.T) {
	exec := tempExecutor(t)
	ctx := context.Background()

	_, err := exec.Exec(ctx, "INSERT INTO usuario (nombre, email) VALUES (?, ?, ?)", "Ana", "ana@x.com", "extra")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutionFailed)
	assert.NotErrorIs(t, err, ErrConstraintViolation)

	// The second row breaks uniqueness, so the first must not survive either.
	_, err = exec.Exec(ctx, `INSERT INTO usuario (nombre, email, password_hash, rol)
		VALUES ('Ana', 'dup@x.com', 'h', 'usuario'), ('Eva', 'dup@x.com', 'h', 'usuario')`)
	assert.ErrorIs(t, err, ErrConstraintViolation)

	rs, err := exec.Query(ctx, "SELECT * FROM usuario")
	require.NoError(t, err)
	assert.Zero(t, rs.Len())
}

func TestQueryKeepsColumnOrder(t *testing.T) {
	exec := tempExecutor(t)
	ctx := context.Background()

	_, err := exec.Exec(ctx, "INSERT INTO usuario (nombre, email, password_hash, rol) VALUES ('Ana', 'ana@x.com', 'h', 'usuario')")
	require.NoError(t, err)

	rs, err := exec.Query(ctx, "SELECT email, nombre, id_usuario FROM usuario")
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "nombre", "id_usuario"}, rs.Columns)
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, Row{"email": "ana@x.com", "nombre": "Ana", "id_usuario": int64(1)}, rs.Rows[0])

	empty, err := exec.Query(ctx, "SELECT * FROM libro")
	require.NoError(t, err)
	assert.NotNil(t, empty.Rows)
	assert.Zero(t, empty.Len())
}

func TestQueryRow(t *testing.T) {
	exec := tempExecutor(t)
	ctx := context.Background()

	_, err := exec.QueryRow(ctx, "SELECT * FROM usuario WHERE id_usuario = ?", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = exec.Exec(ctx, "INSERT INTO usuario (nombre, email, password_hash, rol) VALUES ('Ana', 'ana@x.com', 'h', 'usuario')")
	require.NoError(t, err)

	row, err := exec.QueryRow(ctx, "SELECT nombre FROM usuario WHERE id_usuario = ?", 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", row["nombre"])
}

func TestExecuteModes(t *testing.T) {
	exec := tempExecutor(t)
	ctx := context.Background()

	res, err := exec.Execute(ctx, "INSERT INTO usuario (nombre, email, password_hash, rol) VALUES (?, ?, ?, ?)",
		[]any{"Ana", "ana@x.com", "h", "usuario"}, Write)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Affected)

	res, err = exec.Execute(ctx, "SELECT * FROM usuario", nil, ReadAll)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Set.Len())

	res, err = exec.Execute(ctx, "SELECT email FROM usuario WHERE id_usuario = ?", []any{1}, ReadOne)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", res.Row["email"])

	_, err = exec.Execute(ctx, "SELECT 1", nil, Mode(42))
	assert.ErrorContains(t, err, "mode(42)")
}

func TestUnreachableDatabase(t *testing.T) {
	cfg := config.Database{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "missing", "dir", "test.db"),
	}
	exec := NewExecutor(NewDialProvider(cfg, zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	rs, err := exec.Query(ctx, "SELECT * FROM usuario")
	assert.ErrorIs(t, err, ErrConnectionUnavailable)
	assert.Zero(t, rs.Len())

	_, err = exec.QueryRow(ctx, "SELECT * FROM usuario")
	assert.ErrorIs(t, err, ErrConnectionUnavailable)

	n, err := exec.Exec(ctx, "DELETE FROM usuario")
	assert.ErrorIs(t, err, ErrConnectionUnavailable)
	assert.NotErrorIs(t, err, ErrExecutionFailed)
	assert.Zero(t, n)

	bad := NewExecutor(NewDialProvider(config.Database{Driver: "oracle"}, zap.NewNop()), zap.NewNop())
	_, err = bad.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, ErrConnectionUnavailable)
}

func TestMySQLDSN(t *testing.T) {
	dsn := mysqlDSN(config.Database{
		Driver: config.DriverMySQL, Host: "db.local", Port: 3307, Name: "libros_circulares",
		User: "app", Password: "s3cret",
	})
	assert.Contains(t, dsn, "app:s3cret@tcp(db.local:3307)/libros_circulares")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestTimeArgumentsBindAsUTC(t *testing.T) {
	bogota := time.FixedZone("COT", -5*60*60)
	local := time.Date(2026, 10, 18, 20, 29, 0, 0, bogota)
	var unset *time.Time

	args := []any{"tema", local, &local, unset, int64(3)}
	got := utcTimes(args)

	assert.Equal(t, time.Date(2026, 10, 19, 1, 29, 0, 0, time.UTC), got[1])
	assert.Equal(t, time.Date(2026, 10, 19, 1, 29, 0, 0, time.UTC), got[2])
	assert.Nil(t, got[3])
	assert.Equal(t, "tema", got[0])
	assert.Same(t, bogota, args[1].(time.Time).Location(), "caller's slice is untouched")

	plain := []any{"a", 1}
	assert.Equal(t, plain, utcTimes(plain))
}
