package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"libros-circulares/config"
)

// ErrEmptyPassword is returned when a plain password is blank.
var ErrEmptyPassword = errors.New("password cannot be empty")

// Manager is a thin façade over Database and Reports, keeping CLI code simple.
type Manager struct {
	cfg      config.Config
	log      *zap.Logger
	provider Provider
	exec     *SQLExecutor
	db       *Database
	reports  *Reports
}

// NewManager wires a dialing provider, the executor, entity access and the
// report catalogue from cfg. Nothing connects until the first call.
func NewManager(cfg config.Config, log *zap.Logger) *Manager {
	provider := NewDialProvider(cfg.Database, log)
	exec := NewExecutor(provider, log)
	return &Manager{
		cfg:      cfg,
		log:      log,
		provider: provider,
		exec:     exec,
		db:       NewDatabase(exec, cfg.Database.Driver),
		reports:  NewReports(exec),
	}
}

// DB returns the entity access functions.
func (m *Manager) DB() *Database { return m.db }

// Reports returns the report queries.
func (m *Manager) Reports() *Reports { return m.reports }

// CheckConnection opens and releases one connection.
func (m *Manager) CheckConnection(ctx context.Context) error {
	_, release, err := m.provider.Connect(ctx)
	if err != nil {
		return err
	}
	release()
	return nil
}

// Migrate creates missing tables for the configured database.
func (m *Manager) Migrate() error {
	if err := Migrate(m.cfg.Database); err != nil {
		return err
	}
	m.log.Info("schema up to date", zap.String("driver", m.cfg.Database.Driver))
	return nil
}

// RegisterUser hashes password and creates the user. u.PasswordHash is
// ignored.
func (m *Manager) RegisterUser(ctx context.Context, u NewUser, password string) (int64, error) {
	hash, err := m.hashPassword(password)
	if err != nil {
		return 0, err
	}
	u.PasswordHash = hash
	return m.db.CreateUser(ctx, u)
}

// ResetPassword replaces a user's password hash. It returns ErrNotFound when
// no user has that id.
func (m *Manager) ResetPassword(ctx context.Context, userID int64, password string) error {
	hash, err := m.hashPassword(password)
	if err != nil {
		return err
	}
	n, err := m.db.UpdateUser(ctx, userID, UserChanges{PasswordHash: &hash})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	m.log.Info("password reset", zap.Int64("user_id", userID))
	return nil
}

// CheckPassword reports whether password matches the stored hash of a user.
func (m *Manager) CheckPassword(ctx context.Context, userID int64, password string) (bool, error) {
	row, err := m.exec.QueryRow(ctx, "SELECT password_hash FROM usuario WHERE id_usuario = ?", userID)
	if err != nil {
		return false, err
	}
	hash, _ := row["password_hash"].(string)
	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}

func (m *Manager) hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	cost := m.cfg.Auth.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
