package config

const (
	// DefaultDatabaseName is the MySQL schema the community data lives in.
	DefaultDatabaseName = "libros_circulares"

	// DefaultSQLitePath is used when DB_DRIVER=sqlite and DB_PATH is unset.
	DefaultSQLitePath = "./libros_circulares.db"

	// DefaultBcryptCost is the bcrypt work factor for stored password hashes.
	DefaultBcryptCost = 12

	// DefaultEnvFile is read at startup when present.
	DefaultEnvFile = ".env"
)
