package library

import (
	"fmt"
	"time"

	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"libros-circulares/config"
)

// The structs below only describe the tables for Migrate; reads and writes go
// through the Executor with plain SQL.

type usuario struct {
	IDUsuario    int64   `gorm:"column:id_usuario;primaryKey;autoIncrement"`
	Nombre       string  `gorm:"column:nombre;size:120;not null"`
	Email        string  `gorm:"column:email;size:150;not null;uniqueIndex"`
	PasswordHash string  `gorm:"column:password_hash;size:255;not null"`
	Ciudad       *string `gorm:"column:ciudad;size:100"`
	Telefono     *string `gorm:"column:telefono;size:30"`
	Rol          string  `gorm:"column:rol;size:30;not null"`
}

func (usuario) TableName() string { return "usuario" }

type libro struct {
	IDLibro              int64    `gorm:"column:id_libro;primaryKey;autoIncrement"`
	Titulo               string   `gorm:"column:titulo;size:200;not null"`
	Autor                string   `gorm:"column:autor;size:150;not null"`
	IDPropietario        int64    `gorm:"column:id_propietario;not null;index"`
	Propietario          *usuario `gorm:"foreignKey:IDPropietario;references:IDUsuario;constraint:OnDelete:RESTRICT"`
	ISBN                 *string  `gorm:"column:isbn;size:20"`
	Genero               *string  `gorm:"column:genero;size:60"`
	Resumen              *string  `gorm:"column:resumen;type:text"`
	AnioPublicacion      *int     `gorm:"column:anio_publicacion"`
	Editorial            *string  `gorm:"column:editorial;size:120"`
	Paginas              *int     `gorm:"column:paginas"`
	Idioma               *string  `gorm:"column:idioma;size:40"`
	EstadoFisico         *string  `gorm:"column:estado_fisico;size:40"`
	EnCatalogo           bool     `gorm:"column:en_catalogo;not null"`
	ModalidadPublicacion string   `gorm:"column:modalidad_publicacion;size:30;not null"`
	PrecioVenta          *float64 `gorm:"column:precio_venta"`
}

func (libro) TableName() string { return "libro" }

type clubLectura struct {
	IDClub          int64      `gorm:"column:id_club;primaryKey;autoIncrement"`
	NombreClub      string     `gorm:"column:nombre_club;size:150;not null"`
	Descripcion     *string    `gorm:"column:descripcion;type:text"`
	FechaInicio     time.Time  `gorm:"column:fecha_inicio;not null"`
	FechaFin        *time.Time `gorm:"column:fecha_fin"`
	Estado          string     `gorm:"column:estado;size:30;not null"`
	IDLibro         int64      `gorm:"column:id_libro;not null;index"`
	IDAdministrador int64      `gorm:"column:id_administrador;not null;index"`
	MaxMiembros     int        `gorm:"column:max_miembros;not null"`
}

func (clubLectura) TableName() string { return "club_lectura" }

type usuarioClub struct {
	IDUsuario     int64  `gorm:"column:id_usuario;primaryKey;autoIncrement:false"`
	IDClub        int64  `gorm:"column:id_club;primaryKey;autoIncrement:false"`
	EstadoMiembro string `gorm:"column:estado_miembro;size:30;not null"`
}

func (usuarioClub) TableName() string { return "usuario_club" }

type resena struct {
	IDResena      int64  `gorm:"column:id_resena;primaryKey;autoIncrement"`
	Contenido     string `gorm:"column:contenido;type:text;not null"`
	Calificacion  int    `gorm:"column:calificacion;not null"`
	IDUsuario     int64  `gorm:"column:id_usuario;not null;index"`
	IDLibro       int64  `gorm:"column:id_libro;not null;index"`
	IDResenaPadre *int64 `gorm:"column:id_resena_padre;index"`
}

func (resena) TableName() string { return "resena" }

type ordenCompra struct {
	IDOrden        int64      `gorm:"column:id_orden;primaryKey;autoIncrement"`
	PrecioTotal    float64    `gorm:"column:precio_total;not null"`
	EstadoOrden    string     `gorm:"column:estado_orden;size:30;not null"`
	DireccionEnvio string     `gorm:"column:direccion_envio;size:255"`
	MetodoPago     string     `gorm:"column:metodo_pago;size:40"`
	IDComprador    int64      `gorm:"column:id_comprador;not null;index"`
	IDLibro        int64      `gorm:"column:id_libro;not null;index"`
	FechaPago      *time.Time `gorm:"column:fecha_pago"`
}

func (ordenCompra) TableName() string { return "orden_compra" }

type intercambio struct {
	IDIntercambio     int64     `gorm:"column:id_intercambio;primaryKey;autoIncrement"`
	EstadoIntercambio string    `gorm:"column:estado_intercambio;size:30;not null"`
	MensajePropuesta  *string   `gorm:"column:mensaje_propuesta;type:text"`
	Condiciones       *string   `gorm:"column:condiciones;type:text"`
	IDUsuarioPropone  int64     `gorm:"column:id_usuario_propone;not null;index"`
	IDUsuarioRecibe   int64     `gorm:"column:id_usuario_recibe;not null;index"`
	IDLibroOfrecido   int64     `gorm:"column:id_libro_ofrecido;not null"`
	IDLibroSolicitado int64     `gorm:"column:id_libro_solicitado;not null"`
	FechaPropuesta    time.Time `gorm:"column:fecha_propuesta;not null;default:CURRENT_TIMESTAMP"`
}

func (intercambio) TableName() string { return "intercambio" }

type leerLibros struct {
	IDUsuario   int64      `gorm:"column:id_usuario;primaryKey;autoIncrement:false"`
	IDClub      int64      `gorm:"column:id_club;primaryKey;autoIncrement:false"`
	IDLibro     int64      `gorm:"column:id_libro;primaryKey;autoIncrement:false"`
	FechaInicio time.Time  `gorm:"column:fecha_inicio;not null"`
	FechaFin    *time.Time `gorm:"column:fecha_fin"`
}

func (leerLibros) TableName() string { return "leer_libros" }

type reunion struct {
	IDReunion    int64     `gorm:"column:id_reunion;primaryKey;autoIncrement"`
	IDClub       int64     `gorm:"column:id_club;not null;index"`
	FechaReunion time.Time `gorm:"column:fecha_reunion;not null"`
	Tema         string    `gorm:"column:tema;size:200;not null"`
	Descripcion  *string   `gorm:"column:descripcion;type:text"`
	Lugar        *string   `gorm:"column:lugar;size:200"`
}

func (reunion) TableName() string { return "reunion" }

// Migrate creates any missing tables. Existing tables are left as they are;
// the production schema belongs to the DBMS.
func Migrate(cfg config.Database) error {
	if err := ensureSQLiteDir(cfg); err != nil {
		return err
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverMySQL:
		dialector = gormmysql.Open(mysqlDSN(cfg))
	case config.DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	default:
		return fmt.Errorf("unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	err = db.AutoMigrate(
		&usuario{},
		&libro{},
		&clubLectura{},
		&usuarioClub{},
		&resena{},
		&ordenCompra{},
		&intercambio{},
		&leerLibros{},
		&reunion{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
