package library

import (
	"context"
	"fmt"
)

// Reports runs the fixed analytical queries. All of them are read-only.
type Reports struct {
	exec Executor
}

// NewReports binds the report queries to an executor.
func NewReports(exec Executor) *Reports { return &Reports{exec: exec} }

// ReportInput carries the optional inputs a report may take.
type ReportInput struct {
	ClubID   int64
	Term     string // substring of title or author
	City     string
	ClubName string // substring of the club name; empty matches every club
}

// Input names used by Report.Needs.
const (
	InputClubID   = "club"
	InputTerm     = "term"
	InputCity     = "city"
	InputClubName = "club-name"
)

// Report is one entry of the numbered report catalogue.
type Report struct {
	Number int
	Title  string
	Needs  []string
	run    func(ctx context.Context, r *Reports, in ReportInput) (*ResultSet, error)
}

// Run executes the report with in.
func (rep Report) Run(ctx context.Context, r *Reports, in ReportInput) (*ResultSet, error) {
	return rep.run(ctx, r, in)
}

// Catalogue lists every report in menu order.
func Catalogue() []Report {
	return []Report{
		{1, "Members of a club", []string{InputClubID}, func(ctx context.Context, r *Reports, in ReportInput) (*ResultSet, error) {
			return r.ClubMembers(ctx, in.ClubID)
		}},
		{2, "Reading clubs and accepted member count", nil, func(ctx context.Context, r *Reports, _ ReportInput) (*ResultSet, error) {
			return r.ClubMemberCounts(ctx)
		}},
		{3, "Books by title or author, with owner", []string{InputTerm}, func(ctx context.Context, r *Reports, in ReportInput) (*ResultSet, error) {
			return r.SearchBooks(ctx, in.Term)
		}},
		{4, "Users by city and club", []string{InputCity, InputClubName}, func(ctx context.Context, r *Reports, in ReportInput) (*ResultSet, error) {
			return r.UsersByCity(ctx, in.City, in.ClubName)
		}},
		{5, "Orders and sales by city and month", nil, func(ctx context.Context, r *Reports, _ ReportInput) (*ResultSet, error) {
			return r.SalesByCityMonth(ctx)
		}},
		{6, "Sales per book", nil, func(ctx context.Context, r *Reports, _ ReportInput) (*ResultSet, error) {
			return r.SalesByBook(ctx)
		}},
		{7, "Exchanges between users", nil, func(ctx context.Context, r *Reports, _ ReportInput) (*ResultSet, error) {
			return r.ExchangeDetails(ctx)
		}},
		{8, "Completed exchanges per proposing user", nil, func(ctx context.Context, r *Reports, _ ReportInput) (*ResultSet, error) {
			return r.CompletedExchangesByUser(ctx)
		}},
		{9, "Average rating per book (>= 4)", nil, func(ctx context.Context, r *Reports, _ ReportInput) (*ResultSet, error) {
			return r.TopRatedBooks(ctx)
		}},
		{10, "Average rating given per user", nil, func(ctx context.Context, r *Reports, _ ReportInput) (*ResultSet, error) {
			return r.RatingsGivenByUser(ctx)
		}},
		{11, "Upcoming meetings per club", nil, func(ctx context.Context, r *Reports, _ ReportInput) (*ResultSet, error) {
			return r.UpcomingMeetings(ctx)
		}},
		{12, "Books currently being read per club", nil, func(ctx context.Context, r *Reports, _ ReportInput) (*ResultSet, error) {
			return r.ActiveReadingsByClub(ctx)
		}},
		{13, "Clubs per user", nil, func(ctx context.Context, r *Reports, _ ReportInput) (*ResultSet, error) {
			return r.ClubsPerUser(ctx)
		}},
		{14, "Books with clubs and active readers", nil, func(ctx context.Context, r *Reports, _ ReportInput) (*ResultSet, error) {
			return r.BooksWithClubsAndReaders(ctx)
		}},
		{15, "Users in clubs without purchases", nil, func(ctx context.Context, r *Reports, _ ReportInput) (*ResultSet, error) {
			return r.MembersWithoutPurchases(ctx)
		}},
	}
}

// ReportByNumber looks a report up by its menu number.
func ReportByNumber(n int) (Report, error) {
	for _, rep := range Catalogue() {
		if rep.Number == n {
			return rep, nil
		}
	}
	return Report{}, fmt.Errorf("no report number %d (valid: 1-%d)", n, len(Catalogue()))
}

// ClubMembers lists the accepted members of a club.
func (r *Reports) ClubMembers(ctx context.Context, clubID int64) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT c.id_club,
		       c.nombre_club,
		       u.id_usuario,
		       u.nombre,
		       u.email
		FROM usuario_club uc
		JOIN usuario u      ON uc.id_usuario = u.id_usuario
		JOIN club_lectura c ON uc.id_club    = c.id_club
		WHERE uc.estado_miembro = 'aceptado'
		  AND c.id_club = ?`, clubID)
}

func (r *Reports) ClubMemberCounts(ctx context.Context) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT c.id_club,
		       c.nombre_club,
		       COUNT(CASE WHEN uc.estado_miembro = 'aceptado' THEN 1 END) AS total_miembros_aceptados
		FROM club_lectura c
		LEFT JOIN usuario_club uc ON c.id_club = uc.id_club
		GROUP BY c.id_club, c.nombre_club
		ORDER BY total_miembros_aceptados DESC`)
}

// SearchBooks matches term anywhere in the title or author.
func (r *Reports) SearchBooks(ctx context.Context, term string) (*ResultSet, error) {
	like := "%" + term + "%"
	return r.exec.Query(ctx, `
		SELECT l.id_libro,
		       l.titulo,
		       l.autor,
		       l.genero,
		       u.nombre  AS propietario,
		       u.email   AS email_propietario
		FROM libro l
		JOIN usuario u ON l.id_propietario = u.id_usuario
		WHERE l.titulo LIKE ?
		   OR l.autor  LIKE ?`, like, like)
}

// UsersByCity lists users of a city with their clubs. A non-empty clubName
// keeps users whose club name contains it, and users in no club.
func (r *Reports) UsersByCity(ctx context.Context, city, clubName string) (*ResultSet, error) {
	args := []any{city}
	extra := ""
	if clubName != "" {
		extra = "AND (c.nombre_club LIKE ? OR c.nombre_club IS NULL)"
		args = append(args, "%"+clubName+"%")
	}
	query := fmt.Sprintf(`
		SELECT DISTINCT u.id_usuario,
		       u.nombre,
		       u.email,
		       u.ciudad,
		       c.nombre_club
		FROM usuario u
		LEFT JOIN usuario_club uc ON u.id_usuario = uc.id_usuario
		LEFT JOIN club_lectura c  ON uc.id_club    = c.id_club
		WHERE u.ciudad = ?
		%s
		ORDER BY u.nombre`, extra)
	return r.exec.Query(ctx, query, args...)
}

// SalesByCityMonth counts and sums paid, shipped and received orders per
// buyer city and calendar month.
func (r *Reports) SalesByCityMonth(ctx context.Context) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT u.ciudad,
		       YEAR(oc.fecha_pago)  AS anio,
		       MONTH(oc.fecha_pago) AS mes,
		       COUNT(oc.id_orden)   AS total_ordenes,
		       SUM(oc.precio_total) AS total_vendido
		FROM orden_compra oc
		JOIN usuario u ON oc.id_comprador = u.id_usuario
		WHERE oc.estado_orden IN ('pagado','enviado','recibido')
		GROUP BY u.ciudad, YEAR(oc.fecha_pago), MONTH(oc.fecha_pago)
		ORDER BY u.ciudad, anio, mes`)
}

func (r *Reports) SalesByBook(ctx context.Context) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT l.id_libro,
		       l.titulo,
		       COUNT(oc.id_orden)                 AS veces_vendido,
		       COALESCE(SUM(oc.precio_total), 0)  AS total_ingresos
		FROM libro l
		LEFT JOIN orden_compra oc
		       ON l.id_libro = oc.id_libro
		      AND oc.estado_orden IN ('pagado','enviado','recibido')
		GROUP BY l.id_libro, l.titulo
		ORDER BY veces_vendido DESC`)
}

func (r *Reports) ExchangeDetails(ctx context.Context) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT i.id_intercambio,
		       u1.nombre AS usuario_propone,
		       u2.nombre AS usuario_recibe,
		       l1.titulo AS libro_ofrecido,
		       l2.titulo AS libro_solicitado,
		       i.estado_intercambio,
		       i.fecha_propuesta
		FROM intercambio i
		JOIN usuario u1 ON i.id_usuario_propone  = u1.id_usuario
		JOIN usuario u2 ON i.id_usuario_recibe   = u2.id_usuario
		JOIN libro   l1 ON i.id_libro_ofrecido   = l1.id_libro
		JOIN libro   l2 ON i.id_libro_solicitado = l2.id_libro`)
}

func (r *Reports) CompletedExchangesByUser(ctx context.Context) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT u.id_usuario,
		       u.nombre,
		       COUNT(i.id_intercambio) AS intercambios_completados
		FROM usuario u
		JOIN intercambio i ON u.id_usuario = i.id_usuario_propone
		WHERE i.estado_intercambio = 'completado'
		GROUP BY u.id_usuario, u.nombre
		ORDER BY intercambios_completados DESC`)
}

// TopRatedBooks averages ratings per book and keeps groups at 4.00 or above.
func (r *Reports) TopRatedBooks(ctx context.Context) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT l.id_libro,
		       l.titulo,
		       ROUND(AVG(r.calificacion), 2) AS promedio_calificacion,
		       COUNT(r.id_resena)            AS total_resenas
		FROM libro l
		JOIN resena r ON l.id_libro = r.id_libro
		GROUP BY l.id_libro, l.titulo
		HAVING promedio_calificacion >= 4
		ORDER BY promedio_calificacion DESC`)
}

func (r *Reports) RatingsGivenByUser(ctx context.Context) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT u.id_usuario,
		       u.nombre,
		       ROUND(AVG(r.calificacion), 2) AS promedio_calificaciones_dadas,
		       COUNT(r.id_resena)            AS total_resenas
		FROM usuario u
		JOIN resena r ON u.id_usuario = r.id_usuario
		GROUP BY u.id_usuario, u.nombre
		ORDER BY promedio_calificaciones_dadas DESC`)
}

func (r *Reports) UpcomingMeetings(ctx context.Context) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT c.id_club,
		       c.nombre_club,
		       r.fecha_reunion,
		       r.tema,
		       r.lugar
		FROM reunion r
		JOIN club_lectura c ON r.id_club = c.id_club
		WHERE r.fecha_reunion >= NOW()
		ORDER BY r.fecha_reunion`)
}

// ActiveReadingsByClub counts reading records with no end date per club.
func (r *Reports) ActiveReadingsByClub(ctx context.Context) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT c.id_club,
		       c.nombre_club,
		       COUNT(ll.id_libro) AS libros_en_lectura_actual
		FROM club_lectura c
		LEFT JOIN leer_libros ll
		       ON c.id_club = ll.id_club
		      AND ll.fecha_fin IS NULL
		GROUP BY c.id_club, c.nombre_club
		ORDER BY libros_en_lectura_actual DESC`)
}

func (r *Reports) ClubsPerUser(ctx context.Context) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT u.id_usuario,
		       u.nombre,
		       COUNT(CASE WHEN uc.estado_miembro = 'aceptado' THEN 1 END) AS clubes_aceptados
		FROM usuario u
		LEFT JOIN usuario_club uc ON u.id_usuario = uc.id_usuario
		GROUP BY u.id_usuario, u.nombre
		ORDER BY clubes_aceptados DESC`)
}

// BooksWithClubsAndReaders counts, per club book, its clubs and the distinct
// users still reading it.
func (r *Reports) BooksWithClubsAndReaders(ctx context.Context) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT l.id_libro,
		       l.titulo,
		       COUNT(DISTINCT c.id_club)     AS num_clubes_asociados,
		       COUNT(DISTINCT ll.id_usuario) AS num_lectores_activos
		FROM libro l
		JOIN club_lectura c ON l.id_libro = c.id_libro
		LEFT JOIN leer_libros ll
		       ON l.id_libro = ll.id_libro
		      AND ll.fecha_fin IS NULL
		GROUP BY l.id_libro, l.titulo
		ORDER BY num_lectores_activos DESC`)
}

func (r *Reports) MembersWithoutPurchases(ctx context.Context) (*ResultSet, error) {
	return r.exec.Query(ctx, `
		SELECT DISTINCT u.id_usuario,
		       u.nombre,
		       u.email,
		       u.ciudad
		FROM usuario u
		JOIN usuario_club uc
		       ON u.id_usuario = uc.id_usuario
		      AND uc.estado_miembro = 'aceptado'
		LEFT JOIN orden_compra oc
		       ON u.id_usuario = oc.id_comprador
		WHERE oc.id_orden IS NULL
		ORDER BY u.nombre`)
}
