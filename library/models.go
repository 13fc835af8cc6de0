package library

import "time"

// Default states written when a create call leaves them empty.
const (
	DefaultRole             = "usuario"
	DefaultVisibility       = "visible"
	DefaultClubStatus       = "activo"
	DefaultMemberStatus     = "pendiente"
	DefaultOrderStatus      = "pedido"
	DefaultExchangeStatus   = "propuesto"
	MemberStatusAccepted    = "aceptado"
	ExchangeStatusCompleted = "completado"
)

// NewUser is a row for usuario. PasswordHash is stored as given.
type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
	City         *string
	Phone        *string
	Role         string // DefaultRole when empty
}

// UserChanges lists the usuario columns an update may touch. Nil means
// unchanged.
type UserChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
	City         *string
	Phone        *string
	Role         *string
}

// NewBook is a row for libro.
type NewBook struct {
	Title      string
	Author     string
	OwnerID    int64
	ISBN       *string
	Genre      *string
	Summary    *string
	Year       *int
	Publisher  *string
	Pages      *int
	Language   *string
	Condition  *string
	InCatalog  bool
	Visibility string // DefaultVisibility when empty
	SalePrice  *float64
}

// BookChanges lists the libro columns an update may touch.
type BookChanges struct {
	Title      *string
	Author     *string
	OwnerID    *int64
	ISBN       *string
	Genre      *string
	Summary    *string
	Year       *int
	Publisher  *string
	Pages      *int
	Language   *string
	Condition  *string
	InCatalog  *bool
	Visibility *string
	SalePrice  *float64
}

// NewClub is a row for club_lectura.
type NewClub struct {
	Name        string
	StartDate   time.Time
	BookID      int64
	AdminID     int64
	MaxMembers  int
	Description *string
	EndDate     *time.Time
	Status      string // DefaultClubStatus when empty
}

// ClubChanges lists the club_lectura columns an update may touch.
type ClubChanges struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *string
	BookID      *int64
	AdminID     *int64
	MaxMembers  *int
}

// NewMembership links a user to a club.
type NewMembership struct {
	UserID int64
	ClubID int64
	Status string // DefaultMemberStatus when empty
}

// NewReview is a row for resena. ParentID makes it a reply.
type NewReview struct {
	Content  string
	Rating   int
	UserID   int64
	BookID   int64
	ParentID *int64
}

// NewOrder is a row for orden_compra. PaidAt defaults to the database clock.
type NewOrder struct {
	TotalPrice      float64
	ShippingAddress string
	PaymentMethod   string
	BuyerID         int64
	BookID          int64
	Status          string // DefaultOrderStatus when empty
	PaidAt          *time.Time
}

// NewExchange proposes swapping OfferedBookID for RequestedBookID.
type NewExchange struct {
	ProposerID      int64
	ReceiverID      int64
	OfferedBookID   int64
	RequestedBookID int64
	Status          string // DefaultExchangeStatus when empty
	Message         *string
	Conditions      *string
}

// NewReading records a user reading a club's book. A nil EndDate means the
// user is still reading it.
type NewReading struct {
	UserID    int64
	ClubID    int64
	BookID    int64
	StartDate time.Time
	EndDate   *time.Time
}

// NewMeeting schedules a club meeting.
type NewMeeting struct {
	ClubID      int64
	Date        time.Time
	Topic       string
	Description *string
	Place       *string
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
