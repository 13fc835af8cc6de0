package cli

import (
	"context"
	"fmt"

	"libros-circulares/library"
)

func (a *app) exchangesMenu(ctx context.Context) error {
	exchanges := mustEntity("exchanges")
	return a.menu(ctx, "EXCHANGES", "Back", []menuItem{
		{"Propose exchange", a.createExchange},
		{"Read exchanges", a.readMenu(exchanges,
			menuItem{"Exchanges involving a user", a.exchangesForUser},
		)},
	})
}

func (a *app) createExchange(ctx context.Context) error {
	a.printf("\n--- NEW EXCHANGE ---\n")
	var x library.NewExchange
	var err error
	if x.ProposerID, err = a.prompt.askID("Proposing user ID: "); err != nil {
		return err
	}
	if x.ReceiverID, err = a.prompt.askID("Receiving user ID: "); err != nil {
		return err
	}
	if x.OfferedBookID, err = a.prompt.askID("Offered book ID: "); err != nil {
		return err
	}
	if x.RequestedBookID, err = a.prompt.askID("Requested book ID: "); err != nil {
		return err
	}
	if x.Message, err = a.prompt.optional("Message (optional): "); err != nil {
		return err
	}
	if x.Conditions, err = a.prompt.optional("Conditions (optional): "); err != nil {
		return err
	}
	id, err := a.mgr.DB().CreateExchange(ctx, x)
	if err != nil {
		return err
	}
	a.printf("Exchange proposed with ID %d.\n", id)
	return nil
}

func (a *app) exchangesForUser(ctx context.Context) error {
	id, err := a.prompt.askID("User ID: ")
	if err != nil {
		return err
	}
	rs, err := a.mgr.DB().ExchangesForUser(ctx, id)
	if err != nil {
		return err
	}
	return a.render.render(fmt.Sprintf("Exchanges of user %d", id), rs)
}

func (a *app) reviewsMenu(ctx context.Context) error {
	reviews := mustEntity("reviews")
	return a.menu(ctx, "REVIEWS", "Back", []menuItem{
		{"Write review", a.createReview},
		{"Read reviews", a.readMenu(reviews,
			menuItem{"Reviews of a book", a.searchBy(reviews, "id_libro", "Book ID")},
		)},
	})
}

func (a *app) createReview(ctx context.Context) error {
	a.printf("\n--- NEW REVIEW ---\n")
	var r library.NewReview
	var err error
	if r.UserID, err = a.prompt.askID("Reviewer user ID: "); err != nil {
		return err
	}
	if r.BookID, err = a.prompt.askID("Book ID: "); err != nil {
		return err
	}
	if r.Rating, err = a.prompt.askInt("Rating (1-5): "); err != nil {
		return err
	}
	if r.Content, err = a.prompt.require("Review: "); err != nil {
		return err
	}
	if r.ParentID, err = a.prompt.optionalID("Replying to review ID (optional): "); err != nil {
		return err
	}
	id, err := a.mgr.DB().CreateReview(ctx, r)
	if err != nil {
		return err
	}
	a.printf("Review created with ID %d.\n", id)
	return nil
}

func (a *app) meetingsMenu(ctx context.Context) error {
	meetings := mustEntity("meetings")
	return a.menu(ctx, "MEETINGS", "Back", []menuItem{
		{"List all meetings", a.listAll(meetings)},
		{"Meetings of a club", a.searchBy(meetings, "id_club", "Club ID")},
		{"Schedule meeting", a.createMeeting},
	})
}

func (a *app) createMeeting(ctx context.Context) error {
	a.printf("\n--- NEW MEETING ---\n")
	var m library.NewMeeting
	var err error
	if m.ClubID, err = a.prompt.askID("Club ID: "); err != nil {
		return err
	}
	when, err := requiredValue(a.prompt, "Date YYYY-MM-DD HH:MM: ", parseDateTime)
	if err != nil {
		return err
	}
	m.Date = when
	if m.Topic, err = a.prompt.require("Topic: "); err != nil {
		return err
	}
	if m.Description, err = a.prompt.optional("Description (optional): "); err != nil {
		return err
	}
	if m.Place, err = a.prompt.optional("Place (optional): "); err != nil {
		return err
	}
	id, err := a.mgr.DB().CreateMeeting(ctx, m)
	if err != nil {
		return err
	}
	a.printf("Meeting scheduled with ID %d.\n", id)
	return nil
}

func (a *app) membershipsMenu(ctx context.Context) error {
	memberships := mustEntity("memberships")
	return a.menu(ctx, "CLUB MEMBERSHIPS", "Back", []menuItem{
		{"List all memberships", a.listAll(memberships)},
		{"Members of a club", a.searchBy(memberships, "id_club", "Club ID")},
		{"Add user to club", a.createMembership},
	})
}

func (a *app) createMembership(ctx context.Context) error {
	var m library.NewMembership
	var err error
	if m.UserID, err = a.prompt.askID("User ID: "); err != nil {
		return err
	}
	if m.ClubID, err = a.prompt.askID("Club ID: "); err != nil {
		return err
	}
	if m.Status, err = a.prompt.ask("Status (blank for " + library.DefaultMemberStatus + "): "); err != nil {
		return err
	}
	if _, err := a.mgr.DB().CreateMembership(ctx, m); err != nil {
		return err
	}
	a.printf("User %d added to club %d.\n", m.UserID, m.ClubID)
	return nil
}

func (a *app) readingsMenu(ctx context.Context) error {
	readings := mustEntity("readings")
	return a.menu(ctx, "READING RECORDS", "Back", []menuItem{
		{"List all reading records", a.listAll(readings)},
		{"Reading records of a club", a.searchBy(readings, "id_club", "Club ID")},
		{"Start reading", a.createReading},
	})
}

func (a *app) createReading(ctx context.Context) error {
	var r library.NewReading
	var err error
	if r.UserID, err = a.prompt.askID("User ID: "); err != nil {
		return err
	}
	if r.ClubID, err = a.prompt.askID("Club ID: "); err != nil {
		return err
	}
	if r.BookID, err = a.prompt.askID("Book ID: "); err != nil {
		return err
	}
	start, err := a.prompt.optionalDate("Start date YYYY-MM-DD (blank for today): ")
	if err != nil {
		return err
	}
	r.StartDate = today()
	if start != nil {
		r.StartDate = *start
	}
	if r.EndDate, err = a.prompt.optionalDate("End date YYYY-MM-DD (blank while reading): "); err != nil {
		return err
	}
	if _, err := a.mgr.DB().CreateReading(ctx, r); err != nil {
		return err
	}
	a.printf("Reading record saved.\n")
	return nil
}

func (a *app) ordersMenu(ctx context.Context) error {
	orders := mustEntity("orders")
	return a.menu(ctx, "PURCHASE ORDERS", "Back", []menuItem{
		{"Place order", a.createOrder},
		{"Read orders", a.readMenu(orders,
			menuItem{"Orders of a buyer", a.searchBy(orders, "id_comprador", "Buyer ID")},
		)},
	})
}

func (a *app) createOrder(ctx context.Context) error {
	a.printf("\n--- NEW ORDER ---\n")
	var o library.NewOrder
	var err error
	if o.BuyerID, err = a.prompt.askID("Buyer user ID: "); err != nil {
		return err
	}
	if o.BookID, err = a.prompt.askID("Book ID: "); err != nil {
		return err
	}
	if o.TotalPrice, err = a.prompt.askFloat("Total price: "); err != nil {
		return err
	}
	if o.ShippingAddress, err = a.prompt.require("Shipping address: "); err != nil {
		return err
	}
	if o.PaymentMethod, err = a.prompt.require("Payment method: "); err != nil {
		return err
	}
	if o.Status, err = a.prompt.ask("Status (blank for " + library.DefaultOrderStatus + "): "); err != nil {
		return err
	}
	if o.PaidAt, err = a.prompt.optionalDateTime("Paid at YYYY-MM-DD HH:MM (blank for now): "); err != nil {
		return err
	}
	id, err := a.mgr.DB().CreateOrder(ctx, o)
	if err != nil {
		return err
	}
	a.printf("Order placed with ID %d.\n", id)
	return nil
}
