package cli

import (
	"context"
	"time"

	"libros-circulares/library"
)

func (a *app) clubsMenu(ctx context.Context) error {
	clubs := mustEntity("clubs")
	return a.menu(ctx, "READING CLUBS", "Back", []menuItem{
		{"Create club", a.createClub},
		{"Read clubs", a.readMenu(clubs,
			menuItem{"Find by ID", a.searchBy(clubs, "id_club", "Club ID")},
			menuItem{"Find by book", a.searchBy(clubs, "id_libro", "Book ID")},
		)},
		{"Update club", a.updateClub},
		{"Delete club", a.deleteByID("Club", a.mgr.DB().DeleteClub)},
	})
}

func (a *app) createClub(ctx context.Context) error {
	a.printf("\n--- NEW READING CLUB ---\n")
	var c library.NewClub
	var err error
	if c.Name, err = a.prompt.require("Club name: "); err != nil {
		return err
	}
	if c.Description, err = a.prompt.optional("Description (optional): "); err != nil {
		return err
	}
	start, err := a.prompt.optionalDate("Start date YYYY-MM-DD (blank for today): ")
	if err != nil {
		return err
	}
	c.StartDate = today()
	if start != nil {
		c.StartDate = *start
	}
	if c.EndDate, err = a.prompt.optionalDate("End date YYYY-MM-DD (optional): "); err != nil {
		return err
	}
	if c.BookID, err = a.prompt.askID("Book ID: "); err != nil {
		return err
	}
	if c.AdminID, err = a.prompt.askID("Administrator user ID: "); err != nil {
		return err
	}
	if c.MaxMembers, err = a.prompt.askInt("Maximum members: "); err != nil {
		return err
	}
	id, err := a.mgr.DB().CreateClub(ctx, c)
	if err != nil {
		return err
	}
	a.printf("Club created with ID %d.\n", id)
	return nil
}

func (a *app) updateClub(ctx context.Context) error {
	id, err := a.prompt.askID("Club ID to update: ")
	if err != nil {
		return err
	}
	a.printf("Leave a field blank to keep it.\n")
	var c library.ClubChanges
	if c.Name, err = a.prompt.optional("New name: "); err != nil {
		return err
	}
	if c.Description, err = a.prompt.optional("New description: "); err != nil {
		return err
	}
	if c.EndDate, err = a.prompt.optionalDate("New end date YYYY-MM-DD: "); err != nil {
		return err
	}
	if c.Status, err = a.prompt.optional("New status: "); err != nil {
		return err
	}
	if c.BookID, err = a.prompt.optionalID("New book ID: "); err != nil {
		return err
	}
	if c.MaxMembers, err = a.prompt.optionalInt("New maximum members: "); err != nil {
		return err
	}
	if c == (library.ClubChanges{}) {
		a.printf("No changes entered. Nothing to do.\n")
		return nil
	}
	n, err := a.mgr.DB().UpdateClub(ctx, id, c)
	if err != nil {
		return err
	}
	a.reportWrite("Club", id, n, "updated")
	return nil
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
