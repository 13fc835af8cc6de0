package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"libros-circulares/library"
)

type action func(ctx context.Context) error

type menuItem struct {
	label string
	run   action
}

// entity ties a command-line name to a table and its read function.
type entity struct {
	name  string
	title string
	table string
	read  func(*library.Database, context.Context, *library.Filter) (*library.ResultSet, error)
}

var entities = []entity{
	{"users", "Users", "usuario", (*library.Database).ReadUsers},
	{"books", "Books", "libro", (*library.Database).ReadBooks},
	{"clubs", "Reading clubs", "club_lectura", (*library.Database).ReadClubs},
	{"memberships", "Club memberships", "usuario_club", (*library.Database).ReadMemberships},
	{"reviews", "Reviews", "resena", (*library.Database).ReadReviews},
	{"orders", "Purchase orders", "orden_compra", (*library.Database).ReadOrders},
	{"exchanges", "Exchanges", "intercambio", (*library.Database).ReadExchanges},
	{"readings", "Reading records", "leer_libros", (*library.Database).ReadReadings},
	{"meetings", "Meetings", "reunion", (*library.Database).ReadMeetings},
}

func entityNames() []string {
	return lo.Map(entities, func(e entity, _ int) string { return e.name })
}

func entityByName(name string) (entity, error) {
	e, ok := lo.Find(entities, func(e entity) bool { return e.name == strings.ToLower(name) })
	if !ok {
		return entity{}, fmt.Errorf("unknown entity %q (want one of: %s)", name, strings.Join(entityNames(), ", "))
	}
	return e, nil
}

func mustEntity(name string) entity {
	e, err := entityByName(name)
	if err != nil {
		panic(err)
	}
	return e
}

// menu shows items numbered from 1, with leave as the last entry, until the
// user picks leave or input ends. Action errors are printed and the menu
// carries on.
func (a *app) menu(ctx context.Context, title, leave string, items []menuItem) error {
	last := len(items) + 1
	for {
		a.printf("\n=== %s ===\n", title)
		for i, it := range items {
			a.printf("%d. %s\n", i+1, it.label)
		}
		a.printf("%d. %s\n", last, leave)

		choice, err := a.prompt.ask(fmt.Sprintf("Option (1-%d): ", last))
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(choice)
		switch {
		case err != nil || n < 1 || n > last:
			a.printf("Invalid option. Try again.\n")
		case n == last:
			return nil
		default:
			if err := items[n-1].run(ctx); err != nil {
				if errors.Is(err, errEndOfInput) || ctx.Err() != nil {
					return err
				}
				a.fail(err)
			}
		}
	}
}

func (a *app) mainMenu(ctx context.Context) error {
	err := a.menu(ctx, "MAIN MENU - LIBROS CIRCULARES", "Exit", []menuItem{
		{"Users", a.usersMenu},
		{"Books", a.booksMenu},
		{"Reading clubs", a.clubsMenu},
		{"Exchanges", a.exchangesMenu},
		{"Reviews", a.reviewsMenu},
		{"Meetings", a.meetingsMenu},
		{"Club memberships", a.membershipsMenu},
		{"Reading records", a.readingsMenu},
		{"Purchase orders", a.ordersMenu},
		{"Reports", a.reportsMenu},
	})
	if err == nil {
		a.printf("Thanks for using Libros Circulares. Goodbye!\n")
	}
	return err
}

// listAll prints every row of e.
func (a *app) listAll(e entity) action {
	return func(ctx context.Context) error {
		rs, err := e.read(a.mgr.DB(), ctx, nil)
		if err != nil {
			return err
		}
		return a.render.render(e.title, rs)
	}
}

// searchAny asks for one of e's columns and a value to match. A blank value
// lists every row.
func (a *app) searchAny(e entity) action {
	return func(ctx context.Context) error {
		a.printf("Fields: %s\n", strings.Join(library.Columns(e.table), ", "))
		field, err := a.prompt.require("Field: ")
		if err != nil {
			return err
		}
		value, err := a.prompt.ask("Value: ")
		if err != nil {
			return err
		}
		if value == "" {
			return a.listAll(e)(ctx)
		}
		rs, err := e.read(a.mgr.DB(), ctx, library.Where(field, coerce(value)))
		if err != nil {
			return err
		}
		return a.render.render(fmt.Sprintf("%s with %s '%s'", e.title, field, value), rs)
	}
}

// searchBy matches one fixed column against an id typed by the user.
func (a *app) searchBy(e entity, column, label string) action {
	return func(ctx context.Context) error {
		id, err := a.prompt.askID(label + ": ")
		if err != nil {
			return err
		}
		rs, err := e.read(a.mgr.DB(), ctx, library.Where(column, id))
		if err != nil {
			return err
		}
		return a.render.render(fmt.Sprintf("%s for %s %d", e.title, label, id), rs)
	}
}

// readMenu offers list-all, one or more id lookups and a free search.
func (a *app) readMenu(e entity, lookups ...menuItem) action {
	return func(ctx context.Context) error {
		items := append([]menuItem{{"List all", a.listAll(e)}}, lookups...)
		items = append(items, menuItem{"Search by any field", a.searchAny(e)})
		return a.menu(ctx, "READ "+strings.ToUpper(e.title), "Back", items)
	}
}

// deleteByID confirms and then removes one row.
func (a *app) deleteByID(what string, del func(context.Context, int64) (int64, error)) action {
	return func(ctx context.Context) error {
		id, err := a.prompt.askID(what + " ID to delete: ")
		if err != nil {
			return err
		}
		ok, err := a.prompt.confirm(fmt.Sprintf("Delete %s %d? (y/N): ", strings.ToLower(what), id))
		if err != nil {
			return err
		}
		if !ok {
			a.printf("Cancelled.\n")
			return nil
		}
		n, err := del(ctx, id)
		if err != nil {
			return err
		}
		a.reportWrite(what, id, n, "deleted")
		return nil
	}
}
