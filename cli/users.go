package cli

import (
	"context"

	"libros-circulares/library"
)

func (a *app) usersMenu(ctx context.Context) error {
	users := mustEntity("users")
	return a.menu(ctx, "USERS", "Back", []menuItem{
		{"Create user", a.createUser},
		{"Read users", a.readMenu(users,
			menuItem{"Find by email", a.findUserByEmail},
			menuItem{"Find by ID", a.searchBy(users, "id_usuario", "User ID")},
		)},
		{"Update user", a.updateUser},
		{"Delete user", a.deleteByID("User", a.mgr.DB().DeleteUser)},
		{"Check a user's password", a.checkPassword},
	})
}

func (a *app) createUser(ctx context.Context) error {
	a.printf("\n--- NEW USER ---\n")
	var u library.NewUser
	var err error
	if u.Name, err = a.prompt.require("Full name: "); err != nil {
		return err
	}
	if u.Email, err = a.prompt.require("Email (must be unique): "); err != nil {
		return err
	}
	password, err := a.prompt.password("Password: ")
	if err != nil {
		return err
	}
	if u.City, err = a.prompt.optional("City (optional): "); err != nil {
		return err
	}
	if u.Phone, err = a.prompt.optional("Phone (optional): "); err != nil {
		return err
	}
	id, err := a.mgr.RegisterUser(ctx, u, password)
	if err != nil {
		return err
	}
	a.printf("User created with ID %d.\n", id)
	return nil
}

func (a *app) findUserByEmail(ctx context.Context) error {
	email, err := a.prompt.require("Email: ")
	if err != nil {
		return err
	}
	rs, err := a.mgr.DB().ReadUsers(ctx, library.Where("email", email))
	if err != nil {
		return err
	}
	return a.render.render("User with email '"+email+"'", rs)
}

func (a *app) updateUser(ctx context.Context) error {
	id, err := a.prompt.askID("User ID to update: ")
	if err != nil {
		return err
	}
	a.printf("Leave a field blank to keep it.\n")
	var c library.UserChanges
	if c.Name, err = a.prompt.optional("New name: "); err != nil {
		return err
	}
	if c.Email, err = a.prompt.optional("New email: "); err != nil {
		return err
	}
	if c.City, err = a.prompt.optional("New city: "); err != nil {
		return err
	}
	if c.Phone, err = a.prompt.optional("New phone: "); err != nil {
		return err
	}
	if c.Role, err = a.prompt.optional("New role: "); err != nil {
		return err
	}
	if c == (library.UserChanges{}) {
		a.printf("No changes entered. Nothing to do.\n")
		return nil
	}
	n, err := a.mgr.DB().UpdateUser(ctx, id, c)
	if err != nil {
		return err
	}
	a.reportWrite("User", id, n, "updated")
	return nil
}

func (a *app) checkPassword(ctx context.Context) error {
	id, err := a.prompt.askID("User ID: ")
	if err != nil {
		return err
	}
	password, err := a.prompt.password("Password: ")
	if err != nil {
		return err
	}
	ok, err := a.mgr.CheckPassword(ctx, id, password)
	if err != nil {
		return err
	}
	if ok {
		a.printf("Password matches.\n")
	} else {
		a.printf("Password does not match.\n")
	}
	return nil
}
