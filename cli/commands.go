package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"libros-circulares/library"
)

func newListCmd(a *app) *cobra.Command {
	var field, value string
	cmd := &cobra.Command{
		Use:       "list <entity>",
		Short:     "Print the rows of one table, optionally filtered on one column",
		Long:      "Entities: " + strings.Join(entityNames(), ", "),
		Example:   "  librosc list users --field ciudad --value Bogotá",
		Args:      cobra.ExactArgs(1),
		ValidArgs: entityNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := entityByName(args[0])
			if err != nil {
				return err
			}
			var f *library.Filter
			title := e.title
			if field != "" && value != "" {
				f = library.Where(field, coerce(value))
				title = fmt.Sprintf("%s with %s '%s'", e.title, field, value)
			}
			rs, err := e.read(a.mgr.DB(), cmd.Context(), f)
			if err != nil {
				return err
			}
			return a.render.render(title, rs)
		},
	}
	cmd.Flags().StringVar(&field, "field", "", "column to match")
	cmd.Flags().StringVar(&value, "value", "", "value the column must equal; empty lists every row")
	return cmd
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create any missing tables",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := a.mgr.Migrate(); err != nil {
				return err
			}
			a.printf("Schema is up to date.\n")
			return nil
		},
	}
}

func newResetPasswordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <user-id>",
		Short: "Set a new password for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("user id %q is not a number", args[0])
			}
			password, err := a.prompt.password("New password: ")
			if err != nil {
				return err
			}
			again, err := a.prompt.password("Repeat password: ")
			if err != nil {
				return err
			}
			if password != again {
				return fmt.Errorf("passwords do not match")
			}
			if err := a.mgr.ResetPassword(cmd.Context(), id, password); err != nil {
				return err
			}
			a.printf("Password updated for user %d.\n", id)
			return nil
		},
	}
}
