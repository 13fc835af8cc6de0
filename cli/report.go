package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"libros-circulares/library"
)

func newReportCmd(a *app) *cobra.Command {
	var in library.ReportInput
	cmd := &cobra.Command{
		Use:   "report [number]",
		Short: "List the reports, or run one by number",
		Example: `  librosc report
  librosc report 1 --club 3
  librosc report 4 --city Medellín --club-name lectores`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				a.listReports()
				return nil
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("report number %q is not a number", args[0])
			}
			rep, err := library.ReportByNumber(n)
			if err != nil {
				return err
			}
			if lo.Contains(rep.Needs, library.InputClubID) && !cmd.Flags().Changed(library.InputClubID) {
				return fmt.Errorf("report %d needs --%s", n, library.InputClubID)
			}
			return a.runReport(cmd.Context(), rep, in)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&in.ClubID, library.InputClubID, 0, "club id")
	f.StringVar(&in.Term, library.InputTerm, "", "part of a title or author")
	f.StringVar(&in.City, library.InputCity, "", "user city")
	f.StringVar(&in.ClubName, library.InputClubName, "", "part of a club name, empty for every club")
	return cmd
}

func (a *app) listReports() {
	for _, rep := range library.Catalogue() {
		flags := lo.Map(rep.Needs, func(n string, _ int) string { return "--" + n })
		if len(flags) > 0 {
			a.printf("%2d. %s (%s)\n", rep.Number, rep.Title, strings.Join(flags, ", "))
		} else {
			a.printf("%2d. %s\n", rep.Number, rep.Title)
		}
	}
}

func (a *app) runReport(ctx context.Context, rep library.Report, in library.ReportInput) error {
	rs, err := rep.Run(ctx, a.mgr.Reports(), in)
	if err != nil {
		return err
	}
	return a.render.render(reportTitle(rep, in), rs)
}

// reportTitle names the inputs a report ran with.
func reportTitle(rep library.Report, in library.ReportInput) string {
	switch {
	case lo.Contains(rep.Needs, library.InputClubID):
		return fmt.Sprintf("%s %d", rep.Title, in.ClubID)
	case lo.Contains(rep.Needs, library.InputTerm):
		return fmt.Sprintf("%s matching '%s'", rep.Title, in.Term)
	case lo.Contains(rep.Needs, library.InputCity):
		if in.ClubName != "" {
			return fmt.Sprintf("%s: %s, clubs like '%s'", rep.Title, in.City, in.ClubName)
		}
		return fmt.Sprintf("%s: %s", rep.Title, in.City)
	default:
		return rep.Title
	}
}

func (a *app) reportsMenu(ctx context.Context) error {
	items := lo.Map(library.Catalogue(), func(rep library.Report, _ int) menuItem {
		return menuItem{rep.Title, func(ctx context.Context) error {
			in, err := a.askReportInput(rep)
			if err != nil {
				return err
			}
			return a.runReport(ctx, rep, in)
		}}
	})
	return a.menu(ctx, "REPORTS", "Back to main menu", items)
}

func (a *app) askReportInput(rep library.Report) (library.ReportInput, error) {
	var in library.ReportInput
	var err error
	for _, need := range rep.Needs {
		switch need {
		case library.InputClubID:
			in.ClubID, err = a.prompt.askID("Club ID: ")
		case library.InputTerm:
			in.Term, err = a.prompt.ask("Part of the title or author: ")
		case library.InputCity:
			in.City, err = a.prompt.ask("City: ")
		case library.InputClubName:
			in.ClubName, err = a.prompt.ask("Part of the club name (blank for all): ")
		}
		if err != nil {
			return in, err
		}
	}
	return in, nil
}
