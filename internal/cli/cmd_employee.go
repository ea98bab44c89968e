package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/emzarlukava/northwind-employees/store"
)

const dateLayout = "2006-01-02"

func newInitCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the Employees table in a fresh database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("init does not accept positional arguments")
			}
			return withStore(cmd.Context(), deps, func(ctx context.Context, env runtimeEnv) error {
				if err := os.MkdirAll(filepath.Dir(env.cfg.Database.Path), 0o700); err != nil {
					return fmt.Errorf("create database directory: %w", err)
				}
				db, err := store.SQLite{}.Open(env.cfg.Database.Path)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()

				if _, err := db.ExecContext(ctx, store.Schema); err != nil {
					return fmt.Errorf("create schema: %w", err)
				}
				env.logger.Info("database initialized", "path", env.cfg.Database.Path)
				_, err = fmt.Fprintf(deps.out, "initialized %s\n", env.cfg.Database.Path)
				return err
			})
		},
	}
}

func newListCommand(deps commandDeps) *cobra.Command {
	var idsOnly bool

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("ls does not accept positional arguments")
			}
			return withStore(cmd.Context(), deps, func(ctx context.Context, env runtimeEnv) error {
				employees, err := env.store.List(ctx)
				if err != nil {
					return err
				}
				env.logger.Debug("listed employees", "count", len(employees))

				if deps.globals.JSON {
					return printJSON(deps.out, employees)
				}
				for _, employee := range employees {
					if idsOnly {
						if _, err := fmt.Fprintln(deps.out, employee.ID); err != nil {
							return err
						}
						continue
					}
					if _, err := fmt.Fprintf(
						deps.out,
						"%d\t%s, %s\t%s\t%s\n",
						employee.ID,
						employee.LastName,
						employee.FirstName,
						employee.Title,
						employee.City,
					); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&idsOnly, "ids-only", false, "Print only employee ids")
	return cmd
}

func newShowCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), deps, func(ctx context.Context, env runtimeEnv) error {
				employee, err := env.store.Get(ctx, id)
				if err != nil {
					return err
				}
				env.logger.Debug("fetched employee", "employee_id", employee.ID)

				if deps.globals.JSON {
					return printJSON(deps.out, employee)
				}
				return printEmployee(deps, employee)
			})
		},
	}
}

func newAddCommand(deps commandDeps) *cobra.Command {
	var flags employeeFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("add does not accept positional arguments")
			}
			employee := store.Employee{}
			if err := flags.apply(cmd, &employee); err != nil {
				return err
			}
			if err := flags.requireComplete(); err != nil {
				return err
			}

			return withStore(cmd.Context(), deps, func(ctx context.Context, env runtimeEnv) error {
				id, err := env.store.Add(ctx, &employee)
				if err != nil {
					return err
				}
				env.logger.Info("employee added",
					"employee_id", id,
					"last_name", employee.LastName,
					"first_name", employee.FirstName,
					"home_phone", employee.HomePhone,
				)

				if deps.globals.JSON {
					return printJSON(deps.out, map[string]any{"id": id})
				}
				_, err = fmt.Fprintf(deps.out, "added employee %d\n", id)
				return err
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newEditCommand(deps commandDeps) *cobra.Command {
	var flags employeeFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), deps, func(ctx context.Context, env runtimeEnv) error {
				employee, err := env.store.Get(ctx, id)
				if err != nil {
					return err
				}
				if err := flags.apply(cmd, employee); err != nil {
					return err
				}
				if err := env.store.Update(ctx, employee); err != nil {
					return err
				}
				env.logger.Info("employee updated", "employee_id", id)

				if deps.globals.JSON {
					return printJSON(deps.out, employee)
				}
				_, err = fmt.Fprintf(deps.out, "updated employee %d\n", id)
				return err
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newRemoveCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), deps, func(ctx context.Context, env runtimeEnv) error {
				if err := env.store.Remove(ctx, id); err != nil {
					return err
				}
				env.logger.Info("employee removed", "employee_id", id)

				if deps.globals.JSON {
					return printJSON(deps.out, map[string]any{"removed": id})
				}
				_, err := fmt.Fprintf(deps.out, "removed employee %d\n", id)
				return err
			})
		},
	}
}

// employeeFlags carries one flag per Employees column. apply copies only
// flags that were set on the command line, so edit leaves untouched
// columns alone while add starts from a zero Employee.
type employeeFlags struct {
	lastName        string
	firstName       string
	title           string
	titleOfCourtesy string
	birthDate       string
	hireDate        string
	address         string
	city            string
	region          string
	postalCode      string
	country         string
	homePhone       string
	extension       string
	notes           string
	reportsTo       int64
	photoPath       string
}

func (f *employeeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.lastName, "last", "", "Last name")
	cmd.Flags().StringVar(&f.firstName, "first", "", "First name")
	cmd.Flags().StringVar(&f.title, "title", "", "Job title")
	cmd.Flags().StringVar(&f.titleOfCourtesy, "courtesy", "", "Title of courtesy (Ms., Mr., Dr.)")
	cmd.Flags().StringVar(&f.birthDate, "birth", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.hireDate, "hired", "", "Hire date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.address, "address", "", "Street address")
	cmd.Flags().StringVar(&f.city, "city", "", "City")
	cmd.Flags().StringVar(&f.region, "region", "", "Region; empty clears the column")
	cmd.Flags().StringVar(&f.postalCode, "postal", "", "Postal code")
	cmd.Flags().StringVar(&f.country, "country", "", "Country")
	cmd.Flags().StringVar(&f.homePhone, "phone", "", "Home phone")
	cmd.Flags().StringVar(&f.extension, "ext", "", "Phone extension")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Notes")
	cmd.Flags().Int64Var(&f.reportsTo, "reports-to", 0, "Manager employee id; 0 clears the column")
	cmd.Flags().StringVar(&f.photoPath, "photo", "", "Photo path")
}

func (f *employeeFlags) apply(cmd *cobra.Command, employee *store.Employee) error {
	set := cmd.Flags().Changed

	if set("last") {
		employee.LastName = f.lastName
	}
	if set("first") {
		employee.FirstName = f.firstName
	}
	if set("title") {
		employee.Title = f.title
	}
	if set("courtesy") {
		employee.TitleOfCourtesy = f.titleOfCourtesy
	}
	if set("birth") {
		parsed, err := parseDate("birth", f.birthDate)
		if err != nil {
			return err
		}
		employee.BirthDate = parsed
	}
	if set("hired") {
		parsed, err := parseDate("hired", f.hireDate)
		if err != nil {
			return err
		}
		employee.HireDate = parsed
	}
	if set("address") {
		employee.Address = f.address
	}
	if set("city") {
		employee.City = f.city
	}
	if set("region") {
		if f.region == "" {
			employee.Region = nil
		} else {
			region := f.region
			employee.Region = &region
		}
	}
	if set("postal") {
		employee.PostalCode = f.postalCode
	}
	if set("country") {
		employee.Country = f.country
	}
	if set("phone") {
		employee.HomePhone = f.homePhone
	}
	if set("ext") {
		employee.Extension = f.extension
	}
	if set("notes") {
		employee.Notes = f.notes
	}
	if set("reports-to") {
		if f.reportsTo == 0 {
			employee.ReportsTo = nil
		} else {
			reportsTo := f.reportsTo
			employee.ReportsTo = &reportsTo
		}
	}
	if set("photo") {
		employee.PhotoPath = f.photoPath
	}
	return nil
}

func (f *employeeFlags) requireComplete() error {
	required := []struct {
		flag  string
		value string
	}{
		{"last", f.lastName},
		{"first", f.firstName},
		{"title", f.title},
		{"courtesy", f.titleOfCourtesy},
		{"birth", f.birthDate},
		{"hired", f.hireDate},
		{"address", f.address},
		{"city", f.city},
		{"postal", f.postalCode},
		{"country", f.country},
		{"phone", f.homePhone},
		{"ext", f.extension},
		{"notes", f.notes},
		{"photo", f.photoPath},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return usageErrorf("add requires --%s", field.flag)
		}
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageErrorf("employee id must be a positive integer, got %q", raw)
	}
	return id, nil
}

func parseDate(flag, raw string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, usageErrorf("--%s must be a date in YYYY-MM-DD form, got %q", flag, raw)
	}
	return parsed, nil
}

func printEmployee(deps commandDeps, employee *store.Employee) error {
	lines := []string{
		fmt.Sprintf("id:        %d", employee.ID),
		fmt.Sprintf("name:      %s %s %s", employee.TitleOfCourtesy, employee.FirstName, employee.LastName),
		fmt.Sprintf("title:     %s", employee.Title),
		fmt.Sprintf("born:      %s", employee.BirthDate.Format(dateLayout)),
		fmt.Sprintf("hired:     %s", employee.HireDate.Format(dateLayout)),
		fmt.Sprintf("address:   %s, %s %s, %s", employee.Address, employee.City, employee.PostalCode, employee.Country),
		fmt.Sprintf("phone:     %s x%s", employee.HomePhone, employee.Extension),
		fmt.Sprintf("photo:     %s", employee.PhotoPath),
	}
	if employee.Region != nil {
		lines = append(lines, fmt.Sprintf("region:    %s", *employee.Region))
	}
	if employee.ReportsTo != nil {
		lines = append(lines, fmt.Sprintf("reports:   %d", *employee.ReportsTo))
	}
	if employee.Notes != "" {
		lines = append(lines, fmt.Sprintf("notes:     %s", employee.Notes))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(deps.out, line); err != nil {
			return err
		}
	}
	return nil
}
