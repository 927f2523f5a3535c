package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/martijn/shopadmin/internal/api/util"
	"github.com/martijn/shopadmin/internal/core/domain"
	"github.com/martijn/shopadmin/internal/core/service"
	"github.com/spf13/cobra"
)

// newResourceCmd builds the list/get/create/update/delete commands of one
// resource. pick selects the resource's service once services exist.
func newResourceCmd[T any](name, short string, pick func(*service.ResourceServices) *service.ResourceService[T]) *cobra.Command {
	resourceCmd := &cobra.Command{
		Use:   name,
		Short: short,
	}

	open := func(cmd *cobra.Command) (*Services, *service.ResourceService[T], error) {
		services, err := initServices(cmd.Context(), terminalNavigator{out: cmd.ErrOrStderr()})
		if err != nil {
			return nil, nil, err
		}
		return services, pick(services.Resources), nil
	}

	var (
		page    int
		perPage int
		order   string
		query   string
		next    bool
		prev    bool
		reset   bool
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + name,
		Long: `List ` + name + ` page by page. The position, filters and order are
remembered per profile, so --next and --prev continue from the last listing.

Filters use field|value, field|op|value or field|isnull, comma separated.
Operators: eq, ne, gt, gte, lt, lte, like, in, nin (in/nin values separated by ;).
Order uses field|asc or field|desc, comma separated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, svc, err := open(cmd)
			if err != nil {
				return err
			}
			defer services.Close()
			ctx := cmd.Context()

			if reset {
				// a cleared filter also resets the page position
				state, err := services.Pages.Load(ctx, name)
				if err != nil {
					return err
				}
				state.ClearFilters()
				state.SetOrder(nil)
				if err := services.Pages.Save(ctx, name, state); err != nil {
					return fmt.Errorf("failed to save list state: %w", err)
				}
			}

			state, err := services.Pages.Load(ctx, name)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("query") || flags.Changed("order") {
				parsed, err := util.ParseListFilter(query, order, domain.QueryFields(name), domain.OrderFields(name))
				if err != nil {
					return err
				}
				if flags.Changed("query") {
					state.SetFilters(parsed.Filters)
				}
				if flags.Changed("order") {
					state.SetOrder(parsed.Order)
				}
			}
			if flags.Changed("per-page") {
				state.SetPerPage(perPage)
			}
			switch {
			case flags.Changed("page"):
				state.Goto(page - 1)
			case next:
				if !state.Next() {
					fmt.Fprintln(cmd.ErrOrStderr(), "already on the last page")
				}
			case prev:
				if !state.Prev() {
					fmt.Fprintln(cmd.ErrOrStderr(), "already on the first page")
				}
			}

			result, err := svc.List(ctx, state.Filter)
			if err != nil {
				return err
			}
			if state.Observe(result.Total, result.TotalPages) {
				// the result set shrank below the remembered page
				if result, err = svc.List(ctx, state.Filter); err != nil {
					return err
				}
				state.Observe(result.Total, result.TotalPages)
			}

			if err := services.Pages.Save(ctx, name, state); err != nil {
				return fmt.Errorf("failed to save list state: %w", err)
			}

			if output == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			if err := writeRecords(cmd.OutOrStdout(), name, result.Items); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d %s)\n",
				result.Page+1, max(result.TotalPages, 1), result.Total, name)
			if q := util.FormatQueryString(state.Filter.Filters); q != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Filter: %s\n", q)
			}
			if o := util.FormatOrderString(state.Filter.Order); o != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Order: %s\n", o)
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	listCmd.Flags().IntVar(&perPage, "per-page", 0, "items per page (1-100)")
	listCmd.Flags().StringVar(&order, "order", "", "order clauses, e.g. name|asc")
	listCmd.Flags().StringVar(&query, "query", "", "filter conditions, e.g. price|gte|10")
	listCmd.Flags().BoolVar(&next, "next", false, "show the next page")
	listCmd.Flags().BoolVar(&prev, "prev", false, "show the previous page")
	listCmd.Flags().BoolVar(&reset, "reset", false, "clear the remembered filters and order")
	listCmd.MarkFlagsMutuallyExclusive("page", "next", "prev")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one of the " + name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			services, svc, err := open(cmd)
			if err != nil {
				return err
			}
			defer services.Close()

			entity, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeEntity(cmd, name, entity)
		},
	}

	var data, file string
	addPayloadFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&data, "data", "", "JSON payload")
		c.Flags().StringVar(&file, "file", "", "file holding the JSON payload (- for stdin)")
		c.MarkFlagsMutuallyExclusive("data", "file")
		c.MarkFlagsOneRequired("data", "file")
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record in " + name,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entity T
			if err := readPayload(cmd, data, file, &entity); err != nil {
				return err
			}
			services, svc, err := open(cmd)
			if err != nil {
				return err
			}
			defer services.Close()

			created, err := svc.Create(cmd.Context(), &entity)
			if err != nil {
				return err
			}
			return writeEntity(cmd, name, created)
		},
	}
	addPayloadFlags(createCmd)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a record in " + name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var entity T
			if err := readPayload(cmd, data, file, &entity); err != nil {
				return err
			}
			services, svc, err := open(cmd)
			if err != nil {
				return err
			}
			defer services.Close()

			updated, err := svc.Update(cmd.Context(), id, &entity)
			if err != nil {
				return err
			}
			return writeEntity(cmd, name, updated)
		},
	}
	addPayloadFlags(updateCmd)

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record from " + name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			// Confirm deletion
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Are you sure you want to delete %s %d? (yes/no): ", name, id)
				confirm, _ := readLine(bufio.NewReader(cmd.InOrStdin()))
				if strings.TrimSpace(confirm) != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			services, svc, err := open(cmd)
			if err != nil {
				return err
			}
			defer services.Close()

			if err := svc.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", name, id)
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	resourceCmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd)
	return resourceCmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", arg)
	}
	return id, nil
}

func readPayload(cmd *cobra.Command, data, file string, out any) error {
	raw := []byte(data)
	switch {
	case file == "-":
		dec := json.NewDecoder(cmd.InOrStdin())
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("invalid JSON payload: %w", err)
		}
		return nil
	case file != "":
		var err error
		if raw, err = os.ReadFile(file); err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid JSON payload: %w", err)
	}
	return nil
}

func writeEntity[T any](cmd *cobra.Command, resource string, entity *T) error {
	if output == OutputJSON {
		return writeJSON(cmd.OutOrStdout(), entity)
	}
	return writeRecords(cmd.OutOrStdout(), resource, []T{*entity})
}

func init() {
	rootCmd.AddCommand(
		newResourceCmd(domain.ResourceProducts, "Manage products",
			func(r *service.ResourceServices) *service.ResourceService[domain.Product] { return r.Products }),
		newResourceCmd(domain.ResourceUsers, "Manage users",
			func(r *service.ResourceServices) *service.ResourceService[domain.User] { return r.Users }),
		newResourceCmd(domain.ResourceRoles, "Manage roles",
			func(r *service.ResourceServices) *service.ResourceService[domain.Role] { return r.Roles }),
		newResourceCmd(domain.ResourcePermissions, "Manage permissions",
			func(r *service.ResourceServices) *service.ResourceService[domain.Permission] { return r.Permissions }),
		newResourceCmd(domain.ResourceBrands, "Manage brands",
			func(r *service.ResourceServices) *service.ResourceService[domain.Brand] { return r.Brands }),
		newResourceCmd(domain.ResourceCategories, "Manage categories",
			func(r *service.ResourceServices) *service.ResourceService[domain.Category] { return r.Categories }),
		newResourceCmd(domain.ResourceCoupons, "Manage coupons",
			func(r *service.ResourceServices) *service.ResourceService[domain.Coupon] { return r.Coupons }),
	)
}
