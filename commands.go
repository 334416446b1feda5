package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/db"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/spf13/cobra"
)

func migrateCmd(flags *globalFlags) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(flags)
			if err != nil {
				return err
			}

			if down {
				if err := db.MigrateDown(cfg.Database.URL); err != nil {
					return fmt.Errorf("db.MigrateDown: %w", err)
				}
				logger.Info("migrations rolled back")
				return nil
			}

			if err := db.Migrate(cfg.Database.URL); err != nil {
				return fmt.Errorf("db.Migrate: %w", err)
			}
			logger.Info("migrations applied")

			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "Roll back every migration")

	return cmd
}

func resetStockCmd(flags *globalFlags) *cobra.Command {
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "reset-stock",
		Short: "Move reserved stock of every product back to stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := loadApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if every <= 0 {
				n, err := a.stock.ResetReserved(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reset %d products\n", n)
				return nil
			}

			a.serveMetrics(ctx)

			ticker := time.NewTicker(every)
			defer ticker.Stop()

			for {
				if _, err := a.stock.ResetReserved(ctx); err != nil {
					a.logger.Error("reset reserved stock failed", "error", err)
				}

				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().DurationVar(&every, "every", 0, "Repeat the reset on this interval until interrupted")

	return cmd
}

func releaseStockCmd(flags *globalFlags) *cobra.Command {
	var specs []string

	cmd := &cobra.Command{
		Use:   "release-stock",
		Short: "Return reserved units of products to stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := parseLines(specs)
			if err != nil {
				return err
			}

			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.stock.Release(cmd.Context(), lines)
		},
	}

	cmd.Flags().StringSliceVar(&specs, "line", nil, "Product and quantity as <uuid>:<qty>, repeatable")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}

func parseLines(specs []string) ([]domain.CartLine, error) {
	lines := make([]domain.CartLine, 0, len(specs))

	for _, raw := range specs {
		id, qty, ok := strings.Cut(raw, ":")
		if !ok {
			return nil, fmt.Errorf("line %q: expected <uuid>:<qty>", raw)
		}

		productID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", raw, err)
		}

		quantity, err := strconv.Atoi(qty)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", raw, err)
		}

		lines = append(lines, domain.CartLine{ProductID: productID, Quantity: quantity})
	}

	return lines, nil
}

func cartCmd(flags *globalFlags) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and change the cart of a user",
	}
	cmd.PersistentFlags().StringVar(&userID, "user", "", "Owner of the cart")
	_ = cmd.MarkPersistentFlagRequired("user")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current cart snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			snapshot, err := a.carts.CurrentSnapshot(cmd.Context(), userID)
			if err != nil {
				return err
			}

			printSnapshot(cmd.OutOrStdout(), snapshot)
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <product-id> <quantity>",
		Short: "Add units of a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parseLines([]string{args[0] + ":" + args[1]})
			if err != nil {
				return err
			}

			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.carts.AddItem(cmd.Context(), userID, line[0].ProductID, line[0].Quantity)
		},
	}

	sub := &cobra.Command{
		Use:   "sub <product-id> <quantity>",
		Short: "Take units of a product out",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parseLines([]string{args[0] + ":" + args[1]})
			if err != nil {
				return err
			}

			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.carts.SubtractItem(cmd.Context(), userID, line[0].ProductID, line[0].Quantity)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}

			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.carts.RemoveItem(cmd.Context(), userID, productID)
		},
	}

	clearCart := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.carts.Clear(cmd.Context(), userID)
		},
	}

	cmd.AddCommand(show, add, sub, remove, clearCart)

	return cmd
}

func checkoutCmd(flags *globalFlags) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Run the checkout of a user",
	}
	cmd.PersistentFlags().StringVar(&userID, "user", "", "User checking out")

	begin := &cobra.Command{
		Use:   "begin",
		Short: "Sync the open draft with the live cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			draft, err := a.checkout.BeginCheckout(cmd.Context(), domain.User{ID: userID})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "draft %s (%s)\n", draft.ID, draft.Status)
			printSnapshot(cmd.OutOrStdout(), draft.Cart)
			return nil
		},
	}

	var data domain.OrderData
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Create a pending order from the open draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			order, err := a.checkout.CreateOrderPending(cmd.Context(), domain.User{ID: userID}, data)
			if err != nil {
				return err
			}

			printOrders(cmd.OutOrStdout(), []domain.Order{order})
			return nil
		},
	}

	f := submit.Flags()
	f.StringVar(&data.FirstName, "first-name", "", "Buyer first name")
	f.StringVar(&data.LastName, "last-name", "", "Buyer last name")
	f.StringVar(&data.Email, "email", "", "Buyer email")
	f.StringVar(&data.Cellphone, "cellphone", "", "Buyer cellphone")
	f.StringVar(&data.DNI, "dni", "", "Buyer document number")
	f.StringVar(&data.DetailOrder, "note", "", "Order note")
	f.StringVar(&data.PickupName, "pickup-name", "", "Who picks the order up")
	f.StringVar(&data.PickupDNI, "pickup-dni", "", "Document of who picks the order up")
	f.StringVar(&data.Province, "province", "", "Delivery province")
	f.StringVar(&data.City, "city", "", "Delivery city")
	f.StringVar(&data.Address, "address", "", "Delivery address")
	f.StringVar(&data.PostalCode, "postal-code", "", "Delivery postal code")
	f.StringVar(&data.Detail, "delivery-detail", "", "Delivery detail")
	f.Int64Var(&data.ShipmentMethodID, "shipment-method", domain.ShipmentMethodPickup, "Shipment method id")
	f.Int64Var(&data.PaymentMethodID, "payment-method", domain.PaymentMethodCash, "Payment method id")

	cmd.AddCommand(begin, submit)

	return cmd
}

func ordersCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Query placed orders",
	}

	var (
		userIDs  []string
		statuses []string
		since    time.Duration
	)

	list := &cobra.Command{
		Use:   "list",
		Short: "List orders matching all given filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.OrderFilter{OwnerIDs: userIDs}

			for _, s := range statuses {
				status, err := domain.ToOrderStatus(s)
				if err != nil {
					return fmt.Errorf("status %q: %w", s, err)
				}
				filter.Statuses = append(filter.Statuses, status)
			}

			if since > 0 {
				after := time.Now().Add(-since)
				filter.CreatedAt = &domain.TimeRange{After: &after}
			}

			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			orders, err := a.orders.AdminOrders(cmd.Context(), filter)
			if err != nil {
				return err
			}

			printOrders(cmd.OutOrStdout(), orders)
			return nil
		},
	}
	list.Flags().StringSliceVar(&userIDs, "user", nil, "Owner ids")
	list.Flags().StringSliceVar(&statuses, "status", nil, "Order statuses")
	list.Flags().DurationVar(&since, "since", 0, "Only orders created within this duration")

	get := &cobra.Command{
		Use:   "get <order-id>",
		Short: "Print one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}

			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			order, err := a.orders.GetOrder(cmd.Context(), orderID)
			if err != nil {
				return err
			}

			printOrders(cmd.OutOrStdout(), []domain.Order{order})
			return nil
		},
	}

	cmd.AddCommand(list, get)

	return cmd
}

func methodsCmd(flags *globalFlags) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "methods",
		Short: "List shipment and payment methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			list := a.methods.ForCheckout
			if all {
				list = a.methods.ForAdmin
			}

			shipments, payments, err := list(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tID\tNAME\tPRICE\tGRACE\tACTIVE")
			for _, m := range shipments {
				fmt.Fprintf(w, "shipment\t%d\t%s\t%s\t-\t%t\n", m.ID, m.Name, m.Price, m.IsActive)
			}
			for _, m := range payments {
				fmt.Fprintf(w, "payment\t%d\t%s\t-\t%dh\t%t\n", m.ID, m.Name, m.GraceHours, m.IsActive)
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive methods")

	return cmd
}

func printSnapshot(out io.Writer, s domain.CartSnapshot) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tPRICE\tDISCOUNT\tSTOCK")
	for _, item := range s.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d%%\t%d\n",
			item.ProductID, item.Name, item.Quantity, item.Price.StringFixed(2), item.Discount, item.Stock)
	}
	fmt.Fprintf(w, "total\t\t%d\t%s\t%s\t\n",
		s.TotalQuantity, s.TotalPrice.StringFixed(2), s.TotalPriceDiscount.StringFixed(2))
	_ = w.Flush()
}

func printOrders(out io.Writer, orders []domain.Order) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tOWNER\tSTATUS\tITEMS\tSHIPPING\tTOTAL\tEXPIRES\tCREATED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			o.ID, o.OwnerID, o.Status, len(o.Items), o.ShipmentCost, o.Total,
			o.ExpireAt.Format(time.RFC3339), o.CreatedAt.Format(time.RFC3339))
	}
	_ = w.Flush()
}
