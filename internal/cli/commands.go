// internal/cli/commands.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javajoker/stylehub/internal/storefront"
	"github.com/javajoker/stylehub/internal/utils"
)

func (a *app) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout(a.cfg))
}

func (a *app) productsCommand() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			products, err := a.catalog.ListProducts(ctx, category)
			if err != nil {
				return err
			}
			a.view.Products(products)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list this category")
	return cmd
}

func (a *app) productCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			product, err := a.catalog.GetProduct(ctx, args[0])
			if err != nil {
				return err
			}
			a.view.Product(product)
			return nil
		},
	}
}

func (a *app) cartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.view.Cart(a.cart.Items(), a.cart.Summary())
			return nil
		},
	}

	var size string
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			product, err := a.catalog.GetProduct(ctx, args[0])
			if err != nil {
				return err
			}
			// Another run may have changed the cart during the lookup.
			a.cart.Reload()
			a.view.Attach(a.cart)
			if err := a.cart.Add(product.ProductID, product.Name, product.Price, size); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added %s to cart\n", product.Name)
			return nil
		},
	}
	add.Flags().StringVarP(&size, "size", "s", "", "size, e.g. 32 or M")

	update := &cobra.Command{
		Use:   "update <line> <delta>",
		Short: "Change the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := lineIndex(args[0])
			if err != nil {
				return err
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return invalidArg("delta", args[1])
			}
			a.view.Attach(a.cart)
			return a.lineError(a.cart.UpdateQuantity(index, delta), args[0])
		},
	}

	remove := &cobra.Command{
		Use:   "remove <line>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := lineIndex(args[0])
			if err != nil {
				return err
			}
			a.view.Attach(a.cart)
			return a.lineError(a.cart.Remove(index), args[0])
		},
	}

	cmd.AddCommand(add, update, remove)
	return cmd
}

func (a *app) checkoutCommand() *cobra.Command {
	var form storefront.CheckoutForm
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checkout := storefront.NewCheckout(a.cart, a.storage, a.catalog, nil)
			order, resumed, err := checkout.Resume()
			if err != nil {
				return err
			}
			if resumed {
				fmt.Fprintf(a.out, "Retrying order %s\n", order.OrderID)
			} else {
				if err := checkout.Open(); err != nil {
					return err
				}
				if order, err = checkout.Submit(form); err != nil {
					return err
				}
			}

			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			if err := checkout.Confirm(ctx); err != nil {
				return err
			}

			a.view.Confirmation(order)
			return checkout.Clear()
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.FullName, "full-name", "", "customer full name")
	f.StringVar(&form.Email, "email", "", "customer email")
	f.StringVar(&form.Phone, "phone", "", "customer phone")
	f.StringVar(&form.Address, "address", "", "street address")
	f.StringVar(&form.City, "city", "", "city")
	f.StringVar(&form.State, "state", "", "state or province")
	f.StringVar(&form.PostalCode, "postal-code", "", "postal code")
	f.StringVar(&form.Country, "country", "", "country")
	f.StringVar(&form.PaymentMethod, "payment-method", "cod", "payment method")
	f.StringVar(&form.Notes, "notes", "", "order notes")
	return cmd
}

func (a *app) lastOrderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "last-order",
		Short: "Show the most recent confirmed order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := storefront.LoadLastOrder(a.storage)
			if errors.Is(err, utils.ErrNotFound) {
				fmt.Fprintln(a.out, "No orders yet.")
				return nil
			}
			if err != nil {
				return err
			}
			a.view.Confirmation(order)
			return nil
		},
	}
}

func (a *app) lineError(err error, line string) error {
	if errors.Is(err, storefront.ErrIndexOutOfRange) {
		return fmt.Errorf("cart has no line %s: %w", line, err)
	}
	return err
}

// lineIndex converts a 1-based line number to a cart index.
func lineIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, invalidArg("line", arg)
	}
	return n - 1, nil
}

func invalidArg(field, value string) error {
	return &utils.ValidationError{
		Message: "invalid argument",
		Fields:  []utils.FieldError{{Field: field, Tag: "numeric", Message: fmt.Sprintf("%q is not a valid %s", value, field)}},
	}
}
