package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/govalues/decimal"
	"github.com/on-the-ground/tableize_go/catalog"
	"github.com/on-the-ground/tableize_go/validate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a user record in JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			user, err := validate.ParseUser(data)
			var verr *validate.ValidationError
			if errors.As(err, &verr) {
				for _, issue := range verr.Issues {
					printf(cmd, "  %s: %s\n", issue.Field, issue.Description)
				}
				a.logger.Info("user rejected", zap.String("file", args[0]), zap.Int("issues", len(verr.Issues)))
			}
			if err != nil {
				return err
			}
			printf(cmd, "valid user %s (%d) <%s> likes %v\n", user.Name, user.Age, user.Email, user.FavoriteFruits)
			return nil
		},
	}
}

func newPriceCmd(a *app) *cobra.Command {
	var name, base, tax, discount, supplier string
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a product with tax and discount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := make([]decimal.Decimal, 3)
			for i, s := range []string{base, tax, discount} {
				d, err := decimal.Parse(s)
				if err != nil {
					return fmt.Errorf("price: %q: %w", s, err)
				}
				values[i] = d
			}
			p, err := catalog.NewDiscountedProduct(name, values[0], values[1], values[2])
			if err != nil {
				return err
			}
			printf(cmd, "%s: base %s, tax %s, discount %s, total %s\n",
				p.Name, p.BasePrice, p.TaxRate, p.Discount, p.TotalPrice.Trim(2))

			supplied := catalog.SuppliedProduct{
				Product:      catalog.NewProduct(p.Name, p.TotalPrice.Trim(2)),
				SupplierCode: supplier,
			}
			printf(cmd, "%s\n", supplied.Info())
			a.logger.Debug("priced", zap.Stringer("product", supplied))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Laptop", "product name")
	cmd.Flags().StringVar(&base, "base", "1000", "base price")
	cmd.Flags().StringVar(&tax, "tax", "0.15", "tax rate")
	cmd.Flags().StringVar(&discount, "discount", "0.1", "discount in [0, 1]")
	cmd.Flags().StringVar(&supplier, "supplier", "SUP12345", "supplier code")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			printf(cmd, "%s", out)
			return nil
		},
	}
}
