package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/catalogflow/shelfscan/internal/cli"
	"github.com/catalogflow/shelfscan/internal/model"
)

func productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Inspect and reorganize a seller's catalog",
	}

	cmd.AddCommand(productsListCmd())
	cmd.AddCommand(productsMoveCmd())
	cmd.AddCommand(productsCopyCmd())

	return cmd
}

func productsListCmd() *cobra.Command {
	var sellerID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a seller's products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if sellerID == "" {
				return fmt.Errorf("--seller is required")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			products, err := store.GetProductsForSeller(ctx, sellerID)
			if err != nil {
				return err
			}

			if len(products) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No products for this seller."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Brand"),
				cli.TableHeaderStyle.Render("Price"),
				cli.TableHeaderStyle.Render("Qty"),
				cli.TableHeaderStyle.Render("Category"))

			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.0f\t%d\n",
					p.ID, p.Name, p.Brand, p.Price, p.Quantity, p.CategoryID)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&sellerID, "seller", "", "seller id")

	return cmd
}

func productsMoveCmd() *cobra.Command {
	var categoryID, subcategoryID int

	cmd := &cobra.Command{
		Use:   "move <product-id>...",
		Short: "Move products to another category",
		Long: `Reassign one or more products to the given category. Unknown product ids
are reported individually; the rest of the batch still moves.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			result := eng.Move(ctx, args, categoryID, subcategoryID)
			printBatchOutcome("Moved", result.MovedCount, result.FailedProducts)
			return nil
		},
	}

	cmd.Flags().IntVar(&categoryID, "category", 0, "target category id")
	cmd.Flags().IntVar(&subcategoryID, "subcategory", 0, "target subcategory id")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func productsCopyCmd() *cobra.Command {
	var categoryID, subcategoryID int

	cmd := &cobra.Command{
		Use:   "copy <product-id>...",
		Short: "Copy products into another category",
		Long: `Duplicate one or more products into the given category. Each copy gets a
fresh identity; the originals are left untouched. Unknown product ids are
reported individually; the rest of the batch is still copied.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			result := eng.Copy(ctx, args, categoryID, subcategoryID)
			printBatchOutcome("Copied", result.CopiedCount, result.FailedProducts)
			return nil
		},
	}

	cmd.Flags().IntVar(&categoryID, "category", 0, "target category id")
	cmd.Flags().IntVar(&subcategoryID, "subcategory", 0, "target subcategory id")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func printBatchOutcome(verb string, succeeded int, errs []model.ImportError) {
	fmt.Printf("%s %d\n", cli.SuccessStyle.Render(verb+":"), succeeded)
	if len(errs) > 0 {
		fmt.Printf("%s %d\n", cli.ErrorStyle.Render("Failed:"), len(errs))
		for _, e := range errs {
			fmt.Printf("  %s: %s\n", e.Item, e.Error)
		}
	}
}
