package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/catalogflow/shelfscan/internal/cli"
	"github.com/catalogflow/shelfscan/internal/match"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the category registry",
	}

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())
	cmd.AddCommand(categoriesSeedCmd())

	return cmd
}

func categoriesListCmd() *cobra.Command {
	var withSubs bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return err
			}

			if len(categories) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No categories yet. Run 'shelfscan categories seed' to load defaults."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Description"))

			for _, c := range categories {
				fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Description)
				if withSubs {
					subs, subErr := store.GetSubcategoriesByCategory(ctx, c.ID)
					if subErr != nil {
						return subErr
					}
					for _, sub := range subs {
						fmt.Fprintf(w, "\t  %s\t\n", cli.SubtleStyle.Render(sub.Name))
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&withSubs, "subcategories", false, "also list each category's subcategories")

	return cmd
}

func categoriesAddCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := store.CreateCategory(ctx, args[0], description)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("Created category %q (id %d)", category.Name, category.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "category description")

	return cmd
}

func categoriesSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the categories the keyword matcher knows about",
		Long: `Create every category referenced by the built-in keyword table. Existing
categories are left untouched, so seeding is safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			seen := make(map[string]bool)
			created := 0
			for _, kw := range match.DefaultKeywords() {
				if seen[kw.Category] {
					continue
				}
				seen[kw.Category] = true

				existing, lookupErr := store.GetCategoryByName(ctx, kw.Category)
				if lookupErr != nil {
					return lookupErr
				}
				if existing != nil {
					continue
				}

				if _, createErr := store.CreateCategory(ctx, kw.Category, ""); createErr != nil {
					return createErr
				}
				created++
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("Seeded %d categories (%d already present)", created, len(seen)-created)))
			return nil
		},
	}
}
