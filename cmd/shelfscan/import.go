package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/catalogflow/shelfscan/internal/cli"
	"github.com/catalogflow/shelfscan/internal/engine"
	"github.com/catalogflow/shelfscan/internal/model"
	"github.com/catalogflow/shelfscan/internal/parser"
	"github.com/catalogflow/shelfscan/internal/score"
)

func importCmd() *cobra.Command {
	var textFile string
	var imageFile string
	var sellerID string
	var batch bool
	var includeDuplicates bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Categorize a receipt and bulk import it into a seller's catalog",
		Long: `Run the full pipeline on a receipt: extract candidates, score them,
assign categories and subcategories, flag duplicates against the seller's
existing catalog, and bulk import the results. Items flagged as duplicates
are skipped unless --include-duplicates is set. A single item's failure
never aborts the batch; the per-item outcome is reported at the end.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if sellerID == "" {
				return fmt.Errorf("--seller is required")
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var candidates []model.ExtractedCandidate
			switch {
			case textFile != "":
				lines, readErr := readLines(textFile)
				if readErr != nil {
					return readErr
				}
				candidates = scoreCandidates(parser.Parse(lines))
			case imageFile != "":
				image, readErr := os.ReadFile(imageFile)
				if readErr != nil {
					return fmt.Errorf("failed to read %s: %w", imageFile, readErr)
				}
				parsed, extractErr := eng.ExtractFromImage(ctx, image)
				if extractErr != nil {
					return extractErr
				}
				candidates = scoreCandidates(parsed)
			default:
				return fmt.Errorf("either --text or --image is required")
			}

			if len(candidates) == 0 {
				fmt.Println(cli.WarningStyle.Render("No product candidates found on the receipt."))
				return nil
			}

			result, err := eng.Categorize(ctx, engine.CategorizeRequest{
				SellerID: sellerID,
				Products: candidates,
				Batch:    batch,
			})
			if err != nil {
				return err
			}

			toImport := make([]engine.CategorizedProduct, 0, len(result.Products))
			skipped := 0
			for _, p := range result.Products {
				if p.Verdict.IsDuplicate && !includeDuplicates {
					fmt.Println(cli.WarningStyle.Render(
						fmt.Sprintf("Skipping %q: %s", p.Candidate.Name, p.Verdict.Reason)))
					skipped++
					continue
				}
				toImport = append(toImport, p)
			}

			bar := progressbar.Default(int64(len(toImport)), "importing")

			importResult := eng.Import(ctx, sellerID, toImport)
			_ = bar.Finish()

			fmt.Println()
			fmt.Println(cli.TitleStyle.Render("Import result"))
			fmt.Printf("%s %d\n", cli.SuccessStyle.Render("Imported:"), importResult.Successful)
			fmt.Printf("%s %d\n", cli.ErrorStyle.Render("Failed:"), importResult.Failed)
			if skipped > 0 {
				fmt.Printf("%s %d\n", cli.WarningStyle.Render("Skipped duplicates:"), skipped)
			}
			if result.NewSubcategoriesCreated > 0 {
				fmt.Printf("New subcategories created: %d\n", result.NewSubcategoriesCreated)
			}

			if len(importResult.Errors) > 0 {
				fmt.Println()
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintf(w, "%s\t%s\n",
					cli.TableHeaderStyle.Render("Item"),
					cli.TableHeaderStyle.Render("Error"))
				for _, e := range importResult.Errors {
					fmt.Fprintf(w, "%s\t%s\n", e.Item, e.Error)
				}
				_ = w.Flush()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&textFile, "text", "", "receipt text file, one OCR line per row")
	cmd.Flags().StringVar(&imageFile, "image", "", "receipt image (JPEG, PNG, or WebP)")
	cmd.Flags().StringVar(&sellerID, "seller", "", "seller id whose catalog receives the products")
	cmd.Flags().BoolVar(&batch, "batch", false, "categorize all candidates in one AI request")
	cmd.Flags().BoolVar(&includeDuplicates, "include-duplicates", false, "import items flagged as duplicates")

	return cmd
}

func scoreCandidates(parsed model.ParsedReceipt) []model.ExtractedCandidate {
	scorer := score.NewScorer(viper.GetFloat64("pipeline.review_threshold"))
	return scorer.ScoreAll(parsed.Candidates)
}
