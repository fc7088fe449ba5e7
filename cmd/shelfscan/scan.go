package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/catalogflow/shelfscan/internal/cli"
	"github.com/catalogflow/shelfscan/internal/model"
	"github.com/catalogflow/shelfscan/internal/parser"
	"github.com/catalogflow/shelfscan/internal/score"
)

func scanCmd() *cobra.Command {
	var textFile string
	var imageFile string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Parse a receipt into product candidates",
		Long: `Parse a receipt from OCR text lines (--text) or a receipt image
(--image, requires a configured extractor) and display the extracted
candidates with their confidence scores.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			switch {
			case textFile != "":
				return scanText(textFile)
			case imageFile != "":
				return scanImage(ctx, imageFile)
			default:
				return fmt.Errorf("either --text or --image is required")
			}
		},
	}

	cmd.Flags().StringVar(&textFile, "text", "", "receipt text file, one OCR line per row")
	cmd.Flags().StringVar(&imageFile, "image", "", "receipt image (JPEG, PNG, or WebP)")

	return cmd
}

func scanText(path string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}

	parsed := parser.Parse(lines)
	scorer := score.NewScorer(viper.GetFloat64("pipeline.review_threshold"))
	parsed.Candidates = scorer.ScoreAll(parsed.Candidates)

	printReceipt(parsed)
	return nil
}

func scanImage(ctx context.Context, path string) error {
	eng, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	parsed, err := eng.ExtractFromImage(ctx, image)
	if err != nil {
		return err
	}

	scorer := score.NewScorer(viper.GetFloat64("pipeline.review_threshold"))
	parsed.Candidates = scorer.ScoreAll(parsed.Candidates)

	printReceipt(parsed)
	return nil
}

func printReceipt(parsed model.ParsedReceipt) {
	meta := parsed.Metadata

	fmt.Println(cli.TitleStyle.Render("Receipt"))
	if meta.MerchantName != "" {
		fmt.Printf("Merchant:  %s\n", meta.MerchantName)
	}
	if meta.InvoiceNumber != "" {
		fmt.Printf("Invoice:   %s\n", meta.InvoiceNumber)
	}
	if meta.Date != "" {
		fmt.Printf("Date:      %s\n", meta.Date)
	}
	if meta.HasTotal {
		fmt.Printf("Total:     %.2f\n", meta.TotalAmount)
	}
	fmt.Printf("Format:    %s\n\n", meta.FormatType)

	if len(parsed.Candidates) == 0 {
		fmt.Println(cli.WarningStyle.Render("No product candidates found."))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Name"),
		cli.TableHeaderStyle.Render("Qty"),
		cli.TableHeaderStyle.Render("Price"),
		cli.TableHeaderStyle.Render("Confidence"),
		cli.TableHeaderStyle.Render("Review"))

	for _, c := range parsed.Candidates {
		review := ""
		if c.NeedsReview {
			review = cli.WarningStyle.Render("yes")
		}
		fmt.Fprintf(w, "%s\t%.0f\t%.2f\t%.2f\t%s\n",
			c.Name, c.Quantity, c.Price, c.Confidence.Overall, review)
	}
}
