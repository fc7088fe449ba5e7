// Package parser turns raw receipt text lines into candidate product
// records plus receipt metadata. Parsing is a pure function: it performs no
// I/O and never fails outright, returning an empty candidate list when
// nothing on the receipt looks like a product.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/catalogflow/shelfscan/internal/model"
)

// Pattern confidences. Tabular lines carry the most structure; heuristic
// lines score lower, with a small bump when name cleaning improved the raw
// fragment.
const (
	tabularConfidence        = 0.9
	heuristicConfidence      = 0.8
	heuristicCleanConfidence = 0.85
)

// merchantScanWindow is how many leading non-empty lines are eligible to be
// the merchant name.
const merchantScanWindow = 4

var separatorRe = regexp.MustCompile(`^[-=*_~.\s]+$`)

// Parse scans the ordered receipt lines once and extracts candidates and
// metadata. Line order matters: merchant and date typically precede line
// items, totals follow them.
func Parse(lines []string) model.ParsedReceipt {
	meta := model.ReceiptMetadata{FormatType: model.FormatUnknown}
	var candidates []model.ExtractedCandidate
	var tabularSeen, heuristicSeen bool

	nonEmpty := 0
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || separatorRe.MatchString(line) {
			continue
		}
		nonEmpty++

		if meta.InvoiceNumber == "" {
			if m := invoiceRe.FindStringSubmatch(line); m != nil {
				meta.InvoiceNumber = m[1]
				continue
			}
		}

		if meta.Date == "" {
			if d := dateRe.FindString(line); d != "" {
				meta.Date = d
				continue
			}
		}

		if isSubtotalLine(line) {
			continue
		}

		if !meta.HasTotal && totalRe.MatchString(line) {
			// Last numeric token is the amount. A malformed total line
			// (no numeric token) leaves the total unset rather than failing.
			if nums := numberRe.FindAllString(line, -1); len(nums) > 0 {
				if amount, err := strconv.ParseFloat(nums[len(nums)-1], 64); err == nil {
					meta.TotalAmount = amount
					meta.HasTotal = true
				}
			}
			continue
		}

		if skipRe.MatchString(line) || columnHeaderRe.MatchString(line) {
			continue
		}

		if meta.MerchantName == "" && nonEmpty <= merchantScanWindow && !strings.ContainsAny(line, "0123456789") {
			meta.MerchantName = line
			continue
		}

		if c, ok := matchTabular(line); ok {
			candidates = append(candidates, c)
			tabularSeen = true
			continue
		}

		if c, ok := matchHeuristic(line); ok {
			candidates = append(candidates, c)
			heuristicSeen = true
		}
	}

	switch {
	case tabularSeen:
		meta.FormatType = model.FormatTabular
	case heuristicSeen:
		meta.FormatType = model.FormatSimpleList
	}

	return model.ParsedReceipt{
		Candidates: dedupeCandidates(candidates),
		Metadata:   meta,
	}
}

// matchTabular matches `<name> <qty> <unit-price> ... <line-total>` rows.
func matchTabular(line string) (model.ExtractedCandidate, bool) {
	m := tabularRe.FindStringSubmatch(line)
	if m == nil {
		return model.ExtractedCandidate{}, false
	}

	name := CleanName(m[1])
	if name == "" {
		return model.ExtractedCandidate{}, false
	}

	qty, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return model.ExtractedCandidate{}, false
	}

	nums := numberRe.FindAllString(m[3], -1)
	if len(nums) == 0 {
		return model.ExtractedCandidate{}, false
	}
	price, err := strconv.ParseFloat(nums[len(nums)-1], 64)
	if err != nil {
		return model.ExtractedCandidate{}, false
	}

	return model.ExtractedCandidate{
		Name:         name,
		Price:        price,
		Quantity:     qty,
		OriginalText: line,
		Confidence: model.Confidence{
			Name:     tabularConfidence,
			Price:    tabularConfidence,
			Quantity: tabularConfidence,
		},
	}, true
}

// matchHeuristic handles loosely structured lines: the leading alphabetic
// run names the product, the last numeric token is the price, and any
// standalone integer before the price is the quantity.
func matchHeuristic(line string) (model.ExtractedCandidate, bool) {
	nums := numberRe.FindAllString(line, -1)
	if len(nums) == 0 {
		return model.ExtractedCandidate{}, false
	}

	fragment := leadingRe.FindString(line)
	if strings.TrimSpace(fragment) == "" {
		// Numbers without a name cannot become a product
		return model.ExtractedCandidate{}, false
	}

	price, err := strconv.ParseFloat(nums[len(nums)-1], 64)
	if err != nil {
		return model.ExtractedCandidate{}, false
	}

	quantity := 1.0
	tokens := strings.Fields(line)
	lastNum := nums[len(nums)-1]
	for _, tok := range tokens {
		if tok == lastNum && len(nums) == 1 {
			// The only number on the line is the price
			break
		}
		if integerRe.MatchString(tok) && tok != lastNum {
			if q, qErr := strconv.ParseFloat(tok, 64); qErr == nil {
				quantity = q
				break
			}
		}
	}

	confidence := heuristicConfidence
	name := CleanName(fragment)
	if name == "" {
		return model.ExtractedCandidate{}, false
	}
	if name != strings.TrimSpace(fragment) {
		confidence = heuristicCleanConfidence
	}

	return model.ExtractedCandidate{
		Name:         name,
		Price:        price,
		Quantity:     quantity,
		OriginalText: line,
		Confidence: model.Confidence{
			Name:     confidence,
			Price:    confidence,
			Quantity: confidence,
		},
	}, true
}

// isSubtotalLine keeps subtotal rows from being mistaken for the grand total.
func isSubtotalLine(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "subtotal") || strings.Contains(lower, "sub total")
}

// dedupeCandidates drops repeated lines: when two candidates share a
// case-insensitive trimmed name, only the first occurrence survives. OCR
// frequently reads the same printed line twice.
func dedupeCandidates(candidates []model.ExtractedCandidate) []model.ExtractedCandidate {
	if len(candidates) == 0 {
		return candidates
	}

	seen := make(map[string]bool, len(candidates))
	result := make([]model.ExtractedCandidate, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, c)
	}
	return result
}
