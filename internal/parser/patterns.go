package parser

import "regexp"

// Line patterns compiled once. The tabular pattern expects a name followed
// by quantity, unit price, and one or more further numeric columns ending in
// the line total.
var (
	tabularRe = regexp.MustCompile(`^([A-Za-z][A-Za-z .,&'/-]*?)\s+(\d+(?:\.\d+)?)((?:\s+\d+(?:\.\d+)?){2,})$`)
	numberRe  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	dateRe    = regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b`)
	totalRe   = regexp.MustCompile(`(?i)\b(?:grand\s+total|total|amount\s+due|net\s+amount|sum)\b`)
	invoiceRe = regexp.MustCompile(`(?i)(?:invoice|bill|receipt)\s*(?:no|number|num|#)[:.]?\s*([A-Za-z0-9-]+)`)
	leadingRe = regexp.MustCompile(`^[A-Za-z][A-Za-z .,&'/-]*`)
	integerRe = regexp.MustCompile(`^\d+$`)

	// Header and footer lines that never describe products.
	skipRe = regexp.MustCompile(`(?i)\b(?:sub\s?total|cashier|payment\s+method|thank\s+you|tax|vat|change\s+due|tendered|balance)\b`)

	// Column header rows such as "Item Qty Price Amount".
	columnHeaderRe = regexp.MustCompile(`(?i)^\s*(?:item|description|product)s?\b.*\b(?:qty|quantity|price|amount|rate)\b`)
)
