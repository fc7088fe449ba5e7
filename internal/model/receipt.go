package model

// FormatType tags the layout detected while parsing a receipt.
type FormatType string

// Receipt format constants.
const (
	FormatTabular    FormatType = "tabular"
	FormatSimpleList FormatType = "simple_list"
	FormatUnknown    FormatType = "unknown"
)

// ReceiptMetadata carries the header and footer fields of a receipt.
// Optional fields are zero-valued when absent; absence is not an error.
type ReceiptMetadata struct {
	MerchantName  string
	InvoiceNumber string
	Date          string
	FormatType    FormatType
	TotalAmount   float64
	HasTotal      bool
}

// ParsedReceipt is the parser's output: extracted candidates plus metadata.
type ParsedReceipt struct {
	Candidates []ExtractedCandidate
	Metadata   ReceiptMetadata
}
