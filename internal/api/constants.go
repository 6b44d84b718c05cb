package api

// Content types of the shopping list export.
const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypePDF  = "application/pdf"
)

// Shopping list export formats.
const (
	formatText = "txt"
	formatPDF  = "pdf"
)
