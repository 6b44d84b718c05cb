package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

const pdfFontFamily = "DejaVu"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	dejaVuRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	dejaVuBold []byte
)

// ShoppingListService aggregates a user's cart into a purchase list and
// renders it for download.
type ShoppingListService struct {
	store  store.Store
	logger *slog.Logger
}

// NewShoppingListService creates a new shopping list service.
func NewShoppingListService(store store.Store, logger *slog.Logger) *ShoppingListService {
	return &ShoppingListService{store: store, logger: logger}
}

// Build sums the ingredient lines of every recipe in the viewer's cart,
// grouped by ingredient name and unit. An empty cart is an empty list.
func (s *ShoppingListService) Build(ctx context.Context, viewerID string) (domain.ShoppingList, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}

	list, err := s.store.GetShoppingList(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("build shopping list: %w", err)
	}

	s.logger.Debug("shopping list built", "user_id", viewerID, "items", len(list))
	return list, nil
}

// RenderText returns the plain-text attachment body.
func (s *ShoppingListService) RenderText(list domain.ShoppingList) []byte {
	return []byte(list.Text())
}

// RenderPDF lays the same lines out as a single-column A4 document.
// Text is set in an embedded UTF-8 font, so any script in ingredient
// names survives.
func (s *ShoppingListService) RenderPDF(list domain.ShoppingList, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Shopping list", true)
	pdf.SetCreationDate(generatedAt)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", dejaVuRegular)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", dejaVuBold)

	pdf.AddPage()
	pdf.SetFont(pdfFontFamily, "B", 16)
	pdf.Cell(0, 10, "Shopping list")
	pdf.Ln(12)

	pdf.SetFont(pdfFontFamily, "", 12)
	if len(list) == 0 {
		pdf.Cell(0, 8, "Your shopping cart is empty.")
		pdf.Ln(8)
	}
	for _, item := range list {
		pdf.Cell(0, 8, item.Line())
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render shopping list pdf: %w", err)
	}
	return buf.Bytes(), nil
}
