package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yallashop/storefront/internal/api"
	"github.com/yallashop/storefront/internal/app/model"
	"github.com/yallashop/storefront/pkg/logger"
)

type ExportService interface {
	ExportCatalog(ctx context.Context, path string) error
	ExportCart(ctx context.Context, lines []model.CartLine, path string) error
}

type exportService struct {
	client *api.Client
}

func NewExportService(client *api.Client) ExportService {
	return &exportService{client: client}
}

// ExportCatalog walks every catalog page and writes the products to an
// XLSX workbook at path.
func (s *exportService) ExportCatalog(ctx context.Context, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"ID", "Name", "Category", "Price", "Sizes", "Colors"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	row := 2
	page := 1
	for {
		result, err := s.client.ListProducts(ctx, api.ListParams{Page: page, Limit: 100})
		if err != nil {
			return fmt.Errorf("failed to fetch catalog page %d: %w", page, err)
		}

		for i := range result.Items {
			p := &result.Items[i]
			cell := "A" + strconv.Itoa(row)
			values := []interface{}{
				p.ID,
				p.Name,
				p.CategoryID,
				p.Price.String(),
				joinSizes(p.Sizes),
				joinColors(p.Colors),
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
			row++
		}

		if result.Pagination == nil || page >= result.Pagination.TotalPages || len(result.Items) == 0 {
			break
		}
		page++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	logger.Info("Catalog exported", map[string]interface{}{
		"path":     path,
		"products": row - 2,
	})
	return nil
}

// ExportCart writes the given cart lines to an XLSX workbook at path,
// with a total row at the bottom.
func (s *exportService) ExportCart(ctx context.Context, lines []model.CartLine, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"Product", "Size", "Color", "Quantity", "Unit price", "Subtotal"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	row := 2
	for i := range lines {
		l := &lines[i]
		cell := "A" + strconv.Itoa(row)
		values := []interface{}{
			lineProductLabel(l),
			optionalID(l.SizeID),
			optionalID(l.ColorID),
			l.Quantity,
			l.UnitPrice.String(),
			l.Subtotal.String(),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	totalCell := "A" + strconv.Itoa(row)
	totalRow := []interface{}{"Total", "", "", "", "", model.CartTotal(lines).String()}
	if err := f.SetSheetRow(sheet, totalCell, &totalRow); err != nil {
		return fmt.Errorf("failed to write total row: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	logger.Info("Cart exported", map[string]interface{}{
		"path":  path,
		"lines": len(lines),
	})
	return nil
}

func lineProductLabel(l *model.CartLine) string {
	if l.Product != nil {
		return l.Product.Name
	}
	return "product " + strconv.FormatUint(uint64(l.ProductID), 10)
}

func optionalID(id *uint) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}

func joinSizes(sizes []model.Size) string {
	names := make([]string, len(sizes))
	for i, s := range sizes {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

func joinColors(colors []model.Color) string {
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}
