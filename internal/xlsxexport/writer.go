package xlsxexport

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"procura/internal/domain"
)

const (
	requestSheet = "Requests"
	lineSheet    = "Order Lines"
)

// requestColumns defines the header row of the Requests sheet.
var requestColumns = []string{
	"Request ID",
	"Title",
	"Vendor Name",
	"VAT ID",
	"Department",
	"Commodity Group",
	"Status",
	"Total Cost",
	"Order Line Count",
	"Notes",
	"Created At",
	"Updated At",
}

// lineColumns defines the header row of the Order Lines sheet.
var lineColumns = []string{
	"Request ID",
	"Position",
	"Line Type",
	"Description",
	"Detailed Description",
	"Unit Price",
	"Amount",
	"Unit",
	"Discount %",
	"Discount Amount",
	"Total Price",
}

// Writer builds an XLSX workbook with one row per request and one row
// per order line.
type Writer struct {
	f       *excelize.File
	reqRow  int
	lineRow int
}

// NewWriter creates a Writer with both sheets and their header rows.
func NewWriter() (*Writer, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), requestSheet); err != nil {
		return nil, fmt.Errorf("xlsxexport: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(lineSheet); err != nil {
		return nil, fmt.Errorf("xlsxexport: create sheet: %w", err)
	}

	w := &Writer{f: f, reqRow: 1, lineRow: 1}
	if err := w.writeRow(requestSheet, 1, toAny(requestColumns)); err != nil {
		return nil, err
	}
	if err := w.writeRow(lineSheet, 1, toAny(lineColumns)); err != nil {
		return nil, err
	}
	return w, nil
}

// WriteRequests appends a batch of requests, including their order lines.
func (w *Writer) WriteRequests(requests []domain.Request, groupNames map[string]string) error {
	for i := range requests {
		if err := w.writeRequest(&requests[i], groupNames); err != nil {
			return err
		}
	}
	return nil
}

// WriteTo serializes the workbook to out.
func (w *Writer) WriteTo(out io.Writer) error {
	defer func() { _ = w.f.Close() }()
	if err := w.f.Write(out); err != nil {
		return fmt.Errorf("xlsxexport: write workbook: %w", err)
	}
	return nil
}

func (w *Writer) writeRequest(req *domain.Request, groupNames map[string]string) error {
	groupName := ""
	if req.CommodityGroupID != nil {
		groupName = groupNames[req.CommodityGroupID.String()]
	}

	w.reqRow++
	row := []any{
		req.ID.String(),
		req.Title,
		req.VendorName,
		req.VatID,
		req.Department,
		groupName,
		string(req.Status),
		formatMoney(req.TotalCost),
		len(req.OrderLines),
		req.Notes,
		req.CreatedAt.Format(time.RFC3339),
		req.UpdatedAt.Format(time.RFC3339),
	}
	if err := w.writeRow(requestSheet, w.reqRow, row); err != nil {
		return err
	}

	for i := range req.OrderLines {
		line := &req.OrderLines[i]
		w.lineRow++
		lineRow := []any{
			req.ID.String(),
			line.Position,
			string(line.LineType),
			line.Description,
			line.DetailedDescription,
			formatMoney(line.UnitPrice),
			line.Amount.String(),
			line.Unit,
			formatOptional(line.DiscountPercent),
			formatOptional(line.DiscountAmount),
			formatMoney(line.TotalPrice),
		}
		if err := w.writeRow(lineSheet, w.lineRow, lineRow); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeRow(sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsxexport: cell name: %w", err)
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsxexport: write row %d: %w", row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatOptional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.xlsx
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.xlsx", sanitized, date)
}
