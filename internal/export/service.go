// Package export bundles a user's receipts into a downloadable archive.
package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/analytics"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

const (
	ReceiptsFile = "receipts.csv"
	SummaryFile  = "summary.txt"
	dateLayout   = "2006-01-02"
)

var csvHeader = []string{
	"receipt_id", "purchase_date", "store_name", "product_name",
	"quantity", "unit_price", "total_price", "category",
}

//go:generate mockgen -source=service.go -destination=lister_mock.go -package=export
type ReceiptLister interface {
	List(ctx context.Context, userID uuid.UUID, filter receipt.ListFilter) ([]*receipt.Receipt, error)
}

// Service writes receipts matching a date range as a zip holding one CSV row
// per item and a plain-text summary.
type Service struct {
	receipts ReceiptLister
	now      func() time.Time
}

func NewService(receipts ReceiptLister) *Service {
	return &Service{receipts: receipts, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Filename names the archive after the requested range.
func Filename(filter receipt.ListFilter) string {
	from, to := "all", "now"

	if filter.From != nil {
		from = filter.From.Format("20060102")
	}

	if filter.To != nil {
		to = filter.To.Format("20060102")
	}

	return fmt.Sprintf("bitebudget_%s_%s.zip", from, to)
}

// Export writes the archive to w and returns the number of receipts in it.
func (s *Service) Export(ctx context.Context, userID uuid.UUID, filter receipt.ListFilter, w io.Writer) (int, error) {
	receipts, err := s.receipts.List(ctx, userID, filter)
	if err != nil {
		return 0, fmt.Errorf("listing receipts: %w", err)
	}

	zw := zip.NewWriter(w)

	f, err := zw.Create(ReceiptsFile)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", ReceiptsFile, err)
	}

	if err := writeCSV(f, receipts); err != nil {
		return 0, fmt.Errorf("writing %s: %w", ReceiptsFile, err)
	}

	f, err = zw.Create(SummaryFile)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", SummaryFile, err)
	}

	if _, err := io.WriteString(f, Summary(receipts, filter, s.now())); err != nil {
		return 0, fmt.Errorf("writing %s: %w", SummaryFile, err)
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("closing archive: %w", err)
	}

	return len(receipts), nil
}

func writeCSV(w io.Writer, receipts []*receipt.Receipt) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range receipts {
		for _, it := range r.Items {
			err := cw.Write([]string{
				r.ID.String(),
				r.PurchaseDate.Format(dateLayout),
				r.StoreName,
				it.ProductName,
				strconv.Itoa(it.Quantity),
				formatAmount(it.UnitPrice),
				formatAmount(it.TotalPrice),
				it.Category,
			})
			if err != nil {
				return err
			}
		}
	}

	cw.Flush()

	return cw.Error()
}

// Summary renders totals for the exported receipts, one line per category.
func Summary(receipts []*receipt.Receipt, filter receipt.ListFilter, generated time.Time) string {
	var (
		sb    strings.Builder
		total float64
		items []receipt.Item
	)

	for _, r := range receipts {
		total += r.TotalAmount
		items = append(items, r.Items...)
	}

	from, to := "beginning", "today"
	if filter.From != nil {
		from = filter.From.Format(dateLayout)
	}

	if filter.To != nil {
		to = filter.To.Format(dateLayout)
	}

	fmt.Fprintf(&sb, "BiteBudget export %s to %s\n", from, to)
	fmt.Fprintf(&sb, "Generated: %s\n\n", generated.UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "Receipts: %d\n", len(receipts))
	fmt.Fprintf(&sb, "Items: %d\n", len(items))
	fmt.Fprintf(&sb, "Total spent: %s\n", formatAmount(total))

	breakdown := analytics.CategoryBreakdown(items)
	if len(breakdown) > 0 {
		sb.WriteString("\nBy category:\n")
	}

	for _, c := range breakdown {
		fmt.Fprintf(&sb, "* %s | %d items | %s\n", c.Category, c.ItemCount, formatAmount(c.TotalSpent))
	}

	return sb.String()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
