package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	enc "github.com/MrJamesThe3rd/bitebudget/internal/encoding"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

// Result is one parsed receipt file.
type Result struct {
	Profile string
	Charset string
	Items   []receipt.ItemParams
	Skipped int
}

// Total sums the item totals, rounded to cents.
func (r *Result) Total() float64 {
	var sum float64
	for _, it := range r.Items {
		sum += it.TotalPrice
	}

	return math.Round(sum*100) / 100
}

// Parser reads receipt item CSV exports. It detects the charset, the
// delimiter (semicolon or comma) and the column layout.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (*Result, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	comma, err := sniffDelimiter(br)
	if err != nil {
		return nil, fmt.Errorf("detect delimiter: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching receipt format found: expected a product column and a price column")
	}

	items, skipped, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	if err != nil {
		return nil, err
	}

	return &Result{Profile: profile.Name, Charset: charset, Items: items, Skipped: skipped}, nil
}

// sniffDelimiter picks ';' when the first non-empty line has more semicolons
// than commas, ',' otherwise.
func sniffDelimiter(br *bufio.Reader) (rune, error) {
	head, err := br.Peek(br.Size())
	if err != nil && err != io.EOF {
		return 0, err
	}

	for line := range strings.SplitSeq(string(head), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Count(line, ";") > strings.Count(line, ",") {
			return ';', nil
		}

		break
	}

	return ',', nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Header names are compared case-insensitively.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[strings.ToLower(name)]; !ok {
			return false
		}
	}

	return true
}

func (c colIndex) lookup(name string) int {
	if name == "" {
		return -1
	}

	idx, ok := c[strings.ToLower(name)]
	if !ok {
		return -1
	}

	return idx
}

// parseRows extracts items. Rows with no product, a footer label or no usable
// price are counted as skipped. A present but malformed quantity is an error.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]receipt.ItemParams, int, error) {
	var (
		productIdx  = cols.lookup(p.ProductCol)
		quantityIdx = cols.lookup(p.QuantityCol)
		unitIdx     = cols.lookup(p.UnitCol)
		totalIdx    = cols.lookup(p.TotalCol)
		categoryIdx = cols.lookup(p.CategoryCol)
	)

	var (
		items   []receipt.ItemParams
		skipped int
	)

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based

		if isBlank(row) {
			continue
		}

		name := cellValue(row, productIdx)
		if name == "" || isFooter(name) {
			skipped++
			continue
		}

		qty := 1

		if s := cellValue(row, quantityIdx); s != "" {
			n, err := parseQuantity(s)
			if err != nil {
				return nil, 0, fmt.Errorf("row %d: invalid quantity %q", rowNum, s)
			}

			qty = n
		}

		unit, unitErr := parseAmount(cellValue(row, unitIdx))
		total, totalErr := parseAmount(cellValue(row, totalIdx))

		switch {
		case unitErr != nil && totalErr != nil:
			skipped++
			continue
		case totalErr != nil:
			total = unit * float64(qty)
		case unitErr != nil:
			unit = total / float64(qty)
		}

		items = append(items, receipt.ItemParams{
			ProductName: name,
			Quantity:    qty,
			UnitPrice:   unit,
			TotalPrice:  total,
			Category:    cellValue(row, categoryIdx),
		})
	}

	return items, skipped, nil
}

// parseQuantity accepts whole counts, including "2.0" and "2,0".
func parseQuantity(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n, nil
	}

	f, err := parseAmount(s)
	if err != nil || f <= 0 || f != float64(int(f)) {
		return 0, fmt.Errorf("not a positive whole number")
	}

	return int(f), nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// footerLabels are ticket summary lines that share the product column.
var footerLabels = map[string]bool{
	"total":     true,
	"subtotal":  true,
	"iva":       true,
	"cambio":    true,
	"efectivo":  true,
	"descuento": true,
}

func isFooter(name string) bool {
	return footerLabels[strings.ToLower(strings.TrimRight(name, ": "))]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
