package export_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/bitebudget/internal/export"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

var generatedAt = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func sampleReceipts() []*receipt.Receipt {
	return []*receipt.Receipt{
		{
			ID:           uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			StoreName:    "Walmart",
			TotalAmount:  74.5,
			PurchaseDate: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
			Items: []receipt.Item{
				{ProductName: "Milk", Quantity: 2, UnitPrice: 25, TotalPrice: 50, Category: "Dairy"},
				{ProductName: "Bananas, organic", Quantity: 1, UnitPrice: 24.5, TotalPrice: 24.5, Category: "Produce"},
			},
		},
		{
			ID:           uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			StoreName:    "Costco",
			TotalAmount:  30,
			PurchaseDate: time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC),
			Items: []receipt.Item{
				{ProductName: "Cheese", Quantity: 1, UnitPrice: 30, TotalPrice: 30, Category: "Dairy"},
			},
		},
	}
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string)

	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)

		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()

		files[f.Name] = string(b)
	}

	return files
}

func TestService_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	filter := receipt.ListFilter{From: &from, To: &to}

	lister := export.NewMockReceiptLister(ctrl)
	lister.EXPECT().List(gomock.Any(), userID, filter).Return(sampleReceipts(), nil)

	var buf bytes.Buffer

	n, err := export.NewService(lister).
		WithClock(func() time.Time { return generatedAt }).
		Export(context.Background(), userID, filter, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	files := readZip(t, buf.Bytes())
	require.Contains(t, files, export.ReceiptsFile)
	require.Contains(t, files, export.SummaryFile)

	rows, err := csv.NewReader(bytes.NewBufferString(files[export.ReceiptsFile])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "receipt_id", rows[0][0])
	assert.Equal(t, []string{
		"11111111-1111-1111-1111-111111111111", "2024-03-02", "Walmart",
		"Bananas, organic", "1", "24.50", "24.50", "Produce",
	}, rows[2])
	assert.Equal(t, "Costco", rows[3][2])

	summary := files[export.SummaryFile]
	assert.Contains(t, summary, "BiteBudget export 2024-03-01 to 2024-03-31")
	assert.Contains(t, summary, "Generated: 2024-04-01T12:00:00Z")
	assert.Contains(t, summary, "Receipts: 2")
	assert.Contains(t, summary, "Items: 3")
	assert.Contains(t, summary, "Total spent: 104.50")
	assert.Contains(t, summary, "* Dairy | 2 items | 80.00")
	assert.Contains(t, summary, "* Produce | 1 items | 24.50")
}

func TestService_Export_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := export.NewMockReceiptLister(ctrl)
	lister.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	var buf bytes.Buffer

	n, err := export.NewService(lister).Export(context.Background(), uuid.New(), receipt.ListFilter{}, &buf)
	require.NoError(t, err)
	assert.Zero(t, n)

	files := readZip(t, buf.Bytes())
	assert.Equal(t, "receipt_id,purchase_date,store_name,product_name,quantity,unit_price,total_price,category\n",
		files[export.ReceiptsFile])
	assert.Contains(t, files[export.SummaryFile], "BiteBudget export beginning to today")
	assert.NotContains(t, files[export.SummaryFile], "By category")
}

func TestService_Export_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := export.NewMockReceiptLister(ctrl)
	lister.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	var buf bytes.Buffer

	_, err := export.NewService(lister).Export(context.Background(), uuid.New(), receipt.ListFilter{}, &buf)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestFilename(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "bitebudget_20240301_20240331.zip", export.Filename(receipt.ListFilter{From: &from, To: &to}))
	assert.Equal(t, "bitebudget_all_now.zip", export.Filename(receipt.ListFilter{}))
}
