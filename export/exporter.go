// Package export writes CSV snapshots of sale records to a blob store.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	"salestrack/blob"
	"salestrack/models"
)

const exportPrefix = "exports/"

// Exporter serializes sale snapshots and stores them as timestamped CSV
// blobs.
type Exporter struct {
	store blob.Store
	now   func() time.Time
}

// NewExporter creates an exporter over the given blob store
func NewExporter(store blob.Store) *Exporter {
	return &Exporter{store: store, now: time.Now}
}

// Export writes the given sales as a CSV blob and returns its key
func (e *Exporter) Export(ctx context.Context, sales []models.Sale) (blob.Info, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "customerName", "item", "unitPrice", "quantity", "status", "paymentStatus", "saleDate", "contactNumber", "owner", "total"}
	if err := w.Write(header); err != nil {
		return blob.Info{}, fmt.Errorf("write csv header: %w", err)
	}
	for _, sale := range sales {
		record := []string{
			sale.ID,
			sale.CustomerName,
			sale.Item,
			strconv.FormatFloat(sale.UnitPrice, 'f', 2, 64),
			strconv.Itoa(sale.Quantity),
			sale.Status,
			sale.PaymentStatus,
			sale.SaleDate.UTC().Format(time.RFC3339),
			sale.ContactNumber,
			sale.Owner,
			strconv.FormatFloat(sale.Total(), 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return blob.Info{}, fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return blob.Info{}, fmt.Errorf("flush csv: %w", err)
	}

	key := fmt.Sprintf("%ssales-%s.csv", exportPrefix, e.now().UTC().Format("20060102T150405"))
	info, err := e.store.Put(ctx, key, &buf, blob.PutOptions{ContentType: "text/csv"})
	if err != nil {
		return blob.Info{}, fmt.Errorf("store export: %w", err)
	}
	log.Printf("✅ Export: wrote %d sales to %s (%d bytes, driver=%s)", len(sales), info.Key, info.Size, e.store.Driver())
	return info, nil
}
