package warmer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
)

// ProductFetcher is the slice of the catalog service the warmer needs;
// fetching through it primes the catalog cache.
type ProductFetcher interface {
	ProductByHandle(ctx context.Context, handle string) (*domain.Product, error)
}

// CSVWarmer reads a CSV of product handles and fetches each product so the
// catalog cache is warm before traffic arrives.
type CSVWarmer struct {
	reader  *csv.Reader
	catalog ProductFetcher
	logger  *log.Logger
}

func NewCSVWarmer(r io.Reader, catalog ProductFetcher, logger *log.Logger) *CSVWarmer {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVWarmer{
		reader:  csvr,
		catalog: catalog,
		logger:  logger,
	}
}

// Run fetches every handle listed in the CSV and returns the number of
// products warmed. Unknown handles are logged and skipped; a platform
// failure aborts the run.
func (w *CSVWarmer) Run(ctx context.Context) (int, error) {
	headers, err := w.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	col := handleColumn(headers)
	if col < 0 {
		return 0, errors.New("no handle column in header row")
	}

	warmed := 0
	for {
		record, err := w.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return warmed, fmt.Errorf("read row: %w", err)
		}
		if col >= len(record) {
			continue
		}
		handle := strings.TrimSpace(record[col])
		if handle == "" {
			continue
		}

		if _, err := w.catalog.ProductByHandle(ctx, handle); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				w.logger.Printf("warmer: product %q not found, skipping", handle)
				continue
			}
			return warmed, fmt.Errorf("fetch product %q: %w", handle, err)
		}
		warmed++
	}

	return warmed, nil
}

func handleColumn(headers []string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), "handle") {
			return i
		}
	}
	return -1
}
