package document

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"spendly/internal/model"
)

func (p *implParser) parseBankCSV(ctx context.Context, path string) (model.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer f.Close()

	return p.readBankCSV(ctx, f)
}

func (p *implParser) readBankCSV(ctx context.Context, r io.Reader) (model.Snapshot, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: read header: %v", ErrParse, err)
	}
	cols := indexHeader(header)

	snap := model.Snapshot{Transactions: []model.Transaction{}}
	lookups := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				p.l.Warnf(ctx, "document.readBankCSV: skip line %d: %v", perr.Line, perr.Err)
				continue
			}
			return model.Snapshot{}, fmt.Errorf("%w: %v", ErrParse, err)
		}

		amountStr := cols.value(record, amountHeaders)
		if amountStr == "" {
			amountStr = "0"
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
			continue
		}

		desc := cols.value(record, descriptionHeaders)
		snap.Transactions = append(snap.Transactions, model.Transaction{
			Date:     cols.value(record, dateHeaders),
			Desc:     desc,
			Amount:   amount,
			Category: p.categorise(ctx, desc, amount, &lookups),
		})
		if amount > 0 {
			snap.Income += amount
		}
	}

	snap.EmergencyFund = max(0, snap.Income) * emergencyFundShare
	return snap, nil
}

type headerIndex map[string]int

func indexHeader(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

// value returns the first non-empty cell among the aliased columns.
func (h headerIndex) value(record []string, aliases []string) string {
	for _, name := range aliases {
		i, ok := h[name]
		if !ok || i >= len(record) {
			continue
		}
		if v := strings.TrimSpace(record[i]); v != "" {
			return v
		}
	}
	return ""
}
