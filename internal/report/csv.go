package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/fdg312/diet-hub/internal/diet"
)

// CSV writes food,portions,cost rows and a closing total row. Results without
// a diet are written as a one-row status,message table.
func CSV(sol *diet.Solution) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if !sol.IsOptimal() {
		if err := w.Write([]string{"status", "message"}); err != nil {
			return nil, err
		}
		if err := w.Write([]string{string(sol.Status), sol.Message}); err != nil {
			return nil, err
		}
	} else {
		if err := w.Write([]string{"food", "portions", "cost"}); err != nil {
			return nil, err
		}
		for _, a := range sol.Allocations {
			if err := w.Write([]string{a.Food, formatFloat(a.Quantity), formatFloat(a.Cost)}); err != nil {
				return nil, err
			}
		}
		if err := w.Write([]string{"total", "", formatFloat(sol.Cost)}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
