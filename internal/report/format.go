// Package report renders diet solutions as text, CSV, PDF or JSON.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fdg312/diet-hub/internal/catalog"
	"github.com/fdg312/diet-hub/internal/diet"
)

type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat accepts text|csv|pdf|json, case-insensitively. "" means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatCSV, FormatPDF, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func ContentType(f Format) string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension for f, without the dot.
func Extension(f Format) string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Render writes sol in the given format.
func Render(w io.Writer, f Format, sol *diet.Solution, req diet.Requirement) error {
	switch f {
	case FormatText:
		return Text(w, sol, req)
	case FormatCSV:
		data, err := CSV(sol)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatPDF:
		data, err := PDF(sol, req)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		data, err := JSON(sol, req)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Bytes renders sol into memory.
func Bytes(f Format, sol *diet.Solution, req diet.Requirement) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, f, sol, req); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type jsonAllocation struct {
	Food     string  `json:"food"`
	Portions float64 `json:"portions"`
	Cost     float64 `json:"cost"`
}

type jsonNutrient struct {
	Nutrient string   `json:"nutrient"`
	Unit     string   `json:"unit,omitempty"`
	Total    float64  `json:"total"`
	Required *float64 `json:"required,omitempty"`
}

type jsonReport struct {
	Status      diet.Status      `json:"status"`
	Engine      string           `json:"engine,omitempty"`
	Cost        *float64         `json:"cost,omitempty"`
	Allocations []jsonAllocation `json:"allocations,omitempty"`
	Nutrients   []jsonNutrient   `json:"nutrients,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// JSON renders the same sections as Text as an indented document.
func JSON(sol *diet.Solution, req diet.Requirement) ([]byte, error) {
	doc := jsonReport{Status: sol.Status, Engine: sol.Engine, Message: sol.Message}
	if sol.IsOptimal() {
		cost := sol.Cost
		doc.Cost = &cost
		for _, a := range sol.Allocations {
			doc.Allocations = append(doc.Allocations, jsonAllocation{Food: a.Food, Portions: a.Quantity, Cost: a.Cost})
		}
		for _, n := range orderedNutrients(sol.Totals, req) {
			row := jsonNutrient{Nutrient: string(n), Unit: n.Unit(), Total: sol.Totals[n]}
			if v, ok := req[n]; ok {
				row.Required = &v
			}
			doc.Nutrients = append(doc.Nutrients, row)
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

var builtinNutrients = []catalog.Nutrient{catalog.Protein, catalog.Carbohydrate, catalog.Lipid, catalog.Energy}

// orderedNutrients lists nutrients from totals and req, builtin ones first.
func orderedNutrients(totals map[catalog.Nutrient]float64, req diet.Requirement) []catalog.Nutrient {
	seen := make(map[catalog.Nutrient]bool)
	for n := range totals {
		seen[n] = true
	}
	for n := range req {
		seen[n] = true
	}

	var out []catalog.Nutrient
	for _, n := range builtinNutrients {
		if seen[n] {
			out = append(out, n)
			delete(seen, n)
		}
	}
	rest := make([]catalog.Nutrient, 0, len(seen))
	for n := range seen {
		rest = append(rest, n)
	}
	slices.Sort(rest)
	return append(out, rest...)
}

// statusLine is the single line printed for results without a diet.
func statusLine(sol *diet.Solution) string {
	switch sol.Status {
	case diet.StatusInfeasible:
		return "No feasible diet: " + sol.Message
	case diet.StatusUnbounded:
		return "Unbounded problem: " + sol.Message
	default:
		return "Solver error: " + sol.Message
	}
}

func nutrientLabel(n catalog.Nutrient) string {
	if u := n.Unit(); u != "" {
		return fmt.Sprintf("%s (%s)", n, u)
	}
	return string(n)
}
