package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fdg312/diet-hub/internal/catalog"
	"github.com/fdg312/diet-hub/internal/diet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optimalSolution(t *testing.T) *diet.Solution {
	t.Helper()
	cat := catalog.Default()
	sol, err := diet.Solve(context.Background(), cat, diet.DefaultRequirement(), diet.DefaultBounds(cat))
	require.NoError(t, err)
	require.True(t, sol.IsOptimal())
	return sol
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, optimalSolution(t), diet.DefaultRequirement()))

	out := buf.String()
	assert.Contains(t, out, "FOOD")
	assert.Regexp(t, `Pasta\s+0\.82\s+0\.66`, out)
	assert.Regexp(t, `Egg\s+0\.53\s+0\.85`, out)
	assert.Regexp(t, `TOTAL\s+1\.51`, out)
	assert.Regexp(t, `protein \(g\)\s+\d+\.\d\s+15\.0`, out)
	assert.Regexp(t, `energy \(kcal\)\s+\d+\.\d\s+400\.0`, out)
	assert.NotContains(t, out, "Chicken")
}

func TestTextNonOptimal(t *testing.T) {
	var infeasible, failed bytes.Buffer
	require.NoError(t, Text(&infeasible, &diet.Solution{Status: diet.StatusInfeasible, Message: "nothing fits"}, nil))
	require.NoError(t, Text(&failed, &diet.Solution{Status: diet.StatusError, Message: "breakdown"}, nil))

	assert.Equal(t, "No feasible diet: nothing fits\n", infeasible.String())
	assert.Equal(t, "Solver error: breakdown\n", failed.String())
}

func TestCSV(t *testing.T) {
	data, err := CSV(optimalSolution(t))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"food", "portions", "cost"}, records[0])
	assert.Equal(t, "Pasta", records[1][0])
	assert.Equal(t, "Egg", records[2][0])
	assert.Equal(t, []string{"total", "", "1.5069"}, records[3])
}

func TestCSVInfeasible(t *testing.T) {
	data, err := CSV(&diet.Solution{Status: diet.StatusInfeasible, Message: "nothing fits"})
	require.NoError(t, err)
	assert.Equal(t, "status,message\ninfeasible,nothing fits\n", string(data))
}

func TestPDF(t *testing.T) {
	data, err := PDF(optimalSolution(t), diet.DefaultRequirement())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	data, err = PDF(&diet.Solution{Status: diet.StatusInfeasible, Message: "nothing fits"}, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestJSON(t *testing.T) {
	data, err := JSON(optimalSolution(t), diet.DefaultRequirement())
	require.NoError(t, err)

	var doc struct {
		Status      string  `json:"status"`
		Cost        float64 `json:"cost"`
		Allocations []struct {
			Food string `json:"food"`
		} `json:"allocations"`
		Nutrients []struct {
			Nutrient string   `json:"nutrient"`
			Required *float64 `json:"required"`
		} `json:"nutrients"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "optimal", doc.Status)
	assert.InDelta(t, 1.506854, doc.Cost, 1e-6)
	require.Len(t, doc.Allocations, 2)
	require.Len(t, doc.Nutrients, 4)
	assert.Equal(t, "protein", doc.Nutrients[0].Nutrient)
	require.NotNil(t, doc.Nutrients[0].Required)
	assert.Equal(t, 15.0, *doc.Nutrients[0].Required)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "csv": FormatCSV, " pdf ": FormatPDF, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xlsx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType(FormatPDF))
	assert.True(t, strings.HasPrefix(ContentType(FormatCSV), "text/csv"))
	assert.True(t, strings.HasPrefix(ContentType(FormatText), "text/plain"))
	assert.Equal(t, "txt", Extension(FormatText))
}

func TestBytesUnknownFormat(t *testing.T) {
	_, err := Bytes("xlsx", optimalSolution(t), nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
