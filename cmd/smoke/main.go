package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8080"
)

var (
	apiBase string
	token   string
	client  = &http.Client{Timeout: 30 * time.Second}
)

type solveResponse struct {
	SolveID    string             `json:"solve_id"`
	Status     string             `json:"status"`
	Cost       *float64           `json:"cost"`
	Quantities map[string]float64 `json:"quantities"`
	Totals     map[string]float64 `json:"totals"`
	Message    string             `json:"message"`
}

func main() {
	fmt.Println("=== Diet Hub E2E Smoke Test ===")
	fmt.Println()

	apiBase = strings.TrimRight(getEnv("API_BASE_URL", defaultAPIBase), "/")
	token = getEnv("SMOKE_TOKEN", "")

	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Printf("Token: %s\n", maskString(token))
	fmt.Println()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Dev Token", testDevToken},
		{"List Foods", testListFoods},
		{"Get Food", testGetFood},
		{"Defaults", testDefaults},
		{"Solve (defaults)", testSolveDefaults},
		{"Solve (exclude Egg)", testSolveExclude},
		{"Solve (infeasible)", testSolveInfeasible},
		{"Solve (invalid bound)", testSolveInvalidBound},
		{"Report (CSV)", testReportCSV},
		{"Report (PDF)", testReportPDF},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	_, err := do("GET", "/healthz", nil, http.StatusOK)
	return err
}

// testDevToken obtains a dev token when SMOKE_TOKEN is not set. A 404 means
// AUTH_MODE is not dev, and the remaining steps run without a token.
func testDevToken() error {
	if token != "" {
		return nil
	}

	req, err := http.NewRequest("POST", apiBase+"/v1/auth/dev", nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	token = out.AccessToken
	return nil
}

func testListFoods() error {
	body, err := do("GET", "/v1/foods", nil, http.StatusOK)
	if err != nil {
		return err
	}

	var out struct {
		Foods []struct {
			Name string `json:"name"`
		} `json:"foods"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(out.Foods) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	return nil
}

func testGetFood() error {
	if _, err := do("GET", "/v1/foods/Egg", nil, http.StatusOK); err != nil {
		return err
	}
	_, err := do("GET", "/v1/foods/NoSuchFood", nil, http.StatusNotFound)
	return err
}

func testDefaults() error {
	body, err := do("GET", "/v1/diet/defaults", nil, http.StatusOK)
	if err != nil {
		return err
	}

	var out struct {
		Requirement map[string]float64 `json:"requirement"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if out.Requirement["energy"] != 400 {
		return fmt.Errorf("energy requirement=%v, want 400", out.Requirement["energy"])
	}
	return nil
}

func testSolveDefaults() error {
	out, err := solve(`{}`)
	if err != nil {
		return err
	}
	return expectCost(out, 1.506854)
}

func testSolveExclude() error {
	out, err := solve(`{"exclude":["Egg"]}`)
	if err != nil {
		return err
	}
	if out.Quantities["Egg"] != 0 {
		return fmt.Errorf("Egg quantity=%v, want 0", out.Quantities["Egg"])
	}
	return expectCost(out, 3.915540)
}

func testSolveInfeasible() error {
	out, err := solve(`{"bounds":{"Egg":0,"Pasta":0}}`)
	if err != nil {
		return err
	}
	if out.Status != "infeasible" {
		return fmt.Errorf("status=%s, want infeasible", out.Status)
	}
	return nil
}

func testSolveInvalidBound() error {
	body, err := do("POST", "/v1/diet/solve", []byte(`{"bounds":{"Egg":-1}}`), http.StatusBadRequest)
	if err != nil {
		return err
	}
	if !bytes.Contains(body, []byte(`"invalid_bound"`)) {
		return fmt.Errorf("unexpected error body: %s", string(body))
	}
	return nil
}

func testReportCSV() error {
	body, err := do("POST", "/v1/diet/report?format=csv", []byte(`{}`), http.StatusOK)
	if err != nil {
		return err
	}
	if !bytes.HasPrefix(body, []byte("food,portions,cost")) {
		return fmt.Errorf("unexpected csv: %.80s", string(body))
	}
	return nil
}

func testReportPDF() error {
	body, err := do("POST", "/v1/diet/report?format=pdf", []byte(`{}`), http.StatusOK)
	if err != nil {
		return err
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		return fmt.Errorf("response is not a PDF (%d bytes)", len(body))
	}
	return nil
}

func solve(payload string) (*solveResponse, error) {
	body, err := do("POST", "/v1/diet/solve", []byte(payload), http.StatusOK)
	if err != nil {
		return nil, err
	}

	var out solveResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if out.SolveID == "" {
		return nil, fmt.Errorf("missing solve_id")
	}
	return &out, nil
}

func expectCost(out *solveResponse, want float64) error {
	if out.Status != "optimal" {
		return fmt.Errorf("status=%s message=%s", out.Status, out.Message)
	}
	if out.Cost == nil || math.Abs(*out.Cost-want) > 1e-4 {
		return fmt.Errorf("cost=%v, want %.6f", out.Cost, want)
	}
	return nil
}

func do(method, path string, payload []byte, wantStatus int) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, apiBase+path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("%s %s: status=%d want=%d body=%.512s", method, path, resp.StatusCode, wantStatus, string(body))
	}
	return body, nil
}

func addAuth(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
