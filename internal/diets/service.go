package diets

import (
	"context"
	"log"

	"github.com/fdg312/diet-hub/internal/catalog"
	"github.com/fdg312/diet-hub/internal/diet"
	"github.com/fdg312/diet-hub/internal/userctx"
	"github.com/google/uuid"
)

// Result — решение вместе с эффективными входными данными
type Result struct {
	SolveID     uuid.UUID
	Solution    *diet.Solution
	Requirement diet.Requirement
	Bounds      diet.Bounds
}

// Service содержит бизнес-логику подбора рациона
type Service struct {
	solver   *diet.Solver
	maxBound float64
}

// NewService создаёт сервис; maxBound <= 0 означает diet.DefaultMaxBound
func NewService(solver *diet.Solver, maxBound float64) *Service {
	if maxBound <= 0 {
		maxBound = diet.DefaultMaxBound
	}
	return &Service{solver: solver, maxBound: maxBound}
}

// Defaults возвращает требования и ограничения по умолчанию
func (s *Service) Defaults() DefaultsResponse {
	cat := s.solver.Catalog()

	resp := DefaultsResponse{
		Requirement: fromRequirement(diet.DefaultRequirement()),
		Bounds:      s.defaultBounds(),
		MaxBound:    s.maxBound,
		Step:        diet.BoundStep,
		Engine:      s.solver.EngineName(),
	}
	for _, n := range cat.Nutrients() {
		resp.Nutrients = append(resp.Nutrients, NutrientDTO{Name: string(n), Unit: n.Unit()})
	}
	return resp
}

// Solve подставляет значения по умолчанию, применяет exclude и решает задачу.
// Ошибка возвращается только для некорректных входных данных.
func (s *Service) Solve(ctx context.Context, req SolveRequest) (*Result, error) {
	requirement := diet.DefaultRequirement()
	if req.Requirement != nil {
		requirement = toRequirement(req.Requirement)
	}

	bounds := diet.UniformBounds(s.solver.Catalog(), s.maxBound)
	if req.Bounds != nil {
		bounds = diet.Bounds(req.Bounds)
	}
	if len(req.Exclude) > 0 {
		var err error
		bounds, err = diet.Exclude(s.solver.Catalog(), bounds, req.Exclude...)
		if err != nil {
			return nil, err
		}
	}

	solveID := uuid.New()
	caller := userctx.CallerName(ctx)
	sol, err := s.solver.Solve(ctx, requirement, bounds)
	if err != nil {
		log.Printf("WARN diet: solve_id=%s caller=%s rejected: %v", solveID, caller, err)
		return nil, err
	}

	if sol.IsOptimal() {
		log.Printf("INFO diet: solve_id=%s caller=%s status=%s cost=%.2f engine=%s iterations=%d",
			solveID, caller, sol.Status, sol.Cost, sol.Engine, sol.Iterations)
	} else {
		log.Printf("INFO diet: solve_id=%s caller=%s status=%s engine=%s message=%q",
			solveID, caller, sol.Status, sol.Engine, sol.Message)
	}

	return &Result{
		SolveID:     solveID,
		Solution:    sol,
		Requirement: requirement,
		Bounds:      bounds,
	}, nil
}

func (s *Service) defaultBounds() map[string]float64 {
	return map[string]float64(diet.UniformBounds(s.solver.Catalog(), s.maxBound))
}

func toResponse(res *Result) SolveResponse {
	sol := res.Solution
	resp := SolveResponse{
		SolveID:     res.SolveID.String(),
		Status:      string(sol.Status),
		Requirement: fromRequirement(res.Requirement),
		Engine:      sol.Engine,
		Iterations:  sol.Iterations,
		Message:     sol.Message,
	}
	if !sol.IsOptimal() {
		return resp
	}

	cost := sol.Cost
	resp.Cost = &cost
	resp.Quantities = sol.Quantities
	resp.Allocations = make([]AllocationDTO, 0, len(sol.Allocations))
	for _, a := range sol.Allocations {
		resp.Allocations = append(resp.Allocations, AllocationDTO{Food: a.Food, Quantity: a.Quantity, Cost: a.Cost})
	}
	resp.Totals = make(map[string]float64, len(sol.Totals))
	for n, v := range sol.Totals {
		resp.Totals[string(n)] = v
	}
	return resp
}

func toRequirement(m map[string]float64) diet.Requirement {
	req := make(diet.Requirement, len(m))
	for k, v := range m {
		req[catalog.Nutrient(k)] = v
	}
	return req
}

func fromRequirement(req diet.Requirement) map[string]float64 {
	m := make(map[string]float64, len(req))
	for k, v := range req {
		m[string(k)] = v
	}
	return m
}
