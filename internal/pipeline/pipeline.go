// Package pipeline implements the tick-staging primitives shared by the
// control-plane components.
//
// Every component advances once per tick and publishes registered
// outputs. Producers have different, statically known latencies, so a
// consumer that combines several of them must pad the faster branches
// explicitly; Plan computes that padding and Delay applies it.
package pipeline

import (
	"errors"
	"fmt"
)

// Stage is the contract every tick-driven component satisfies.
type Stage interface {
	// Reset forces every state element to its documented default.
	Reset()

	// GetLatency returns the number of ticks between an input being
	// presented and its effect being visible on the registered outputs.
	GetLatency() int
}

// ErrInvalidBranch indicates a malformed latency plan.
var ErrInvalidBranch = errors.New("invalid pipeline branch")

// Branch names one producer feeding a combining consumer.
type Branch struct {
	Name    string
	Latency int
}

// Plan aligns several producer branches to the slowest one.
type Plan struct {
	branches     []Branch
	totalLatency int
}

// BuildPlan constructs a plan for the given branches.
// The total latency is the maximum branch latency; every other branch
// must be delayed by the difference.
func BuildPlan(branches ...Branch) (*Plan, error) {
	if len(branches) == 0 {
		return nil, fmt.Errorf("%w: no branches", ErrInvalidBranch)
	}

	p := &Plan{
		branches: make([]Branch, 0, max(defaultPlanCapacity, len(branches))),
	}

	seen := make(map[string]bool, len(branches))
	for _, b := range branches {
		if b.Name == "" {
			return nil, fmt.Errorf("%w: empty branch name", ErrInvalidBranch)
		}
		if seen[b.Name] {
			return nil, fmt.Errorf("%w: duplicate branch %q", ErrInvalidBranch, b.Name)
		}
		if b.Latency < minLatency || b.Latency > maxLatency {
			return nil, fmt.Errorf("%w: branch %q latency %d out of range [%d, %d]",
				ErrInvalidBranch, b.Name, b.Latency, minLatency, maxLatency)
		}
		seen[b.Name] = true
		p.branches = append(p.branches, b)
	}

	p.calculateLatency()

	return p, nil
}

// calculateLatency computes the aligned latency of the plan.
func (p *Plan) calculateLatency() {
	total := 0
	for _, b := range p.branches {
		total = max(total, b.Latency)
	}
	p.totalLatency = total
}

// GetBranches returns the plan branches in declaration order.
func (p *Plan) GetBranches() []Branch {
	return p.branches
}

// GetTotalLatency returns the aligned latency in ticks.
func (p *Plan) GetTotalLatency() int {
	return p.totalLatency
}

// Padding returns the delay that must be inserted after the named branch.
// Unknown branches return -1.
func (p *Plan) Padding(name string) int {
	for _, b := range p.branches {
		if b.Name == name {
			return p.totalLatency - b.Latency
		}
	}
	return -1
}
