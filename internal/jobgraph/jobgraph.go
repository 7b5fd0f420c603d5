// Package jobgraph orders CI workflow jobs by their "needs" dependencies.
package jobgraph

import (
	"fmt"
	"slices"
)

// Graph maps a job id to the ids of the jobs it needs.
type Graph map[string][]string

// Jobs returns the job ids in sorted order.
func (g Graph) Jobs() []string {
	jobs := make([]string, 0, len(g))
	for id := range g {
		jobs = append(jobs, id)
	}
	slices.Sort(jobs)
	return jobs
}

// Order returns the jobs so that every job appears after the jobs it needs.
// Jobs are visited in sorted order and needs in declaration order, so the
// result is deterministic.
func Order(g Graph) ([]string, error) {
	var order []string
	done := make(map[string]bool)
	active := make(map[string]bool)

	var visit func(id string) error
	visit = func(id string) error {
		if active[id] {
			return fmt.Errorf("circular needs involving job %q", id)
		}
		if done[id] {
			return nil
		}
		needs, ok := g[id]
		if !ok {
			return fmt.Errorf("job %q is not defined", id)
		}

		active[id] = true
		for _, dep := range needs {
			if err := visit(dep); err != nil {
				return err
			}
		}
		active[id] = false
		done[id] = true
		order = append(order, id)
		return nil
	}

	for _, id := range g.Jobs() {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Stages groups the jobs by how many jobs must finish before they can start.
// Jobs in one stage may run concurrently; each stage is sorted.
func Stages(g Graph) ([][]string, error) {
	order, err := Order(g)
	if err != nil {
		return nil, err
	}

	depth := make(map[string]int, len(order))
	var stages [][]string
	for _, id := range order {
		d := 0
		for _, dep := range g[id] {
			d = max(d, depth[dep]+1)
		}
		depth[id] = d
		if d == len(stages) {
			stages = append(stages, nil)
		}
		stages[d] = append(stages[d], id)
	}
	for _, s := range stages {
		slices.Sort(s)
	}
	return stages, nil
}

// Validate checks that no job needs itself, every needed job is defined,
// and the needs contain no cycle.
func Validate(g Graph) error {
	for _, id := range g.Jobs() {
		for _, dep := range g[id] {
			if dep == id {
				return fmt.Errorf("job %q needs itself", id)
			}
			if _, ok := g[dep]; !ok {
				return fmt.Errorf("job %q needs undefined job %q", id, dep)
			}
		}
	}
	_, err := Order(g)
	return err
}
