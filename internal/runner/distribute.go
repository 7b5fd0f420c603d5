package runner

import (
	"log/slog"
	"slices"
	"sort"

	"github.com/AndreyAkinshin/dist/internal/logging"
)

// Placement pairs one build target with the runner chosen for it.
type Placement struct {
	Target string
	Runner Runner
}

// Assignment is one build job: a runner and the targets it builds.
type Assignment struct {
	Runner  Runner
	Targets []string
}

// Canonicalize returns targets sorted lexicographically with duplicates removed.
// The input slice is not modified.
func Canonicalize(targets []string) []string {
	out := slices.Clone(targets)
	sort.Strings(out)
	return slices.Compact(out)
}

// Resolve places every target on a runner. Targets that ForTarget cannot
// classify are placed on Fallback, and a warning naming the target and the
// fallback runner is logged. The result preserves the order of targets.
// A nil logger discards the warning.
func Resolve(targets []string, logger *slog.Logger) []Placement {
	if logger == nil {
		logger = logging.Discard()
	}
	placements := make([]Placement, 0, len(targets))
	for _, target := range targets {
		r, ok := ForTarget(target)
		if !ok {
			r = Fallback
			logger.Warn("not sure which github runner should be used for target, assuming fallback",
				"target", target,
				"runner", r.String(),
			)
		}
		placements = append(placements, Placement{Target: target, Runner: r})
	}
	return placements
}

// Merge groups placements so that each runner gets a single job building
// all of its targets.
//
// This optimizes for machine-hours at the cost of latency and fault
// isolation. Both macOS targets usually land on the same runner, so the
// release is bottlenecked on two sequential macOS builds, and one of them
// cannot fail while the other succeeds and uploads.
//
// Assignments are ordered by runner label; targets keep their input order.
func Merge(placements []Placement) []Assignment {
	groups := make(map[Runner][]string)
	for _, p := range placements {
		groups[p.Runner] = append(groups[p.Runner], p.Target)
	}

	runners := make([]Runner, 0, len(groups))
	for r := range groups {
		runners = append(runners, r)
	}
	sort.Slice(runners, func(i, j int) bool {
		return runners[i].String() < runners[j].String()
	})

	assignments := make([]Assignment, 0, len(runners))
	for _, r := range runners {
		assignments = append(assignments, Assignment{Runner: r, Targets: groups[r]})
	}
	return assignments
}

// Split gives every placement its own job, even when several targets share
// a runner, trading duplicated setup for latency and fault isolation.
// Assignments keep the input order.
func Split(placements []Placement) []Assignment {
	assignments := make([]Assignment, 0, len(placements))
	for _, p := range placements {
		assignments = append(assignments, Assignment{Runner: p.Runner, Targets: []string{p.Target}})
	}
	return assignments
}

// Distribute canonicalizes targets, resolves each to a runner, and packs
// the result with Merge when merge is true and Split otherwise.
func Distribute(targets []string, merge bool, logger *slog.Logger) []Assignment {
	placements := Resolve(Canonicalize(targets), logger)
	if merge {
		return Merge(placements)
	}
	return Split(placements)
}
