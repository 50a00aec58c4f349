package engine

import (
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/rollcut/internal/model"
)

// GeneticConfig holds parameters for the genetic search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// chromosome represents a candidate solution: an ordering of demand units
// that the decoder folds into cutting patterns first-fit.
type chromosome struct {
	order   []int // permutation of demand unit indices
	fitness float64
}

// geneticSearch runs the genetic algorithm for a single specification group.
type geneticSearch struct {
	opt    *Optimizer
	g      *planGroup
	config GeneticConfig
	units  []decimal.Decimal // one entry per leftover demand unit
	rng    *rand.Rand
}

// decodeOutcome is one chromosome decoded into executed patterns plus the
// block marks and unit count its rejected closures left behind.
type decodeOutcome struct {
	patterns     []model.Pattern
	classes      []model.TrimClass
	trimBlocked  map[string]bool
	confBlocked  map[string]bool
	pendingUnits int
}

// searchGenetic runs the genetic search over a group's leftover demand and
// commits the best plan found. The RNG seed derives from the configured
// base seed and the group key, so concurrent group scheduling cannot
// perturb the result.
func (o *Optimizer) searchGenetic(g *planGroup, res *groupResult) {
	var units []decimal.Decimal
	for _, line := range g.demand {
		if line.infeasible {
			continue
		}
		for n := 0; n < line.remaining; n++ {
			units = append(units, line.width)
		}
	}
	if len(units) == 0 {
		return
	}

	config := DefaultGeneticConfig()

	// Scale generations for larger problems
	if len(units) > 20 {
		config.Generations = 150
	}
	if len(units) > 50 {
		config.Generations = 200
		config.PopulationSize = 80
	}

	gs := &geneticSearch{
		opt:    o,
		g:      g,
		config: config,
		units:  units,
		rng:    rand.New(rand.NewSource(groupSeed(o.Settings.GeneticSeed, g.spec))),
	}
	out := gs.optimize()

	for key := range out.trimBlocked {
		g.blockedTrim[key] = true
	}
	for key := range out.confBlocked {
		g.blockedConf[key] = true
	}
	unitsLeft := remainingUnits(g)
	for i, p := range out.patterns {
		o.executePattern(g, p, out.classes[i], unitsLeft, res)
	}
}

// groupSeed derives a per-group RNG seed from the base seed and group key.
func groupSeed(base int64, spec model.Specification) int64 {
	h := fnv.New64a()
	h.Write([]byte(spec.Key()))
	return base ^ int64(h.Sum64())
}

// optimize runs the genetic algorithm and returns the best decoded outcome.
func (gs *geneticSearch) optimize() decodeOutcome {
	// Initialize population
	population := gs.initPopulation()

	// Evaluate initial population
	for i := range population {
		population[i].fitness = gs.evaluate(population[i])
	}

	// Evolution loop
	for gen := 0; gen < gs.config.Generations; gen++ {
		// Sort by fitness descending (higher is better)
		sort.Slice(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		newPop := make([]chromosome, 0, gs.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		eliteCount := gs.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, gs.copyChromosome(population[i]))
		}

		// Fill rest of population with offspring
		for len(newPop) < gs.config.PopulationSize {
			parent1 := gs.tournamentSelect(population)
			parent2 := gs.tournamentSelect(population)

			child := gs.orderCrossover(parent1, parent2)

			gs.mutate(&child)

			child.fitness = gs.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	// Find best individual
	sort.Slice(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})

	return gs.decode(population[0])
}

// initPopulation creates the initial random population.
func (gs *geneticSearch) initPopulation() []chromosome {
	n := len(gs.units)
	population := make([]chromosome, gs.config.PopulationSize)

	for i := range population {
		population[i] = chromosome{order: gs.rng.Perm(n)}
	}

	// Also seed one chromosome with the greedy order (widest units first)
	// to give the GA a good starting point
	if gs.config.PopulationSize > 0 {
		population[0] = gs.createGreedyChromosome()
	}

	return population
}

// createGreedyChromosome orders units by width descending (mimics the
// greedy heuristic's preference for wide rolls first).
func (gs *geneticSearch) createGreedyChromosome() chromosome {
	n := len(gs.units)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return gs.units[order[i]].Cmp(gs.units[order[j]]) > 0
	})
	return chromosome{order: order}
}

// evaluate computes the fitness of a chromosome by decoding it into
// patterns and measuring source roll utilization.
func (gs *geneticSearch) evaluate(c chromosome) float64 {
	out := gs.decode(c)

	if len(out.patterns) == 0 {
		return 0
	}

	used := decimal.Zero
	total := decimal.Zero
	for _, p := range out.patterns {
		used = used.Add(p.UsedWidth())
		total = total.Add(gs.opt.Settings.SourceRollWidth)
	}
	if total.Sign() == 0 {
		return 0
	}
	utilization, _ := used.Div(total).Float64()

	// Penalize unfulfilled units heavily
	pendingPenalty := float64(out.pendingUnits) * 0.1
	// Penalize consuming more source rolls
	rollPenalty := float64(len(out.patterns)-1) * 0.05

	fitness := utilization - pendingPenalty - rollPenalty
	if fitness < 0 {
		fitness = 0
	}
	return fitness
}

// decode converts a chromosome into patterns by sweeping the unit ordering
// first-fit: each pass fills one source roll with whatever fits in order,
// then the closure is classified exactly like a greedy candidate. Rejected
// closures surrender their units instead of consuming a source roll.
func (gs *geneticSearch) decode(c chromosome) decodeOutcome {
	out := decodeOutcome{
		trimBlocked: make(map[string]bool),
		confBlocked: make(map[string]bool),
	}
	settings := gs.opt.Settings

	remaining := make([]int, len(c.order))
	copy(remaining, c.order)

	for len(remaining) > 0 {
		var widths []decimal.Decimal
		used := decimal.Zero
		var unpacked []int

		for _, idx := range remaining {
			w := gs.units[idx]
			if len(widths) < settings.MaxRollsPerSourceRoll {
				if total := used.Add(w); total.Cmp(settings.SourceRollWidth) <= 0 {
					widths = append(widths, w)
					used = total
					continue
				}
			}
			unpacked = append(unpacked, idx)
		}
		if len(widths) == 0 {
			out.pendingUnits += len(remaining)
			break
		}

		// Keep widths descending so equal multisets produce identical patterns.
		sort.Slice(widths, func(i, j int) bool {
			return widths[i].Cmp(widths[j]) > 0
		})
		p := model.Pattern{
			Spec:   gs.g.spec,
			Widths: widths,
			Trim:   settings.SourceRollWidth.Sub(used),
		}

		class := model.ClassifyTrim(p.Trim, settings)
		switch {
		case class == model.TrimExcessive:
			for _, w := range widths {
				out.trimBlocked[w.String()] = true
			}
			out.pendingUnits += len(widths)
		case class == model.TrimConfirm && !gs.opt.confirmTrim(gs.g, p.Trim):
			for _, w := range widths {
				out.confBlocked[w.String()] = true
			}
			out.pendingUnits += len(widths)
		default:
			out.patterns = append(out.patterns, p)
			out.classes = append(out.classes, class)
		}

		remaining = unpacked
	}

	return out
}

// tournamentSelect picks the best individual from a random tournament.
func (gs *geneticSearch) tournamentSelect(population []chromosome) chromosome {
	best := population[gs.rng.Intn(len(population))]
	for i := 1; i < gs.config.TournamentSize; i++ {
		candidate := population[gs.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return gs.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of units from both parents.
func (gs *geneticSearch) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.order)
	if n <= 2 {
		return gs.copyChromosome(parent1)
	}

	// Select two random crossover points
	point1 := gs.rng.Intn(n)
	point2 := gs.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{order: make([]int, n)}

	// Copy segment from parent1
	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.order[i] = parent1.order[i]
		inSegment[parent1.order[i]] = true
	}

	// Fill remaining positions with units from parent2 in order
	childIdx := (point2 + 1) % n
	for _, unit := range parent2.order {
		if !inSegment[unit] {
			child.order[childIdx] = unit
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies random mutations to a chromosome.
func (gs *geneticSearch) mutate(c *chromosome) {
	n := len(c.order)
	if n < 2 {
		return
	}

	// Swap mutation: swap two random positions
	if gs.rng.Float64() < gs.config.MutationRate {
		i := gs.rng.Intn(n)
		j := gs.rng.Intn(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
	}

	// Inversion mutation: reverse a small segment (less frequent)
	if gs.rng.Float64() < gs.config.MutationRate*0.5 {
		i := gs.rng.Intn(n)
		j := gs.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.order[i], c.order[j] = c.order[j], c.order[i]
			i++
			j--
		}
	}
}

// copyChromosome creates a deep copy of a chromosome.
func (gs *geneticSearch) copyChromosome(c chromosome) chromosome {
	order := make([]int, len(c.order))
	copy(order, c.order)
	return chromosome{order: order, fitness: c.fitness}
}
