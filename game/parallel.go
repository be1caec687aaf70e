package game

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/pthm-cable/lotka/systems"
)

// phaseKind selects which species rule a work chunk runs.
type phaseKind uint8

const (
	phasePredators phaseKind = iota
	phasePrey
)

// workChunk is a range of snapshot cells for one worker.
type workChunk struct {
	phase phaseKind
	cells []int
	index *systems.PreyIndex
}

// workerPool runs phase evaluations across persistent workers.
//
// Safety model: before evaluating an organism, the worker locks the
// organism's site and its whole Moore neighborhood in ascending site
// order (ascending order keeps overlapping neighborhoods deadlock-free).
// Every site an evaluation can write - the origin, a hunted prey
// neighbor, an empty neighbor receiving offspring or a move - lies
// inside that locked set, so no two workers ever mutate the same site
// and a hunting read-then-clear is atomic. Each worker draws from its
// own generator.
type workerPool struct {
	grid    *systems.Grid
	workers int

	locks     []sync.Mutex
	lockOrder [][]int // per site: sorted, deduplicated {site} + neighbors

	rngs    []*rand.Rand
	tallies []tally

	workChan chan workChunk
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func newWorkerPool(grid *systems.Grid, workers int, seedRng *rand.Rand) *workerPool {
	p := &workerPool{
		grid:      grid,
		workers:   workers,
		locks:     make([]sync.Mutex, grid.Len()),
		lockOrder: make([][]int, grid.Len()),
		rngs:      make([]*rand.Rand, workers),
		tallies:   make([]tally, workers),
		workChan:  make(chan workChunk),
		stopChan:  make(chan struct{}),
	}

	for idx := 0; idx < grid.Len(); idx++ {
		set := append([]int{idx}, grid.Neighbors(idx)...)
		sort.Ints(set)
		// Degenerate grids alias neighbors onto each other; a double
		// lock on the same mutex would deadlock.
		uniq := set[:1]
		for _, n := range set[1:] {
			if n != uniq[len(uniq)-1] {
				uniq = append(uniq, n)
			}
		}
		p.lockOrder[idx] = uniq
	}

	for i := 0; i < workers; i++ {
		p.rngs[i] = rand.New(rand.NewSource(seedRng.Int63()))
		go p.worker(i)
	}

	return p
}

// runPhase splits cells across the workers and blocks until every
// evaluation in the phase has completed. Within a phase the relative
// order of organisms in different chunks is scheduling-dependent; the
// outcome differences are statistical, not structural.
func (p *workerPool) runPhase(phase phaseKind, cells []int, index *systems.PreyIndex) tally {
	for i := range p.tallies {
		p.tallies[i] = tally{}
	}

	chunkSize := (len(cells) + p.workers - 1) / p.workers
	for start := 0; start < len(cells); start += chunkSize {
		end := start + chunkSize
		if end > len(cells) {
			end = len(cells)
		}
		p.wg.Add(1)
		p.workChan <- workChunk{phase: phase, cells: cells[start:end], index: index}
	}
	p.wg.Wait()

	var total tally
	for i := range p.tallies {
		total.add(p.tallies[i])
	}
	return total
}

func (p *workerPool) stop() {
	close(p.stopChan)
}

func (p *workerPool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			return
		case chunk := <-p.workChan:
			p.runChunk(id, chunk)
			p.wg.Done()
		}
	}
}

func (p *workerPool) runChunk(worker int, c workChunk) {
	rng := p.rngs[worker]
	t := &p.tallies[worker]

	for _, idx := range c.cells {
		order := p.lockOrder[idx]
		for _, l := range order {
			p.locks[l].Lock()
		}
		evaluate(p.grid, c.phase, idx, c.index, rng, t)
		for i := len(order) - 1; i >= 0; i-- {
			p.locks[order[i]].Unlock()
		}
	}
}
