package filter

import (
	"runtime"
	"sync"

	"ndfilter/pkg/raster"
)

// splitDomain cuts a box into at most n contiguous chunks along its
// slowest-varying (last) axis. Chunks partition the box exactly, so
// concurrent writers touch disjoint output slots.
func splitDomain(domain raster.Box, n int) []raster.Box {
	if domain.IsEmpty() || n < 1 {
		return nil
	}
	last := domain.Rank() - 1
	extent := domain.Stop[last] - domain.Start[last]
	if n > extent {
		n = extent
	}
	per := (extent + n - 1) / n

	var chunks []raster.Box
	for start := domain.Start[last]; start < domain.Stop[last]; start += per {
		chunk := raster.Box{Start: domain.Start.Clone(), Stop: domain.Stop.Clone()}
		chunk.Start[last] = start
		chunk.Stop[last] = min(start+per, domain.Stop[last])
		chunks = append(chunks, chunk)
	}
	return chunks
}

// parallelFor runs body over chunks of the domain, one goroutine per chunk.
// Iteration order across positions is unspecified between chunks; bodies
// must only read shared input and write disjoint output slots. workers <= 0
// uses all available cores.
func parallelFor(domain raster.Box, workers int, body func(chunk raster.Box)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunks := splitDomain(domain, workers)
	if len(chunks) <= 1 {
		if len(chunks) == 1 {
			body(chunks[0])
		}
		return
	}

	var wg sync.WaitGroup
	for _, chunk := range chunks {
		wg.Add(1)
		go func(c raster.Box) {
			defer wg.Done()
			body(c)
		}(chunk)
	}
	wg.Wait()
}
