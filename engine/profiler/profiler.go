package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-bog/common"
)

// Sample is the cost of one import stage.
type Sample struct {
	Stage    string
	Duration time.Duration
	// HeapMB is the live heap after the stage.
	HeapMB float64
	// AllocMB is the heap allocated during the stage.
	AllocMB float64
	// GC is the number of collections that ran during the stage.
	GC uint32
}

// Profiler tracks per-stage timing and memory statistics of an import run.
// Each Mark closes the current stage and logs its stats.
type Profiler struct {
	start          time.Time
	lastTime       time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	samples        []Sample
}

// NewProfiler creates a new Profiler whose first stage starts now.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	p := &Profiler{
		start:    time.Now(),
		memStats: runtime.MemStats{},
	}
	p.lastTime = p.start
	runtime.ReadMemStats(&p.memStats)
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return p
}

// Mark closes the stage that started at the previous Mark (or NewProfiler) and logs its
// duration, heap usage, allocation volume and GC count.
//
// Parameters:
//   - stage: the name of the stage that just finished
//
// Returns:
//   - Sample: the recorded stats
func (p *Profiler) Mark(stage string) Sample {
	now := time.Now()
	runtime.ReadMemStats(&p.memStats)

	// Alloc: bytes of live heap objects. TotalAlloc: cumulative bytes allocated.
	s := Sample{
		Stage:    stage,
		Duration: now.Sub(p.lastTime),
		HeapMB:   float64(p.memStats.Alloc) / 1024 / 1024,
		AllocMB:  float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024,
		GC:       p.memStats.NumGC - p.lastGCCount,
	}

	common.LogInfo("[Profiler] %s: %s | Heap: %.2f MB | Alloc: %.2f MB | GC: %d",
		s.Stage, s.Duration, s.HeapMB, s.AllocMB, s.GC)

	p.samples = append(p.samples, s)
	p.lastTime = now
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return s
}

// Samples returns the recorded stages in order.
func (p *Profiler) Samples() []Sample {
	out := make([]Sample, len(p.samples))
	copy(out, p.samples)
	return out
}

// Total returns the time elapsed since the profiler was created.
func (p *Profiler) Total() time.Duration {
	return time.Since(p.start)
}
