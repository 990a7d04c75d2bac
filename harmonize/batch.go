package harmonize

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/pedotools/mpspline/model"
	"github.com/pedotools/mpspline/utils"
)

// HarmonizeAll processes components sequentially, returning one Result
// per component in input order. With Strict unset, failed components
// are skipped (their slot is nil) and a warning is logged.
func (h *Harmonizer) HarmonizeAll(ctx context.Context, comps []*model.Component) ([]*Result, error) {
	logger := utils.GetLogger(ctx)
	logger.Info("starting harmonization",
		zap.Int("components", len(comps)), zap.Bool("parallel", false))

	results := make([]*Result, len(comps))
	for i, comp := range comps {
		res, err := h.HarmonizeOne(ctx, comp)
		if err != nil {
			if h.opts.Strict {
				return nil, fmt.Errorf("component %s: %w", comp.ID, err)
			}
			logger.Warn("failed to harmonize component",
				zap.String("componentID", comp.ID), zap.Error(err))
			continue
		}
		results[i] = res
	}
	return results, nil
}

// HarmonizeParallel fans the components out over a pool of worker
// goroutines sharing this Harmonizer's matrix cache. Results are
// re-associated with their source component by position, so the output
// matches HarmonizeAll regardless of completion order. workers <= 0
// uses GOMAXPROCS.
//
// Each component's fit is independent of every other's; the matrix
// cache is the only shared state and is safe for concurrent use.
func (h *Harmonizer) HarmonizeParallel(ctx context.Context, comps []*model.Component, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(comps) {
		workers = len(comps)
	}
	if workers <= 1 {
		return h.HarmonizeAll(ctx, comps)
	}

	logger := utils.GetLogger(ctx)
	logger.Info("starting harmonization",
		zap.Int("components", len(comps)), zap.Bool("parallel", true),
		zap.Int("workers", workers))

	results := make([]*Result, len(comps))
	errs := make([]error, len(comps))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = h.HarmonizeOne(ctx, comps[i])
			}
		}()
	}
	for i := range comps {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err == nil {
			continue
		}
		if h.opts.Strict {
			return nil, fmt.Errorf("component %s: %w", comps[i].ID, err)
		}
		logger.Warn("failed to harmonize component",
			zap.String("componentID", comps[i].ID), zap.Error(err))
		results[i] = nil
	}
	return results, nil
}
