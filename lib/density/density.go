package density

import (
	"context"
	"fmt"
	"github.com/kadaan/linedensity/lib/common"
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/kadaan/linedensity/lib/grid"
	"github.com/kadaan/linedensity/lib/raster"
	"github.com/kadaan/linedensity/lib/series"
	"k8s.io/klog/v2"
	"seehuhn.de/go/geom/vec"
	"sync"
)

// Layout places one series in chart space.
type Layout func(s series.Series) ([]vec.Vec2, error)

type Config struct {
	Width       int
	Height      int
	Parallelism int
	Rasterizer  raster.Kind
}

// Result is the aggregate density field of a run and the number of series
// folded into it.
type Result struct {
	Grid   *grid.Grid
	Folded int
}

// Aggregate rasterizes and column-normalizes every series of source and sums
// the normalized grids. Each worker folds the series it takes into its own
// partial grid; partials are combined once all workers are done. The first
// failing series stops the run and its error is returned.
func Aggregate(ctx context.Context, c Config, source series.Source, layout Layout) (*Result, error) {
	aggregate, err := grid.NewGrid(c.Width, c.Height)
	if err != nil {
		return nil, err
	}
	count := source.Len()
	if count == 0 {
		return &Result{Grid: aggregate}, nil
	}
	workers := common.ClampParallelism(c.Parallelism)
	if workers > count {
		workers = count
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s := common.NewCanceller()
	input := make(chan int)

	go produce(ctx, s, count, input)

	var cg sync.WaitGroup
	consumers := make([]*consumer, workers)
	for i := range consumers {
		w, errC := newConsumer(fmt.Sprintf("densityConsumer%d", i), c, source, layout)
		if errC != nil {
			s.CancelWithError(errC)
			cancel()
			cg.Wait()
			return nil, errors.Wrap(errC, "failed to start consumers")
		}
		consumers[i] = w
		cg.Add(1)
		go w.run(ctx, &cg, s, input)
	}

	cg.Wait()
	if s.Cancelled() {
		if err := s.Err(); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "density aggregation cancelled")
	}

	folded := 0
	for _, w := range consumers {
		if err := grid.Combine(aggregate, w.partial); err != nil {
			return nil, err
		}
		folded += w.folded
	}
	if folded != count {
		return nil, errors.NewInvariantViolation("folded %d series, expected %d", folded, count)
	}
	return &Result{Grid: aggregate, Folded: folded}, nil
}

func produce(ctx context.Context, s common.Canceller, count int, output chan<- int) {
	defer close(output)
	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			klog.V(1).Infof("Cancelling producer")
			return
		case <-s.C():
			klog.V(1).Infof("Cancelling producer")
			return
		case output <- i:
		}
	}
	klog.V(1).Infof("Stopping producer")
}

type consumer struct {
	name       string
	source     series.Source
	layout     Layout
	rasterizer raster.Rasterizer
	scratch    *grid.Grid
	partial    *grid.Grid
	folded     int
}

func newConsumer(name string, c Config, source series.Source, layout Layout) (*consumer, error) {
	rasterizer, err := raster.NewRasterizer(c.Rasterizer)
	if err != nil {
		return nil, err
	}
	scratch, err := grid.NewGrid(c.Width, c.Height)
	if err != nil {
		return nil, err
	}
	partial, err := grid.NewGrid(c.Width, c.Height)
	if err != nil {
		return nil, err
	}
	return &consumer{
		name:       name,
		source:     source,
		layout:     layout,
		rasterizer: rasterizer,
		scratch:    scratch,
		partial:    partial,
	}, nil
}

func (c *consumer) run(ctx context.Context, cg *sync.WaitGroup, s common.Canceller, input <-chan int) {
	defer cg.Done()
	for {
		select {
		case <-ctx.Done():
			klog.V(1).Infof("Cancelling %s", c.name)
			return
		case <-s.C():
			klog.V(1).Infof("Cancelling %s", c.name)
			return
		case i, ok := <-input:
			if !ok {
				klog.V(1).Infof("Stopping %s after %d series", c.name, c.folded)
				return
			}
			if err := c.fold(i); err != nil {
				klog.V(1).Infof("%s failed on series %d: %v", c.name, i, err)
				s.CancelWithError(err)
				return
			}
		}
	}
}

// fold renders series i into the scratch grid, normalizes it and adds it to
// the partial aggregate.
func (c *consumer) fold(i int) error {
	s, err := c.source.Series(i)
	if err != nil {
		return err
	}
	pts, err := c.layout(s)
	if err != nil {
		return err
	}
	c.scratch.Reset()
	c.rasterizer.DrawPolyline(c.scratch, pts)
	c.scratch.NormalizeColumns()
	if err := grid.Combine(c.partial, c.scratch); err != nil {
		return err
	}
	c.folded++
	klog.V(2).Infof("%s folded %s", c.name, s.Name)
	return nil
}
