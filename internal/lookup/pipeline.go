package lookup

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrNoResult is returned when no provider could resolve the barcode.
var ErrNoResult = errors.New("no lookup result")

// Pipeline fans a barcode out to every registered provider in parallel, waits
// for all of them, then folds the results into one ProductInfo sequentially in
// registration order. Registration order is the priority order: a field set by
// an earlier provider is never overwritten by a later one.
type Pipeline struct {
	providers []Provider
}

// NewPipeline builds a pipeline over the given providers. Order matters.
func NewPipeline(providers ...Provider) *Pipeline {
	return &Pipeline{providers: providers}
}

// Providers returns the registered provider names in priority order.
func (p *Pipeline) Providers() []string {
	names := make([]string, len(p.providers))
	for i, prov := range p.providers {
		names[i] = prov.Name()
	}
	return names
}

// Lookup runs the fan-out/merge. Provider failures are logged and treated as
// missing results; the pipeline itself only fails when the context is
// cancelled or when no provider returned anything.
func (p *Pipeline) Lookup(ctx context.Context, barcode string) (*ProductInfo, error) {
	results := make([]*ProductInfo, len(p.providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, prov := range p.providers {
		g.Go(func() error {
			info, err := prov.Lookup(gctx, barcode)
			if err != nil {
				logProviderError(prov.Name(), barcode, err)
				return nil
			}
			results[i] = info
			return nil
		})
	}
	// Goroutines never return errors; Wait only surfaces context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := &ProductInfo{Barcode: barcode}
	found := false
	for _, res := range results {
		if res == nil {
			continue
		}
		found = true
		merge(merged, res)
	}
	if !found {
		return nil, ErrNoResult
	}
	return merged, nil
}
