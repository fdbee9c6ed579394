package cardstack

import (
	"context"
	"image"
	"sync"

	"golang.org/x/sync/errgroup"
)

// PreloadStatus summarizes a resolved gate.
type PreloadStatus uint8

const (
	PreloadReady          PreloadStatus = iota // every image loaded
	PreloadPartialFailure                      // at least one image failed
)

// PreloadResult is the outcome of a preload. Failed images are recorded but
// never block the gate.
type PreloadResult struct {
	Status PreloadStatus
	Images map[string]image.Image
	Failed map[string]error
}

// Gate resolves once every image has been fetched or has failed. It is the
// only part of the package that runs on more than one goroutine; consumers
// poll Done or Result from the game loop.
type Gate struct {
	done   chan struct{}
	result PreloadResult
}

// Preload starts loading every ref concurrently and returns the gate
// immediately. There is no retry; a hanging load hangs the gate unless ctx is
// cancelled.
func Preload(ctx context.Context, loader ImageLoader, refs []string) *Gate {
	g := &Gate{done: make(chan struct{})}
	res := PreloadResult{
		Images: make(map[string]image.Image, len(refs)),
		Failed: make(map[string]error),
	}
	if len(refs) == 0 {
		g.result = res
		close(g.done)
		return g
	}

	go func() {
		var mu sync.Mutex
		eg, egCtx := errgroup.WithContext(ctx)
		for _, ref := range refs {
			eg.Go(func() error {
				img, err := loader.Load(egCtx, ref)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					res.Failed[ref] = err
					return nil
				}
				res.Images[ref] = img
				return nil
			})
		}
		// Workers never return an error: a failed image is recorded, not fatal.
		_ = eg.Wait()
		if len(res.Failed) > 0 {
			res.Status = PreloadPartialFailure
		}
		g.result = res
		close(g.done)
	}()
	return g
}

// Done is closed when the gate resolves.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Result returns the result and true once the gate has resolved.
func (g *Gate) Result() (PreloadResult, bool) {
	select {
	case <-g.done:
		return g.result, true
	default:
		return PreloadResult{}, false
	}
}

// Wait blocks until the gate resolves or ctx is done.
func (g *Gate) Wait(ctx context.Context) (PreloadResult, error) {
	select {
	case <-g.done:
		return g.result, nil
	case <-ctx.Done():
		return PreloadResult{}, ctx.Err()
	}
}
