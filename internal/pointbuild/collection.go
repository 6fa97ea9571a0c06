package pointbuild

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/roverscene/scenemesh/internal/sceneconfig"
	"github.com/roverscene/scenemesh/internal/scenegeo"
	"github.com/roverscene/scenemesh/internal/workerpool"
)

// Result is one wedge's outcome: either a point cloud or the reason it
// was skipped.
type Result struct {
	Wedge *Wedge
	Cloud *scenegeo.Mesh
	Err   error
}

// BuildAll runs BuildOne over every wedge in parallel (§5: per-wedge
// point-cloud construction is one of the three named parallel
// phases), writing results into a mutex-guarded map keyed by wedge
// name (§9: "no shared mutable state besides the concurrent output
// map"), then returns a deterministic snapshot ordered by sitedrive
// then wedge name (§5 ordering guarantee).
func BuildAll(ctx context.Context, logger *log.Logger, wedges []*Wedge, opts sceneconfig.BuildOptions) ([]Result, error) {
	var mu sync.Mutex
	byName := make(map[string]Result, len(wedges))

	err := workerpool.Run(ctx, len(wedges), func(ctx context.Context, i int) error {
		w := wedges[i]
		cloud, buildErr := BuildOne(w, opts)
		if buildErr != nil {
			logger.Printf("pointbuild: skipping wedge %s: %v", w.Name, buildErr)
		}
		mu.Lock()
		byName[w.Name] = Result{Wedge: w, Cloud: cloud, Err: buildErr}
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pointbuild: %w", err)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := byName[names[i]], byName[names[j]]
		if a.Wedge.SiteDrive != b.Wedge.SiteDrive {
			return a.Wedge.SiteDrive < b.Wedge.SiteDrive
		}
		return a.Wedge.Name < b.Wedge.Name
	})

	out := make([]Result, len(names))
	for i, name := range names {
		out[i] = byName[name]
	}
	return out, nil
}

// KeptClouds filters a BuildAll result down to the clouds that
// succeeded, in the same deterministic order.
func KeptClouds(results []Result) []*scenegeo.Mesh {
	out := make([]*scenegeo.Mesh, 0, len(results))
	for _, r := range results {
		if r.Err == nil && r.Cloud != nil {
			out = append(out, r.Cloud)
		}
	}
	return out
}
