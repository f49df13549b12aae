// pkg/engine/compare.go
package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-celestial/pkg/entity"
	"github.com/opd-ai/go-celestial/pkg/logging"
	"github.com/opd-ai/go-celestial/pkg/physics"
	"github.com/opd-ai/go-celestial/pkg/render"
)

// Compare runs the launch of p on each named planet concurrently, unpaced
// and without touching the sink. Results follow catalog order. An empty
// planets list compares the whole catalog.
func (s *Simulator) Compare(ctx context.Context, p physics.Parameters, planets []string) ([]render.Summary, error) {
	selected, err := selectPlanets(planets)
	if err != nil {
		return nil, err
	}

	results := make([]render.Summary, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	for i, planet := range selected {
		g.Go(func() error {
			q := p
			q.Planet = planet.Name
			q.Gravity = planet.Gravity
			id := logging.NewRunID()
			sum, err := drive(gctx, id, q, 0, s.offset(), nil)
			if err != nil {
				return logging.WrapError(err, "compare %s", planet.Name)
			}
			results[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, sum := range results {
		s.logger.Info(logging.WithRunID(ctx, sum.RunID), "comparison run finished",
			"planet", sum.Planet,
			"distance", sum.Distance,
			"steps", sum.Steps,
		)
	}
	return results, nil
}

// selectPlanets resolves names against the catalog and orders them as the
// catalog does. Duplicates collapse.
func selectPlanets(names []string) ([]entity.Planet, error) {
	catalog := entity.Planets()
	if len(names) == 0 {
		return catalog, nil
	}

	want := make(map[string]bool, len(names))
	for _, name := range names {
		planet, err := entity.LookupPlanet(name)
		if err != nil {
			return nil, err
		}
		want[planet.Name] = true
	}

	var out []entity.Planet
	for _, planet := range catalog {
		if want[planet.Name] {
			out = append(out, planet)
		}
	}
	return out, nil
}
