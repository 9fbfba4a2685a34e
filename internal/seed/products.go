package seed

import (
	"context"
	"fmt"
	"log/slog"

	"catalogseed/internal/models"
	"catalogseed/internal/observability"
)

// Price bounds in cents, inclusive.
const (
	minPriceCents = 5000
	maxPriceCents = 300000
)

// ProductDraft is a generated product together with the category choices
// that shaped it.
type ProductDraft struct {
	Primary   string
	Secondary string
	Request   models.CreateProductRequest
}

// ProductStats counts product attempts.
type ProductStats struct {
	Created  int
	Failed   int
	Attempts int
}

// BuildProduct synthesises one product. created is the number of products
// created so far and becomes part of the name. users and categories must
// not be empty.
func (s *Seeder) BuildProduct(users []models.ID, categories CategoryIDs, created int) ProductDraft {
	r := s.opts.Random

	primary := r.RandomString(categories.Names())
	tmpl := TemplateFor(primary)

	categoryIDs := []models.ID{categories[primary]}
	var secondary string
	if related := availableRelated(tmpl.Related, categories); len(related) > 0 {
		secondary = r.RandomString(related)
		categoryIDs = append(categoryIDs, categories[secondary])
	}

	return ProductDraft{
		Primary:   primary,
		Secondary: secondary,
		Request: models.CreateProductRequest{
			Name:        fmt.Sprintf("%s_%d_%d", tmpl.Render(r), created, r.Number(1000, 9999)),
			Price:       models.NewPriceFromCents(int64(r.Number(minPriceCents, maxPriceCents))),
			Description: primary + " de alta calidad",
			UserID:      users[r.Number(0, len(users)-1)],
			CategoryIDs: categoryIDs,
		},
	}
}

func availableRelated(related []string, categories CategoryIDs) []string {
	out := make([]string, 0, len(related))
	for _, name := range related {
		if _, ok := categories[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// SeedProducts creates products until ProductTarget of them have been
// accepted. Rejected attempts are logged and not counted. The loop gives up
// with ErrAttemptsExhausted once MaxAttempts attempts were made, and stops on
// any transport failure or context cancellation.
func (s *Seeder) SeedProducts(ctx context.Context, users []models.ID, categories CategoryIDs) (ProductStats, error) {
	span, ctx := observability.NewSpan(ctx, "seed.products")
	defer span.End()
	ctx = observability.WithStage(ctx, "products")

	var stats ProductStats
	if len(users) == 0 || len(categories) == 0 {
		return stats, ErrProductStageSkipped
	}

	target := s.opts.ProductTarget
	s.log.InfoContext(ctx, "creating products", slog.Int("target", target))
	observability.ProductsCreated.Set(0)

	for stats.Created < target {
		if s.opts.MaxAttempts > 0 && stats.Attempts >= s.opts.MaxAttempts {
			err := fmt.Errorf("%w: %d of %d created after %d attempts",
				ErrAttemptsExhausted, stats.Created, target, stats.Attempts)
			span.SetError(err)
			return stats, err
		}
		if err := s.opts.Throttle.Wait(ctx); err != nil {
			return stats, stageError("products", err)
		}

		stats.Attempts++
		draft := s.BuildProduct(users, categories, stats.Created)
		if _, err := s.catalog.CreateProduct(ctx, draft.Request); err != nil {
			se, ok := rejected(err)
			if !ok {
				span.SetError(err)
				return stats, stageError("products", err)
			}
			stats.Failed++
			s.log.ErrorContext(ctx, "product creation failed",
				slog.String("name", draft.Request.Name),
				slog.Int("status", se.StatusCode),
				slog.String("body", se.Body),
			)
			continue
		}

		stats.Created++
		observability.ProductsCreated.Set(float64(stats.Created))
		if stats.Created%s.opts.ProgressEvery == 0 {
			s.log.InfoContext(ctx, "products created", slog.Int("created", stats.Created))
		}
	}

	s.log.InfoContext(ctx, "product stage complete",
		slog.Int("created", stats.Created),
		slog.Int("failed", stats.Failed),
	)
	return stats, nil
}
