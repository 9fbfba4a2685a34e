package seed

import (
	"context"
	"log/slog"
	"sort"

	"catalogseed/internal/models"
	"catalogseed/internal/observability"
)

// CategoryIDs maps a category name to the id the service assigned.
type CategoryIDs map[string]models.ID

// Names returns the category names in sorted order.
func (c CategoryIDs) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SeedCategories creates every entry of Categories, in order, and returns
// the ids of those the service accepted.
func (s *Seeder) SeedCategories(ctx context.Context) (CategoryIDs, error) {
	span, ctx := observability.NewSpan(ctx, "seed.categories")
	defer span.End()
	ctx = observability.WithStage(ctx, "categories")

	s.log.InfoContext(ctx, "creating categories", slog.Int("count", len(Categories)))

	ids := make(CategoryIDs, len(Categories))
	for _, cat := range Categories {
		id, err := s.catalog.CreateCategory(ctx, models.CreateCategoryRequest{
			Name:        cat.Name,
			Description: cat.Description,
		})
		if err != nil {
			if se, ok := rejected(err); ok {
				s.log.ErrorContext(ctx, "category creation failed",
					slog.String("name", cat.Name),
					slog.Int("status", se.StatusCode),
					slog.String("body", se.Body),
				)
				continue
			}
			span.SetError(err)
			return ids, stageError("categories", err)
		}
		ids[cat.Name] = id
		s.log.InfoContext(ctx, "category created",
			slog.String("name", cat.Name),
			slog.String("id", id.String()),
		)
	}
	return ids, nil
}
