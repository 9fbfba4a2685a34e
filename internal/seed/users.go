package seed

import (
	"context"
	"log/slog"
	"strings"

	"catalogseed/internal/models"
	"catalogseed/internal/observability"
)

// EmailFor derives the login email of a full name: the first two
// whitespace-separated tokens, lowercased and concatenated, at test.com.
// fullName must contain at least two tokens.
func EmailFor(fullName string) string {
	parts := strings.Fields(fullName)
	return strings.ToLower(parts[0]) + strings.ToLower(parts[1]) + "@test.com"
}

// SeedUsers creates one user per entry of FullNames and returns the ids of
// those the service accepted, in order. Rejected users are logged and
// skipped; only transport failures are returned as errors.
func (s *Seeder) SeedUsers(ctx context.Context) ([]models.ID, error) {
	span, ctx := observability.NewSpan(ctx, "seed.users")
	defer span.End()
	ctx = observability.WithStage(ctx, "users")

	s.log.InfoContext(ctx, "creating users", slog.Int("count", len(FullNames)))

	ids := make([]models.ID, 0, len(FullNames))
	for _, name := range FullNames {
		email := EmailFor(name)
		id, err := s.catalog.CreateUser(ctx, models.CreateUserRequest{
			Name:     name,
			Email:    email,
			Password: s.opts.Password,
		})
		if err != nil {
			if se, ok := rejected(err); ok {
				s.log.ErrorContext(ctx, "user creation failed",
					slog.String("name", name),
					slog.Int("status", se.StatusCode),
					slog.String("body", se.Body),
				)
				continue
			}
			span.SetError(err)
			return ids, stageError("users", err)
		}
		ids = append(ids, id)
		s.log.InfoContext(ctx, "user created",
			slog.String("name", name),
			slog.String("email", email),
			slog.String("id", id.String()),
		)
	}
	return ids, nil
}
