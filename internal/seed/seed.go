package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"catalogseed/internal/catalog"
	"catalogseed/internal/models"
	"catalogseed/internal/observability"
	"catalogseed/internal/throttle"

	"github.com/brianvoe/gofakeit/v6"
	"go.opentelemetry.io/otel/attribute"
)

// Defaults applied by NewSeeder to zero-valued options.
const (
	DefaultProductTarget = 1000
	DefaultProgressEvery = 100
	DefaultPassword      = "Password123"
)

var (
	// ErrProductStageSkipped is returned by Run when users or categories
	// could not be created.
	ErrProductStageSkipped = errors.New("no users or categories could be created; product stage skipped")
	// ErrAttemptsExhausted is returned when the product stage hits its
	// attempt bound before reaching the target.
	ErrAttemptsExhausted = errors.New("product attempts exhausted")
)

// Catalog is the subset of the catalog service the seeder talks to.
// *catalog.Client satisfies it.
type Catalog interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.ID, error)
	CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (models.ID, error)
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (models.ID, error)
}

// Options configuration for the seeder
type Options struct {
	Password      string
	ProductTarget int
	// MaxAttempts bounds product attempts; 0 means no bound.
	MaxAttempts   int
	ProgressEvery int
	Throttle      throttle.Gate
	Random        Random
	Logger        *slog.Logger
}

// Seeder runs the user, category and product stages against a catalog.
type Seeder struct {
	catalog Catalog
	opts    Options
	log     *slog.Logger
}

// NewSeeder creates a Seeder. Zero-valued options get the defaults of a
// standard run with an unseeded random source and no throttling.
func NewSeeder(c Catalog, opts Options) *Seeder {
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	if opts.ProductTarget <= 0 {
		opts.ProductTarget = DefaultProductTarget
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	if opts.Throttle == nil {
		opts.Throttle = throttle.None
	}
	if opts.Random == nil {
		opts.Random = gofakeit.New(0)
	}
	if opts.Logger == nil {
		opts.Logger = observability.Logger
	}
	return &Seeder{catalog: c, opts: opts, log: opts.Logger}
}

// Summary reports the outcome of a seeding run.
type Summary struct {
	Users      []models.ID
	Categories CategoryIDs
	Products   ProductStats
	Elapsed    time.Duration
}

// Run executes the three stages in order. The product stage only runs when
// at least one user and one category were created.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}
	defer func() { summary.Elapsed = time.Since(start) }()

	span, ctx := observability.NewSpan(ctx, "seed.run")
	defer span.End()

	users, err := s.SeedUsers(ctx)
	summary.Users = users
	if err != nil {
		span.SetError(err)
		return summary, err
	}

	categories, err := s.SeedCategories(ctx)
	summary.Categories = categories
	if err != nil {
		span.SetError(err)
		return summary, err
	}

	if len(users) == 0 || len(categories) == 0 {
		s.log.ErrorContext(ctx, "product stage skipped",
			slog.Int("users", len(users)),
			slog.Int("categories", len(categories)),
		)
		span.SetError(ErrProductStageSkipped)
		return summary, ErrProductStageSkipped
	}

	stats, err := s.SeedProducts(ctx, users, categories)
	summary.Products = stats
	span.AddAttributes(
		attribute.Int("seed.products.created", stats.Created),
		attribute.Int("seed.products.failed", stats.Failed),
	)
	if err != nil {
		span.SetError(err)
		return summary, err
	}
	return summary, nil
}

// rejected reports whether err is a non-success status from the service,
// as opposed to a transport failure.
func rejected(err error) (*catalog.StatusError, bool) {
	var se *catalog.StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func stageError(stage string, err error) error {
	return fmt.Errorf("%s stage: %w", stage, err)
}
