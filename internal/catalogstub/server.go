package catalogstub

import (
	"context"
	"log/slog"
	"time"

	"catalogseed/internal/models"
	"catalogseed/internal/observability"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Server holds the stub's dependencies and provides its handlers.
type Server struct {
	db       *gorm.DB
	service  *Service
	repo     Repository
	registry *prometheus.Registry
}

// NewServer wires a Server on top of an open database.
func NewServer(db *gorm.DB, bcryptCost int) *Server {
	repo := NewRepository(db)
	return &Server{
		db:       db,
		service:  NewService(repo, bcryptCost),
		repo:     repo,
		registry: prometheus.NewRegistry(),
	}
}

// App builds the fiber application serving the catalog API under /api and
// Prometheus metrics at /metrics.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Catalog Stub",
		ErrorHandler: errorHandler,
	})

	prom := fiberprometheus.NewWithRegistry(s.registry, "catalog-stub", "catalogstub", "http", nil)
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(prom.Middleware)
	app.Use(requestLogger)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	app.Get("/health", s.healthCheck)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/", s.createUser)
	users.Get("/", s.listUsers)
	users.Get("/:id/products", s.listUserProducts)

	categories := api.Group("/categories")
	categories.Post("/", s.createCategory)
	categories.Get("/", s.listCategories)
	categories.Get("/:id/products", s.listCategoryProducts)

	products := api.Group("/products")
	products.Post("/", s.createProduct)
	products.Get("/", s.listProducts)
	products.Get("/paginated", s.pageProducts)
	products.Get("/slice", s.sliceProducts)
	products.Get("/search", s.searchProducts)
	products.Get("/user/:userId", s.searchUserProducts)
	products.Get("/:id", s.getProduct)

	return app
}

// healthCheck reports whether the backing database answers a ping.
func (s *Server) healthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"service": "catalog-stub",
		"checks": fiber.Map{
			"database": dbStatus,
		},
		"time": time.Now(),
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(models.ErrorResponse{
			Status: fe.Code,
			Error:  fe.Message,
			Path:   c.Path(),
		})
	}
	return models.RespondWithError(c, err)
}

func requestLogger(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if id := c.Get("X-Correlation-ID"); id != "" {
		ctx = observability.WithCorrelationID(ctx, id)
		c.SetUserContext(ctx)
	}
	err := c.Next()
	if err != nil {
		// the error handler writes the status after the chain unwinds
		observability.Logger.WarnContext(ctx, "request rejected",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
			slog.Any("request_id", c.Locals("requestid")),
		)
	}
	return err
}

func parseBody[T any](c *fiber.Ctx) (T, error) {
	var req T
	if err := c.BodyParser(&req); err != nil {
		return req, models.NewValidationError("malformed request body", nil)
	}
	return req, nil
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("invalid "+param, map[string]string{param: c.Params(param)})
	}
	return uint(id), nil
}

func (s *Server) createUser(c *fiber.Ctx) error {
	req, err := parseBody[models.CreateUserRequest](c)
	if err != nil {
		return err
	}
	user, err := s.service.CreateUser(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	users, err := s.repo.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (s *Server) listUserProducts(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := s.repo.GetUser(c.UserContext(), id); err != nil {
		return err
	}
	products, err := s.repo.ListProductsByOwner(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (s *Server) createCategory(c *fiber.Ctx) error {
	req, err := parseBody[models.CreateCategoryRequest](c)
	if err != nil {
		return err
	}
	category, err := s.service.CreateCategory(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (s *Server) listCategories(c *fiber.Ctx) error {
	categories, err := s.repo.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (s *Server) listCategoryProducts(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := s.repo.GetCategories(c.UserContext(), []uint{id}); err != nil {
		return err
	}
	products, err := s.repo.ListProductsByCategory(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (s *Server) createProduct(c *fiber.Ctx) error {
	req, err := parseBody[models.CreateProductRequest](c)
	if err != nil {
		return err
	}
	product, err := s.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (s *Server) listProducts(c *fiber.Ctx) error {
	products, err := s.repo.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (s *Server) getProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	product, err := s.repo.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (s *Server) pageProducts(c *fiber.Ctx) error {
	p, err := parsePageRequest(c)
	if err != nil {
		return err
	}
	page, err := s.service.PageProducts(c.UserContext(), ProductQuery{}, p)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (s *Server) sliceProducts(c *fiber.Ctx) error {
	p, err := parsePageRequest(c)
	if err != nil {
		return err
	}
	slice, err := s.service.SliceProducts(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(slice)
}

func (s *Server) searchProducts(c *fiber.Ctx) error {
	q, err := parseProductQuery(c)
	if err != nil {
		return err
	}
	p, err := parsePageRequest(c)
	if err != nil {
		return err
	}
	page, err := s.service.PageProducts(c.UserContext(), q, p)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (s *Server) searchUserProducts(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	q, err := parseProductQuery(c)
	if err != nil {
		return err
	}
	q.OwnerID = userID
	p, err := parsePageRequest(c)
	if err != nil {
		return err
	}
	page, err := s.service.PageProducts(c.UserContext(), q, p)
	if err != nil {
		return err
	}
	return c.JSON(page)
}
