package catalogstub

import (
	"context"
	"strings"

	"catalogseed/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Service validates creation requests before persisting them.
type Service struct {
	repo       Repository
	bcryptCost int
}

// NewService returns a Service. A zero bcryptCost uses bcrypt.DefaultCost.
func NewService(repo Repository, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

// CreateUser validates and stores a user. The password is stored as a
// bcrypt hash.
func (s *Service) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{Name: req.Name, Email: req.Email, Password: string(hash)}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCategory validates and stores a category. Names are unique.
func (s *Service) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category := &models.Category{Name: req.Name, Description: req.Description}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// CreateProduct validates and stores a product. The owner and every
// category must exist; product names are unique.
func (s *Service) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// Both conversions succeed once the catalogid rule has passed.
	ownerID, _ := req.UserID.Uint()
	categoryIDs := make([]uint, 0, len(req.CategoryIDs))
	seen := make(map[uint]bool, len(req.CategoryIDs))
	for _, raw := range req.CategoryIDs {
		if id, _ := raw.Uint(); !seen[id] {
			seen[id] = true
			categoryIDs = append(categoryIDs, id)
		}
	}

	owner, err := s.repo.GetUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.GetCategories(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		OwnerID:     owner.ID,
		Categories:  categories,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	product.Owner = *owner
	return product, nil
}

// PageProducts returns one page of products matching q. A non-zero
// q.OwnerID must name an existing user.
func (s *Service) PageProducts(ctx context.Context, q ProductQuery, p PageRequest) (*models.Page[models.Product], error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	if q.OwnerID != 0 {
		if _, err := s.repo.GetUser(ctx, q.OwnerID); err != nil {
			return nil, err
		}
	}
	products, total, err := s.repo.PageProducts(ctx, q, p)
	if err != nil {
		return nil, err
	}
	return models.NewPage(products, p.Page, p.Size, total), nil
}

// SliceProducts returns one slice of products without counting the total.
func (s *Service) SliceProducts(ctx context.Context, p PageRequest) (*models.Slice[models.Product], error) {
	products, hasNext, err := s.repo.SliceProducts(ctx, ProductQuery{}, p)
	if err != nil {
		return nil, err
	}
	return models.NewSlice(products, p.Page, p.Size, hasNext), nil
}
