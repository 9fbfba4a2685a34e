package catalogstub

import (
	"context"
	"errors"
	"strings"

	"catalogseed/internal/models"

	"gorm.io/gorm"
)

// Repository defines persistence operations for the catalog stub.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategories(ctx context.Context, ids []uint) ([]models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductsByOwner(ctx context.Context, ownerID uint) ([]models.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error)
	PageProducts(ctx context.Context, q ProductQuery, p PageRequest) ([]models.Product, int64, error)
	SliceProducts(ctx context.Context, q ProductQuery, p PageRequest) ([]models.Product, bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a gorm-backed Repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func translate(err error, resource string, id interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(resource, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.NewConflictError(resource + " already exists")
	default:
		return models.NewInternalError(err)
	}
}

func (r *repository) CreateUser(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, "User", user.Email)
}

func (r *repository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "User", id)
	}
	return &user, nil
}

func (r *repository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, translate(err, "User", nil)
}

func (r *repository) CreateCategory(ctx context.Context, category *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(category).Error, "Category", category.Name)
}

// GetCategories returns the categories with the given ids, failing with a
// not-found error for the first id that does not exist.
func (r *repository) GetCategories(ctx context.Context, ids []uint) ([]models.Category, error) {
	var found []models.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, translate(err, "Category", ids)
	}
	byID := make(map[uint]models.Category, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	out := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, models.NewNotFoundError("Category", id)
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("id").Find(&categories).Error
	return categories, translate(err, "Category", nil)
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Owner").Create(product).Error
	})
	if err != nil {
		return translate(err, "Product", product.Name)
	}
	return nil
}

func (r *repository) withRelations() *gorm.DB {
	return r.db.Preload("Owner").Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("categories.id")
	})
}

func (r *repository) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.withRelations().WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err, "Product", id)
	}
	return &product, nil
}

func (r *repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.withRelations().WithContext(ctx).Order("id").Find(&products).Error
	return products, translate(err, "Product", nil)
}

func (r *repository) ListProductsByOwner(ctx context.Context, ownerID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.withRelations().WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&products).Error
	return products, translate(err, "Product", nil)
}

func (r *repository) ListProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.withRelations().WithContext(ctx).
		Joins("JOIN product_categories pc ON pc.product_id = products.id").
		Where("pc.category_id = ?", categoryID).
		Order("products.id").
		Find(&products).Error
	return products, translate(err, "Product", nil)
}

func (r *repository) filterProducts(db *gorm.DB, q ProductQuery) *gorm.DB {
	db = db.Model(&models.Product{})
	if q.OwnerID != 0 {
		db = db.Where("products.owner_id = ?", q.OwnerID)
	}
	if q.CategoryID != 0 {
		db = db.Where("products.id IN (?)",
			r.db.Table("product_categories").Select("product_id").Where("category_id = ?", q.CategoryID))
	}
	if q.Name != "" {
		db = db.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(q.Name)+"%")
	}
	if q.MinPrice != nil {
		db = db.Where("products.price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		db = db.Where("products.price <= ?", *q.MaxPrice)
	}
	return db
}

// sortProducts applies the requested order with products.id as the final
// tie breaker so pages never overlap.
func sortProducts(db *gorm.DB, orders []SortOrder) *gorm.DB {
	joined := false
	for _, o := range orders {
		if o.needsOwner() && !joined {
			db = db.Joins("JOIN users owners ON owners.id = products.owner_id")
			joined = true
		}
		if o.Desc {
			db = db.Order(o.column() + " DESC")
		} else {
			db = db.Order(o.column() + " ASC")
		}
	}
	return db.Order("products.id ASC")
}

func (r *repository) findProducts(ctx context.Context, q ProductQuery, p PageRequest, limit int) ([]models.Product, error) {
	var products []models.Product
	err := sortProducts(r.filterProducts(r.withRelations().WithContext(ctx), q), p.Sort).
		Select("products.*").
		Limit(limit).
		Offset(p.offset()).
		Find(&products).Error
	return products, translate(err, "Product", nil)
}

func (r *repository) PageProducts(ctx context.Context, q ProductQuery, p PageRequest) ([]models.Product, int64, error) {
	var total int64
	if err := r.filterProducts(r.db.WithContext(ctx), q).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "Product", nil)
	}
	if total == 0 || int64(p.offset()) >= total {
		return nil, total, nil
	}
	products, err := r.findProducts(ctx, q, p, p.Size)
	return products, total, err
}

// SliceProducts fetches one extra row to learn whether a next page exists.
func (r *repository) SliceProducts(ctx context.Context, q ProductQuery, p PageRequest) ([]models.Product, bool, error) {
	products, err := r.findProducts(ctx, q, p, p.Size+1)
	if err != nil {
		return nil, false, err
	}
	hasNext := len(products) > p.Size
	if hasNext {
		products = products[:p.Size]
	}
	return products, hasNext, nil
}
