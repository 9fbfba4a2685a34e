package catalogstub

import (
	"strconv"
	"strings"

	"catalogseed/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// sortColumns maps the sort properties clients may use to SQL columns.
// Anything else is rejected.
var sortColumns = map[string]string{
	"id":          "products.id",
	"name":        "products.name",
	"price":       "products.price",
	"createdAt":   "products.created_at",
	"updatedAt":   "products.updated_at",
	"owner.name":  "owners.name",
	"owner.email": "owners.email",
}

// SortOrder is one ORDER BY term, already checked against sortColumns.
type SortOrder struct {
	Property string
	Desc     bool
}

func (o SortOrder) column() string {
	return sortColumns[o.Property]
}

func (o SortOrder) needsOwner() bool {
	return strings.HasPrefix(o.Property, "owner.")
}

// PageRequest selects a page of a listing. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

func (p PageRequest) offset() int {
	return p.Page * p.Size
}

// ProductQuery filters a product listing. Zero fields do not filter.
type ProductQuery struct {
	OwnerID    uint
	CategoryID uint
	Name       string
	MinPrice   *models.Price
	MaxPrice   *models.Price
}

func (q ProductQuery) validate() error {
	fields := map[string]string{}
	if q.MinPrice != nil && q.MinPrice.Decimal().IsNegative() {
		fields["minPrice"] = "minPrice must not be negative"
	}
	if q.MaxPrice != nil && q.MaxPrice.Decimal().IsNegative() {
		fields["maxPrice"] = "maxPrice must not be negative"
	}
	if q.MinPrice != nil && q.MaxPrice != nil && q.MaxPrice.Cmp(*q.MinPrice) < 0 {
		fields["maxPrice"] = "maxPrice must be greater than or equal to minPrice"
	}
	if len(fields) > 0 {
		return models.NewValidationError("invalid filter", fields)
	}
	return nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewValidationError("invalid query parameter",
			map[string]string{key: key + " must be an integer"})
	}
	return v, nil
}

// parsePageRequest reads page, size and sort from the query string. sort may
// repeat; each value is "property" or "property,asc|desc".
func parsePageRequest(c *fiber.Ctx) (PageRequest, error) {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return PageRequest{}, err
	}
	size, err := queryInt(c, "size", defaultPageSize)
	if err != nil {
		return PageRequest{}, err
	}
	if page < 0 {
		return PageRequest{}, models.NewValidationError("invalid page request",
			map[string]string{"page": "page must be 0 or greater"})
	}
	if size < 1 || size > maxPageSize {
		return PageRequest{}, models.NewValidationError("invalid page request",
			map[string]string{"size": "size must be between 1 and " + strconv.Itoa(maxPageSize)})
	}

	req := PageRequest{Page: page, Size: size}
	for _, raw := range c.Context().QueryArgs().PeekMulti("sort") {
		property, direction, _ := strings.Cut(strings.TrimSpace(string(raw)), ",")
		if _, ok := sortColumns[property]; !ok {
			return PageRequest{}, models.NewValidationError("invalid page request",
				map[string]string{"sort": "unsupported sort property " + strconv.Quote(property)})
		}
		order := SortOrder{Property: property}
		switch strings.ToLower(strings.TrimSpace(direction)) {
		case "", "asc":
		case "desc":
			order.Desc = true
		default:
			return PageRequest{}, models.NewValidationError("invalid page request",
				map[string]string{"sort": "sort direction must be asc or desc"})
		}
		req.Sort = append(req.Sort, order)
	}
	return req, nil
}

func queryPrice(c *fiber.Ctx, key string) (*models.Price, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	p, err := models.ParsePrice(raw)
	if err != nil {
		return nil, models.NewValidationError("invalid filter",
			map[string]string{key: key + " must be a number"})
	}
	return &p, nil
}

// parseProductQuery reads the name, minPrice, maxPrice and categoryId filters.
func parseProductQuery(c *fiber.Ctx) (ProductQuery, error) {
	q := ProductQuery{Name: strings.TrimSpace(c.Query("name"))}

	var err error
	if q.MinPrice, err = queryPrice(c, "minPrice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = queryPrice(c, "maxPrice"); err != nil {
		return q, err
	}

	categoryID, err := queryInt(c, "categoryId", 0)
	if err != nil {
		return q, err
	}
	if categoryID < 0 {
		return q, models.NewValidationError("invalid filter",
			map[string]string{"categoryId": "categoryId must be a positive integer"})
	}
	q.CategoryID = uint(categoryID)
	return q, nil
}
