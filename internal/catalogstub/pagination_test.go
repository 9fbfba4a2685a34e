package catalogstub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productPage struct {
	Content []struct {
		ID    uint    `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		User  struct {
			Name string `json:"name"`
		} `json:"user"`
	} `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	HasNext       bool  `json:"hasNext"`
}

// seedListing creates 25 products. Product i (id i+1) is priced (i+1)*10,
// named Producto_NN below 20 and Monitor_NN above, filed under Laptops when
// i is even and Gaming otherwise, and owned by Ana Zapata for i < 15 and
// Bruno Alvarez after that.
func seedListing(t *testing.T, app *fiber.App) (ana, bruno, laptops, gaming float64) {
	t.Helper()
	_, raw := doJSON(t, app, http.MethodPost, "/api/users", map[string]string{
		"name": "Ana Zapata", "email": "anazapata@test.com", "password": "Password123",
	})
	ana = createdID(t, raw)
	_, raw = doJSON(t, app, http.MethodPost, "/api/users", map[string]string{
		"name": "Bruno Alvarez", "email": "brunoalvarez@test.com", "password": "Password123",
	})
	bruno = createdID(t, raw)
	_, raw = doJSON(t, app, http.MethodPost, "/api/categories", map[string]string{"name": "Laptops"})
	laptops = createdID(t, raw)
	_, raw = doJSON(t, app, http.MethodPost, "/api/categories", map[string]string{"name": "Gaming"})
	gaming = createdID(t, raw)

	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("Producto_%02d", i)
		if i >= 20 {
			name = fmt.Sprintf("Monitor_%02d", i)
		}
		category, owner := laptops, ana
		if i%2 == 1 {
			category = gaming
		}
		if i >= 15 {
			owner = bruno
		}
		status, raw := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
			"name":        name,
			"price":       (i + 1) * 10,
			"userId":      owner,
			"categoryIds": []float64{category},
		})
		require.Equal(t, http.StatusCreated, status, string(raw))
	}
	return ana, bruno, laptops, gaming
}

func getPage(t *testing.T, app *fiber.App, path string) productPage {
	t.Helper()
	status, raw := doJSON(t, app, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	var page productPage
	require.NoError(t, json.Unmarshal(raw, &page))
	return page
}

func TestPaginatedProducts(t *testing.T) {
	app, _ := newTestApp(t)
	seedListing(t, app)

	first := getPage(t, app, "/api/products/paginated?page=0&size=10")
	assert.Len(t, first.Content, 10)
	assert.Equal(t, int64(25), first.TotalElements)
	assert.Equal(t, 3, first.TotalPages)
	assert.True(t, first.First)
	assert.False(t, first.Last)
	assert.Equal(t, uint(1), first.Content[0].ID)

	last := getPage(t, app, "/api/products/paginated?page=2&size=10")
	assert.Len(t, last.Content, 5)
	assert.True(t, last.Last)
	assert.Equal(t, uint(21), last.Content[0].ID)

	beyond := getPage(t, app, "/api/products/paginated?page=5&size=10")
	assert.Empty(t, beyond.Content)
	assert.Equal(t, int64(25), beyond.TotalElements)

	defaults := getPage(t, app, "/api/products/paginated")
	assert.Equal(t, 0, defaults.Page)
	assert.Equal(t, 10, defaults.Size)
}

func TestPaginatedProducts_Sort(t *testing.T) {
	app, _ := newTestApp(t)
	seedListing(t, app)

	byPrice := getPage(t, app, "/api/products/paginated?size=5&sort=price,desc")
	require.Len(t, byPrice.Content, 5)
	assert.Equal(t, 250.0, byPrice.Content[0].Price)
	for i := 1; i < len(byPrice.Content); i++ {
		assert.Greater(t, byPrice.Content[i-1].Price, byPrice.Content[i].Price)
	}

	byOwner := getPage(t, app, "/api/products/paginated?size=3&sort=owner.name,desc")
	require.Len(t, byOwner.Content, 3)
	assert.Equal(t, "Bruno Alvarez", byOwner.Content[0].User.Name)
	assert.Equal(t, uint(16), byOwner.Content[0].ID)
	assert.Equal(t, int64(25), byOwner.TotalElements)
}

func TestSliceProducts(t *testing.T) {
	app, _ := newTestApp(t)
	seedListing(t, app)

	first := getPage(t, app, "/api/products/slice?page=0&size=10")
	assert.Len(t, first.Content, 10)
	assert.True(t, first.HasNext)

	last := getPage(t, app, "/api/products/slice?page=2&size=10")
	assert.Len(t, last.Content, 5)
	assert.False(t, last.HasNext)
}

func TestSearchProducts(t *testing.T) {
	app, _ := newTestApp(t)
	ana, bruno, laptops, _ := seedListing(t, app)

	tests := []struct {
		name  string
		path  string
		total int64
	}{
		{"name is case insensitive with min price", "/api/products/search?name=producto&minPrice=50", 16},
		{"category with max price", fmt.Sprintf("/api/products/search?categoryId=%d&maxPrice=100", int(laptops)), 5},
		{"price range", "/api/products/search?minPrice=100&maxPrice=150.00", 6},
		{"no filters", "/api/products/search", 25},
		{"owner with min price", fmt.Sprintf("/api/products/user/%d?minPrice=200", int(bruno)), 6},
		{"owner and name", fmt.Sprintf("/api/products/user/%d?name=monitor", int(ana)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := getPage(t, app, tt.path)
			assert.Equal(t, tt.total, page.TotalElements)
		})
	}
}

func TestListingRejections(t *testing.T) {
	app, _ := newTestApp(t)
	seedListing(t, app)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"negative page", "/api/products/paginated?page=-1", http.StatusBadRequest},
		{"zero size", "/api/products/paginated?size=0", http.StatusBadRequest},
		{"oversized page", "/api/products/slice?size=101", http.StatusBadRequest},
		{"non numeric page", "/api/products/paginated?page=abc", http.StatusBadRequest},
		{"unknown sort property", "/api/products/paginated?sort=password", http.StatusBadRequest},
		{"bad sort direction", "/api/products/paginated?sort=name,sideways", http.StatusBadRequest},
		{"negative min price", "/api/products/search?minPrice=-1", http.StatusBadRequest},
		{"max below min", "/api/products/search?minPrice=100&maxPrice=50", http.StatusBadRequest},
		{"non numeric price", "/api/products/search?maxPrice=cheap", http.StatusBadRequest},
		{"unknown owner", "/api/products/user/42", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := doJSON(t, app, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.want, status, string(raw))
		})
	}
}
