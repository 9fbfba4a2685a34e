package catalogstub

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	db, err := OpenDatabase("sqlite", ":memory:")
	require.NoError(t, err)
	srv := NewServer(db, bcrypt.MinCost)
	return srv.App(), srv
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, raw
}

func createdID(t *testing.T, raw []byte) float64 {
	t.Helper()
	var out struct {
		ID float64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotZero(t, out.ID)
	return out.ID
}

func TestCreateUser(t *testing.T) {
	app, _ := newTestApp(t)

	status, raw := doJSON(t, app, http.MethodPost, "/api/users", map[string]string{
		"name": "Diana Avila", "email": "dianaavila@test.com", "password": "Password123",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	createdID(t, raw)
	assert.NotContains(t, string(raw), "Password123")
	assert.NotContains(t, string(raw), "password")

	status, raw = doJSON(t, app, http.MethodPost, "/api/users", map[string]string{
		"name": "Diana Avila", "email": "DianaAvila@test.com", "password": "Password123",
	})
	assert.Equal(t, http.StatusConflict, status, string(raw))
}

func TestCreateUser_Validation(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"missing name", map[string]string{"email": "a@test.com", "password": "x"}, "name"},
		{"bad email", map[string]string{"name": "A B", "email": "not-an-email", "password": "x"}, "email"},
		{"missing password", map[string]string{"name": "A B", "email": "a@test.com"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := doJSON(t, app, http.MethodPost, "/api/users", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			var resp struct {
				Details map[string]string `json:"details"`
			}
			require.NoError(t, json.Unmarshal(raw, &resp))
			assert.Contains(t, resp.Details, tt.field)
		})
	}
}

func TestCreateCategory_UniqueName(t *testing.T) {
	app, _ := newTestApp(t)
	body := map[string]string{"name": "Laptops", "description": "Computadoras portátiles"}

	status, raw := doJSON(t, app, http.MethodPost, "/api/categories", body)
	require.Equal(t, http.StatusCreated, status, string(raw))
	createdID(t, raw)

	status, _ = doJSON(t, app, http.MethodPost, "/api/categories", body)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/categories", map[string]string{"name": " "})
	assert.Equal(t, http.StatusBadRequest, status)
}

func seedOwnerAndCategories(t *testing.T, app *fiber.App) (owner, laptops, gaming float64) {
	t.Helper()
	_, raw := doJSON(t, app, http.MethodPost, "/api/users", map[string]string{
		"name": "Leonel Messi", "email": "leonelmessi@test.com", "password": "Password123",
	})
	owner = createdID(t, raw)
	_, raw = doJSON(t, app, http.MethodPost, "/api/categories", map[string]string{"name": "Laptops"})
	laptops = createdID(t, raw)
	_, raw = doJSON(t, app, http.MethodPost, "/api/categories", map[string]string{"name": "Gaming"})
	gaming = createdID(t, raw)
	return owner, laptops, gaming
}

func TestCreateProduct(t *testing.T) {
	app, _ := newTestApp(t)
	owner, laptops, gaming := seedOwnerAndCategories(t, app)

	status, raw := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name":        "Laptop Dell i7_0_4821",
		"price":       1299.5,
		"description": "Laptops de alta calidad",
		"userId":      owner,
		"categoryIds": []float64{laptops, gaming},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	var product struct {
		ID    uint            `json:"id"`
		Price json.RawMessage `json:"price"`
		User  struct {
			ID   float64 `json:"id"`
			Name string  `json:"name"`
		} `json:"user"`
		Categories []struct {
			ID   float64 `json:"id"`
			Name string  `json:"name"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(raw, &product))
	assert.NotZero(t, product.ID)
	assert.Equal(t, "1299.50", string(product.Price))
	assert.Equal(t, owner, product.User.ID)
	assert.Equal(t, "Leonel Messi", product.User.Name)
	require.Len(t, product.Categories, 2)

	status, raw = doJSON(t, app, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"name":"Gaming"`)
}

func TestCreateProduct_Rejections(t *testing.T) {
	app, _ := newTestApp(t)
	owner, laptops, _ := seedOwnerAndCategories(t, app)

	valid := func() map[string]any {
		return map[string]any{
			"name":        "Monitor HP 24 pulgadas_3_1234",
			"price":       "199.99",
			"description": "Monitores de alta calidad",
			"userId":      owner,
			"categoryIds": []float64{laptops},
		}
	}
	status, raw := doJSON(t, app, http.MethodPost, "/api/products", valid())
	require.Equal(t, http.StatusCreated, status, string(raw))

	tests := []struct {
		name   string
		mutate func(map[string]any)
		want   int
	}{
		{"duplicate name", func(map[string]any) {}, http.StatusConflict},
		{"short name", func(b map[string]any) { b["name"] = "ab" }, http.StatusBadRequest},
		{"zero price", func(b map[string]any) { b["name"] = "p1xx"; b["price"] = 0 }, http.StatusBadRequest},
		{"unknown owner", func(b map[string]any) { b["name"] = "p2xx"; b["userId"] = 999 }, http.StatusNotFound},
		{"unknown category", func(b map[string]any) { b["name"] = "p3xx"; b["categoryIds"] = []int{999} }, http.StatusNotFound},
		{"no categories", func(b map[string]any) { b["name"] = "p4xx"; b["categoryIds"] = []int{} }, http.StatusBadRequest},
		{"string owner", func(b map[string]any) { b["name"] = "p5xx"; b["userId"] = "abc" }, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := valid()
			tt.mutate(body)
			status, raw := doJSON(t, app, http.MethodPost, "/api/products", body)
			assert.Equal(t, tt.want, status, string(raw))
		})
	}
}

func TestListProductsByUserAndCategory(t *testing.T) {
	app, _ := newTestApp(t)
	owner, laptops, gaming := seedOwnerAndCategories(t, app)

	for i, cats := range [][]float64{{laptops}, {laptops, gaming}, {gaming}} {
		status, raw := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
			"name":        "Producto_" + string(rune('a'+i)),
			"price":       100,
			"userId":      owner,
			"categoryIds": cats,
		})
		require.Equal(t, http.StatusCreated, status, string(raw))
	}

	var list []map[string]any
	status, raw := doJSON(t, app, http.MethodGet, "/api/categories/2/products", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 2)

	status, raw = doJSON(t, app, http.MethodGet, "/api/users/1/products", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 3)

	status, _ = doJSON(t, app, http.MethodGet, "/api/users/42/products", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, app, http.MethodGet, "/api/categories/x/products", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	doJSON(t, app, http.MethodGet, "/api/categories", nil)

	status, raw := doJSON(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "catalogstub_http")
}

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApp(t)

	status, raw := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)

	var body struct {
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "healthy", body.Checks["database"])
}
