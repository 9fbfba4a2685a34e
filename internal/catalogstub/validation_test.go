package catalogstub

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"catalogseed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	valid := func() models.CreateProductRequest {
		return models.CreateProductRequest{
			Name:        "Producto_01",
			Price:       mustPrice(t, "19.99"),
			UserID:      "1",
			CategoryIDs: []models.ID{"1", "2"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*models.CreateProductRequest)
		fields map[string]string
	}{
		{"valid", func(*models.CreateProductRequest) {}, nil},
		{"missing name", func(r *models.CreateProductRequest) { r.Name = "" },
			map[string]string{"name": "name is required"}},
		{"short name", func(r *models.CreateProductRequest) { r.Name = "ab" },
			map[string]string{"name": "name must be at least 3 characters"}},
		{"zero price", func(r *models.CreateProductRequest) { r.Price = mustPrice(t, "0") },
			map[string]string{"price": "price must be greater than 0"}},
		{"long description", func(r *models.CreateProductRequest) { r.Description = strings.Repeat("d", 501) },
			map[string]string{"description": "description must be at most 500 characters"}},
		{"non numeric owner", func(r *models.CreateProductRequest) { r.UserID = "abc" },
			map[string]string{"userId": "userId must hold positive integer ids"}},
		{"no categories", func(r *models.CreateProductRequest) { r.CategoryIDs = nil },
			map[string]string{"categoryIds": "categoryIds needs at least 1 entries"}},
		{"bad category id", func(r *models.CreateProductRequest) { r.CategoryIDs = []models.ID{"1", "-3", "x"} },
			map[string]string{"categoryIds": "categoryIds must hold positive integer ids"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := validateRequest(req)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, models.CodeValidation, appErr.Code)
			assert.Equal(t, tt.fields, appErr.Fields)
		})
	}
}

func TestValidateRequest_UserFields(t *testing.T) {
	err := validateRequest(models.CreateUserRequest{Name: "Ana", Email: "not-an-email", Password: "x"})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, map[string]string{"email": "email is not a valid email address"}, appErr.Fields)
}

func TestCreateCategory_NameLength(t *testing.T) {
	app, _ := newTestApp(t)

	status, raw := doJSON(t, app, http.MethodPost, "/api/categories",
		map[string]string{"name": strings.Repeat("c", 150)})
	assert.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = doJSON(t, app, http.MethodPost, "/api/categories",
		map[string]string{"name": strings.Repeat("c", 151)})
	require.Equal(t, http.StatusBadRequest, status, string(raw))
	var resp struct {
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, "name must be at most 150 characters", resp.Details["name"])
}

func mustPrice(t *testing.T, s string) models.Price {
	t.Helper()
	p, err := models.ParsePrice(s)
	require.NoError(t, err)
	return p
}
