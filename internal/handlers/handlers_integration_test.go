package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"techmarket/internal/database"
	"techmarket/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupApp sets up the full application on a fresh in-memory SQLite database.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.OpenSQLite("file:"+uuid.New().String()+"?mode=memory&cache=shared", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return server.New(db, server.Options{})
}

// do sends a request and decodes the JSON response body into out when given.
func do(t *testing.T, app *fiber.App, method, target string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(encoded)
		}
		reader = bytes.NewReader([]byte(raw))
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type message struct {
	Message string `json:"message"`
}

type userEnvelope struct {
	Message string                 `json:"message"`
	User    map[string]interface{} `json:"user"`
}

type productBody struct {
	ProductID   uint    `json:"product_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	CategoryID  *uint   `json:"category_id"`
	Price       float64 `json:"price"`
	StockCount  int     `json:"stock_count"`
	Brand       string  `json:"brand"`
	IsAvailable bool    `json:"is_available"`
}

func createProduct(t *testing.T, app *fiber.App, payload map[string]interface{}) productBody {
	t.Helper()
	var created struct {
		Message string      `json:"message"`
		Product productBody `json:"product"`
	}
	status := do(t, app, http.MethodPost, "/api/products", payload, &created)
	require.Equal(t, http.StatusCreated, status, "create %v", payload)
	return created.Product
}

func product(name string, price float64, brand string) map[string]interface{} {
	return map[string]interface{}{
		"name": name, "category": "Misc", "price": price,
		"stock_count": 1, "brand": brand, "is_available": true,
	}
}

func TestProductLifecycle(t *testing.T) {
	app := setupApp(t)

	var created struct {
		Message string      `json:"message"`
		Product productBody `json:"product"`
	}
	status := do(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "X", "category": "Y", "price": 10, "stock_count": 5, "brand": "Z", "is_available": true,
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Product created successfully", created.Message)
	require.NotZero(t, created.Product.ProductID)
	path := fmt.Sprintf("/api/products/%d", created.Product.ProductID)

	var fetched productBody
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, path, nil, &fetched))
	assert.Equal(t, created.Product, fetched)
	assert.Equal(t, "Y", fetched.Category)
	assert.Equal(t, 5, fetched.StockCount)

	var rejected message
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPatch, path, map[string]interface{}{"price": -1}, &rejected))
	assert.Equal(t, "Price must be a positive number", rejected.Message)
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, path, nil, &fetched))
	assert.Equal(t, 10.0, fetched.Price)

	var deleted struct {
		Message string      `json:"message"`
		Product productBody `json:"product"`
	}
	require.Equal(t, http.StatusOK, do(t, app, http.MethodDelete, path, nil, &deleted))
	assert.Equal(t, "Product deleted successfully", deleted.Message)
	assert.Equal(t, "X", deleted.Product.Name)

	var missing message
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, path, nil, &missing))
	assert.Equal(t, "Product not found", missing.Message)
}

func TestProductCreateValidation(t *testing.T) {
	app := setupApp(t)

	var resp message
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/products", map[string]interface{}{"name": "X"}, &resp))
	assert.Equal(t, "Missing required fields: category, price, stock_count, brand, is_available", resp.Message)

	payload := product("X", 10, "Z")
	payload["stock_count"] = 1.5
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/products", payload, &resp))
	assert.Equal(t, "Stock count must be a non-negative integer", resp.Message)

	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/products", `{"name":`, &resp))
	assert.Equal(t, "Invalid request body", resp.Message)

	// absent fields are reported ahead of a wrongly typed one
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/products", `{"price":"abc"}`, &resp))
	assert.Equal(t, "Missing required fields: name, category, stock_count, brand, is_available", resp.Message)
	payload = product("X", 10, "Z")
	payload["price"] = "abc"
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/products", payload, &resp))
	assert.Equal(t, "Price must be a positive number", resp.Message)

	payload = product("X", 10.555, "Z")
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/products", payload, &resp))
	assert.Equal(t, "Price must not exceed 99999999.99 and may have at most 2 decimal places", resp.Message)
	payload = product("X", 1e9, "Z")
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/products", payload, &resp))
	assert.Equal(t, "Price must not exceed 99999999.99 and may have at most 2 decimal places", resp.Message)
	payload = product("X", 10, "Z")
	payload["stock_count"] = 3000000000
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/products", payload, &resp))
	assert.Equal(t, "Stock count must not exceed 2147483647", resp.Message)
}

func TestProductDuplicateName(t *testing.T) {
	app := setupApp(t)
	createProduct(t, app, product("Laptop", 10, "Acme"))
	createProduct(t, app, product("laptop", 10, "Acme"))

	var resp message
	assert.Equal(t, http.StatusConflict, do(t, app, http.MethodPost, "/api/products", product("Laptop", 20, "Acme"), &resp))
	assert.Equal(t, "Product with name 'Laptop' already exists", resp.Message)
}

func TestProductSearch(t *testing.T) {
	app := setupApp(t)
	createProduct(t, app, product("A", 30, "Acme"))
	createProduct(t, app, product("B", 10, "Zeta"))
	createProduct(t, app, product("C", 30, "acme"))
	createProduct(t, app, product("D", 20, "Zeta"))

	names := func(query string) []string {
		var products []productBody
		require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/api/products"+query, nil, &products))
		out := []string{}
		for _, p := range products {
			out = append(out, p.Name)
		}
		return out
	}

	assert.Equal(t, []string{"A", "B", "C", "D"}, names(""))
	assert.Equal(t, []string{"B", "D", "A", "C"}, names("?sort=price_asc"))
	assert.Equal(t, []string{"A", "C", "D", "B"}, names("?sort=price_desc"))
	assert.Equal(t, []string{"A", "C"}, names("?brand=ACME"))
	assert.Equal(t, []string{"B", "D"}, names("?minPrice=10&maxPrice=20"))
	assert.Equal(t, []string{}, names("?available=false"))

	var resp message
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodGet, "/api/products?minPrice=100&maxPrice=50", nil, &resp))
	assert.Equal(t, "minPrice cannot be greater than maxPrice", resp.Message)
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodGet, "/api/products?sort=name", nil, &resp))
}

func TestProductUpdate(t *testing.T) {
	app := setupApp(t)
	p := createProduct(t, app, product("Old", 10, "Acme"))
	createProduct(t, app, product("Taken", 10, "Acme"))
	path := fmt.Sprintf("/api/products/%d", p.ProductID)

	var updated struct {
		Message string      `json:"message"`
		Product productBody `json:"product"`
	}
	require.Equal(t, http.StatusOK, do(t, app, http.MethodPatch, path,
		map[string]interface{}{"name": "New", "stock_count": 0, "product_id": 999}, &updated))
	assert.Equal(t, "Product updated successfully", updated.Message)
	assert.Equal(t, "New", updated.Product.Name)
	assert.Equal(t, 0, updated.Product.StockCount)
	assert.Equal(t, p.ProductID, updated.Product.ProductID)

	// Empty change set returns the row unchanged
	require.Equal(t, http.StatusOK, do(t, app, http.MethodPatch, path, map[string]interface{}{}, &updated))
	assert.Equal(t, "New", updated.Product.Name)

	var resp message
	assert.Equal(t, http.StatusConflict, do(t, app, http.MethodPatch, path, map[string]interface{}{"name": "Taken"}, &resp))
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodPatch, "/api/products/9999", map[string]interface{}{"price": 5}, &resp))
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPatch, "/api/products/abc", map[string]interface{}{"price": 5}, &resp))
	assert.Equal(t, "Invalid id: must be a positive integer", resp.Message)
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPatch, path, map[string]interface{}{"category_id": 42}, &resp))
	assert.Equal(t, "Category with id 42 does not exist", resp.Message)

	// an unknown product is a 404 even when the change would also conflict
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodPatch, "/api/products/9999", map[string]interface{}{"name": "Taken"}, &resp))
	assert.Equal(t, "Product not found", resp.Message)
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodPatch, "/api/products/9999", map[string]interface{}{"category_id": 42}, &resp))
	assert.Equal(t, "Product not found", resp.Message)
}

func TestCategories(t *testing.T) {
	app := setupApp(t)

	var created struct {
		Category struct {
			CategoryID uint   `json:"category_id"`
			Name       string `json:"name"`
		} `json:"category"`
	}
	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/api/categories",
		map[string]interface{}{"name": "Laptops", "description": "Portable"}, &created))
	categoryID := created.Category.CategoryID
	path := fmt.Sprintf("/api/categories/%d", categoryID)

	var resp message
	assert.Equal(t, http.StatusConflict, do(t, app, http.MethodPost, "/api/categories", map[string]interface{}{"name": "Laptops"}, &resp))
	assert.Equal(t, "Category with name 'Laptops' already exists", resp.Message)

	// category defaults to the referenced category's name
	p := createProduct(t, app, map[string]interface{}{
		"name": "Pro 14", "category_id": categoryID, "price": 999.99, "stock_count": 2, "brand": "Acme", "is_available": true,
	})
	assert.Equal(t, "Laptops", p.Category)

	var withProducts struct {
		Name     string        `json:"name"`
		Products []productBody `json:"products"`
	}
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, path+"/products", nil, &withProducts))
	assert.Equal(t, "Laptops", withProducts.Name)
	require.Len(t, withProducts.Products, 1)
	assert.Equal(t, "Pro 14", withProducts.Products[0].Name)

	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodDelete, path, nil, &resp))
	assert.Equal(t, "Cannot delete category with associated products", resp.Message)

	require.Equal(t, http.StatusOK, do(t, app, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ProductID), nil, nil))
	require.Equal(t, http.StatusOK, do(t, app, http.MethodDelete, path, nil, &resp))
	assert.Equal(t, "Category deleted successfully", resp.Message)
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, path, nil, &resp))
}

func TestUsersNeverExposePasswordHash(t *testing.T) {
	app := setupApp(t)

	var created userEnvelope
	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/api/users", map[string]interface{}{
		"username": "ann", "email": "ann@example.com", "password_hash": "secret-hash",
	}, &created))
	assert.Equal(t, "User created successfully", created.Message)
	assert.NotContains(t, created.User, "password_hash")
	userID := uint(created.User["user_id"].(float64))

	var listed []map[string]interface{}
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/api/users", nil, &listed))
	require.Len(t, listed, 1)
	assert.NotContains(t, listed[0], "password_hash")

	var resp message
	assert.Equal(t, http.StatusConflict, do(t, app, http.MethodPost, "/api/users", map[string]interface{}{
		"username": "ann", "email": "other@example.com", "password_hash": "h",
	}, &resp))
	assert.Equal(t, "User with username 'ann' already exists", resp.Message)
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/users", map[string]interface{}{
		"username": "bob", "email": "bob@nowhere", "password_hash": "h",
	}, &resp))

	var updated userEnvelope
	require.Equal(t, http.StatusOK, do(t, app, http.MethodPatch, fmt.Sprintf("/api/users/%d", userID),
		map[string]interface{}{"first_name": "Ann"}, &updated))
	assert.Equal(t, "Ann", updated.User["first_name"])
	assert.NotContains(t, updated.User, "password_hash")
}

func TestReviews(t *testing.T) {
	app := setupApp(t)
	p := createProduct(t, app, product("Laptop", 1000, "Acme"))

	var user userEnvelope
	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/api/users", map[string]interface{}{
		"username": "ann", "email": "ann@example.com", "password_hash": "h",
	}, &user))
	userID := uint(user.User["user_id"].(float64))

	review := map[string]interface{}{"product_id": p.ProductID, "user_id": userID, "rating": 5, "comment": "Great"}
	var created struct {
		Message string `json:"message"`
		Review  struct {
			ReviewID uint `json:"review_id"`
			Rating   int  `json:"rating"`
		} `json:"review"`
	}
	require.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/api/reviews", review, &created))
	assert.Equal(t, "Review created successfully", created.Message)

	var resp message
	assert.Equal(t, http.StatusConflict, do(t, app, http.MethodPost, "/api/reviews", review, &resp))
	assert.Equal(t, "User has already reviewed this product", resp.Message)

	review["rating"] = 6
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/reviews", review, &resp))
	assert.Equal(t, "Rating must be an integer between 1 and 5", resp.Message)

	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodPost, "/api/reviews",
		map[string]interface{}{"product_id": 999, "user_id": userID, "rating": 3}, &resp))
	assert.Equal(t, "Product not found", resp.Message)

	var detail map[string]interface{}
	reviewPath := fmt.Sprintf("/api/reviews/%d", created.Review.ReviewID)
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, reviewPath, nil, &detail))
	assert.Equal(t, "Laptop", detail["product_name"])
	assert.Equal(t, "ann", detail["username"])

	var withReviews struct {
		Reviews []map[string]interface{} `json:"reviews"`
	}
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d/reviews", p.ProductID), nil, &withReviews))
	require.Len(t, withReviews.Reviews, 1)
	assert.Equal(t, "ann", withReviews.Reviews[0]["username"])

	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/reviews", userID), nil, &withReviews))
	require.Len(t, withReviews.Reviews, 1)
	assert.Equal(t, "Laptop", withReviews.Reviews[0]["product_name"])

	var byProduct []map[string]interface{}
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, fmt.Sprintf("/api/reviews/product/%d", p.ProductID), nil, &byProduct))
	assert.Len(t, byProduct, 1)
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, "/api/reviews/user/999", nil, &resp))

	var updated struct {
		Review struct {
			Rating    int  `json:"rating"`
			ProductID uint `json:"product_id"`
		} `json:"review"`
	}
	require.Equal(t, http.StatusOK, do(t, app, http.MethodPatch, reviewPath,
		map[string]interface{}{"rating": 3, "product_id": 999}, &updated))
	assert.Equal(t, 3, updated.Review.Rating)
	assert.Equal(t, p.ProductID, updated.Review.ProductID)
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodPatch, "/api/reviews/999", map[string]interface{}{"rating": 3}, &resp))

	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ProductID), nil, &resp))
	assert.Equal(t, "Resource is referenced by other records or references a missing record", resp.Message)
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", userID), nil, &resp))
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, reviewPath, nil, &detail))
	assert.Equal(t, "Laptop", detail["product_name"])

	require.Equal(t, http.StatusOK, do(t, app, http.MethodDelete, reviewPath, nil, &resp))
	assert.Equal(t, "Review deleted successfully", resp.Message)
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, reviewPath, nil, &resp))
}

func TestRootHealthAndUnknownRoutes(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "You are using TechMarket API", string(body))

	var health map[string]string
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/health", nil, &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "up", health["database"])

	var notFound message
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, "/api/nothing", nil, &notFound))
	assert.Equal(t, "Resource not found: /api/nothing", notFound.Message)
}
