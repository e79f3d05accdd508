package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
)

type fakeRepository struct {
	products []*Product
	company  *CompanyInfo
}

func (f *fakeRepository) ListActive(ctx context.Context, category string) ([]*Product, error) {
	if category == "" {
		return f.products, nil
	}
	var filtered []*Product
	for _, product := range f.products {
		if product.Category == category {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, productID string) (*Product, error) {
	for _, product := range f.products {
		if product.ID == productID {
			return product, nil
		}
	}
	return nil, ErrProductNotFound
}

func (f *fakeRepository) UpsertProduct(ctx context.Context, product *Product) error {
	f.products = append(f.products, product)
	return nil
}

func (f *fakeRepository) CompanyInfo(ctx context.Context) (*CompanyInfo, error) {
	if f.company == nil {
		return nil, ErrCompanyInfoNotFound
	}
	return f.company, nil
}

func (f *fakeRepository) UpsertCompanyInfo(ctx context.Context, info *CompanyInfo) error {
	f.company = info
	return nil
}

func newCatalogRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(repo, otel.Tracer("test"))
	handler.RegisterRoutes(r.Group("/api"))
	return r
}

func seedRepo() *fakeRepository {
	return &fakeRepository{
		products: []*Product{
			{ID: "1", Name: "Miniatura de Personagem", Category: "Miniaturas", Price: "R$ 45,00"},
			{ID: "2", Name: "Suporte para Celular", Category: "Utilitários", Price: "R$ 25,00"},
		},
		company: &CompanyInfo{Name: "3D Stuff", Email: "contato@3dstuff.com.br"},
	}
}

func TestListProducts(t *testing.T) {
	router := newCatalogRouter(seedRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Miniatura de Personagem")
	assert.Contains(t, w.Body.String(), "Suporte para Celular")
}

func TestListProductsByCategory(t *testing.T) {
	router := newCatalogRouter(seedRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?category=Miniaturas", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Miniatura de Personagem")
	assert.NotContains(t, w.Body.String(), "Suporte para Celular")
}

func TestListProductsEmptyCategoryReturnsEmptyArray(t *testing.T) {
	router := newCatalogRouter(seedRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?category=Inexistente", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetProduct(t *testing.T) {
	router := newCatalogRouter(seedRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Miniatura de Personagem")
}

func TestGetProductNotFound(t *testing.T) {
	router := newCatalogRouter(seedRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/42", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCompanyInfo(t *testing.T) {
	router := newCatalogRouter(seedRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/company-info", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "3D Stuff")
}

func TestGetCompanyInfoNotSeeded(t *testing.T) {
	router := newCatalogRouter(&fakeRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/company-info", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
