package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/maison/app/models"
)

type stubProductStore struct {
	product models.Product
	list    []models.Product
	findErr error
	created *models.Product
}

func (s *stubProductStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	return s.product, s.findErr
}

func (s *stubProductStore) Create(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	s.created = p
	return nil
}

func (s *stubProductStore) List(context.Context) ([]models.Product, error) {
	return s.list, nil
}

func (s *stubProductStore) AddImage(context.Context, primitive.ObjectID, string) error {
	return nil
}

func createRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestCreateProductDefaults(t *testing.T) {
	store := &stubProductStore{}
	c := &ProductController{repo: store}

	w := httptest.NewRecorder()
	c.Create(w, createRequest(`{"title":"Linen Armchair","price":199.99}`))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, store.created)
	assert.True(t, store.created.InStock, "in_stock defaults to true")
	assert.Equal(t, 10, store.created.StockQty, "stock_qty defaults to 10")

	var got models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Linen Armchair", got.Title)
	assert.False(t, got.ID.IsZero())
}

func TestCreateProductExplicitValues(t *testing.T) {
	store := &stubProductStore{}
	c := &ProductController{repo: store}

	w := httptest.NewRecorder()
	c.Create(w, createRequest(`{"title":"Stool","price":30,"in_stock":false,"stock_qty":0,"sku":"ST-01"}`))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, store.created.InStock, "explicit false must not be overridden")
	assert.Equal(t, 0, store.created.StockQty, "explicit zero must not be overridden")
	assert.Equal(t, "ST-01", store.created.SKU)
}

func TestCreateProductValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"price":10}`},
		{"negative price", `{"title":"Rug","price":-5}`},
		{"negative stock", `{"title":"Rug","price":5,"stock_qty":-1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubProductStore{}
			c := &ProductController{repo: store}
			w := httptest.NewRecorder()
			c.Create(w, createRequest(tc.body))

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Nil(t, store.created, "invalid input must not be persisted")
		})
	}
}

func TestShowProduct(t *testing.T) {
	oid := primitive.NewObjectID()

	t.Run("invalid id", func(t *testing.T) {
		c := &ProductController{repo: &stubProductStore{}}
		w := httptest.NewRecorder()
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/abc", nil), "id", "abc")
		c.Show(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Invalid ID format", body["message"])
	})

	t.Run("not found", func(t *testing.T) {
		c := &ProductController{repo: &stubProductStore{findErr: mongo.ErrNoDocuments}}
		w := httptest.NewRecorder()
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/"+oid.Hex(), nil), "id", oid.Hex())
		c.Show(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Product not found", body["message"])
	})

	t.Run("found", func(t *testing.T) {
		c := &ProductController{repo: &stubProductStore{
			product: models.Product{ID: oid, Title: "Mirror", Price: 89.99, InStock: true, StockQty: 3},
		}}
		w := httptest.NewRecorder()
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/"+oid.Hex(), nil), "id", oid.Hex())
		c.Show(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var got models.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Mirror", got.Title)
		assert.Equal(t, oid.Hex(), got.ID.Hex())
	})
}

func TestListProducts(t *testing.T) {
	store := &stubProductStore{list: []models.Product{
		{Title: "Mirror"}, {Title: "Vase"},
	}}
	c := &ProductController{repo: store}

	w := httptest.NewRecorder()
	c.List(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}
