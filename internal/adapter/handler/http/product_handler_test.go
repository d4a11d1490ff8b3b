package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/sklep-internetowy/backend/internal/adapter/config"
	"github.com/sklep-internetowy/backend/internal/core/domain"
	"github.com/sklep-internetowy/backend/internal/core/port"
	"github.com/sklep-internetowy/backend/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProductTestRouter(t *testing.T, svc port.ProductService, verifier port.TokenVerifier) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conf := &config.Config{
		App:  &config.App{Mode: config.AppModeDevelop},
		Auth: &config.Auth{AdminRole: "admin"},
	}

	handler, err := NewProductHandler(svc, zap.NewNop())
	require.NoError(t, err)

	router, err := NewProductRouter(conf, verifier, handler, zap.NewNop())
	require.NoError(t, err)
	return router
}

func TestProductHandler_PublicReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock.NewMockProductService(ctrl)
	svc.EXPECT().ListProducts(gomock.Any()).Return([]*domain.Product{
		{ID: 1, Name: "Desk lamp", Price: mustDecimal(t, "19.99"), Category: "home"},
	}, nil)
	svc.EXPECT().GetProduct(gomock.Any(), uint64(1)).
		Return(&domain.Product{ID: 1, Name: "Desk lamp", Price: mustDecimal(t, "19.99")}, nil)
	svc.EXPECT().GetProduct(gomock.Any(), uint64(2)).
		Return(nil, domain.ErrDataNotFound)

	router := newProductTestRouter(t, svc, newTestVerifier(ctrl))

	// no token on any of these
	rec := perform(router, http.MethodGet, "/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Desk lamp", list[0]["name"])
	assert.Equal(t, "19.99", list[0]["price"])

	rec = perform(router, http.MethodGet, "/products/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = perform(router, http.MethodGet, "/products/2", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_WriteAccess(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		expStatus int
	}{
		{name: "no token", token: "", expStatus: http.StatusUnauthorized},
		{name: "plain user", token: userToken, expStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router := newProductTestRouter(t, mock.NewMockProductService(ctrl), newTestVerifier(ctrl))
			rec := perform(router, http.MethodPost, "/products", tt.token,
				`{"name":"Desk lamp","price":19.99,"category":"home"}`)

			require.Equal(t, tt.expStatus, rec.Code)
		})
	}
}

func TestProductHandler_CreateProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock.NewMockProductService(ctrl)
	svc.EXPECT().CreateProduct(gomock.Any(), "Desk lamp", mustDecimal(t, "19.99"), "home").
		Return(&domain.Product{ID: 1, Name: "Desk lamp", Price: mustDecimal(t, "19.99"), Category: "home"}, nil)

	router := newProductTestRouter(t, svc, newTestVerifier(ctrl))
	rec := perform(router, http.MethodPost, "/products", adminToken,
		`{"name":"Desk lamp","price":19.99,"category":"home"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["id"])
	assert.Equal(t, "19.99", resp["price"])
}

func TestProductHandler_CreateProduct_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no price", body: `{"name":"Desk lamp","category":"home"}`},
		{name: "no category", body: `{"name":"Desk lamp","price":19.99}`},
		{name: "malformed body", body: `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router := newProductTestRouter(t, mock.NewMockProductService(ctrl), newTestVerifier(ctrl))
			rec := perform(router, http.MethodPost, "/products", adminToken, tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestProductHandler_UpdateProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock.NewMockProductService(ctrl)
	svc.EXPECT().UpdateProduct(gomock.Any(), uint64(1), gomock.Any()).
		DoAndReturn(func(_ any, _ uint64, update port.ProductUpdate) (*domain.Product, error) {
			require.NotNil(t, update.Price)
			assert.Equal(t, "5.5", update.Price.String())
			assert.Nil(t, update.Name)
			return &domain.Product{ID: 1, Name: "Desk lamp", Price: *update.Price}, nil
		})
	svc.EXPECT().UpdateProduct(gomock.Any(), uint64(1), port.ProductUpdate{}).
		Return(nil, domain.ErrNoUpdatedData)

	router := newProductTestRouter(t, svc, newTestVerifier(ctrl))

	rec := perform(router, http.MethodPut, "/products/1", adminToken, `{"price":5.5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = perform(router, http.MethodPut, "/products/1", adminToken, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock.NewMockProductService(ctrl)
	svc.EXPECT().DeleteProduct(gomock.Any(), uint64(1)).
		Return(&domain.Product{ID: 1, Name: "Desk lamp"}, nil)

	router := newProductTestRouter(t, svc, newTestVerifier(ctrl))
	rec := perform(router, http.MethodDelete, "/products/1", adminToken, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Desk lamp", resp["name"])
}
