package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_GetItemByCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/items/003162":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"code": "003162",
				"description": "Yerba mate 1kg",
				"secondary_line": "Almacén",
				"regular_price": 10000,
				"unit_of_measure": "UN",
				"measure": "1",
				"stock_by_location": {"001": "10", "002": "4"}
			}`))
		case "/api/v1/items/000000":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	s := NewCatalogServiceWithURL(server.URL)

	t.Run("known code", func(t *testing.T) {
		item, err := s.GetItemByCode("003162")
		require.NoError(t, err)
		assert.Equal(t, "003162", item.Code)
		assert.Equal(t, "Yerba mate 1kg", item.Description)
		assert.Equal(t, int64(10000), item.RegularPrice)
		assert.Equal(t, "UN", item.UnitOfMeasure)
		assert.Len(t, item.Stock, 2)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := s.GetItemByCode("000000")
		assert.True(t, errors.Is(err, ErrCatalogItemNotFound))
	})

	t.Run("upstream failure", func(t *testing.T) {
		_, err := s.GetItemByCode("999999")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrCatalogItemNotFound))
	})
}
