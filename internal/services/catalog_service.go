package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sisventas/separata-backend/internal/models"
)

// CatalogService resolves catalog items from the remote catalog API. The
// catalog is an external collaborator; only the lookup is consumed here.
type CatalogService struct {
	baseURL string
	client  *http.Client
}

func NewCatalogService() *CatalogService {
	baseURL := os.Getenv("CATALOG_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9080"
	}

	return &CatalogService{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewCatalogServiceWithURL creates a catalog service against a specific base URL
func NewCatalogServiceWithURL(baseURL string) *CatalogService {
	s := NewCatalogService()
	s.baseURL = baseURL
	return s
}

// GetItemByCode fetches the catalog snapshot for a 6-digit item code
func (s *CatalogService) GetItemByCode(code string) (*models.CatalogItem, error) {
	url := fmt.Sprintf("%s/api/v1/items/%s", s.baseURL, code)

	resp, err := s.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCatalogItemNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d for code %s", resp.StatusCode, code)
	}

	var item models.CatalogItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return &item, nil
}
