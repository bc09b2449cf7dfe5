// Package search keeps an Elasticsearch index of storefront products and queries it.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/config"
	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSearchUnavailable wraps transport and cluster failures
var ErrSearchUnavailable = errors.New("search: backend unavailable")

const indexMapping = `{
  "mappings": {
    "properties": {
      "name":        {"type": "text"},
      "slug":        {"type": "keyword"},
      "description": {"type": "text"},
      "categoryId":  {"type": "keyword"},
      "price":       {"type": "scaled_float", "scaling_factor": 100},
      "discount":    {"type": "integer"},
      "keywords":    {"type": "text"},
      "status":      {"type": "keyword"}
    }
  }
}`

// ProductDocument is the indexed form of a product
type ProductDocument struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	CategoryID  string   `json:"categoryId"`
	Price       float64  `json:"price"`
	Discount    int64    `json:"discount"`
	Images      []string `json:"images"`
	Keywords    []string `json:"keywords"`
	Status      string   `json:"status"`
}

// Result is one page of search hits, in relevance order
type Result struct {
	IDs   []uuid.UUID
	Total int64
}

// NewClient builds an Elasticsearch client and checks the cluster answers
func NewClient(ctx context.Context, cfg config.SearchConfig) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("%w: info returned %s", ErrSearchUnavailable, res.Status())
	}
	return client, nil
}

// ElasticProductIndex mirrors enabled products into an index and serves fuzzy name/description search.
// It subscribes to product.saved and product.disabled.
type ElasticProductIndex struct {
	client *elasticsearch.Client
	index  string
	logger *zap.Logger
}

// NewElasticProductIndex creates the index adapter
func NewElasticProductIndex(client *elasticsearch.Client, index string, logger *zap.Logger) *ElasticProductIndex {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ElasticProductIndex{client: client, index: index, logger: logger}
}

// EnsureIndex creates the index with its mapping when it does not exist yet
func (x *ElasticProductIndex) EnsureIndex(ctx context.Context) error {
	res, err := x.client.Indices.Exists([]string{x.index}, x.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = x.client.Indices.Create(x.index,
		x.client.Indices.Create.WithContext(ctx),
		x.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res)
	}
	x.logger.Info("search index created", zap.String("index", x.index))
	return nil
}

// Handle implements shared.EventHandler
func (x *ElasticProductIndex) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *catalog.ProductSavedEvent:
		if e.Status != catalog.ProductStatusEnable {
			return x.Remove(ctx, e.ProductID)
		}
		return x.Put(ctx, documentFromEvent(e))
	case *catalog.ProductDisabledEvent:
		return x.Remove(ctx, e.ProductID)
	}
	return nil
}

// EventTypes implements shared.EventHandler
func (x *ElasticProductIndex) EventTypes() []string {
	return []string{catalog.EventTypeProductSaved, catalog.EventTypeProductDisabled}
}

// Put indexes or replaces a document
func (x *ElasticProductIndex) Put(ctx context.Context, doc ProductDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal product document: %w", err)
	}

	res, err := x.client.Index(x.index, bytes.NewReader(body),
		x.client.Index.WithContext(ctx),
		x.client.Index.WithDocumentID(doc.ID),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index product", res)
	}
	return nil
}

// Remove deletes a document. A missing document is not an error.
func (x *ElasticProductIndex) Remove(ctx context.Context, id uuid.UUID) error {
	res, err := x.client.Delete(x.index, id.String(), x.client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete product", res)
	}
	return nil
}

// Search runs a fuzzy multi_match over name (boosted) and description
func (x *ElasticProductIndex) Search(ctx context.Context, query string, page shared.Pagination) (*Result, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"name^2", "description", "keywords"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"status": string(catalog.ProductStatusEnable)},
				},
			},
		},
		"from":    page.Offset(),
		"size":    page.Limit,
		"_source": false,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}

	res, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(&buf),
		x.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("search products", res)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := &Result{Total: r.Hits.Total.Value, IDs: make([]uuid.UUID, 0, len(r.Hits.Hits))}
	for _, h := range r.Hits.Hits {
		id, err := uuid.Parse(h.ID)
		if err != nil {
			x.logger.Warn("skipping search hit with foreign id", zap.String("id", h.ID))
			continue
		}
		out.IDs = append(out.IDs, id)
	}
	return out, nil
}

func documentFromEvent(e *catalog.ProductSavedEvent) ProductDocument {
	return ProductDocument{
		ID:          e.ProductID.String(),
		Name:        e.Name,
		Slug:        e.Slug,
		Description: e.Description,
		CategoryID:  e.CategoryID.String(),
		Price:       e.Price.InexactFloat64(),
		Discount:    e.Discount,
		Images:      e.Images,
		Keywords:    e.Keywords,
		Status:      string(e.Status),
	}
}

func responseError(op string, res *esapi.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("%w: %s: %s %s", ErrSearchUnavailable, op, res.Status(), bytes.TrimSpace(msg))
}

var _ shared.EventHandler = (*ElasticProductIndex)(nil)
