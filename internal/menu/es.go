package menu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
)

// ESSearcher runs menu search against an Elasticsearch index seeded from
// the catalog. Hits are mapped back to catalog items by id so prices are
// always the catalog's.
type ESSearcher struct {
	ES      *elasticsearch.Client
	Index   string
	Catalog *Catalog
}

func NewESClient(url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch info: %s: %s", res.Status(), body)
	}
	return client, nil
}

// Seed indexes every catalog item under its id.
func (s *ESSearcher) Seed(ctx context.Context) error {
	for _, it := range s.Catalog.items {
		doc, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("marshal menu item %q: %w", it.ID, err)
		}
		res, err := s.ES.Index(
			s.Index,
			bytes.NewReader(doc),
			s.ES.Index.WithDocumentID(it.ID),
			s.ES.Index.WithContext(ctx),
		)
		if err != nil {
			return fmt.Errorf("index menu item %q: %w", it.ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("index menu item %q: %s", it.ID, res.Status())
		}
	}

	res, err := s.ES.Indices.Refresh(
		s.ES.Indices.Refresh.WithIndex(s.Index),
		s.ES.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("refresh menu index: %w", err)
	}
	res.Body.Close()
	return nil
}

func searchBody(q string, offset, limit int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": offset,
		"size": limit,
	}
}

func (s *ESSearcher) Search(ctx context.Context, q string, offset, limit int) (int64, []Item, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, []Item{}, nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchBody(q, offset, limit)); err != nil {
		return 0, nil, fmt.Errorf("encode search: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
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
		return 0, nil, fmt.Errorf("decode search: %w", err)
	}

	items := make([]Item, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		it, err := s.Catalog.Get(h.ID)
		if err != nil {
			continue
		}
		items = append(items, it)
	}
	return r.Hits.Total.Value, items, nil
}
