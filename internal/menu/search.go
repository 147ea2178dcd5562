package menu

import (
	"context"
	"strings"
)

type Searcher interface {
	Search(ctx context.Context, q string, offset, limit int) (int64, []Item, error)
}

// MemorySearcher matches the query against name and description of the
// in-process catalog. Every whitespace-separated term has to match.
type MemorySearcher struct {
	Catalog *Catalog
}

func (s *MemorySearcher) Search(_ context.Context, q string, offset, limit int) (int64, []Item, error) {
	terms := strings.Fields(strings.ToLower(q))
	if len(terms) == 0 {
		return 0, []Item{}, nil
	}

	var hits []Item
	for _, it := range s.Catalog.items {
		text := strings.ToLower(it.Name + " " + it.Description)
		if matchesAll(text, terms) {
			hits = append(hits, it)
		}
	}

	return int64(len(hits)), page(hits, offset, limit), nil
}

func matchesAll(text string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

func page(items []Item, offset, limit int) []Item {
	if offset >= len(items) {
		return []Item{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]Item, end-offset)
	copy(out, items[offset:end])
	return out
}
