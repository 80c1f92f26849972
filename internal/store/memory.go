package store

import (
	"context"
	"sync"

	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MemoryBackend is an in-memory Backend for tests and local development.
// Items keep insertion order per table so "first match" queries are
// deterministic.
type MemoryBackend struct {
	mu     sync.Mutex
	tables map[string][]Item
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{tables: make(map[string][]Item)}
}

func (b *MemoryBackend) Put(ctx context.Context, table string, item Item) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	hk := stringAttr(item, attrPartitionKey)
	sk := stringAttr(item, attrSortKey)
	for i, existing := range b.tables[table] {
		if stringAttr(existing, attrPartitionKey) == hk && stringAttr(existing, attrSortKey) == sk {
			b.tables[table][i] = item
			return nil
		}
	}
	b.tables[table] = append(b.tables[table], item)
	return nil
}

func (b *MemoryBackend) QueryByPartitionKey(ctx context.Context, table, hk string) ([]Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var matches []Item
	for _, item := range b.tables[table] {
		if stringAttr(item, attrPartitionKey) == hk {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

func (b *MemoryBackend) QueryByIndex(ctx context.Context, table, index, sk2, sk string) ([]Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var matches []Item
	for _, item := range b.tables[table] {
		if stringAttr(item, attrIndexKey) == sk2 && stringAttr(item, attrSortKey) == sk {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

func stringAttr(item Item, name string) string {
	if v, ok := item[name].(*ddbtypes.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
