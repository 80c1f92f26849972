package store

import (
	"context"

	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item is a single record in its store-native attribute representation.
type Item = map[string]ddbtypes.AttributeValue

// Key attribute names of the single-table layout. The partition key
// carries the email, the sort key the record type, and sk2 feeds the
// secondary index for id lookups.
const (
	attrPartitionKey = "hk"
	attrSortKey      = "sk"
	attrIndexKey     = "sk2"
)

// Backend defines the key-value operations the repositories need. Any
// single-table backend (or an in-memory fake for tests) can satisfy it.
type Backend interface {
	// Put writes one item, replacing any existing item with the same
	// partition and sort key.
	Put(ctx context.Context, table string, item Item) error

	// QueryByPartitionKey returns the items whose partition key equals hk.
	QueryByPartitionKey(ctx context.Context, table, hk string) ([]Item, error)

	// QueryByIndex returns the items in the named secondary index whose
	// index key equals sk2 and whose sort key equals sk.
	QueryByIndex(ctx context.Context, table, index, sk2, sk string) ([]Item, error)
}
