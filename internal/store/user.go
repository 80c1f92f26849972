package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/fullstack-app/apiserver/config"
	"github.com/fullstack-app/apiserver/internal/credentials"
	"github.com/fullstack-app/apiserver/types"
	"github.com/google/uuid"
)

// UserRepository handles persistence for identity records in the
// single-table layout.
type UserRepository struct {
	backend Backend
	table   string
	index   string
}

// NewUserRepository constructs a repository over the given backend.
// Table and index names are validated here, once, rather than on every
// call.
func NewUserRepository(backend Backend, cfg config.DatabaseConfig) (*UserRepository, error) {
	if cfg.Table == "" {
		return nil, fmt.Errorf("%w: table name", ErrConfiguration)
	}
	if cfg.IndexName == "" {
		return nil, fmt.Errorf("%w: index name", ErrConfiguration)
	}
	return &UserRepository{
		backend: backend,
		table:   cfg.Table,
		index:   cfg.IndexName,
	}, nil
}

// Register creates a new identity record. The plaintext password is
// hashed and discarded; only the hash is stored.
//
// Uniqueness is enforced by a read immediately before the write, which is
// not atomic: two concurrent registrations for the same email can both
// pass the check. This matches the single-table design, which has no
// native unique constraint.
func (r *UserRepository) Register(ctx context.Context, email, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if !credentials.ValidEmail(email) {
		return fmt.Errorf("%w: %q is not a valid email address", ErrValidation, email)
	}

	existing, err := r.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: user with email %q", ErrConflict, email)
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UnixMilli()
	user := types.User{
		Email:        email,
		RecordType:   types.RecordTypeUser,
		ID:           uuid.NewString(),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return r.backend.Put(ctx, r.table, item)
}

// GetByEmail returns the identity record for the given email, or nil if
// none exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !credentials.ValidEmail(email) {
		return nil, fmt.Errorf("%w: %q is not a valid email address", ErrValidation, email)
	}

	items, err := r.backend.QueryByPartitionKey(ctx, r.table, email)
	if err != nil {
		return nil, err
	}
	return firstUser(items)
}

// GetByID returns the identity record for the given external id, or nil
// if none exists. The lookup goes through the secondary index combined
// with the fixed record-type marker.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*types.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}

	items, err := r.backend.QueryByIndex(ctx, r.table, r.index, id, types.RecordTypeUser)
	if err != nil {
		return nil, err
	}
	return firstUser(items)
}

// firstUser decodes the first item of a query result into the identity
// shape. Decoding happens here, centrally, so callers never touch raw
// attribute maps.
func firstUser(items []Item) (*types.User, error) {
	if len(items) == 0 {
		return nil, nil
	}
	var user types.User
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &user, nil
}
