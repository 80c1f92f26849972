package types

// RecordTypeUser is the sort key value for user records. The table's
// partition/sort key space is shared, so other record types can live
// alongside users later.
const RecordTypeUser = "user"

// User represents an identity record in the single-table layout.
// The raw key attributes (hk, sk, sk2) are only meaningful to the store;
// everything outside the store package should treat Email and ID as the
// identifying fields.
type User struct {
	// Email is the user's email address and the table's partition key.
	Email string `json:"email" dynamodbav:"hk"`

	// RecordType is the sort key, fixed to RecordTypeUser for identity records.
	RecordType string `json:"-" dynamodbav:"sk"`

	// ID is an opaque generated identifier, immutable once created.
	// It is the hash key of the secondary index so profiles can be
	// fetched without knowing the email.
	ID string `json:"id" dynamodbav:"sk2"`

	// PasswordHash stores the salted one-way hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" dynamodbav:"password"`

	// CreatedAt is the creation time in epoch milliseconds.
	CreatedAt int64 `json:"createdAt" dynamodbav:"createdAt"`

	// UpdatedAt is the last update time in epoch milliseconds.
	UpdatedAt int64 `json:"updatedAt" dynamodbav:"updatedAt"`
}

// PublicUser is the externally safe projection of a User: no password
// hash, no record type, and the single-table key names replaced with
// human-readable ones. It is the only user shape returned to callers or
// embedded in tokens.
type PublicUser struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

// Public projects the record to its public view. Absent fields carry
// through as zero values.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
