package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Form field names as submitted by the signature form.
const (
	FieldName       = "name"
	FieldNationalID = "nationalId"
	FieldComment    = "comment"
	FieldALista     = "aLista"
)

// Form is a decoded signature submission. Values are kept exactly as the
// client sent them until Sanitize runs.
type Form struct {
	Name       string
	NationalID string
	Comment    string
	ALista     string
}

// Signature is one stored petition signature.
type Signature struct {
	ID         int64
	Name       string
	NationalID string
	Comment    string
	// AList reports whether the signer's name is shown on the public list.
	AList   bool
	Created time.Time
}

// Store persists signatures.
// Satisfied by *store.Store.
type Store interface {
	Insert(ctx context.Context, sig Signature) (pgconn.CommandTag, error)
	List(ctx context.Context) ([]Signature, error)
}
