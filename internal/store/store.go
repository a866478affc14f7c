// Package store persists signatures in PostgreSQL through a pgx pool.
//
// Every operation acquires its own connection from the pool and releases it
// when the operation returns, whether it succeeded or not.
package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/JonMunkholm/petition/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

const (
	insertSignature = `
INSERT INTO signatures
(name, nationalId, comment, aLista)
VALUES
($1, $2, $3, $4)`

	selectSignatures = `
SELECT id, name, nationalId, comment, aLista, created
FROM signatures
ORDER BY id`

	dropSignatures = `DROP TABLE IF EXISTS signatures`
)

// Store is the signature table adapter.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a Store that runs its queries on pool. The caller owns the
// pool and closes it.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// withConn runs fn on a connection acquired from the pool and always
// releases it afterwards.
func (s *Store) withConn(ctx context.Context, fn func(*pgxpool.Conn) error) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(conn)
}

// Insert stores sig and returns the command tag of the insert. The ID and
// Created fields of sig are ignored; the database assigns them.
func (s *Store) Insert(ctx context.Context, sig core.Signature) (pgconn.CommandTag, error) {
	var tag pgconn.CommandTag
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		var err error
		tag, err = conn.Exec(ctx, insertSignature, sig.Name, sig.NationalID, sig.Comment, sig.AList)
		return err
	})
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("insert signature: %w", err)
	}
	return tag, nil
}

// List returns all signatures ordered by ascending id.
func (s *Store) List(ctx context.Context) ([]core.Signature, error) {
	var list []core.Signature
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, selectSignatures)
		if err != nil {
			return err
		}
		list, err = pgx.CollectRows(rows, scanSignature)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list signatures: %w", err)
	}
	return list, nil
}

func scanSignature(row pgx.CollectableRow) (core.Signature, error) {
	var sig core.Signature
	err := row.Scan(&sig.ID, &sig.Name, &sig.NationalID, &sig.Comment, &sig.AList, &sig.Created)
	return sig, err
}

// CreateSchema creates the signatures table if it does not exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	return s.exec(ctx, "create schema", schema)
}

// DropSchema drops the signatures table and everything in it.
func (s *Store) DropSchema(ctx context.Context) error {
	return s.exec(ctx, "drop schema", dropSignatures)
}

func (s *Store) exec(ctx context.Context, op, sql string) error {
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		_, err := conn.Exec(ctx, sql)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
