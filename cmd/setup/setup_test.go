package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/petition/internal/core"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchemaStore struct {
	calls     []string
	rows      []core.Signature
	createErr error
}

func (f *fakeSchemaStore) Insert(_ context.Context, sig core.Signature) (pgconn.CommandTag, error) {
	f.rows = append(f.rows, sig)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeSchemaStore) List(context.Context) ([]core.Signature, error) {
	return f.rows, nil
}

func (f *fakeSchemaStore) CreateSchema(context.Context) error {
	f.calls = append(f.calls, "create")
	return f.createErr
}

func (f *fakeSchemaStore) DropSchema(context.Context) error {
	f.calls = append(f.calls, "drop")
	f.rows = nil
	return nil
}

func TestRun_DefaultSeed(t *testing.T) {
	st := &fakeSchemaStore{}

	require.NoError(t, run(context.Background(), st, options{drop: true}))

	assert.Equal(t, []string{"drop", "create"}, st.calls)
	assert.NotEmpty(t, st.rows)
}

func TestRun_NoDropNoSeed(t *testing.T) {
	st := &fakeSchemaStore{}

	require.NoError(t, run(context.Background(), st, options{noSeed: true}))

	assert.Equal(t, []string{"create"}, st.calls)
	assert.Empty(t, st.rows)
}

func TestRun_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
signatures:
  - name: "<i>Jon</i>"
    nationalId: "010101-1234"
    aLista: "on"
`), 0o600))

	st := &fakeSchemaStore{}
	require.NoError(t, run(context.Background(), st, options{seedFile: path}))

	require.Len(t, st.rows, 1)
	assert.Equal(t, "Jon", st.rows[0].Name)
	assert.Equal(t, "0101011234", st.rows[0].NationalID)
	assert.False(t, st.rows[0].AList)
}

func TestRun_CreateFails(t *testing.T) {
	st := &fakeSchemaStore{createErr: errors.New("connection refused")}

	err := run(context.Background(), st, options{})

	require.Error(t, err)
	assert.Empty(t, st.rows)
	assert.Contains(t, core.FormatUserError(err), "DB001")
}

func TestRun_MissingSeedFile(t *testing.T) {
	err := run(context.Background(), &fakeSchemaStore{}, options{seedFile: "does-not-exist.yaml"})
	assert.ErrorContains(t, err, "open seed file")
}

func TestNewCommand_Flags(t *testing.T) {
	cmd := newCommand()

	drop, err := cmd.Flags().GetBool("drop")
	require.NoError(t, err)
	assert.True(t, drop)

	cmd.SetArgs([]string{"--seed", "x.yaml", "--no-seed"})
	cmd.RunE = nil
	cmd.Run = func(*cobra.Command, []string) {}
	assert.Error(t, cmd.Execute())
}
