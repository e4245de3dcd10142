package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chargeup/internal/adapters/cas"
	"go.trai.ch/chargeup/internal/core/domain"
)

func receipt(sequence string, ok bool) domain.Receipt {
	r := domain.Receipt{
		Sequence:    sequence,
		Platform:    "linux",
		Fingerprint: "9a1f0c2b3d4e5f60",
		Succeeded:   ok,
		Steps:       []domain.StepRecord{{StepID: "install", Status: "succeeded"}},
		Timestamp:   time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
	if !ok {
		r.FailedStep = "install"
		r.Steps[0] = domain.StepRecord{StepID: "install", Status: "failed", Detail: "exit status 100"}
	}
	return r
}

func TestStore_PutAndGet(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "state", cas.StoreFilename))
	require.NoError(t, err)

	got, err := store.Get("llvm")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Put(receipt("llvm", true)))

	got, err = store.Get("llvm")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, receipt("llvm", true), *got)
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), cas.StoreFilename)

	store1, err := cas.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store1.Put(receipt("rust", true)))
	require.NoError(t, store1.Put(receipt("debugger", false)))
	require.NoError(t, store1.Put(receipt("rust", false)))

	store2, err := cas.NewStore(path)
	require.NoError(t, err)

	list, err := store2.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "debugger", list[0].Sequence)
	assert.Equal(t, "rust", list[1].Sequence)
	assert.False(t, list[1].Succeeded, "last put wins")
	assert.Equal(t, "install", list[1].FailedStep)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), cas.StoreFilename)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := cas.NewStore(path)
	require.ErrorIs(t, err, domain.ErrStoreReadFailed)
}

func TestStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), cas.StoreFilename)
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	store, err := cas.NewStore(path)
	require.NoError(t, err)

	list, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_WriteFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "state")

	store, err := cas.NewStore(filepath.Join(blocker, cas.StoreFilename))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err = store.Put(receipt("llvm", true))
	require.ErrorIs(t, err, domain.ErrStoreWriteFailed)
}
