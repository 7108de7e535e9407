package migration

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"jobboard/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OrdersAndFilters(t *testing.T) {
	src := fstest.MapFS{
		"V2__add_index.sql":   {Data: []byte("CREATE INDEX x ON t (a);")},
		"V1__init.sql":        {Data: []byte("  CREATE TABLE t (a int);\n")},
		"README.md":           {Data: []byte("notes")},
		"V3_missing_sep.sql":  {Data: []byte("SELECT 1;")},
		"V10__later.sql":      {Data: []byte("SELECT 10;")},
		"nested/V4__skip.sql": {Data: []byte("SELECT 4;")},
	}

	migs, err := Load(src)
	require.NoError(t, err)
	require.Len(t, migs, 3)

	assert.Equal(t, []int64{1, 2, 10}, []int64{migs[0].Version, migs[1].Version, migs[2].Version})
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, "CREATE TABLE t (a int);", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoad_RejectsEmptyAndDuplicate(t *testing.T) {
	_, err := Load(fstest.MapFS{"V1__empty.sql": {Data: []byte("  \n")}})
	assert.ErrorIs(t, err, ErrEmptyMigration)

	_, err = Load(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	assert.ErrorIs(t, err, ErrDuplicateVersion)
}

func TestPlan(t *testing.T) {
	migs, err := Load(fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V2__b.sql": {Data: []byte("SELECT 2;")},
	})
	require.NoError(t, err)

	res, err := plan(migs, map[int64]string{1: migs[0].Checksum})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Applied, 1)
	assert.Equal(t, int64(2), res.Applied[0].Version)

	_, err = plan(migs, map[int64]string{1: "edited"})
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestEmbeddedSchemaLoads(t *testing.T) {
	migs, err := Load(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS jobs")
}

func TestRunner_SourceResolution(t *testing.T) {
	_, err := Runner{}.source()
	assert.Error(t, err)

	src := fstest.MapFS{}
	got, err := Runner{Source: src, Dir: "ignored"}.source()
	require.NoError(t, err)
	assert.Equal(t, fs.FS(src), got)
}
