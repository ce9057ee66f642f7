package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supertree-toolkit/stk/internal/testutil"
	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/treeset"
)

var sqlmockTime = time.Date(2011, 3, 1, 12, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testSet(t *testing.T) *treeset.Set {
	t.Helper()
	set := &treeset.Set{}
	for _, pair := range [][2]string{
		{"Hill_2011_1", "((A:1,B:1),C);"},
		{"Davis_2009_1", "(C,(D,E));"},
		{"Allen_2001_1", "((A,E),F);"},
	} {
		tree, err := newick.Parse(pair[1])
		require.NoError(t, err)
		require.NoError(t, set.Add(pair[0], tree))
	}
	return set
}

func TestOpenMigrates(t *testing.T) {
	s := setupTestStore(t)
	version, err := s.Version()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "collection.db")
	ctx := context.Background()

	s, err := Open(path, nil)
	require.NoError(t, err)
	_, err = s.Put(ctx, "t1", "(A,(B,C));", "a.tre")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPutGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	rec, err := s.Put(ctx, "Hill_2011_1", "( A:1.000 , B:1 ) ;", "hill.tre")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "(A:1,B:1);\n", rec.Newick)

	got, err := s.Get(ctx, "Hill_2011_1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "hill.tre", got.Origin)
	assert.False(t, got.CreatedAt.IsZero())

	tree, err := got.Tree()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, tree.Taxa())
}

func TestPutErrors(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "bad", "(A,B", "")
	assert.True(t, errors.Is(err, newick.ErrMalformedTree))

	_, err = s.Put(ctx, "t", "(A,B);", "")
	require.NoError(t, err)
	_, err = s.Put(ctx, "t", "(C,D);", "")
	assert.True(t, errors.Is(err, ErrExists))
}

func TestPutSetLoadOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	set := testSet(t)

	require.NoError(t, s.PutSet(ctx, set, "import"))
	back, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, set.Names(), back.Names())
	for i, tree := range set.Trees() {
		assert.Equal(t, newick.Format(tree), newick.Format(back.Trees()[i]))
	}
}

func TestPutSetIsAtomic(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "Davis_2009_1", "(X,Y);", "")
	require.NoError(t, err)

	err = s.PutSet(ctx, testSet(t), "import")
	assert.True(t, errors.Is(err, ErrExists))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDelete(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutSet(ctx, testSet(t), ""))

	require.NoError(t, s.Delete(ctx, "Davis_2009_1"))
	_, err := s.Get(ctx, "Davis_2009_1")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, "Davis_2009_1"), ErrNotFound))

	recs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Hill_2011_1", recs[0].Name)
	assert.Equal(t, "Allen_2001_1", recs[1].Name)
}

func TestStoreFailures(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		run       func(s *Store) error
		errMsg    string
	}{
		{
			name: "count fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trees`).
					WillReturnError(assert.AnError)
			},
			run: func(s *Store) error {
				_, err := s.Count(context.Background())
				return err
			},
			errMsg: "failed to count trees",
		},
		{
			name: "insert fails and rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trees WHERE name`).
					WithArgs("t").
					WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
				mock.ExpectExec(`INSERT INTO trees`).WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			run: func(s *Store) error {
				_, err := s.Put(context.Background(), "t", "(A,B);", "")
				return err
			},
			errMsg: "failed to store tree 't'",
		},
		{
			name: "commit fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trees WHERE name`).
					WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
				mock.ExpectExec(`INSERT INTO trees`).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit().WillReturnError(assert.AnError)
			},
			run: func(s *Store) error {
				_, err := s.Put(context.Background(), "t", "(A,B);", "")
				return err
			},
			errMsg: "failed to commit",
		},
		{
			name: "list fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, newick, origin, created_at FROM trees ORDER BY seq`).
					WillReturnError(assert.AnError)
			},
			run: func(s *Store) error {
				_, err := s.Load(context.Background())
				return err
			},
			errMsg: "failed to list trees",
		},
		{
			name: "stored tree is corrupt",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, newick, origin, created_at FROM trees ORDER BY seq`).
					WillReturnRows(sqlmock.NewRows(
						[]string{"id", "name", "newick", "origin", "created_at"}).
						AddRow("1", "t", "(A,", "", sqlmockTime))
			},
			run: func(s *Store) error {
				_, err := s.Load(context.Background())
				return err
			},
			errMsg: "stored tree 't'",
		},
		{
			name: "delete fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM trees`).WillReturnError(assert.AnError)
			},
			run: func(s *Store) error {
				return s.Delete(context.Background(), "t")
			},
			errMsg: "failed to delete tree",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			err = tt.run(New(db, testutil.NewTestLogger(t)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
