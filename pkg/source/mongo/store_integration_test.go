//go:build integration

package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
)

func TestStore_Integration(t *testing.T) {
	uri := os.Getenv("ORGCHART_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("ORGCHART_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := "orgchart_test_" + uuid.NewString()[:8]
	store, err := Open(ctx, uri, db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.client.Database(db).Drop(context.Background())
		_ = store.Close(context.Background())
	})
	require.NoError(t, store.EnsureIndexes(ctx))

	root, b, c, d := uuid.NewString(), uuid.NewString(), uuid.NewString(), uuid.NewString()
	tree := &org.Tree{
		Root: org.Organization{UUID: root, ShortName: "HQ"},
		Descendants: []org.Organization{
			{UUID: c, ShortName: "Zulu", ParentOrg: &org.Ref{UUID: root}},
			{UUID: b, ShortName: "Alpha", ParentOrg: &org.Ref{UUID: root}},
			{UUID: d, ShortName: "Mike", ParentOrg: &org.Ref{UUID: b}},
		},
	}
	require.NoError(t, store.Save(ctx, tree))

	got, err := store.Fetch(ctx, root)
	require.NoError(t, err)
	require.Equal(t, "HQ", got.Root.ShortName)

	var names []string
	for _, o := range got.Descendants {
		names = append(names, o.ShortName)
	}
	require.Equal(t, []string{"Alpha", "Mike", "Zulu"}, names)
	require.Equal(t, 2, got.MaxDepth())

	sub, err := store.Fetch(ctx, b)
	require.NoError(t, err)
	require.Len(t, sub.Descendants, 1)

	_, err = store.Fetch(ctx, uuid.NewString())
	require.Equal(t, errors.ErrCodeOrgNotFound, errors.GetCode(err))
}
