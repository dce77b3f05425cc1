package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchday/matchday-data/internal/dataset"
)

func TestMemoryCatalog(t *testing.T) {
	ctx := context.Background()
	cat := NewMemory()

	ok, err := cat.Contains(ctx, "Chelsea-2122")
	require.NoError(t, err)
	assert.False(t, ok)

	ds := &dataset.SeasonDataset{Key: "Chelsea-2122", Club: "Chelsea", Season: "2021/22"}
	require.NoError(t, cat.Publish(ctx, ds))

	ok, err = cat.Contains(ctx, "Chelsea-2122")
	require.NoError(t, err)
	assert.True(t, ok)

	keys, err := cat.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chelsea-2122"}, keys)
}

func TestMemoryCatalogPublishReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	cat := NewMemory()

	first := &dataset.SeasonDataset{Key: "Leeds-9900", Rows: make([]dataset.Row, 38)}
	require.NoError(t, cat.Publish(ctx, first))

	second := &dataset.SeasonDataset{Key: "Leeds-9900", Rows: make([]dataset.Row, 2)}
	require.NoError(t, cat.Publish(ctx, second))

	got, ok := cat.Get("Leeds-9900")
	require.True(t, ok)
	assert.Len(t, got.Rows, 2, "later publication replaces the earlier one")

	keys, err := cat.ListKeys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}
