package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"searchorder/internal/catalog"
	"searchorder/internal/disambiguation"
	"searchorder/internal/dispatch"
	"searchorder/internal/order"
	"searchorder/internal/providers"
	"searchorder/internal/providers/mocks"
	"searchorder/pkg/platform/sentinel"
)

type nopFetcher struct{}

func (nopFetcher) Fetch(context.Context, disambiguation.Request) disambiguation.Result {
	return disambiguation.Result{}
}

func (nopFetcher) SearchOrganisations(context.Context, string) ([]providers.OrgSuggestion, error) {
	return nil, nil
}

func newWizard(t *testing.T, id string) *order.Wizard {
	t.Helper()
	ctrl := gomock.NewController(t)
	dispatcher, err := dispatch.New(mocks.NewMockReportCreator(ctrl))
	require.NoError(t, err)
	w, err := order.NewWizard(id, catalog.SubjectIndividual, order.Deps{
		Catalog:   catalog.Default(),
		Fetcher:   nopFetcher{},
		Registry:  mocks.NewMockRegistry(ctrl),
		Submitter: dispatcher,
	})
	require.NoError(t, err)
	return w
}

func TestInMemoryOrderStore(t *testing.T) {
	store := New()
	ctx := context.Background()

	t.Run("FindByID for missing order wraps ErrNotFound", func(t *testing.T) {
		_, err := store.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("Save then FindByID returns the same wizard", func(t *testing.T) {
		w := newWizard(t, "order-1")
		require.NoError(t, store.Save(ctx, w))

		got, err := store.FindByID(ctx, "order-1")
		require.NoError(t, err)
		assert.Same(t, w, got)
	})

	t.Run("Delete removes the order", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "order-1"))
		_, err := store.FindByID(ctx, "order-1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		assert.ErrorIs(t, store.Delete(ctx, "order-1"), sentinel.ErrNotFound)
	})
}

func TestInMemoryOrderStore_Concurrent(t *testing.T) {
	store := New()
	ctx := context.Background()

	wizards := make([]*order.Wizard, 20)
	for i := range wizards {
		wizards[i] = newWizard(t, fmt.Sprintf("order-%d", i))
	}

	var wg sync.WaitGroup
	for _, w := range wizards {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, w)
			_, _ = store.FindByID(ctx, w.ID())
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, store.Len())
}
