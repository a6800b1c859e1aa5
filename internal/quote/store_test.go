package quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQuote(t *testing.T, store *SQLiteStore, id string, createdAt time.Time, customer, notes, total string) {
	t.Helper()

	err := store.Insert(context.Background(), Quote{
		ID:           id,
		CreatedAt:    createdAt,
		CustomerName: customer,
		Notes:        notes,
		Kind:         KindScreenPrint,
		TemplateID:   "sp",
		Totals:       Totals{Subtotal: d(total), TaxPercent: d("0"), Tax: d("0"), Total: d(total)},
	})
	require.NoError(t, err)
}

func TestSQLiteStore_ListOrdersByDateDescAndReadsTotal(t *testing.T) {
	store := newSQLiteStore(t)
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	seedQuote(t, store, "a", base, "First", "note one", "100.50")
	seedQuote(t, store, "c", base.Add(50*time.Hour), "Third", "note three", "300.00")
	seedQuote(t, store, "b", base.Add(25*time.Hour+500*time.Millisecond), "Second", "note two", "200.25")

	quotes, err := store.List(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, quotes, 3)
	assert.Equal(t, []string{"Third", "Second", "First"}, []string{quotes[0].CustomerName, quotes[1].CustomerName, quotes[2].CustomerName})
	decEqual(t, "total 0", quotes[0].Total, "300")
	decEqual(t, "total 1", quotes[1].Total, "200.25")
	decEqual(t, "total 2", quotes[2].Total, "100.5")
	assert.Equal(t, KindScreenPrint, quotes[0].Kind)
	assert.True(t, quotes[1].CreatedAt.Equal(base.Add(25*time.Hour+500*time.Millisecond)))
}

func TestSQLiteStore_FilterByCustomerAndNotes(t *testing.T) {
	store := newSQLiteStore(t)
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	seedQuote(t, store, "a", base, "Lakeside Bakery", "red ink", "80")
	seedQuote(t, store, "b", base.Add(time.Hour), "Keychain Co", "vip customer", "120")
	seedQuote(t, store, "c", base.Add(2*time.Hour), "Prototype", "rush for bakery", "160")

	byCustomer, err := store.List(context.Background(), "Keychain")
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, "b", byCustomer[0].ID)

	byNotes, err := store.List(context.Background(), "bakery")
	require.NoError(t, err)
	assert.Len(t, byNotes, 2)
}

func TestSQLiteStore_SearchTreatsWildcardsLiterally(t *testing.T) {
	store := newSQLiteStore(t)
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	seedQuote(t, store, "a", base, "Spring Sale", "50% off reorder", "80")
	seedQuote(t, store, "b", base.Add(time.Hour), "Keychain Co", "500 pieces", "120")
	seedQuote(t, store, "c", base.Add(2*time.Hour), "Gym_Club", "", "160")
	seedQuote(t, store, "d", base.Add(3*time.Hour), "GymXClub", "", "40")

	percent, err := store.List(context.Background(), "50%")
	require.NoError(t, err)
	require.Len(t, percent, 1)
	assert.Equal(t, "a", percent[0].ID)

	underscore, err := store.List(context.Background(), "Gym_")
	require.NoError(t, err)
	require.Len(t, underscore, 1)
	assert.Equal(t, "c", underscore[0].ID)
}
