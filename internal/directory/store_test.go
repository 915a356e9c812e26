package directory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/phonebook/backend/internal/domain"
)

func newSeededStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	store, err := NewStore(DefaultSeed(), opts...)
	require.NoError(t, err)
	return store
}

func TestStore_FindByName(t *testing.T) {
	store := newSeededStore(t)

	carol, ok := store.FindByName("Carol")
	require.True(t, ok)
	assert.Equal(t, "3", carol.ID)
	assert.Equal(t, "Baker St", carol.Street)
	assert.Equal(t, "London", carol.City)

	_, ok = store.FindByName("carol")
	assert.False(t, ok, "lookup is case sensitive")
}

func TestStore_InsertAssignsFreshID(t *testing.T) {
	store := newSeededStore(t)
	before := store.Count()

	added, err := store.Insert(domain.Person{ID: "1", Name: "Grace", Street: "Elm St", City: "Dublin"})
	require.NoError(t, err)

	assert.Equal(t, before+1, store.Count())
	assert.NotEmpty(t, added.ID)
	for _, p := range DefaultSeed() {
		assert.NotEqual(t, p.ID, added.ID)
	}
	assert.Nil(t, added.Phone)

	found, ok := store.FindByName("Grace")
	require.True(t, ok)
	assert.Equal(t, added, found)

	all := store.All()
	assert.Equal(t, "Grace", all[len(all)-1].Name)
}

func TestStore_InsertDuplicate(t *testing.T) {
	store := newSeededStore(t)
	before := store.All()

	_, err := store.Insert(domain.Person{Name: "Aaron", Street: "x", City: "y"})

	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Aaron", dup.Name)
	assert.Equal(t, before, store.All())
}

func TestStore_InsertRetriesTakenID(t *testing.T) {
	ids := []string{"3", "", "fresh"}
	gen := func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}
	store := newSeededStore(t, WithIDGenerator(gen))

	added, err := store.Insert(domain.Person{Name: "Grace", Street: "Elm St", City: "Dublin"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", added.ID)
}

func TestStore_InsertGeneratorError(t *testing.T) {
	store := newSeededStore(t, WithIDGenerator(func() (string, error) {
		return "", fmt.Errorf("clock unavailable")
	}))

	_, err := store.Insert(domain.Person{Name: "Grace", Street: "Elm St", City: "Dublin"})
	require.Error(t, err)
	assert.Equal(t, 6, store.Count())
}

func TestStore_InsertGivesUpOnExhaustedIDs(t *testing.T) {
	calls := 0
	store := newSeededStore(t, WithIDGenerator(func() (string, error) {
		calls++
		return "1", nil
	}))

	_, err := store.Insert(domain.Person{Name: "Grace", Street: "Elm St", City: "Dublin"})
	require.ErrorIs(t, err, ErrIDExhausted)
	assert.Equal(t, maxIDAttempts, calls)
	assert.Equal(t, 6, store.Count())

	_, found := store.FindByName("Grace")
	assert.False(t, found)
}

func TestNewPersonID_IsTimeBased(t *testing.T) {
	id, err := NewPersonID()
	require.NoError(t, err)

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(1), parsed.Version())
}

func TestStore_UpdatePhone(t *testing.T) {
	store := newSeededStore(t)
	original, _ := store.FindByName("Aaron")

	updated, ok := store.UpdatePhone("Aaron", domain.StringPtr("00000000"))
	require.True(t, ok)
	assert.Equal(t, "00000000", *updated.Phone)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.Street, updated.Street)
	assert.Equal(t, original.City, updated.City)
	assert.Equal(t, "Aaron", store.All()[0].Name)

	cleared, ok := store.UpdatePhone("Aaron", nil)
	require.True(t, ok)
	assert.Nil(t, cleared.Phone)

	_, ok = store.UpdatePhone("Nobody", domain.StringPtr("1"))
	assert.False(t, ok)
	assert.Equal(t, 6, store.Count())
}

func TestStore_ReturnedRecordsAreCopies(t *testing.T) {
	store := newSeededStore(t)

	p, _ := store.FindByName("Becky")
	*p.Phone = "tampered"

	again, _ := store.FindByName("Becky")
	assert.Equal(t, "78904512", *again.Phone)
}

func TestStore_ConcurrentDuplicateInsert(t *testing.T) {
	store := newSeededStore(t)

	const attempts = 32
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Insert(domain.Person{Name: "Grace", Street: "Elm St", City: "Dublin"}); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Equal(t, 7, store.Count())
}

func TestNewStore_RejectsDuplicateSeed(t *testing.T) {
	seed := append(DefaultSeed(), domain.Person{ID: "7", Name: "Aaron", Street: "x", City: "y"})
	_, err := NewStore(seed)

	var dup *DuplicateNameError
	assert.ErrorAs(t, err, &dup)
}

func TestParseSeed(t *testing.T) {
	persons, err := ParseSeed(`
[[person]]
id = "10"
name = "Hana"
phone = "5550100"
street = "Sakura Dori"
city = "Kyoto"

[[person]]
id = "11"
name = "Ivan"
street = "Nevsky"
city = "St Petersburg"
`)
	require.NoError(t, err)
	require.Len(t, persons, 2)
	assert.Equal(t, "5550100", *persons[0].Phone)
	assert.Nil(t, persons[1].Phone)

	_, err = ParseSeed(`
[[person]]
name = "NoID"
street = "a"
city = "b"
`)
	assert.Error(t, err)
}
