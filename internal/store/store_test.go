package store

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pageza/recipebox/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixedSeeder []model.Recipe

func (f fixedSeeder) Seed() []model.Recipe {
	out := make([]model.Recipe, len(f))
	for i, r := range f {
		out[i] = r.Clone()
	}
	return out
}

func sequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func seedRecipes() fixedSeeder {
	return fixedSeeder{
		{ID: "r1", Title: "Pasta Bake", Ingredients: []string{"flour"}, Instructions: []string{"bake"}, CookingTime: 45, Rating: 4.2, CreatedBy: model.SystemCreator, CreatedAt: testNow.Add(-time.Hour)},
		{ID: "r2", Title: "Salad", Ingredients: []string{"pasta water"}, Instructions: []string{"toss"}, CookingTime: 10, Rating: 3.1, Tags: []string{model.CategoryQuick, model.CategoryVegetarian}, CreatedBy: model.SystemCreator, CreatedAt: testNow.Add(-2 * time.Hour)},
		{ID: "r3", Title: "Brownies", Ingredients: []string{"cocoa", "sugar"}, Instructions: []string{"mix", "bake"}, CookingTime: 40, Rating: 4.9, Tags: []string{model.CategoryDessert}, CreatedBy: model.SystemCreator, CreatedAt: testNow.Add(-3 * time.Hour)},
	}
}

func newTestStore(t *testing.T, opts ...Option) *RecipeStore {
	t.Helper()
	base := []Option{
		WithSeeder(seedRecipes()),
		WithIDGenerator(sequentialIDs("id")),
		WithClock(func() time.Time { return testNow }),
	}
	return New(append(base, opts...)...)
}

func ids(recipes []model.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func draft(title string) model.RecipeDraft {
	return model.RecipeDraft{
		Title:        title,
		Ingredients:  []string{"egg", "milk"},
		Instructions: []string{"whisk", "fry"},
		CookingTime:  15,
		Image:        "https://example.com/omelette.jpg",
	}
}

func TestNewSeedsDefaults(t *testing.T) {
	s := New()

	assert.Len(t, s.Recipes(), 12)
	assert.Empty(t, s.Favorites())
	assert.False(t, s.IsAuthenticated())
	_, ok := s.User()
	assert.False(t, ok)
	assert.Equal(t, "", s.SearchTerm())
	assert.Equal(t, model.CategoryAll, s.ActiveFilter())

	seen := map[string]bool{}
	for _, r := range s.Recipes() {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
		assert.Equal(t, model.SystemCreator, r.CreatedBy)
	}
}

func TestNewDropsDuplicateSeedIDs(t *testing.T) {
	seeder := append(seedRecipes(), model.Recipe{ID: "r1", Title: "Duplicate"})
	s := New(WithSeeder(seeder))

	assert.Equal(t, []string{"r1", "r2", "r3"}, ids(s.Recipes()))
}

func TestToggleFavoriteParity(t *testing.T) {
	s := newTestStore(t)
	calls := []string{"r1", "r2", "r1", "r3", "r1", "r2", "ghost"}

	counts := map[string]int{}
	for _, id := range calls {
		s.ToggleFavorite(id)
		counts[id]++
	}

	favs := s.Favorites()
	for id, n := range counts {
		assert.Equal(t, n%2 == 1, s.IsFavorite(id), "id %s toggled %d times", id, n)
	}
	seen := map[string]bool{}
	for _, id := range favs {
		assert.False(t, seen[id], "duplicate favorite %s", id)
		seen[id] = true
	}
	// order of addition is kept
	assert.Equal(t, []string{"r3", "r1", "ghost"}, favs)
}

func TestAddRecipeWithoutSessionIsNoop(t *testing.T) {
	s := newTestStore(t)
	before := ids(s.Recipes())

	created, ok := s.AddRecipe(draft("Omelette"))

	assert.False(t, ok)
	assert.Equal(t, model.Recipe{}, created)
	assert.Equal(t, before, ids(s.Recipes()))
}

func TestAddRecipePrependsOwnedRecipe(t *testing.T) {
	s := newTestStore(t)
	user := s.Login("ada", "ada@example.com", "secret")
	before := ids(s.Recipes())

	created, ok := s.AddRecipe(draft("Omelette"))
	require.True(t, ok)

	recipes := s.Recipes()
	require.Len(t, recipes, len(before)+1)
	assert.Equal(t, created.ID, recipes[0].ID)
	assert.Equal(t, user.ID, recipes[0].CreatedBy)
	assert.Equal(t, testNow, recipes[0].CreatedAt)
	assert.Equal(t, "Omelette", recipes[0].Title)
	assert.Equal(t, float64(0), recipes[0].Rating)
	assert.NotContains(t, before, created.ID)
	assert.Equal(t, before, ids(recipes[1:]))
}

func TestAddRecipeSkipsCollidingIDs(t *testing.T) {
	gen := []string{"user", "r1", "r2", "fresh"}
	var i int
	s := New(WithSeeder(seedRecipes()), WithIDGenerator(func() string {
		id := gen[i]
		i++
		return id
	}))
	s.Login("ada", "ada@example.com", "")

	created, ok := s.AddRecipe(draft("Omelette"))
	require.True(t, ok)
	assert.Equal(t, "fresh", created.ID)
}

func TestDeleteRecipeCascadesAndIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	s.ToggleFavorite("r2")
	s.ToggleFavorite("r1")

	s.DeleteRecipe("", "r2")

	assert.Equal(t, []string{"r1", "r3"}, ids(s.Recipes()))
	assert.Equal(t, []string{"r1"}, s.Favorites())

	version := s.Snapshot().Version
	s.DeleteRecipe("", "r2")
	assert.Equal(t, []string{"r1", "r3"}, ids(s.Recipes()))
	assert.Equal(t, []string{"r1"}, s.Favorites())
	assert.Equal(t, version, s.Snapshot().Version)
}

func TestUpdateRecipeChangesOnlyProvidedFields(t *testing.T) {
	s := newTestStore(t)
	before := s.Recipes()

	title := "X"
	s.UpdateRecipe("", "r2", model.RecipePatch{Title: &title})

	after := s.Recipes()
	require.Len(t, after, len(before))
	for i := range before {
		if before[i].ID != "r2" {
			assert.Equal(t, before[i], after[i])
			continue
		}
		want := before[i]
		want.Title = "X"
		assert.Equal(t, want, after[i])
	}
}

func TestUpdateRecipeUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	title := "X"
	s.UpdateRecipe("", "missing", model.RecipePatch{Title: &title})

	assert.Equal(t, before, s.Snapshot())
}

func TestUpdateRecipeReplacesSlices(t *testing.T) {
	s := newTestStore(t)

	s.UpdateRecipe("", "r3", model.RecipePatch{
		Ingredients:  []string{"dark chocolate"},
		Instructions: []string{"melt", "pour", "chill"},
	})

	r, ok := s.Recipe("r3")
	require.True(t, ok)
	assert.Equal(t, []string{"dark chocolate"}, r.Ingredients)
	assert.Equal(t, []string{"melt", "pour", "chill"}, r.Instructions)
	assert.Equal(t, "Brownies", r.Title)
}

func TestOwnershipEnforced(t *testing.T) {
	s := newTestStore(t, WithOwnershipPolicy(OwnershipEnforced))
	owner := s.Login("ada", "ada@example.com", "")
	created, ok := s.AddRecipe(draft("Omelette"))
	require.True(t, ok)

	title := "Stolen"
	s.UpdateRecipe("someone-else", created.ID, model.RecipePatch{Title: &title})
	s.DeleteRecipe("someone-else", created.ID)
	s.DeleteRecipe("", "r1")

	r, ok := s.Recipe(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Omelette", r.Title)
	_, ok = s.Recipe("r1")
	assert.True(t, ok, "seed recipes belong to the system")

	title = "Mine"
	s.UpdateRecipe(owner.ID, created.ID, model.RecipePatch{Title: &title})
	r, _ = s.Recipe(created.ID)
	assert.Equal(t, "Mine", r.Title)

	s.DeleteRecipe(owner.ID, created.ID)
	_, ok = s.Recipe(created.ID)
	assert.False(t, ok)
}

func TestOwnershipTrustedIgnoresCaller(t *testing.T) {
	s := newTestStore(t)

	s.DeleteRecipe("anyone", "r1")

	_, ok := s.Recipe("r1")
	assert.False(t, ok)
}

func TestLogoutAndRelogin(t *testing.T) {
	s := newTestStore(t)
	first := s.Login("a", "a@x.com", "p")
	assert.True(t, s.IsAuthenticated())

	s.Logout()
	assert.False(t, s.IsAuthenticated())
	_, ok := s.User()
	assert.False(t, ok)

	s.Logout()
	assert.False(t, s.IsAuthenticated())

	second := s.Login("a", "a@x.com", "p")
	assert.NotEqual(t, first.ID, second.ID)
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, second, u)
}

func TestSignupManufacturesFreshIdentity(t *testing.T) {
	s := New()
	a := s.Signup("chef", "chef@example.com", "pw")
	b := s.Signup("chef", "chef@example.com", "pw")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "chef", b.Username)
	assert.Equal(t, "chef@example.com", b.Email)
	u, _ := s.User()
	assert.Equal(t, b.ID, u.ID)
}

func TestFavoritesIndependentOfUser(t *testing.T) {
	s := newTestStore(t)
	s.Login("a", "a@x.com", "")
	s.ToggleFavorite("r1")
	s.Logout()
	s.Login("b", "b@x.com", "")

	assert.Equal(t, []string{"r1"}, s.Favorites())
}

func TestSearchAndFilterAssignment(t *testing.T) {
	s := newTestStore(t)

	s.SetSearchTerm("PASTA")
	s.SetActiveFilter("not-a-category")

	assert.Equal(t, "PASTA", s.SearchTerm())
	assert.Equal(t, "not-a-category", s.ActiveFilter())
}

func TestReadsAreCopies(t *testing.T) {
	s := newTestStore(t)
	s.ToggleFavorite("r1")

	recipes := s.Recipes()
	recipes[0].Title = "mutated"
	recipes[0].Ingredients[0] = "mutated"
	favs := s.Favorites()
	favs[0] = "mutated"

	r, _ := s.Recipe(recipes[0].ID)
	assert.Equal(t, "Pasta Bake", r.Title)
	assert.Equal(t, "flour", r.Ingredients[0])
	assert.Equal(t, []string{"r1"}, s.Favorites())
}

func TestSubscribeReceivesVersionedSnapshots(t *testing.T) {
	s := newTestStore(t)
	var got []State
	unsubscribe := s.Subscribe(func(st State) {
		got = append(got, st)
	})

	s.ToggleFavorite("r1")
	s.SetSearchTerm("pasta")
	s.UpdateRecipe("", "missing", model.RecipePatch{})
	unsubscribe()
	unsubscribe()
	s.ToggleFavorite("r2")

	require.Len(t, got, 2)
	assert.Equal(t, []string{"r1"}, got[0].Favorites)
	assert.Equal(t, "pasta", got[1].SearchTerm)
	assert.Less(t, got[0].Version, got[1].Version)
}

func TestHydrateKeepsSessionConsistent(t *testing.T) {
	s := newTestStore(t)

	s.Hydrate(PersistedState{Favorites: []string{"r1", "r1", "r2"}, User: &model.User{ID: "u1"}, IsAuthenticated: false})
	assert.Equal(t, []string{"r1", "r2"}, s.Favorites())
	assert.False(t, s.IsAuthenticated())
	_, ok := s.User()
	assert.False(t, ok)

	s.Hydrate(PersistedState{IsAuthenticated: true})
	assert.False(t, s.IsAuthenticated())
}

func TestConcurrentMutations(t *testing.T) {
	s := newTestStore(t)
	s.Login("ada", "ada@example.com", "")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.AddRecipe(draft(fmt.Sprintf("Recipe %d", i)))
			s.Filter(View{MineOnly: true})
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Filter(View{MineOnly: true}), 20)
	assert.Equal(t, uint64(21), s.Snapshot().Version)
}
