// Package store holds the recipe state container: recipes, the session user,
// favorites and the transient search/filter state, plus the operations that
// mutate them.
//
// Mutations never report errors. An operation whose precondition is not met
// (no session, unknown id, foreign recipe under the enforced ownership policy)
// leaves the state untouched.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/internal/model"
	"github.com/pageza/recipebox/internal/seed"
)

// OwnershipPolicy decides whether update and delete check the caller
type OwnershipPolicy int

const (
	// OwnershipTrusted applies update and delete for any caller. Ownership is
	// expected to be checked by the consumer before calling the store.
	OwnershipTrusted OwnershipPolicy = iota
	// OwnershipEnforced ignores update and delete unless the caller created the recipe
	OwnershipEnforced
)

// CategoryMode decides how the active filter takes part in Filter
type CategoryMode int

const (
	// CategoryIgnore accepts every filter value without narrowing the result
	CategoryIgnore CategoryMode = iota
	// CategoryTags narrows the result to recipes tagged with the active filter
	CategoryTags
)

// Seeder provides the recipes a fresh store starts with
type Seeder interface {
	Seed() []model.Recipe
}

// State is an immutable snapshot of the store
type State struct {
	Version         uint64         `json:"version"`
	Recipes         []model.Recipe `json:"recipes"`
	Favorites       []string       `json:"favorites"`
	User            *model.User    `json:"user"`
	IsAuthenticated bool           `json:"isAuthenticated"`
	SearchTerm      string         `json:"searchTerm"`
	ActiveFilter    string         `json:"activeFilter"`
}

func (s State) clone() State {
	out := s
	out.Recipes = make([]model.Recipe, len(s.Recipes))
	for i, r := range s.Recipes {
		out.Recipes[i] = r.Clone()
	}
	out.Favorites = slices.Clone(s.Favorites)
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

// Persisted returns the subset of the state that survives a reload
func (s State) Persisted() PersistedState {
	p := PersistedState{
		Favorites:       slices.Clone(s.Favorites),
		IsAuthenticated: s.IsAuthenticated,
	}
	if p.Favorites == nil {
		p.Favorites = []string{}
	}
	if s.User != nil {
		u := *s.User
		p.User = &u
	}
	return p
}

// Listener receives every new state
type Listener func(State)

type options struct {
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
	seeder     Seeder
	ownership  OwnershipPolicy
	categories CategoryMode
}

// Option configures a RecipeStore
type Option func(*options)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock sets the time source used for CreatedAt
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator replaces uuid generation for recipe and user ids
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

// WithSeeder replaces the default random seed recipes
func WithSeeder(s Seeder) Option {
	return func(o *options) {
		o.seeder = s
	}
}

// WithOwnershipPolicy sets the update/delete ownership policy
func WithOwnershipPolicy(p OwnershipPolicy) Option {
	return func(o *options) {
		o.ownership = p
	}
}

// WithCategoryMode sets how the active filter is matched
func WithCategoryMode(m CategoryMode) Option {
	return func(o *options) {
		o.categories = m
	}
}

// RecipeStore is the single source of truth for recipes, session, favorites
// and filter state. It is safe for concurrent use.
type RecipeStore struct {
	opts   options
	logger *zap.Logger

	mu    sync.RWMutex
	state State

	listenersMu  sync.Mutex
	listeners    map[int]Listener
	nextListener int
}

// New creates a store seeded with a fresh batch of recipes and default session state
func New(opts ...Option) *RecipeStore {
	o := options{
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.seeder == nil {
		o.seeder = seed.New(seed.WithClock(o.now), seed.WithIDGenerator(o.newID))
	}

	s := &RecipeStore{
		opts:      o,
		logger:    o.logger.Named("store"),
		listeners: make(map[int]Listener),
	}
	s.state = State{
		Recipes:      uniqueRecipes(o.seeder.Seed()),
		Favorites:    []string{},
		ActiveFilter: model.CategoryAll,
	}
	s.logger.Debug("store seeded", zap.Int("recipes", len(s.state.Recipes)))
	return s
}

// Subscribe registers fn for every state change. The returned func removes it.
// Listeners run outside the store lock and may read from the store; they
// must not block for long.
func (s *RecipeStore) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

func (s *RecipeStore) publish(st State) {
	s.listenersMu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

// update applies fn to a shallow copy of the state. fn must replace slices
// rather than modify them in place and returns false to leave the state as is.
func (s *RecipeStore) update(fn func(st *State) bool) bool {
	s.mu.Lock()
	next := s.state
	if !fn(&next) {
		s.mu.Unlock()
		return false
	}
	next.Version = s.state.Version + 1
	s.state = next
	snap := next.clone()
	s.mu.Unlock()

	s.publish(snap)
	return true
}

func (s *RecipeStore) read() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns a copy of the whole state
func (s *RecipeStore) Snapshot() State {
	return s.read().clone()
}

// Recipes returns all recipes, newest first
func (s *RecipeStore) Recipes() []model.Recipe {
	return s.Snapshot().Recipes
}

// Recipe looks up a recipe by id
func (s *RecipeStore) Recipe(id string) (model.Recipe, bool) {
	st := s.read()
	i := indexOf(st.Recipes, id)
	if i < 0 {
		return model.Recipe{}, false
	}
	return st.Recipes[i].Clone(), true
}

// Favorites returns the favorite recipe ids in the order they were added
func (s *RecipeStore) Favorites() []string {
	return slices.Clone(s.read().Favorites)
}

// IsFavorite reports whether id is a favorite
func (s *RecipeStore) IsFavorite(id string) bool {
	return slices.Contains(s.read().Favorites, id)
}

// User returns the session user, if any
func (s *RecipeStore) User() (model.User, bool) {
	st := s.read()
	if st.User == nil {
		return model.User{}, false
	}
	return *st.User, true
}

// IsAuthenticated reports whether a user is logged in
func (s *RecipeStore) IsAuthenticated() bool {
	return s.read().IsAuthenticated
}

// SearchTerm returns the current search term
func (s *RecipeStore) SearchTerm() string {
	return s.read().SearchTerm
}

// ActiveFilter returns the current category filter
func (s *RecipeStore) ActiveFilter() string {
	return s.read().ActiveFilter
}

// Login starts a session for a freshly generated identity. The password is
// accepted and ignored: there is no credential store to check it against.
func (s *RecipeStore) Login(username, email, password string) model.User {
	return s.startSession("login", username, email)
}

// Signup behaves exactly like Login; it does not detect existing usernames.
func (s *RecipeStore) Signup(username, email, password string) model.User {
	return s.startSession("signup", username, email)
}

func (s *RecipeStore) startSession(how, username, email string) model.User {
	user := model.NewEphemeralUser(s.opts.newID(), username, email)
	s.update(func(st *State) bool {
		u := user
		st.User = &u
		st.IsAuthenticated = true
		return true
	})
	s.logger.Debug("session started", zap.String("via", how), zap.String("user_id", user.ID))
	return user
}

// Logout discards the session user
func (s *RecipeStore) Logout() {
	s.update(func(st *State) bool {
		st.User = nil
		st.IsAuthenticated = false
		return true
	})
}

// AddRecipe stores a new recipe owned by the session user at the front of the
// list. Without a session it does nothing and reports false.
func (s *RecipeStore) AddRecipe(draft model.RecipeDraft) (model.Recipe, bool) {
	var created model.Recipe
	ok := s.update(func(st *State) bool {
		if st.User == nil {
			return false
		}
		id := s.opts.newID()
		for indexOf(st.Recipes, id) >= 0 {
			id = s.opts.newID()
		}
		created = draft.NewRecipe(id, st.User.ID, s.opts.now())

		recipes := make([]model.Recipe, 0, len(st.Recipes)+1)
		recipes = append(recipes, created)
		st.Recipes = append(recipes, st.Recipes...)
		return true
	})
	if !ok {
		s.logger.Debug("add recipe ignored: no session")
		return model.Recipe{}, false
	}
	return created.Clone(), true
}

// UpdateRecipe replaces the fields set in patch on the recipe with the given id.
// callerID is only consulted under OwnershipEnforced.
func (s *RecipeStore) UpdateRecipe(callerID, id string, patch model.RecipePatch) {
	ok := s.update(func(st *State) bool {
		i := indexOf(st.Recipes, id)
		if i < 0 || !s.mayModify(callerID, st.Recipes[i]) {
			return false
		}
		recipes := slices.Clone(st.Recipes)
		recipes[i] = patch.Apply(recipes[i])
		st.Recipes = recipes
		return true
	})
	if !ok {
		s.logger.Debug("update recipe ignored", zap.String("recipe_id", id))
	}
}

// DeleteRecipe removes the recipe with the given id and drops it from favorites.
// callerID is only consulted under OwnershipEnforced.
func (s *RecipeStore) DeleteRecipe(callerID, id string) {
	ok := s.update(func(st *State) bool {
		i := indexOf(st.Recipes, id)
		if i < 0 || !s.mayModify(callerID, st.Recipes[i]) {
			return false
		}
		st.Recipes = slices.Delete(slices.Clone(st.Recipes), i, i+1)
		st.Favorites = without(st.Favorites, id)
		return true
	})
	if !ok {
		s.logger.Debug("delete recipe ignored", zap.String("recipe_id", id))
	}
}

// ToggleFavorite adds recipeID to the favorites or removes it if present.
// The id is not checked against the recipe list.
func (s *RecipeStore) ToggleFavorite(recipeID string) {
	s.update(func(st *State) bool {
		if slices.Contains(st.Favorites, recipeID) {
			st.Favorites = without(st.Favorites, recipeID)
		} else {
			st.Favorites = append(slices.Clip(st.Favorites), recipeID)
		}
		return true
	})
}

// SetSearchTerm sets the free text filter
func (s *RecipeStore) SetSearchTerm(term string) {
	s.update(func(st *State) bool {
		st.SearchTerm = term
		return true
	})
}

// SetActiveFilter sets the category filter. The value is not validated.
func (s *RecipeStore) SetActiveFilter(filter string) {
	s.update(func(st *State) bool {
		st.ActiveFilter = filter
		return true
	})
}

// Hydrate overwrites the persisted subset and normalizes the session: a
// saved user without the authenticated flag, or the flag without a user,
// is dropped so that IsAuthenticated holds iff a user is present.
func (s *RecipeStore) Hydrate(p PersistedState) {
	s.update(func(st *State) bool {
		st.Favorites = dedupe(p.Favorites)
		st.User = nil
		st.IsAuthenticated = false
		if p.User != nil && p.IsAuthenticated {
			u := *p.User
			st.User = &u
			st.IsAuthenticated = true
		}
		return true
	})
}

func (s *RecipeStore) mayModify(callerID string, r model.Recipe) bool {
	if s.opts.ownership != OwnershipEnforced {
		return true
	}
	return callerID != "" && callerID == r.CreatedBy
}

func indexOf(recipes []model.Recipe, id string) int {
	return slices.IndexFunc(recipes, func(r model.Recipe) bool { return r.ID == id })
}

// without returns a new slice with every occurrence of id removed
func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// uniqueRecipes drops recipes whose id was already seen
func uniqueRecipes(recipes []model.Recipe) []model.Recipe {
	seen := make(map[string]struct{}, len(recipes))
	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r.Clone())
	}
	return out
}
