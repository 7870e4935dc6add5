// Package seed generates the placeholder recipes a fresh store starts with.
package seed

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/internal/model"
)

// DefaultCount is the number of recipes generated for a fresh store
const DefaultCount = 12

// imageURL points at a food photo; lock pins the picture for a given number
const imageURL = "https://loremflickr.com/640/480/food?lock=%d"

// Generator produces random placeholder recipes. It is safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
	now   func() time.Time
	newID func() string
	count int
}

// Option configures a Generator
type Option func(*Generator)

// WithSeed makes generation deterministic for seed. Zero keeps a random seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.faker = gofakeit.New(seed)
	}
}

// WithClock sets the reference time CreatedAt values are drawn before
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithIDGenerator replaces uuid generation for recipe ids
func WithIDGenerator(newID func() string) Option {
	return func(g *Generator) {
		g.newID = newID
	}
}

// WithCount sets how many recipes Seed returns
func WithCount(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.count = n
		}
	}
}

// New creates a Generator
func New(opts ...Option) *Generator {
	g := &Generator{
		faker: gofakeit.New(0),
		now:   time.Now,
		newID: uuid.NewString,
		count: DefaultCount,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Seed returns a fresh batch of generated recipes
func (g *Generator) Seed() []model.Recipe {
	g.mu.Lock()
	defer g.mu.Unlock()

	recipes := make([]model.Recipe, 0, g.count)
	for i := 0; i < g.count; i++ {
		recipes = append(recipes, g.recipe())
	}
	return recipes
}

// Recipe returns a single generated recipe
func (g *Generator) Recipe() model.Recipe {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.recipe()
}

func (g *Generator) recipe() model.Recipe {
	cookingTime := g.faker.IntRange(15, 120)
	return model.Recipe{
		ID:           g.newID(),
		Title:        g.words(2, 5),
		Ingredients:  g.lines(4, 10, 2, 5),
		Instructions: g.lines(3, 8, 10, 30),
		CookingTime:  cookingTime,
		Rating:       math.Round(g.faker.Float64Range(1, 5)*10) / 10,
		Image:        fmt.Sprintf(imageURL, g.faker.IntRange(0, 999_999)),
		Tags:         g.tags(cookingTime),
		CreatedBy:    model.SystemCreator,
		CreatedAt:    g.recent(),
	}
}

// words joins between minWords and maxWords lowercase food-ish words. Faker
// entries like "green bean" count as two.
func (g *Generator) words(minWords, maxWords int) string {
	n := g.faker.IntRange(minWords, maxWords)
	out := make([]string, 0, n)
	for len(out) < n {
		for _, w := range strings.Fields(g.word()) {
			if len(out) == n {
				break
			}
			out = append(out, strings.ToLower(w))
		}
	}
	return strings.Join(out, " ")
}

func (g *Generator) word() string {
	switch g.faker.IntRange(0, 5) {
	case 0:
		return g.faker.Fruit()
	case 1:
		return g.faker.Vegetable()
	case 2:
		return g.faker.Adjective()
	case 3:
		return g.faker.Verb()
	case 4:
		return g.faker.Noun()
	default:
		return g.faker.Word()
	}
}

func (g *Generator) lines(minLines, maxLines, minWords, maxWords int) []string {
	n := g.faker.IntRange(minLines, maxLines)
	out := make([]string, n)
	for i := range out {
		out[i] = g.words(minWords, maxWords)
	}
	return out
}

func (g *Generator) tags(cookingTime int) []string {
	var tags []string
	if cookingTime <= model.QuickCookingTime {
		tags = append(tags, model.CategoryQuick)
	}
	if g.faker.IntRange(0, 2) == 0 {
		tags = append(tags, model.CategoryVegetarian)
	}
	if g.faker.IntRange(0, 3) == 0 {
		tags = append(tags, model.CategoryDessert)
	}
	return tags
}

// recent returns a timestamp within the day before now
func (g *Generator) recent() time.Time {
	now := g.now()
	return g.faker.DateRange(now.Add(-24*time.Hour), now).Truncate(time.Millisecond)
}
