package slot

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/config"
	"github.com/pageza/recipebox/internal/database"
	"github.com/pageza/recipebox/internal/testhelpers"
)

// exerciseSlot runs the behavior every backend must share
func exerciseSlot(t *testing.T, s Slot) {
	t.Helper()
	ctx := context.Background()
	defer func() { assert.NoError(t, s.Close()) }()

	assert.Equal(t, "recipe-storage", s.Name())

	require.NoError(t, s.Delete(ctx))
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, []byte(`{"state":{}}`)))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"state":{}}`, string(got))

	require.NoError(t, s.Save(ctx, []byte(`{"state":{"favorites":["r1"]}}`)))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"state":{"favorites":["r1"]}}`, string(got))

	require.NoError(t, s.Delete(ctx))
	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySlot(t *testing.T) {
	exerciseSlot(t, NewMemory("recipe-storage"))
}

func TestMemorySlotCopiesData(t *testing.T) {
	m := NewMemory("recipe-storage")
	data := []byte("abc")
	require.NoError(t, m.Save(context.Background(), data))
	data[0] = 'x'

	got, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileSlot(t *testing.T) {
	exerciseSlot(t, NewFile("recipe-storage", filepath.Join(t.TempDir(), "data", "slot.json")))
}

func TestSQLiteSlot(t *testing.T) {
	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "slots.db"), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, zap.NewNop()))

	exerciseSlot(t, NewSQL("recipe-storage", db, func() error { return database.Close(db) }))
}

func TestSQLSlotsAreIsolatedByName(t *testing.T) {
	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "slots.db"), zap.NewNop())
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, database.RunMigrations(db, zap.NewNop()))

	ctx := context.Background()
	a := NewSQL("a", db, nil)
	b := NewSQL("b", db, nil)
	require.NoError(t, a.Save(ctx, []byte("A")))

	_, err = b.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", string(got))
}

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[*in.Bucket+"/"+*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, *in.Bucket+"/"+*in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Slot(t *testing.T) {
	objects := &fakeObjects{objects: map[string][]byte{}}
	s := NewS3("recipe-storage", objects, "bucket", "slots/")
	require.NoError(t, s.Save(context.Background(), []byte("x")))
	assert.Contains(t, objects.objects, "bucket/slots/recipe-storage.json")

	exerciseSlot(t, s)
}

func TestRedisSlot(t *testing.T) {
	cfg := testhelpers.SetupRedis(t)

	s, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	exerciseSlot(t, s)
}

func TestPostgresSlot(t *testing.T) {
	cfg := testhelpers.SetupPostgres(t)

	s, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	exerciseSlot(t, s)
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]any{
		config.BackendMemory: &Memory{},
		config.BackendFile:   &File{},
		config.BackendSQLite: &SQL{},
	}
	for backend, want := range cases {
		cfg := &config.Config{
			SlotBackend: backend,
			SlotName:    "recipe-storage",
			SlotFile:    filepath.Join(dir, "slot.json"),
			SQLitePath:  filepath.Join(dir, "slots.db"),
		}
		s, err := Open(context.Background(), cfg, zap.NewNop())
		require.NoError(t, err, backend)
		assert.IsType(t, want, s, backend)
		assert.NoError(t, s.Close())
	}

	_, err := Open(context.Background(), &config.Config{SlotBackend: "floppy"}, zap.NewNop())
	assert.Error(t, err)
}
