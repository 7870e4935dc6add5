package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipebox/internal/model"
)

// DefaultSlotName is the name of the durable slot holding the persisted subset
const DefaultSlotName = "recipe-storage"

// ErrSlotEmpty is returned by Slot.Load when nothing has been saved yet
var ErrSlotEmpty = errors.New("slot: not found")

// PersistedState is the subset of the state that survives a reload
type PersistedState struct {
	Favorites       []string    `json:"favorites"`
	User            *model.User `json:"user"`
	IsAuthenticated bool        `json:"isAuthenticated"`
}

// envelope is the on-slot layout. Version is written for readers of the
// original layout and ignored when decoding.
type envelope struct {
	State   PersistedState `json:"state"`
	Version int            `json:"version"`
}

// EncodeState serializes the persisted subset
func EncodeState(p PersistedState) ([]byte, error) {
	if p.Favorites == nil {
		p.Favorites = []string{}
	}
	return json.Marshal(envelope{State: p})
}

// DecodeState parses a slot blob
func DecodeState(data []byte) (PersistedState, error) {
	var env struct {
		State *PersistedState `json:"state"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return PersistedState{}, fmt.Errorf("decode persisted state: %w", err)
	}
	if env.State == nil {
		return PersistedState{}, errors.New("decode persisted state: missing state")
	}
	return *env.State, nil
}

// Slot is a single named durable blob. Load returns ErrSlotEmpty when
// nothing has been saved yet.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Restore loads the persisted subset from slot into the store. A missing,
// unreadable or malformed slot leaves the defaults in place.
func (s *RecipeStore) Restore(ctx context.Context, slot Slot) bool {
	data, err := slot.Load(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		s.logger.Info("no persisted state yet, using defaults")
		return false
	}
	if err != nil {
		s.logger.Warn("persisted state unreadable, using defaults", zap.Error(err))
		return false
	}
	p, err := DecodeState(data)
	if err != nil {
		s.logger.Warn("persisted state malformed, using defaults", zap.Error(err))
		return false
	}
	s.Hydrate(p)
	return true
}

// Persister writes the persisted subset to a slot whenever it changes.
// Saves run on the persister's own goroutine; store operations only hand
// over the newest snapshot and never wait for the slot.
type Persister struct {
	store   *RecipeStore
	slot    Slot
	logger  *zap.Logger
	timeout time.Duration

	// mu serializes saves
	mu          sync.Mutex
	lastVersion uint64
	last        []byte

	pendingMu sync.Mutex
	pending   *State
	notify    chan struct{}

	stop        chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()
}

// NewPersister subscribes to s and saves to slot from now on
func NewPersister(s *RecipeStore, slot Slot, logger *zap.Logger) *Persister {
	if logger == nil {
		logger = zap.NewNop()
	}
	st := s.read()
	p := &Persister{
		store:       s,
		slot:        slot,
		logger:      logger.Named("persister"),
		timeout:     5 * time.Second,
		lastVersion: st.Version,
		notify:      make(chan struct{}, 1),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	if data, err := EncodeState(st.Persisted()); err == nil {
		p.last = data
	}
	go p.run()
	p.unsubscribe = s.Subscribe(p.handle)
	return p
}

// handle keeps only the newest snapshot and wakes the save loop
func (p *Persister) handle(st State) {
	p.pendingMu.Lock()
	if p.pending == nil || st.Version > p.pending.Version {
		p.pending = &st
	}
	p.pendingMu.Unlock()

	select {
	case p.notify <- struct{}{}:
	default:
	}
}

func (p *Persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.stop:
			p.savePending()
			return
		case <-p.notify:
			p.savePending()
		}
	}
}

// savePending saves the snapshot handed over by handle, if any
func (p *Persister) savePending() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pendingMu.Lock()
	st := p.pending
	p.pending = nil
	p.pendingMu.Unlock()
	if st == nil {
		return
	}

	// listeners may observe states out of order under concurrent mutations
	if st.Version <= p.lastVersion {
		return
	}
	p.lastVersion = st.Version

	data, err := EncodeState(st.Persisted())
	if err != nil {
		p.logger.Error("failed to encode state", zap.Error(err))
		return
	}
	if bytes.Equal(data, p.last) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.slot.Save(ctx, data); err != nil {
		p.logger.Warn("failed to save state", zap.Uint64("version", st.Version), zap.Error(err))
		return
	}
	p.last = data
}

// Flush writes the current persisted subset unconditionally and waits for
// the slot
func (p *Persister) Flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := p.store.read()
	data, err := EncodeState(st.Persisted())
	if err != nil {
		return err
	}
	if err := p.slot.Save(ctx, data); err != nil {
		return fmt.Errorf("flush state: %w", err)
	}
	if st.Version > p.lastVersion {
		p.lastVersion = st.Version
	}
	p.last = data
	return nil
}

// Close stops saving changes. A change handed over before Close is still
// saved before Close returns.
func (p *Persister) Close() {
	p.closeOnce.Do(func() {
		p.unsubscribe()
		close(p.stop)
		<-p.done
	})
}

// Open creates a store, restores the persisted subset from slot and keeps
// the slot up to date.
func Open(ctx context.Context, slot Slot, opts ...Option) (*RecipeStore, *Persister) {
	s := New(opts...)
	s.Restore(ctx, slot)
	return s, NewPersister(s, slot, s.opts.logger)
}
