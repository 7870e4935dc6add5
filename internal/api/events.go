package api

import (
	"io"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/internal/store"
)

// StateEvent is sent to event stream clients after every state change
type StateEvent struct {
	Version     uint64 `json:"version"`
	RecipeCount int    `json:"recipeCount"`
	SessionView
}

func stateEvent(st store.State) StateEvent {
	return StateEvent{
		Version:     st.Version,
		RecipeCount: len(st.Recipes),
		SessionView: sessionView(st),
	}
}

type EventsHandler struct {
	store RecipeStore
}

func NewEventsHandler(store RecipeStore) *EventsHandler {
	return &EventsHandler{store: store}
}

// Stream sends the current state, then every newer state, as server-sent
// events. A slow client only receives the latest state.
func (h *EventsHandler) Stream(c *gin.Context) {
	var (
		mu     sync.Mutex
		latest *store.State
	)
	notify := make(chan struct{}, 1)
	offer := func(st store.State) {
		mu.Lock()
		if latest == nil || st.Version > latest.Version {
			latest = &st
		}
		mu.Unlock()
		select {
		case notify <- struct{}{}:
		default:
		}
	}

	unsubscribe := h.store.Subscribe(offer)
	defer unsubscribe()
	offer(h.store.Snapshot())

	var sent uint64
	first := true
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-notify:
		}

		mu.Lock()
		st := latest
		latest = nil
		mu.Unlock()

		if st != nil && (first || st.Version > sent) {
			c.SSEvent("state", stateEvent(*st))
			sent = st.Version
			first = false
		}
		return true
	})
}
