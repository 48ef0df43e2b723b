package enrich

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lexirealty/homestead/internal/geocoding"
	"github.com/lexirealty/homestead/internal/metrics"
	"github.com/lexirealty/homestead/internal/models"
	"github.com/lexirealty/homestead/internal/places"
)

// State is the lifecycle state of one enrichment session.
type State int

const (
	// StateInit is the state before the listing record has been examined.
	StateInit State = iota
	// StateGeocoding means an address lookup is in flight.
	StateGeocoding
	// StateLocated means coordinates are known, nearby lookups not started.
	StateLocated
	// StateUnlocated is terminal: geocoding failed, map and proximity
	// features stay absent while the listing itself still renders.
	StateUnlocated
	// StateEnrichingNearby means category lookups are in flight.
	StateEnrichingNearby
	// StateEnriched is terminal: both category lookups have resolved.
	StateEnriched
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateGeocoding:
		return "geocoding"
	case StateLocated:
		return "located"
	case StateUnlocated:
		return "unlocated"
	case StateEnrichingNearby:
		return "enriching_nearby"
	case StateEnriched:
		return "enriched"
	default:
		return "unknown"
	}
}

// PlaceSearcher is the session-scoped search capability delivered with the
// surface-ready signal. Keeping it on the signal instead of as an ambient
// reference removes the race between surface initialization and re-renders.
type PlaceSearcher interface {
	Nearby(ctx context.Context, point models.GeoPoint, category places.Category) ([]models.NearbyPlace, error)
}

// CoordinateStore persists resolved coordinates back to the document store
// so the same listing is not re-geocoded on every view. Persisting is
// best-effort: a write failure is logged and the session continues.
type CoordinateStore interface {
	UpdateListingCoordinates(ctx context.Context, listingID string, point models.GeoPoint) error
}

// Coordinator creates enrichment sessions. One Coordinator serves all
// sessions; each session owns its view exclusively.
type Coordinator struct {
	log           *slog.Logger       // Logger for session activity
	geocoder      geocoding.Provider // Provider used when a record lacks coordinates
	providerName  string             // Provider name for metrics labeling
	store         CoordinateStore    // Persists geocoded coordinates, may be nil
	metrics       *metrics.Metrics   // Metrics for tracking session outcomes
	stabilization time.Duration      // Wait between surface-ready and nearby lookups
}

// NewCoordinator creates a new Coordinator. The stabilization wait
// accommodates provider initialization latency after the map surface
// reports ready; it is a pragmatic wait, not a correctness mechanism,
// and may be zero.
func NewCoordinator(
	log *slog.Logger,
	geocoder geocoding.Provider,
	providerName string,
	store CoordinateStore,
	appMetrics *metrics.Metrics,
	stabilization time.Duration,
) *Coordinator {
	return &Coordinator{
		log:           log,
		geocoder:      geocoder,
		providerName:  providerName,
		store:         store,
		metrics:       appMetrics,
		stabilization: stabilization,
	}
}

// Session is one listing-display lifetime, from StartSession to Close.
// All mutation of the view happens under the session lock, and late
// completions from a closed session are discarded.
type Session struct {
	id string
	co *Coordinator

	mu           sync.Mutex
	state        State
	view         models.EnrichedListingView
	searcher     PlaceSearcher
	surfaceReady bool
	pending      int
	closed       bool
	finished     bool
	located      chan struct{}
	done         chan struct{}
}

// StartSession begins enrichment for the given listing record. Records
// that already carry valid coordinates go straight to Located and the
// geocoder is never invoked; otherwise a single geocode request is
// started asynchronously.
func (c *Coordinator) StartSession(ctx context.Context, listing models.Listing) *Session {
	sess := &Session{
		id:    uuid.NewString(),
		co:    c,
		state: StateInit,
		view: models.EnrichedListingView{
			Listing: listing,
			Schools: []models.NearbyPlace{},
			Parks:   []models.NearbyPlace{},
		},
		located: make(chan struct{}),
		done:    make(chan struct{}),
	}
	c.metrics.ActiveSessions.Inc()

	if listing.Coordinates != nil && listing.Coordinates.Valid() {
		point := *listing.Coordinates
		sess.state = StateLocated
		sess.view.Coordinates = &point
		close(sess.located)
		c.log.DebugContext(ctx, "Listing already located", "session", sess.id, "listing", listing.ID)
		return sess
	}

	sess.state = StateGeocoding
	go sess.geocode(ctx)

	return sess
}

// SurfaceReady delivers the map-surface-ready signal together with the
// places search capability. It may arrive before or after geocoding
// resolves; duplicate signals from re-renders are ignored.
func (s *Session) SurfaceReady(ctx context.Context, searcher PlaceSearcher) {
	if searcher == nil {
		return
	}

	s.mu.Lock()
	if s.closed || s.surfaceReady {
		s.mu.Unlock()
		return
	}
	s.surfaceReady = true
	s.searcher = searcher
	launch := s.state == StateLocated
	s.mu.Unlock()

	if launch {
		go s.beginNearby(ctx)
	}
}

// Close tears the session down. Any in-flight lookup that completes after
// Close must not mutate the view; completions check liveness under the
// session lock before applying.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.finishLocked("abandoned")
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View returns a snapshot of the enriched view.
func (s *Session) View() models.EnrichedListingView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.view
	view.Schools = append([]models.NearbyPlace(nil), s.view.Schools...)
	view.Parks = append([]models.NearbyPlace(nil), s.view.Parks...)
	if s.view.Coordinates != nil {
		point := *s.view.Coordinates
		view.Coordinates = &point
	}
	return view
}

// Done is closed when the session reaches a terminal state or is closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Enrich drives a full session for request-scoped callers: start, deliver
// the surface-ready signal immediately, wait up to maxWait for a terminal
// state, and return whatever view has accumulated. A nil searcher means
// nearby lookups are unavailable; the call then returns as soon as the
// geocoding outcome is known. Enrichment failures degrade to an unenriched
// view; they are never surfaced as errors.
func (c *Coordinator) Enrich(
	ctx context.Context,
	listing models.Listing,
	searcher PlaceSearcher,
	maxWait time.Duration,
) models.EnrichedListingView {
	sess := c.StartSession(ctx, listing)
	defer sess.Close()

	timer := time.NewTimer(maxWait)
	defer timer.Stop()

	// Without a searcher the surface-ready signal can never arrive and the
	// session cannot advance past Located, so only the geocoding outcome is
	// worth waiting for.
	if searcher == nil {
		select {
		case <-sess.located:
		case <-sess.Done():
		case <-timer.C:
		case <-ctx.Done():
		}
		return sess.View()
	}

	sess.SurfaceReady(ctx, searcher)

	select {
	case <-sess.Done():
	case <-timer.C:
	case <-ctx.Done():
	}

	return sess.View()
}

// geocode resolves the listing address and advances the session to
// Located or Unlocated. Exactly one geocode request happens per session.
func (s *Session) geocode(ctx context.Context) {
	address := s.view.Listing.GeocodeAddress()

	startTime := time.Now()
	point, err := s.co.geocoder.Geocode(ctx, address)
	s.co.metrics.GeocodeSeconds.WithLabelValues(s.co.providerName).Observe(time.Since(startTime).Seconds())

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	if err != nil {
		s.state = StateUnlocated
		s.finishLocked("unlocated")
		s.mu.Unlock()

		s.co.metrics.LookupErrors.Inc()
		s.co.log.WarnContext(ctx, "Failed to geocode listing, continuing without location",
			"session", s.id, "listing", s.view.Listing.ID, "error", err)
		return
	}

	s.view.Coordinates = point
	s.state = StateLocated
	close(s.located)
	launch := s.surfaceReady
	listingID := s.view.Listing.ID
	s.mu.Unlock()

	s.co.log.DebugContext(ctx, "Listing geocoded",
		"session", s.id, "listing", listingID, "lat", point.Latitude, "lng", point.Longitude)

	if s.co.store != nil {
		if storeErr := s.co.store.UpdateListingCoordinates(ctx, listingID, *point); storeErr != nil {
			s.co.log.ErrorContext(ctx, "Could not persist coordinates for listing",
				"session", s.id, "listing", listingID, "error", storeErr)
		}
	}

	if launch {
		s.beginNearby(ctx)
	}
}

// beginNearby waits out the stabilization delay and launches the two
// category lookups concurrently. It runs only once coordinates are known
// and the surface has reported ready.
func (s *Session) beginNearby(ctx context.Context) {
	if s.co.stabilization > 0 {
		timer := time.NewTimer(s.co.stabilization)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return
		}
	}

	s.mu.Lock()
	if s.closed || s.state != StateLocated {
		s.mu.Unlock()
		return
	}
	s.state = StateEnrichingNearby
	s.pending = 2
	searcher := s.searcher
	point := *s.view.Coordinates
	s.mu.Unlock()

	go s.lookup(ctx, searcher, point, places.CategorySchool)
	go s.lookup(ctx, searcher, point, places.CategoryPark)
}

// lookup resolves one category and applies the result to its own field of
// the view. The two categories fail independently: an error yields an
// empty list for that category only.
func (s *Session) lookup(ctx context.Context, searcher PlaceSearcher, point models.GeoPoint, category places.Category) {
	results, err := searcher.Nearby(ctx, point, category)
	if err != nil {
		s.co.metrics.LookupErrors.Inc()
		s.co.log.WarnContext(ctx, "Nearby lookup failed, showing empty list",
			"session", s.id, "category", string(category), "error", err)
		results = []models.NearbyPlace{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	switch category {
	case places.CategorySchool:
		s.view.Schools = results
	case places.CategoryPark:
		s.view.Parks = results
	}

	s.pending--
	if s.pending == 0 {
		s.state = StateEnriched
		s.finishLocked("enriched")
	}
}

// finishLocked records the terminal outcome once. Callers must hold the
// session lock.
func (s *Session) finishLocked(outcome string) {
	if s.finished {
		return
	}
	s.finished = true
	close(s.done)
	s.co.metrics.ActiveSessions.Dec()
	s.co.metrics.SessionsFinished.WithLabelValues(outcome).Inc()
}
