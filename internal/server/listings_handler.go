package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/lexirealty/homestead/internal/models"
	"github.com/lexirealty/homestead/internal/repository"
	"github.com/lexirealty/homestead/internal/search"
)

const listingsCacheKey = "listings:all"

// placeJSON is the display form of a nearby place: the rating is already
// converted to the 0-100 display scale, with "N/A" for unrated places.
type placeJSON struct {
	Name   string `json:"name"`
	Rating string `json:"rating"`
}

func registerListings(r chi.Router, deps Deps) {
	r.Get("/listings", func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		listings, fromCache := cachedListings(req, deps)
		if listings == nil {
			var err error
			listings, err = deps.Repo.ListListings(ctx)
			if err != nil {
				deps.Log.ErrorContext(ctx, "Failed to list listings", "error", err)
				renderError(w, req, http.StatusInternalServerError, "store_unavailable")
				return
			}
			storeListingsCache(req, deps, listings)
		}

		listings = search.FilterListings(listings, req.URL.Query().Get("q"))

		render.JSON(w, req, map[string]any{
			"ok":       true,
			"cached":   fromCache,
			"count":    len(listings),
			"listings": listings,
		})
	})

	r.Post("/listings", func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		var listing models.Listing
		if err := json.NewDecoder(req.Body).Decode(&listing); err != nil {
			renderError(w, req, http.StatusBadRequest, "invalid_json")
			return
		}
		if listing.Title == "" || listing.Address == "" || listing.City == "" {
			renderError(w, req, http.StatusBadRequest, "title_address_city_required")
			return
		}

		id, err := deps.Repo.AddListing(ctx, listing)
		if err != nil {
			deps.Log.ErrorContext(ctx, "Failed to add listing", "error", err)
			renderError(w, req, http.StatusInternalServerError, "store_unavailable")
			return
		}

		invalidateListingsCache(req, deps)

		render.Status(req, http.StatusCreated)
		render.JSON(w, req, map[string]any{"ok": true, "id": id})
	})

	r.Get("/listings/{id}", func(w http.ResponseWriter, req *http.Request) {
		listing, ok := fetchListing(w, req, deps)
		if !ok {
			return
		}
		render.JSON(w, req, map[string]any{"ok": true, "listing": listing})
	})

	r.Get("/listings/{id}/view", func(w http.ResponseWriter, req *http.Request) {
		listing, ok := fetchListing(w, req, deps)
		if !ok {
			return
		}

		view := models.EnrichedListingView{
			Listing:     listing,
			Coordinates: listing.Coordinates,
			Schools:     []models.NearbyPlace{},
			Parks:       []models.NearbyPlace{},
		}
		if deps.Coordinator != nil {
			view = deps.Coordinator.Enrich(req.Context(), listing, deps.Searcher, deps.EnrichWait)
		}

		// Geo failures degrade: absent coordinates omit the map section,
		// failed lookups show empty lists. Never an error to the client.
		render.JSON(w, req, map[string]any{
			"ok":          true,
			"listing":     view.Listing,
			"located":     view.Coordinates != nil,
			"coordinates": view.Coordinates,
			"schools":     displayPlaces(view.Schools),
			"parks":       displayPlaces(view.Parks),
		})
	})
}

func fetchListing(w http.ResponseWriter, req *http.Request, deps Deps) (models.Listing, bool) {
	ctx := req.Context()
	id := chi.URLParam(req, "id")

	listing, err := deps.Repo.GetListing(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, req, http.StatusNotFound, "not_found")
			return models.Listing{}, false
		}
		deps.Log.ErrorContext(ctx, "Failed to get listing", "id", id, "error", err)
		renderError(w, req, http.StatusInternalServerError, "store_unavailable")
		return models.Listing{}, false
	}

	return listing, true
}

func displayPlaces(placesList []models.NearbyPlace) []placeJSON {
	out := make([]placeJSON, 0, len(placesList))
	for _, p := range placesList {
		out = append(out, placeJSON{Name: p.Name, Rating: p.DisplayRating()})
	}
	return out
}

func cachedListings(req *http.Request, deps Deps) ([]models.Listing, bool) {
	if deps.Cache == nil {
		return nil, false
	}

	raw, err := deps.Cache.Get(req.Context(), listingsCacheKey)
	if err != nil || raw == "" {
		return nil, false
	}

	var listings []models.Listing
	if err = json.Unmarshal([]byte(raw), &listings); err != nil {
		return nil, false
	}

	return listings, true
}

func storeListingsCache(req *http.Request, deps Deps, listings []models.Listing) {
	if deps.Cache == nil {
		return
	}

	raw, err := json.Marshal(listings)
	if err != nil {
		return
	}
	if err = deps.Cache.Set(req.Context(), listingsCacheKey, string(raw), deps.CacheTTL); err != nil {
		deps.Log.DebugContext(req.Context(), "Failed to cache listings", "error", err)
	}
}

func invalidateListingsCache(req *http.Request, deps Deps) {
	if deps.Cache == nil {
		return
	}
	if err := deps.Cache.Delete(req.Context(), listingsCacheKey); err != nil {
		deps.Log.DebugContext(req.Context(), "Failed to invalidate listings cache", "error", err)
	}
}
