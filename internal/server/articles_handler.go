package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/lexirealty/homestead/internal/models"
	"github.com/lexirealty/homestead/internal/repository"
)

func registerArticles(r chi.Router, deps Deps) {
	r.Get("/articles", func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		articles, err := deps.Repo.ListArticles(ctx)
		if err != nil {
			deps.Log.ErrorContext(ctx, "Failed to list articles", "error", err)
			renderError(w, req, http.StatusInternalServerError, "store_unavailable")
			return
		}

		render.JSON(w, req, map[string]any{"ok": true, "count": len(articles), "articles": articles})
	})

	r.Get("/articles/{id}", func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		id := chi.URLParam(req, "id")

		article, err := deps.Repo.GetArticle(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				renderError(w, req, http.StatusNotFound, "not_found")
				return
			}
			deps.Log.ErrorContext(ctx, "Failed to get article", "id", id, "error", err)
			renderError(w, req, http.StatusInternalServerError, "store_unavailable")
			return
		}

		render.JSON(w, req, map[string]any{"ok": true, "article": article})
	})

	r.Post("/articles", func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		var article models.Article
		if err := json.NewDecoder(req.Body).Decode(&article); err != nil {
			renderError(w, req, http.StatusBadRequest, "invalid_json")
			return
		}
		if article.Title == "" {
			renderError(w, req, http.StatusBadRequest, "title_required")
			return
		}

		id, err := deps.Repo.AddArticle(ctx, article)
		if err != nil {
			deps.Log.ErrorContext(ctx, "Failed to add article", "error", err)
			renderError(w, req, http.StatusInternalServerError, "store_unavailable")
			return
		}

		render.Status(req, http.StatusCreated)
		render.JSON(w, req, map[string]any{"ok": true, "id": id})
	})
}
