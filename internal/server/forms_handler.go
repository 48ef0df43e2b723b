package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/lexirealty/homestead/internal/auth"
	"github.com/lexirealty/homestead/internal/models"
)

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerForms wires the contact relay, identity and image upload routes.
// Failures here are reported inline next to the triggering form, unlike
// geo-enrichment failures which are absorbed silently.
func registerForms(r chi.Router, deps Deps) {
	r.Post("/contact", func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		var msg models.ContactMessage
		if err := json.NewDecoder(req.Body).Decode(&msg); err != nil {
			renderError(w, req, http.StatusBadRequest, "invalid_json")
			return
		}
		if msg.Name == "" || msg.Email == "" || msg.Message == "" {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"success": false, "error": "name, email and message are required"})
			return
		}

		if deps.Mailer == nil {
			renderError(w, req, http.StatusServiceUnavailable, "contact_unavailable")
			return
		}

		if err := deps.Mailer.Send(ctx, msg); err != nil {
			deps.Log.ErrorContext(ctx, "Failed to relay contact message", "error", err)
			render.Status(req, http.StatusBadGateway)
			render.JSON(w, req, map[string]any{"success": false, "error": "could not send your message, please try again"})
			return
		}

		render.JSON(w, req, map[string]any{"success": true})
	})

	r.Post("/auth/signup", identityHandler(deps, func(req *http.Request, body credentialsBody) (auth.Session, error) {
		return deps.Auth.SignUp(req.Context(), body.Email, body.Password)
	}))

	r.Post("/auth/login", identityHandler(deps, func(req *http.Request, body credentialsBody) (auth.Session, error) {
		return deps.Auth.SignIn(req.Context(), body.Email, body.Password)
	}))

	r.Post("/admin/images", func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		if deps.Images == nil {
			renderError(w, req, http.StatusServiceUnavailable, "uploads_unavailable")
			return
		}

		const maxUpload = 16 << 20
		if err := req.ParseMultipartForm(maxUpload); err != nil {
			renderError(w, req, http.StatusBadRequest, "invalid_multipart")
			return
		}

		file, header, err := req.FormFile("image")
		if err != nil {
			renderError(w, req, http.StatusBadRequest, "image_file_required")
			return
		}
		defer file.Close()

		url, err := deps.Images.Upload(ctx, "property-images", header.Filename,
			header.Header.Get("Content-Type"), file)
		if err != nil {
			deps.Log.ErrorContext(ctx, "Failed to upload image", "filename", header.Filename, "error", err)
			renderError(w, req, http.StatusBadGateway, "upload_failed")
			return
		}

		render.Status(req, http.StatusCreated)
		render.JSON(w, req, map[string]any{"ok": true, "url": url})
	})
}

func identityHandler(
	deps Deps,
	call func(req *http.Request, body credentialsBody) (auth.Session, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body credentialsBody
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			renderError(w, req, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Email == "" || body.Password == "" {
			renderError(w, req, http.StatusBadRequest, "email_password_required")
			return
		}

		if deps.Auth == nil {
			renderError(w, req, http.StatusServiceUnavailable, "auth_unavailable")
			return
		}

		session, err := call(req, body)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				render.Status(req, http.StatusUnauthorized)
				render.JSON(w, req, map[string]any{"ok": false, "error": "invalid email or password"})
				return
			}
			deps.Log.ErrorContext(req.Context(), "Identity provider call failed", "error", err)
			renderError(w, req, http.StatusBadGateway, "auth_provider_unavailable")
			return
		}

		render.JSON(w, req, map[string]any{"ok": true, "session": session})
	}
}
