package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	authdomain "library/backend/internal/domain/auth"
	bookdomain "library/backend/internal/domain/book"

	"github.com/go-chi/chi/v5"
)

func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/api/books", s.handleListBooks)
	s.router.Post("/users/signup", s.handleSignup)
	s.router.Post("/users/login", s.handleLogin)

	s.router.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/protected/hello", s.handleProtectedHello)
	})

	s.registerDocs()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type bookItem struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	IsAvailable bool   `json:"is_available"`
}

// handleListBooks serves the catalog with optional book_id/title/author
// filters. A successful lookup responds 201 and omits book_id from each item.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	filter, err := parseBookFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	books, err := s.bookService.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("listing books", "error", err)
		writeError(w, http.StatusInternalServerError, "Error retrieving database")
		return
	}
	if len(books) == 0 {
		writeError(w, http.StatusNotFound, "No book exists!")
		return
	}

	items := make([]bookItem, 0, len(books))
	for _, b := range books {
		items = append(items, bookItem{
			Title:       b.Title,
			Author:      b.Author,
			IsAvailable: b.IsAvailable,
		})
	}
	writeJSON(w, http.StatusCreated, items)
}

func parseBookFilter(r *http.Request) (bookdomain.Filter, error) {
	query := r.URL.Query()
	filter := bookdomain.Filter{
		Title:  strings.TrimSpace(query.Get("title")),
		Author: strings.TrimSpace(query.Get("author")),
	}
	if raw := strings.TrimSpace(query.Get("book_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return bookdomain.Filter{}, errors.New("book_id must be an integer")
		}
		filter.ID = &id
	}
	return filter, nil
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Signup failed")
		return
	}

	token, _, err := s.authService.Signup(r.Context(), payload.Email, payload.Password, payload.Username)
	if err != nil {
		// Insertion failures, duplicate email included, collapse to a
		// generic rejection; the cause stays in the server log.
		s.logger.Warn("signup rejected", "error", err)
		writeMessage(w, http.StatusBadRequest, "Signup failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Login failed")
		return
	}

	token, _, err := s.authService.Signin(r.Context(), authdomain.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrUserNotFound), errors.Is(err, authdomain.ErrIncorrectPassword):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error("login failed", "error", err)
			writeMessage(w, http.StatusBadRequest, "Login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleProtectedHello(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Hello, %s!", user.Username)
}
