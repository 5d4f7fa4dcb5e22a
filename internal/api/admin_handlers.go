package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/http/response"
	"github.com/arvandstudio/arvand-server/internal/service"
)

// LoginRequest carries the shared admin secret.
type LoginRequest struct {
	Key string `json:"key" validate:"required"`
}

// CreateArtworkRequest is the admin artwork form payload.
type CreateArtworkRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required,category"`
	Year        int    `json:"year" validate:"gte=0"`
	Dimensions  string `json:"dimensions"`
	Featured    bool   `json:"featured"`
	Image       string `json:"image"` // Optional data URL upload
}

// CreateBookRequest is the admin book form payload.
type CreateBookRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Pages       int     `json:"pages" validate:"gte=0"`
	Cover       string  `json:"cover"` // Optional data URL upload
}

// CreateJournalRequest is the admin journal form payload.
type CreateJournalRequest struct {
	Title   string   `json:"title" validate:"required"`
	Context string   `json:"context"`
	Tags    []string `json:"tags"`
}

// AskChatRequest carries one advisor question.
type AskChatRequest struct {
	Query string `json:"query" validate:"required"`
}

// handleLogin validates the shared secret.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.admin.Login(r.Context(), req.Key); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{"message": "authenticated"}, s.logger)
}

// handleLogout records the end of the admin session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.admin.Logout(r.Context())
	response.NoContent(w)
}

// handleCreateArtwork runs the admin pipeline for a new artwork.
func (s *Server) handleCreateArtwork(w http.ResponseWriter, r *http.Request) {
	var req CreateArtworkRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	artwork, err := s.composer.ComposeArtwork(r.Context(), service.ArtworkInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		Year:        req.Year,
		Dimensions:  req.Dimensions,
		Featured:    req.Featured,
		Image:       req.Image,
	})
	if err != nil {
		s.logger.Error("Failed to compose artwork", "title", req.Title, "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, artwork, s.logger)
}

// handleDeleteArtwork removes an artwork. Idempotent.
func (s *Server) handleDeleteArtwork(w http.ResponseWriter, r *http.Request) {
	artworkID := chi.URLParam(r, "id")
	if artworkID == "" {
		response.BadRequest(w, "Artwork ID is required", s.logger)
		return
	}

	if err := s.catalog.RemoveArtwork(r.Context(), artworkID); err != nil {
		s.logger.Error("Failed to delete artwork", "id", artworkID, "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleCreateBook runs the admin pipeline for a new book.
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	book, err := s.composer.ComposeBook(r.Context(), service.BookInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Pages:       req.Pages,
		Cover:       req.Cover,
	})
	if err != nil {
		s.logger.Error("Failed to compose book", "title", req.Title, "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, book, s.logger)
}

// handleDeleteBook removes a book. Idempotent.
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	if bookID == "" {
		response.BadRequest(w, "Book ID is required", s.logger)
		return
	}

	if err := s.catalog.RemoveBook(r.Context(), bookID); err != nil {
		s.logger.Error("Failed to delete book", "id", bookID, "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleCreateJournal runs the admin pipeline for a new journal post.
func (s *Server) handleCreateJournal(w http.ResponseWriter, r *http.Request) {
	var req CreateJournalRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	post, err := s.composer.ComposeJournal(r.Context(), service.JournalInput{
		Title:   req.Title,
		Context: req.Context,
		Tags:    req.Tags,
	})
	if err != nil {
		s.logger.Error("Failed to compose journal post", "title", req.Title, "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, post, s.logger)
}

// handleDeleteJournal removes a journal post. Idempotent.
func (s *Server) handleDeleteJournal(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	if postID == "" {
		response.BadRequest(w, "Journal post ID is required", s.logger)
		return
	}

	if err := s.catalog.RemoveJournalPost(r.Context(), postID); err != nil {
		s.logger.Error("Failed to delete journal post", "id", postID, "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleListLogs returns the audit log, newest first.
func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.audit.List(), s.logger)
}

// handleListChat returns the advisor transcript in chronological order.
func (s *Server) handleListChat(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.chat.Messages(), s.logger)
}

// handleAskChat forwards one question to the strategic advisor.
func (s *Server) handleAskChat(w http.ResponseWriter, r *http.Request) {
	var req AskChatRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	reply, err := s.chat.Ask(r.Context(), req.Query)
	if err != nil {
		s.logger.Error("Advisor request failed", "error", err)
		s.notifier.Notify("خطا در دریافت پاسخ مشاور", domain.SeverityError)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, reply, s.logger)
}

// handleClearChat wipes the advisor transcript.
func (s *Server) handleClearChat(w http.ResponseWriter, r *http.Request) {
	if err := s.chat.Clear(r.Context()); err != nil {
		s.logger.Error("Failed to clear chat", "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
