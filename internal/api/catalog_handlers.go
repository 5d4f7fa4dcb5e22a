package api

import (
	"net/http"
	"strconv"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/http/response"
	"github.com/arvandstudio/arvand-server/internal/i18n"
	"github.com/arvandstudio/arvand-server/internal/search"
)

// requestLanguage resolves the reader's language from the ?lang query
// parameter, falling back to Accept-Language negotiation.
func requestLanguage(r *http.Request) i18n.Language {
	if lang := r.URL.Query().Get("lang"); lang != "" && i18n.IsSupported(lang) {
		return i18n.Language(lang)
	}
	return i18n.Match(r.Header.Get("Accept-Language"))
}

// artworkView is an artwork plus its fields resolved to one language.
type artworkView struct {
	*domain.Artwork
	Localized struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Technique   string `json:"technique,omitempty"`
	} `json:"localized"`
}

// bookView is a book plus its fields resolved to one language.
type bookView struct {
	*domain.Book
	Localized struct {
		Title       string `json:"title"`
		Subtitle    string `json:"subtitle,omitempty"`
		Description string `json:"description"`
	} `json:"localized"`
}

// journalView is a journal post plus its fields resolved to one language.
type journalView struct {
	*domain.JournalPost
	Localized struct {
		Title   string `json:"title"`
		Excerpt string `json:"excerpt"`
		Content string `json:"content"`
	} `json:"localized"`
}

// handleListArtworks returns every artwork, newest year first.
func (s *Server) handleListArtworks(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	artworks := s.catalog.Artworks()
	views := make([]artworkView, 0, len(artworks))
	for _, a := range artworks {
		v := artworkView{Artwork: a}
		v.Localized.Title = a.Title.In(lang)
		v.Localized.Description = a.Description.In(lang)
		v.Localized.Technique = a.Technique.In(lang)
		views = append(views, v)
	}

	response.Success(w, map[string]any{
		"language": lang,
		"artworks": views,
	}, s.logger)
}

// handleListBooks returns every book, most recently added first.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	books := s.catalog.Books()
	views := make([]bookView, 0, len(books))
	for _, b := range books {
		v := bookView{Book: b}
		v.Localized.Title = b.Title.In(lang)
		v.Localized.Subtitle = b.Subtitle.In(lang)
		v.Localized.Description = b.Description.In(lang)
		views = append(views, v)
	}

	response.Success(w, map[string]any{
		"language": lang,
		"books":    views,
	}, s.logger)
}

// handleListJournal returns every journal post, newest date first.
func (s *Server) handleListJournal(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)

	posts := s.catalog.JournalPosts()
	views := make([]journalView, 0, len(posts))
	for _, p := range posts {
		v := journalView{JournalPost: p}
		v.Localized.Title = p.Title.In(lang)
		v.Localized.Excerpt = p.Excerpt.In(lang)
		v.Localized.Content = p.Content.In(lang)
		views = append(views, v)
	}

	response.Success(w, map[string]any{
		"language": lang,
		"journal":  views,
	}, s.logger)
}

// handleSearch runs a full-text query over the catalog.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := search.DefaultSearchParams()
	params.Query = q.Get("q")
	if t := q.Get("type"); t != "" {
		params.Types = []string{t}
	}
	params.Category = q.Get("category")
	if v := q.Get("min_year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			params.MinYear = year
		}
	}
	if v := q.Get("max_year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			params.MaxYear = year
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			params.Limit = limit
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil {
			params.Offset = offset
		}
	}
	if sortBy := q.Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}

	result, err := s.search.Search(r.Context(), params)
	if err != nil {
		s.logger.Error("Search failed", "query", params.Query, "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, result, s.logger)
}
