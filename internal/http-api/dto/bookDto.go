package dto

import (
	"encoding/json"
	"errors"

	"bookhub/internal/http-api/models"
)

var (
	ErrTitleRequired  = errors.New("title must not be null")
	ErrAuthorRequired = errors.New("author must not be null")
)

// CreateBookDTO used for POST /books. Summary is accepted but never stored;
// only the summary flow or an update writes it.
type CreateBookDTO struct {
	Title         *string `json:"title" binding:"required"`
	Author        *string `json:"author" binding:"required"`
	Genre         *string `json:"genre" binding:"required"`
	YearPublished *int    `json:"year_published" binding:"required"`
	Summary       *string `json:"summary"`
	TextContent   *string `json:"text_content"`
}

func (d CreateBookDTO) ToModel() models.Book {
	return models.Book{
		Title:         *d.Title,
		Author:        *d.Author,
		Genre:         d.Genre,
		YearPublished: d.YearPublished,
		TextContent:   d.TextContent,
	}
}

// UpdateBookDTO used for PUT /books/:id. Only keys present in the request
// body are written; an explicit null clears a nullable column.
type UpdateBookDTO struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Genre         *string `json:"genre"`
	YearPublished *int    `json:"year_published"`
	Summary       *string `json:"summary"`
	TextContent   *string `json:"text_content"`

	present map[string]bool
}

func (d *UpdateBookDTO) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type fields UpdateBookDTO
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*d = UpdateBookDTO(f)

	d.present = make(map[string]bool, len(raw))
	for key := range raw {
		d.present[key] = true
	}
	return nil
}

// Set reports whether the request body carried the given key.
func (d UpdateBookDTO) Set(key string) bool {
	return d.present[key]
}

// Changes returns column -> value for every key the client sent. Unknown keys
// are ignored. A nil value stores NULL.
func (d UpdateBookDTO) Changes() (map[string]interface{}, error) {
	changes := make(map[string]interface{})

	if d.Set("title") {
		if d.Title == nil {
			return nil, ErrTitleRequired
		}
		changes["title"] = *d.Title
	}
	if d.Set("author") {
		if d.Author == nil {
			return nil, ErrAuthorRequired
		}
		changes["author"] = *d.Author
	}
	if d.Set("genre") {
		changes["genre"] = nullable(d.Genre)
	}
	if d.Set("year_published") {
		if d.YearPublished == nil {
			changes["year_published"] = nil
		} else {
			changes["year_published"] = *d.YearPublished
		}
	}
	if d.Set("summary") {
		changes["summary"] = nullable(d.Summary)
	}
	if d.Set("text_content") {
		changes["text_content"] = nullable(d.TextContent)
	}

	return changes, nil
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// BookResponse DTO for responses
type BookResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         *string `json:"genre"`
	YearPublished *int    `json:"year_published"`
	Summary       *string `json:"summary"`
	TextContent   *string `json:"text_content"`
}

func FromModelToBookResponse(b models.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		YearPublished: b.YearPublished,
		Summary:       b.Summary,
		TextContent:   b.TextContent,
	}
}

func FromModelsToBookResponses(books []models.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, FromModelToBookResponse(b))
	}
	return out
}
