package api

import "time"

// requests---------------------

type SignupRequest struct {
	Email    string `json:"email" validate:"required" example:"dev@example.com"`
	Password string `json:"password" validate:"required" example:"correct-horse-battery"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"dev@example.com"`
	Password string `json:"password" validate:"required" example:"correct-horse-battery"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required" example:"What does chapter 3 say about margins?"`
}

type AddURLRequest struct {
	URL string `json:"url" validate:"required" example:"https://example.com/docs"`
}

type AddURLsRequest struct {
	URLs []string `json:"urls" validate:"required"`
}

type RemoveURLRequest struct {
	URL string `json:"url" validate:"required" example:"https://example.com/docs"`
}

// responses--------------------

type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id" example:"9f1b1d2c"`
}

type DocumentResponse struct {
	ID        string    `json:"id" example:"9f1b1d2c"`
	FileName  string    `json:"file_name" example:"report.pdf"`
	FileType  string    `json:"file_type" example:".pdf"`
	Status    string    `json:"status" example:"ready"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UploadResponse struct {
	Document    DocumentResponse `json:"document"`
	Skipped     bool             `json:"skipped"`
	ChunksCount int              `json:"chunks_count"`
}

type ChatResponse struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources,omitempty"`
}

type URLResultResponse struct {
	URL         string `json:"url"`
	Success     bool   `json:"success"`
	IsNew       bool   `json:"is_new"`
	ChunksCount int    `json:"chunks_count"`
	Error       string `json:"error,omitempty"`
}

type AddURLsResponse struct {
	Results []URLResultResponse `json:"results"`
}

type IndexedURLResponse struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	ChunksCount int    `json:"chunks_count"`
}

type IndexedURLsResponse struct {
	URLs []IndexedURLResponse `json:"urls"`
}

type SourceResponse struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type SourcesResponse struct {
	Sources []SourceResponse `json:"sources"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Bad Request"`
	Detail  string `json:"detail,omitempty"`
}
