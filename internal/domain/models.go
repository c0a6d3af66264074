package domain

import "time"

type DocumentStatus string

const (
	DocumentUploaded DocumentStatus = "uploaded"
	DocumentReady    DocumentStatus = "ready"
	DocumentFailed   DocumentStatus = "failed"
)

// User is an authenticated owner of documents and web collections.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Document is one uploaded source unit. Its chunks live in the vector
// collection named doc_<ID>; FileHash is the SHA-256 of the raw bytes last
// indexed for it.
type Document struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	FileName  string         `json:"file_name"`
	FilePath  string         `json:"file_path"`
	FileType  string         `json:"file_type"`
	FileHash  string         `json:"file_hash"`
	Status    DocumentStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ChatTurn is one (question, answer) pair of a conversation.
type ChatTurn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}
