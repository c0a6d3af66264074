package adapter

import (
	"github.com/avasant/docuchat/internal/api"
	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/internal/rag/webrag"
)

func ToDocumentResponse(doc domain.Document) api.DocumentResponse {
	return api.DocumentResponse{
		ID:        doc.ID,
		FileName:  doc.FileName,
		FileType:  doc.FileType,
		Status:    string(doc.Status),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func ToDocumentListResponse(docs []domain.Document) []api.DocumentResponse {
	out := make([]api.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToDocumentResponse(d))
	}
	return out
}

func ToUploadResponse(doc domain.Document, skipped bool, chunks int) api.UploadResponse {
	return api.UploadResponse{
		Document:    ToDocumentResponse(doc),
		Skipped:     skipped,
		ChunksCount: chunks,
	}
}

func ToChatResponse(question, answer string, sources []string) api.ChatResponse {
	return api.ChatResponse{
		Question: question,
		Answer:   answer,
		Sources:  sources,
	}
}

func ToURLResultResponse(res webrag.AddResult) api.URLResultResponse {
	return api.URLResultResponse{
		URL:         res.URL,
		Success:     res.Success,
		IsNew:       res.IsNew,
		ChunksCount: res.ChunksCount,
		Error:       res.Error,
	}
}

func ToAddURLsResponse(results []webrag.AddResult) api.AddURLsResponse {
	out := api.AddURLsResponse{Results: make([]api.URLResultResponse, 0, len(results))}
	for _, r := range results {
		out.Results = append(out.Results, ToURLResultResponse(r))
	}
	return out
}

func ToIndexedURLsResponse(urls []webrag.IndexedURL) api.IndexedURLsResponse {
	out := api.IndexedURLsResponse{URLs: make([]api.IndexedURLResponse, 0, len(urls))}
	for _, u := range urls {
		out.URLs = append(out.URLs, api.IndexedURLResponse{
			URL:         u.URL,
			Title:       u.Title,
			ChunksCount: u.ChunksCount,
		})
	}
	return out
}

func ToSourcesResponse(sources []webrag.Source) api.SourcesResponse {
	out := api.SourcesResponse{Sources: make([]api.SourceResponse, 0, len(sources))}
	for _, s := range sources {
		out.Sources = append(out.Sources, api.SourceResponse{URL: s.URL, Title: s.Title})
	}
	return out
}

func BadRequest(message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: message,
	}
}
