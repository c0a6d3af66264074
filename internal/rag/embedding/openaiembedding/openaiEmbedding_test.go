package openaiembedding

import (
	"context"
	"testing"
)

func TestBatchEmbedding_EmptyInput(t *testing.T) {
	// An empty batch must not reach the API at all.
	c := &client{}

	vectors, err := c.BatchEmbedding(context.Background(), nil)
	if err != nil {
		t.Fatalf("empty batch should not fail: %v", err)
	}
	if len(vectors) != 0 {
		t.Errorf("expected no vectors, got %d", len(vectors))
	}
}
