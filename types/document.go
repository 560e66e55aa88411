package types

type DocumentChunk struct {
	ID      string `json:"id"`
	Content string `json:"content"` // The actual text content
	Source  string `json:"source"`  // File the chunk came from, empty for the merged corpus
	Page    int    `json:"page"`    // Page number where the chunk starts, 0 when unknown
}

// DocumentServiceConfig contains configuration options for PDF processing
type DocumentServiceConfig struct {
	MaxChunkSize int // Maximum size for text chunks
	OverlapSize  int // Size of overlap between chunks
}
