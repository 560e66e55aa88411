package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextShortText(t *testing.T) {
	s := NewPDFService(DefaultDocumentServiceConfig)
	chunks := s.ChunkText("  Um texto curto.  ", "guia.pdf")
	require.Len(t, chunks, 1)
	assert.Equal(t, "Um texto curto.", chunks[0].Content)
	assert.Equal(t, "guia.pdf", chunks[0].Source)
	assert.NotEmpty(t, chunks[0].ID)
}

func TestChunkTextPrefersParagraphBreak(t *testing.T) {
	s := NewPDFService(DefaultDocumentServiceConfig)
	para1 := strings.Repeat("Primeira parte do guia. ", 25) // 600 chars
	para2 := strings.Repeat("Segunda parte do guia. ", 22) // ~500 chars
	text := para1 + "\n\n" + para2

	chunks := s.ChunkText(text, "guia.pdf")
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, strings.TrimSpace(para1), chunks[0].Content)
	assert.Contains(t, chunks[len(chunks)-1].Content, "Segunda parte do guia.")
}

func TestChunkTextSentenceBoundaryAndOverlap(t *testing.T) {
	s := NewPDFService(DefaultDocumentServiceConfig)
	text := strings.Repeat("Frase de numero 0001. ", 60) // 1320 chars, no paragraph breaks
	chunks := s.ChunkText(text, "guia.pdf")

	require.GreaterOrEqual(t, len(chunks), 2)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), 1000)
		assert.NotEmpty(t, chunk.Content)
	}
	// First cut lands on a sentence end.
	assert.True(t, strings.HasSuffix(chunks[0].Content, "."))
	// Consecutive chunks share overlapping text.
	prefix := chunks[1].Content[:20]
	assert.Contains(t, chunks[0].Content, prefix)
}

func TestChunkTextNoBoundariesStillProgresses(t *testing.T) {
	s := NewPDFService(DefaultDocumentServiceConfig)
	text := strings.Repeat("a", 2500) // no breaks of any kind
	chunks := s.ChunkText(text, "guia.pdf")

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), 1000)
		assert.NotEmpty(t, chunk.Content)
	}
	assert.Equal(t, strings.Repeat("a", 1000), chunks[0].Content)
}

func TestChunkTextNeverSplitsRunes(t *testing.T) {
	s := NewPDFService(DefaultDocumentServiceConfig)
	inputs := []string{
		// Word boundaries present: overlap offsets land mid-rune.
		strings.Repeat("ação çãé õü ", 300),
		// No boundaries at all: hard cuts land mid-rune.
		strings.Repeat("ação", 300),
	}
	for _, text := range inputs {
		chunks := s.ChunkText(text, "guia.pdf")
		require.Greater(t, len(chunks), 1)
		for _, chunk := range chunks {
			assert.True(t, utf8.ValidString(chunk.Content))
			assert.LessOrEqual(t, len(chunk.Content), 1000)
			assert.NotEmpty(t, chunk.Content)
		}
	}
}

func TestChunkTextUniqueIDs(t *testing.T) {
	s := NewPDFService(DefaultDocumentServiceConfig)
	text := strings.Repeat("Frase de numero 0001. ", 120)
	chunks := s.ChunkText(text, "guia.pdf")

	seen := make(map[string]bool)
	for _, chunk := range chunks {
		assert.False(t, seen[chunk.ID])
		seen[chunk.ID] = true
	}
}

func TestCleanText(t *testing.T) {
	s := NewPDFService(DefaultDocumentServiceConfig)
	assert.Equal(t, "abc\nd e", s.cleanText("a\x00b\rc\fd  e"))
	assert.Equal(t, "texto", s.cleanText("  texto\ufffd  "))
}

func TestExtractFolderTextMissingFolder(t *testing.T) {
	s := NewPDFService(DefaultDocumentServiceConfig)
	assert.Empty(t, s.ExtractFolderText("/nonexistent/folder"))
}

func TestExtractFolderTextIgnoresNonPDF(t *testing.T) {
	s := NewPDFService(DefaultDocumentServiceConfig)
	assert.Empty(t, s.ExtractFolderText(t.TempDir()))
}
