package service

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/projeto-bia/bia-be/types"
)

// PDFService handles PDF text extraction and chunking
type PDFService struct {
	maxChunkSize int // Maximum size of each text chunk
	overlapSize  int // Size of overlap between chunks
}

var DefaultDocumentServiceConfig = types.DocumentServiceConfig{
	MaxChunkSize: 1000,
	OverlapSize:  200,
}

// NewPDFService creates a new PDF service with configurable chunk sizes
func NewPDFService(config types.DocumentServiceConfig) *PDFService {
	return &PDFService{
		maxChunkSize: config.MaxChunkSize,
		overlapSize:  config.OverlapSize,
	}
}

// ExtractFolderText concatenates the text of every PDF in dir. Per-file
// failures are logged and skipped; an empty or unreadable folder yields an
// empty string, which callers must tolerate.
func (s *PDFService) ExtractFolderText(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Failed to read document folder %s: %v", dir, err)
		return ""
	}
	var raw strings.Builder
	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".pdf" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		text, err := s.ExtractFileText(path)
		if err != nil {
			log.Printf("Failed to read %s: %v", entry.Name(), err)
			continue
		}
		raw.WriteString(text)
		raw.WriteString("\n")
	}
	return raw.String()
}

// ExtractFileText extracts the text of every page of one PDF. Pages that
// fail to extract are skipped.
func (s *PDFService) ExtractFileText(filePath string) (string, error) {
	totalPages, err := getNumPages(filePath)
	if err != nil {
		return "", err
	}
	var text strings.Builder
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		pageText, err := extractTextWithPdftotext(filePath, pageNum)
		if err != nil {
			log.Printf("Warning: failed to extract text from page %d of %s: %v", pageNum, filePath, err)
			continue
		}
		text.WriteString(s.cleanText(pageText))
		text.WriteString("\n")
	}
	return text.String(), nil
}

// ChunkText splits text into overlapping chunks. Cuts prefer a paragraph
// break, then a sentence end, then a word boundary before falling back to a
// hard cut at the size limit.
func (s *PDFService) ChunkText(text, source string) []types.DocumentChunk {
	text = strings.TrimSpace(text)
	if len(text) <= s.maxChunkSize {
		return []types.DocumentChunk{{
			ID:      uuid.NewString(),
			Content: text,
			Source:  source,
		}}
	}

	var chunks []types.DocumentChunk
	currentPos := 0
	textLen := len(text)
	for currentPos < textLen {
		chunkEnd := currentPos + s.maxChunkSize
		if chunkEnd >= textLen {
			if chunk := strings.TrimSpace(text[currentPos:]); chunk != "" {
				chunks = append(chunks, types.DocumentChunk{
					ID:      uuid.NewString(),
					Content: chunk,
					Source:  source,
				})
			}
			break
		}

		cut := findBreak(text, currentPos, chunkEnd)
		if chunk := strings.TrimSpace(text[currentPos:cut]); chunk != "" {
			chunks = append(chunks, types.DocumentChunk{
				ID:      uuid.NewString(),
				Content: chunk,
				Source:  source,
			})
		}

		next := cut - s.overlapSize
		if next <= currentPos {
			// Ensure we make progress
			next = cut
		}
		// The overlap offset is a raw byte count and can land inside a
		// multi-byte rune; the next chunk must start on a rune boundary.
		currentPos = alignToRune(text, next)
	}
	return chunks
}

// findBreak looks backwards from end for a natural boundary inside
// (start, end]: paragraph break first, then sentence end, then a space.
func findBreak(text string, start, end int) int {
	if idx := strings.LastIndex(text[start:end], "\n\n"); idx > 0 {
		return start + idx + 2
	}
	for i := end - 1; i > start; i-- {
		if text[i] == '.' || text[i] == '?' || text[i] == '!' {
			return i + 1
		}
	}
	for i := end - 1; i > start; i-- {
		if text[i] == ' ' || text[i] == '\n' {
			return i
		}
	}
	// Hard cut: back up so the cut cannot split a multi-byte rune.
	for end > start && !utf8.RuneStart(text[end]) {
		end--
	}
	return end
}

// alignToRune moves pos forward to the next rune boundary when it points
// into the middle of a multi-byte sequence.
func alignToRune(text string, pos int) int {
	for pos < len(text) && !utf8.RuneStart(text[pos]) {
		pos++
	}
	return pos
}

// extractTextWithPdftotext extracts one page using the pdftotext utility.
func extractTextWithPdftotext(filePath string, pageNumber int) (string, error) {
	pdftotextCmd := exec.Command("pdftotext", "-f", strconv.Itoa(pageNumber),
		"-l", strconv.Itoa(pageNumber),
		"-enc", "UTF-8", "-nopgbrk",
		filePath, "-")
	var txtOut bytes.Buffer
	pdftotextCmd.Stdout = &txtOut

	if err := pdftotextCmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed for page %d: %w", pageNumber, err)
	}
	pageText := strings.TrimSpace(txtOut.String())
	if pageText == "" {
		return "", fmt.Errorf("got nothing at page %d", pageNumber)
	}
	return pageText, nil
}

// getNumPages uses pdfinfo to get the total number of pages in a PDF file
func getNumPages(pdfPath string) (int, error) {
	cmd := exec.Command("pdfinfo", pdfPath)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running pdfinfo: %w", err)
	}

	scanner := bufio.NewScanner(&out)
	re := regexp.MustCompile(`Pages:\s+(\d+)`)
	for scanner.Scan() {
		if matches := re.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return strconv.Atoi(matches[1])
		}
	}
	return 0, fmt.Errorf("unable to determine page count from pdfinfo")
}

func (s *PDFService) cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\u001b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
		"  ":     " ",  // Multiple spaces to single space
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}
	return strings.TrimSpace(cleaned)
}
