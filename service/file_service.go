package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/projeto-bia/bia-be/types"
	"github.com/projeto-bia/bia-be/utils"
)

// FileService stores uploaded guide PDFs and feeds them into the index.
type FileService struct {
	uploadDir string
	index     *IndexService
}

func NewFileService(uploadDir string, index *IndexService) *FileService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		panic(err)
	}
	return &FileService{
		uploadDir: uploadDir,
		index:     index,
	}
}

// UploadFile saves the PDF under the upload dir and ingests it into the
// document index.
func (s *FileService) UploadFile(ctx context.Context, file *multipart.FileHeader) (*types.UploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// originalname_timestamp.pdf, invalid filename characters replaced
	originalName := utils.GetFileNameWithoutExt(file.Filename)
	filename := fmt.Sprintf("%s_%d%s", originalName, time.Now().Unix(), ext)
	filename = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, filename)

	path := filepath.Join(s.uploadDir, filename)
	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer dst.Close()
	if _, err = io.Copy(dst, src); err != nil {
		return nil, err
	}

	chunks, err := s.index.IngestFile(ctx, path, file.Filename)
	if err != nil {
		return nil, err
	}
	return &types.UploadResponse{
		OriginalName: file.Filename,
		StoredName:   filename,
		Chunks:       chunks,
	}, nil
}
