package service

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/lshigami/mockinterview/config"
	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog/log"
)

type ResumeService interface {
	// Save stores the upload as <dir>/<userID>_<filename> and returns the path.
	Save(userID uint, filename string, r io.Reader) (string, error)
	ExtractText(path string) (string, error)
}

type resumeService struct {
	dir      string
	maxBytes int64
}

func NewResumeService(cfg *config.Config) ResumeService {
	return &resumeService{dir: cfg.Interview.ResumeDir, maxBytes: cfg.Interview.MaxUploadBytes}
}

var supportedResumeExt = map[string]bool{".pdf": true, ".docx": true}

func (s *resumeService) Save(userID uint, filename string, r io.Reader) (string, error) {
	base := filepath.Base(filepath.Clean("/" + filename))
	if base == "/" || base == "." {
		return "", fmt.Errorf("%w: missing file name", ErrUnsupportedResume)
	}
	ext := strings.ToLower(filepath.Ext(base))
	if !supportedResumeExt[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedResume, ext)
	}

	data, err := readAtMost(r, s.maxBytes)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create resume directory: %w", err)
	}
	path := filepath.Join(s.dir, strconv.FormatUint(uint64(userID), 10)+"_"+base)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store resume: %w", err)
	}
	log.Info().Uint("userID", userID).Str("path", path).Int("bytes", len(data)).Msg("Resume stored")
	return path, nil
}

func readAtMost(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrResumeTooLarge
	}
	return data, nil
}

func (s *resumeService) ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open resume: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedResume, filepath.Ext(path))
	}
}

// extractPDFText concatenates the plain text of every page; pages without text contribute nothing.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableResume, err)
	}
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Debug().Err(err).Int("page", i).Msg("Skipping unreadable pdf page")
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableResume, err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return strings.TrimSpace(unescapeXML(content)), nil
}

var xmlEntities = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'", "&amp;", "&")

func unescapeXML(s string) string {
	return xmlEntities.Replace(s)
}
