// Package cloudinary stores uploaded documents as raw Cloudinary assets.
package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Configured reports whether every credential is present.
func (c Config) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Storage keeps document bytes in Cloudinary and hands back their delivery URL.
type Storage struct {
	client *cloudinary.Cloudinary
	folder string
	now    func() time.Time
	logger zerolog.Logger
}

// New constructs a Cloudinary backed document storage.
func New(cfg Config, logger zerolog.Logger) (*Storage, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Storage{
		client: cld,
		folder: strings.Trim(cfg.Folder, "/"),
		now:    time.Now,
		logger: logger.With().Str("component", "cloudinary_storage").Logger(),
	}, nil
}

// Upload stores the document as a raw asset so PDFs and office files are served untouched.
func (s *Storage) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	params := uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       publicID(name, s.now()),
		ResourceType:   "raw",
		UniqueFilename: api.Bool(false),
		Overwrite:      api.Bool(false),
	}

	result, err := s.client.Upload.Upload(ctx, reader, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected document: %s", result.Error.Message)
	}

	s.logger.Info().Str("public_id", result.PublicID).Int("bytes", result.Bytes).Msg("document stored")
	return result.SecureURL, nil
}

// publicID keeps the extension, which raw assets need to be served with the right type.
func publicID(name string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, strings.TrimSuffix(name, filepath.Ext(name)))

	base = strings.Trim(base, "-")
	if base == "" {
		base = "document"
	}

	return fmt.Sprintf("%s-%d%s", base, now.Unix(), ext)
}
