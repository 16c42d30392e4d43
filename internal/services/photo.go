package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"framestudio/internal/models"
)

// DefaultMaxPhotoBytes is the upload ceiling (30 MiB).
const DefaultMaxPhotoBytes int64 = 30 << 20

const readChunk = 256 << 10

var acceptedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/heic": true,
	"image/heif": true,
}

// PhotoService turns uploads into session photos.
type PhotoService struct {
	maxBytes int64
	logger   *zap.Logger
}

func NewPhotoService(maxBytes int64, logger *zap.Logger) *PhotoService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxPhotoBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhotoService{maxBytes: maxBytes, logger: logger}
}

func (s *PhotoService) MaxBytes() int64 { return s.maxBytes }

// ReadPhoto reads an upload, checks its type and size, and builds a preview.
// The declared content type is ignored; the type is sniffed from the bytes.
func (s *PhotoService) ReadPhoto(ctx context.Context, name string, r io.Reader) (models.Photo, error) {
	data, err := s.readAll(ctx, r)
	if err != nil {
		return models.Photo{}, err
	}
	if len(data) == 0 {
		return models.Photo{}, ErrUnsupportedPhoto
	}

	mtype := mimetype.Detect(data)
	contentType := baseType(mtype)
	if !acceptedPhotoTypes[contentType] {
		s.logger.Info("photo rejected", zap.String("name", name), zap.String("content_type", mtype.String()))
		return models.Photo{}, fmt.Errorf("%s: %w", mtype.String(), ErrUnsupportedPhoto)
	}

	photo := models.Photo{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Preview:     "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}

	// HEIC has no decoder here; its dimensions stay unknown.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		photo.Width = cfg.Width
		photo.Height = cfg.Height
	}

	s.logger.Debug("photo read",
		zap.String("name", name),
		zap.String("content_type", contentType),
		zap.Int64("size", photo.Size),
		zap.Int("width", photo.Width),
		zap.Int("height", photo.Height))
	return photo, nil
}

func (s *PhotoService) readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	limited := io.LimitReader(r, s.maxBytes+1)
	chunk := make([]byte, readChunk)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := limited.Read(chunk)
		buf.Write(chunk[:n])
		if int64(buf.Len()) > s.maxBytes {
			return nil, ErrPhotoTooLarge
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("read photo: %w", err)
		}
	}
}

// baseType strips parameters and walks to the closest accepted parent type.
func baseType(m *mimetype.MIME) string {
	for t := m; t != nil; t = t.Parent() {
		if acceptedPhotoTypes[t.String()] {
			return t.String()
		}
	}
	return m.String()
}
