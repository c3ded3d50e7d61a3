package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wfm/internal/domain"
	"wfm/internal/storage"
	"wfm/pkg/zip"
)

// FileStore is the subset of storage.FileStore the services use.
type FileStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
	Read(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// allowedImageExt lists the upload extensions accepted for photos.
var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

type PhotoService struct {
	photos domain.PhotoRepository
	events domain.EventRepository
	files  FileStore
	logger zerolog.Logger
}

func NewPhotoService(photos domain.PhotoRepository, events domain.EventRepository, files FileStore, logger zerolog.Logger) *PhotoService {
	return &PhotoService{photos: photos, events: events, files: files, logger: logger}
}

// Create appends the photo to its event's gallery.
func (s *PhotoService) Create(ctx context.Context, p *domain.Photo) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.requireEvent(ctx, p.EventID); err != nil {
		return err
	}
	return s.photos.Create(ctx, p)
}

// Upload stores the image and then creates the photo pointing at it. The file
// is removed again when the photo cannot be created.
func (s *PhotoService) Upload(ctx context.Context, p *domain.Photo, filename string, data []byte) error {
	if err := p.Validate(); err != nil {
		return err
	}
	ext := strings.ToLower(path.Ext(filename))
	if !allowedImageExt[ext] {
		return domain.Invalid("image", "unsupported image type")
	}
	if len(data) == 0 {
		return domain.Invalid("image", "image is empty")
	}
	if err := s.requireEvent(ctx, p.EventID); err != nil {
		return err
	}
	key, err := s.files.Write(ctx, path.Join("photos", p.EventID, uuid.NewString()+ext), data)
	if err != nil {
		return fmt.Errorf("store image: %w", err)
	}
	p.ImageFile = key
	if err := s.photos.Create(ctx, p); err != nil {
		s.removeFile(ctx, key)
		return err
	}
	return nil
}

func (s *PhotoService) requireEvent(ctx context.Context, eventID string) error {
	_, err := s.events.GetByID(ctx, eventID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Invalid("event_id", "event does not exist")
	}
	return err
}

// Reorder moves the photo inside its own event's gallery.
func (s *PhotoService) Reorder(ctx context.Context, id string, position int) error {
	return s.photos.Move(ctx, id, position)
}

// Delete removes the photo, then its stored file on a best effort basis.
func (s *PhotoService) Delete(ctx context.Context, id string) error {
	p, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.photos.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFile(ctx, p.ImageFile)
	return nil
}

func (s *PhotoService) removeFile(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.files.Delete(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("remove photo file failed")
	}
}

func (s *PhotoService) ListByEvent(ctx context.Context, eventID string) ([]domain.Photo, error) {
	return s.photos.ListByEvent(ctx, eventID)
}

// Archive writes the event's stored images to w as a zip, in gallery order.
// Photos whose file is gone are skipped.
func (s *PhotoService) Archive(ctx context.Context, eventID string, w io.Writer) error {
	photos, err := s.photos.ListByEvent(ctx, eventID)
	if err != nil {
		return err
	}
	files := make([]zip.File, 0, len(photos))
	for _, p := range photos {
		if p.ImageFile == "" {
			continue
		}
		data, err := s.files.Read(ctx, p.ImageFile)
		if errors.Is(err, storage.ErrNotExist) {
			s.logger.Warn().Str("photo_id", p.ID).Str("key", p.ImageFile).Msg("photo file missing from archive")
			continue
		}
		if err != nil {
			return err
		}
		files = append(files, zip.File{
			Name: fmt.Sprintf("%02d-%s%s", p.Position+1, p.Slug, path.Ext(p.ImageFile)),
			Data: data,
		})
	}
	return zip.Write(w, files)
}
