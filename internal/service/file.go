package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/taskpilot/taskpilot/internal/dto"
	"github.com/taskpilot/taskpilot/internal/model"
	"github.com/taskpilot/taskpilot/internal/repository"
	"github.com/taskpilot/taskpilot/internal/storage"
)

const (
	thumbnailWidth = 200
	mediumWidth    = 600
)

type FileService struct {
	files     repository.FileRepository
	images    repository.ImageRepository
	storage   storage.Storage
	assetBase string
}

func NewFileService(
	files repository.FileRepository,
	images repository.ImageRepository,
	store storage.Storage,
	assetBase string,
) *FileService {
	return &FileService{
		files:     files,
		images:    images,
		storage:   store,
		assetBase: assetBase,
	}
}

// UploadFile persists the metadata record, then writes the binary to the
// blob store under a fresh opaque key. The two writes are not transactional:
// the backing store is a single instance without multi-statement transaction
// support, so a failed blob write leaves an orphaned metadata record.
func (s *FileService) UploadFile(ctx context.Context, caller, name string, body io.Reader) (*dto.File, error) {
	location := uuid.New().String()

	file := &model.File{
		Location:     location,
		OriginalName: name,
		Owner:        caller,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.files.Create(ctx, file)
	if err != nil {
		return nil, err
	}

	err = s.storage.Save(ctx, location, body)
	if err != nil {
		return nil, err
	}

	return &dto.File{
		ID:        file.ID.Hex(),
		Name:      file.OriginalName,
		URL:       assetURL(s.assetBase, location),
		CreatedAt: file.CreatedAt,
	}, nil
}

// UploadImage derives thumbnail and medium variants plus a re-encoded
// original, stores all three under independent opaque keys and persists one
// metadata record referencing them. The three blob writes run as a group;
// any failure fails the upload without rolling back the members that
// already landed.
func (s *FileService) UploadImage(ctx context.Context, caller string, data []byte) (*dto.Image, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	variants := make([][]byte, 3)
	var encodeGroup errgroup.Group
	encodeGroup.Go(func() error {
		return encodeVariant(&variants[0], imaging.Resize(src, thumbnailWidth, 0, imaging.Lanczos))
	})
	encodeGroup.Go(func() error {
		return encodeVariant(&variants[1], imaging.Resize(src, mediumWidth, 0, imaging.Lanczos))
	})
	encodeGroup.Go(func() error {
		return encodeVariant(&variants[2], src)
	})
	if err := encodeGroup.Wait(); err != nil {
		return nil, err
	}

	keys := []string{uuid.New().String(), uuid.New().String(), uuid.New().String()}

	saveGroup, saveCtx := errgroup.WithContext(ctx)
	for i := range keys {
		saveGroup.Go(func() error {
			return s.storage.Save(saveCtx, keys[i], bytes.NewReader(variants[i]))
		})
	}
	if err := saveGroup.Wait(); err != nil {
		return nil, err
	}

	img := &model.Image{
		Thumbnail: keys[0],
		Medium:    keys[1],
		Original:  keys[2],
		Owner:     caller,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.images.Create(ctx, img)
	if err != nil {
		return nil, err
	}

	return &dto.Image{
		ID:        img.ID.Hex(),
		Thumbnail: assetURL(s.assetBase, img.Thumbnail),
		Medium:    assetURL(s.assetBase, img.Medium),
		Original:  assetURL(s.assetBase, img.Original),
		CreatedAt: img.CreatedAt,
	}, nil
}

// OpenAsset streams the blob stored under the given location key. There is
// no ownership check here: the opaque key acts as a bearer capability.
func (s *FileService) OpenAsset(ctx context.Context, location string) (io.ReadCloser, error) {
	return s.storage.Open(ctx, location)
}

// encodeVariant re-encodes an image as lossy JPEG for web delivery.
func encodeVariant(dst *[]byte, img image.Image) error {
	var buf bytes.Buffer
	err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85))
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	*dst = buf.Bytes()
	return nil
}
