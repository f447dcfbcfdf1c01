package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/models"
)

type galleryRepoStub struct {
	items  map[uint]models.GalleryItem
	nextID uint
}

func newGalleryRepoStub() *galleryRepoStub {
	return &galleryRepoStub{items: make(map[uint]models.GalleryItem)}
}

func (s *galleryRepoStub) ListRecent(_ context.Context, _ int) ([]models.GalleryItem, error) {
	items := make([]models.GalleryItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	return items, nil
}

func (s *galleryRepoStub) GetByID(_ context.Context, id uint) (models.GalleryItem, error) {
	item, ok := s.items[id]
	if !ok {
		return models.GalleryItem{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *galleryRepoStub) Create(_ context.Context, item *models.GalleryItem) error {
	s.nextID++
	item.ID = s.nextID
	s.items[item.ID] = *item
	return nil
}

func (s *galleryRepoStub) Update(_ context.Context, item *models.GalleryItem) error {
	if _, ok := s.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.items[item.ID] = *item
	return nil
}

func (s *galleryRepoStub) Delete(_ context.Context, id uint) error {
	if _, ok := s.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.items, id)
	return nil
}

type storageStub struct {
	uploads []string
}

func (s *storageStub) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.uploads = append(s.uploads, name)
	return "https://cdn.club.test/" + name, nil
}

func makeFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func pngBytes(extra int) []byte {
	header := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	return append(header, make([]byte, extra)...)
}

func newGalleryService(repo *galleryRepoStub, storage FileStorage, audit AuditRecorder, maxSizeMB int) AdminGalleryService {
	return NewAdminGalleryService(repo, storage, validator.New(validator.WithRequiredStructEnabled()), audit, maxSizeMB, testLogger())
}

func TestGalleryUploadStoresImage(t *testing.T) {
	repo := newGalleryRepoStub()
	storage := &storageStub{}
	audit := &auditRecorderStub{}
	svc := newGalleryService(repo, storage, audit, 10)

	file := makeFileHeader(t, "meetup.png", pngBytes(64))
	resp, err := svc.Upload(context.Background(), file, "Autumn meetup", "First session", AuditActor{Email: "panel@club.test"})
	require.NoError(t, err)
	require.Equal(t, "Autumn meetup", resp.Title)
	require.Equal(t, "https://cdn.club.test/meetup.png", resp.ImageURL)
	require.Equal(t, []string{"meetup.png"}, storage.uploads)

	entries := audit.byAction(models.ActionGalleryUpload)
	require.Len(t, entries, 1)
	details, ok := entries[0].Details.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "image/png", details["mime_type"])
}

func TestGalleryUploadDefaultsTitleToFilename(t *testing.T) {
	svc := newGalleryService(newGalleryRepoStub(), &storageStub{}, &auditRecorderStub{}, 10)

	file := makeFileHeader(t, "untitled.png", pngBytes(8))
	resp, err := svc.Upload(context.Background(), file, "  ", "", AuditActor{})
	require.NoError(t, err)
	require.Equal(t, "untitled.png", resp.Title)
}

func TestGalleryUploadRejectsOversizedFile(t *testing.T) {
	storage := &storageStub{}
	svc := newGalleryService(newGalleryRepoStub(), storage, &auditRecorderStub{}, 1)

	file := makeFileHeader(t, "huge.png", pngBytes(2*1024*1024))
	_, err := svc.Upload(context.Background(), file, "", "", AuditActor{})
	require.ErrorIs(t, err, ErrUploadTooLarge)
	require.Empty(t, storage.uploads)
}

func TestGalleryUploadRejectsNonImage(t *testing.T) {
	storage := &storageStub{}
	svc := newGalleryService(newGalleryRepoStub(), storage, &auditRecorderStub{}, 10)

	file := makeFileHeader(t, "notes.txt", []byte("just some plain text, definitely not an image"))
	_, err := svc.Upload(context.Background(), file, "", "", AuditActor{})
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
	require.Empty(t, storage.uploads)
}

func TestGalleryUploadWithoutStorage(t *testing.T) {
	svc := newGalleryService(newGalleryRepoStub(), nil, &auditRecorderStub{}, 10)

	file := makeFileHeader(t, "meetup.png", pngBytes(8))
	_, err := svc.Upload(context.Background(), file, "", "", AuditActor{})
	require.Error(t, err)
}
