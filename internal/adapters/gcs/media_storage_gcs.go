package gcs

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

// Год — фото объявлений неизменяемы, URL от загрузки до удаления один и тот же.
const mediaCacheControl = "public, max-age=31536000"

// MediaStorageGCS реализует MediaStoragePort поверх Google Cloud Storage.
// Клиент создается на старте приложения и инжектится — никакого
// глобального синглтона.
//
// Публичный URL — фиксированный шаблон base + bucket + key. Смена схемы
// URL у бэкенда ломает все ранее сохраненные объявления.
type MediaStorageGCS struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
}

// NewMediaStorageGCS — конструктор.
func NewMediaStorageGCS(client *storage.Client, bucket string) (*MediaStorageGCS, error) {
	if client == nil {
		return nil, fmt.Errorf("gcs: storage client cannot be nil")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("gcs: bucket is required")
	}
	return &MediaStorageGCS{
		client:        client,
		bucket:        strings.TrimSpace(bucket),
		publicBaseURL: "https://storage.googleapis.com",
	}, nil
}

// sanitizeFilename выбрасывает всё вне [A-Za-z0-9.-].
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// objectKey строит стойкий к коллизиям ключ: наносекундная метка плюс
// случайный суффикс — две загрузки одного имени в разное время не совпадут.
func objectKey(namespace, originalName string) string {
	prefix := fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
	return fmt.Sprintf("%s/%s-%s", namespace, prefix, sanitizeFilename(originalName))
}

// Upload пишет один объект и возвращает публичный URL.
// Основная запись уже выставляет publicRead; повторный вызов подтверждения
// видимости — best-effort: его падение уходит в warnings, не в ошибку,
// потому что объект уже публичен.
func (s *MediaStorageGCS) Upload(ctx context.Context, file domain.MediaFile, namespace string) (port.UploadResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	key := objectKey(namespace, file.Name)
	uploadLogger := logger.WithFields(port.Fields{
		"component": "MediaStorageGCS",
		"key":       key,
	})

	obj := s.client.Bucket(s.bucket).Object(key)

	w := obj.NewWriter(ctx)
	w.ContentType = file.MimeType
	w.CacheControl = mediaCacheControl
	w.PredefinedACL = "publicRead"

	if _, err := w.Write(file.Data); err != nil {
		_ = w.Close()
		uploadLogger.Error("Failed to write object", err, nil)
		return port.UploadResult{}, &domain.StorageFailure{Op: "upload", Key: key, Err: err}
	}
	if err := w.Close(); err != nil {
		uploadLogger.Error("Failed to finalize object", err, nil)
		return port.UploadResult{}, &domain.StorageFailure{Op: "upload", Key: key, Err: err}
	}

	result := port.UploadResult{
		URL: fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key),
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		uploadLogger.Warn("Visibility confirmation call failed, object is already public from the primary write", port.Fields{"error": err.Error()})
		result.Warnings = append(result.Warnings, fmt.Sprintf("visibility confirmation failed for %s: %v", key, err))
	}

	uploadLogger.Debug("Object uploaded", port.Fields{"url": result.URL})
	return result, nil
}

// UploadMany грузит все файлы конкурентно. Любая единичная ошибка роняет
// весь батч — частичный успех наружу не отдается. Кому нужна частичная
// устойчивость — зовет Upload по одному.
func (s *MediaStorageGCS) UploadMany(ctx context.Context, files []domain.MediaFile, namespace string) ([]port.UploadResult, error) {
	if len(files) == 0 {
		return []port.UploadResult{}, nil
	}

	results := make([]port.UploadResult, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f domain.MediaFile) {
			defer wg.Done()
			results[i], errs[i] = s.Upload(ctx, f, namespace)
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Delete восстанавливает ключ из пути публичного URL и удаляет объект.
// Уже отсутствующий объект ошибкой не считается.
func (s *MediaStorageGCS) Delete(ctx context.Context, mediaURL string) error {
	key, err := s.keyFromURL(mediaURL)
	if err != nil {
		return &domain.StorageFailure{Op: "delete", Key: mediaURL, Err: err}
	}

	if err := s.client.Bucket(s.bucket).Object(key).Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
		return &domain.StorageFailure{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// keyFromURL — обратная операция к шаблону publicBaseURL/bucket/key.
func (s *MediaStorageGCS) keyFromURL(mediaURL string) (string, error) {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return "", fmt.Errorf("gcs: cannot parse media url: %w", err)
	}

	path := strings.TrimPrefix(u.Path, "/")
	key, found := strings.CutPrefix(path, s.bucket+"/")
	if !found || key == "" {
		return "", fmt.Errorf("gcs: url %q does not belong to bucket %q", mediaURL, s.bucket)
	}
	return key, nil
}
