package port

import (
	"context"

	"catalog-service/internal/core/domain"
)

// UploadResult — URL загруженного объекта плюс нефатальные предупреждения
// (например, не прошёл повторный вызов подтверждения видимости).
type UploadResult struct {
	URL      string
	Warnings []string
}

// MediaStoragePort — контракт объектного хранилища медиа.
type MediaStoragePort interface {
	// Upload пишет один файл и возвращает стабильный публичный URL.
	Upload(ctx context.Context, file domain.MediaFile, namespace string) (UploadResult, error)

	// UploadMany грузит все файлы конкурентно. Падение любого файла
	// роняет весь батч — частичного успеха наружу не отдается.
	UploadMany(ctx context.Context, files []domain.MediaFile, namespace string) ([]UploadResult, error)

	// Delete восстанавливает ключ из URL и удаляет объект.
	// Ошибка удаления никогда не должна блокировать вызвавшую операцию.
	Delete(ctx context.Context, url string) error
}
