// pkg/filestorage/local_filestorage.go

package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStorageInterface - хранилище вложений. Save возвращает путь относительно
// корня хранилища, именно он записывается в БД.
type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	Delete(filePath string) error
}

type LocalFileStorage struct {
	basePath string
	now      func() time.Time
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию: %w", err)
		}
	}
	return &LocalFileStorage{basePath: basePath, now: time.Now}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	now := s.now()
	ext := strings.ToLower(filepath.Ext(originalFileName))
	uniqueFileName := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), uuid.New().String(), ext)

	datePath := now.Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, prefix, datePath)

	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(fullDirPath, uniqueFileName)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}

	if _, err = io.Copy(dst, file); err != nil {
		dst.Close()
		// недописанный файл не должен остаться на диске
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("ошибка записи файла %q: %w", originalFileName, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(fullPath)
		return "", err
	}

	return filepath.ToSlash(filepath.Join(prefix, datePath, uniqueFileName)), nil
}

// Delete принимает путь из Save (допускается префикс "/uploads/").
// Отсутствующий файл не считается ошибкой.
func (s *LocalFileStorage) Delete(filePath string) error {
	relativePath := strings.TrimPrefix(strings.TrimPrefix(filePath, "/uploads/"), "/")
	if relativePath == "" || strings.Contains(relativePath, "..") {
		return fmt.Errorf("недопустимый путь файла: %q", filePath)
	}

	fullPath := filepath.Join(s.basePath, filepath.FromSlash(relativePath))
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(fullPath)
}
