package validation

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"
)

var (
	ErrFileTooLarge       = errors.New("файл превышает допустимый размер")
	ErrFileTypeNotAllowed = errors.New("недопустимый формат файла")
)

// AllowedRepairFileTypes - форматы вложений к заявке (фото, документы, архивы логов).
var AllowedRepairFileTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
	"application/zip",
	"text/plain",
	"application/octet-stream",
}

// ValidateFile проверяет размер и MIME-тип файла по содержимому и возвращает
// определенный тип. Курсор чтения возвращается в начало.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, maxBytes int64, allowed []string) (string, error) {
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		return "", fmt.Errorf("%w: %q (%.2f MB, лимит %.2f MB)", ErrFileTooLarge,
			fileHeader.Filename, float64(fileHeader.Size)/1024/1024, float64(maxBytes)/1024/1024)
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("ошибка чтения файла %q: %w", fileHeader.Filename, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("ошибка обработки файла %q: %w", fileHeader.Filename, err)
	}

	mimeType := http.DetectContentType(buffer[:n])
	base := strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])
	if !slices.Contains(allowed, base) {
		return "", fmt.Errorf("%w %q: %s", ErrFileTypeNotAllowed, fileHeader.Filename, base)
	}
	return base, nil
}
