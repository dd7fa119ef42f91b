package entities

import "time"

// RepairFile - ссылка на файл, уже сохраненный файловым хранилищем.
// Содержимое в БД не хранится, только путь.
type RepairFile struct {
	IDFile     uint64    `db:"id_file"`
	IDRepair   uint64    `db:"id_repair"`
	FilePath   string    `db:"file_path"`
	FileName   string    `db:"file_name"`
	MimeType   *string   `db:"mime_type"`
	FileSize   int64     `db:"file_size"`
	UploadedBy *uint64   `db:"uploaded_by"`
	UploadedAt time.Time `db:"uploaded_at"`
}
