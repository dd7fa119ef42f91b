package repositories

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "repair-system/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mapPgError переводит ошибки PostgreSQL в ошибки приложения. Нарушение
// уникального индекса всегда означает конфликт, с каким бы сообщением
// его ни поймали выше.
func mapPgError(err error, conflictMessage string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return apperrors.NewHttpError(http.StatusConflict, conflictMessage, apperrors.ErrConflict, nil)
	case pgForeignKeyViolation:
		return apperrors.NewHttpError(http.StatusNotFound, "Bản ghi liên quan không tồn tại", apperrors.ErrNotFound, nil)
	case pgCheckViolation:
		return apperrors.NewHttpError(http.StatusBadRequest, "Giá trị vi phạm ràng buộc dữ liệu", apperrors.ErrValidation, nil)
	}
	return err
}
