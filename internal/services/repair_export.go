package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"repair-system/internal/dto"
)

// ExportSheetName - имя листа в выгрузке.
const ExportSheetName = "Yêu cầu sửa chữa"

// exportMaxRows ограничивает выгрузку, чтобы не собирать гигантский файл в памяти.
const exportMaxRows = 10000

var exportHeaders = []interface{}{
	"ID", "Thiết bị", "Người báo", "Tiêu đề", "Mức độ", "Ưu tiên",
	"Trạng thái", "SLA (giờ)", "Tổng chi phí", "Ngày báo", "Cập nhật",
}

func listItemToRow(item dto.RepairListItemDTO) []interface{} {
	var sla interface{} = ""
	if item.SLAHours != nil {
		sla = *item.SLAHours
	}
	return []interface{}{
		item.ID, item.DeviceName, item.ReporterName, item.Title,
		item.Severity.Label, item.Priority.Label, item.Status.Label,
		sla, item.TotalCost, item.DateReported, item.LastUpdated,
	}
}

func (s *RepairService) ExportRepairsXLSX(ctx context.Context, filter dto.RepairFilter) ([]byte, error) {
	filter.Limit = exportMaxRows
	filter.Offset = 0

	items, total, err := s.ListRepairs(ctx, filter)
	if err != nil {
		return nil, err
	}
	if total > exportMaxRows {
		s.logger.Warn("Выгрузка обрезана", zap.Uint64("total", total), zap.Int("limit", exportMaxRows))
	}

	return buildRepairsWorkbook(items)
}

func buildRepairsWorkbook(items []dto.RepairListItemDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return nil, fmt.Errorf("ошибка переименования листа: %w", err)
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("ошибка записи заголовка: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(ExportSheetName, "A1", lastHeader, style)
	}

	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := listItemToRow(item)
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("ошибка записи строки %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(ExportSheetName, "B", "C", 25)
	_ = f.SetColWidth(ExportSheetName, "D", "D", 40)
	_ = f.SetColWidth(ExportSheetName, "E", "G", 18)
	_ = f.SetColWidth(ExportSheetName, "J", "K", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportFileName - имя файла выгрузки, date в формате YYYY-MM-DD.
func ExportFileName(date string) string {
	return fmt.Sprintf("repairs_%s.xlsx", date)
}
