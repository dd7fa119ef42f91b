package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/services"
	"repair-system/pkg/api"
	"repair-system/pkg/utils"
)

const exportTimeout = 60 * time.Second

type ReportController struct {
	reportService services.ReportServiceInterface
	repairService services.RepairServiceInterface
	logger        *zap.Logger
	now           func() time.Time
}

func NewReportController(
	reportService services.ReportServiceInterface,
	repairService services.RepairServiceInterface,
	logger *zap.Logger,
) *ReportController {
	return &ReportController{
		reportService: reportService,
		repairService: repairService,
		logger:        logger,
		now:           time.Now,
	}
}

func (c *ReportController) SummaryStats(ctx echo.Context) error {
	stats, err := c.reportService.GetSummaryStats(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Thống kê sửa chữa", stats)
}

func (c *ReportController) Dictionaries(ctx echo.Context) error {
	return api.SuccessOne(ctx, http.StatusOK, "Danh mục", c.reportService.Dictionaries())
}

// ExportRepairs отдает xlsx с теми же фильтрами, что и список заявок.
func (c *ReportController) ExportRepairs(ctx echo.Context) error {
	filter, _, err := ParseRepairFilter(ctx.QueryParams())
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	reqCtx, cancel := utils.RequestContextWithTimeout(ctx, exportTimeout)
	defer cancel()

	content, err := c.repairService.ExportRepairsXLSX(reqCtx, filter)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	fileName := services.ExportFileName(c.now().Format("2006-01-02"))
	c.logger.Info("Выгрузка заявок сформирована", zap.String("file", fileName), zap.Int("bytes", len(content)))

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return ctx.Blob(http.StatusOK, services.XLSXContentType, content)
}
