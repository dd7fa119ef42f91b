package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/repositories"
	"repair-system/pkg/constants"
	"repair-system/pkg/enums"
)

type ReportServiceInterface interface {
	GetSummaryStats(ctx context.Context) (*dto.SummaryStatsDTO, error)
	Dictionaries() []dto.DictionaryDTO
}

type ReportService struct {
	reportRepo repositories.ReportRepositoryInterface
	cache      jsonCache
	cacheTTL   time.Duration
	dicts      *enums.Dictionaries
	logger     *zap.Logger
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	dicts *enums.Dictionaries,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		reportRepo: reportRepo,
		cache:      jsonCache{repo: cacheRepo, logger: logger},
		cacheTTL:   cacheTTL,
		dicts:      dicts,
		logger:     logger,
	}
}

// summaryStatsEntry - запись кеша вместе с поколением, для которого она посчитана.
type summaryStatsEntry struct {
	Generation string              `json:"generation"`
	Stats      dto.SummaryStatsDTO `json:"stats"`
}

// GetSummaryStats - распределение по статусам (ключи, по убыванию количества),
// затраты по месяцам и общие счетчики. Результат кешируется до первой мутации:
// запись и чтение кеша сверяются с поколением, которое мутации увеличивают.
func (s *ReportService) GetSummaryStats(ctx context.Context) (*dto.SummaryStatsDTO, error) {
	gen, cacheUsable := s.cache.generation(ctx, constants.CacheKeyRepairSummaryGeneration)
	if cacheUsable {
		var cached summaryStatsEntry
		if s.cache.get(ctx, constants.CacheKeyRepairSummaryStats, &cached) && cached.Generation == gen {
			return &cached.Stats, nil
		}
	}

	statusRows, err := s.reportRepo.StatusCounts(ctx)
	if err != nil {
		s.logger.Error("Ошибка подсчета заявок по статусам", zap.Error(err))
		return nil, err
	}
	monthlyRows, err := s.reportRepo.MonthlyCosts(ctx)
	if err != nil {
		s.logger.Error("Ошибка подсчета затрат по месяцам", zap.Error(err))
		return nil, err
	}
	totals, err := s.reportRepo.Totals(ctx, s.finalStatusLabels())
	if err != nil {
		s.logger.Error("Ошибка подсчета общих показателей", zap.Error(err))
		return nil, err
	}

	// старые метки могут указывать на один ключ - суммируем
	byKey := make(map[string]int64, len(statusRows))
	for _, row := range statusRows {
		key := s.dicts.Status.ToCanonical(row.StatusLabel, "")
		byKey[key] += row.Count
	}

	order := make(map[string]int)
	for i, key := range s.dicts.Status.Keys() {
		order[key] = i
	}

	status := make([]dto.NameValueDTO, 0, len(byKey))
	for key, cnt := range byKey {
		status = append(status, dto.NameValueDTO{Name: key, Value: cnt})
	}
	sort.Slice(status, func(i, j int) bool {
		if status[i].Value != status[j].Value {
			return status[i].Value > status[j].Value
		}
		return order[status[i].Name] < order[status[j].Name]
	})

	monthly := make([]dto.MonthCostDTO, 0, len(monthlyRows))
	for _, row := range monthlyRows {
		monthly = append(monthly, dto.MonthCostDTO{Month: row.Month, Cost: row.Cost})
	}

	result := &dto.SummaryStatsDTO{
		Status:  status,
		Monthly: monthly,
		Totals: dto.TotalsDTO{
			Devices:           totals.Devices,
			Users:             totals.Users,
			ActiveAssignments: totals.ActiveAssignments,
			InstalledSoftware: totals.InstalledSoftware,
			OpenRepairs:       totals.OpenRepairs,
		},
	}

	if cacheUsable {
		// пока шел расчет, могла закоммититься мутация: такой результат не кешируем
		if current, ok := s.cache.generation(ctx, constants.CacheKeyRepairSummaryGeneration); ok && current == gen {
			s.cache.set(ctx, constants.CacheKeyRepairSummaryStats, summaryStatsEntry{Generation: gen, Stats: *result}, s.cacheTTL)
		} else {
			s.logger.Debug("Статистика изменилась во время расчета, кеш не обновлен",
				zap.String("generation", gen), zap.String("current", current))
		}
	}
	return result, nil
}

func (s *ReportService) finalStatusLabels() []string {
	labels := make([]string, 0, len(constants.FinalRepairStatuses))
	for _, key := range constants.FinalRepairStatuses {
		if label, ok := s.dicts.Status.Label(key); ok {
			labels = append(labels, label)
		}
	}
	return labels
}

// Dictionaries отдает ключи и метки всех справочников для клиента.
func (s *ReportService) Dictionaries() []dto.DictionaryDTO {
	all := []*enums.Dictionary{s.dicts.Status, s.dicts.Severity, s.dicts.Priority}
	result := make([]dto.DictionaryDTO, 0, len(all))
	for _, d := range all {
		values := make([]dto.EnumValueDTO, 0, len(d.Keys()))
		for _, e := range d.Entries() {
			values = append(values, dto.EnumValueDTO{Key: e.Key, Label: e.Label})
		}
		result = append(result, dto.DictionaryDTO{Name: d.Name(), DefaultKey: d.DefaultKey(), Values: values})
	}
	return result
}
