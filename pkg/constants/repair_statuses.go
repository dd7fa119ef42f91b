package constants

// --- КЛЮЧИ СТАТУСОВ ЗАЯВОК НА РЕМОНТ (канонические, не метки из БД) ---
const (
	RepairStatusRequested    = "requested"
	RepairStatusApproved     = "approved"
	RepairStatusInProgress   = "in_progress"
	RepairStatusPendingParts = "pending_parts"
	RepairStatusCompleted    = "completed"
	RepairStatusCanceled     = "canceled"
)

// Финальные статусы
var FinalRepairStatuses = []string{
	RepairStatusCompleted,
	RepairStatusCanceled,
}

func IsFinalRepairStatus(key string) bool {
	for _, s := range FinalRepairStatuses {
		if s == key {
			return true
		}
	}
	return false
}

// --- КРИТИЧНОСТЬ ---
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// --- ПРИОРИТЕТ ---
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// --- ТИП РЕМОНТА ---
const (
	RepairTypeInternal = "Internal"
	RepairTypeExternal = "External"
)

// --- СТАТУСЫ УСТАНОВКИ ПО ---
const (
	SoftwareStatusInstalled   = "installed"
	SoftwareStatusUninstalled = "uninstalled"
)

// --- ТИПЫ ФАЙЛОВ ---
const (
	UploadPrefixRepairFiles = "repairs"
)

//============== CACHE KEYS ==============

const (
	// Сводная статистика по заявкам.
	// Формат: repairs:summary_stats -> JSON
	CacheKeyRepairSummaryStats = "repairs:summary_stats"

	// Поколение статистики, растет при каждой мутации.
	// Формат: repairs:summary_stats:gen -> int
	CacheKeyRepairSummaryGeneration = "repairs:summary_stats:gen"
)
