package dto

// NameValueDTO - точка распределения: name - ключ статуса.
type NameValueDTO struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type MonthCostDTO struct {
	Month string  `json:"month"`
	Cost  float64 `json:"cost"`
}

type TotalsDTO struct {
	Devices           int64 `json:"devices"`
	Users             int64 `json:"users"`
	ActiveAssignments int64 `json:"active_assignments"`
	InstalledSoftware int64 `json:"installed_software"`
	OpenRepairs       int64 `json:"open_repairs"`
}

type SummaryStatsDTO struct {
	Status  []NameValueDTO `json:"status"`
	Monthly []MonthCostDTO `json:"monthly"`
	Totals  TotalsDTO      `json:"totals"`
}

type DictionaryDTO struct {
	Name       string         `json:"name"`
	DefaultKey string         `json:"default_key"`
	Values     []EnumValueDTO `json:"values"`
}
