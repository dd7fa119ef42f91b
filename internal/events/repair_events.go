package events

// Виды изменений заявки.
const (
	RepairCreated       = "created"
	RepairStatusChanged = "status_changed"
	RepairDetailChanged = "detail_changed"
	RepairPartsChanged  = "parts_changed"
	RepairFilesChanged  = "files_changed"
)

// Виды изменений журналов выдачи и установок.
const (
	LedgerCheckin   = "checkin"
	LedgerCheckout  = "checkout"
	LedgerInstall   = "install"
	LedgerUninstall = "uninstall"
)

// RepairChangedEvent публикуется после коммита любой мутации заявки.
type RepairChangedEvent struct {
	RepairID  uint64
	Kind      string
	ActorID   uint64
	OldStatus string
	NewStatus string
}

// Name - реализуем интерфейс eventbus.Event
func (e RepairChangedEvent) Name() string {
	return "repair.changed"
}

// LedgerChangedEvent публикуется после checkin/checkout и установки/удаления ПО.
type LedgerChangedEvent struct {
	Kind       string
	DeviceID   uint64
	UserID     uint64
	SoftwareID uint64
}

func (e LedgerChangedEvent) Name() string {
	return "ledger.changed"
}
