package seeders

type userSeed struct {
	Username string
	FullName string
	Email    string
}

type deviceSeed struct {
	Name         string
	SerialNumber string
	DeviceType   string
	Location     string
}

type softwareSeed struct {
	Name      string
	Version   string
	Publisher string
}

type vendorSeed struct {
	Name  string
	Phone string
	Email string
}

var usersData = []userSeed{
	{Username: "admin", FullName: "Quản trị hệ thống", Email: "admin@example.local"},
	{Username: "it.tuan", FullName: "Trần Minh Tuấn", Email: "tuan.tm@example.local"},
	{Username: "it.lan", FullName: "Phạm Thị Lan", Email: "lan.pt@example.local"},
	{Username: "nv.hung", FullName: "Nguyễn Văn Hùng", Email: "hung.nv@example.local"},
	{Username: "nv.mai", FullName: "Lê Thị Mai", Email: "mai.lt@example.local"},
}

var devicesData = []deviceSeed{
	{Name: "Laptop Dell Latitude 7490", SerialNumber: "DL7490-001", DeviceType: "Laptop", Location: "Tầng 3"},
	{Name: "Laptop ThinkPad T14", SerialNumber: "TP14-017", DeviceType: "Laptop", Location: "Tầng 3"},
	{Name: "Máy in HP LaserJet M404", SerialNumber: "HPM404-02", DeviceType: "Printer", Location: "Tầng 2"},
	{Name: "Màn hình Dell P2419H", SerialNumber: "P2419H-11", DeviceType: "Monitor", Location: "Tầng 2"},
	{Name: "Máy chiếu Epson EB-X41", SerialNumber: "EBX41-05", DeviceType: "Projector", Location: "Phòng họp A"},
}

var softwareData = []softwareSeed{
	{Name: "Microsoft Office", Version: "2021", Publisher: "Microsoft"},
	{Name: "Windows 11 Pro", Version: "23H2", Publisher: "Microsoft"},
	{Name: "Kaspersky Endpoint Security", Version: "12.3", Publisher: "Kaspersky"},
	{Name: "AutoCAD", Version: "2024", Publisher: "Autodesk"},
}

var vendorsData = []vendorSeed{
	{Name: "Công ty TNHH Sửa chữa Phúc Anh", Phone: "024 3968 9966", Email: "service@phucanh.local"},
	{Name: "Trung tâm bảo hành Dell", Phone: "1800 545 455", Email: "support@dell.local"},
}

// demoRepairs - заявки для демонстрации; Steps проходят через настоящий
// жизненный цикл, поэтому история и стоимость согласованы.
type demoRepair struct {
	DeviceSerial string
	Reporter     string
	Title        string
	Description  string
	Severity     string
	Priority     string
	Steps        []string
	LaborCost    float64
	PartsCost    float64
}

var demoRepairsData = []demoRepair{
	{
		DeviceSerial: "DL7490-001", Reporter: "nv.hung",
		Title: "Màn hình bị sọc", Description: "Màn hình laptop xuất hiện sọc ngang khi khởi động",
		Severity: "high", Priority: "urgent",
		Steps:     []string{"approved", "in_progress", "completed"},
		LaborCost: 300000, PartsCost: 1500000,
	},
	{
		DeviceSerial: "HPM404-02", Reporter: "nv.mai",
		Title: "Kẹt giấy liên tục", Description: "Máy in kẹt giấy ở khay 2",
		Severity: "Trung bình", Priority: "Bình thường",
		Steps:     []string{"approved", "in_progress"},
		LaborCost: 150000,
	},
	{
		DeviceSerial: "EBX41-05", Reporter: "it.lan",
		Title: "Không nhận tín hiệu HDMI", Description: "Máy chiếu không nhận laptop qua cổng HDMI",
		Severity: "low", Priority: "low",
		Steps: []string{"canceled"},
	},
}
