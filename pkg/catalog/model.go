package catalog

// CreateAssetInput carries the core asset fields for creation. Date fields
// accept either a bare calendar date (2006-01-02) or an RFC 3339 timestamp.
type CreateAssetInput struct {
	AssetType      string  `json:"assetType"`
	SerialNumber   string  `json:"serialNumber"`
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	PurchaseDate   string  `json:"purchaseDate"`
	ProductCost    float64 `json:"purchaseCost"`
	GST            float64 `json:"gstPaid"`
	WarrantyExpiry string  `json:"warrantyExpiry"`
	AssignedTo     string  `json:"assignedTo"`
	UnderRepair    bool    `json:"repairStatus"`
}

// AssetView is the flattened read shape: specifications carry every stored
// key-value pair with brand and model merged in for display.
type AssetView struct {
	AssetID        string            `json:"assetId"`
	SerialNumber   string            `json:"serialNumber"`
	AssetType      string            `json:"assetType"`
	Specifications map[string]string `json:"specifications"`
	AssignedTo     *string           `json:"assignedTo"`
	UnderRepair    bool              `json:"repairStatus"`
	LoanerInUse    bool              `json:"isLoanerInUse"`
	WarrantyExpiry *string           `json:"warrantyExpiry"`
}

// SpecField describes one entry of a per-type specification schema.
type SpecField struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
}

// HistoryEntry is one assignment record rendered for display. ReturnedOn is
// the literal string "Active" while the record is still open.
type HistoryEntry struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	AssignedOn   string `json:"assignedOn"`
	ReturnedOn   string `json:"returnedOn"`
}
