package repair

import "time"

// Record is one repair episode. LoanerAssetID is set only when a substitute
// asset was handed to the holder for the duration of the repair.
type Record struct {
	ID            int64      `json:"id"`
	AssetID       string     `json:"assetId"`
	LoanerAssetID *string    `json:"loanerAssetId"`
	Details       string     `json:"details"`
	StartedAt     time.Time  `json:"startedAt"`
	EndedAt       *time.Time `json:"endedAt"`
}

// Loaner is one asset eligible to substitute for an asset under repair.
type Loaner struct {
	AssetID      string `json:"assetId"`
	SerialNumber string `json:"serialNumber"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
}

type StartRepairInput struct {
	AssetID       string
	Details       string
	LoanerAssetID *string
}
