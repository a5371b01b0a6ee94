package summary

// Row is one bucket of the aggregation view: asset counts grouped by type,
// department, brand and model. Department is "Not Assigned" for unassigned
// assets.
type Row struct {
	AssetType  string `json:"assetType"`
	Department string `json:"department"`
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	Count      int64  `json:"count"`
}
