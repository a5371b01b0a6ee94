package ledger

// ReassignInput is the authoritative target state for an asset: the new
// holder (nil to unassign) and the repair flag, both applied unconditionally.
type ReassignInput struct {
	AssetID     string
	NewHolderID *string
	UnderRepair bool
}
