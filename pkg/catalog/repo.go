package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"assetdesk/pkg/idgen"
)

var (
	ErrAssetNotFound  = errors.New("asset not found")
	ErrDuplicateAsset = errors.New("asset with this serial, brand and type already exists")
)

type AssetRepository interface {
	ListTypes(ctx context.Context) ([]string, error)
	ListSpecSchemas(ctx context.Context) (map[string][]SpecField, error)
	SpecSchemaFor(ctx context.Context, typeName string) ([]SpecField, error)
	CreateAsset(ctx context.Context, input CreateAssetInput, specs map[string]string) (string, error)
	GetAsset(ctx context.Context, assetID string) (AssetView, error)
	ListAssets(ctx context.Context) ([]AssetView, error)
	DeleteAssets(ctx context.Context, assetIDs []string) (int64, error)
	AssignmentHistory(ctx context.Context, assetID string) ([]HistoryEntry, error)
	AllAssignmentHistory(ctx context.Context) (map[string][]HistoryEntry, error)
}

type postgresAssetRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresAssetRepository(pool *pgxpool.Pool, logger *zap.Logger) AssetRepository {
	return &postgresAssetRepository{pool: pool, logger: logger}
}

func (r *postgresAssetRepository) ListTypes(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT type_name FROM asset_types ORDER BY type_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		types = append(types, name)
	}
	return types, rows.Err()
}

func (r *postgresAssetRepository) ListSpecSchemas(ctx context.Context) (map[string][]SpecField, error) {
	query := `SELECT t.type_name, s.field_key, s.field_label, COALESCE(s.placeholder, '')
              FROM asset_spec_fields s
              JOIN asset_types t ON s.asset_type_id = t.id
              ORDER BY t.type_name, s.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schemas := make(map[string][]SpecField)
	for rows.Next() {
		var typeName string
		var f SpecField
		if err := rows.Scan(&typeName, &f.Key, &f.Label, &f.Placeholder); err != nil {
			return nil, err
		}
		schemas[typeName] = append(schemas[typeName], f)
	}
	return schemas, rows.Err()
}

func (r *postgresAssetRepository) SpecSchemaFor(ctx context.Context, typeName string) ([]SpecField, error) {
	query := `SELECT s.field_key, s.field_label, COALESCE(s.placeholder, '')
              FROM asset_spec_fields s
              JOIN asset_types t ON s.asset_type_id = t.id
              WHERE t.type_name = $1
              ORDER BY s.id`

	rows, err := r.pool.Query(ctx, query, typeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := make([]SpecField, 0)
	for rows.Next() {
		var f SpecField
		if err := rows.Scan(&f.Key, &f.Label, &f.Placeholder); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// CreateAsset runs the whole creation as one transaction: id generation, the
// asset row, its specification rows and the initial assignment record. Any
// failure rolls back everything, including the counter increment.
func (r *postgresAssetRepository) CreateAsset(ctx context.Context, input CreateAssetInput, specs map[string]string) (string, error) {
	purchaseDate, err := parseDate(input.PurchaseDate)
	if err != nil {
		return "", err
	}
	warrantyExpiry, err := parseDate(input.WarrantyExpiry)
	if err != nil {
		return "", err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	assetID, err := idgen.NextIDTx(ctx, tx)
	if err != nil {
		return "", err
	}

	var assignedTo *string
	if input.AssignedTo != "" {
		assignedTo = &input.AssignedTo
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO assets (asset_id, serial_no, asset_type, brand, model, purchase_date,
                             product_cost, gst, warranty_expiry, assigned_to, under_repair)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		assetID, input.SerialNumber, input.AssetType, input.Brand, input.Model, purchaseDate,
		input.ProductCost, input.GST, warrantyExpiry, assignedTo, input.UnderRepair)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrDuplicateAsset
		}
		return "", err
	}

	labels, err := specLabelsForType(ctx, tx, input.AssetType)
	if err != nil {
		return "", err
	}

	for key, value := range specs {
		if value == "" {
			continue
		}
		label, ok := labels[key]
		if !ok {
			label = key
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO asset_specs (asset_id, asset_type, field_label, field_value)
             VALUES ($1, $2, $3, $4)`,
			assetID, input.AssetType, label, value)
		if err != nil {
			return "", err
		}
	}

	if assignedTo != nil {
		name := employeeName(ctx, tx, *assignedTo)
		_, err = tx.Exec(ctx,
			`INSERT INTO assignment_history (asset_id, employee_id, employee_name, assigned_on, is_active)
             VALUES ($1, $2, $3, CURRENT_DATE, TRUE)`,
			assetID, *assignedTo, name)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}

	r.logger.Info("asset created",
		zap.String("asset_id", assetID),
		zap.String("asset_type", input.AssetType),
		zap.String("serial_no", input.SerialNumber))
	return assetID, nil
}

func (r *postgresAssetRepository) GetAsset(ctx context.Context, assetID string) (AssetView, error) {
	query := `SELECT asset_id, COALESCE(serial_no, ''), COALESCE(asset_type, ''),
                     COALESCE(brand, ''), COALESCE(model, ''),
                     assigned_to, under_repair, loaner_in_use, warranty_expiry
              FROM assets
              WHERE asset_id = $1`

	var v AssetView
	var brand, model string
	var warranty *time.Time
	err := r.pool.QueryRow(ctx, query, assetID).Scan(
		&v.AssetID, &v.SerialNumber, &v.AssetType, &brand, &model,
		&v.AssignedTo, &v.UnderRepair, &v.LoanerInUse, &warranty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AssetView{}, ErrAssetNotFound
		}
		return AssetView{}, err
	}
	v.WarrantyExpiry = formatDate(warranty)

	v.Specifications = map[string]string{"brand": brand, "model": model}
	rows, err := r.pool.Query(ctx,
		`SELECT field_label, field_value FROM asset_specs WHERE asset_id = $1`, assetID)
	if err != nil {
		return AssetView{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var label, value string
		if err := rows.Scan(&label, &value); err != nil {
			return AssetView{}, err
		}
		v.Specifications[label] = value
	}
	return v, rows.Err()
}

func (r *postgresAssetRepository) ListAssets(ctx context.Context) ([]AssetView, error) {
	query := `SELECT asset_id, COALESCE(serial_no, ''), COALESCE(asset_type, ''),
                     COALESCE(brand, ''), COALESCE(model, ''),
                     assigned_to, under_repair, loaner_in_use, warranty_expiry
              FROM assets
              ORDER BY asset_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]AssetView, 0)
	for rows.Next() {
		var v AssetView
		var brand, model string
		var warranty *time.Time
		if err := rows.Scan(&v.AssetID, &v.SerialNumber, &v.AssetType, &brand, &model,
			&v.AssignedTo, &v.UnderRepair, &v.LoanerInUse, &warranty); err != nil {
			return nil, err
		}
		v.WarrantyExpiry = formatDate(warranty)
		v.Specifications = map[string]string{"brand": brand, "model": model}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	specRows, err := r.pool.Query(ctx,
		`SELECT asset_id, field_label, field_value FROM asset_specs`)
	if err != nil {
		return nil, err
	}
	defer specRows.Close()

	byAsset := make(map[string]map[string]string, len(views))
	for i := range views {
		byAsset[views[i].AssetID] = views[i].Specifications
	}
	for specRows.Next() {
		var assetID, label, value string
		if err := specRows.Scan(&assetID, &label, &value); err != nil {
			return nil, err
		}
		if specs, ok := byAsset[assetID]; ok {
			specs[label] = value
		}
	}
	return views, specRows.Err()
}

// DeleteAssets removes the listed assets; specification rows, assignment
// history and repair records go with them via ON DELETE CASCADE. Missing or
// duplicate ids are not errors, the returned count covers rows actually
// removed.
func (r *postgresAssetRepository) DeleteAssets(ctx context.Context, assetIDs []string) (int64, error) {
	if len(assetIDs) == 0 {
		return 0, nil
	}

	cmd, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE asset_id = ANY($1)`, assetIDs)
	if err != nil {
		return 0, err
	}

	r.logger.Info("assets deleted",
		zap.Int("requested", len(assetIDs)),
		zap.Int64("deleted", cmd.RowsAffected()))
	return cmd.RowsAffected(), nil
}

func (r *postgresAssetRepository) AssignmentHistory(ctx context.Context, assetID string) ([]HistoryEntry, error) {
	query := `SELECT employee_id, COALESCE(employee_name, ''), assigned_on, returned_on, is_active
              FROM assignment_history
              WHERE asset_id = $1
              ORDER BY assigned_on DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]HistoryEntry, 0)
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

func (r *postgresAssetRepository) AllAssignmentHistory(ctx context.Context) (map[string][]HistoryEntry, error) {
	query := `SELECT asset_id, employee_id, COALESCE(employee_name, ''), assigned_on, returned_on, is_active
              FROM assignment_history
              ORDER BY asset_id, assigned_on DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]HistoryEntry)
	for rows.Next() {
		var assetID string
		var assignedOn time.Time
		var returnedOn *time.Time
		var isActive bool
		var entry HistoryEntry
		if err := rows.Scan(&assetID, &entry.EmployeeID, &entry.EmployeeName,
			&assignedOn, &returnedOn, &isActive); err != nil {
			return nil, err
		}
		entry.AssignedOn = assignedOn.Format("2006-01-02")
		entry.ReturnedOn = renderReturnedOn(returnedOn, isActive)
		result[assetID] = append(result[assetID], entry)
	}
	return result, rows.Err()
}

func scanHistoryEntry(rows pgx.Rows) (HistoryEntry, error) {
	var entry HistoryEntry
	var assignedOn time.Time
	var returnedOn *time.Time
	var isActive bool
	if err := rows.Scan(&entry.EmployeeID, &entry.EmployeeName, &assignedOn, &returnedOn, &isActive); err != nil {
		return HistoryEntry{}, err
	}
	entry.AssignedOn = assignedOn.Format("2006-01-02")
	entry.ReturnedOn = renderReturnedOn(returnedOn, isActive)
	return entry, nil
}

func renderReturnedOn(returnedOn *time.Time, isActive bool) string {
	if isActive {
		return "Active"
	}
	if returnedOn == nil {
		return ""
	}
	return returnedOn.Format("2006-01-02")
}

func specLabelsForType(ctx context.Context, tx pgx.Tx, typeName string) (map[string]string, error) {
	rows, err := tx.Query(ctx,
		`SELECT s.field_key, s.field_label
         FROM asset_spec_fields s
         JOIN asset_types t ON s.asset_type_id = t.id
         WHERE t.type_name = $1`, typeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := make(map[string]string)
	for rows.Next() {
		var key, label string
		if err := rows.Scan(&key, &label); err != nil {
			return nil, err
		}
		labels[key] = label
	}
	return labels, rows.Err()
}

// employeeName resolves a display name for denormalization into history rows;
// the raw id stands in when the employee row is missing.
func employeeName(ctx context.Context, tx pgx.Tx, employeeID string) string {
	var name string
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(name, '') FROM employees WHERE employee_id = $1`, employeeID).Scan(&name)
	if err != nil || name == "" {
		return employeeID
	}
	return name
}

// parseDate accepts a bare calendar date or an RFC 3339 timestamp and
// truncates to the calendar date. Empty input yields nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
