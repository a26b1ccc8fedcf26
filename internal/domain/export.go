package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per section, with batch fields
// repeated for every section of that batch. Batches with no sections yield
// one row with empty section fields.
type ExportRow struct {
	// Batch fields, repeated for every section of the batch.
	BatchID      string
	BatchName    string
	BatchSession string
	BatchLink    string

	// Section fields, empty when the batch has no sections.
	SectionID   string
	SectionName string
}
