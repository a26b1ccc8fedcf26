// Package handler: export.go implements GET /export.
// Returns all batches and sections as a flat table.
// Supports ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/nextSaimon/students-details/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"batch_id", "batch_name", "batch_session", "batch_link",
	"section_id", "section_name",
}

// ExportRow is the JSON representation of one export row.
// Section fields are omitted for batches that have no sections.
type ExportRow struct {
	BatchID      string  `json:"batch_id"`
	BatchName    string  `json:"batch_name"`
	BatchSession string  `json:"batch_session"`
	BatchLink    string  `json:"batch_link"`
	SectionID    *string `json:"section_id,omitempty"`
	SectionName  *string `json:"section_name,omitempty"`
}

// GetExport handles GET /export.
// Use ?format=csv to receive CSV; default is JSON. Any other format is a 400.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, codeValidation, "format must be json or csv")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.respondErr(w, r, err, "nothing to export")
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}

	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ExportRow{
			BatchID:      row.BatchID,
			BatchName:    row.BatchName,
			BatchSession: row.BatchSession,
			BatchLink:    row.BatchLink,
			SectionID:    nilIfEmpty(row.SectionID),
			SectionName:  nilIfEmpty(row.SectionName),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write([]string{
			row.BatchID,
			row.BatchName,
			row.BatchSession,
			row.BatchLink,
			row.SectionID,
			row.SectionName,
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="export.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
