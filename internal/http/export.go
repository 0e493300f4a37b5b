package http

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"fishlog/internal/core"
	applog "fishlog/internal/log"
)

var csvHeader = []string{"id", "species", "weight", "bait", "location", "date_of_catch", "time_of_catch", "catcher", "image_ref"}

// writeCatchesCSV writes a header row and one row per record, in listing order.
func writeCatchesCSV(buf *bytes.Buffer, records []core.CatchRecord) error {
	cw := csv.NewWriter(buf)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			rec.Species,
			formatWeight(rec.Weight),
			rec.Bait,
			rec.Location,
			rec.DateOfCatch,
			rec.TimeOfCatch,
			rec.Catcher,
			rec.ImageRef,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	records, err := s.catches.ListCatches(r.Context())
	if err != nil {
		s.storeErrorResponse(r, applog.OpExport, err).Write(w)
		return
	}

	var buf bytes.Buffer
	if err := writeCatchesCSV(&buf, records); err != nil {
		s.log.LogError(r.Context(), "CSV export failed", err, applog.OpExport, applog.ErrorTypeInternal)
		InternalServerError("Could not build the export").Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="fishlog-catches.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
