package http

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync/atomic"

	"fishlog/internal/core"
	applog "fishlog/internal/log"
)

type formPage struct {
	page
	Form   catchForm
	Errors []string
}

type catchRow struct {
	ID          int64
	Species     string
	Weight      string
	Bait        string
	Location    string
	DateOfCatch string
	TimeOfCatch string
	Catcher     string
	ImageRef    string
}

type databasePage struct {
	page
	Total   int
	Catches []catchRow
	Charts  []BarChart
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := formPage{page: page{Title: "Log a catch", Active: "index"}}
	s.pageResponse(r, http.StatusOK, "index.html", data).Write(w)
}

func (s *Server) handleCreateCatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid form submission").Write(w)
		return
	}

	form := readCatchForm(r.PostForm)
	nc, err := form.toNewCatch()
	var id int64
	if err == nil {
		id, err = s.catches.CreateCatch(ctx, nc)
	}
	switch {
	case err == nil:
	case errors.Is(err, core.ErrValidation):
		atomic.AddInt64(&s.metrics.validationFailures, 1)
		s.formErrorResponse(r, form, err).Write(w)
		return
	default:
		s.storeErrorResponse(r, applog.OpCreate, err).Write(w)
		return
	}

	atomic.AddInt64(&s.metrics.catchesCreated, 1)
	s.log.LogCatchCreated(ctx, id, nc.Species, nc.Catcher, nc.Location)

	if isHTMX(r) {
		msg := fmt.Sprintf("Catch #%d recorded: %s caught by %s", id, nc.Species, nc.Catcher)
		NewHTMXResponse().
			TriggerCatchCreated(id).
			TriggerFormReset().
			BodyHTML(`<div class="notice success">` + template.HTMLEscapeString(msg) + `</div>`).
			Write(w)
		return
	}
	http.Redirect(w, r, "/database", http.StatusSeeOther)
}

// formErrorResponse is a 422 error fragment for htmx, or the form page again
// with the submitted values otherwise.
func (s *Server) formErrorResponse(r *http.Request, form catchForm, err error) *HTMXResponseBuilder {
	msgs := validationMessages(err)
	if isHTMX(r) {
		b := UnprocessableEntityError(msgs[0])
		if len(msgs) > 1 {
			html := `<div class="notice error"><ul>`
			for _, m := range msgs {
				html += "<li>" + template.HTMLEscapeString(m) + "</li>"
			}
			b.BodyHTML(html + "</ul></div>")
		}
		return b
	}
	data := formPage{
		page:   page{Title: "Log a catch", Active: "index"},
		Form:   form,
		Errors: msgs,
	}
	return s.pageResponse(r, http.StatusUnprocessableEntity, "index.html", data)
}

func (s *Server) handleDatabase(w http.ResponseWriter, r *http.Request) {
	s.databaseResponse(r, http.StatusOK, nil).Write(w)
}

func (s *Server) handleDeleteCatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseCatchID(r)
	if err != nil {
		BadRequestError("A numeric catch id is required").Write(w)
		return
	}

	err = s.catches.DeleteCatch(ctx, id)
	switch {
	case errors.Is(err, core.ErrNotFound):
		n := &notice{Kind: noticeWarning, Message: fmt.Sprintf("Catch #%d was not found. It may already have been deleted.", id)}
		s.databaseResponse(r, http.StatusNotFound, n).Write(w)
		return
	case err != nil:
		s.storeErrorResponse(r, applog.OpDelete, err).Write(w)
		return
	}

	atomic.AddInt64(&s.metrics.catchesDeleted, 1)
	s.log.LogCatchDeleted(ctx, id)

	n := &notice{Kind: noticeSuccess, Message: fmt.Sprintf("Catch #%d deleted.", id)}
	s.databaseResponse(r, http.StatusOK, n).TriggerCatchDeleted(id).Write(w)
}

// databaseResponse renders the listing with its three charts.
func (s *Server) databaseResponse(r *http.Request, status int, n *notice) *HTMXResponseBuilder {
	records, overview, err := s.catches.Overview(r.Context())
	if err != nil {
		return s.storeErrorResponse(r, applog.OpList, err)
	}

	rows := make([]catchRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, catchRow{
			ID:          rec.ID,
			Species:     rec.Species,
			Weight:      formatWeight(rec.Weight),
			Bait:        rec.Bait,
			Location:    rec.Location,
			DateOfCatch: rec.DateOfCatch,
			TimeOfCatch: rec.TimeOfCatch,
			Catcher:     rec.Catcher,
			ImageRef:    rec.ImageRef,
		})
	}

	data := databasePage{
		page:    page{Title: "Catch database", Active: "database", Notice: n},
		Total:   overview.Total,
		Catches: rows,
		Charts: []BarChart{
			NewBarChart("Catches per person", overview.ByCatcher),
			NewBarChart("Catches per bait", overview.ByBait),
			NewBarChart("Catches per location", overview.ByLocation),
		},
	}
	return s.pageResponse(r, status, "database.html", data)
}
