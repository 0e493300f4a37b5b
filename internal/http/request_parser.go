package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fishlog/internal/core"
)

var (
	errInvalidWeight = fmt.Errorf("%w: weight must be a non-negative number", core.ErrValidation)
	errInvalidID     = errors.New("invalid catch id")
)

// catchForm keeps the submitted values so a rejected form can be shown again.
type catchForm struct {
	Species     string
	Weight      string
	Bait        string
	Location    string
	DateOfCatch string
	TimeOfCatch string
	Catcher     string
	ImageRef    string
}

func readCatchForm(form url.Values) catchForm {
	return catchForm{
		Species:     sanitizeInput(form.Get("species")),
		Weight:      sanitizeInput(form.Get("weight")),
		Bait:        sanitizeInput(form.Get("bait")),
		Location:    sanitizeInput(form.Get("location")),
		DateOfCatch: sanitizeInput(form.Get("date_of_catch")),
		TimeOfCatch: sanitizeInput(form.Get("time_of_catch")),
		Catcher:     sanitizeInput(form.Get("catcher")),
		ImageRef:    sanitizeInput(form.Get("image_ref")),
	}
}

// toNewCatch converts the form. A blank weight means not recorded; presence of
// the other fields is checked by core.NewCatch.Validate.
func (f catchForm) toNewCatch() (core.NewCatch, error) {
	weight, err := parseWeight(f.Weight)
	if err != nil {
		return core.NewCatch{}, err
	}
	return core.NewCatch{
		Species:     f.Species,
		Weight:      weight,
		Bait:        f.Bait,
		Location:    f.Location,
		DateOfCatch: f.DateOfCatch,
		TimeOfCatch: f.TimeOfCatch,
		Catcher:     f.Catcher,
		ImageRef:    f.ImageRef,
	}, nil
}

// parseWeight accepts a decimal point or a decimal comma.
func parseWeight(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	w, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return nil, errInvalidWeight
	}
	return &w, nil
}

// parseCatchID reads the id from the form body (POST) or the query string.
func parseCatchID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.FormValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidID, raw)
	}
	return id, nil
}
