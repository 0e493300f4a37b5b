package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"fishlog/internal/core"
)

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantNil bool
		wantErr bool
	}{
		{in: "", wantNil: true},
		{in: "   ", wantNil: true},
		{in: "2.5", want: 2.5},
		{in: "2,5", want: 2.5},
		{in: "0", want: 0},
		{in: "-1", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseWeight(tt.in)
			if tt.wantErr {
				if !errors.Is(err, core.ErrValidation) {
					t.Fatalf("err = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Fatalf("got %v, want nil", *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadCatchForm_Sanitizes(t *testing.T) {
	form := readCatchForm(url.Values{
		"species": {"  Pike\x00 "},
		"catcher": {"Dana\x07"},
		"bait":    {"Spoon"},
	})
	if form.Species != "Pike" {
		t.Errorf("Species = %q", form.Species)
	}
	if form.Catcher != "Dana" {
		t.Errorf("Catcher = %q", form.Catcher)
	}
}

func TestToNewCatch_LeavesPresenceChecksToValidate(t *testing.T) {
	nc, err := catchForm{Species: "Pike"}.toNewCatch()
	if err != nil {
		t.Fatalf("toNewCatch: %v", err)
	}
	var ve *core.ValidationError
	if !errors.As(nc.Validate(), &ve) || len(ve.Fields) != 5 {
		t.Fatalf("Validate() = %v, want five missing fields", ve)
	}
}

func TestParseCatchID(t *testing.T) {
	tests := []struct {
		name    string
		req     *http.Request
		want    int64
		wantErr bool
	}{
		{"query", httptest.NewRequest(http.MethodDelete, "/catches/delete?id=7", nil), 7, false},
		{"form", postForm("/catches/delete", url.Values{"id": {" 12 "}}), 12, false},
		{"negative", httptest.NewRequest(http.MethodDelete, "/catches/delete?id=-3", nil), 0, true},
		{"garbage", httptest.NewRequest(http.MethodDelete, "/catches/delete?id=x", nil), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCatchID(tt.req)
			if tt.wantErr {
				if !errors.Is(err, errInvalidID) {
					t.Fatalf("err = %v, want errInvalidID", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("got %d, %v; want %d", got, err, tt.want)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	msgs := validationMessages(&core.ValidationError{Fields: []string{"dateOfCatch", "catcher"}})
	if got := strings.Join(msgs, "|"); got != "Date of catch is required|Catcher is required" {
		t.Fatalf("messages = %q", got)
	}
	if got := validationMessages(errInvalidWeight); got[0] != "Weight must be a non-negative number" {
		t.Fatalf("weight message = %q", got)
	}
}
