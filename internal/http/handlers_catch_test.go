package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fishlog/internal/core"
	"fishlog/internal/services"
	"fishlog/internal/storage/memory"
	"fishlog/internal/storage/storagetest"
)

func TestCreateCatch_RedirectsAndStores(t *testing.T) {
	srv, store := seededServer(t)

	rec := do(srv, postForm("/catches", validForm()))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/database" {
		t.Errorf("Location = %q, want /database", loc)
	}

	records, _ := store.ListAll(context.Background())
	if len(records) != 1 {
		t.Fatalf("stored %d catches, want 1", len(records))
	}
	got := records[0]
	if got.Species != "Pike" || got.Catcher != "Dana" || got.Weight == nil || *got.Weight != 3.5 {
		t.Errorf("stored %+v", got)
	}
}

func TestCreateCatch_BlankWeightIsNotRecorded(t *testing.T) {
	srv, store := seededServer(t)
	form := validForm()
	form.Set("weight", "  ")

	if rec := do(srv, postForm("/catches", form)); rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	records, _ := store.ListAll(context.Background())
	if len(records) != 1 || records[0].Weight != nil {
		t.Fatalf("stored %+v, want one catch without weight", records)
	}
}

func TestCreateCatch_HTMXTriggersEvents(t *testing.T) {
	srv, _ := seededServer(t)
	req := postForm("/catches", validForm())
	req.Header.Set("HX-Request", "true")

	rec := do(srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var triggers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger: %v", err)
	}
	if string(triggers["catch:created"]) != `{"id":1}` {
		t.Errorf("catch:created = %s", triggers["catch:created"])
	}
	if _, ok := triggers["form:reset"]; !ok {
		t.Error("missing form:reset trigger")
	}
	if !strings.Contains(rec.Body.String(), "Catch #1 recorded") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestCreateCatch_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f map[string][]string)
		htmx   bool
		want   []string
	}{
		{
			name:   "missing catcher",
			mutate: func(f map[string][]string) { delete(f, "catcher") },
			want:   []string{"Catcher is required"},
		},
		{
			name: "several blank fields",
			mutate: func(f map[string][]string) {
				f["species"] = []string{"  "}
				f["bait"] = []string{""}
			},
			htmx: true,
			want: []string{"Species is required", "Bait is required"},
		},
		{
			name:   "negative weight",
			mutate: func(f map[string][]string) { f["weight"] = []string{"-2"} },
			want:   []string{"Weight must be a non-negative number"},
		},
		{
			name:   "non-numeric weight",
			mutate: func(f map[string][]string) { f["weight"] = []string{"heavy"} },
			htmx:   true,
			want:   []string{"Weight must be a non-negative number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, store := seededServer(t)
			form := validForm()
			tt.mutate(form)
			req := postForm("/catches", form)
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}

			rec := do(srv, req)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", rec.Code)
			}
			body := rec.Body.String()
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body missing %q", w)
				}
			}
			if records, _ := store.ListAll(context.Background()); len(records) != 0 {
				t.Errorf("rejected catch was stored: %+v", records)
			}
		})
	}
}

func TestCreateCatch_FormKeepsValuesOnError(t *testing.T) {
	srv, _ := seededServer(t)
	form := validForm()
	form.Del("location")

	rec := do(srv, postForm("/catches", form))
	if !strings.Contains(rec.Body.String(), `value="Pike"`) {
		t.Error("submitted species not shown again")
	}
}

func TestCreateCatch_StoreUnavailable(t *testing.T) {
	srv := newTestServer(t, services.NewCatchService(unavailableStore{memory.New()}, nil), 0)

	rec := do(srv, postForm("/catches", validForm()))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
}

func TestDatabase_ListsCatchesAndCharts(t *testing.T) {
	srv, _ := seededServer(t,
		storagetest.Catch("Alice", "Worm"),
		storagetest.Catch("Bob", "Fly"),
		storagetest.Catch("Alice", "Fly"),
	)

	rec := do(srv, httptest.NewRequest(http.MethodGet, "/database", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"3 catches recorded",
		"Catches per person",
		"Catches per bait",
		"Catches per location",
		"1.25 kg",
		`name="id" value="3"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestDatabase_Empty(t *testing.T) {
	srv, _ := seededServer(t)
	rec := do(srv, httptest.NewRequest(http.MethodGet, "/database", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "No catches yet") {
		t.Fatalf("status = %d, body = %q", rec.Code, rec.Body.String())
	}
}

func TestDatabase_StoreUnavailable(t *testing.T) {
	srv := newTestServer(t, services.NewCatchService(unavailableStore{memory.New()}, nil), 0)
	rec := do(srv, httptest.NewRequest(http.MethodGet, "/database", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestDeleteCatch(t *testing.T) {
	srv, store := seededServer(t, storagetest.Catch("Alice", "Worm"), storagetest.Catch("Bob", "Fly"))

	rec := do(srv, postForm("/catches/delete", map[string][]string{"id": {"1"}}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Catch #1 deleted.") {
		t.Error("missing deletion notice")
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "catch:deleted") {
		t.Errorf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
	}
	if _, err := store.Get(context.Background(), 1); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Get deleted catch: err = %v", err)
	}
}

func TestDeleteCatch_ViaDeleteMethod(t *testing.T) {
	srv, _ := seededServer(t, storagetest.Catch("Alice", "Worm"))
	rec := do(srv, httptest.NewRequest(http.MethodDelete, "/catches/delete?id=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestDeleteCatch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantBody   string
	}{
		{"unknown id", "42", http.StatusNotFound, "Catch #42 was not found"},
		{"non-numeric id", "abc", http.StatusBadRequest, "numeric catch id"},
		{"zero id", "0", http.StatusBadRequest, "numeric catch id"},
		{"missing id", "", http.StatusBadRequest, "numeric catch id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, store := seededServer(t, storagetest.Catch("Alice", "Worm"))
			rec := do(srv, postForm("/catches/delete", map[string][]string{"id": {tt.id}}))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q", tt.wantBody)
			}
			if records, _ := store.ListAll(context.Background()); len(records) != 1 {
				t.Errorf("stored catches changed: %d", len(records))
			}
		})
	}
}

func TestHTMXErrorResponses_AreSwappable(t *testing.T) {
	srv, _ := seededServer(t, storagetest.Catch("Alice", "Worm"))

	t.Run("delete of unknown id", func(t *testing.T) {
		req := postForm("/catches/delete", map[string][]string{"id": {"999"}})
		req.Header.Set("HX-Request", "true")
		rec := do(srv, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("Content-Type = %q", ct)
		}
		if !strings.Contains(rec.Body.String(), "Catch #999 was not found") {
			t.Error("404 body is missing the not-found notice")
		}
	})

	t.Run("blank species", func(t *testing.T) {
		form := validForm()
		form.Set("species", "   ")
		req := postForm("/catches", form)
		req.Header.Set("HX-Request", "true")
		rec := do(srv, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
		if want := `<div class="notice error">Species is required</div>`; rec.Body.String() != want {
			t.Errorf("body = %q, want %q", rec.Body.String(), want)
		}
	})

	t.Run("pages tell htmx to swap error bodies", func(t *testing.T) {
		page := do(srv, httptest.NewRequest(http.MethodGet, "/database", nil)).Body.String()
		if !strings.Contains(page, `<script src="/static/app.js" defer></script>`) {
			t.Fatal("page does not load app.js")
		}
		for _, code := range []string{"404", "422", "503"} {
			if !strings.Contains(page, `{"code":"`+code+`","swap":true`) {
				t.Errorf("htmx-config does not swap %s responses", code)
			}
		}

		js := do(srv, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
		if js.Code != http.StatusOK {
			t.Fatalf("app.js status = %d", js.Code)
		}
		body := js.Body.String()
		if !strings.Contains(body, "htmx:beforeSwap") || !strings.Contains(body, "shouldSwap = true") {
			t.Error("app.js does not force swapping of error responses")
		}
		if !strings.Contains(body, "[404, 422, 503]") {
			t.Error("app.js does not cover 404, 422 and 503")
		}
	})
}
