package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lacosdev-code/peminjaman/internal/model"
)

// fakeBackend serves canned responses keyed by method + path.
type fakeBackend struct {
	t        *testing.T
	handlers map[string]http.HandlerFunc
}

func newFakeBackend(t *testing.T) (*fakeBackend, *Client) {
	t.Helper()
	fake := &fakeBackend{t: t, handlers: make(map[string]http.HandlerFunc)}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return fake, New(server.URL, "test-key")
}

func (f *fakeBackend) handle(method, path string, fn http.HandlerFunc) {
	f.handlers[method+" "+path] = fn
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("apikey") != "test-key" {
		f.t.Errorf("missing apikey header on %s %s", r.Method, r.URL.Path)
	}
	fn, ok := f.handlers[r.Method+" "+r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	fn(w, r)
}

func respondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func TestAuthenticateTechnicianViaProcedure(t *testing.T) {
	fake, client := newFakeBackend(t)
	fake.handle("POST", "/rest/v1/rpc/authenticate_technician", func(w http.ResponseWriter, r *http.Request) {
		var params map[string]string
		json.NewDecoder(r.Body).Decode(&params)
		if params["p_whatsapp"] != "0812000111" {
			t.Errorf("unexpected procedure params: %v", params)
		}
		respondJSON(w, authResult{
			Success:    true,
			Technician: &model.Technician{ID: "tech-1", Name: "Budi Santoso", Whatsapp: "0812000111"},
		})
	})

	tech, err := client.AuthenticateTechnician(context.Background(), "0812000111")
	if err != nil {
		t.Fatalf("AuthenticateTechnician: %v", err)
	}
	if tech.ID != "tech-1" || tech.Name != "Budi Santoso" {
		t.Errorf("unexpected technician: %+v", tech)
	}
}

func TestAuthenticateTechnicianNameFallback(t *testing.T) {
	fake, client := newFakeBackend(t)
	fake.handle("POST", "/rest/v1/rpc/authenticate_technician", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, authResult{Success: false, Message: "not registered"})
	})
	fake.handle("GET", "/rest/v1/technicians", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "ilike.Budi Santoso" {
			t.Errorf("expected case-insensitive exact name filter, got %q", got)
		}
		respondJSON(w, []technicianRow{{ID: "tech-1", Name: "Budi Santoso", WhatsappNumber: "0812000111"}})
	})

	tech, err := client.AuthenticateTechnician(context.Background(), "  Budi Santoso  ")
	if err != nil {
		t.Fatalf("AuthenticateTechnician: %v", err)
	}
	if tech.Whatsapp != "0812000111" {
		t.Errorf("expected whatsapp_number mapped, got %+v", tech)
	}
}

func TestAuthenticateTechnicianNotFound(t *testing.T) {
	fake, client := newFakeBackend(t)
	fake.handle("POST", "/rest/v1/rpc/authenticate_technician", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, authResult{Success: false})
	})
	fake.handle("GET", "/rest/v1/technicians", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, []technicianRow{})
	})

	_, err := client.AuthenticateTechnician(context.Background(), "nobody")
	if !errors.Is(err, ErrTechnicianNotFound) {
		t.Errorf("expected ErrTechnicianNotFound, got %v", err)
	}
}

func TestGetAssetMissing(t *testing.T) {
	fake, client := newFakeBackend(t)
	fake.handle("GET", "/rest/v1/inventaris_utama", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "eq.42" {
			t.Errorf("expected id filter eq.42, got %q", got)
		}
		respondJSON(w, []model.Asset{})
	})

	asset, err := client.GetAsset(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if asset != nil {
		t.Errorf("expected nil for missing asset, got %+v", asset)
	}
}

func TestListActiveLoansQueryAndJoin(t *testing.T) {
	fake, client := newFakeBackend(t)
	fake.handle("GET", "/rest/v1/peminjaman", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("status") != "eq.Dipinjam" {
			t.Errorf("expected status filter, got %q", q.Get("status"))
		}
		if q.Get("peminjam") != "ilike.*Budi*" {
			t.Errorf("expected borrower substring filter, got %q", q.Get("peminjam"))
		}
		if q.Get("select") != "*,inventaris_utama(*)" {
			t.Errorf("expected joined select, got %q", q.Get("select"))
		}
		respondJSON(w, []model.Loan{{
			ID:       1,
			Borrower: "Budi Santoso",
			Status:   model.LoanStatusBorrowed,
			Asset:    &model.Asset{ID: 7, Name: "Bor Listrik"},
		}})
	})

	loans, err := client.ListActiveLoans(context.Background(), "Budi")
	if err != nil {
		t.Fatalf("ListActiveLoans: %v", err)
	}
	if len(loans) != 1 || loans[0].Asset == nil || loans[0].Asset.Name != "Bor Listrik" {
		t.Errorf("expected joined asset decoded, got %+v", loans)
	}
}

func TestListAssignedAssetsFallsBackToName(t *testing.T) {
	fake, client := newFakeBackend(t)
	calls := 0
	fake.handle("GET", "/rest/v1/inventaris_orang", func(w http.ResponseWriter, r *http.Request) {
		calls++
		q := r.URL.Query()
		if calls == 1 {
			if q.Get("technician_id") != "eq.tech-1" {
				t.Errorf("expected id lookup first, got %v", q)
			}
			respondJSON(w, []model.AssignedAsset{})
			return
		}
		if q.Get("orang") != "ilike.*Budi*" {
			t.Errorf("expected owner-name fallback, got %v", q)
		}
		respondJSON(w, []model.AssignedAsset{
			{ID: 2, Name: "Tangga Lipat", Owner: "Budi"},
			{ID: 1, Name: "Obeng Set", Owner: "Budi"},
		})
	})

	assets, err := client.ListAssignedAssets(context.Background(), "tech-1", "Budi")
	if err != nil {
		t.Fatalf("ListAssignedAssets: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected fallback call, got %d calls", calls)
	}
	if len(assets) != 2 || assets[0].Name != "Obeng Set" {
		t.Errorf("expected name-sorted results, got %+v", assets)
	}
}

func TestUpdateAssetCondition(t *testing.T) {
	fake, client := newFakeBackend(t)
	fake.handle("PATCH", "/rest/v1/inventaris_orang", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "eq.5" {
			t.Errorf("expected id filter, got %q", got)
		}
		var fields map[string]string
		json.NewDecoder(r.Body).Decode(&fields)
		if fields["kondisi"] != model.ConditionRusakRingan {
			t.Errorf("expected kondisi field, got %v", fields)
		}
		if fields["updated_at"] == "" {
			t.Error("expected updated_at to be set")
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.UpdateAssetCondition(context.Background(), 5, model.ConditionRusakRingan); err != nil {
		t.Fatalf("UpdateAssetCondition: %v", err)
	}
}

func TestLogHandoverSurfacesBackendMessage(t *testing.T) {
	fake, client := newFakeBackend(t)
	fake.handle("POST", "/rest/v1/rpc/log_tool_handover", func(w http.ResponseWriter, r *http.Request) {
		var params map[string]any
		json.NewDecoder(r.Body).Decode(&params)
		if params["p_tipe"] != model.TypePinjam {
			t.Errorf("unexpected params: %v", params)
		}
		respondJSON(w, HandoverResult{Success: false, Message: "Stok tidak mencukupi"})
	})

	err := client.LogHandover(context.Background(), HandoverRequest{
		ItemID:     7,
		Technician: "Budi",
		Type:       model.TypePinjam,
		Condition:  model.ConditionBaik,
	})
	if err == nil || err.Error() != "Stok tidak mencukupi" {
		t.Errorf("expected backend message verbatim, got %v", err)
	}
}

func TestBackendErrorDecoding(t *testing.T) {
	fake, client := newFakeBackend(t)
	fake.handle("GET", "/rest/v1/inventaris_utama", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		respondJSON(w, map[string]string{"message": "permission denied"})
	})

	_, err := client.ListAssets(context.Background())
	var backendErr *Error
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if backendErr.Status != http.StatusForbidden || backendErr.Message != "permission denied" {
		t.Errorf("unexpected error contents: %+v", backendErr)
	}
}

func TestWatcherWakesWaiters(t *testing.T) {
	w := NewWatcher(nil, time.Minute)
	w.advance(3)

	done := make(chan int64, 1)
	go func() { done <- w.Wait(context.Background(), 3) }()

	// Give the waiter a moment to block, then advance.
	time.Sleep(10 * time.Millisecond)
	w.advance(4)

	select {
	case latest := <-done:
		if latest != 4 {
			t.Errorf("expected latest 4, got %d", latest)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter never woke")
	}

	// Stale ids never move the watcher backwards.
	w.advance(2)
	if w.Latest() != 4 {
		t.Errorf("expected latest to stay 4, got %d", w.Latest())
	}
}

func TestWatcherWaitReturnsOnContextEnd(t *testing.T) {
	w := NewWatcher(nil, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if latest := w.Wait(ctx, 0); latest != 0 {
		t.Errorf("expected 0 on context end, got %d", latest)
	}
}
