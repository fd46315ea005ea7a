package services

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func newTestRfpService(store *stubStore, mailer RfpMailer) *RfpService {
	if mailer == nil {
		mailer = &fakeMailer{}
	}
	svc := NewRfpService(store, mailer, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	counter := 0
	svc.newID = func() string {
		counter++
		return fmt.Sprintf("rfp-%d", counter)
	}
	return svc
}

func TestCreateRfp(t *testing.T) {
	store := newStubStore()
	svc := newTestRfpService(store, nil)

	rfp, err := svc.Create(RfpDraft{
		Title: "Standing Desks",
		Items: []RfpItem{{Name: "Desk", Qty: 20}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rfp.Status != StatusDraft {
		t.Fatalf("new RFP status = %q, want draft", rfp.Status)
	}
	if rfp.Currency != "USD" {
		t.Fatalf("currency should default to USD, got %q", rfp.Currency)
	}
	if rfp.SentVendorIDs == nil || len(rfp.SentVendorIDs) != 0 {
		t.Fatalf("sentVendorIds should start empty, got %v", rfp.SentVendorIDs)
	}
	if store.GetRfp(rfp.ID) == nil {
		t.Fatalf("RFP not persisted")
	}
}

func TestCreateRfpValidation(t *testing.T) {
	svc := newTestRfpService(newStubStore(), nil)

	cases := []RfpDraft{
		{},
		{Title: "x", Items: []RfpItem{{Name: "", Qty: 1}}},
		{Title: "x", Items: []RfpItem{{Name: "Desk", Qty: 0}}},
		{Title: "x", Items: []RfpItem{{Name: "Desk", Qty: -3}}},
	}
	for i, draft := range cases {
		_, err := svc.Create(draft)
		se, ok := AsServiceError(err)
		if !ok || se.Code != ErrorInvalid {
			t.Fatalf("case %d: expected invalid, got %v", i, err)
		}
	}
}

func TestUpdateRfpPartialPatch(t *testing.T) {
	store := newStubStore()
	svc := newTestRfpService(store, nil)
	rfp, _ := svc.Create(RfpDraft{Title: "Desks", Items: []RfpItem{{Name: "Desk", Qty: 20}}})

	updated, err := svc.Update(rfp.ID, map[string]any{"notes": "rush order"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Notes != "rush order" {
		t.Fatalf("patched field missing: %q", updated.Notes)
	}
	if updated.Title != "Desks" {
		t.Fatalf("unpatched field changed: %q", updated.Title)
	}
	if updated.ID != rfp.ID || !updated.CreatedAt.Equal(rfp.CreatedAt) {
		t.Fatalf("id and createdAt are immutable")
	}
}

func TestUpdateRfpStatusRules(t *testing.T) {
	store := newStubStore()
	svc := newTestRfpService(store, nil)
	rfp, _ := svc.Create(RfpDraft{Title: "Desks", Items: []RfpItem{{Name: "Desk", Qty: 20}}})

	if _, err := svc.Update(rfp.ID, map[string]any{"status": "sent"}); err != nil {
		t.Fatalf("forward transition rejected: %v", err)
	}
	if _, err := svc.Update(rfp.ID, map[string]any{"status": "draft"}); err == nil {
		t.Fatalf("backward transition must be rejected")
	}
	if _, err := svc.Update(rfp.ID, map[string]any{"status": "archived"}); err == nil {
		t.Fatalf("unknown status must be rejected")
	}
	// patch without status leaves status alone
	out, err := svc.Update(rfp.ID, map[string]any{"notes": "n"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.Status != StatusSent {
		t.Fatalf("status changed by unrelated patch: %q", out.Status)
	}
}

func TestUpdateRfpSentVendorIdsOnlyGrow(t *testing.T) {
	store := newStubStore()
	svc := newTestRfpService(store, nil)
	rfp, _ := svc.Create(RfpDraft{Title: "Desks", Items: []RfpItem{{Name: "Desk", Qty: 20}}})
	rfp.SentVendorIDs = []string{"vendor-1", "vendor-2"}
	store.UpdateRfp(rfp)

	out, err := svc.Update(rfp.ID, map[string]any{"sentVendorIds": []string{"vendor-2", "vendor-3"}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := []string{"vendor-1", "vendor-2", "vendor-3"}
	if len(out.SentVendorIDs) != len(want) {
		t.Fatalf("sentVendorIds = %v, want %v", out.SentVendorIDs, want)
	}
	for i, id := range want {
		if out.SentVendorIDs[i] != id {
			t.Fatalf("sentVendorIds = %v, want %v", out.SentVendorIDs, want)
		}
	}
}

func TestSendRfp(t *testing.T) {
	store := newStubStore()
	store.InsertVendor(&Vendor{ID: "vendor-1", Name: "A", Email: "a@a.com", Rating: 4})
	store.InsertVendor(&Vendor{ID: "vendor-2", Name: "B", Email: "b@b.com", Rating: 4})
	mailer := &fakeMailer{}
	svc := newTestRfpService(store, mailer)
	rfp, _ := svc.Create(RfpDraft{Title: "Desks", Items: []RfpItem{{Name: "Desk", Qty: 20}}})

	sent, total, err := svc.Send(context.Background(), rfp.ID, []string{"vendor-1", "vendor-2", "vendor-missing"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sent != 2 || total != 2 {
		t.Fatalf("sent=%d total=%d, want 2/2", sent, total)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %v", mailer.sent)
	}

	got := store.GetRfp(rfp.ID)
	if got.Status != StatusSent {
		t.Fatalf("status = %q, want sent", got.Status)
	}
	// unresolvable ids are still recorded as addressed
	if len(got.SentVendorIDs) != 3 {
		t.Fatalf("sentVendorIds = %v, want all three requested ids", got.SentVendorIDs)
	}
	if store.GetVendor("vendor-1").LastContactedAt == nil {
		t.Fatalf("lastContactedAt not recorded")
	}
}

func TestSendRfpPartialFailure(t *testing.T) {
	store := newStubStore()
	store.InsertVendor(&Vendor{ID: "vendor-1", Name: "A", Email: "a@a.com", Rating: 4})
	store.InsertVendor(&Vendor{ID: "vendor-2", Name: "B", Email: "b@b.com", Rating: 4})
	mailer := &fakeMailer{failFor: map[string]bool{"b@b.com": true}}
	svc := newTestRfpService(store, mailer)
	rfp, _ := svc.Create(RfpDraft{Title: "Desks", Items: []RfpItem{{Name: "Desk", Qty: 20}}})

	sent, total, err := svc.Send(context.Background(), rfp.ID, []string{"vendor-1", "vendor-2"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sent != 1 || total != 2 {
		t.Fatalf("sent=%d total=%d, want 1/2", sent, total)
	}
	if store.GetVendor("vendor-2").LastContactedAt != nil {
		t.Fatalf("failed delivery must not record contact time")
	}
	if got := store.GetRfp(rfp.ID); got.Status != StatusSent {
		t.Fatalf("partial failure should still advance status, got %q", got.Status)
	}
}

func TestSendRfpErrors(t *testing.T) {
	store := newStubStore()
	svc := newTestRfpService(store, nil)
	rfp, _ := svc.Create(RfpDraft{Title: "Desks", Items: []RfpItem{{Name: "Desk", Qty: 20}}})

	_, _, err := svc.Send(context.Background(), "missing", []string{"vendor-1"})
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
	_, _, err = svc.Send(context.Background(), rfp.ID, nil)
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid for empty vendor list, got %v", err)
	}
	_, _, err = svc.Send(context.Background(), rfp.ID, []string{"ghost"})
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid for unresolvable vendors, got %v", err)
	}
	if got := store.GetRfp(rfp.ID); got.Status != StatusDraft {
		t.Fatalf("failed sends must not advance status, got %q", got.Status)
	}
}

func TestRecentRfps(t *testing.T) {
	store := newStubStore()
	svc := newTestRfpService(store, nil)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		store.InsertRfp(&Rfp{
			ID:        fmt.Sprintf("r%d", i),
			Title:     fmt.Sprintf("RFP %d", i),
			Status:    StatusDraft,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	recent := svc.Recent(6)
	if len(recent) != 6 {
		t.Fatalf("Recent(6) returned %d", len(recent))
	}
	if recent[0].ID != "r7" {
		t.Fatalf("expected newest first, got %q", recent[0].ID)
	}
}

func TestStats(t *testing.T) {
	store := newStubStore()
	svc := newTestRfpService(store, nil)
	store.InsertRfp(&Rfp{ID: "r1", Status: StatusDraft})
	store.InsertRfp(&Rfp{ID: "r2", Status: StatusSent})
	store.InsertRfp(&Rfp{ID: "r3", Status: StatusReceived})
	store.InsertRfp(&Rfp{ID: "r4", Status: StatusCompared})
	store.InsertVendor(&Vendor{ID: "v1"})
	store.InsertProposal(&Proposal{ID: "p1", RfpID: "r3"})

	stats := svc.Stats()
	if stats.TotalRfps != 4 || stats.ActiveRfps != 2 || stats.TotalVendors != 1 || stats.ProposalsReceived != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestDeleteRfp(t *testing.T) {
	store := newStubStore()
	svc := newTestRfpService(store, nil)
	rfp, _ := svc.Create(RfpDraft{Title: "Desks", Items: []RfpItem{{Name: "Desk", Qty: 20}}})

	if err := svc.Delete(rfp.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(rfp.ID); err == nil {
		t.Fatalf("second delete should be not_found")
	}
}
