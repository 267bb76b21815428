package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/progressclasses/classes-backend/internal/model"
	"github.com/progressclasses/classes-backend/internal/repository"
	"github.com/progressclasses/classes-backend/internal/storetest"
	"github.com/rs/zerolog"
)

func newEnquiryService() (*EnquiryService, *storetest.DB) {
	db := storetest.New()
	return NewEnquiryService(db.Enquiries(), zerolog.New(io.Discard)), db
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestEnquiryCreateUsesDefaults(t *testing.T) {
	svc, _ := newEnquiryService()
	e, err := svc.Create(context.Background(), model.CreateEnquiryRequest{Name: "Alice", Question: "When do classes start?"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.IsAnswered || e.Answer != nil || e.IsVisible != nil || e.AnsweredAt != nil {
		t.Fatalf("new enquiry should be unanswered with defaults, got %+v", e)
	}
}

func TestEnquiryUpdateModes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEnquiryService()
	e, _ := svc.Create(ctx, model.CreateEnquiryRequest{Name: "Alice", Question: "When?"})

	answered, err := svc.Update(ctx, e.ID, model.UpdateEnquiryRequest{
		Answer: strPtr("Next Monday"), IsVisible: boolPtr(true), HasAnswer: true,
	})
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !answered.IsAnswered || answered.AnsweredAt == nil || *answered.Answer != "Next Monday" || !*answered.IsVisible {
		t.Fatalf("unexpected answered enquiry %+v", answered)
	}

	reverted, err := svc.Update(ctx, e.ID, model.UpdateEnquiryRequest{IsVisible: boolPtr(false)})
	if err != nil {
		t.Fatalf("unanswer: %v", err)
	}
	if reverted.IsAnswered || reverted.AnsweredAt != nil || reverted.Answer != nil || *reverted.IsVisible {
		t.Fatalf("unexpected reverted enquiry %+v", reverted)
	}
}

func TestEnquiryUpdateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEnquiryService()
	e, _ := svc.Create(ctx, model.CreateEnquiryRequest{Name: "Bob", Question: "Fees?"})

	if _, err := svc.Update(ctx, e.ID, model.UpdateEnquiryRequest{HasAnswer: true, IsVisible: boolPtr(true)}); !errors.Is(err, ErrAnswerRequired) {
		t.Errorf("null answer: got %v", err)
	}
	if _, err := svc.Update(ctx, e.ID, model.UpdateEnquiryRequest{HasAnswer: true, Answer: strPtr("  "), IsVisible: boolPtr(true)}); !errors.Is(err, ErrAnswerRequired) {
		t.Errorf("blank answer: got %v", err)
	}
	if _, err := svc.Update(ctx, e.ID, model.UpdateEnquiryRequest{HasAnswer: true, Answer: strPtr("x")}); !errors.Is(err, ErrVisibilityRequired) {
		t.Errorf("missing visibility: got %v", err)
	}
	if _, err := svc.Update(ctx, 999, model.UpdateEnquiryRequest{IsVisible: boolPtr(true)}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown id: got %v", err)
	}
}

func TestPublicEnquiryListingOnlyAnsweredAndVisible(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEnquiryService()

	mk := func(name string) int {
		e, _ := svc.Create(ctx, model.CreateEnquiryRequest{Name: name, Question: "?"})
		return e.ID
	}
	shown := mk("shown")
	hidden := mk("answered-hidden")
	_ = mk("unanswered")
	revisited := mk("unanswered-visible")
	shownLater := mk("shown-later")

	_, _ = svc.Update(ctx, shown, model.UpdateEnquiryRequest{HasAnswer: true, Answer: strPtr("a"), IsVisible: boolPtr(true)})
	_, _ = svc.Update(ctx, hidden, model.UpdateEnquiryRequest{HasAnswer: true, Answer: strPtr("a"), IsVisible: boolPtr(false)})
	_, _ = svc.Update(ctx, revisited, model.UpdateEnquiryRequest{IsVisible: boolPtr(true)})
	_, _ = svc.Update(ctx, shownLater, model.UpdateEnquiryRequest{HasAnswer: true, Answer: strPtr("b"), IsVisible: boolPtr(true)})

	public, err := svc.ListPublic(ctx)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(public) != 2 || public[0].ID != shown || public[1].ID != shownLater {
		t.Fatalf("public listing = %+v", public)
	}
	for _, e := range public {
		if !e.IsAnswered || e.IsVisible == nil || !*e.IsVisible {
			t.Fatalf("public listing leaked %+v", e)
		}
	}

	all, err := svc.ListAdmin(ctx)
	if err != nil {
		t.Fatalf("ListAdmin: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("admin listing should include all rows, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.Before(all[i-1].CreatedAt) {
			t.Fatal("admin listing must be ordered by created_at ascending")
		}
	}
}
