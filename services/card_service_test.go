package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"kartvizit.link/models"
	"kartvizit.link/pkg/cardcodec"
	"kartvizit.link/pkg/validation"
	"kartvizit.link/repositories"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestCardService(repo repositories.IRecordRepository) *CardService {
	return &CardService{repo: repo, now: func() time.Time { return fixedNow }}
}

func johnForm() validation.CardForm {
	return validation.CardForm{
		FirstName:       "john",
		LastName:        "o'brien-smith",
		JobTitle:        "  Engineer ",
		Email:           " john@example.com ",
		CountryCode:     "1",
		LocalNumber:     "5551234567",
		CardColor:       "nope",
		CardColorPicker: "#112233",
		BgColor:         "#ABCDEF",
		LinkedIn:        "linkedin.com/in/john",
		ResumePDF:       "example.com/cv.pdf",
		ShowCert:        validation.Checked(true),
		ShowEdu:         validation.Checked(false),
		ShowProj:        validation.Checked(false),
		ShowRef:         validation.Checked(false),
		ShowResume:      validation.Checked(true),
		ShowWork:        validation.Checked(false),
	}
}

func TestCardService_SaveFormatsAndStores(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryRecordRepository(0)
	svc := newTestCardService(repo)

	card, errs, err := svc.SaveMyCard(ctx, "o1", johnForm())
	if err != nil || errs.HasErrors() {
		t.Fatalf("SaveMyCard: %v %v", err, errs)
	}
	if card.FullName() != "John O'Brien-Smith" {
		t.Errorf("FullName = %q", card.FullName())
	}

	loaded, stored, err := svc.LoadMyCard(ctx, "o1")
	if err != nil || !stored {
		t.Fatalf("LoadMyCard: stored=%v err=%v", stored, err)
	}
	want := models.Card{
		FirstName:   "John",
		LastName:    "O'Brien-Smith",
		JobTitle:    "Engineer",
		Email:       "john@example.com",
		CountryCode: "1",
		LocalNumber: "5551234567",
		Phone:       "+1 (555) 123-4567",
		PhoneE164:   "+15551234567",
		CardColor:   "#112233",
		BgColor:     "#abcdef",
		LinkedIn:    "https://linkedin.com/in/john",
		PortfolioLinks: models.PortfolioLinks{
			Resume: models.ResumeLinks{PDF: "https://example.com/cv.pdf"},
		},
		PortfolioVisibility: models.PortfolioVisibility{Cert: true, Resume: true},
		LastUpdated:         fixedNow,
	}
	if !reflect.DeepEqual(loaded, want) {
		t.Errorf("stored card\n got: %+v\nwant: %+v", loaded, want)
	}

	token, err := cardcodec.Encode(loaded, cardcodec.ChannelLink)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := cardcodec.Decode(token)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.FirstName != "John" || decoded.LastName != "O'Brien-Smith" {
		t.Errorf("decoded names = %q %q", decoded.FirstName, decoded.LastName)
	}
}

func TestCardService_InvalidFormWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryRecordRepository(0)
	svc := newTestCardService(repo)

	form := johnForm()
	form.LocalNumber = "555123456"
	_, errs, err := svc.SaveMyCard(ctx, "o1", form)
	if !errors.Is(err, ErrCardInvalid) || len(errs["phone"]) == 0 {
		t.Fatalf("expected phone validation error, got %v %v", err, errs)
	}
	if _, err := repo.Get(ctx, repositories.MyCardKey("o1")); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("invalid save must not write, Get = %v", err)
	}
}

func TestCardService_StorageFull(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryRecordRepository(64)
	svc := newTestCardService(repo)

	_, _, err := svc.SaveMyCard(ctx, "o1", johnForm())
	if !errors.Is(err, ErrStorageFull) {
		t.Fatalf("expected ErrStorageFull, got %v", err)
	}
	card, stored, err := svc.LoadMyCard(ctx, "o1")
	if err != nil || stored || !reflect.DeepEqual(card, models.DefaultCard()) {
		t.Errorf("failed save left state behind: stored=%v err=%v", stored, err)
	}
}

func TestCardService_ResetReturnsDefaultVerbatim(t *testing.T) {
	ctx := context.Background()
	svc := newTestCardService(repositories.NewMemoryRecordRepository(0))

	if _, _, err := svc.SaveMyCard(ctx, "o1", johnForm()); err != nil {
		t.Fatal(err)
	}
	if err := svc.ResetMyCard(ctx, "o1"); err != nil {
		t.Fatal(err)
	}
	card, stored, err := svc.LoadMyCard(ctx, "o1")
	if err != nil || stored {
		t.Fatalf("after reset: stored=%v err=%v", stored, err)
	}
	if !reflect.DeepEqual(card, models.DefaultCard()) {
		t.Errorf("after reset got %+v, want default template", card)
	}
}

func TestCardService_CorruptRecordFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryRecordRepository(0)
	_ = repo.Set(ctx, repositories.MyCardKey("o1"), []byte("{broken"))
	svc := newTestCardService(repo)

	card, stored, err := svc.LoadMyCard(ctx, "o1")
	if err != nil || stored || card.FirstName != models.DefaultCard().FirstName {
		t.Errorf("corrupt record: card=%+v stored=%v err=%v", card, stored, err)
	}
}

func TestCardService_LegacyStoredResume(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryRecordRepository(0)
	legacy, _ := json.Marshal(map[string]any{
		"firstName":      "Ann",
		"portfolioLinks": map[string]any{"resume": "https://example.com/ann.pdf"},
	})
	_ = repo.Set(ctx, repositories.MyCardKey("o1"), legacy)

	card, stored, err := newTestCardService(repo).LoadMyCard(ctx, "o1")
	if err != nil || !stored {
		t.Fatal(err)
	}
	if card.PortfolioLinks.Resume != (models.ResumeLinks{PDF: "https://example.com/ann.pdf"}) {
		t.Errorf("resume = %+v", card.PortfolioLinks.Resume)
	}
	if card.PortfolioVisibility != models.DefaultVisibility() {
		t.Errorf("visibility = %+v", card.PortfolioVisibility)
	}
}

func TestCardService_ResolveView(t *testing.T) {
	ctx := context.Background()
	svc := newTestCardService(repositories.NewMemoryRecordRepository(0))

	state := svc.ResolveView(ctx, "o1", "")
	if state.Viewing || !state.IsDefault || state.ReadOnly() {
		t.Errorf("no token, nothing stored: %+v", state)
	}

	shared := models.DefaultCard()
	shared.FirstName = "Zed"
	token, _ := cardcodec.Encode(shared, cardcodec.ChannelLink)
	state = svc.ResolveView(ctx, "o1", token)
	if !state.Viewing || !state.ReadOnly() || state.Card.FirstName != "Zed" || state.SharedToken != token {
		t.Errorf("shared token: %+v", state)
	}

	if _, _, err := svc.SaveMyCard(ctx, "o1", johnForm()); err != nil {
		t.Fatal(err)
	}
	state = svc.ResolveView(ctx, "o1", "%%%garbage")
	if state.Viewing || state.IsDefault || state.Card.FirstName != "John" {
		t.Errorf("bad token should fall back to own card: %+v", state)
	}
}

func TestCardService_ResolveViewIgnoresNonCardTokens(t *testing.T) {
	ctx := context.Background()
	svc := newTestCardService(repositories.NewMemoryRecordRepository(0))
	if _, _, err := svc.SaveMyCard(ctx, "o1", johnForm()); err != nil {
		t.Fatal(err)
	}

	for _, payload := range []string{"null", "[]", "{}", `{"unrelated":1}`} {
		token := base64.RawURLEncoding.EncodeToString([]byte(payload))
		state := svc.ResolveView(ctx, "o1", token)
		if state.Viewing || state.ReadOnly() || state.Card.FullName() != "John O'Brien-Smith" {
			t.Errorf("payload %s: viewing=%v card=%q", payload, state.Viewing, state.Card.FullName())
		}
	}
}
