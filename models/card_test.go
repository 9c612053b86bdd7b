package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestResumeLinks_UnmarshalLegacyString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ResumeLinks
	}{
		{"pdf url", `"https://x.io/cv.pdf"`, ResumeLinks{PDF: "https://x.io/cv.pdf"}},
		{"docx url", `"https://x.io/cv.docx"`, ResumeLinks{DOCX: "https://x.io/cv.docx"}},
		{"doc with query", `"https://x.io/cv.DOC?dl=1"`, ResumeLinks{DOCX: "https://x.io/cv.DOC?dl=1"}},
		{"no extension", `"https://x.io/cv"`, ResumeLinks{PDF: "https://x.io/cv"}},
		{"empty", `""`, ResumeLinks{}},
		{"null", `null`, ResumeLinks{}},
		{"modern", `{"pdf":"a.pdf","docx":"b.docx"}`, ResumeLinks{PDF: "a.pdf", DOCX: "b.docx"}},
		{"modern partial", `{"docx":"b.docx"}`, ResumeLinks{DOCX: "b.docx"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ResumeLinks
			if err := json.Unmarshal([]byte(tt.raw), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResumeLinks_UnmarshalRejectsNumbers(t *testing.T) {
	var got ResumeLinks
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Fatal("expected error for numeric resume")
	}
}

func TestResumeLinks_MarshalAlwaysWritesObject(t *testing.T) {
	var links PortfolioLinks
	if err := json.Unmarshal([]byte(`{"resume":"https://x.io/cv.pdf"}`), &links); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	out, err := json.Marshal(links)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `"resume":{"pdf":"https://x.io/cv.pdf","docx":""}`) {
		t.Errorf("resume not written as object: %s", out)
	}
}

func TestPortfolioVisibility_MissingKeysDefaultTrue(t *testing.T) {
	var v PortfolioVisibility
	if err := json.Unmarshal([]byte(`{"edu":false}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := DefaultVisibility()
	want.Edu = false
	if v != want {
		t.Errorf("got %+v, want %+v", v, want)
	}
}

func TestCard_MissingVisibilityDefaultsTrue(t *testing.T) {
	var c Card
	if err := json.Unmarshal([]byte(`{"firstName":"Ada"}`), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.PortfolioVisibility != DefaultVisibility() {
		t.Errorf("absent visibility should default to all true, got %+v", c.PortfolioVisibility)
	}
}

func TestCard_HasEmbeddedPhoto(t *testing.T) {
	if !(Card{Photo: "data:image/jpeg;base64,AAAA"}).HasEmbeddedPhoto() {
		t.Error("data URI should be embedded")
	}
	if (Card{Photo: "https://cdn.example.com/me.jpg"}).HasEmbeddedPhoto() {
		t.Error("remote URL should not be embedded")
	}
	if (Card{}).HasEmbeddedPhoto() {
		t.Error("empty photo should not be embedded")
	}
}

func TestContact_SameIdentity(t *testing.T) {
	c := Contact{Card: Card{FirstName: "John", LastName: "Smith", Email: "j@s.io"}}
	if !c.SameIdentity(Card{FirstName: "John", LastName: "Smith", Email: "j@s.io", JobTitle: "other"}) {
		t.Error("same triple should match regardless of other fields")
	}
	if c.SameIdentity(Card{FirstName: "John", LastName: "Smith", Email: "other@s.io"}) {
		t.Error("different email should not match")
	}
}

func TestContact_JSONKeepsSavedAtAndCard(t *testing.T) {
	raw := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@x.io","portfolioLinks":{"resume":"cv.pdf"},"savedAt":"2024-03-01T10:00:00Z"}`
	var c Contact
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.FirstName != "Ada" || c.Email != "ada@x.io" {
		t.Errorf("card fields lost: %+v", c.Card)
	}
	if c.SavedAt.IsZero() {
		t.Error("savedAt lost")
	}
	if c.PortfolioLinks.Resume.PDF != "cv.pdf" {
		t.Errorf("legacy resume not normalized: %+v", c.PortfolioLinks.Resume)
	}
	if c.PortfolioVisibility != DefaultVisibility() {
		t.Errorf("visibility = %+v, want defaults", c.PortfolioVisibility)
	}

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `"savedAt":"2024-03-01T10:00:00Z"`) || !strings.Contains(string(out), `"firstName":"Ada"`) {
		t.Errorf("contact not flattened: %s", out)
	}
}
