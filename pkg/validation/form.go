package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"kartvizit.link/models"

	"github.com/go-playground/validator/v10"
)

// CardForm ayarlar formundan gelen ham değerlerdir.
type CardForm struct {
	FirstName   string `form:"firstName" json:"firstName" validate:"required"`
	LastName    string `form:"lastName" json:"lastName" validate:"required"`
	JobTitle    string `form:"jobTitle" json:"jobTitle" validate:"max=100"`
	Email       string `form:"email" json:"email" validate:"required"`
	CountryCode string `form:"countryCode" json:"countryCode"`
	LocalNumber string `form:"localNumber" json:"localNumber"`

	CardColor       string `form:"cardColor" json:"cardColor"`
	CardColorPicker string `form:"cardColorPicker" json:"cardColorPicker"`
	BgColor         string `form:"bgColor" json:"bgColor"`
	BgColorPicker   string `form:"bgColorPicker" json:"bgColorPicker"`

	Photo    string `form:"photo" json:"photo" validate:"omitempty,photo"`
	LinkedIn string `form:"linkedin" json:"linkedin" validate:"max=2048"`

	Cert       string `form:"cert" json:"cert" validate:"max=2048"`
	Edu        string `form:"edu" json:"edu" validate:"max=2048"`
	Proj       string `form:"proj" json:"proj" validate:"max=2048"`
	Ref        string `form:"ref" json:"ref" validate:"max=2048"`
	ResumePDF  string `form:"resumePdf" json:"resumePdf" validate:"max=2048"`
	ResumeDOCX string `form:"resumeDocx" json:"resumeDocx" validate:"max=2048"`
	Work       string `form:"work" json:"work" validate:"max=2048"`

	// Gönderilmeyen görünürlük alanları nil kalır ve görünür sayılır.
	ShowCert   *bool `form:"showCert" json:"showCert"`
	ShowEdu    *bool `form:"showEdu" json:"showEdu"`
	ShowProj   *bool `form:"showProj" json:"showProj"`
	ShowRef    *bool `form:"showRef" json:"showRef"`
	ShowResume *bool `form:"showResume" json:"showResume"`
	ShowWork   *bool `form:"showWork" json:"showWork"`
}

// Checked görünürlük alanları için işaretçi üretir.
func Checked(v bool) *bool { return &v }

// UncheckedAsHidden HTML formlarında işaretlenmemiş kutular hiç gönderilmediği için
// eksik görünürlük alanlarını false yapar.
func (f *CardForm) UncheckedAsHidden() {
	for _, p := range []**bool{&f.ShowCert, &f.ShowEdu, &f.ShowProj, &f.ShowRef, &f.ShowResume, &f.ShowWork} {
		if *p == nil {
			*p = Checked(false)
		}
	}
}

// Visibility görünürlük alanlarını çözer; eksik alan görünür kabul edilir.
func (f CardForm) Visibility() models.PortfolioVisibility {
	shown := func(b *bool) bool { return b == nil || *b }
	return models.PortfolioVisibility{
		Cert:   shown(f.ShowCert),
		Edu:    shown(f.ShowEdu),
		Proj:   shown(f.ShowProj),
		Ref:    shown(f.ShowRef),
		Resume: shown(f.ShowResume),
		Work:   shown(f.ShowWork),
	}
}

// ValidationErrors alan adı -> hata mesajları. Boşsa form geçerlidir.
type ValidationErrors map[string][]string

// Add bir alana hata mesajı ekler.
func (v ValidationErrors) Add(field string, msgs ...string) {
	if len(msgs) == 0 {
		return
	}
	v[field] = append(v[field], msgs...)
}

// HasErrors en az bir hata varsa true döner.
func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// Error tüm hataları alan adına göre sıralı tek satırda birleştirir.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(v[f], ", "))
	}
	return strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Hata anahtarları olarak form etiketleri kullanılır
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("photo", func(fl validator.FieldLevel) bool {
		p := strings.ToLower(fl.Field().String())
		return strings.HasPrefix(p, "data:image/") || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
	})
	return v
}

// ValidateCardForm formun tamamını kontrol eder. Yapısal kurallar validator etiketleriyle,
// alan kuralları FormatName/ValidateEmail/ValidatePhone ile uygulanır.
func ValidateCardForm(form CardForm) ValidationErrors {
	errs := ValidationErrors{}

	if err := validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			errs.Add("form", err.Error())
			return errs
		}
		for _, fe := range fieldErrs {
			errs.Add(fe.Field(), tagMessage(fe))
		}
	}

	if _, failed := errs["firstName"]; !failed {
		if _, err := FormatName(form.FirstName, false); err != nil {
			errs.Add("firstName", err.Error())
		}
	}
	if _, failed := errs["lastName"]; !failed {
		if _, err := FormatName(form.LastName, true); err != nil {
			errs.Add("lastName", err.Error())
		}
	}
	if _, failed := errs["email"]; !failed {
		errs.Add("email", ValidateEmail(form.Email)...)
	}
	errs.Add("phone", ValidatePhone(strings.TrimSpace(form.CountryCode), strings.TrimSpace(form.LocalNumber))...)

	return errs
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "bu alan zorunludur"
	case "max":
		return fmt.Sprintf("en fazla %s karakter olabilir", fe.Param())
	case "photo":
		return "fotoğraf bir görsel adresi veya data:image yükü olmalı"
	default:
		return fmt.Sprintf("geçersiz değer (%s)", fe.Tag())
	}
}
