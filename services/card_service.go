package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/cardcodec"
	"kartvizit.link/pkg/validation"
	"kartvizit.link/repositories"

	"go.uber.org/zap"
)

// CardServiceError özel servis hataları
type CardServiceError string

func (e CardServiceError) Error() string { return string(e) }

const (
	ErrStorageFull   CardServiceError = "depolama alanı dolu, kartvizit kaydedilemedi"
	ErrStorageFailed CardServiceError = "kartvizit depolamaya yazılamadı"
	ErrCardInvalid   CardServiceError = "kartvizit formu geçersiz"
)

// ICardService kullanıcının kendi kartviziti için işlemler.
type ICardService interface {
	LoadMyCard(ctx context.Context, owner string) (card models.Card, stored bool, err error)
	ResolveView(ctx context.Context, owner, sharedToken string) models.SessionState
	SaveMyCard(ctx context.Context, owner string, form validation.CardForm) (*models.Card, validation.ValidationErrors, error)
	ResetMyCard(ctx context.Context, owner string) error
}

// CardService ICardService arayüzünü uygular.
type CardService struct {
	repo repositories.IRecordRepository
	now  func() time.Time
}

// NewCardService yeni bir CardService örneği oluşturur.
func NewCardService(repo repositories.IRecordRepository) ICardService {
	return &CardService{repo: repo, now: time.Now}
}

// LoadMyCard kayıtlı kartviziti döndürür. Kayıt yoksa ya da okunamıyorsa yerleşik
// şablon döner ve stored false olur.
func (s *CardService) LoadMyCard(ctx context.Context, owner string) (models.Card, bool, error) {
	raw, err := s.repo.Get(ctx, repositories.MyCardKey(owner))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.DefaultCard(), false, nil
		}
		configslog.Log.Error("Kartvizit okunamadı", zap.String("owner", owner), zap.Error(err))
		return models.DefaultCard(), false, ErrStorageFailed
	}

	var card models.Card
	if err := json.Unmarshal(raw, &card); err != nil {
		configslog.Log.Warn("Kayıtlı kartvizit bozuk, şablon kullanılıyor", zap.String("owner", owner), zap.Error(err))
		return models.DefaultCard(), false, nil
	}
	return card, true, nil
}

// ResolveView isteğin hangi kartviziti göstereceğine karar verir. Paylaşım token'ı
// çözülemezse uyarı loglanır ve kullanıcının kendi kartına düşülür; hata dönmez.
func (s *CardService) ResolveView(ctx context.Context, owner, sharedToken string) models.SessionState {
	state := models.SessionState{Owner: owner}

	if token := strings.TrimSpace(sharedToken); token != "" {
		card, err := cardcodec.Decode(token)
		if err == nil {
			state.Viewing = true
			state.SharedToken = token
			state.Card = card
			return state
		}
		configslog.Log.Warn("Paylaşım token'ı çözülemedi, kendi kartvizite dönülüyor",
			zap.String("owner", owner), zap.Int("token_len", len(token)), zap.Error(err))
	}

	card, stored, err := s.LoadMyCard(ctx, owner)
	if err != nil {
		configslog.Log.Warn("Kartvizit yüklenemedi, şablon gösteriliyor", zap.String("owner", owner), zap.Error(err))
	}
	state.Card = card
	state.IsDefault = !stored
	return state
}

// SaveMyCard formu doğrular, kartviziti baştan oluşturur ve tek yazmada kaydeder.
// Doğrulama hatasında hiçbir şey yazılmaz ve hatalar ikinci dönüşte verilir.
func (s *CardService) SaveMyCard(ctx context.Context, owner string, form validation.CardForm) (*models.Card, validation.ValidationErrors, error) {
	if errs := validation.ValidateCardForm(form); errs.HasErrors() {
		return nil, errs, ErrCardInvalid
	}

	card, err := s.buildCard(form)
	if err != nil {
		return nil, nil, err
	}
	payload, err := json.Marshal(card)
	if err != nil {
		configslog.Log.Error("Kartvizit serileştirilemedi", zap.String("owner", owner), zap.Error(err))
		return nil, nil, ErrStorageFailed
	}
	if err := s.repo.Set(ctx, repositories.MyCardKey(owner), payload); err != nil {
		return nil, nil, storageError("Kartvizit kaydedilemedi", owner, err)
	}

	configslog.SLog.Infof("Kartvizit kaydedildi: owner=%s (%d bayt)", owner, len(payload))
	return card, nil, nil
}

// ResetMyCard kayıtlı kartviziti siler; bir sonraki yüklemede şablon döner.
func (s *CardService) ResetMyCard(ctx context.Context, owner string) error {
	if err := s.repo.Remove(ctx, repositories.MyCardKey(owner)); err != nil {
		return storageError("Kartvizit silinemedi", owner, err)
	}
	configslog.SLog.Infof("Kartvizit sıfırlandı: owner=%s", owner)
	return nil
}

func (s *CardService) buildCard(form validation.CardForm) (*models.Card, error) {
	first, err := validation.FormatName(form.FirstName, false)
	if err != nil {
		return nil, ErrCardInvalid
	}
	last, err := validation.FormatName(form.LastName, true)
	if err != nil {
		return nil, ErrCardInvalid
	}
	cc := strings.TrimSpace(form.CountryCode)
	local := strings.TrimSpace(form.LocalNumber)
	def := models.DefaultCard()

	return &models.Card{
		FirstName:   first,
		LastName:    last,
		JobTitle:    strings.TrimSpace(form.JobTitle),
		Email:       strings.TrimSpace(form.Email),
		CountryCode: cc,
		LocalNumber: local,
		Phone:       validation.PrettyPhone(cc, local),
		PhoneE164:   validation.E164(cc, local),
		CardColor:   validation.ValidateColor(form.CardColor, form.CardColorPicker, def.CardColor),
		BgColor:     validation.ValidateColor(form.BgColor, form.BgColorPicker, def.BgColor),
		Photo:       strings.TrimSpace(form.Photo),
		LinkedIn:    validation.NormalizeURL(form.LinkedIn),
		PortfolioLinks: models.PortfolioLinks{
			Cert: validation.NormalizeURL(form.Cert),
			Edu:  validation.NormalizeURL(form.Edu),
			Proj: validation.NormalizeURL(form.Proj),
			Ref:  validation.NormalizeURL(form.Ref),
			Resume: models.ResumeLinks{
				PDF:  validation.NormalizeURL(form.ResumePDF),
				DOCX: validation.NormalizeURL(form.ResumeDOCX),
			},
			Work: validation.NormalizeURL(form.Work),
		},
		PortfolioVisibility: form.Visibility(),
		LastUpdated: s.now().UTC(),
	}, nil
}

// storageError depo hatasını kullanıcıya gösterilecek servis hatasına çevirir.
func storageError(msg, owner string, err error) error {
	if errors.Is(err, repositories.ErrQuotaExceeded) {
		configslog.Log.Warn(msg, zap.String("owner", owner), zap.Error(err))
		return ErrStorageFull
	}
	configslog.Log.Error(msg, zap.String("owner", owner), zap.Error(err))
	return ErrStorageFailed
}

var _ ICardService = (*CardService)(nil)
