package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/cardcodec"
	"kartvizit.link/repositories"

	"go.uber.org/zap"
)

// ContactServiceError kayıtlı kişi işlemlerinin hataları
type ContactServiceError string

func (e ContactServiceError) Error() string { return string(e) }

const (
	ErrDuplicateContact ContactServiceError = "bu kişi zaten kayıtlı"
	ErrContactNotFound  ContactServiceError = "kayıtlı kişi bulunamadı"
	ErrContactInvalid   ContactServiceError = "paylaşım linki geçersiz"
)

// IContactService kayıtlı kişi listesi işlemleri.
type IContactService interface {
	List(ctx context.Context, owner string) ([]models.Contact, error)
	Get(ctx context.Context, owner string, index int) (*models.Contact, error)
	Add(ctx context.Context, owner string, card models.Card) (*models.Contact, error)
	AddFromToken(ctx context.Context, owner, token string) (*models.Contact, error)
	Remove(ctx context.Context, owner string, index int) error
}

// ContactService IContactService arayüzünü uygular.
// Aynı sahibin ekleme ve silme işlemleri birbirini beklediğinden liste yarışta kaybolmaz.
type ContactService struct {
	repo  repositories.IRecordRepository
	now   func() time.Time
	locks ownerLocks
}

// NewContactService yeni bir ContactService örneği oluşturur.
func NewContactService(repo repositories.IRecordRepository) IContactService {
	return &ContactService{repo: repo, now: time.Now}
}

// List kayıt sırasıyla kişileri döndürür. Kayıt yoksa boş liste döner.
func (s *ContactService) List(ctx context.Context, owner string) ([]models.Contact, error) {
	raw, err := s.repo.Get(ctx, repositories.SavedContactsKey(owner))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return []models.Contact{}, nil
		}
		configslog.Log.Error("Kişi listesi okunamadı", zap.String("owner", owner), zap.Error(err))
		return nil, ErrStorageFailed
	}

	var contacts []models.Contact
	if err := json.Unmarshal(raw, &contacts); err != nil {
		configslog.Log.Warn("Kişi listesi bozuk, boş liste kullanılıyor", zap.String("owner", owner), zap.Error(err))
		return []models.Contact{}, nil
	}
	return contacts, nil
}

// Get index'teki kişiyi döndürür.
func (s *ContactService) Get(ctx context.Context, owner string, index int) (*models.Contact, error) {
	contacts, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(contacts) {
		return nil, ErrContactNotFound
	}
	return &contacts[index], nil
}

// Add kartvizitin paylaşılabilir halini listeye ekler. Aynı (ad, soyad, e-posta) üçlüsü
// zaten varsa ErrDuplicateContact döner ve liste değişmez.
func (s *ContactService) Add(ctx context.Context, owner string, card models.Card) (*models.Contact, error) {
	unlock := s.locks.lock(owner)
	defer unlock()

	contacts, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	card = cardcodec.Project(card)
	for _, c := range contacts {
		if c.SameIdentity(card) {
			return nil, ErrDuplicateContact
		}
	}

	contact := models.Contact{Card: card, SavedAt: s.now().UTC()}
	contacts = append(contacts, contact)
	if err := s.write(ctx, owner, contacts); err != nil {
		return nil, err
	}
	configslog.SLog.Infof("Kişi kaydedildi: owner=%s %s (%d kişi)", owner, card.FullName(), len(contacts))
	return &contact, nil
}

// AddFromToken paylaşım token'ını çözüp kişi olarak ekler.
func (s *ContactService) AddFromToken(ctx context.Context, owner, token string) (*models.Contact, error) {
	card, err := cardcodec.Decode(token)
	if err != nil {
		configslog.Log.Warn("Kişi eklenemedi, token çözülemedi", zap.String("owner", owner), zap.Error(err))
		return nil, ErrContactInvalid
	}
	return s.Add(ctx, owner, card)
}

// Remove index'teki kişiyi siler; diğerlerinin sırası korunur.
func (s *ContactService) Remove(ctx context.Context, owner string, index int) error {
	unlock := s.locks.lock(owner)
	defer unlock()

	contacts, err := s.List(ctx, owner)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(contacts) {
		return ErrContactNotFound
	}
	contacts = append(contacts[:index], contacts[index+1:]...)
	return s.write(ctx, owner, contacts)
}

func (s *ContactService) write(ctx context.Context, owner string, contacts []models.Contact) error {
	payload, err := json.Marshal(contacts)
	if err != nil {
		configslog.Log.Error("Kişi listesi serileştirilemedi", zap.String("owner", owner), zap.Error(err))
		return ErrStorageFailed
	}
	if err := s.repo.Set(ctx, repositories.SavedContactsKey(owner), payload); err != nil {
		return storageError("Kişi listesi kaydedilemedi", owner, err)
	}
	return nil
}

var _ IContactService = (*ContactService)(nil)
