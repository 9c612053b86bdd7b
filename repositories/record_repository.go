package repositories

import (
	"context"
	"errors"
)

var (
	// ErrNotFound anahtar için kayıt yok.
	ErrNotFound = errors.New("kayıt bulunamadı")
	// ErrQuotaExceeded yazma depolama kotasını aşıyor; hiçbir şey yazılmadı.
	ErrQuotaExceeded = errors.New("depolama kotası aşıldı")
)

// Kayıt anahtarlarının son ekleri. Tam anahtar <sahip>:<ek> biçimindedir.
const (
	MyCardKeySuffix        = "myCard"
	SavedContactsKeySuffix = "savedContacts"
)

// IRecordRepository anahtar-değer kayıt deposu. Set tek bir kaydı bütün olarak yazar;
// kısmi yazma olmaz.
type IRecordRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// MyCardKey sahibin kendi kartvizitinin anahtarı.
func MyCardKey(owner string) string {
	return owner + ":" + MyCardKeySuffix
}

// SavedContactsKey sahibin kayıtlı kişi listesinin anahtarı.
func SavedContactsKey(owner string) string {
	return owner + ":" + SavedContactsKeySuffix
}
