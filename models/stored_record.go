package models

// StoredRecord anahtar-değer deposunun PostgreSQL karşılığıdır.
// Value, kaydın JSON serileştirilmiş halidir (kartvizit veya kişi listesi).
type StoredRecord struct {
	BaseModel
	Key   string `gorm:"type:varchar(191);uniqueIndex;not null"`
	Value string `gorm:"type:text;not null"`
}

// TableName tablo adını sabitler.
func (StoredRecord) TableName() string {
	return "stored_records"
}
