package models

// SessionState bir sayfa isteğinin görünüm durumudur. "Salt okunur mod" gizli bir global
// değil, bu değerin alanıdır.
type SessionState struct {
	Owner       string
	Viewing     bool   // Paylaşılan ya da kayıtlı bir kişinin kartviziti görüntüleniyor
	SharedToken string // Viewing true ve kaynak paylaşım linkiyse dolu
	IsDefault   bool   // Kayıtlı kartvizit yok, yerleşik şablon gösteriliyor
	Card        Card
}

// ReadOnly görünümün düzenlemeye kapalı olup olmadığını söyler.
func (s SessionState) ReadOnly() bool {
	return s.Viewing
}
