package models

import (
	"encoding/json"
	"time"
)

// Contact ziyaretçinin kaydettiği, başkasına ait bir kartvizit anlık görüntüsüdür.
type Contact struct {
	Card
	SavedAt time.Time `json:"savedAt"`
}

// UnmarshalJSON gömülü Card'ın çözümleyicisinin savedAt alanını yutmasını engeller.
func (c *Contact) UnmarshalJSON(data []byte) error {
	var card Card
	if err := json.Unmarshal(data, &card); err != nil {
		return err
	}
	var meta struct {
		SavedAt time.Time `json:"savedAt"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return err
	}
	c.Card = card
	c.SavedAt = meta.SavedAt
	return nil
}

// SameIdentity (ad, soyad, e-posta) üçlüsü aynıysa true döner.
func (c Contact) SameIdentity(card Card) bool {
	return c.FirstName == card.FirstName && c.LastName == card.LastName && c.Email == card.Email
}
