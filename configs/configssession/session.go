// Package configssession Fiber session store'unu ve anonim sahip (owner) kimliğini yönetir.
package configssession

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	// LocalsStoreKey session store'un c.Locals içindeki anahtarı
	LocalsStoreKey = "session_store"
	// LocalsOwnerKey sahip kimliğinin c.Locals içindeki anahtarı
	LocalsOwnerKey = "ownerID"

	ownerSessionKey = "owner_id"
)

// ErrNoStore middleware kurulmadan session'a erişildiğinde döner.
var ErrNoStore = errors.New("session store bulunamadı")

// SetupSession verilen çerez adıyla yeni bir session store oluşturur.
func SetupSession(cookieName string, secure bool) *session.Store {
	return session.New(session.Config{
		KeyLookup:      "cookie:" + cookieName,
		Expiration:     30 * 24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: "Lax",
	})
}

// SessionStart isteğin session'ını c.Locals'taki store üzerinden açar.
// İlk istekte çerez henüz tarayıcıda olmadığından yeni session'a sahip kimliği tekrar yazılır.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals(LocalsStoreKey).(*session.Store)
	if !ok || store == nil {
		return nil, ErrNoStore
	}
	sess, err := store.Get(c)
	if err != nil {
		return nil, err
	}
	if owner := OwnerID(c); owner != "" && sess.Get(ownerSessionKey) == nil {
		sess.Set(ownerSessionKey, owner)
	}
	return sess, nil
}

// Middleware her istekte store'u Locals'a koyar ve tarayıcıya kalıcı bir sahip kimliği atar.
// Kartvizit ve kişi listesi bu kimlik altında saklanır.
func Middleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalsStoreKey, store)
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		owner, _ := sess.Get(ownerSessionKey).(string)
		if owner == "" {
			owner = uuid.NewString()
			sess.Set(ownerSessionKey, owner)
			if err := sess.Save(); err != nil {
				return err
			}
		}
		c.Locals(LocalsOwnerKey, owner)
		return c.Next()
	}
}

// OwnerID middleware tarafından atanan sahip kimliğini döndürür.
func OwnerID(c *fiber.Ctx) string {
	owner, _ := c.Locals(LocalsOwnerKey).(string)
	return owner
}
