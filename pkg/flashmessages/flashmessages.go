// Package flashmessages bir sonraki isteğe taşınan tek seferlik bildirimleri yönetir.
package flashmessages

import (
	"kartvizit.link/configs/configssession"

	"github.com/gofiber/fiber/v2"
)

const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
)

// FlashMessages okunmuş ve silinmiş bildirimler.
type FlashMessages struct {
	Success string
	Error   string
}

// SetFlashMessage bildirimi session'a yazar.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := configssession.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages bildirimleri okur ve session'dan siler.
func GetFlashMessages(c *fiber.Ctx) (FlashMessages, error) {
	var msgs FlashMessages
	sess, err := configssession.SessionStart(c)
	if err != nil {
		return msgs, err
	}

	msgs.Success, _ = sess.Get(FlashSuccessKey).(string)
	msgs.Error, _ = sess.Get(FlashErrorKey).(string)
	if msgs.Success == "" && msgs.Error == "" {
		return msgs, nil
	}
	sess.Delete(FlashSuccessKey)
	sess.Delete(FlashErrorKey)
	return msgs, sess.Save()
}
