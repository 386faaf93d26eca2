// Package jwt реализует генерацию и парсинг JWT токенов сессии.
//
// Токен — это подписанный (HS256, один симметричный секрет) bearer-токен,
// несущий идентификатор пользователя и email. Claims не шифруются: подпись
// гарантирует целостность, но не конфиденциальность.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга токенов сессии.
type Maker interface {
	// GenerateToken создаёт подписанный токен для пользователя.
	GenerateToken(userUID, email string) (string, error)
	// ParseToken проверяет подпись и срок действия и возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
	// TTL возвращает срок действия выдаваемых токенов.
	TTL() time.Duration
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// TTL возвращает время жизни выдаваемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
