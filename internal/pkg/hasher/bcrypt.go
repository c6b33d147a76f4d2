// Package hasher provides one-way password hashing.
// Пакет hasher предоставляет одностороннее хэширование паролей.
package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used unless configured otherwise.
// DefaultCost - фактор сложности bcrypt по умолчанию.
const DefaultCost = 10

// Bcrypt hashes passwords with a fixed work factor and a fresh salt per call.
// Bcrypt хэширует пароли с фиксированным фактором сложности и новой солью.
type Bcrypt struct {
	cost int // Work factor / Фактор сложности
}

// NewBcrypt creates a bcrypt hasher. Non-positive cost selects DefaultCost.
// NewBcrypt создаёт bcrypt-хэшер. Неположительная стоимость выбирает DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns the digest of plaintext.
// Hash возвращает хэш открытого текста.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest.
// Verify сообщает, соответствует ли открытый текст хэшу.
//
// A malformed digest never matches.
// Некорректный хэш никогда не совпадает.
func (b *Bcrypt) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// Cost returns the configured work factor.
// Cost возвращает настроенный фактор сложности.
func (b *Bcrypt) Cost() int {
	return b.cost
}
