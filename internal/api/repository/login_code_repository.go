package repository

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCodeMismatch = errors.New("login code mismatch or expired")

// LoginCodeRepository stores one-time passwordless login codes. Codes live in
// redis with a TTL and are consumed on first successful confirmation.
type LoginCodeRepository interface {
	Store(ctx context.Context, email, code string, ttl time.Duration) error
	Consume(ctx context.Context, email, code string) error
}

type loginCodeRepository struct {
	client *redis.Client
}

func NewLoginCodeRepository(client *redis.Client) LoginCodeRepository {
	return &loginCodeRepository{client: client}
}

func loginCodeKey(email string) string {
	return fmt.Sprintf("logincode:%s", email)
}

func (r *loginCodeRepository) Store(ctx context.Context, email, code string, ttl time.Duration) error {
	return r.client.Set(ctx, loginCodeKey(email), code, ttl).Err()
}

// Consume deletes the stored code and compares it against the submitted one,
// so a code can only be used once even when the comparison fails later.
func (r *loginCodeRepository) Consume(ctx context.Context, email, code string) error {
	stored, err := r.client.GetDel(ctx, loginCodeKey(email)).Result()
	if err == redis.Nil {
		return ErrCodeMismatch
	}
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrCodeMismatch
	}
	return nil
}
