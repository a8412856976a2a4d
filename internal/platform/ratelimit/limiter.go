package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"time"
)

const (
	minuteWindow = time.Minute
	tenSecWindow = 10 * time.Second
)

var ErrInvalidUser = errors.New("invalid user id")

// WindowStore cuenta eventos en ventanas fijas (Redis INCR + EXPIRE).
type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter limita acciones por usuario en dos ventanas: 1 minuto y 10 segundos.
// Un límite 0 desactiva esa ventana.
type Limiter struct {
	store     WindowStore
	prefix    string
	perMinute int
	per10Sec  int
}

func NewLimiter(store WindowStore, prefix string, perMinute, per10Sec int) *Limiter {
	return &Limiter{
		store:     store,
		prefix:    prefix,
		perMinute: max(perMinute, 0),
		per10Sec:  max(per10Sec, 0),
	}
}

// Allow registra una acción del usuario. Si excede alguna ventana devuelve
// allowed=false y los segundos hasta que la ventana más larga se libere.
func (l *Limiter) Allow(ctx context.Context, userID int64) (retryAfterSec int64, allowed bool, err error) {
	if userID <= 0 {
		return 0, false, ErrInvalidUser
	}
	if l == nil || l.store == nil {
		return 0, true, nil
	}

	windows := []struct {
		limit  int
		window time.Duration
		key    string
	}{
		{l.perMinute, minuteWindow, l.key("min", userID)},
		{l.per10Sec, tenSecWindow, l.key("10s", userID)},
	}

	for _, w := range windows {
		if w.limit == 0 {
			continue
		}
		count, ttl, err := l.store.IncrementWindow(ctx, w.key, w.window)
		if err != nil {
			return 0, false, err
		}
		if count > int64(w.limit) {
			retryAfterSec = max(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if retryAfterSec > 0 {
		return retryAfterSec, false, nil
	}
	return 0, true, nil
}

func (l *Limiter) key(window string, userID int64) string {
	return "rate:" + l.prefix + ":" + window + ":" + strconv.FormatInt(userID, 10)
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	return sec
}
