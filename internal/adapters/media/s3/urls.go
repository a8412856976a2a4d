package s3

import (
	"context"
	"strings"
	"time"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const urlCacheSize = 4096

type Presigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

// PresignedURLs resuelve keys a URLs firmadas, cacheadas en memoria para no
// firmar la misma foto en cada respuesta del generador.
type PresignedURLs struct {
	presigner Presigner
	cache     *expirable.LRU[string, string]
	log       logger.Logger
}

// NewPresignedURLs cachea cada URL por la mitad de su validez.
func NewPresignedURLs(p Presigner, presignTTL time.Duration, log logger.Logger) *PresignedURLs {
	if log == nil {
		log = logger.NewNop()
	}
	ttl := presignTTL / 2
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &PresignedURLs{
		presigner: p,
		cache:     expirable.NewLRU[string, string](urlCacheSize, nil, ttl),
		log:       log,
	}
}

// URL devuelve "" si la firma falla; la respuesta sale sin foto.
func (u *PresignedURLs) URL(ctx context.Context, key string) string {
	if v, ok := u.cache.Get(key); ok {
		metrics.CacheHits.WithLabelValues("photo_urls").Inc()
		return v
	}
	metrics.CacheMisses.WithLabelValues("photo_urls").Inc()

	v, err := u.presigner.PresignGet(ctx, key)
	if err != nil {
		u.log.Warn("presign photo failed", map[string]any{"key": key, "err": err})
		return ""
	}
	u.cache.Add(key, v)
	return v
}

// StaticURLs sirve las fotos desde una base pública fija (CDN o /media/ local).
type StaticURLs struct {
	BaseURL string
}

func (s StaticURLs) URL(ctx context.Context, key string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + strings.TrimLeft(key, "/")
}
