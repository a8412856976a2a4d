package s3

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type countingPresigner struct {
	calls int
	err   error
}

func (p *countingPresigner) PresignGet(ctx context.Context, key string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return "https://s3.example/" + key + "?sig=1", nil
}

func TestPresignedURLs_CachesByKey(t *testing.T) {
	p := &countingPresigner{}
	urls := NewPresignedURLs(p, time.Hour, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if got := urls.URL(ctx, "pets/1/a.jpg"); got != "https://s3.example/pets/1/a.jpg?sig=1" {
			t.Fatalf("unexpected url %q", got)
		}
	}
	urls.URL(ctx, "pets/1/b.jpg")
	if p.calls != 2 {
		t.Fatalf("expected 2 presign calls, got %d", p.calls)
	}
}

func TestPresignedURLs_FailureIsEmptyAndNotCached(t *testing.T) {
	p := &countingPresigner{err: errors.New("boom")}
	urls := NewPresignedURLs(p, time.Hour, nil)

	if got := urls.URL(context.Background(), "k"); got != "" {
		t.Fatalf("expected empty url, got %q", got)
	}
	urls.URL(context.Background(), "k")
	if p.calls != 2 {
		t.Fatalf("failures must not be cached, got %d calls", p.calls)
	}
}

func TestStaticURLs(t *testing.T) {
	u := StaticURLs{BaseURL: "http://localhost:8080/media/"}
	if got := u.URL(context.Background(), "/pets/1/a.jpg"); got != "http://localhost:8080/media/pets/1/a.jpg" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestStorage_PresignGetOffline(t *testing.T) {
	s, err := NewStorage(Config{
		Endpoint:   "localhost:9000",
		AccessKey:  "minio",
		SecretKey:  "minio123",
		Bucket:     "getpet-media",
		PresignTTL: 10 * time.Minute,
	})
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}

	u, err := s.PresignGet(context.Background(), "pets/1/a.jpg")
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if !strings.Contains(u, "/getpet-media/pets/1/a.jpg") || !strings.Contains(u, "X-Amz-Expires=600") {
		t.Fatalf("unexpected presigned url %q", u)
	}
}

func TestNewStorage_RequiresEndpointAndBucket(t *testing.T) {
	if _, err := NewStorage(Config{Bucket: "b"}); err == nil {
		t.Fatalf("expected endpoint error")
	}
	if _, err := NewStorage(Config{Endpoint: "localhost:9000"}); err == nil {
		t.Fatalf("expected bucket error")
	}
}
