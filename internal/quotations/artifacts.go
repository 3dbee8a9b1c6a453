package quotations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

// Artifact is a generated document held for later download.
type Artifact struct {
	ID       string
	Filename string
	Data     []byte
}

// ArtifactStore keeps generated documents in Redis under a TTL. Documents are
// cheap to regenerate, so expiry only means a fresh generation on the next
// request.
type ArtifactStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewArtifactStore(rdb *redis.Client, ttl time.Duration) *ArtifactStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ArtifactStore{rdb: rdb, ttl: ttl}
}

func artifactKey(id string) string {
	return "quotations:doc:" + id
}

// Put stores the document and returns its generated identifier.
func (s *ArtifactStore) Put(ctx context.Context, filename string, data []byte) (string, error) {
	id := uuid.NewString()
	key := artifactKey(id)

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, "filename", filename, "data", data)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("%w: store document: %v", httpx.ErrDependency, err)
	}
	return id, nil
}

func (s *ArtifactStore) Get(ctx context.Context, id string) (*Artifact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: malformed document id", httpx.ErrValidation)
	}

	vals, err := s.rdb.HGetAll(ctx, artifactKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: fetch document: %v", httpx.ErrDependency, err)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("%w: document %s", httpx.ErrNotFound, id)
	}
	return &Artifact{
		ID:       id,
		Filename: vals["filename"],
		Data:     []byte(vals["data"]),
	}, nil
}
