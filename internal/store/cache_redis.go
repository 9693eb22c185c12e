package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/redis/go-redis/v9"
)

const (
	sectionKeyPrefix    = "section:"
	generationKeySuffix = ":gen"
	defaultSectionTTL   = 10 * time.Minute
	redisCommandTimeout = 2 * time.Second
)

var errStaleGeneration = errors.New("section generation moved")

// redisSectionCache is the Redis-backed [SectionCache]. Entries expire after
// ttl so that a missed invalidation heals on its own.
type redisSectionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSectionCache returns a Redis cache for cfg.Address, or a cache that
// always misses when no address is configured.
func NewSectionCache(ctx context.Context, cfg config.Redis, log *logger.Logger) (SectionCache, error) {
	if cfg.Address == "" {
		log.Info().Str("func", "NewSectionCache").Msg("redis address is empty, section cache disabled")
		return nopSectionCache{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  redisCommandTimeout,
		WriteTimeout: redisCommandTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewSectionCache").Msg("redis ping failed")
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultSectionTTL
	}

	return &redisSectionCache{client: client, ttl: ttl}, nil
}

func (c *redisSectionCache) Get(ctx context.Context, kind models.SectionKind) (models.Section, error) {
	raw, err := c.client.Get(ctx, sectionKey(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Section{}, ErrCacheMiss
	}
	if err != nil {
		return models.Section{}, err
	}

	var section models.Section
	if err = json.Unmarshal(raw, &section); err != nil {
		return models.Section{}, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	return section, nil
}

// Set writes section under WATCH of the generation key, so an Invalidate
// that lands between the check and the write aborts the transaction.
// A stale generation is not an error: the caller simply loses the race.
func (c *redisSectionCache) Set(ctx context.Context, section models.Section, generation int64) error {
	raw, err := json.Marshal(section)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	genKey := sectionGenerationKey(section.Kind)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sectionKey(section.Kind), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	if errors.Is(err, errStaleGeneration) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *redisSectionCache) Generation(ctx context.Context, kind models.SectionKind) (int64, error) {
	return readGeneration(ctx, c.client, sectionGenerationKey(kind))
}

// Invalidate bumps the generation and drops the cached copy atomically.
func (c *redisSectionCache) Invalidate(ctx context.Context, kind models.SectionKind) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, sectionGenerationKey(kind))
		pipe.Del(ctx, sectionKey(kind))
		return nil
	})
	return err
}

func (c *redisSectionCache) Close() error {
	return c.client.Close()
}

func sectionKey(kind models.SectionKind) string {
	return sectionKeyPrefix + string(kind)
}

func sectionGenerationKey(kind models.SectionKind) string {
	return sectionKeyPrefix + string(kind) + generationKeySuffix
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd stringGetter, key string) (int64, error) {
	generation, err := cmd.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

type nopSectionCache struct{}

func (nopSectionCache) Get(context.Context, models.SectionKind) (models.Section, error) {
	return models.Section{}, ErrCacheMiss
}

func (nopSectionCache) Generation(context.Context, models.SectionKind) (int64, error) { return 0, nil }

func (nopSectionCache) Set(context.Context, models.Section, int64) error { return nil }

func (nopSectionCache) Invalidate(context.Context, models.SectionKind) error { return nil }

// cachedSectionRepository serves section reads from a [SectionCache] and
// drops the cached copy on every write. Cache failures are logged and never
// fail the request.
type cachedSectionRepository struct {
	SectionRepository
	cache SectionCache
}

// NewCachedSectionRepository wraps repo with cache.
func NewCachedSectionRepository(repo SectionRepository, cache SectionCache) SectionRepository {
	return &cachedSectionRepository{SectionRepository: repo, cache: cache}
}

func (c *cachedSectionRepository) GetSection(ctx context.Context, kind models.SectionKind) (models.Section, error) {
	log := logger.FromContext(ctx)

	section, err := c.cache.Get(ctx, kind)
	if err == nil {
		return section, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Warn().Err(err).Str("func", "cachedSectionRepository.GetSection").Msg("section cache read failed")
	}

	// taken before the database read so a concurrent write wins
	generation, genErr := c.cache.Generation(ctx, kind)
	if genErr != nil {
		log.Warn().Err(genErr).Str("func", "cachedSectionRepository.GetSection").Msg("section cache generation read failed")
	}

	section, err = c.SectionRepository.GetSection(ctx, kind)
	if err != nil {
		return models.Section{}, err
	}

	if genErr != nil {
		return section, nil
	}
	if setErr := c.cache.Set(ctx, section, generation); setErr != nil {
		log.Warn().Err(setErr).Str("func", "cachedSectionRepository.GetSection").Msg("section cache write failed")
	}

	return section, nil
}

func (c *cachedSectionRepository) CreateSection(ctx context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error) {
	section, err := c.SectionRepository.CreateSection(ctx, kind, body)
	c.invalidate(ctx, kind)
	return section, err
}

func (c *cachedSectionRepository) UpsertSection(ctx context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error) {
	section, err := c.SectionRepository.UpsertSection(ctx, kind, body)
	c.invalidate(ctx, kind)
	return section, err
}

func (c *cachedSectionRepository) ReplaceSection(ctx context.Context, kind models.SectionKind, body json.RawMessage) (models.Section, error) {
	section, err := c.SectionRepository.ReplaceSection(ctx, kind, body)
	c.invalidate(ctx, kind)
	return section, err
}

func (c *cachedSectionRepository) MutateSection(ctx context.Context, kind models.SectionKind, mutate SectionMutator) (models.Section, error) {
	section, err := c.SectionRepository.MutateSection(ctx, kind, mutate)
	c.invalidate(ctx, kind)
	return section, err
}

func (c *cachedSectionRepository) DeleteSection(ctx context.Context, kind models.SectionKind) error {
	err := c.SectionRepository.DeleteSection(ctx, kind)
	c.invalidate(ctx, kind)
	return err
}

// invalidate runs detached from the request so a client that hangs up after
// the write committed cannot leave a stale copy behind.
func (c *cachedSectionRepository) invalidate(ctx context.Context, kind models.SectionKind) {
	invalidateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), redisCommandTimeout)
	defer cancel()

	if err := c.cache.Invalidate(invalidateCtx, kind); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "cachedSectionRepository.invalidate").
			Str("kind", string(kind)).
			Msg("section cache invalidation failed")
	}
}
