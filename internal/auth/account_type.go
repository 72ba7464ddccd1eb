package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	"github.com/redis/go-redis/v9"
)

const accountTypeKeyPrefix = "account_type:"

// AccountTypeSource looks up users.account_type.
type AccountTypeSource interface {
	LookupAccountType(ctx context.Context, userID string) (types.AccountType, error)
}

// AccountTypeSourceFunc adapts a function to AccountTypeSource.
type AccountTypeSourceFunc func(ctx context.Context, userID string) (types.AccountType, error)

func (f AccountTypeSourceFunc) LookupAccountType(ctx context.Context, userID string) (types.AccountType, error) {
	return f(ctx, userID)
}

// AccountTypeResolver reads account types through a Redis cache, trying each
// source in order on a miss. Cache failures fall through to the sources.
type AccountTypeResolver struct {
	rdb     redis.UniversalClient
	ttl     time.Duration
	sources []AccountTypeSource
}

func NewAccountTypeResolver(rdb redis.UniversalClient, ttl time.Duration, sources ...AccountTypeSource) *AccountTypeResolver {
	return &AccountTypeResolver{rdb: rdb, ttl: ttl, sources: sources}
}

func (r *AccountTypeResolver) Resolve(ctx context.Context, userID string) (types.AccountType, error) {
	log := logger.GetLogger()
	key := accountTypeKeyPrefix + userID

	if r.rdb != nil {
		cached, err := r.rdb.Get(ctx, key).Result()
		switch {
		case err == nil:
			return types.ParseAccountType(cached), nil
		case !errors.Is(err, redis.Nil):
			log.Warnw("Account type cache read failed", "userID", userID, "error", err)
		}
	}

	var errs []error
	for _, src := range r.sources {
		at, err := src.LookupAccountType(ctx, userID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.Prime(ctx, userID, at)
		return at, nil
	}
	if len(errs) == 0 {
		return "", fmt.Errorf("no account type source configured")
	}
	return "", fmt.Errorf("account type lookup failed: %w", errors.Join(errs...))
}

// Prime stores a known account type, e.g. right after sign-in.
func (r *AccountTypeResolver) Prime(ctx context.Context, userID string, at types.AccountType) {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.Set(ctx, accountTypeKeyPrefix+userID, string(at), r.ttl).Err(); err != nil {
		logger.GetLogger().Warnw("Account type cache write failed", "userID", userID, "error", err)
	}
}

// Invalidate drops the cached value.
func (r *AccountTypeResolver) Invalidate(ctx context.Context, userID string) {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.Del(ctx, accountTypeKeyPrefix+userID).Err(); err != nil {
		logger.GetLogger().Warnw("Account type cache delete failed", "userID", userID, "error", err)
	}
}
