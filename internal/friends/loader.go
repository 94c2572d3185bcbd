package friends

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jask/cardfriends/internal/usersapi"
)

// Source lists one page of remote users.
type Source interface {
	ListUsers(ctx context.Context, page int) (usersapi.Page, error)
}

// RandSource yields integers in [0,n). *rand.Rand from math/rand/v2
// satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Loader runs fetches and decorates the records they return.
type Loader struct {
	Source Source
	Rand   RandSource
	Log    *zap.Logger
}

// Load performs req and returns its Result. Failures are logged and carried
// in Result.Err; they are never retried.
func (ld *Loader) Load(ctx context.Context, req Request) Result {
	log := ld.logger().With(zap.String("request_id", req.ID), zap.Int("page", req.Page))
	page, err := ld.Source.ListUsers(ctx, req.Page)
	if err != nil {
		err = fmt.Errorf("fetch friends: %w", err)
		if errors.Is(err, context.Canceled) {
			log.Debug("fetch cancelled", zap.Error(err))
		} else {
			log.Error("error fetching users", zap.Error(err))
		}
		return Result{Request: req, Err: err}
	}
	users := make([]User, 0, len(page.Data))
	for _, u := range page.Data {
		users = append(users, User{User: u, MutualFriends: ld.Rand.IntN(MutualFriendsBound)})
	}
	log.Debug("users fetched", zap.Int("count", len(users)), zap.Int("total_pages", page.TotalPages))
	return Result{Request: req, Users: users, TotalPages: page.TotalPages}
}

// LockedRand serialises a RandSource shared by concurrent loads.
type LockedRand struct {
	mu sync.Mutex
	r  RandSource
}

func NewLockedRand(r RandSource) *LockedRand {
	return &LockedRand{r: r}
}

func (l *LockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (ld *Loader) logger() *zap.Logger {
	if ld.Log == nil {
		return zap.NewNop()
	}
	return ld.Log
}
