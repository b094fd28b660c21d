// Package ratelimit bounds request rates per client and route. Buckets
// live in process memory only: counters reset on restart, which is an
// accepted tradeoff for this layer.
package ratelimit

import (
	"context"
	"time"

	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// Route names known to the per-route policies.
const (
	RouteSignup = "signup"
	RouteSignin = "signin"
)

// Default policies: tight windows for the abuse-prone endpoints plus
// global windows applied to every route.
var (
	routeRates = map[string]limiter.Rate{
		RouteSignup: {Period: time.Minute, Limit: 5},
		RouteSignin: {Period: time.Minute, Limit: 10},
	}
	globalRates = map[string]limiter.Rate{
		"hourly": {Period: time.Hour, Limit: 50},
		"daily":  {Period: 24 * time.Hour, Limit: 200},
	}
)

// Limiter holds one window counter set per policy, all backed by a shared
// in-memory store. Keys are namespaced per policy so the windows count
// independently.
type Limiter struct {
	perRoute map[string]*limiter.Limiter
	global   map[string]*limiter.Limiter
}

// New builds a Limiter with the default policies.
func New() *Limiter {
	store := memory.NewStore()

	l := &Limiter{
		perRoute: make(map[string]*limiter.Limiter, len(routeRates)),
		global:   make(map[string]*limiter.Limiter, len(globalRates)),
	}

	for route, rate := range routeRates {
		l.perRoute[route] = limiter.New(store, rate)
	}
	for name, rate := range globalRates {
		l.global[name] = limiter.New(store, rate)
	}

	return l
}

// Allow consumes one slot from the route's bucket (if the route has a
// policy) and from every global bucket for clientKey. It returns false as
// soon as any bucket is exhausted.
func (l *Limiter) Allow(ctx context.Context, clientKey, route string) (bool, error) {
	if rl, ok := l.perRoute[route]; ok {
		reached, err := consume(ctx, rl, route+":"+clientKey)
		if err != nil || reached {
			return false, err
		}
	}

	for name, rl := range l.global {
		reached, err := consume(ctx, rl, name+":"+clientKey)
		if err != nil || reached {
			return false, err
		}
	}

	return true, nil
}

func consume(ctx context.Context, rl *limiter.Limiter, key string) (bool, error) {
	lctx, err := rl.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return lctx.Reached, nil
}
