package main

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/MrSyr3x/catering-system/internal/auth"
	"github.com/MrSyr3x/catering-system/internal/catalog"
	"github.com/MrSyr3x/catering-system/internal/config"
	"github.com/MrSyr3x/catering-system/internal/events"
	"github.com/MrSyr3x/catering-system/internal/order"
	"github.com/MrSyr3x/catering-system/internal/session"
	"github.com/MrSyr3x/catering-system/internal/store"
	"github.com/MrSyr3x/catering-system/internal/view"

	_ "github.com/MrSyr3x/catering-system/docs"
)

// @title        Catering System API
// @version      1.0
// @description  Storefront API: catalog browsing, session carts, order placement and admin management.
// @BasePath     /
func main() {
	cfg := config.Load()

	st, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	sessions := session.NewManager(tokenStore(cfg))
	sessions.Subscribe(func(s *session.Session) {
		if s != nil {
			log.Printf("[auth] session opened user=%s type=%s", s.UserID, s.UserType)
		} else {
			log.Printf("[auth] session closed")
		}
	})

	var pub events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQP(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("events: %v", err)
		}
		defer p.Close()
		pub = p
	}

	hub := view.NewHub()

	r := newRouter(cfg.CORSOrigins, services{
		auth:     auth.NewService(st, sessions),
		sessions: sessions,
		catalog:  catalog.NewService(st, hub),
		orders:   order.NewService(st, pub, hub),
		hub:      hub,
	})

	log.Printf("catering-server listening on %s", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}

func openStore(cfg config.Config) (store.Store, func(), error) {
	ctx := context.Background()
	switch cfg.StoreDriver {
	case "postgres":
		pg, err := store.NewPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return pg, pg.Close, nil
	case "mongo":
		mg, err := store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		return mg, func() { _ = mg.Close(context.Background()) }, nil
	case "memory":
		return store.NewMemory(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func tokenStore(cfg config.Config) session.TokenStore {
	if cfg.RedisAddr == "" {
		return session.NewMemoryTokenStore(cfg.SessionTTL)
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return session.NewRedisTokenStore(rdb, cfg.SessionTTL)
}
