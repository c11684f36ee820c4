package app

import (
	"context"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/redis/go-redis/v9"
	"github.com/trooper-recruit/engage-api/internal/config"
	"github.com/trooper-recruit/engage-api/internal/ratelimit"
	"github.com/trooper-recruit/engage-api/internal/repo"
	"github.com/trooper-recruit/engage-api/internal/repo/memory"
	"github.com/trooper-recruit/engage-api/internal/repo/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

func newGenkitClient(cfg *config.Config) (*genkit.Genkit, error) {
	ctx := context.Background()
	googleAI := &googlegenai.GoogleAI{
		APIKey: cfg.LLM.GoogleAIAPIKey,
	}
	return genkit.Init(ctx, genkit.WithPlugins(googleAI)), nil
}

type storeOut struct {
	fx.Out

	Users    repo.UserRepository
	Badges   repo.BadgeRepository
	Messages repo.ChatMessageRepository
}

// newStore picks the storage backend once; everything downstream sees only
// the repo interfaces.
func newStore(lc fx.Lifecycle, cfg *config.Config) (storeOut, error) {
	switch cfg.Store.Driver {
	case "memory":
		s := memory.NewStore()
		return storeOut{
			Users:    memory.NewUserRepository(s),
			Badges:   memory.NewBadgeRepository(s),
			Messages: memory.NewChatMessageRepository(s),
		}, nil
	case "mongo":
		db, err := newMongoDB(lc, cfg)
		if err != nil {
			return storeOut{}, err
		}
		return storeOut{
			Users:    mongodb.NewUserRepository(db),
			Badges:   mongodb.NewBadgeRepository(db),
			Messages: mongodb.NewChatMessageRepository(db),
		}, nil
	default:
		return storeOut{}, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func newMongoDB(lc fx.Lifecycle, cfg *config.Config) (*mongodb.DB, error) {
	opts := options.Client().
		SetAppName("engage-api").
		ApplyURI(cfg.Database.URI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("init mongo client: %w", err)
	}

	db := &mongodb.DB{
		Client:   mongoClient,
		Database: mongoClient.Database(cfg.Database.Database),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := mongoClient.Ping(ctx, nil); err != nil {
				return err
			}
			return mongodb.EnsureIndexes(ctx, db)
		},
		OnStop: func(ctx context.Context) error {
			return mongoClient.Disconnect(ctx)
		},
	})

	return db, nil
}

func newLimiter(lc fx.Lifecycle, cfg *config.Config) (ratelimit.Limiter, error) {
	limit := cfg.Chat.RateLimit
	period := time.Duration(cfg.Chat.RateWindowSec) * time.Second

	if cfg.Redis.Addr == "" {
		return ratelimit.NewMemoryLimiter(limit, period), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return ratelimit.NewRedisLimiter(client, limit, period), nil
}
