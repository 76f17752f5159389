// Package app wires configuration, storage, notifiers and use cases together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/phenrril/fightshop/internal/adapters/cache"
	"github.com/phenrril/fightshop/internal/adapters/events"
	"github.com/phenrril/fightshop/internal/adapters/httpserver"
	"github.com/phenrril/fightshop/internal/adapters/notify"
	"github.com/phenrril/fightshop/internal/adapters/repo/memory"
	"github.com/phenrril/fightshop/internal/adapters/repo/mongo"
	"github.com/phenrril/fightshop/internal/adapters/repo/postgres"
	"github.com/phenrril/fightshop/internal/catalog"
	"github.com/phenrril/fightshop/internal/config"
	"github.com/phenrril/fightshop/internal/domain"
	"github.com/phenrril/fightshop/internal/usecase"
)

type repos struct {
	products domain.ProductRepo
	carts    domain.CartRepo
	orders   domain.OrderRepo
	users    domain.UserRepo
	profiles domain.ProfileRepo
}

type App struct {
	Config *config.Config

	DB    *gorm.DB
	Mongo *mongodrv.Database

	ProductUC *usecase.ProductUC
	CartUC    *usecase.CartUC
	OrderUC   *usecase.OrderUC
	AuthUC    *usecase.AuthUC
	ProfileUC *usecase.ProfileUC

	OAuthConfig *oauth2.Config

	repos   repos
	closers []func(context.Context) error
}

// New opens the configured store and builds the use cases. The memory store is seeded
// with the bundled catalog right away.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}
	if err := a.openStore(ctx); err != nil {
		return nil, err
	}

	r := a.repos
	if cfg.OrderCacheSize > 0 {
		r.orders = cache.NewOrderRepo(r.orders, cfg.OrderCacheSize)
	}

	a.ProductUC = &usecase.ProductUC{Products: r.products}
	a.CartUC = &usecase.CartUC{Carts: r.carts, Products: a.ProductUC}
	a.OrderUC = &usecase.OrderUC{Orders: r.orders, Cart: a.CartUC, Notifier: a.notifiers()}
	a.AuthUC = &usecase.AuthUC{Users: r.users, Profiles: r.profiles, Delay: cfg.AuthDelay}
	a.ProfileUC = &usecase.ProfileUC{Profiles: r.profiles, Orders: r.orders}

	if cfg.Google.Enabled() {
		a.OAuthConfig = &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.BaseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	if cfg.Store == config.StoreMemory {
		if err := a.Seed(ctx); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.Config.Store {
	case config.StorePostgres:
		db, err := postgres.Open(a.Config.DB.ConnString())
		if err != nil {
			return err
		}
		a.DB = db
		a.repos = repos{
			products: postgres.NewProductRepo(db),
			carts:    postgres.NewCartRepo(db),
			orders:   postgres.NewOrderRepo(db),
			users:    postgres.NewUserRepo(db),
			profiles: postgres.NewProfileRepo(db),
		}
		a.closers = append(a.closers, func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	case config.StoreMongo:
		mdb, err := mongo.Connect(ctx, a.Config.Mongo.URI, a.Config.Mongo.Database)
		if err != nil {
			return err
		}
		a.Mongo = mdb
		a.repos = repos{
			products: mongo.NewProductRepo(mdb),
			carts:    mongo.NewCartRepo(mdb),
			orders:   mongo.NewOrderRepo(mdb),
			users:    mongo.NewUserRepo(mdb),
			profiles: mongo.NewProfileRepo(mdb),
		}
		a.closers = append(a.closers, mdb.Client().Disconnect)
	default:
		a.repos = repos{
			products: memory.NewProductRepo(),
			carts:    memory.NewCartRepo(),
			orders:   memory.NewOrderRepo(),
			users:    memory.NewUserRepo(),
			profiles: memory.NewProfileRepo(),
		}
	}
	return nil
}

// notifiers returns every configured order notifier, or nil when none is.
func (a *App) notifiers() domain.OrderNotifier {
	cfg := a.Config
	var out notify.Multi

	mail := notify.MailConfig{Host: cfg.SMTP.Host, Port: cfg.SMTP.Port, User: cfg.SMTP.User, Pass: cfg.SMTP.Pass, To: cfg.SMTP.To}
	if mail.Enabled() {
		out = append(out, notify.NewMailer(mail))
		log.Info().Str("to", mail.To).Msg("order email enabled")
	}
	if ids := notify.ParseChatIDs(cfg.TelegramChatIDs); cfg.TelegramToken != "" && len(ids) > 0 {
		out = append(out, &notify.Telegram{Token: cfg.TelegramToken, ChatIDs: ids})
		log.Info().Int("chats", len(ids)).Msg("telegram notifications enabled")
	}
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		pub := events.NewPublisher(brokers, cfg.Kafka.Topic)
		out = append(out, pub)
		a.closers = append(a.closers, func(context.Context) error { return pub.Close() })
		log.Info().Strs("brokers", brokers).Str("topic", cfg.Kafka.Topic).Msg("order events enabled")
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Deps{
		Products: a.ProductUC,
		Cart:     a.CartUC,
		Orders:   a.OrderUC,
		Auth:     a.AuthUC,
		Profiles: a.ProfileUC,
	}, httpserver.Options{
		SessionKey:    []byte(a.Config.SessionKey),
		AdminKey:      a.Config.AdminAPIKey,
		SecureCookies: a.Config.SecureCookies,
		OAuth:         a.OAuthConfig,
		RateLimit:     a.Config.RateLimit,
	})
}

// Migrate creates tables or indexes for the persistent stores.
func (a *App) Migrate(ctx context.Context) error {
	switch {
	case a.DB != nil:
		if err := postgres.Migrate(a.DB.WithContext(ctx)); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
	case a.Mongo != nil:
		if err := mongo.EnsureIndexes(ctx, a.Mongo); err != nil {
			return fmt.Errorf("mongo indexes: %w", err)
		}
	}
	return nil
}

// Seed upserts the bundled catalog. Creation times are spaced so every store lists the
// products in file order.
func (a *App) Seed(ctx context.Context) error {
	list, err := catalog.Products()
	if err != nil {
		return err
	}
	base := time.Now().Add(-time.Duration(len(list)) * time.Second)
	for i := range list {
		p := list[i]
		p.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := a.repos.products.Save(ctx, &p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	if _, err := a.ProductUC.Reload(ctx); err != nil {
		return err
	}
	log.Info().Int("products", len(list)).Msg("catalog seeded")
	return nil
}

// SeedIfEmpty seeds only a store without products.
func (a *App) SeedIfEmpty(ctx context.Context) error {
	list, err := a.repos.products.List(ctx)
	if err != nil {
		return err
	}
	if len(list) > 0 {
		return nil
	}
	return a.Seed(ctx)
}

func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
