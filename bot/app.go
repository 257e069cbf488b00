// Package bot assembles the festival registration bot: it binds the
// conversation engine, the repository and the admin tooling to the Telegram
// runtime.
package bot

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v4"

	"jeepfest-bot/core/bootstrap"
	tg "jeepfest-bot/core/telegram"
	"jeepfest-bot/core/telegram/router"
	"jeepfest-bot/core/telegram/state"
	"jeepfest-bot/core/telegram/ui"
	"jeepfest-bot/notify"
	"jeepfest-bot/registration/flow"
	"jeepfest-bot/registration/i18n"
	"jeepfest-bot/storage"
)

// App wires the registration domain to the Telegram runtime.
type App struct {
	cfg      *Config
	repo     storage.Repository
	engine   *flow.Engine
	sessions *state.Store[flow.Session]
	catalog  *i18n.Catalog
	notifier *notify.Notifier
	registry *tg.Registry
}

// New bootstraps infrastructure (logger, database, migrations) and builds the
// application graph.
func New(cfg *Config) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	fields, err := cfg.Flow.ParsedFields()
	if err != nil {
		return nil, fmt.Errorf("bot: %w", err)
	}
	strict, err := cfg.Flow.StrictPhone()
	if err != nil {
		return nil, fmt.Errorf("bot: %w", err)
	}

	repo := storage.NewPostgres(res.DB)
	app := &App{
		cfg:  cfg,
		repo: repo,
		engine: flow.New(flow.Config{
			Fields:      fields,
			Locales:     cfg.Flow.Locales,
			StrictPhone: strict,
		}, repo),
		sessions: state.NewStore(
			func(userID int64) *flow.Session {
				return &flow.Session{TgID: userID, State: flow.StateIdle}
			},
			func(s *flow.Session) bool { return s.State != flow.StateIdle },
		),
		catalog: i18n.New(i18n.Event{
			Title:        cfg.Event.Title,
			Dates:        cfg.Event.Dates,
			LocationName: cfg.Event.LocationName,
			LocationURL:  cfg.Event.LocationURL,
			FeeAmount:    cfg.Event.FeeAmount,
			CardNumber:   cfg.Event.CardNumber,
			Organizer:    cfg.Event.Organizer,
		}),
		notifier: notify.New(cfg.Telegram.AdminIDs),
	}
	app.registry = app.buildRegistry()
	return app, nil
}

var _ ui.FallbackProvider = (*App)(nil)

// UnknownText serves texts that map to no command, menu button or active
// conversation.
func (a *App) UnknownText() tele.HandlerFunc { return a.handleUnknownText }

// UnknownPhoto treats photos outside a conversation as payment receipts.
func (a *App) UnknownPhoto() tele.HandlerFunc { return a.handleReceiptPhoto }

// UnknownCallback answers stale inline buttons.
func (a *App) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		_ = c.Respond(&tele.CallbackResponse{Text: "Кнопка устарела"})
		return nil
	}
}

// InProgress reports whether a conversation is active for the user. Part of
// the router.FSM contract.
func (a *App) InProgress(userID int64) bool {
	return a.sessions.InProgress(userID)
}

// ManagerHandler feeds the current update into the user's conversation. Part
// of the router.FSM contract.
func (a *App) ManagerHandler(c tele.Context) error {
	return a.handleTurn(c)
}

// TelegramRunOptions builds the runtime wiring consumed by the generic runner.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	core := a.cfg.CoreConfig()

	routes := router.TextRoutes(a, a.registry, router.TextOptions{
		UnknownText: a.UnknownText(),
		Photo:       a.UnknownPhoto(),
	})
	routes = append(routes, router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminIDs: a.cfg.Telegram.AdminIDs,
		OnAdminReject: func(c tele.Context) error {
			return c.Send("Команда доступна только организаторам.")
		},
	})...)
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))

	return tg.RunOptions{
		Config:      core,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(core, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			a.notifier.Attach(rt.Bot, rt.Dispatcher)
			return nil
		},
	}, nil
}
