package application

import (
	"log/slog"
	"time"

	"github.com/plugscrtf/marketplace-service/internal/ports"
)

type Config struct {
	ServiceName string
}

type Service struct {
	cfg          Config
	plugs        ports.PlugRepository
	products     ports.ProductRepository
	categories   ports.CategoryRepository
	users        ports.UserRepository
	userStats    ports.UserStatsRepository
	applications ports.ApplicationRepository
	settings     ports.SettingsRepository
	telegram     ports.TelegramNotifier
	bot          ports.BotNotifier
	files        ports.FileStore
	events       ports.EventPublisher
	logger       *slog.Logger
	nowFn        func() time.Time
}

type Dependencies struct {
	Config       Config
	Plugs        ports.PlugRepository
	Products     ports.ProductRepository
	Categories   ports.CategoryRepository
	Users        ports.UserRepository
	UserStats    ports.UserStatsRepository
	Applications ports.ApplicationRepository
	Settings     ports.SettingsRepository
	Telegram     ports.TelegramNotifier
	Bot          ports.BotNotifier
	Files        ports.FileStore
	Events       ports.EventPublisher
	Logger       *slog.Logger
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "marketplace-service"
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:          cfg,
		plugs:        deps.Plugs,
		products:     deps.Products,
		categories:   deps.Categories,
		users:        deps.Users,
		userStats:    deps.UserStats,
		applications: deps.Applications,
		settings:     deps.Settings,
		telegram:     deps.Telegram,
		bot:          deps.Bot,
		files:        deps.Files,
		events:       deps.Events,
		logger:       logger,
		nowFn:        func() time.Time { return time.Now().UTC() },
	}
}
