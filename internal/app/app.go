package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	cache_query "github.com/cinemind/gateway/internal/cache/query"
	"github.com/cinemind/gateway/internal/config"
	http_auth "github.com/cinemind/gateway/internal/delivery/http/auth"
	http_chat "github.com/cinemind/gateway/internal/delivery/http/chat"
	http_init "github.com/cinemind/gateway/internal/delivery/http/init"
	http_interaction "github.com/cinemind/gateway/internal/delivery/http/interaction"
	http_auth_middleware "github.com/cinemind/gateway/internal/delivery/http/middleware/auth"
	http_movie "github.com/cinemind/gateway/internal/delivery/http/movie"
	http_search "github.com/cinemind/gateway/internal/delivery/http/search"
	ws_chat "github.com/cinemind/gateway/internal/delivery/ws/chat"
	infra_pg_init "github.com/cinemind/gateway/internal/infra/postgres/init"
	infra_postgres_search "github.com/cinemind/gateway/internal/infra/postgres/search"
	infra_chat_history "github.com/cinemind/gateway/internal/infra/redis/chat"
	infra_redis_init "github.com/cinemind/gateway/internal/infra/redis/init"
	infra_session_store "github.com/cinemind/gateway/internal/infra/redis/session"
	remote_auth "github.com/cinemind/gateway/internal/infra/remote/auth"
	remote_catalog "github.com/cinemind/gateway/internal/infra/remote/catalog"
	remote_chat "github.com/cinemind/gateway/internal/infra/remote/chat"
	remote_interaction "github.com/cinemind/gateway/internal/infra/remote/interaction"
	service_profile "github.com/cinemind/gateway/internal/service/profile"
	service_session "github.com/cinemind/gateway/internal/service/session"
	usecase_catalog "github.com/cinemind/gateway/internal/usecase/catalog"
	usecase_chat "github.com/cinemind/gateway/internal/usecase/chat"
	usecase_interaction "github.com/cinemind/gateway/internal/usecase/interaction"
)

// cacheRetention bounds how long an unused entry survives before the GC
// sweep evicts it.
const cacheRetention = 30 * time.Minute

func Go(cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	queryCache := cache_query.New(cacheRetention)
	go queryCache.Run(ctx, cfg.Cache.GCInterval)

	authClient := remote_auth.New(cfg.Upstream.AuthBaseURL)
	catalogClient := remote_catalog.New(cfg.Upstream.CatalogBaseURL)
	interactionClient := remote_interaction.New(cfg.Upstream.InteractionBaseURL)
	chatClient := remote_chat.New(cfg.Upstream.ChatBaseURL)

	sessionRepo := infra_session_store.New(redisConn, "session", cfg.Cache.SessionTTL)
	profileFetcher := service_profile.New(authClient)
	sessionStore := service_session.New(sessionRepo, profileFetcher, queryCache, cfg.Cache.ProfileTTL)
	go sessionStore.Run(ctx, cfg.Cache.ProfileTTL)

	searchRepo := infra_postgres_search.New(pgConn)
	chatHistory := infra_chat_history.New(redisConn, "chat_history", cfg.Cache.ChatHistory)

	catalogUC := usecase_catalog.New(catalogClient, searchRepo, queryCache, cfg.Cache.CatalogTTL)
	interactionUC := usecase_interaction.New(interactionClient, catalogUC, queryCache, cfg.Cache.SavedTTL)
	chatUC := usecase_chat.New(chatClient, chatHistory)

	sessionMiddleware := http_auth_middleware.New(sessionStore)

	hub := ws_chat.NewHub(chatUC)
	go hub.Run(ctx)

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_auth.New(authClient, sessionStore, sessionMiddleware, cfg.Cache.FlagMaxAge))
	controllerPool.Add(http_movie.New(catalogUC))
	controllerPool.Add(http_interaction.New(interactionUC, sessionStore, sessionMiddleware))
	controllerPool.Add(http_chat.New(chatUC, sessionMiddleware))
	controllerPool.Add(http_search.New(catalogUC))
	controllerPool.Add(ws_chat.NewController(hub, sessionMiddleware))

	controllerPool.Register()
	controllerPool.RunAll(ctx, cfg.HTTP.Port)
}
