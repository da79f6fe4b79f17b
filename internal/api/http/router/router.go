package router

import (
	"github.com/gin-gonic/gin"

	"github.com/userhub-io/userhub-server/internal/api/http/handler"
	"github.com/userhub-io/userhub-server/internal/api/http/middleware"
	"github.com/userhub-io/userhub-server/internal/logger"
	"github.com/userhub-io/userhub-server/internal/model"
)

// Router assembles the HTTP routing table: request logging and CORS on
// everything, the authentication gate on the users namespace, and an
// unauthenticated liveness endpoint.
type Router struct {
	userService    handler.UserService
	avatarService  handler.AvatarService
	verifier       model.IdentityVerifier
	contextManager model.ContextManager
	allowedOrigins []string
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	userService handler.UserService,
	avatarService handler.AvatarService,
	verifier model.IdentityVerifier,
	contextManager model.ContextManager,
	allowedOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		userService:    userService,
		avatarService:  avatarService,
		verifier:       verifier,
		contextManager: contextManager,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Register builds the gin engine with all middleware and routes.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.verifier, r.contextManager, r.logger)

	engine := gin.New()
	engine.Use(
		middleware.Recovery(r.logger),
		logging.Handle(),
		middleware.CORS(r.allowedOrigins),
	)

	engine.GET("/health", handler.Health)

	userHandler := handler.NewUser(r.userService, r.avatarService, r.contextManager, r.logger)

	users := engine.Group("/api/users")
	users.Use(authenticate.Handle())
	{
		users.POST("", userHandler.Create)
		users.GET("/:uid", userHandler.Get)
		users.PATCH("/:uid", userHandler.Update)
		users.DELETE("/:uid", userHandler.Delete)
		users.PUT("/:uid/avatar", userHandler.SetAvatar)
	}

	return engine
}
