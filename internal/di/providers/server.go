package providers

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/foodgramapp/foodgram-server/internal/api"
	"github.com/foodgramapp/foodgram-server/internal/auth"
	"github.com/foodgramapp/foodgram-server/internal/config"
	"github.com/foodgramapp/foodgram-server/internal/logger"
	"github.com/foodgramapp/foodgram-server/internal/service"
)

// Version is reported in the OpenAPI document. Overridden at build time.
var Version = "dev"

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	api *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.api.Close()
	return err
}

// ProvideAPIServer provides the HTTP handler with every route registered.
func ProvideAPIServer(i do.Injector) (*api.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Catalog:   do.MustInvoke[*service.CatalogService](i),
		Users:     do.MustInvoke[*service.UserService](i),
		Recipes:   do.MustInvoke[*service.RecipeService](i),
		Relations: do.MustInvoke[*service.RelationService](i),
		Shopping:  do.MustInvoke[*service.ShoppingListService](i),
	}

	return api.NewServer(storeHandle.Store, services, tokens, api.Options{
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		WriteRateLimit:     cfg.RateLimit.WriteRPS,
		WriteBurst:         cfg.RateLimit.WriteBurst,
		Version:            Version,
	}, log.Logger), nil
}

// ProvideHTTPServer binds the listener and starts serving in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	handler := do.MustInvoke[*api.Server](i)
	log := do.MustInvoke[*logger.Logger](i)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Bind synchronously so a busy port fails startup instead of a goroutine.
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", ln.Addr().String())

	return &HTTPServerHandle{Server: srv, api: handler}, nil
}
