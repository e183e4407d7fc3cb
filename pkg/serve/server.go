package serve

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/gorilla/handlers"

	"github.com/YgNiko/openvino-prep/pkg/workspace"
)

// Run serves a workspace read-only over HTTP until ctx is cancelled.
func Run(ctx context.Context, opts *Options) error {
	logger := stdr.NewWithOptions(log.Default(), stdr.Options{LogCaller: stdr.Error})
	ctx = logr.NewContext(ctx, logger)

	ws, err := workspace.Open(workspace.DefaultWorkspaceName, opts.Workspace)
	if err != nil {
		return err
	}
	srv := &Server{Workspace: ws}
	if cache, err := ws.OpenInfoCache(); err == nil {
		srv.InfoCache = cache
		defer cache.Close()
	} else {
		logger.Error(err, "metadata cache unavailable, /info disabled")
	}

	handler := LoggingFilter(logger, srv.route())
	if opts.OIDC.Issuer != "" {
		handler, err = NewOIDCAuthFilter(ctx, opts.OIDC.Issuer, handler)
		if err != nil {
			return err
		}
	}

	server := http.Server{
		Addr:    opts.Listen,
		Handler: handler,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()
	if opts.TLS.CertFile != "" && opts.TLS.KeyFile != "" {
		logger.Info("artifact server listening", "https", opts.Listen)
		return server.ListenAndServeTLS(opts.TLS.CertFile, opts.TLS.KeyFile)
	}
	logger.Info("artifact server listening", "http", opts.Listen)
	return server.ListenAndServe()
}

func LoggingFilter(log logr.Logger, next http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, params handlers.LogFormatterParams) {
		log.Info("request",
			"method", params.Request.Method,
			"url", params.URL.String(),
			"status", params.StatusCode,
			"size", params.Size,
		)
	})
}
