package cmd

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/meteolog/almanac/internal/config"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Runs the fetch pipeline on an interval and serves status routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger, _ := zap.NewDevelopment()
			defer logger.Sync()
			l := logger.Named("almanac.serve")
			l.Info("starting almanac daemon!")

			c := config.Default()
			if configPath != "" {
				var err error
				c, err = config.NewAlmanacFromFile(configPath)
				if err != nil {
					return err
				}
			}

			r, err := config.InitializeRunner(c, l)
			if err != nil {
				return err
			}

			viper.SetEnvPrefix("almanac")
			viper.AutomaticEnv()
			viper.SetDefault("addr", c.Server.Addr)
			addr := viper.GetString("addr")

			interval := time.Duration(c.Server.IntervalSeconds) * time.Second

			go func() {
				r.Run(ctx)

				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						r.Run(ctx)
					}
				}
			}()

			logMiddleware := func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					start := time.Now()
					ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

					defer func() {
						logger.Info("request",
							zap.String("from", req.RemoteAddr),
							zap.String("method", req.Method),
							zap.String("path", req.URL.Path),
							zap.Int("status", ww.Status()),
							zap.Int("bytes", ww.BytesWritten()),
							zap.Duration("duration", time.Since(start)),
						)
					}()

					next.ServeHTTP(ww, req)
				})
			}

			mux := chi.NewRouter()
			mux.Use(logMiddleware)
			r.RegisterRoutes(mux)

			l.Info("starting server",
				zap.String("addr", addr),
				zap.Duration("interval", interval),
			)

			return http.ListenAndServe(addr, mux)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	return cmd
}
