/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/app"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/buildinfo"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/config"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/controllers"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/log"
	mw "github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/middleware"
	"github.com/pkg/errors"
	"github.com/robfig/cron"
)

const (
	sessionCleanupSpec = "@every 1h"
	limiterSweepSpec   = "@every 1m"
	shutdownTimeout    = 10 * time.Second
)

// scheduleJobs registers the periodic maintenance of the app
func scheduleJobs(a *app.App) (*cron.Cron, error) {
	c := cron.New()

	err := c.AddFunc(sessionCleanupSpec, func() {
		n, err := a.DeleteExpiredSessions()
		if err != nil {
			log.ErrorWrap(err, "deleting expired sessions")
			return
		}

		log.WithFields(log.Fields{
			"count": n,
		}).Debug("deleted expired sessions")
	})
	if err != nil {
		return nil, errors.Wrap(err, "scheduling session cleanup")
	}

	err = c.AddFunc(limiterSweepSpec, func() {
		if n := mw.DefaultLimiter.Sweep(); n > 0 {
			log.WithFields(log.Fields{
				"count": n,
			}).Debug("forgot idle clients")
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "scheduling rate limiter sweep")
	}

	return c, nil
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func startCmd(args []string) {
	fs := setupFlagSet("start", "godnotes-server start")

	appEnv := fs.String("appEnv", "", "Application environment (env: APP_ENV, default: PRODUCTION)")
	port := fs.String("port", "", "Server port (env: PORT, default: 3001)")
	dbf := addDBFlags(fs)
	jwtSecret := fs.String("jwtSecret", "", "Secret to sign session tokens (env: JWT_SECRET, required)")
	sessionTTL := fs.String("sessionTTL", "", "Lifetime of a session token (env: SESSION_TTL, default: 720h)")
	disableRegistration := fs.Bool("disableRegistration", false, "Disable user registration (env: DisableRegistration, default: false)")
	logLevel := fs.String("logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)")

	fs.Parse(args)

	cfg, err := config.New(config.Params{
		AppEnv:              *appEnv,
		Port:                *port,
		EnvFile:             *dbf.envFile,
		DBPath:              *dbf.dbPath,
		DatabaseURL:         *dbf.databaseURL,
		JWTSecret:           *jwtSecret,
		SessionTTL:          *sessionTTL,
		DisableRegistration: *disableRegistration,
		LogLevel:            *logLevel,
	})
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		fs.Usage()
		os.Exit(1)
	}

	log.SetLevel(cfg.LogLevel)

	a, err := initApp(cfg)
	if err != nil {
		log.ErrorWrap(err, "initializing app")
		os.Exit(1)
	}
	defer closeDB(&a)

	handler, err := controllers.NewHandler(&a)
	if err != nil {
		panic(errors.Wrap(err, "initializing router"))
	}

	jobs, err := scheduleJobs(&a)
	if err != nil {
		log.ErrorWrap(err, "initializing jobs")
		os.Exit(1)
	}
	jobs.Start()
	defer jobs.Stop()

	log.WithFields(log.Fields{
		"version":  buildinfo.Version,
		"port":     cfg.Port,
		"postgres": cfg.DatabaseURL != "",
	}).Info("godnotes server starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := serve(ctx, srv); err != nil {
		log.ErrorWrap(err, "server failed")
		os.Exit(1)
	}
}
