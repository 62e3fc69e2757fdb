package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/config"
	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/pgtools"
	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/validation"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/api/server"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	ar "github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/attrrepo/postgres"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/imagestore/fs"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/sessioncache/redis"
	ur "github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/userrepo/postgres"
	wr "github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/repository/whiskeyrepo/postgres"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/services/attrservice"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/services/authservice"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/services/whiskeyservice"
	"github.com/Leopold1975/whiskeys_catalog/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Server interface {
	Start(context.Context) error
	Shutdown(context.Context) error
}

type WhiskeysApp struct {
	s        Server
	db       *pgxpool.Pool
	sessions redis.SessionCache
	lg       logger.Logger
	cfg      config.Config
}

func New(ctx context.Context, cfg config.Config) (WhiskeysApp, error) {
	lg, err := logger.New(cfg.Logger)
	if err != nil {
		return WhiskeysApp{}, fmt.Errorf("can't get logger error: %w", err)
	}

	if err := pgtools.ApplyMigration(ctx, cfg.PostgresDB); err != nil {
		return WhiskeysApp{}, fmt.Errorf("apply migration error: %w", err)
	}

	db, err := pgtools.Connect(ctx, cfg.PostgresDB.ConnString())
	if err != nil {
		return WhiskeysApp{}, fmt.Errorf("postgres connect error: %w", err)
	}

	sessions, err := redis.New(ctx, cfg.Sessions)
	if err != nil {
		db.Close()

		return WhiskeysApp{}, fmt.Errorf("redis session cache initializing error: %w", err)
	}

	release := func() {
		db.Close()
		sessions.Shutdown(ctx) //nolint:errcheck
	}

	images, err := fs.New(cfg.Images)
	if err != nil {
		release()

		return WhiskeysApp{}, fmt.Errorf("image store initializing error: %w", err)
	}

	tagRepo, err := ar.New(db, models.KindTag)
	if err != nil {
		release()

		return WhiskeysApp{}, fmt.Errorf("postgres tag repo initializing error: %w", err)
	}

	placeRepo, err := ar.New(db, models.KindPlace)
	if err != nil {
		release()

		return WhiskeysApp{}, fmt.Errorf("postgres place repo initializing error: %w", err)
	}

	v := validation.New()

	authService := authservice.New(ur.New(db), sessions, v, cfg.Auth)
	tagService := attrservice.New(models.KindTag, tagRepo, v, lg)
	placeService := attrservice.New(models.KindPlace, placeRepo, v, lg)
	whiskeyService := whiskeyservice.New(wr.New(db), tagRepo, placeRepo, images, v, lg)

	s := server.New(cfg.Server, cfg.Images, server.Services{
		Auth:     authService,
		Tags:     tagService,
		Places:   placeService,
		Whiskeys: whiskeyService,
		Media:    images,
	}, lg)

	return WhiskeysApp{
		s:        s,
		db:       db,
		sessions: sessions,
		lg:       lg,
		cfg:      cfg,
	}, nil
}

func (wa *WhiskeysApp) Run(ctx context.Context) {
	wa.lg.Infof("STARTED SERVER ON %s", wa.cfg.Server.Addr)

	errCh := make(chan error, 1)

	go func() {
		errCh <- wa.s.Start(ctx)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			wa.lg.Errorf("server start error: %s", err.Error())
		}
	}

	ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
	defer cancel()

	if err := wa.Stop(ctxS); err != nil { //nolint:contextcheck
		wa.lg.Errorf("server shutdown error: %s", err.Error())
	}
}

// Stop shuts the server down, then releases postgres and redis.
func (wa *WhiskeysApp) Stop(ctx context.Context) error {
	defer wa.db.Close()

	if err := wa.s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := wa.sessions.Shutdown(ctx); err != nil {
		return fmt.Errorf("session cache shutdown error: %w", err)
	}

	wa.lg.Info("Shutdowned successfully")

	return nil
}
