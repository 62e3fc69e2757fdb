package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Leopold1975/whiskeys_catalog/internal/pkg/config"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/api/oapi"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/services/attrservice"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/services/authservice"
	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/services/whiskeyservice"
	"github.com/Leopold1975/whiskeys_catalog/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	serv     *http.Server
	auth     AuthService
	tags     AttributeService
	places   AttributeService
	whiskeys WhiskeyService
	media    Media
	maxImage int64
	lg       logger.Logger
}

type AuthService interface {
	CreateUser(context.Context, authservice.CreateUserRequest) (string, error)
	Login(context.Context, authservice.LoginRequest) (string, error)
	Authenticate(context.Context, string) (models.Requester, error)
	Logout(context.Context, string) error
}

type AttributeService interface {
	ListAttributes(context.Context, models.Requester, attrservice.ListRequest) ([]models.Attribute, error)
	CreateAttribute(context.Context, models.Requester, attrservice.CreateRequest) (models.Attribute, error)
}

type WhiskeyService interface {
	ListWhiskeys(context.Context, models.Requester, whiskeyservice.ListRequest) ([]models.Whiskey, error)
	GetWhiskey(context.Context, models.Requester, int64) (models.WhiskeyDetail, error)
	CreateWhiskey(context.Context, models.Requester, whiskeyservice.CreateRequest) (models.Whiskey, error)
	UpdateWhiskey(ctx context.Context, requester models.Requester, id int64,
		req whiskeyservice.UpdateRequest, partial bool) (models.Whiskey, error)
	AttachImage(ctx context.Context, requester models.Requester, id int64, data []byte) (models.Whiskey, error)
}

// Media resolves stored image names to public addresses.
type Media interface {
	URL(name string) string
	Dir() string
}

type Services struct {
	Auth     AuthService
	Tags     AttributeService
	Places   AttributeService
	Whiskeys WhiskeyService
	Media    Media
}

func New(cfg config.Server, images config.Images, svc Services, lg logger.Logger) *Server {
	s := &Server{ //nolint:exhaustruct
		auth:     svc.Auth,
		tags:     svc.Tags,
		places:   svc.Places,
		whiskeys: svc.Whiskeys,
		media:    svc.Media,
		maxImage: images.MaxSize,
		lg:       lg,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{ //nolint:exhaustruct
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300, //nolint:gomnd
	}))

	if svc.Media != nil {
		prefix := strings.TrimSuffix(images.URLPrefix, "/") + "/"
		r.Handle(prefix+"*", loggingMiddleware(lg)(
			http.StripPrefix(prefix, http.FileServer(http.Dir(svc.Media.Dir())))))
	}

	h := oapi.HandlerWithOptions(s, oapi.ChiServerOptions{ //nolint:exhaustruct
		BaseURL:          cfg.BaseURL,
		BaseRouter:       r,
		Middlewares:      []oapi.MiddlewareFunc{loggingMiddleware(lg)},
		ErrorHandlerFunc: s.paramErrorHandler,
	})

	s.serv = &http.Server{ //nolint:exhaustruct
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Handler exposes the routed handler without a listener.
func (s *Server) Handler() http.Handler {
	return s.serv.Handler
}

func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
		defer cancel()

		if err := s.Shutdown(ctxS); err != nil { //nolint:contextcheck
			return fmt.Errorf("context error: %w server error %w", ctxS.Err(), err)
		}

		if !errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("context cancelled error: %w", ctx.Err())
		}

		return nil
	case err := <-errCh:
		return fmt.Errorf("listen and serve error: %w", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctxS, cancel := context.WithTimeout(ctx, s.serv.IdleTimeout)
	defer cancel()

	if err := s.serv.Shutdown(ctxS); err != nil {
		return fmt.Errorf("shutdown server error: %w", err)
	}

	return nil
}

// Register a user
// (POST /user).
func (s *Server) PostUser(w http.ResponseWriter, r *http.Request) {
	var b oapi.PostUserJSONBody

	if err := decode(r, &b); err != nil {
		s.handleError(w, err)

		return
	}

	token, err := s.auth.CreateUser(r.Context(), authservice.CreateUserRequest{
		Username: deref(b.Username),
		Password: deref(b.Password),
	})
	if err != nil {
		s.handleError(w, fmt.Errorf("create user error: %w", err))

		return
	}

	s.respond(w, http.StatusCreated, CreateUserResponse{Token: token})
}

// Obtain a token
// (POST /auth).
func (s *Server) PostAuth(w http.ResponseWriter, r *http.Request) {
	var b oapi.PostAuthJSONBody

	if err := decode(r, &b); err != nil {
		s.handleError(w, err)

		return
	}

	token, err := s.auth.Login(r.Context(), authservice.LoginRequest{
		Username: deref(b.Username),
		Password: deref(b.Password),
	})
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			err = models.NewValidationError("non_field_errors", "Unable to log in with provided credentials.")
		}

		s.handleError(w, fmt.Errorf("login error: %w", err))

		return
	}

	s.respond(w, http.StatusOK, AuthUserResponse{Token: token})
}

// Revoke the presented token
// (DELETE /auth).
func (s *Server) DeleteAuth(w http.ResponseWriter, r *http.Request, params oapi.DeleteAuthParams) {
	token, ok := bearerToken(params.Authorization)
	if !ok {
		s.handleError(w, models.ErrUnauthorized)

		return
	}

	if err := s.auth.Logout(r.Context(), token); err != nil {
		s.handleError(w, fmt.Errorf("logout error: %w", err))

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// API document
// (GET /docs).
func (s *Server) GetDocs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(oapi.Spec()) //nolint:errcheck
}

// authenticate resolves the Authorization header to the requester or
// writes 401.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request, header *string) (models.Requester, bool) {
	token, ok := bearerToken(header)
	if !ok {
		s.handleError(w, models.ErrUnauthorized)

		return models.Requester{}, false
	}

	requester, err := s.auth.Authenticate(r.Context(), token)
	if err != nil {
		s.handleError(w, fmt.Errorf("authenticate error: %w", err))

		return models.Requester{}, false
	}

	return requester, true
}

// bearerToken accepts "Bearer <token>" and "Token <token>".
func bearerToken(header *string) (string, bool) {
	if header == nil {
		return "", false
	}

	scheme, token, ok := strings.Cut(strings.TrimSpace(*header), " ")
	if !ok {
		return "", false
	}

	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

func (s *Server) respond(w http.ResponseWriter, code int, v any) {
	bts, err := json.Marshal(v)
	if err != nil {
		s.handleError(w, fmt.Errorf("encode error: %w", err))

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(bts) //nolint:errcheck
}

// decode reads a JSON body into v; an empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode error: %w", ErrBadRequest, err)
	}

	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}

	return *p
}
