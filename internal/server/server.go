package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"palette-studio/internal/config"
	"palette-studio/internal/palette"
	"palette-studio/internal/ui"
)

const (
	sessionName  = "palette-studio"
	sessionKeyID = "studio"
	entryKey     = "studioEntry"

	drainTimeout = 10 * time.Second
)

// Server serves the palette page and its JSON API.
type Server struct {
	Config *config.Config

	engine  *gin.Engine
	http    *http.Server
	store   *StudioStore
	stats   *StatsTracker
	limiter *SessionLimiter

	mu sync.Mutex
	ln net.Listener
}

// NewServer builds the router and the session studio store.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg.Env == nil {
		cfg.Env = config.LoadEnv()
	}
	if gin.Mode() != gin.TestMode && !cfg.Env.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		Config:  cfg,
		stats:   NewStatsTracker(),
		limiter: NewSessionLimiter(cfg.SessionsPerMin),
	}
	s.store = NewStudioStore(cfg.Base(),
		time.Duration(cfg.SessionTTLMin)*time.Minute,
		cfg.MaxSessions,
		palette.WithRegenerateHook(func(palette.Palette) { s.stats.RecordPalette() }),
		palette.WithShadesHook(func(i int, _ palette.ShadeSet) { s.stats.RecordShades(strconv.Itoa(i)) }),
	)

	authKey, encKey, generated, err := sessionKeys(cfg.Env.SessionSecret)
	if err != nil {
		return nil, err
	}
	if generated {
		ui.LogStatus("warn", "SESSION_SECRET not set, sessions will not survive a restart")
	}
	store := cookie.NewStore(authKey, encKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionTTLMin * 60,
		HttpOnly: true,
		Secure:   cfg.Env.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), s.cors())
	r.GET("/", s.index)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/stats", s.getStats)

	api := r.Group("/api")
	api.Use(sessions.Sessions(sessionName, store), s.studioSession)
	{
		api.GET("/state", s.getState)
		api.PUT("/base", s.putBase)
		api.POST("/palette/:index", s.selectColor)
		api.POST("/shades/:row/:index", s.selectShade)
		api.DELETE("/selection", s.clearSelection)
		api.GET("/copy", s.copyText)
	}
	s.engine = r

	s.http = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Store returns the session studio store.
func (s *Server) Store() *StudioStore {
	return s.store
}

// Addr returns the bound address once Start has opened the listener.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Config.Listen)
	if err != nil {
		return errors.Wrap(err, "listen")
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	ui.LogStatus("success", "Studio listening on http://"+displayAddr(ln.Addr().String()))

	go s.store.Run(ctx)
	go s.sweepLimiter(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		ui.LogStatus("warn", "Drain timeout reached. Forcing shutdown.")
		return s.http.Close()
	}
	ui.LogStatus("success", "All requests drained. Goodbye.")
	return nil
}

func (s *Server) sweepLimiter(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.limiter.Sweep()
		}
	}
}

func displayAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || host == "::" || host == "0.0.0.0" {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		latency := time.Since(start)
		MetricRequestDuration.WithLabelValues(route).Observe(latency.Seconds())
		ui.LogRequest(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), latency, c.ClientIP())
	}
}

func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := s.Config.Env.AllowedOrigin; origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
			if origin != "*" {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// studioSession attaches the caller's studio, creating one on first use.
func (s *Server) studioSession(c *gin.Context) {
	session := sessions.Default(c)
	if id, ok := session.Get(sessionKeyID).(string); ok {
		if entry, ok := s.store.Get(id); ok {
			// Re-issue the cookie so its MaxAge slides with the store TTL.
			session.Set(sessionKeyID, id)
			if err := session.Save(); err != nil {
				ui.LogStatus("warn", "Session refresh failed: "+err.Error())
			}
			c.Set(entryKey, entry)
			c.Next()
			return
		}
	}

	if !s.limiter.Allow(c.ClientIP()) {
		MetricSessionsRejected.Inc()
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many new sessions, slow down"})
		return
	}

	id, entry, err := s.store.Create()
	if err != nil {
		ui.LogStatus("warn", "Session rejected: "+err.Error())
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "too many active sessions"})
		return
	}
	session.Set(sessionKeyID, id)
	if err := session.Save(); err != nil {
		ui.LogStatus("error", "Session save failed: "+err.Error())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}
	c.Set(entryKey, entry)
	c.Next()
}

func entryFrom(c *gin.Context) *studioEntry {
	return c.MustGet(entryKey).(*studioEntry)
}
