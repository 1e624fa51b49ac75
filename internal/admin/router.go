// Package admin implements the read-mostly HTTP surface of SPEC_FULL.md
// §4.9: health, stats, and key introspection endpoints alongside a single
// session-gated mutating endpoint (FLUSHALL), built the way the teacher
// repo builds its Gin router (cmd/zmux-server/main.go): gin.New() plus
// explicit middleware, a ZapLogger access-log middleware, and per-handler
// error attachment via c.Error for observability.
package admin

import (
	"io"
	"net/http"
	"time"

	"github.com/corekv/corekv/internal/resp"
	"github.com/corekv/corekv/internal/server"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// newDiscardWriter gives the admin surface something to pass as the
// dispatch goroutine's reply sink: FLUSHALL's reply is OK unconditionally,
// so there's nothing worth reading back.
func newDiscardWriter() *resp.Writer { return resp.NewWriter(io.Discard) }

// Options configures the router, mirroring the teacher's dev-only CORS
// toggle and adding the admin session secret.
type Options struct {
	Dev           bool
	SessionSecret []byte
	AdminPassword string
}

// NewRouter builds the admin HTTP surface over srv.
func NewRouter(log *zap.Logger, srv *server.Server, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"127.0.0.1"})

	r.Use(gin.Recovery())
	if opts.Dev {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(secure.New(secure.Config{
			SSLRedirect:           false,
			FrameDeny:             true,
			ContentTypeNosniff:    true,
			BrowserXssFilter:      true,
			STSSeconds:            31536000,
			STSIncludeSubdomains:  true,
		}))
	}
	r.Use(sessions.Sessions("corekv_admin", cookie.NewStore(opts.SessionSecret)))
	r.Use(zapLogger(log))

	h := &handlers{log: log, srv: srv, adminPassword: opts.AdminPassword}

	r.GET("/healthz", h.healthz)
	r.GET("/stats", h.stats)
	r.GET("/debug/keys", h.debugKeys)
	r.POST("/admin/login", h.login)
	r.POST("/admin/flushall", h.requireSession, h.flushAll)

	return r
}

type handlers struct {
	log           *zap.Logger
	srv           *server.Server
	adminPassword string
}

func (h *handlers) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) stats(c *gin.Context) {
	db := h.srv.Database()
	c.JSON(http.StatusOK, gin.H{
		"keys":  db.Len(),
		"dirty": db.Dirty(),
	})
}

func (h *handlers) debugKeys(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keys": h.srv.Database().Keys()})
}

// login is the admin surface's only unauthenticated mutating-adjacent
// endpoint: it exchanges a password for a session, gating /admin/flushall.
// There is no user model (spec's non-goals exclude ACLs entirely) — a
// single shared admin password is all SPEC_FULL.md's admin surface needs.
func (h *handlers) login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if h.adminPassword == "" || req.Password != h.adminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}
	sess := sessions.Default(c)
	sess.Set("authenticated", true)
	if err := sess.Save(); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (h *handlers) requireSession(c *gin.Context) {
	sess := sessions.Default(c)
	if ok, _ := sess.Get("authenticated").(bool); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}
	c.Next()
}

// flushAll drives the same FlushAll handler a TCP client invokes via the
// FLUSHALL command, running it through the dispatch goroutine exactly like
// a client command (with a discard writer in place of a real connection)
// so no lock is needed around it.
func (h *handlers) flushAll(c *gin.Context) {
	w := newDiscardWriter()
	h.srv.Submit("admin", [][]byte{[]byte("FLUSHALL")}, w, false)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// zapLogger is the teacher's ZapLogger middleware, generalized to this
// service's routes (spec ambient-stack requirement: structured request
// logging on every HTTP surface, not just the TCP one).
func zapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
