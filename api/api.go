package api

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arinadev/recipebook/api/auth"
	"github.com/arinadev/recipebook/api/handler"
	"github.com/arinadev/recipebook/config"
	"github.com/arinadev/recipebook/database"
	"github.com/arinadev/recipebook/web"
)

// Server is the recipebook web server.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	db        *database.Client
}

func New(cfg *config.Config, db *database.Client) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		db:        db,
	}
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupSession() {
	key := s.cfg.SessionKey
	if key == "" {
		key = uuid.NewString()
		log.Warn("no session key configured, generated a random one; sessions won't survive restarts")
	}

	store := cookie.NewStore([]byte(key))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("recipebook_session", store))
}

func (s *Server) setupRoutes() {
	s.setupSession()
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	s.ginEngine.SetHTMLTemplate(web.Templates())
	s.ginEngine.StaticFS("/static", http.FS(web.Static()))

	h := handler.New(s.db, s.cfg.PageSize)
	a := auth.New(s.db)

	s.ginEngine.GET("/", h.Index)
	s.ginEngine.GET("/search", h.Search)
	s.ginEngine.GET("/register", a.RegisterForm)
	s.ginEngine.POST("/register", a.Register)
	s.ginEngine.GET("/login", a.LoginForm)
	s.ginEngine.POST("/login", a.Login)

	protected := s.ginEngine.Group("/")
	protected.Use(auth.RequireAuth())
	protected.GET("/logout", a.Logout)

	// recipe mutations, admins only
	admin := s.ginEngine.Group("/")
	admin.Use(auth.RequireAuth(), auth.RequireAdmin())
	admin.GET("/create_recipe", h.CreateRecipeForm)
	admin.POST("/create_recipe", h.CreateRecipe)
	admin.GET("/edit_recipe/:id", h.EditRecipeForm)
	admin.POST("/edit_recipe/:id", h.EditRecipe)
	admin.POST("/delete_recipe/:id", h.DeleteRecipe)
}

// Handler exposes the underlying http handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
