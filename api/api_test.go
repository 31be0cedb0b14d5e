package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/arinadev/recipebook/config"
	"github.com/arinadev/recipebook/database"
)

type ServerTestSuite struct {
	suite.Suite
	server  *Server
	db      *database.Client
	cookies []*http.Cookie
}

func (s *ServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := database.New(":memory:")
	s.Require().NoError(err)
	s.db = db

	cfg := &config.Config{
		Listen:        "127.0.0.1:0",
		SessionKey:    "test-secret",
		SessionMaxAge: 3600,
		PageSize:      10,
		Database:      &config.DatabaseConfig{Path: ":memory:"},
	}

	server, err := New(cfg, db)
	s.Require().NoError(err)
	s.server = server
	s.cookies = nil
}

func (s *ServerTestSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

// do performs a request, carrying the session cookie across calls like a browser.
func (s *ServerTestSuite) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(w, req)

	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		s.cookies = cookies
	}
	return w
}

func (s *ServerTestSuite) register(username, password string, admin bool) {
	form := url.Values{"username": {username}, "password": {password}}
	if admin {
		form.Set("is_admin", "on")
	}
	w := s.do(http.MethodPost, "/register", form)
	s.Require().Equal(http.StatusFound, w.Code)
}

func (s *ServerTestSuite) login(username, password string) {
	w := s.do(http.MethodPost, "/login", url.Values{"username": {username}, "password": {password}})
	s.Require().Equal(http.StatusFound, w.Code)
	s.Require().Equal("/", w.Header().Get("Location"))
}

func (s *ServerTestSuite) recipeCount() int64 {
	_, total, err := s.db.ListRecipes(context.Background(), 1, 1)
	s.Require().NoError(err)
	return total
}

func (s *ServerTestSuite) seedRecipes(n int) {
	for i := 1; i <= n; i++ {
		err := s.db.CreateRecipe(context.Background(), &database.Recipe{
			Title:       fmt.Sprintf("Recipe %d", i),
			Ingredients: fmt.Sprintf("ingredient %d", i),
			Steps:       "cook it",
		})
		s.Require().NoError(err)
	}
}

func (s *ServerTestSuite) TestIndexEmpty() {
	w := s.do(http.MethodGet, "/", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "No recipes here yet")
}

func (s *ServerTestSuite) TestIndexPagination() {
	s.seedRecipes(15)

	w := s.do(http.MethodGet, "/?page=2", nil)
	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, "Recipe 11")
	s.Contains(body, "Recipe 15")
	s.NotContains(body, "Recipe 10")
}

func (s *ServerTestSuite) TestIndexPagePastEnd() {
	s.seedRecipes(15)

	w := s.do(http.MethodGet, "/?page=9", nil)
	s.Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "Recipe 1")
}

func (s *ServerTestSuite) TestSearchModes() {
	s.seedRecipes(3)
	err := s.db.CreateRecipe(context.Background(), &database.Recipe{
		Title:       "Steak",
		Ingredients: "beef, salt, pepper",
		Steps:       "grill",
	})
	s.Require().NoError(err)

	w := s.do(http.MethodGet, "/search?query=salt%2Cpepper&mode=all", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Steak")
	s.NotContains(w.Body.String(), "Recipe 1")

	// any mode treats the query as one literal substring
	w = s.do(http.MethodGet, "/search?query=salt%2Cpepper&mode=any", nil)
	s.Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "Steak")
}

func (s *ServerTestSuite) TestAnonymousMutationRedirectsToLogin() {
	w := s.do(http.MethodPost, "/create_recipe", url.Values{"title": {"x"}, "ingredients": {"y"}, "steps": {"z"}})
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/login", w.Header().Get("Location"))
	s.Equal(int64(0), s.recipeCount())
}

func (s *ServerTestSuite) TestNonAdminCannotCreateRecipe() {
	s.register("alice", "hunter2", false)
	s.login("alice", "hunter2")

	w := s.do(http.MethodPost, "/create_recipe", url.Values{"title": {"x"}, "ingredients": {"y"}, "steps": {"z"}})
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/", w.Header().Get("Location"))
	s.Equal(int64(0), s.recipeCount())

	// the denial is flashed on the next page
	w = s.do(http.MethodGet, "/", nil)
	s.Contains(w.Body.String(), "Access denied")
}

func (s *ServerTestSuite) TestAdminRecipeLifecycle() {
	s.register("chef", "secret", true)
	s.login("chef", "secret")

	// create
	w := s.do(http.MethodPost, "/create_recipe", url.Values{
		"title":       {"Pancakes"},
		"ingredients": {"flour, milk, eggs"},
		"steps":       {"mix and fry"},
		"photo_url":   {"http://example.com/p.jpg"},
	})
	s.Equal(http.StatusFound, w.Code)
	s.Equal(int64(1), s.recipeCount())

	recipes, _, err := s.db.ListRecipes(context.Background(), 1, 10)
	s.Require().NoError(err)
	id := recipes[0].ID

	// success flash shows up on the list
	w = s.do(http.MethodGet, "/", nil)
	s.Contains(w.Body.String(), "Recipe added successfully!")

	// edit form is pre-filled
	w = s.do(http.MethodGet, fmt.Sprintf("/edit_recipe/%d", id), nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Pancakes")

	// edit overwrites every field
	w = s.do(http.MethodPost, fmt.Sprintf("/edit_recipe/%d", id), url.Values{
		"title":       {"Crepes"},
		"ingredients": {"flour, milk, eggs, butter"},
		"steps":       {"mix and fry thin"},
		"photo_url":   {""},
	})
	s.Equal(http.StatusFound, w.Code)

	recipe, err := s.db.GetRecipeByID(context.Background(), id)
	s.Require().NoError(err)
	s.Equal("Crepes", recipe.Title)
	s.Empty(recipe.PhotoURL)

	// delete
	w = s.do(http.MethodPost, fmt.Sprintf("/delete_recipe/%d", id), nil)
	s.Equal(http.StatusFound, w.Code)
	s.Equal(int64(0), s.recipeCount())

	// deleting again is a 404
	w = s.do(http.MethodPost, fmt.Sprintf("/delete_recipe/%d", id), nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ServerTestSuite) TestEditUnknownRecipe() {
	s.register("chef", "secret", true)
	s.login("chef", "secret")
	s.seedRecipes(1)

	w := s.do(http.MethodPost, "/edit_recipe/999", url.Values{
		"title":       {"x"},
		"ingredients": {"y"},
		"steps":       {"z"},
	})
	s.Equal(http.StatusNotFound, w.Code)

	// existing recipes are unmodified
	recipes, _, err := s.db.ListRecipes(context.Background(), 1, 10)
	s.Require().NoError(err)
	s.Equal("Recipe 1", recipes[0].Title)
}

func (s *ServerTestSuite) TestEditNonNumericID() {
	s.register("chef", "secret", true)
	s.login("chef", "secret")

	w := s.do(http.MethodGet, "/edit_recipe/abc", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
