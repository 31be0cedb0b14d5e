package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/arinadev/recipebook/api/auth"
	"github.com/arinadev/recipebook/api/models"
	"github.com/arinadev/recipebook/database"
)

// Handler serves the recipe pages.
type Handler struct {
	db       *database.Client
	pageSize int
}

func New(db *database.Client, pageSize int) *Handler {
	return &Handler{
		db:       db,
		pageSize: pageSize,
	}
}

// Index renders the paginated recipe list.
func (h *Handler) Index(c *gin.Context) {
	page := pageParam(c)

	recipes, total, err := h.db.ListRecipes(c.Request.Context(), page, h.pageSize)
	if err != nil {
		log.Error("failed to list recipes", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"user":       auth.CurrentUser(c),
		"flashes":    auth.Flashes(c),
		"recipes":    models.RecipesFromDatabase(recipes),
		"pagination": models.NewPagination(page, h.pageSize, total),
	})
}

// Search renders recipes filtered by ingredient text.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("query")
	mode := c.DefaultQuery("mode", database.SearchModeAny)
	page := pageParam(c)

	recipes, total, err := h.db.SearchRecipes(c.Request.Context(), query, mode, page, h.pageSize)
	if err != nil {
		log.Error("failed to search recipes", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "search.html", gin.H{
		"user":       auth.CurrentUser(c),
		"flashes":    auth.Flashes(c),
		"recipes":    models.RecipesFromDatabase(recipes),
		"query":      query,
		"mode":       mode,
		"pagination": models.NewPagination(page, h.pageSize, total),
	})
}

func (h *Handler) CreateRecipeForm(c *gin.Context) {
	c.HTML(http.StatusOK, "create_recipe.html", gin.H{
		"user":    auth.CurrentUser(c),
		"flashes": auth.Flashes(c),
	})
}

func (h *Handler) CreateRecipe(c *gin.Context) {
	recipe := database.Recipe{
		Title:       c.PostForm("title"),
		Ingredients: c.PostForm("ingredients"),
		Steps:       c.PostForm("steps"),
		PhotoURL:    c.PostForm("photo_url"),
	}

	if err := h.db.CreateRecipe(c.Request.Context(), &recipe); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	auth.Flash(c, models.FlashSuccess, "Recipe added successfully!")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) EditRecipeForm(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	recipe, err := h.db.GetRecipeByID(c.Request.Context(), id)
	if err != nil {
		h.recipeError(c, err)
		return
	}

	c.HTML(http.StatusOK, "edit_recipe.html", gin.H{
		"user":    auth.CurrentUser(c),
		"flashes": auth.Flashes(c),
		"recipe":  models.RecipeFromDatabase(*recipe),
	})
}

func (h *Handler) EditRecipe(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	err = h.db.UpdateRecipe(c.Request.Context(), id,
		c.PostForm("title"),
		c.PostForm("ingredients"),
		c.PostForm("steps"),
		c.PostForm("photo_url"),
	)
	if err != nil {
		h.recipeError(c, err)
		return
	}

	auth.Flash(c, models.FlashSuccess, "Recipe updated successfully!")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	if err := h.db.DeleteRecipe(c.Request.Context(), id); err != nil {
		h.recipeError(c, err)
		return
	}

	auth.Flash(c, models.FlashSuccess, "Recipe deleted successfully!")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) recipeError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrRecipeNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.AbortWithStatus(http.StatusInternalServerError)
}

// pageParam reads the page query parameter, defaulting to the first page.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// recipeID parses the id route parameter.
func recipeID(c *gin.Context) (uint, error) {
	raw, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.ToUint(raw)
}
