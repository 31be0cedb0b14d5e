package database

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// ErrRecipeNotFound is returned when editing or deleting an unknown recipe id.
var ErrRecipeNotFound = errors.New("recipe not found")

// Search modes supported by SearchRecipes.
const (
	SearchModeAny = "any"
	SearchModeAll = "all"
)

// Recipe represents a single recipe.
type Recipe struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Ingredients string `gorm:"type:text;not null"`
	Steps       string `gorm:"type:text;not null"`
	PhotoURL    string
}

// ListRecipes returns one page of recipes ordered by insertion (id) order,
// along with the total recipe count. A page past the end yields an empty slice.
func (c *Client) ListRecipes(ctx context.Context, page, pageSize int) ([]Recipe, int64, error) {
	return c.pageRecipes(c.db.WithContext(ctx).Model(&Recipe{}), page, pageSize)
}

// SearchRecipes returns one page of recipes whose ingredients match the query,
// plus the total match count.
//
// In "any" mode the whole query is matched as a case-insensitive substring.
// In "all" mode the query is split on commas and every trimmed token must
// match somewhere in the ingredients. An empty query matches everything.
func (c *Client) SearchRecipes(ctx context.Context, query, mode string, page, pageSize int) ([]Recipe, int64, error) {
	q := c.db.WithContext(ctx).Model(&Recipe{})

	if query != "" {
		switch mode {
		case SearchModeAll:
			tokens := lo.Map(strings.Split(query, ","), func(token string, _ int) string {
				return strings.TrimSpace(token)
			})
			for _, token := range tokens {
				q = q.Where("lower(ingredients) LIKE ?", "%"+strings.ToLower(token)+"%")
			}
		case SearchModeAny:
			q = q.Where("lower(ingredients) LIKE ?", "%"+strings.ToLower(query)+"%")
		}
	}

	return c.pageRecipes(q, page, pageSize)
}

func (c *Client) pageRecipes(q *gorm.DB, page, pageSize int) ([]Recipe, int64, error) {
	// reusable session, the query runs twice (count + page window)
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Error("failed to count recipes", "error", err)
		return nil, 0, err
	}

	var recipes []Recipe
	if err := q.Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&recipes).Error; err != nil {
		log.Error("failed to list recipes", "error", err)
		return nil, 0, err
	}
	return recipes, total, nil
}

func (c *Client) CreateRecipe(ctx context.Context, recipe *Recipe) error {
	if err := c.db.WithContext(ctx).Create(recipe).Error; err != nil {
		log.Error("failed to create recipe", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetRecipeByID(ctx context.Context, id uint) (*Recipe, error) {
	var recipe Recipe
	if err := c.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		log.Error("failed to get recipe by ID", "error", err)
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe overwrites all mutable fields of the recipe unconditionally.
func (c *Client) UpdateRecipe(ctx context.Context, id uint, title, ingredients, steps, photoURL string) error {
	recipe, err := c.GetRecipeByID(ctx, id)
	if err != nil {
		return err
	}

	recipe.Title = title
	recipe.Ingredients = ingredients
	recipe.Steps = steps
	recipe.PhotoURL = photoURL

	if err := c.db.WithContext(ctx).Save(recipe).Error; err != nil {
		log.Error("failed to update recipe", "error", err)
		return err
	}
	return nil
}

// DeleteRecipe removes a recipe permanently.
func (c *Client) DeleteRecipe(ctx context.Context, id uint) error {
	recipe, err := c.GetRecipeByID(ctx, id)
	if err != nil {
		return err
	}

	if err := c.db.WithContext(ctx).Unscoped().Delete(recipe).Error; err != nil {
		log.Error("failed to delete recipe", "error", err)
		return err
	}
	return nil
}
