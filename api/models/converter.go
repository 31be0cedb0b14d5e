package models

import (
	"github.com/samber/lo"

	"github.com/arinadev/recipebook/database"
)

// RecipeFromDatabase converts a database recipe to its view model.
func RecipeFromDatabase(recipe database.Recipe) Recipe {
	return Recipe{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Ingredients: recipe.Ingredients,
		Steps:       recipe.Steps,
		PhotoURL:    recipe.PhotoURL,
	}
}

// RecipesFromDatabase converts a list of database recipes to view models.
func RecipesFromDatabase(recipes []database.Recipe) []Recipe {
	return lo.Map(recipes, func(recipe database.Recipe, _ int) Recipe {
		return RecipeFromDatabase(recipe)
	})
}
