package prompts

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownRecipe is returned by GetRecipe for an unregistered ID.
var ErrUnknownRecipe = errors.New("unknown recipe")

var recipes = map[RecipeID]Recipe{
	GenerateDocstringID: GenerateDocstring{},
}

// Recipes returns every registered recipe ordered by ID.
func Recipes() []Recipe {
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// GetRecipe looks up a recipe by ID.
func GetRecipe(id RecipeID) (Recipe, error) {
	r, ok := recipes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, id)
	}
	return r, nil
}

// PlaintextTemplate is a named template body with {{VAR:...}} placeholders.
type PlaintextTemplate struct {
	PromptKey string
	Body      string
}

// PlaintextTemplates returns the templates recipes render, for inspection by tooling.
func PlaintextTemplates() []PlaintextTemplate {
	return []PlaintextTemplate{
		{PromptKey: "generate_docstring", Body: docstringPromptBody},
		{PromptKey: "generate_docstring_display", Body: docstringDisplayBody},
		{PromptKey: "generate_docstring_assistant", Body: docstringAssistantBody},
	}
}
