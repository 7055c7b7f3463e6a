package services

import (
	"testing"

	"github.com/BAlenkaA/foodgram-project-react/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateComposition(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db)

	tag1 := createTag(t, db, "zavtrak")
	tag2 := createTag(t, db, "obed")
	salt := createIngredient(t, db, "salt", "g")
	flour := createIngredient(t, db, "flour", "g")

	tests := []struct {
		name        string
		tags        []uint
		ingredients []IngredientPair
		cookingTime *int
		wantCode    string
	}{
		{
			name:        "valid",
			tags:        []uint{tag1.ID, tag2.ID},
			ingredients: []IngredientPair{{ID: salt.ID, Amount: intPtr(5)}, {ID: flour.ID, Amount: intPtr(100)}},
			cookingTime: intPtr(10),
			wantCode:    "",
		},
		{
			name:        "empty tags",
			tags:        nil,
			ingredients: []IngredientPair{{ID: salt.ID, Amount: intPtr(5)}},
			cookingTime: intPtr(10),
			wantCode:    CodeEmptyTags,
		},
		{
			name:        "duplicate tags",
			tags:        []uint{tag1.ID, tag1.ID},
			ingredients: []IngredientPair{{ID: salt.ID, Amount: intPtr(5)}},
			cookingTime: intPtr(10),
			wantCode:    CodeDuplicateTag,
		},
		{
			name:        "unknown tag",
			tags:        []uint{tag1.ID, 9999},
			ingredients: []IngredientPair{{ID: salt.ID, Amount: intPtr(5)}},
			cookingTime: intPtr(10),
			wantCode:    CodeUnknownTag,
		},
		{
			name:        "empty ingredients",
			tags:        []uint{tag1.ID},
			ingredients: nil,
			cookingTime: intPtr(10),
			wantCode:    CodeEmptyIngredients,
		},
		{
			name:        "missing amount",
			tags:        []uint{tag1.ID},
			ingredients: []IngredientPair{{ID: salt.ID}},
			cookingTime: intPtr(10),
			wantCode:    CodeInvalidAmount,
		},
		{
			name:        "zero amount",
			tags:        []uint{tag1.ID},
			ingredients: []IngredientPair{{ID: salt.ID, Amount: intPtr(0)}},
			cookingTime: intPtr(10),
			wantCode:    CodeInvalidAmount,
		},
		{
			name:        "duplicate ingredients with different amounts",
			tags:        []uint{tag1.ID},
			ingredients: []IngredientPair{{ID: salt.ID, Amount: intPtr(5)}, {ID: salt.ID, Amount: intPtr(7)}},
			cookingTime: intPtr(10),
			wantCode:    CodeDuplicateIngredient,
		},
		{
			name:        "unknown ingredient",
			tags:        []uint{tag1.ID},
			ingredients: []IngredientPair{{ID: 9999, Amount: intPtr(5)}},
			cookingTime: intPtr(10),
			wantCode:    CodeUnknownIngredient,
		},
		{
			name:        "zero cooking time",
			tags:        []uint{tag1.ID},
			ingredients: []IngredientPair{{ID: salt.ID, Amount: intPtr(5)}},
			cookingTime: intPtr(0),
			wantCode:    CodeInvalidCookingTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateComposition(tt.tags, tt.ingredients, tt.cookingTime)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			se, ok := AsError(err)
			require.True(t, ok, "expected service error, got %v", err)
			assert.Equal(t, KindValidation, se.Kind)
			assert.Equal(t, tt.wantCode, se.Code)
		})
	}
}

func TestCreateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db)

	author := createUser(t, db, "author")
	tag1 := createTag(t, db, "zavtrak")
	tag2 := createTag(t, db, "obed")
	salt := createIngredient(t, db, "salt", "g")
	flour := createIngredient(t, db, "flour", "g")

	recipe, err := svc.Create(author.ID,
		RecipeAttrs{Name: strPtr("Блины"), Text: strPtr("Смешать и жарить"), Image: strPtr("media/recipes/x.png"), CookingTime: intPtr(10)},
		[]uint{tag1.ID, tag2.ID},
		[]IngredientPair{{ID: salt.ID, Amount: intPtr(5)}, {ID: flour.ID, Amount: intPtr(2)}},
	)
	require.NoError(t, err)

	got, err := svc.Get(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Блины", got.Name)
	assert.Equal(t, 10, got.CookingTime)
	assert.Equal(t, author.ID, got.AuthorID)

	gotTags := make(map[uint]bool)
	for _, rt := range got.Tags {
		gotTags[rt.TagID] = true
	}
	assert.Equal(t, map[uint]bool{tag1.ID: true, tag2.ID: true}, gotTags)

	gotAmounts := make(map[uint]int)
	for _, ia := range got.Ingredients {
		gotAmounts[ia.IngredientID] = ia.Amount
	}
	assert.Equal(t, map[uint]int{salt.ID: 5, flour.ID: 2}, gotAmounts)
}

func TestCreateRequiresCookingTime(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db)

	author := createUser(t, db, "author")
	tag := createTag(t, db, "zavtrak")
	salt := createIngredient(t, db, "salt", "g")

	_, err := svc.Create(author.ID,
		RecipeAttrs{Name: strPtr("x"), Text: strPtr("y"), Image: strPtr("z")},
		[]uint{tag.ID},
		[]IngredientPair{{ID: salt.ID, Amount: intPtr(5)}},
	)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidCookingTime, se.Code)
}

func TestReplaceSubsetRemovesResiduals(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db)

	author := createUser(t, db, "author")
	tag1 := createTag(t, db, "zavtrak")
	tag2 := createTag(t, db, "obed")
	salt := createIngredient(t, db, "salt", "g")
	flour := createIngredient(t, db, "flour", "g")

	recipe, err := svc.Create(author.ID,
		RecipeAttrs{Name: strPtr("Блины"), Text: strPtr("text"), Image: strPtr("img"), CookingTime: intPtr(10)},
		[]uint{tag1.ID, tag2.ID},
		[]IngredientPair{{ID: salt.ID, Amount: intPtr(5)}, {ID: flour.ID, Amount: intPtr(2)}},
	)
	require.NoError(t, err)

	// Оставляем только tag2 и flour с новым количеством
	updated, err := svc.Replace(recipe.ID, author.ID,
		RecipeAttrs{},
		[]uint{tag2.ID},
		[]IngredientPair{{ID: flour.ID, Amount: intPtr(7)}},
	)
	require.NoError(t, err)

	require.Len(t, updated.Tags, 1)
	assert.Equal(t, tag2.ID, updated.Tags[0].TagID)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, flour.ID, updated.Ingredients[0].IngredientID)
	assert.Equal(t, 7, updated.Ingredients[0].Amount)

	// Скалярные поля без значения в запросе не изменились
	assert.Equal(t, "Блины", updated.Name)
	assert.Equal(t, 10, updated.CookingTime)

	var junctionCount int64
	db.Model(&models.RecipeTag{}).Where("recipe_id = ?", recipe.ID).Count(&junctionCount)
	assert.EqualValues(t, 1, junctionCount)
}

func TestReplaceOnlyAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db)

	author := createUser(t, db, "author")
	stranger := createUser(t, db, "stranger")
	tag := createTag(t, db, "zavtrak")
	salt := createIngredient(t, db, "salt", "g")

	recipe, err := svc.Create(author.ID,
		RecipeAttrs{Name: strPtr("x"), Text: strPtr("y"), Image: strPtr("z"), CookingTime: intPtr(5)},
		[]uint{tag.ID},
		[]IngredientPair{{ID: salt.ID, Amount: intPtr(5)}},
	)
	require.NoError(t, err)

	_, err = svc.Replace(recipe.ID, stranger.ID,
		RecipeAttrs{},
		[]uint{tag.ID},
		[]IngredientPair{{ID: salt.ID, Amount: intPtr(5)}},
	)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindPermission, se.Kind)
	assert.Equal(t, CodeNotAuthor, se.Code)

	// Состав не пострадал
	got, err := svc.Get(recipe.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tags, 1)
}

func TestReplaceMissingRecipe(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db)
	author := createUser(t, db, "author")

	_, err := svc.Replace(9999, author.ID, RecipeAttrs{}, nil, nil)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, se.Kind)
}

func TestDeleteOnlyAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db)

	author := createUser(t, db, "author")
	stranger := createUser(t, db, "stranger")
	tag := createTag(t, db, "zavtrak")
	salt := createIngredient(t, db, "salt", "g")

	recipe, err := svc.Create(author.ID,
		RecipeAttrs{Name: strPtr("x"), Text: strPtr("y"), Image: strPtr("z"), CookingTime: intPtr(5)},
		[]uint{tag.ID},
		[]IngredientPair{{ID: salt.ID, Amount: intPtr(5)}},
	)
	require.NoError(t, err)

	err = svc.Delete(recipe.ID, stranger.ID)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindPermission, se.Kind)

	require.NoError(t, svc.Delete(recipe.ID, author.ID))
	_, err = svc.Get(recipe.ID)
	se, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, se.Kind)
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db)

	author := createUser(t, db, "author")
	other := createUser(t, db, "other")
	tag1 := createTag(t, db, "zavtrak")
	tag2 := createTag(t, db, "obed")
	salt := createIngredient(t, db, "salt", "g")

	first, err := svc.Create(author.ID,
		RecipeAttrs{Name: strPtr("first"), Text: strPtr("t"), Image: strPtr("i"), CookingTime: intPtr(5)},
		[]uint{tag1.ID},
		[]IngredientPair{{ID: salt.ID, Amount: intPtr(1)}},
	)
	require.NoError(t, err)
	_, err = svc.Create(other.ID,
		RecipeAttrs{Name: strPtr("second"), Text: strPtr("t"), Image: strPtr("i"), CookingTime: intPtr(5)},
		[]uint{tag2.ID},
		[]IngredientPair{{ID: salt.ID, Amount: intPtr(1)}},
	)
	require.NoError(t, err)

	recipes, total, err := svc.List(RecipeFilter{AuthorID: &author.ID}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, recipes, 1)
	assert.Equal(t, "first", recipes[0].Name)

	recipes, total, err = svc.List(RecipeFilter{TagSlugs: []string{"obed"}}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, recipes, 1)
	assert.Equal(t, "second", recipes[0].Name)

	require.NoError(t, db.Create(&models.Favorite{UserID: other.ID, RecipeID: first.ID}).Error)
	recipes, total, err = svc.List(RecipeFilter{FavoritedBy: &other.ID}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, recipes, 1)
	assert.Equal(t, first.ID, recipes[0].ID)
}
