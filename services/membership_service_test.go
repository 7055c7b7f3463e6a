package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTwiceThenRemoveTwice(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db)

	user := createUser(t, db, "user")
	author := createUser(t, db, "author")
	recipe := createRecipeAt(t, db, author.ID, "pie", time.Now())

	for _, relation := range []Relation{RelationFavorite, RelationCart} {
		t.Run(string(relation), func(t *testing.T) {
			preview, err := svc.Add(user.ID, recipe.ID, relation)
			require.NoError(t, err)
			assert.Equal(t, recipe.ID, preview.ID)
			assert.Equal(t, "pie", preview.Name)
			assert.Equal(t, recipe.CookingTime, preview.CookingTime)

			_, err = svc.Add(user.ID, recipe.ID, relation)
			se, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, KindConflict, se.Kind)
			assert.Equal(t, CodeAlreadyMember, se.Code)

			require.NoError(t, svc.Remove(user.ID, recipe.ID, relation))

			err = svc.Remove(user.ID, recipe.ID, relation)
			se, ok = AsError(err)
			require.True(t, ok)
			assert.Equal(t, KindNotFound, se.Kind)
			assert.Equal(t, CodeNotMember, se.Code)
		})
	}
}

func TestMembershipMissingRecipe(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db)
	user := createUser(t, db, "user")

	_, err := svc.Add(user.ID, 9999, RelationFavorite)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, se.Kind)
	assert.Equal(t, CodeRecipeNotFound, se.Code)

	err = svc.Remove(user.ID, 9999, RelationCart)
	se, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeRecipeNotFound, se.Code)
}

func TestMembershipRelationsIndependent(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db)

	user := createUser(t, db, "user")
	author := createUser(t, db, "author")
	recipe := createRecipeAt(t, db, author.ID, "pie", time.Now())

	_, err := svc.Add(user.ID, recipe.ID, RelationFavorite)
	require.NoError(t, err)

	// Избранное не делает рецепт членом корзины
	inCart, err := svc.IsMember(user.ID, recipe.ID, RelationCart)
	require.NoError(t, err)
	assert.False(t, inCart)

	favorited, err := svc.IsMember(user.ID, recipe.ID, RelationFavorite)
	require.NoError(t, err)
	assert.True(t, favorited)
}
