package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)
	user := createUser(t, db, "user")

	err := svc.Follow(user.ID, user.ID)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, se.Kind)
	assert.Equal(t, CodeSelfSubscription, se.Code)
}

func TestFollowTwice(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)
	a := createUser(t, db, "a")
	b := createUser(t, db, "b")

	require.NoError(t, svc.Follow(a.ID, b.ID))

	err := svc.Follow(a.ID, b.ID)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, se.Kind)
	assert.Equal(t, CodeAlreadyFollowing, se.Code)

	following, err := svc.IsFollowing(a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// Подписка не симметрична
	following, err = svc.IsFollowing(b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestUnfollow(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)
	a := createUser(t, db, "a")
	b := createUser(t, db, "b")

	err := svc.Unfollow(a.ID, b.ID)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFollowing, se.Code)

	require.NoError(t, svc.Follow(a.ID, b.ID))
	require.NoError(t, svc.Unfollow(a.ID, b.ID))

	following, err := svc.IsFollowing(a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowMissingUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)
	a := createUser(t, db, "a")

	err := svc.Follow(a.ID, 9999)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, se.Kind)
	assert.Equal(t, CodeUserNotFound, se.Code)
}

func TestRecipesOfOrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)
	author := createUser(t, db, "author")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	createRecipeAt(t, db, author.ID, "oldest", base)
	createRecipeAt(t, db, author.ID, "middle", base.Add(time.Hour))
	createRecipeAt(t, db, author.ID, "newest", base.Add(2*time.Hour))

	recipes, err := svc.RecipesOf(author.ID, nil)
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "newest", recipes[0].Name)
	assert.Equal(t, "oldest", recipes[2].Name)

	recipes, err = svc.RecipesOf(author.ID, intPtr(2))
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "newest", recipes[0].Name)
	assert.Equal(t, "middle", recipes[1].Name)

	count, err := svc.RecipeCount(author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestFollowedPage(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)
	a := createUser(t, db, "a")
	b := createUser(t, db, "b")
	c := createUser(t, db, "c")

	require.NoError(t, svc.Follow(a.ID, b.ID))
	require.NoError(t, svc.Follow(a.ID, c.ID))

	users, total, err := svc.Followed(a.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, users, 2)

	users, total, err = svc.Followed(a.ID, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, users, 1)
}

func TestParseRecipesLimit(t *testing.T) {
	limit, err := ParseRecipesLimit("")
	require.NoError(t, err)
	assert.Nil(t, limit)

	limit, err = ParseRecipesLimit("3")
	require.NoError(t, err)
	require.NotNil(t, limit)
	assert.Equal(t, 3, *limit)

	_, err = ParseRecipesLimit("abc")
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidLimit, se.Code)

	_, err = ParseRecipesLimit("-1")
	_, ok = AsError(err)
	assert.True(t, ok)
}
