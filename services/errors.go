package services

// Kind определяет класс ошибки сервисного слоя; контроллеры
// превращают его в HTTP-статус.
type Kind int

const (
	KindValidation Kind = iota
	KindPermission
	KindNotFound
	KindConflict
)

// Коды ошибок композиции рецепта и связей
const (
	CodeEmptyTags           = "empty_tags"
	CodeUnknownTag          = "unknown_tag"
	CodeDuplicateTag        = "duplicate_tag"
	CodeEmptyIngredients    = "empty_ingredients"
	CodeUnknownIngredient   = "unknown_ingredient"
	CodeDuplicateIngredient = "duplicate_ingredient"
	CodeInvalidAmount       = "invalid_amount"
	CodeInvalidCookingTime  = "invalid_cooking_time"
	CodeNotAuthor           = "not_author"
	CodeRecipeNotFound      = "recipe_not_found"
	CodeUserNotFound        = "user_not_found"
	CodeAlreadyMember       = "already_member"
	CodeNotMember           = "not_member"
	CodeSelfSubscription    = "self_subscription"
	CodeAlreadyFollowing    = "already_following"
	CodeNotFollowing        = "not_following"
	CodeInvalidLimit        = "invalid_limit"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func validationError(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func permissionError(code, message string) *Error {
	return &Error{Kind: KindPermission, Code: code, Message: message}
}

func notFoundError(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func conflictError(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

// AsError возвращает типизированную ошибку сервиса, если err ею является
func AsError(err error) (*Error, bool) {
	se, ok := err.(*Error)
	return se, ok
}
