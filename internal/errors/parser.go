package errors

import (
	"errors"

	"github.com/yallashop/storefront/internal/api"
	"github.com/yallashop/storefront/internal/app/model"
)

// Info is the typed rejection stored by the state containers: a stable
// code for the UI plus a human-readable message. Nothing past this type
// reaches the presentation layer.
type Info struct {
	Code    string
	Message string
}

func (i *Info) Error() string {
	return i.Message
}

// Parse converts any error raised below the container boundary into an
// Info. The API client's message is preferred when present; everything
// else falls back to a generic message per category.
func Parse(err error) *Info {
	if err == nil {
		return &Info{Code: InternalError, Message: "an unexpected error occurred"}
	}

	switch {
	case errors.Is(err, api.ErrNetwork):
		return &Info{Code: NetworkUnavailable, Message: api.Message(err)}
	case errors.Is(err, api.ErrUnauthorized):
		return &Info{Code: AuthUnauthorized, Message: api.Message(err)}
	case errors.Is(err, api.ErrNotFound):
		return &Info{Code: ProductNotFound, Message: api.Message(err)}
	case errors.Is(err, api.ErrInvalidRequest):
		return &Info{Code: ValidationRequired, Message: api.Message(err)}
	case errors.Is(err, api.ErrServer):
		return &Info{Code: InternalServerError, Message: api.Message(err)}
	case errors.Is(err, model.ErrNoRoles):
		return &Info{Code: AuthNoRole, Message: "account has no role assigned, contact support"}
	}

	var info *Info
	if errors.As(err, &info) {
		return info
	}

	return &Info{Code: InternalError, Message: err.Error()}
}
