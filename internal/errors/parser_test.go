package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yallashop/storefront/internal/api"
	"github.com/yallashop/storefront/internal/app/model"
)

func TestParse_APISentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"network", fmt.Errorf("%w: dial refused", api.ErrNetwork), NetworkUnavailable},
		{"unauthorized", api.ErrUnauthorized, AuthUnauthorized},
		{"not found", api.ErrNotFound, ProductNotFound},
		{"bad request", api.ErrInvalidRequest, ValidationRequired},
		{"server fault", api.ErrServer, InternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Parse(tt.err)
			require.NotNil(t, info)
			assert.Equal(t, tt.code, info.Code)
		})
	}
}

func TestParse_NoRoles(t *testing.T) {
	info := Parse(model.ErrNoRoles)
	assert.Equal(t, AuthNoRole, info.Code)
}

func TestParse_PassesThroughInfo(t *testing.T) {
	original := &Info{Code: CartMergeFailed, Message: "rejected"}

	info := Parse(fmt.Errorf("merge: %w", original))
	assert.Same(t, original, info)
}

func TestParse_UnknownError(t *testing.T) {
	info := Parse(errors.New("something else"))
	assert.Equal(t, InternalError, info.Code)
	assert.Equal(t, "something else", info.Message)
}

func TestParse_Nil(t *testing.T) {
	info := Parse(nil)
	require.NotNil(t, info)
	assert.Equal(t, InternalError, info.Code)
}
