package request_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadrehq/cadre/core/binder"
	"github.com/cadrehq/cadre/core/di"
	"github.com/cadrehq/cadre/core/request"
	"github.com/cadrehq/cadre/core/router"
	"github.com/cadrehq/cadre/core/state"
	"github.com/cadrehq/cadre/core/validator"
)

type createUser struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required;email"`
}

type listQuery struct {
	Page    int    `query:"page" validate:"between:1,1000"`
	Sort    string `query:"sort"`
	Include []string
}

func newCtx(t *testing.T, method, target, body string) *router.Context {
	t.Helper()
	var req = httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return router.NewContext(httptest.NewRecorder(), req, nil, nil, nil)
}

func TestBody(t *testing.T) {
	t.Parallel()

	t.Run("decodes valid json", func(t *testing.T) {
		t.Parallel()

		ctx := newCtx(t, "POST", "/users", `{"name":"Ada","email":"ada@example.com"}`)
		u, err := request.Body[createUser](ctx)
		require.NoError(t, err)
		assert.Equal(t, "Ada", u.Name)
	})

	t.Run("skips validation rules", func(t *testing.T) {
		t.Parallel()

		ctx := newCtx(t, "POST", "/users", `{"name":"Ada"}`)
		u, err := request.Body[createUser](ctx)
		require.NoError(t, err)
		assert.Empty(t, u.Email)
	})

	t.Run("malformed json is a decode error", func(t *testing.T) {
		t.Parallel()

		ctx := newCtx(t, "POST", "/users", `{"name":`)
		_, err := request.Body[createUser](ctx)
		var decodeErr *binder.DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})
}

func TestValidatedBody(t *testing.T) {
	t.Parallel()

	t.Run("passes valid payload", func(t *testing.T) {
		t.Parallel()

		ctx := newCtx(t, "POST", "/users", `{"name":"Ada","email":"ada@example.com"}`)
		u, err := request.ValidatedBody[createUser](ctx)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", u.Email)
	})

	t.Run("collects field errors", func(t *testing.T) {
		t.Parallel()

		ctx := newCtx(t, "POST", "/users", `{"email":"not-an-email"}`)
		_, err := request.ValidatedBody[createUser](ctx)
		var verrs validator.Errors
		require.ErrorAs(t, err, &verrs)
		require.Len(t, verrs, 2)
		fields := []string{verrs[0].Field, verrs[1].Field}
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "email")
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("binds typed values", func(t *testing.T) {
		t.Parallel()

		ctx := newCtx(t, "GET", "/items?page=3&sort=desc&include=a&include=b", "")
		q, err := request.Query[listQuery](ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, q.Page)
		assert.Equal(t, "desc", q.Sort)
		assert.Equal(t, []string{"a", "b"}, q.Include)
	})

	t.Run("non numeric value is a decode error", func(t *testing.T) {
		t.Parallel()

		ctx := newCtx(t, "GET", "/items?page=abc", "")
		_, err := request.Query[listQuery](ctx)
		var decodeErr *binder.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "page", decodeErr.Field)
	})
}

func TestValidatedQuery(t *testing.T) {
	t.Parallel()

	ctx := newCtx(t, "GET", "/items?page=0", "")
	_, err := request.ValidatedQuery[listQuery](ctx)
	var verrs validator.Errors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "page", verrs[0].Field)
	assert.Equal(t, "Page must be between 1 and 1000", verrs[0].Message)
}

func TestStateAndDeps(t *testing.T) {
	t.Parallel()

	type settings struct{ Env string }

	type clock interface{ Kind() string }

	t.Run("state resolves registered type", func(t *testing.T) {
		t.Parallel()

		st := state.New(settings{Env: "test"})
		req := httptest.NewRequest("GET", "/", nil)
		ctx := router.NewContext(httptest.NewRecorder(), req, nil, st, nil)

		s, err := request.State[settings](ctx)
		require.NoError(t, err)
		assert.Equal(t, "test", s.Env)
	})

	t.Run("missing state type fails", func(t *testing.T) {
		t.Parallel()

		ctx := newCtx(t, "GET", "/", "")
		_, err := request.State[settings](ctx)
		require.ErrorIs(t, err, state.ErrStateNotConfigured)
	})

	t.Run("dep resolves through container", func(t *testing.T) {
		t.Parallel()

		module := di.NewModule(
			di.Provide(func(c *di.Container) (clock, error) {
				return fixedClock{}, nil
			}),
		)
		deps, err := di.Build(module)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		ctx := router.NewContext(httptest.NewRecorder(), req, nil, nil, deps)

		c, err := request.Dep[clock](ctx)
		require.NoError(t, err)
		assert.Equal(t, "fixed", c.Kind())
	})

	t.Run("missing dep fails", func(t *testing.T) {
		t.Parallel()

		ctx := newCtx(t, "GET", "/", "")
		_, err := request.Dep[clock](ctx)
		require.ErrorIs(t, err, di.ErrDependencyNotFound)
	})
}

type fixedClock struct{}

func (fixedClock) Kind() string { return "fixed" }
