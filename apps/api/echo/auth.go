package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core/auth"
	"github.com/trezcool/studytrack/core/profile"
)

const (
	contextIdentityKey = "identity"
	bearerScheme       = "Bearer"
)

// authMiddleware verifies the bearer credential of every request and stores the resulting identity in the context.
func authMiddleware(provider auth.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, ok := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return auth.ErrMissingToken
			}
			id, err := provider.Verify(ctx.Request().Context(), token)
			if err != nil {
				return errors.Wrap(err, "verifying token")
			}
			ctx.Set(contextIdentityKey, id)
			return next(ctx)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func contextIdentity(ctx echo.Context) (auth.Identity, bool) {
	id, ok := ctx.Get(contextIdentityKey).(auth.Identity)
	return id, ok
}

// tenant returns the authenticated tenant; handlers only run behind authMiddleware.
func tenant(ctx echo.Context) (string, error) {
	id, ok := contextIdentity(ctx)
	if !ok {
		return "", auth.ErrMissingToken
	}
	return id.ID, nil
}

type authApi struct {
	provider   auth.Provider
	profileSvc *profile.Service
}

func registerAuthAPI(g *echo.Group, provider auth.Provider, profileSvc *profile.Service) {
	api := authApi{provider: provider, profileSvc: profileSvc}

	g.POST("/signup", api.signUp)
	g.POST("/signin", api.signIn)
}

func (api *authApi) signUp(ctx echo.Context) error {
	var data auth.NewAccount
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAccount")
	}

	id, err := api.provider.SignUp(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "signing up")
	}
	if _, err = api.profileSvc.Create(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "creating profile")
	}
	return ctx.JSON(http.StatusOK, userResponse{User: id})
}

func (api *authApi) signIn(ctx echo.Context) error {
	var data auth.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}

	token, id, err := api.provider.SignIn(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "signing in")
	}
	return ctx.JSON(http.StatusOK, signInResponse{AccessToken: token, User: id})
}
