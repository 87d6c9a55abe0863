package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/auth"
	"github.com/maqomuz/maktab/core/backend"
)

const adminTokenKey = "adminToken"

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
}

func NewClaims(conf *core.Config, identity backend.Identity) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   identity.UID,
			Audience:  "Admin",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: identity.Email,
	}
}

// GenerateToken generates a signed JWT token string representing the admin Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(adminTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextIdentity(ctx echo.Context) (backend.Identity, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return backend.Identity{}, err
	}
	return backend.Identity{UID: claims.Subject, Email: claims.Email}, nil
}

// sessionMiddleware binds the token's identity to the request context so the
// service-layer auth gates see it. The identity rides the request, not the
// shared session, so a concurrent sign-out cannot strip an in-flight request.
func sessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			identity, err := getContextIdentity(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context identity")
			}
			req := ctx.Request()
			ctx.SetRequest(req.WithContext(auth.WithIdentity(req.Context(), identity)))
			return next(ctx)
		}
	}
}
