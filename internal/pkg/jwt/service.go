package jwt

import (
	"casaraiz-backend/internal/pkg/config"
	"casaraiz-backend/internal/pkg/errs"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tokens are issued by the external auth service; this package only
// validates them and extracts the identity the engine cares about.

type Role string

const (
	RoleMember   Role = "member"
	RoleOperator Role = "operator"
)

func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleOperator
}

// Identity is the authenticated caller. HouseID is present for operators
// and scopes every operator action to their own house.
type Identity struct {
	UserID  uuid.UUID
	Role    Role
	HouseID *uuid.UUID
}

type Validator interface {
	Validate(token string) (*Identity, error)
}

var (
	ErrInvalidToken = errs.New("invalid token")
	ErrInvalidRole  = errs.New("invalid role claim")
)

type Service struct {
	secret []byte
	issuer string
}

func NewService(cfg config.JWTConfig) *Service {
	return &Service{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

func (s *Service) Validate(tokenStr string) (*Identity, error) {
	token, err := jwtlib.Parse(tokenStr, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwtlib.WithIssuer(s.issuer), jwtlib.WithExpirationRequired())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidToken)
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidToken)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidToken)
	}

	roleStr, _ := claims["role"].(string)
	role := Role(roleStr)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	identity := &Identity{UserID: userID, Role: role}
	if houseStr, ok := claims["house_id"].(string); ok && houseStr != "" {
		houseID, err := uuid.Parse(houseStr)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidToken)
		}
		identity.HouseID = &houseID
	}

	return identity, nil
}
