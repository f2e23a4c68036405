package authorization

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/util"
)

type Claims struct {
	StaffID int64     `json:"staffId"`
	Role    role.Role `json:"role"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
	ttl    time.Duration
	roles  role.Config
}

func New(secret string, ttl time.Duration, roles role.Config) *Authenticator {
	return &Authenticator{secret: []byte(secret), ttl: ttl, roles: roles}
}

func (a *Authenticator) GenerateJWT(staffID int64, r role.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		StaffID: staffID,
		Role:    r,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.StaffID == 0 {
		return nil, errors.New(util.INVALID_AUTH_TOKEN)
	}
	return claims, nil
}

/*
* Read the bearer token
* Verify it and place the actor id and role in the context
 */
func (a *Authenticator) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(util.NewError(util.KindActorNotFound, util.MISSING_AUTH_TOKEN)))
			return
		}
		claims, err := a.Parse(tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("rejected token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(util.NewError(util.KindActorNotFound, util.INVALID_AUTH_TOKEN)))
			return
		}
		c.Set(util.ActorIDKey, claims.StaffID)
		c.Set(util.ActorRoleKey, claims.Role)
		c.Next()
	}
}

// Authorize rejects the request unless the actor's role holds capability.
func (a *Authenticator) Authorize(capability role.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok || !a.roles.Can(actor.Role, capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, util.FailedResponse(util.NewError(util.KindForbidden, util.USER_DOESNOT_HAVE_ACCESS)))
			return
		}
		c.Next()
	}
}

func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	id, ok := c.Get(util.ActorIDKey)
	if !ok {
		return models.Actor{}, false
	}
	r, ok := c.Get(util.ActorRoleKey)
	if !ok {
		return models.Actor{}, false
	}
	staffID, ok1 := id.(int64)
	staffRole, ok2 := r.(role.Role)
	if !ok1 || !ok2 {
		return models.Actor{}, false
	}
	return models.Actor{ID: staffID, Role: staffRole}, true
}
