package bootstrap

import (
	"time"

	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	tokenDuration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, err
	}
	return jwt.NewService(cfg.JWT.Secret, tokenDuration, JWTOptions(cfg.JWT)...), nil
}

// JWTOptions maps the optional claim checks from configuration.
func JWTOptions(cfg config.JWTConfig) []jwt.Option {
	opts := []jwt.Option{jwt.WithLeeway(cfg.Leeway)}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return opts
}
