package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "FEASTLINE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "FEASTLINE_APP_ENV"
	EnvPort      = "FEASTLINE_APP_PORT"
	EnvRedisURL  = "FEASTLINE_REDIS_URL"
	EnvJWTSecret = "FEASTLINE_JWT_SECRET"
	EnvJWTIssuer = "FEASTLINE_JWT_ISSUER"
)

const (
	EnvDBDSN  = "FEASTLINE_DB_DSN"
	EnvDBHost = "FEASTLINE_DB_HOST"
	EnvDBUser = "FEASTLINE_DB_USER"
	EnvDBName = "FEASTLINE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
