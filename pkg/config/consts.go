package config

const (
	EnvPrefix = "CATALOG"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "CATALOG_APP_ENV"
	EnvPort   = "CATALOG_APP_PORT"

	EnvDBDSN  = "CATALOG_DB_DSN"
	EnvDBHost = "CATALOG_DB_HOST"
	EnvDBUser = "CATALOG_DB_USER"
	EnvDBName = "CATALOG_DB_NAME"

	EnvRedisURL = "CATALOG_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
