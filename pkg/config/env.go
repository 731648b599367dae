package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for envconfig's usage output.
const EnvPrefix = "silahan"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names shared between Load, tests, and ops tooling.
const (
	EnvAppEnv  = "SILAHAN_APP_ENV"
	EnvPort    = "SILAHAN_APP_PORT"
	EnvBaseURL = "SILAHAN_APP_BASE_URL"

	EnvDBDSN  = "SILAHAN_DB_DSN"
	EnvDBHost = "SILAHAN_DB_HOST"
	EnvDBUser = "SILAHAN_DB_USER"
	EnvDBName = "SILAHAN_DB_NAME"

	EnvRedisURL = "SILAHAN_REDIS_URL"

	EnvJWTSecret  = "SILAHAN_JWT_SECRET"
	EnvJWTIssuer  = "SILAHAN_JWT_ISSUER"
	EnvJWTExpMins = "SILAHAN_JWT_EXPIRATION_MINUTES"

	EnvUploadBaseURL   = "SILAHAN_DOCGEN_UPLOAD_BASE_URL"
	EnvApproverName    = "SILAHAN_DOCGEN_APPROVER_NAME"
	EnvRejectionPolicy = "SILAHAN_REJECTION_POLICY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
