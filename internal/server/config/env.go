package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/libhub/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. When -env names a
// file it is loaded first; otherwise a ./.env file is loaded if present.
// Variables already set in the process environment win over the file.
//
// Recognised variables:
//
//	PORT, HTTP_ADDR, GRPC_ADDR, DATABASE_URL, JWT_SECRET, JWT_EXPIRES_HOURS,
//	BCRYPT_COST, ALLOW_SUPERADMIN_SIGNUP, CORS_ORIGIN (comma separated),
//	LOG_LEVEL, UPLOAD_BACKEND, UPLOAD_DIR, S3_ACCESS_KEY, S3_SECRET_KEY,
//	S3_BUCKET, S3_REGION, S3_ENDPOINT, S3_PUBLIC_URL
func parseEnv(cfg *Config) {
	if file := flagx.EnvFileFlags(); file != "" {
		if err := godotenv.Load(file); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.EndpointAddrHTTP = ":" + v
	}
	setString(&cfg.EndpointAddrHTTP, "HTTP_ADDR")
	setString(&cfg.EndpointAddrGRPC, "GRPC_ADDR")
	setString(&cfg.DatabaseDSN, "DATABASE_URL")
	setString(&cfg.SecretKey, "JWT_SECRET")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.UploadBackend, "UPLOAD_BACKEND")
	setString(&cfg.UploadDir, "UPLOAD_DIR")
	setString(&cfg.S3RootUser, "S3_ACCESS_KEY")
	setString(&cfg.S3RootPassword, "S3_SECRET_KEY")
	setString(&cfg.S3Bucket, "S3_BUCKET")
	setString(&cfg.S3Region, "S3_REGION")
	setString(&cfg.S3BaseEndpoint, "S3_ENDPOINT")
	setString(&cfg.S3PublicURL, "S3_PUBLIC_URL")

	if v := os.Getenv("JWT_EXPIRES_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			cfg.TokenValidityDuration = time.Duration(h) * time.Hour
		}
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BcryptCost = n
		}
	}
	if v := os.Getenv("ALLOW_SUPERADMIN_SIGNUP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AllowSuperadminSignup = b
		}
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		cfg.CORSOrigins = splitOrigins(v)
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// splitOrigins turns "a, b/,c" into ["a", "b", "c"].
func splitOrigins(s string) []string {
	var origins []string
	for _, p := range strings.Split(s, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
