package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/libhub/internal/flagx"
	"github.com/dmitrijs2005/libhub/internal/timex"
	"github.com/tidwall/jsonc"
)

// JsonConfig is the on-disk shape of the server config file. Comments and
// trailing commas are accepted. Durations may be strings ("168h") or
// integer nanoseconds. Only fields present in the file override Config.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC      string          `json:"endpoint_addr_grpc"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	BcryptCost            *int            `json:"bcrypt_cost"`
	AllowSuperadminSignup *bool           `json:"allow_superadmin_signup"`
	CORSOrigins           []string        `json:"cors_origins"`
	LogLevel              string          `json:"log_level"`
	UploadBackend         string          `json:"upload_backend"`
	UploadDir             string          `json:"upload_dir"`
	MaxUploadSize         *int64          `json:"max_upload_size"`
	S3RootUser            string          `json:"s3_root_user"`
	S3RootPassword        string          `json:"s3_root_password"`
	S3Bucket              string          `json:"s3_bucket"`
	S3Region              string          `json:"s3_region"`
	S3BaseEndpoint        string          `json:"s3_base_endpoint"`
	S3PublicURL           string          `json:"s3_public_url"`
}

// parseJson loads the file named by -c/-config, if any, and copies the
// fields it sets into config. Unreadable or malformed files panic: a server
// started with a broken config file must not come up on defaults.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(jsonc.ToJSON(file), c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	str(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	str(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	str(&config.DatabaseDSN, c.DatabaseDSN)
	str(&config.SecretKey, c.SecretKey)
	str(&config.LogLevel, c.LogLevel)
	str(&config.UploadBackend, c.UploadBackend)
	str(&config.UploadDir, c.UploadDir)
	str(&config.S3RootUser, c.S3RootUser)
	str(&config.S3RootPassword, c.S3RootPassword)
	str(&config.S3Bucket, c.S3Bucket)
	str(&config.S3Region, c.S3Region)
	str(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	str(&config.S3PublicURL, c.S3PublicURL)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.AllowSuperadminSignup != nil {
		config.AllowSuperadminSignup = *c.AllowSuperadminSignup
	}
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.MaxUploadSize != nil {
		config.MaxUploadSize = *c.MaxUploadSize
	}
}
