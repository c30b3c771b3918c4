package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/libhub/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
//	-a string      REST API bind address (e.g. ":5000")
//	-grpc string   gRPC health endpoint bind address
//	-d string      PostgreSQL DSN
//	-s string      JWT HMAC secret key
//	-t int         token validity, hours
//	-cors string   comma separated list of allowed origins
//	-log string    log level (debug, info, warn, error)
//	-upload string upload backend (disk, s3)
//	-dir string    upload directory of the disk backend
//	-u string      S3 root user
//	-p string      S3 root password
//	-b string      S3 bucket name
//	-g string      S3 region
//	-e string      S3 base endpoint
//	-public string public base URL of S3 objects
//	-allow-superadmin-signup   let /register grant superadmin (use -flag=true form)
//
// os.Args is filtered first so flags owned by other loaders (-c, -env) do
// not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-grpc", "-d", "-s", "-t", "-cors", "-log", "-upload", "-dir",
		"-u", "-p", "-b", "-g", "-e", "-public", "-allow-superadmin-signup",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the REST API")
	fs.StringVar(&config.EndpointAddrGRPC, "grpc", config.EndpointAddrGRPC, "address and port to run the gRPC health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")
	cors := fs.String("cors", strings.Join(config.CORSOrigins, ","), "allowed CORS origins")
	fs.StringVar(&config.LogLevel, "log", config.LogLevel, "log level")
	fs.StringVar(&config.UploadBackend, "upload", config.UploadBackend, "upload backend (disk or s3)")
	fs.StringVar(&config.UploadDir, "dir", config.UploadDir, "upload directory")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicURL, "public", config.S3PublicURL, "S3 public base URL")
	fs.BoolVar(&config.AllowSuperadminSignup, "allow-superadmin-signup", config.AllowSuperadminSignup, "allow superadmin self-registration")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
	config.CORSOrigins = splitOrigins(*cors)
}
