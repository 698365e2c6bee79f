package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/selleradmin/internal/flagx"
)

var knownFlags = []string{
	"-a", "-driver", "-d", "-s", "-t", "-k", "-l", "-f", "-m", "-w",
	"-u", "-p", "-b", "-g", "-e",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string       gRPC bind address (e.g., ":50051")
//	-driver string  database driver: postgres | sqlite
//	-d string       database DSN
//	-s string       JWT HMAC secret key
//	-t int          access token validity, minutes
//	-k int          bcrypt cost
//	-l string       log level
//	-f string       log format: json | text
//	-m string       master login id to bootstrap
//	-w string       master password to bootstrap
//	-u string       S3 root user
//	-p string       S3 root password
//	-b string       S3 bucket name
//	-g string       S3 region
//	-e string       S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Only the flags above are parsed (see flagx.FilterArgs), so -c/-config and
// flags owned by other components do not collide.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (postgres|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (json|text)")
	fs.StringVar(&config.MasterLoginID, "m", config.MasterLoginID, "master login id")
	fs.StringVar(&config.MasterPassword, "w", config.MasterPassword, "master password")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
}
