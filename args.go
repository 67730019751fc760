package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"polifund/api"
)

func ParseArgs() Args {
	// server config
	pflag.String("server-url", "0.0.0.0:8080", "")
	pflag.Bool("debug", false, "")

	// auth0 config
	pflag.String("auth0-domain", "", "")
	pflag.String("auth0-client-id", "", "")
	pflag.String("auth0-audience", "", "")
	pflag.String("auth0-issuer-url", "", "")
	pflag.StringSlice("auth0-algorithms", []string{"RS256"}, "")

	// s3 config
	pflag.String("s3-endpoint", "", "")
	pflag.String("s3-bucket", "", "")
	pflag.String("s3-public-base-url", "", "")
	pflag.String("s3-access-key-id", "", "")
	pflag.String("s3-secret-access-key", "", "")
	pflag.Int64("s3-max-scan-bytes", 10<<20, "")

	// db config
	pflag.String("db-user", "", "")
	pflag.String("db-password", "", "")
	pflag.String("db-host", "", "")
	pflag.Int("db-port", 5432, "")
	pflag.String("db-database", "", "")
	pflag.String("db-schema", "", "")

	// bind pflag to viper
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("POLIFUND")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// initial arguments
	return Args{
		ServerURL: viper.GetString("server-url"),
		ServerConfig: api.ServerConfig{
			Debug: viper.GetBool("debug"),
			Auth0: api.Auth0Config{
				Domain:     viper.GetString("auth0-domain"),
				ClientID:   viper.GetString("auth0-client-id"),
				Audience:   viper.GetString("auth0-audience"),
				IssuerURL:  viper.GetString("auth0-issuer-url"),
				Algorithms: viper.GetStringSlice("auth0-algorithms"),
			},
			S3: api.S3Config{
				Endpoint:        viper.GetString("s3-endpoint"),
				Bucket:          viper.GetString("s3-bucket"),
				PublicBaseURL:   viper.GetString("s3-public-base-url"),
				AccessKeyID:     viper.GetString("s3-access-key-id"),
				SecretAccessKey: viper.GetString("s3-secret-access-key"),
				MaxScanBytes:    viper.GetInt64("s3-max-scan-bytes"),
			},
			DB: api.DBConfig{
				User:     viper.GetString("db-user"),
				Password: viper.GetString("db-password"),
				Host:     viper.GetString("db-host"),
				Port:     viper.GetInt("db-port"),
				Database: viper.GetString("db-database"),
				Schema:   viper.GetString("db-schema"),
			},
		},
	}
}

type Args struct {
	ServerURL    string
	ServerConfig api.ServerConfig
}

func (args Args) Validate() bool {
	return args.ServerURL != "" &&
		args.ServerConfig.Auth0.Domain != "" &&
		args.ServerConfig.Auth0.Audience != "" &&
		args.ServerConfig.DB.User != "" &&
		args.ServerConfig.DB.Host != "" &&
		args.ServerConfig.DB.Database != ""
}
