package api

type ServerConfig struct {
	Debug bool

	Auth0 Auth0Config
	S3    S3Config
	DB    DBConfig
}

type Auth0Config struct {
	Domain     string
	ClientID   string
	Audience   string
	IssuerURL  string
	Algorithms []string
}

type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	Bucket          string
	PublicBaseURL   string
	MaxScanBytes    int64
}

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     int
	Database string
	Schema   string
}
