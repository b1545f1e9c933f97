package storage

// Config holds connection settings for the object store that keeps event logs.
// It is only read when an event pattern uses the s3:// scheme; bucket and key pattern
// come from the pattern itself.
type Config struct {
	// Endpoint is host[:port] of the S3-compatible service. A http:// or https:// prefix
	// is stripped.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID of a principal allowed to list and read event objects.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey pairs with AccessKey.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL switches the client to HTTPS.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Region of the event bucket, empty for the service default.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing, TLS handshakes and response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
