package storage

import "time"

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	URLExpiry time.Duration
}

// Enabled reports whether snapshot export is configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}
