package config

// UploadConfig contains file upload configuration.
type UploadConfig struct {
	// Dir is the directory where uploaded files are stored.
	Dir string `env:"DIR" envDefault:"./uploads"`

	// MaxSizeBytes is the maximum accepted upload size in bytes.
	MaxSizeBytes int64 `env:"MAX_SIZE_BYTES" envDefault:"5242880"`

	// PublicPath is the URL path prefix uploaded files are served from.
	PublicPath string `env:"PUBLIC_PATH" envDefault:"/uploads"`
}

// Sanitize applies guardrails to upload configuration values.
func (u *UploadConfig) Sanitize() {
	if u.Dir == "" {
		u.Dir = "./uploads"
	}
	if u.MaxSizeBytes <= 0 {
		u.MaxSizeBytes = 5 << 20
	}
	if u.PublicPath == "" {
		u.PublicPath = "/uploads"
	}
}
