package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	if c.Extraction.Workers <= 0 {
		return fmt.Errorf("extraction.workers must be > 0 (got %d)", c.Extraction.Workers)
	}
	if c.Extraction.MaxWebCandidates <= 0 {
		return fmt.Errorf("extraction.max_web_candidates must be > 0 (got %d)", c.Extraction.MaxWebCandidates)
	}
	if c.Extraction.MaxUploadBytes <= 0 {
		return fmt.Errorf("extraction.max_upload_bytes must be > 0 (got %d)", c.Extraction.MaxUploadBytes)
	}

	if c.Lookup.Timeout <= 0 {
		return fmt.Errorf("lookup.timeout must be > 0 (got %v)", c.Lookup.Timeout)
	}
	if c.Lookup.Language == "" {
		return fmt.Errorf("lookup.language must not be empty")
	}
	if c.Lookup.CacheRetention < 0 {
		return fmt.Errorf("lookup.cache_retention must be >= 0 (got %v)", c.Lookup.CacheRetention)
	}

	return nil
}
