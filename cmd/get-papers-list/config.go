// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-fetcher/internal/affiliation"
	"github.com/pdiddy/pubmed-fetcher/internal/entrez"
	"github.com/pdiddy/pubmed-fetcher/internal/httputil"
	"github.com/pdiddy/pubmed-fetcher/internal/secrets"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

const defaultTool = "get-papers-list"

// setDefaults registers every config key so that AutomaticEnv can
// override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("entrez.base_url", entrez.DefaultBaseURL)
	v.SetDefault("entrez.email", "")
	v.SetDefault("entrez.api_key", "")
	v.SetDefault("entrez.tool", defaultTool)
	v.SetDefault("entrez.timeout", httputil.DefaultTimeout)
	v.SetDefault("entrez.user_agent", httputil.DefaultUserAgent)
	v.SetDefault("entrez.max_retries", httputil.DefaultMaxRetries)
	v.SetDefault("entrez.requests_per_second", 0)
	v.SetDefault("classifier.keywords_file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// loadConfig decodes the viper state into a Config and fills missing NCBI
// credentials from the secrets directory.
func loadConfig(debug bool, secretsDir string) (types.Config, error) {
	return decodeConfig(viper.GetViper(), debug, secretsDir)
}

func decodeConfig(v *viper.Viper, debug bool, secretsDir string) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if debug {
		c.Log.Level = "debug"
	}

	s, err := secrets.Load(secretsDir, nil)
	if err != nil {
		return types.Config{}, err
	}
	c.Entrez.APIKey = secretDefault(c.Entrez.APIKey, s.APIKey())
	c.Entrez.Email = secretDefault(c.Entrez.Email, s.Email())
	return c, nil
}

// secretDefault returns value if set, or the secret otherwise.
func secretDefault(value, secret string) string {
	if value != "" {
		return value
	}
	return secret
}

// newClassifier builds the affiliation classifier, honoring
// classifier.keywords_file when set.
func newClassifier(c types.ClassifierConfig) (*affiliation.Classifier, error) {
	return affiliation.FromFile(c.KeywordsFile)
}

func newEntrezClient() *entrez.Client {
	return entrez.NewClient(cfg.Entrez, log)
}
