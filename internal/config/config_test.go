package config_test

import (
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/rhino1998/polyglot/internal/config"
	"github.com/stretchr/testify/require"
)

func TestConfig_ValidateAcceptsZeroValue(t *testing.T) {
	r := require.New(t)
	cfg := config.Config{}
	r.NoError(cfg.Validate(slogt.New(t)))
}

func TestConfig_ValidateRejectsMalformedEndpoint(t *testing.T) {
	r := require.New(t)
	cfg := config.Config{Sandbox: config.SandboxConfig{Endpoint: "not-a-url"}}
	r.Error(cfg.Validate(slogt.New(t)))
}

func TestConfig_ValidateRequiresModelWhenReviewEndpointSet(t *testing.T) {
	r := require.New(t)
	cfg := config.Config{Review: config.ReviewConfig{Endpoint: "https://review.example/api"}}
	r.Error(cfg.Validate(slogt.New(t)))

	cfg.Review.Model = "gpt-test"
	r.NoError(cfg.Validate(slogt.New(t)))
}
