package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/okian/highscores/internal/domain/types"
)

const (
	envPrefix     = "HIGHSCORES_"
	envConfigFile = "HIGHSCORES_CONFIG"
	keyScores     = "scores"
)

// Load builds a Config by layering defaults, optional file, env vars and
// overrides. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if HIGHSCORES_CONFIG is set
//  3. env (prefix HIGHSCORES_)
//  4. overrides, keyed like the koanf tags (e.g. "format")
//
// Empty string overrides are ignored so unset CLI flags do not mask lower layers.
func Load(_ context.Context, overrides map[string]any) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, loadFailed("file "+path, err)
		}
	}

	// HIGHSCORES_FORMAT -> format, HIGHSCORES_METRICS_FILE -> metrics_file.
	// HIGHSCORES_SCORES is a comma or space separated list.
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		if key == "config" {
			return "", nil
		}
		if key == keyScores {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, loadFailed("env", err)
	}

	for key, v := range overrides {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		if err := k.Set(key, v); err != nil {
			return nil, loadFailed("override "+key, err)
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, loadFailed("unmarshal", err)
	}

	if k.Exists(keyScores) {
		scores, err := types.ParseScores(scoreTokens(k.Get(keyScores)))
		if err != nil {
			return nil, loadFailed(keyScores, err)
		}
		cfg.Scores = scores
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// scoreTokens turns a scores value from any layer back into text so that
// every source is checked by types.ParseScores.
func scoreTokens(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return t
	case []uint32:
		out := make([]string, 0, len(t))
		for _, s := range t {
			out = append(out, fmt.Sprint(s))
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, fmt.Sprint(e))
		}
		return out
	default:
		return splitList(fmt.Sprint(t))
	}
}
