package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clintrovert/prdesc/internal/generator"
	"github.com/clintrovert/prdesc/pkg/types"
)

const DefaultTitle = "Untitled Pull Request"

// Config holds everything a run needs, read once at start-up
type Config struct {
	OpenAIAPIKey   string
	GitHubToken    string
	Title          string
	PRNumber       string
	Repository     string
	GitHubAPIURL   string
	Model          string
	OpenAIBaseURL  string
	MaxTokens      int
	DiffCharLimit  int
	RequestTimeout time.Duration
	DryRun         bool
	LogLevel       string
}

// MissingFieldsError lists every required setting that was not provided
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Fields, ", "))
}

// RegisterFlags declares the command line flags that override environment settings
func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("title", "", "pull request title (env PR_TITLE)")
	flags.String("pr", "", "pull request number (env PR_NUMBER)")
	flags.String("repo", "", "repository as owner/name (env GITHUB_REPOSITORY)")
	flags.String("github-api-url", "", "GitHub API base URL (env GITHUB_API_URL)")
	flags.String("model", "", "completion model (env OPENAI_MODEL)")
	flags.String("openai-base-url", "", "OpenAI compatible endpoint (env OPENAI_BASE_URL)")
	flags.Int("max-tokens", 0, "maximum completion tokens (env OPENAI_MAX_TOKENS)")
	flags.Int("diff-limit", 0, "diff characters included in the prompt (env DIFF_CHAR_LIMIT)")
	flags.Duration("timeout", 0, "bound on each API call, 0 disables (env REQUEST_TIMEOUT)")
	flags.Bool("dry-run", false, "log the new body instead of writing it (env DRY_RUN)")
	flags.String("log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
}

// Load reads .env, the environment and the command's flags into a Config
func Load(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	_ = godotenv.Load()
	v.AutomaticEnv()
	setDefaults(v)

	if cmd != nil {
		for flag, key := range flagKeys {
			f := cmd.Flags().Lookup(flag)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("failed to bind flag %s: %w", flag, err)
			}
		}
	}

	cfg := Config{
		OpenAIAPIKey:  v.GetString(KeyOpenAIAPIKey),
		GitHubToken:   v.GetString(KeyGitHubToken),
		Title:         v.GetString(KeyPRTitle),
		PRNumber:      strings.TrimSpace(v.GetString(KeyPRNumber)),
		Repository:    strings.TrimSpace(v.GetString(KeyRepository)),
		GitHubAPIURL:  v.GetString(KeyGitHubAPIURL),
		Model:         v.GetString(KeyOpenAIModel),
		OpenAIBaseURL: v.GetString(KeyOpenAIBaseURL),
		LogLevel:      v.GetString(KeyLogLevel),
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}

	var errs []error
	var err error
	if cfg.MaxTokens, err = nonNegativeInt(v, KeyOpenAIMaxTokens); err != nil {
		errs = append(errs, err)
	}
	if cfg.DiffCharLimit, err = nonNegativeInt(v, KeyDiffCharLimit); err != nil {
		errs = append(errs, err)
	}
	if cfg.RequestTimeout, err = cast.ToDurationE(v.Get(KeyRequestTimeout)); err != nil || cfg.RequestTimeout < 0 {
		errs = append(errs, invalidValue(KeyRequestTimeout, v.Get(KeyRequestTimeout), err))
	}
	if cfg.DryRun, err = cast.ToBoolE(v.Get(KeyDryRun)); err != nil {
		errs = append(errs, invalidValue(KeyDryRun, v.Get(KeyDryRun), err))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func nonNegativeInt(v *viper.Viper, key string) (int, error) {
	raw := v.Get(key)
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}
	n, err := cast.ToIntE(raw)
	if err != nil || n < 0 {
		return 0, invalidValue(key, v.Get(key), err)
	}
	return n, nil
}

func invalidValue(key string, value any, err error) error {
	name := strings.ToUpper(key)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, fmt.Sprint(value), err)
	}
	return fmt.Errorf("invalid %s %q: must not be negative", name, fmt.Sprint(value))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPRTitle, DefaultTitle)
	v.SetDefault(KeyGitHubAPIURL, "https://api.github.com/")
	v.SetDefault(KeyOpenAIModel, generator.DefaultModel)
	v.SetDefault(KeyOpenAIMaxTokens, generator.DefaultMaxTokens)
	v.SetDefault(KeyDiffCharLimit, generator.DefaultDiffCharLimit)
	v.SetDefault(KeyRequestTimeout, 2*time.Minute)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyLogLevel, "info")
}

// Validate checks the pull request coordinates, reporting every missing field at once
func (c Config) Validate() error {
	var missing []string
	if c.PRNumber == "" {
		missing = append(missing, "PR_NUMBER")
	}
	if c.Repository == "" {
		missing = append(missing, "GITHUB_REPOSITORY")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	var errs []error
	if _, _, err := types.ParseRepository(c.Repository); err != nil {
		errs = append(errs, err)
	}
	if n, err := strconv.Atoi(c.PRNumber); err != nil || n <= 0 {
		errs = append(errs, fmt.Errorf("invalid PR_NUMBER %q: must be a positive integer", c.PRNumber))
	}
	return errors.Join(errs...)
}

// MissingSecrets names the credentials that are unset
func (c Config) MissingSecrets() []string {
	var missing []string
	if c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.GitHubToken == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	return missing
}

// PullRequest builds the reference addressed by a validated Config
func (c Config) PullRequest() (types.PullRequestRef, error) {
	if err := c.Validate(); err != nil {
		return types.PullRequestRef{}, err
	}

	owner, name, _ := types.ParseRepository(c.Repository)
	number, _ := strconv.Atoi(c.PRNumber)

	return types.PullRequestRef{Owner: owner, Name: name, Number: number}, nil
}

// GeneratorOptions returns the completion settings
func (c Config) GeneratorOptions() generator.Options {
	return generator.Options{
		Model:         c.Model,
		BaseURL:       c.OpenAIBaseURL,
		MaxTokens:     c.MaxTokens,
		DiffCharLimit: c.DiffCharLimit,
	}
}
