package config

const (
	KeyOpenAIAPIKey    = "openai_api_key"
	KeyGitHubToken     = "github_token"
	KeyPRTitle         = "pr_title"
	KeyPRNumber        = "pr_number"
	KeyRepository      = "github_repository"
	KeyGitHubAPIURL    = "github_api_url"
	KeyOpenAIModel     = "openai_model"
	KeyOpenAIBaseURL   = "openai_base_url"
	KeyOpenAIMaxTokens = "openai_max_tokens"
	KeyDiffCharLimit   = "diff_char_limit"
	KeyRequestTimeout  = "request_timeout"
	KeyDryRun          = "dry_run"
	KeyLogLevel        = "log_level"
)

// flagKeys maps command line flags onto configuration keys
var flagKeys = map[string]string{
	"title":           KeyPRTitle,
	"pr":              KeyPRNumber,
	"repo":            KeyRepository,
	"github-api-url":  KeyGitHubAPIURL,
	"model":           KeyOpenAIModel,
	"openai-base-url": KeyOpenAIBaseURL,
	"max-tokens":      KeyOpenAIMaxTokens,
	"diff-limit":      KeyDiffCharLimit,
	"timeout":         KeyRequestTimeout,
	"dry-run":         KeyDryRun,
	"log-level":       KeyLogLevel,
}
