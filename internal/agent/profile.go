package agent

import "fmt"

// Profiles are named specializations with per-profile provider and
// model defaults. They only pick defaults; any explicit provider or
// model wins.
const (
	ProfileEventManagement = "event-management"
	ProfileAnalytics       = "analytics"
	ProfileSupport         = "support"
)

const (
	defaultOpenAIModel    = "gpt-4o"
	defaultAnthropicModel = "claude-3-5-sonnet-20240620"
)

func profileDefaults(profile string) (provider string, model string, err error) {
	switch profile {
	case "", ProfileEventManagement:
		return "openai", defaultOpenAIModel, nil
	case ProfileAnalytics:
		return "openai", defaultOpenAIModel, nil
	case ProfileSupport:
		return "anthropic", defaultAnthropicModel, nil
	default:
		return "", "", fmt.Errorf("unknown agent profile %q", profile)
	}
}

func defaultModelFor(provider string) (string, error) {
	switch provider {
	case "openai":
		return defaultOpenAIModel, nil
	case "anthropic":
		return defaultAnthropicModel, nil
	default:
		return "", fmt.Errorf("unsupported LLM provider %q", provider)
	}
}
