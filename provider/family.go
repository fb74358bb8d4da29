package provider

import "strings"

// Target is a resolved model identifier: the family that serves it and the
// model name to send to that family's API.
type Target struct {
	Family Family
	Model  string
}

type familyRule struct {
	prefix string
	family Family
	strip  bool // routing prefix, removed before the API call
}

// familyRules is checked in order. Routing prefixes come first so that
// "openrouter/openai/gpt-4o" is not mistaken for a direct OpenAI model.
var familyRules = []familyRule{
	{prefix: "openrouter/", family: FamilyOpenRouter, strip: true},
	{prefix: "ollama/", family: FamilyOllama, strip: true},
	{prefix: "claude", family: FamilyAnthropic},
	{prefix: "gpt", family: FamilyOpenAI},
	{prefix: "chatgpt", family: FamilyOpenAI},
	{prefix: "o1", family: FamilyOpenAI},
	{prefix: "o3", family: FamilyOpenAI},
	{prefix: "o4", family: FamilyOpenAI},
}

// Resolve maps a model identifier to its family. Matching is case-sensitive.
// Identifiers that match no rule, or a routing prefix with nothing after it,
// return *UnsupportedModelError.
func Resolve(modelID string) (Target, error) {
	for _, rule := range familyRules {
		if !strings.HasPrefix(modelID, rule.prefix) {
			continue
		}

		name := modelID
		if rule.strip {
			name = strings.TrimPrefix(modelID, rule.prefix)
		}
		if strings.TrimSpace(name) == "" {
			break
		}
		return Target{Family: rule.family, Model: name}, nil
	}

	return Target{}, &UnsupportedModelError{ModelID: modelID}
}

// Prefixes returns the identifier prefixes routed to f.
func Prefixes(f Family) []string {
	var out []string
	for _, rule := range familyRules {
		if rule.family == f {
			out = append(out, rule.prefix)
		}
	}
	return out
}
