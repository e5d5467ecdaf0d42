// Package model provides core.Generator implementations. The subpackages
// adapt real provider SDKs (Anthropic, OpenAI) behind the generator
// contract; this package holds the deterministic mock used by tests,
// examples and the default local configuration.
package model
