// Package providers abstracts the LLM backends that produce drift verdicts
// and documentation content.
//
// Each provider implements the Generator interface over its native HTTP API:
// Anthropic messages, OpenAI chat completions, and Ollama/LM Studio through
// the OpenAI-compatible endpoint. Requests are retried with exponential
// backoff on rate limits and server errors; authentication failures are
// never retried. API keys come from the environment, never from config
// files.
package providers
