// Package config loads the process configuration: built-in defaults, an
// optional YAML config file layered on top, and provider API keys captured
// from the environment exactly once. The resulting [Config] is immutable and
// passed by reference into the orchestration core; nothing reads ambient
// global state after startup.
package config
