// Package config provides configuration management for jenkins-distill.
// All values are read from environment variables once at startup and are
// immutable afterwards; the resolver and MCP layers receive them explicitly
// instead of reading ambient process state.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Instance holds the connection details for one configured Jenkins instance.
// BaseURL is normalized (no trailing slash) and identifies the instance.
type Instance struct {
	BaseURL  string
	User     string
	APIToken string
}

// Credentials returns the basic-auth pair for this instance.
func (i Instance) Credentials() (user, token string) {
	return i.User, i.APIToken
}

// Registry is an ordered, read-only collection of Jenkins instances.
// The default instance (JENKINS_URL) comes first, named instances follow in
// sorted-name order so iteration is stable between runs.
type Registry struct {
	instances []Instance
	byBaseURL map[string]Instance
}

// NewRegistry builds a registry from the given instances, preserving order.
// Instances whose base URL is already registered are dropped.
func NewRegistry(instances ...Instance) Registry {
	r := Registry{byBaseURL: make(map[string]Instance, len(instances))}
	for _, inst := range instances {
		inst.BaseURL = strings.TrimRight(inst.BaseURL, "/")
		if inst.BaseURL == "" {
			continue
		}
		if _, dup := r.byBaseURL[inst.BaseURL]; dup {
			continue
		}
		r.byBaseURL[inst.BaseURL] = inst
		r.instances = append(r.instances, inst)
	}
	return r
}

// Len returns the number of configured instances.
func (r Registry) Len() int { return len(r.instances) }

// Instances returns the configured instances in registration order.
func (r Registry) Instances() []Instance {
	out := make([]Instance, len(r.instances))
	copy(out, r.instances)
	return out
}

// BaseURLs returns the configured base URLs in registration order.
func (r Registry) BaseURLs() []string {
	urls := make([]string, len(r.instances))
	for i, inst := range r.instances {
		urls[i] = inst.BaseURL
	}
	return urls
}

// Default returns the first configured instance, typically the one from the
// unprefixed JENKINS_URL variables.
func (r Registry) Default() (Instance, bool) {
	if len(r.instances) == 0 {
		return Instance{}, false
	}
	return r.instances[0], true
}

// Lookup returns the instance registered under the given base URL.
func (r Registry) Lookup(baseURL string) (Instance, bool) {
	inst, ok := r.byBaseURL[strings.TrimRight(baseURL, "/")]
	return inst, ok
}

// LoadRegistry discovers Jenkins instances from environment variables.
//
// Two formats are supported:
//  1. Default instance: JENKINS_URL, JENKINS_USER, JENKINS_API_TOKEN
//  2. Named instances: JENKINS_<NAME>_URL, JENKINS_<NAME>_USER, JENKINS_<NAME>_API_TOKEN
//
// An instance is loaded only when all three variables are present and non-empty.
func LoadRegistry() Registry {
	var instances []Instance

	if inst, ok := defaultInstance(); ok {
		instances = append(instances, inst)
	}

	names := discoverInstanceNames()
	sort.Strings(names)
	for _, name := range names {
		url := os.Getenv("JENKINS_" + name + "_URL")
		user := os.Getenv("JENKINS_" + name + "_USER")
		token := os.Getenv("JENKINS_" + name + "_API_TOKEN")
		if url != "" && user != "" && token != "" {
			instances = append(instances, Instance{BaseURL: url, User: user, APIToken: token})
		}
	}

	return NewRegistry(instances...)
}

func defaultInstance() (Instance, bool) {
	url := os.Getenv("JENKINS_URL")
	user := os.Getenv("JENKINS_USER")
	token := os.Getenv("JENKINS_API_TOKEN")
	if url == "" || user == "" || token == "" {
		return Instance{}, false
	}
	return Instance{BaseURL: url, User: user, APIToken: token}, true
}

// discoverInstanceNames extracts the <NAME> part of every JENKINS_<NAME>_URL
// variable. Multi-word names (JENKINS_TEAM_A_URL) keep their inner underscores.
func discoverInstanceNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, kv := range os.Environ() {
		key, _, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, "JENKINS_") || !strings.HasSuffix(key, "_URL") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(key, "JENKINS_"), "_URL")
		// JENKINS_URL itself is the default instance, not a named one.
		if name == "" || name == "URL" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// Settings holds process-wide tunables for fetching and analyzing logs.
type Settings struct {
	// MaxLogSize is the character threshold above which analyze tools switch
	// from returning the whole log to snippet extraction.
	MaxLogSize int

	// ContextWindow is the default number of lines kept before and after each
	// failure-indicator line.
	ContextWindow int

	HTTPTimeout        time.Duration
	HTTPConnectTimeout time.Duration
	HTTPReadTimeout    time.Duration

	ServerPort int
	ServerPath string

	// VerifySSL controls TLS certificate verification against the Jenkins
	// instances. Disable only for instances with self-signed certificates.
	VerifySSL bool

	// PostgresDSN enables the Postgres analysis-history store when set.
	PostgresDSN string

	// RedpandaBrokers enables analysis event publishing when set
	// (comma-separated broker addresses).
	RedpandaBrokers []string
}

// LoadSettings reads tunables from the environment, falling back to defaults.
func LoadSettings() Settings {
	return Settings{
		MaxLogSize:         envInt("MAX_LOG_SIZE", 250000),
		ContextWindow:      envInt("CONTEXT_WINDOW", 15),
		HTTPTimeout:        envSeconds("HTTP_TIMEOUT", 30*time.Second),
		HTTPConnectTimeout: envSeconds("HTTP_CONNECT_TIMEOUT", 10*time.Second),
		HTTPReadTimeout:    envSeconds("HTTP_READ_TIMEOUT", 120*time.Second),
		ServerPort:         envInt("SERVER_PORT", 3000),
		ServerPath:         envString("SERVER_PATH", "/mcp"),
		VerifySSL:          envBool("JENKINS_VERIFY_SSL", true),
		PostgresDSN:        os.Getenv("POSTGRES_DSN"),
		RedpandaBrokers:    envList("REDPANDA_BROKERS"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return time.Duration(secs * float64(time.Second))
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Banner returns a startup summary of the loaded configuration with secrets
// elided, mirroring what the server logs on boot.
func Banner(registry Registry, settings Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Configuration loaded:\n")
	fmt.Fprintf(&b, "  instances: %d\n", registry.Len())
	for _, inst := range registry.Instances() {
		fmt.Fprintf(&b, "    %s (user: %s)\n", inst.BaseURL, inst.User)
	}
	fmt.Fprintf(&b, "  MAX_LOG_SIZE: %d\n", settings.MaxLogSize)
	fmt.Fprintf(&b, "  CONTEXT_WINDOW: %d\n", settings.ContextWindow)
	fmt.Fprintf(&b, "  HTTP_TIMEOUT: %s\n", settings.HTTPTimeout)
	fmt.Fprintf(&b, "  HTTP_CONNECT_TIMEOUT: %s\n", settings.HTTPConnectTimeout)
	fmt.Fprintf(&b, "  HTTP_READ_TIMEOUT: %s\n", settings.HTTPReadTimeout)
	fmt.Fprintf(&b, "  SERVER_PORT: %d\n", settings.ServerPort)
	fmt.Fprintf(&b, "  SERVER_PATH: %s\n", settings.ServerPath)
	fmt.Fprintf(&b, "  JENKINS_VERIFY_SSL: %t", settings.VerifySSL)
	return b.String()
}
