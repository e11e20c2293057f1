package config

import "testing"

func TestResolveProviderPrefersExplicitSetting(t *testing.T) {
	cfg := ClassifierConfig{
		Provider: ProviderArk,
		Ark:      ArkConfig{APIKey: "key", Model: "model"},
		OpenAI:   OpenAIConfig{APIKey: "key"},
	}
	if got := cfg.ResolveProvider(); got != ProviderArk {
		t.Fatalf("expected ark, got %q", got)
	}
}

func TestResolveProviderAutoPrefersOpenAI(t *testing.T) {
	cfg := ClassifierConfig{
		Ark:    ArkConfig{APIKey: "key", Model: "model"},
		OpenAI: OpenAIConfig{APIKey: "key"},
	}
	if got := cfg.ResolveProvider(); got != ProviderOpenAI {
		t.Fatalf("expected openai, got %q", got)
	}
}

func TestResolveProviderExplicitWithoutCredentials(t *testing.T) {
	cfg := ClassifierConfig{
		Provider: ProviderOpenAI,
		Ark:      ArkConfig{APIKey: "key", Model: "model"},
	}
	if got := cfg.ResolveProvider(); got != "" {
		t.Fatalf("expected disabled, got %q", got)
	}
	if cfg.Enabled() {
		t.Fatal("expected Enabled()=false")
	}
}

func TestLoadTriageDefaults(t *testing.T) {
	triage, err := loadTriageConfig()
	if err != nil {
		t.Fatalf("loadTriageConfig err: %v", err)
	}
	if triage.HistoryLimit != 8 {
		t.Fatalf("expected default history limit 8, got %d", triage.HistoryLimit)
	}
}

func TestLoadTriageOverrides(t *testing.T) {
	t.Setenv("TRIAGE_HISTORY_LIMIT", "4")
	t.Setenv("TRIAGE_REQUEST_TIMEOUT", "5")

	triage, err := loadTriageConfig()
	if err != nil {
		t.Fatalf("loadTriageConfig err: %v", err)
	}
	if triage.HistoryLimit != 4 {
		t.Fatalf("expected history limit 4, got %d", triage.HistoryLimit)
	}
	if triage.RequestTimeout.Seconds() != 5 {
		t.Fatalf("expected 5s timeout, got %s", triage.RequestTimeout)
	}
}

func TestLoadServerConfigAddrForms(t *testing.T) {
	t.Setenv("PORT", "9090")
	server, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if server.Addr != ":9090" {
		t.Fatalf("expected :9090, got %q", server.Addr)
	}

	t.Setenv("PORT", "127.0.0.1:9090")
	server, err = loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if server.Addr != "127.0.0.1:9090" {
		t.Fatalf("expected pass-through addr, got %q", server.Addr)
	}
}
