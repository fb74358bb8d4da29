package provider

import (
	"io"
	"testing"

	"duet/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestInitializeBackends(t *testing.T) {
	tests := []struct {
		name  string
		creds config.Credentials
		host  string
		want  []Family
	}{
		{
			name: "no keys registers only ollama",
			want: []Family{FamilyOllama},
		},
		{
			name:  "all keys",
			creds: config.Credentials{AnthropicAPIKey: "a", OpenAIAPIKey: "o", OpenRouterAPIKey: "r"},
			want:  []Family{FamilyAnthropic, FamilyOpenAI, FamilyOpenRouter, FamilyOllama},
		},
		{
			name:  "anthropic only",
			creds: config.Credentials{AnthropicAPIKey: "a"},
			want:  []Family{FamilyAnthropic, FamilyOllama},
		},
		{
			name:  "bad ollama host is skipped",
			creds: config.Credentials{OpenAIAPIKey: "o"},
			host:  "http://",
			want:  []Family{FamilyOpenAI},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Providers.OllamaHost = tt.host

			backends := InitializeBackends(cfg, &tt.creds, quietLogger())

			var got []Family
			for _, f := range Families() {
				if _, ok := backends[f]; ok {
					got = append(got, f)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
