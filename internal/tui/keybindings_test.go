package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"

	"github.com/berth-dev/swipe/internal/config"
	"github.com/berth-dev/swipe/internal/survey"
)

func TestKeyMap_LettersMatchParseVerdict(t *testing.T) {
	keys := NewKeyMap(config.DefaultConfig().Labels)
	tests := []struct {
		binding key.Binding
		want    survey.Verdict
	}{
		{keys.Kill, survey.Left},
		{keys.Maybe, survey.Up},
		{keys.Keep, survey.Right},
	}
	for _, tt := range tests {
		for _, k := range tt.binding.Keys() {
			v, ok := survey.ParseVerdict(k)
			if !ok {
				continue
			}
			if v != tt.want {
				t.Errorf("key %q = %v in the TUI but %v in play", k, tt.want, v)
			}
		}
	}
}

func TestKeyMap_RestartSharesNoVerdictKey(t *testing.T) {
	keys := NewKeyMap(config.DefaultConfig().Labels)
	for _, b := range []key.Binding{keys.Kill, keys.Maybe, keys.Keep} {
		for _, k := range b.Keys() {
			assert.NotContains(t, keys.Restart.Keys(), k)
		}
	}
}

func TestKeyMap_HelpUsesLabels(t *testing.T) {
	keys := NewKeyMap(config.LabelsConfig{Keep: "Yes", Kill: "No", Maybe: "Later"})
	assert.Equal(t, "Yes", keys.Keep.Help().Desc)
	assert.Equal(t, "No", keys.Kill.Help().Desc)
	assert.Equal(t, "Later", keys.Maybe.Help().Desc)
}
