package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordMatcher_Respond(t *testing.T) {
	m := DefaultKeywordMatcher()
	rules := DefaultResponseRules()
	responseFor := func(topic string) string {
		for _, r := range rules {
			if r.Topic == topic {
				return r.Response
			}
		}
		t.Fatalf("no rule for topic %q", topic)
		return ""
	}

	tests := []struct {
		name  string
		input string
		topic string
	}{
		{"exact keyword", "flood", "flood"},
		{"case insensitive", "What do I do in an EARTHQUAKE?", "earthquake"},
		{"substring inside word", "wildfire nearby", "fire"},
		{"multi word keyword", "How do I build an Emergency Kit?", "emergency kit"},
		{"first declared wins", "there is a flood and a fire", "flood"},
		{"help", "help me", "help"},
		{"power outage", "we have a power outage", "power outage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, responseFor(tt.topic), m.Respond(tt.input))
		})
	}
}

func TestKeywordMatcher_Fallback(t *testing.T) {
	m := DefaultKeywordMatcher()

	assert.Equal(t, FallbackResponse, m.Respond("what about volcanoes?"))
	assert.Equal(t, FallbackResponse, m.Respond(""))
	assert.Equal(t, FallbackResponse, m.Respond("   "))
}

func TestKeywordMatcher_DeclarationOrder(t *testing.T) {
	m := NewKeywordMatcher([]ResponseRule{
		{Topic: "earthquake", Keywords: []string{"Earthquake"}, Response: "quake"},
		{Topic: "fire", Keywords: []string{"fire"}, Response: "fire"},
	})

	assert.Equal(t, "quake", m.Respond("earthquake then fire"))
	assert.Equal(t, "quake", m.Respond("fire then earthquake"))
	assert.Equal(t, "fire", m.Respond("FIRE!"))
}

func TestKeywordMatcher_Match(t *testing.T) {
	m := DefaultKeywordMatcher()

	rule, ok := m.Match("first aid for burns")
	assert.True(t, ok)
	assert.Equal(t, "first aid", rule.Topic)

	_, ok = m.Match("volcano")
	assert.False(t, ok)
}

func TestKeywordMatcher_IgnoresBlankKeywords(t *testing.T) {
	m := NewKeywordMatcher([]ResponseRule{{Topic: "blank", Keywords: []string{"", "  "}, Response: "never"}})

	assert.Equal(t, FallbackResponse, m.Respond("anything"))
}

func TestKeywordMatcher_Topics(t *testing.T) {
	assert.Equal(t, []string{
		"flood", "earthquake", "fire", "hurricane", "tornado", "heatwave", "blizzard",
		"emergency kit", "evacuation", "first aid", "power outage", "water safety", "help",
	}, DefaultKeywordMatcher().Topics())
}
