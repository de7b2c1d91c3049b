package domain

import "strings"

// ResponseRule binds a topic's trigger keywords to a canned response.
type ResponseRule struct {
	Topic    string
	Keywords []string
	Response string
}

// matches reports whether any keyword occurs in the lower-cased input.
func (r ResponseRule) matches(input string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}

// FallbackResponse is returned when no rule matches.
const FallbackResponse = "I'm here to help with disaster-related questions. For this type of situation, I recommend contacting emergency services directly. You can also try asking about flood safety, earthquake procedures, emergency kits, evacuation, first aid, or type 'help' for more options."

// KeywordMatcher answers free text from an ordered rule table. The first rule
// in declaration order with a matching keyword wins.
type KeywordMatcher struct {
	rules []ResponseRule
}

// NewKeywordMatcher builds a matcher over rules. Keywords are lower-cased;
// the order of rules is kept as given.
func NewKeywordMatcher(rules []ResponseRule) *KeywordMatcher {
	normalized := make([]ResponseRule, len(rules))
	for i, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		normalized[i] = ResponseRule{Topic: r.Topic, Keywords: kws, Response: r.Response}
	}
	return &KeywordMatcher{rules: normalized}
}

// DefaultKeywordMatcher returns a matcher over the built-in preparedness topics.
func DefaultKeywordMatcher() *KeywordMatcher {
	return NewKeywordMatcher(DefaultResponseRules())
}

// Respond returns the response of the first matching rule, or FallbackResponse.
func (m *KeywordMatcher) Respond(input string) string {
	if rule, ok := m.Match(input); ok {
		return rule.Response
	}
	return FallbackResponse
}

// Match returns the first rule matching input.
func (m *KeywordMatcher) Match(input string) (ResponseRule, bool) {
	lower := strings.ToLower(input)
	for _, r := range m.rules {
		if r.matches(lower) {
			return r, true
		}
	}
	return ResponseRule{}, false
}

// Topics lists the rule topics in match order.
func (m *KeywordMatcher) Topics() []string {
	topics := make([]string, len(m.rules))
	for i, r := range m.rules {
		topics[i] = r.Topic
	}
	return topics
}

// DefaultResponseRules returns the preparedness templates in match order.
// Order matters: an input mentioning both "flood" and "fire" gets the flood answer.
func DefaultResponseRules() []ResponseRule {
	return []ResponseRule{
		{Topic: "flood", Keywords: []string{"flood"}, Response: "During a flood:\n1. Move to higher ground immediately\n2. Avoid walking or driving through flood waters\n3. Stay away from power lines and electrical wires\n4. If told to evacuate, do so immediately"},
		{Topic: "earthquake", Keywords: []string{"earthquake"}, Response: "During an earthquake:\n1. Drop, cover, and hold on\n2. If inside, stay inside and take cover under sturdy furniture\n3. If outside, move to an open area away from buildings and power lines\n4. After shaking stops, check yourself and others for injuries"},
		{Topic: "fire", Keywords: []string{"fire"}, Response: "During a fire:\n1. Get out quickly and stay out\n2. Cover your mouth and nose with a wet cloth to avoid smoke inhalation\n3. Crawl low under smoke\n4. Feel doors before opening them - if hot, find another escape route"},
		{Topic: "hurricane", Keywords: []string{"hurricane"}, Response: "During a hurricane:\n1. Evacuate if directed by authorities\n2. Otherwise, stay indoors away from windows\n3. Turn off utilities if instructed to do so\n4. Fill bathtubs and containers with water for sanitary purposes"},
		{Topic: "tornado", Keywords: []string{"tornado"}, Response: "During a tornado:\n1. Go to a basement or interior room on the lowest floor\n2. Stay away from windows\n3. Cover yourself with blankets or mattress for protection\n4. If outside, find a low-lying area and protect your head"},
		{Topic: "heatwave", Keywords: []string{"heatwave"}, Response: "During a heatwave:\n1. Stay in air-conditioned buildings as much as possible\n2. Drink plenty of fluids, even if not thirsty\n3. Wear lightweight, light-colored clothing\n4. Check on vulnerable individuals (elderly, sick, young)"},
		{Topic: "blizzard", Keywords: []string{"blizzard"}, Response: "During a blizzard:\n1. Stay indoors and avoid unnecessary travel\n2. Keep emergency supplies ready\n3. Maintain ventilation when using alternative heat sources\n4. Check on neighbors, especially the elderly"},
		{Topic: "emergency kit", Keywords: []string{"emergency kit"}, Response: "Your emergency kit should include:\n1. Water (one gallon per person per day for at least 3 days)\n2. Non-perishable food (at least 3-day supply)\n3. Battery-powered radio and extra batteries\n4. Flashlight and extra batteries\n5. First aid kit\n6. Whistle to signal for help\n7. Dust mask, plastic sheeting, and duct tape\n8. Moist towelettes, garbage bags, and plastic ties\n9. Wrench or pliers to turn off utilities\n10. Manual can opener\n11. Local maps\n12. Cell phone with chargers and backup battery"},
		{Topic: "evacuation", Keywords: []string{"evacuation"}, Response: "When evacuating:\n1. Leave immediately if authorities instruct you to do so\n2. Wear protective clothing and sturdy shoes\n3. Take your emergency kit\n4. Lock your home\n5. Use routes specified by officials\n6. Stay away from downed power lines\n7. Inform friends or family of your destination"},
		{Topic: "first aid", Keywords: []string{"first aid"}, Response: "Basic first aid tips:\n1. For bleeding: Apply direct pressure with a clean cloth\n2. For burns: Cool with water, cover with a clean cloth\n3. For fractures: Immobilize the injury, apply ice\n4. For choking: Perform the Heimlich maneuver\n5. For heart attack: Call emergency services, assist with CPR if needed\n6. Always seek professional medical help when possible"},
		{Topic: "power outage", Keywords: []string{"power outage"}, Response: "During a power outage:\n1. Keep refrigerator and freezer doors closed\n2. Use flashlights instead of candles\n3. Turn off or disconnect appliances\n4. Listen to local news for updates\n5. Have alternative charging methods for phones\n6. Keep your car fuel tank at least half full"},
		{Topic: "water safety", Keywords: []string{"water safety"}, Response: "For water safety during disasters:\n1. Store clean water (1 gallon per person per day)\n2. If advised, boil water for at least one minute before use\n3. Disinfect water with unscented household bleach if boiling isn't possible\n4. Never drink floodwater\n5. Use bottled water for preparing food when possible"},
		{Topic: "help", Keywords: []string{"help"}, Response: "I can provide information on various disaster scenarios and emergency procedures. Try asking about:\n- Specific disasters (floods, earthquakes, fires, etc.)\n- Emergency kits and supplies\n- Evacuation procedures\n- First aid\n- Safety during power outages\n- Water safety\n- Communication during emergencies\n- How to help others\n\nJust type your question, and I'll do my best to assist you."},
	}
}
