package prompt

import (
	"fmt"
	"strings"

	"nursethink/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type Template struct {
	Name     string `json:"name"`
	Scenario string `json:"scenario"`
}

var Templates = []Template{
	{Name: "Priority (ABCs)", Scenario: "Post-op patient with new shortness of breath and O2 sat 88%. What is the nurse's priority?"},
	{Name: "Assessment vs Intervention", Scenario: "Client reports chest tightness. Which action should the nurse take first?"},
	{Name: "Therapeutic Communication", Scenario: "Patient says: \"I'm scared my diagnosis means I'm going to die.\" Best nurse response?"},
	{Name: "Delegation", Scenario: "Which task is appropriate to delegate to the UAP on a stable med-surg unit?"},
}

// FindTemplate picks the closest template by name, case-insensitively.
func FindTemplate(query string) (Template, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Template{}, false
	}

	names := make([]string, len(Templates))
	for i, t := range Templates {
		names[i] = t.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return Template{}, false
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return Templates[best.OriginalIndex], true
}

// SimulatedResponse is the canned demo answer returned when real AI is off.
func SimulatedResponse(mode models.Mode, request string) string {
	label := strings.ToUpper(strings.TrimSpace(string(mode)))
	if label == "" {
		label = "N/A"
	}

	return fmt.Sprintf(`Question Type: %s

A) Best answer:
(DEMO) This is a simulated response.
Turn on "Use real AI" for a real NCLEX-style answer.

B) Why (nursing logic):
(DEMO) The real AI would analyze this using:
- ABCs
- Safety
- Acute vs chronic
- Unstable vs stable
- ADPIE (assess before intervene)

C) Why others are wrong:
(DEMO) Options would be ruled out if they:
- Delay safety or oxygenation
- Skip assessment
- Require RN judgment when inappropriate
- Focus on comfort before physiology

D) Memory hook/mnemonic:
(DEMO) "ABCs before TLC."

E) Test tip:
(DEMO) Look for acute change, oxygen issues, and the word "first."

--------------------------------
Your question:
%s`, label, strings.TrimSpace(request))
}

const SimulatedChatReply = "(DEMO) Turn on Use real AI to chat back-and-forth. You can also upload notes for more accurate coaching."
