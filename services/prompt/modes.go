package prompt

import (
	"fmt"

	"nursethink/models"
)

type modeComposer func(request string, difficulty models.Difficulty) string

var modeComposers = map[models.Mode]modeComposer{
	models.ModePriority:    priorityBlock,
	models.ModeDelegation:  delegationBlock,
	models.ModeTherapeutic: therapeuticBlock,
	models.ModeMixedDrill:  mixedDrillBlock,
	models.ModeQuiz:        quizBlock,
	models.ModeExplain:     explainBlock,
	models.ModeMnemonics:   mnemonicsBlock,
}

// SupportsMode reports whether mode renders through ComposeModePrompt.
func SupportsMode(mode models.Mode) bool {
	_, ok := modeComposers[mode]
	return ok
}

const (
	labelLine = "- If Label sources is ON, tag major claims as the labeling rule above describes."
	finishAE  = "- End in A-E format."
)

func insufficientLine(what string) string {
	return fmt.Sprintf("- If Notes-only is ON and notes lack %s, output %q.", what, InsufficientNotesSentinel)
}

func priorityBlock(request string, _ models.Difficulty) string {
	return fmt.Sprintf(`MODE: PRIORITY
QUESTION: %s

PRIORITY DECISION ALGORITHM (must follow in order):
1) ABCs / Oxygenation
2) Safety
3) Acute change > chronic
4) Unstable > stable
5) Assessment before intervention unless ABCs/safety threat
6) Least invasive first
7) Time-sensitive complications (post-op, OB, cardiac, neuro)

RED FLAGS (any of these automatically win priority):
- SpO2 < 90%%
- Stridor, choking, inability to speak
- Sudden chest pain + dyspnea
- New confusion or LOC change
- Active bleeding
- Signs of sepsis

INSTRUCTIONS:
- First line MUST be: "Question Type: PRIORITY"
- Identify the FIRST rule in the algorithm that applies and state it explicitly.
- Explain why this rule overrides other considerations.
- If oxygenation or airway is threatened, intervene immediately.
- If no immediate ABC/safety threat, choose assessment first.
%s
%s
%s`, request, labelLine, insufficientLine("priority rules"), finishAE)
}

func delegationBlock(request string, _ models.Difficulty) string {
	return fmt.Sprintf(`MODE: DELEGATION
QUESTION: %s

DELEGATION DECISION TREE (must follow in order):
1) Unstable or new/worsening condition? -> RN
2) Requires assessment, teaching, or evaluation? -> RN
3) Stable and predictable? -> consider LPN or UAP
4) Routine, non-invasive, non-judgment task? -> UAP
5) If unsure -> RN

SCOPE RULES:
- RN = A.T.E. (Assess initial, Teach initial, Evaluate)
- LPN/LVN = stable clients, focused data, reinforce teaching
- UAP = ADLs, routine vitals on stable clients, ambulation, I&O (no judgment)

INSTRUCTIONS:
- First line MUST be: "Question Type: DELEGATION"
- State who the task is delegated to AND why.
- Explicitly state why it cannot be delegated to the other roles.
%s
%s
%s`, request, labelLine, insufficientLine("delegation rules"), finishAE)
}

func therapeuticBlock(request string, _ models.Difficulty) string {
	return fmt.Sprintf(`MODE: THERAPEUTIC COMMUNICATION
PROMPT: %s

THERAPEUTIC DECISION HIERARCHY (must follow in order):
1) Safety (self-harm, violence, abuse) -> assess immediately
2) Acknowledge emotion before giving facts
3) Open-ended > closed-ended
4) Assessment before advice or teaching
5) Present-focused
6) Client-centered language

DO NOT CHOOSE (NCLEX traps):
- False reassurance
- Advice-giving
- "Why" questions
- Nurse-centered statements
- Changing the subject
- Premature teaching

INSTRUCTIONS:
- First line MUST be: "Question Type: THERAPEUTIC COMMUNICATION"
- Provide the BEST therapeutic response as a direct quote.
- Explain why it is therapeutic using the hierarchy.
- Explain why 1-2 alternative responses are NOT therapeutic.
%s
%s
%s`, request, labelLine, insufficientLine("therapeutic principles"), finishAE)
}

func mixedDrillBlock(request string, _ models.Difficulty) string {
	return fmt.Sprintf(`MODE: MIXED NCLEX DRILL
QUESTION: %s

INSTRUCTIONS:
- FIRST: Identify the Question Type as one of:
  PRIORITY / DELEGATION / THERAPEUTIC COMMUNICATION
- SECOND: Apply the correct decision engine for that question type.
- THIRD: State explicitly which engine you used and why.

ENGINE RULES:
- If the question involves who to see first, what to do first, or unstable vs stable -> PRIORITY engine.
- If the question asks who can perform a task or who the RN can assign -> DELEGATION engine.
- If the question asks for the nurse's best response -> THERAPEUTIC engine.

REQUIREMENTS:
- First line MUST be: "Question Type: ___ (Engine Used)"
- Do NOT blend engines; choose ONE.
%s
%s
%s`, request, labelLine, insufficientLine("rules for the identified engine"), finishAE)
}

func quizBlock(request string, difficulty models.Difficulty) string {
	return fmt.Sprintf(`MODE: QUIZ ME
TOPIC: %s
DIFFICULTY: %s

INSTRUCTIONS:
- Write 1 NCLEX-style question (or NGN-style if appropriate).
- Provide 4 options OR SATA.
- Then answer using A-E format with rationales.
- Add one simple mnemonic.
%s
%s`, request, difficulty, labelLine, insufficientLine("enough material for a question"))
}

func explainBlock(request string, _ models.Difficulty) string {
	return fmt.Sprintf(`MODE: EXPLAIN / TEACH
REQUEST: %s

INSTRUCTIONS:
- Explain using USER NOTES first.
- If notes are missing details:
  - If Notes-only is ON: output %q.
  - Otherwise label that section "General overview".
- Include a brief example of how it appears on exams.
%s
%s`, request, InsufficientNotesSentinel, labelLine, finishAE)
}

func mnemonicsBlock(request string, _ models.Difficulty) string {
	return fmt.Sprintf(`MODE: MNEMONICS / MEMORY
TOPIC: %s

INSTRUCTIONS:
- Create: (1) mnemonic, (2) quick comparison, (3) test trigger cue.
%s
%s
%s`, request, labelLine, insufficientLine("enough material on this topic"), finishAE)
}
