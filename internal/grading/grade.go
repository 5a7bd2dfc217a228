package grading

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Verdict is the tri-state outcome of grading a single block.
type Verdict int

const (
	// VerdictUnknown means the block could not be auto-graded: either the
	// type requires human judgment or the content was malformed.
	VerdictUnknown Verdict = iota
	VerdictIncorrect
	VerdictCorrect
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	}
	return "unknown"
}

// Bool maps the verdict onto the nullable is_correct column.
func (v Verdict) Bool() *bool {
	switch v {
	case VerdictCorrect:
		b := true
		return &b
	case VerdictIncorrect:
		b := false
		return &b
	}
	return nil
}

// DefectError reports authoring content that did not match its block type's
// schema. The verdict still degrades to VerdictUnknown so a broken block
// never fails the whole submission, but callers can log the defect.
type DefectError struct {
	BlockType BlockType
	Reason    string
}

func (e *DefectError) Error() string {
	return fmt.Sprintf("malformed %s content: %s", e.BlockType, e.Reason)
}

func defect(t BlockType, reason string) (Verdict, error) {
	return VerdictUnknown, &DefectError{BlockType: t, Reason: reason}
}

// Grade computes the verdict for a submitted answer against a block's stored
// content. It never panics and never returns a non-defect error: shape
// problems in the answer yield VerdictIncorrect per the block type's rules,
// shape problems in the content yield VerdictUnknown plus a DefectError, and
// block types outside the auto-gradable set yield VerdictUnknown with no
// error.
func Grade(blockType BlockType, content, answer json.RawMessage) (Verdict, error) {
	switch blockType {
	case BlockFillGaps:
		return gradeFillGaps(content, answer)
	case BlockTest:
		return gradeTest(content, answer)
	case BlockTrueFalse:
		return gradeTrueFalse(content, answer)
	case BlockWordOrder:
		return gradeWordOrder(content, answer)
	case BlockMatching:
		return gradeMatching(content, answer)
	case BlockImageChoice:
		return gradeImageChoice(content, answer)
	case BlockEssay, BlockFlashcards,
		BlockText, BlockImage, BlockAudio, BlockVideo, BlockDivider:
		return VerdictUnknown, nil
	default:
		// Unrecognized type, most likely newer content than this build.
		return VerdictUnknown, nil
	}
}

// normalize is the comparison form for free-text answers: case-insensitive
// and tolerant of surrounding whitespace.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func gradeFillGaps(content, answer json.RawMessage) (Verdict, error) {
	var c FillGapsContent
	if err := json.Unmarshal(content, &c); err != nil {
		return defect(BlockFillGaps, err.Error())
	}
	if len(c.Gaps) == 0 {
		return VerdictIncorrect, nil
	}

	// Gap keys arrive as strings ("0") or numbers (0) depending on the
	// client; decode loosely and index by the canonical string form.
	given := map[string]string{}
	var raw map[string]interface{}
	if err := json.Unmarshal(answer, &raw); err == nil {
		for k, v := range raw {
			if s, ok := v.(string); ok {
				given[canonicalKey(k)] = s
			}
		}
	}

	for _, gap := range c.Gaps {
		value, ok := given[strconv.Itoa(gap.Index)]
		if !ok {
			return VerdictIncorrect, nil
		}
		if !gapMatches(gap, value) {
			return VerdictIncorrect, nil
		}
	}
	return VerdictCorrect, nil
}

func gapMatches(gap Gap, value string) bool {
	got := normalize(value)
	if got == normalize(gap.Answer) {
		return true
	}
	for _, alt := range gap.Alternatives {
		if got == normalize(alt) {
			return true
		}
	}
	return false
}

// canonicalKey collapses numeric-looking keys so "0", "0.0" and 0 all address
// the same gap.
func canonicalKey(k string) string {
	if f, err := strconv.ParseFloat(k, 64); err == nil && f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return k
}

func gradeTest(content, answer json.RawMessage) (Verdict, error) {
	var c TestContent
	if err := json.Unmarshal(content, &c); err != nil {
		return defect(BlockTest, err.Error())
	}
	if len(c.Options) == 0 {
		return VerdictIncorrect, nil
	}

	// The answer is a single id or a list of ids; both normalize to a set.
	selected := map[string]bool{}
	var raw interface{}
	if err := json.Unmarshal(answer, &raw); err == nil {
		switch v := raw.(type) {
		case []interface{}:
			for _, item := range v {
				if id, ok := stringID(item); ok {
					selected[id] = true
				}
			}
		default:
			if id, ok := stringID(v); ok {
				selected[id] = true
			}
		}
	}

	// Multi-select semantics: every option's selection state must match its
	// is_correct flag, so a stray pick or a missed pick fails the block.
	for _, opt := range c.Options {
		id, ok := stringID(opt.ID)
		if !ok {
			return defect(BlockTest, "option id is not a string or number")
		}
		if selected[id] != opt.IsCorrect {
			return VerdictIncorrect, nil
		}
	}
	return VerdictCorrect, nil
}

func gradeTrueFalse(content, answer json.RawMessage) (Verdict, error) {
	var c TrueFalseContent
	if err := json.Unmarshal(content, &c); err != nil {
		return defect(BlockTrueFalse, err.Error())
	}
	want := true
	if c.IsTrue != nil {
		want = *c.IsTrue
	}

	var got bool
	if err := json.Unmarshal(answer, &got); err != nil {
		return VerdictIncorrect, nil
	}
	if got == want {
		return VerdictCorrect, nil
	}
	return VerdictIncorrect, nil
}

func gradeWordOrder(content, answer json.RawMessage) (Verdict, error) {
	var c WordOrderContent
	if err := json.Unmarshal(content, &c); err != nil {
		return defect(BlockWordOrder, err.Error())
	}

	var tokens []string
	if err := json.Unmarshal(answer, &tokens); err != nil {
		return VerdictIncorrect, nil
	}
	if strings.Join(tokens, " ") == c.CorrectSentence {
		return VerdictCorrect, nil
	}
	return VerdictIncorrect, nil
}

func gradeMatching(content, answer json.RawMessage) (Verdict, error) {
	var c MatchingContent
	if err := json.Unmarshal(content, &c); err != nil {
		return defect(BlockMatching, err.Error())
	}
	if len(c.Pairs) == 0 {
		return VerdictIncorrect, nil
	}

	var given map[string]string
	if err := json.Unmarshal(answer, &given); err != nil {
		return VerdictIncorrect, nil
	}

	// Unlike fill_gaps, matching compares verbatim: no trimming, no case
	// folding. The client renderer behaves the same way.
	for _, pair := range c.Pairs {
		if given[pair.Left] != pair.Right {
			return VerdictIncorrect, nil
		}
	}
	return VerdictCorrect, nil
}

func gradeImageChoice(content, answer json.RawMessage) (Verdict, error) {
	var c ImageChoiceContent
	if err := json.Unmarshal(content, &c); err != nil {
		return defect(BlockImageChoice, err.Error())
	}

	var raw interface{}
	if err := json.Unmarshal(answer, &raw); err != nil {
		return VerdictIncorrect, nil
	}
	chosen, ok := stringID(raw)
	if !ok {
		return VerdictIncorrect, nil
	}

	for _, opt := range c.Options {
		if id, ok := stringID(opt.ID); ok && id == chosen {
			if opt.IsCorrect {
				return VerdictCorrect, nil
			}
			return VerdictIncorrect, nil
		}
	}
	return VerdictIncorrect, nil
}

// stringID renders option ids and selections as comparable strings. JSON
// numbers decode as float64; integral values print without a fraction so a
// numeric 3 matches the string "3".
func stringID(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		if x == math.Trunc(x) {
			return strconv.FormatInt(int64(x), 10), true
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	}
	return "", false
}
