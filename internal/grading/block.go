package grading

// BlockType identifies the authoring format of an exercise block. The set is
// closed: the grader switches over every case and anything else falls back to
// an ungraded verdict.
type BlockType string

const (
	BlockFillGaps    BlockType = "fill_gaps"
	BlockTest        BlockType = "test"
	BlockTrueFalse   BlockType = "true_false"
	BlockWordOrder   BlockType = "word_order"
	BlockMatching    BlockType = "matching"
	BlockImageChoice BlockType = "image_choice"

	// Answered by students but graded by a teacher.
	BlockEssay      BlockType = "essay"
	BlockFlashcards BlockType = "flashcards"

	// Presentational blocks carry no answer at all.
	BlockText    BlockType = "text"
	BlockImage   BlockType = "image"
	BlockAudio   BlockType = "audio"
	BlockVideo   BlockType = "video"
	BlockDivider BlockType = "divider"
)

// Gradable reports whether the block type can produce a definite
// correct/incorrect verdict. Essay, flashcards and presentational blocks are
// excluded from automatic scoring and from progress denominators.
func (t BlockType) Gradable() bool {
	switch t {
	case BlockFillGaps, BlockTest, BlockTrueFalse, BlockWordOrder, BlockMatching, BlockImageChoice:
		return true
	}
	return false
}

// Known reports whether the type belongs to the closed set this build
// understands. Authoring rejects unknown types; grading just leaves them
// ungraded, because stored content may be newer than the server.
func (t BlockType) Known() bool {
	switch t {
	case BlockFillGaps, BlockTest, BlockTrueFalse, BlockWordOrder, BlockMatching,
		BlockImageChoice, BlockEssay, BlockFlashcards,
		BlockText, BlockImage, BlockAudio, BlockVideo, BlockDivider:
		return true
	}
	return false
}

// Content schemas. Blocks are stored as untyped JSON documents; each gradable
// type decodes into one of these before grading.

type Gap struct {
	Index        int      `json:"index"`
	Answer       string   `json:"answer"`
	Alternatives []string `json:"alternatives"`
}

type FillGapsContent struct {
	Gaps []Gap `json:"gaps"`
}

// Option is shared by test and image_choice blocks. Legacy content sometimes
// carries numeric ids, so ID stays untyped and is compared as a string.
type Option struct {
	ID        interface{} `json:"id"`
	Label     string      `json:"label"`
	IsCorrect bool        `json:"is_correct"`
}

type TestContent struct {
	Options []Option `json:"options"`
}

type TrueFalseContent struct {
	Statement string `json:"statement"`
	IsTrue    *bool  `json:"is_true"` // absent means true
}

type WordOrderContent struct {
	CorrectSentence string `json:"correct_sentence"`
}

type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

type MatchingContent struct {
	Pairs []Pair `json:"pairs"`
}

type ImageChoiceContent struct {
	Options []Option `json:"options"`
}
