package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/event-timekeeper/backend/internal/timeutil"
)

// Prompt is a yes/no question the engine needs answered before it may
// proceed. Key is stable and machine-readable; Message is what the display
// client shows in its dialog.
type Prompt struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Prompt keys
const (
	PromptDateRollover  = "date_rollover"
	PromptPastSettings  = "past_settings"
	PromptPastCandidate = "past_candidate"
)

// Confirmer answers the engine's confirmation prompts. The HTTP harness
// carries answers supplied by the client; tests script them directly.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// AnswerRequiredError reports that a prompt has no answer yet. The engine
// converts it into an answer-required result so the client can show the
// dialog and retry with the answer included.
type AnswerRequiredError struct {
	Prompt Prompt
}

func (e *AnswerRequiredError) Error() string {
	return fmt.Sprintf("answer required for prompt %s", e.Prompt.Key)
}

// Answers is a Confirmer backed by pre-supplied answers keyed by prompt key.
// A missing answer yields an AnswerRequiredError.
type Answers map[string]bool

// Confirm returns the recorded answer for the prompt.
func (a Answers) Confirm(_ context.Context, p Prompt) (bool, error) {
	answer, ok := a[p.Key]
	if !ok {
		return false, &AnswerRequiredError{Prompt: p}
	}
	return answer, nil
}

func dateRolloverPrompt(setDate, today string) Prompt {
	return Prompt{
		Key: PromptDateRollover,
		Message: fmt.Sprintf(
			"日付が変わりました。今日(%s)のイベント情報を自動的に読み込みますか？「キャンセル」を選択すると、前回(%s)の設定を引き続き使用できます。",
			today, setDate),
	}
}

func pastSettingsPrompt(start time.Time) Prompt {
	return Prompt{
		Key: PromptPastSettings,
		Message: fmt.Sprintf(
			"前回設定されたイベント(%s)は過去のものです。新しいイベント情報を読み込みますか？「キャンセル」を選択すると、前回の設定を引き続き使用できます。",
			timeutil.FormatDateJP(start)),
	}
}

func pastCandidatePrompt(date time.Time) Prompt {
	return Prompt{
		Key: PromptPastCandidate,
		Message: fmt.Sprintf(
			"%sのイベントは既に終了している可能性があります。このイベント情報を読み込みますか？",
			timeutil.FormatDateJP(date)),
	}
}
