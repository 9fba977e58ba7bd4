package interview_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/oae-tools/vozform/internal/flow"
	"github.com/oae-tools/vozform/internal/interview"
	"github.com/oae-tools/vozform/internal/observe"
	"github.com/oae-tools/vozform/internal/script"
	"github.com/oae-tools/vozform/pkg/provider/stt"
	sttmock "github.com/oae-tools/vozform/pkg/provider/stt/mock"
	ttsmock "github.com/oae-tools/vozform/pkg/provider/tts/mock"
)

// testScript is a three-question interview with no generation rules, so test
// transcripts map one to one onto questions.
func testScript() *script.Script {
	return &script.Script{
		Sections: []script.Section{
			{
				ID:    "info",
				Label: "Informações",
				Questions: []script.Question{
					{ID: "CODIGO", Prompt: "Qual o código da obra?", Type: script.TypeText},
					{
						ID: "LARGURA", Prompt: "Qual a largura?", Hint: "Responda em metros.",
						Type: script.TypeNumber,
					},
					{
						ID: "APARELHO APOIO", Prompt: "Qual o aparelho de apoio?",
						Type:    script.TypeSelect,
						Options: []string{"NEOPRENE", "METALICO", "Nenhum"},
					},
				},
			},
		},
	}
}

func newTestSession(t *testing.T, s *script.Script, cfg interview.Config) (*interview.Session, *sttmock.Provider, *ttsmock.Provider) {
	t.Helper()
	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	sp := &sttmock.Provider{}
	tp := &ttsmock.Provider{}
	sess := interview.New(cfg, flow.New(s), sp, tp, interview.WithMetrics(m))
	return sess, sp, tp
}

func spokenContaining(tp *ttsmock.Provider, substr string) int {
	n := 0
	for _, s := range tp.Spoken {
		if strings.Contains(s, substr) {
			n++
		}
	}
	return n
}

func TestRunCompletesInterview(t *testing.T) {
	t.Parallel()
	sess, sp, tp := newTestSession(t, testScript(), interview.Config{})
	sp.Enqueue(stt.Result{Text: "OAE 101"})
	sp.Enqueue(stt.Result{Text: "doze vírgula cinco"})
	sp.Enqueue(stt.Result{Text: "neoprene"})

	answers, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := answers["CODIGO"]; got != "OAE 101" {
		t.Errorf("CODIGO = %q, want %q", got, "OAE 101")
	}
	if got := answers["LARGURA"]; got != "12.5" {
		t.Errorf("LARGURA = %q, want %q", got, "12.5")
	}
	if got := answers["APARELHO APOIO"]; got != "NEOPRENE" {
		t.Errorf("APARELHO APOIO = %q, want %q", got, "NEOPRENE")
	}
	if n := spokenContaining(tp, "Todos os campos preenchidos"); n != 1 {
		t.Errorf("completion line spoken %d times, want 1", n)
	}
	if p := sess.Progress(); !p.Complete || p.Answered != 3 {
		t.Errorf("final progress = %+v, want complete with 3 answered", p)
	}
}

func TestRepeatRequestSpeaksHint(t *testing.T) {
	t.Parallel()
	sess, sp, tp := newTestSession(t, testScript(), interview.Config{})
	sp.Enqueue(stt.Result{Text: "OAE 1"})
	sp.Enqueue(stt.Result{Text: "repete"})
	sp.Enqueue(stt.Result{Text: "dez"})
	sp.Enqueue(stt.Result{Text: "Nenhum"})

	if _, err := sess.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := spokenContaining(tp, "Qual a largura?"); n != 2 {
		t.Errorf("width prompt spoken %d times, want 2", n)
	}
	if n := spokenContaining(tp, "Responda em metros."); n != 1 {
		t.Errorf("hint spoken %d times, want 1", n)
	}
}

func TestGoBackReasksPreviousQuestion(t *testing.T) {
	t.Parallel()
	sess, sp, tp := newTestSession(t, testScript(), interview.Config{})
	sp.Enqueue(stt.Result{Text: "OAE 1"})
	sp.Enqueue(stt.Result{Text: "oito"})
	sp.Enqueue(stt.Result{Text: "voltar"})
	sp.Enqueue(stt.Result{Text: "nove"})
	sp.Enqueue(stt.Result{Text: "metálico"})

	answers, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := answers["LARGURA"]; got != "9" {
		t.Errorf("LARGURA = %q, want %q (corrected value)", got, "9")
	}
	if n := spokenContaining(tp, "Voltando."); n != 1 {
		t.Errorf("go-back acknowledgement spoken %d times, want 1", n)
	}
	if n := spokenContaining(tp, "O valor anterior era 8"); n != 1 {
		t.Errorf("previous value read back %d times, want 1", n)
	}
}

func TestGoBackOnFirstQuestion(t *testing.T) {
	t.Parallel()
	sess, sp, tp := newTestSession(t, testScript(), interview.Config{})
	sp.Enqueue(stt.Result{Text: "voltar"})
	sp.Enqueue(stt.Result{Text: "OAE 1"})
	sp.Enqueue(stt.Result{Text: "dez"})
	sp.Enqueue(stt.Result{Text: "Nenhum"})

	if _, err := sess.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := spokenContaining(tp, "Não há pergunta anterior."); n != 1 {
		t.Errorf("no-previous line spoken %d times, want 1", n)
	}
}

func TestSecondFailureSpeaksSelectOptions(t *testing.T) {
	t.Parallel()
	sess, sp, tp := newTestSession(t, testScript(), interview.Config{})
	sp.Enqueue(stt.Result{Text: "OAE 1"})
	sp.Enqueue(stt.Result{Text: "dez"})
	sp.Enqueue(stt.Result{Text: "xyzzy"})
	sp.Enqueue(stt.Result{Text: "xyzzy"})
	sp.Enqueue(stt.Result{Text: "neoprene"})

	if _, err := sess.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := spokenContaining(tp, "Não entendi. Tente de novo."); n != 1 {
		t.Errorf("retry line spoken %d times, want 1", n)
	}
	if n := spokenContaining(tp, "Opções: NEOPRENE, METALICO, Nenhum."); n != 1 {
		t.Errorf("options line spoken %d times, want 1", n)
	}
}

func TestAlternativesRescueRejectedTranscript(t *testing.T) {
	t.Parallel()
	sess, sp, _ := newTestSession(t, testScript(), interview.Config{})
	sp.Enqueue(stt.Result{Text: "OAE 1"})
	sp.Enqueue(stt.Result{Text: "hmm", Alternatives: []string{"vinte e cinco"}})
	sp.Enqueue(stt.Result{Text: "Nenhum"})

	answers, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := answers["LARGURA"]; got != "25" {
		t.Errorf("LARGURA = %q, want %q (from alternative)", got, "25")
	}
}

func TestNoSpeechReprompts(t *testing.T) {
	t.Parallel()
	sess, sp, tp := newTestSession(t, testScript(), interview.Config{})
	sp.EnqueueErr(stt.ErrNoSpeech)
	sp.Enqueue(stt.Result{Text: "OAE 1"})
	sp.Enqueue(stt.Result{Text: "dez"})
	sp.Enqueue(stt.Result{Text: "Nenhum"})

	if _, err := sess.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := spokenContaining(tp, "Não ouvi nada."); n != 1 {
		t.Errorf("no-speech line spoken %d times, want 1", n)
	}
}

func TestInputExhaustedReturnsPartialAnswers(t *testing.T) {
	t.Parallel()
	sess, sp, _ := newTestSession(t, testScript(), interview.Config{})
	sp.Enqueue(stt.Result{Text: "OAE 1"})

	answers, err := sess.Run(context.Background())
	if !errors.Is(err, io.EOF) {
		t.Fatalf("Run err = %v, want io.EOF", err)
	}
	if got := answers["CODIGO"]; got != "OAE 1" {
		t.Errorf("CODIGO = %q, want partial answer preserved", got)
	}
}

func TestContextCancellationStopsRun(t *testing.T) {
	t.Parallel()
	sess, sp, _ := newTestSession(t, testScript(), interview.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	sp.ListenFunc = func(ctx context.Context, opts stt.Options) (stt.Result, error) {
		cancel()
		return stt.Result{}, ctx.Err()
	}

	if _, err := sess.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
}

func TestConfirmationTurn(t *testing.T) {
	t.Parallel()
	s := &script.Script{
		Sections: []script.Section{{
			ID: "info",
			Questions: []script.Question{{
				ID: "ALTURA", Prompt: "Qual a altura?", Type: script.TypeNumber,
				ConfirmTemplate: "Entendi {value}. Confirma?",
			}},
		}},
	}
	sess, sp, tp := newTestSession(t, s, interview.Config{Confirm: true})
	sp.Enqueue(stt.Result{Text: "cinco"})
	sp.Enqueue(stt.Result{Text: "não"})
	sp.Enqueue(stt.Result{Text: "seis"})
	sp.Enqueue(stt.Result{Text: "sim"})

	answers, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := answers["ALTURA"]; got != "6" {
		t.Errorf("ALTURA = %q, want %q (value after rejected confirmation)", got, "6")
	}
	if n := spokenContaining(tp, "Entendi 5. Confirma?"); n != 1 {
		t.Errorf("first confirmation spoken %d times, want 1", n)
	}
	if n := spokenContaining(tp, "Entendi 6. Confirma?"); n != 1 {
		t.Errorf("second confirmation spoken %d times, want 1", n)
	}
}

func TestConfirmationUnclearAcceptsAfterRepeat(t *testing.T) {
	t.Parallel()
	s := &script.Script{
		Sections: []script.Section{{
			ID: "info",
			Questions: []script.Question{{
				ID: "ALTURA", Prompt: "Qual a altura?", Type: script.TypeNumber,
				ConfirmTemplate: "Confirma {value}?",
			}},
		}},
	}
	sess, sp, tp := newTestSession(t, s, interview.Config{Confirm: true})
	sp.Enqueue(stt.Result{Text: "cinco"})
	sp.Enqueue(stt.Result{Text: "banana"})
	sp.Enqueue(stt.Result{Text: "laranja"})

	answers, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := answers["ALTURA"]; got != "5" {
		t.Errorf("ALTURA = %q, want %q (accepted after unclear confirmations)", got, "5")
	}
	if n := spokenContaining(tp, "Confirma 5?"); n != 2 {
		t.Errorf("confirmation spoken %d times, want 2", n)
	}
}

func TestProgressSnapshot(t *testing.T) {
	t.Parallel()
	sess, _, _ := newTestSession(t, testScript(), interview.Config{})

	p := sess.Progress()
	if p.QuestionID != "CODIGO" || p.Index != 0 || p.Total != 3 || p.Complete {
		t.Errorf("initial progress = %+v, want first question of 3", p)
	}
}

func TestLanguagePassedToListen(t *testing.T) {
	t.Parallel()
	sess, sp, _ := newTestSession(t, testScript(), interview.Config{Language: "pt-PT"})
	sp.Enqueue(stt.Result{Text: "OAE 1"})
	sp.Enqueue(stt.Result{Text: "dez"})
	sp.Enqueue(stt.Result{Text: "Nenhum"})

	if _, err := sess.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sp.ListenCalls) == 0 {
		t.Fatal("no Listen calls recorded")
	}
	for i, c := range sp.ListenCalls {
		if c.Opts.Language != "pt-PT" {
			t.Errorf("Listen call %d language = %q, want %q", i, c.Opts.Language, "pt-PT")
		}
	}
}
