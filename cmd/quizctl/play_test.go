package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"career-compass/internal/app"
	"career-compass/internal/config"
	"career-compass/internal/domain"
	"career-compass/internal/llm"
	"career-compass/internal/testhelpers"
)

func newTestServices(t *testing.T, client llm.LLMClient) app.Services {
	t.Helper()
	cfg := &config.Config{
		StoreBackend:      config.StoreMemory,
		LLMProvider:       config.ProviderGemini,
		CareerMaxAttempts: 3,
		CareerBackoffBase: time.Millisecond,
	}
	a, err := app.New(context.Background(), cfg, zap.NewNop(), client)
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	t.Cleanup(a.Close)
	return a.Services
}

func TestParseSelection(t *testing.T) {
	single := domain.PromptEntry{QuestionType: domain.QuestionSingleChoice, Options: []string{"a", "b", "c", "d"}}
	multi := domain.PromptEntry{QuestionType: domain.QuestionMultiChoice, Options: []string{"a", "b", "c", "d"}}

	got, err := parseSelection("2", single)
	if err != nil || len(got) != 1 || got[0] != "b" {
		t.Fatalf("expected [b], got %v (%v)", got, err)
	}
	got, err = parseSelection("1, 3,3", multi)
	if err != nil || len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("expected [a c], got %v (%v)", got, err)
	}
	for _, bad := range []string{"", "0", "5", "x"} {
		if _, err := parseSelection(bad, single); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
	if _, err := parseSelection("1,2", single); err == nil {
		t.Fatalf("expected error for multiple picks on single choice")
	}
}

func TestPlayerRunsWholePipeline(t *testing.T) {
	svc := newTestServices(t, testhelpers.NewScriptedOracle())
	// una seleccion invalida, ocho turnos y la eleccion de camino
	input := "9\n" + strings.Repeat("1\n", 8) + "1\n"
	var out bytes.Buffer

	p := newPlayer(svc, strings.NewReader(input), &out)
	err := p.run(context.Background(), &playOptions{
		userID: "asha",
		intake: domain.Intake{Name: "Asha", Stage: "Class 12", Locale: "Pune", Language: "English"},
	})
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out.String())
	}

	text := out.String()
	for _, want := range []string{"[Turn 1]", "[Turn 9]", "Invalid selection", "Your profile", "Bio-Data Storyteller", "Structured Communication"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestPlayerAsksForMissingIntake(t *testing.T) {
	svc := newTestServices(t, testhelpers.NewScriptedOracle())
	input := "Ravi\nClass 10\nDelhi\n" + strings.Repeat("1\n", 9)
	var out bytes.Buffer

	p := newPlayer(svc, strings.NewReader(input), &out)
	err := p.run(context.Background(), &playOptions{intake: domain.Intake{Language: "English"}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Your name: ") {
		t.Fatalf("expected intake questions in output")
	}
}

func TestPlayerStopsOnEOF(t *testing.T) {
	svc := newTestServices(t, testhelpers.NewScriptedOracle())
	var out bytes.Buffer

	p := newPlayer(svc, strings.NewReader("1\n"), &out)
	err := p.run(context.Background(), &playOptions{
		userID: "asha",
		intake: domain.Intake{Name: "Asha", Stage: "Class 12", Locale: "Pune", Language: "English"},
	})
	if err == nil {
		t.Fatalf("expected error when input ends mid quiz")
	}
}
