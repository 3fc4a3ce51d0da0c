package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/build-flow-labs/cvsscalc/cvss"
)

func TestCollectAll(t *testing.T) {
	in := strings.NewReader("n\nL\nN\nN\nU\nH\nh\n H \n")
	var out bytes.Buffer

	m, err := NewCollector(in, &out, nil).Collect(context.Background(), cvss.Metrics{})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got := m.Vector(); got != "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H" {
		t.Errorf("Vector = %s", got)
	}

	text := out.String()
	for _, want := range []string{
		"Attack Vector (AV)\n",
		"N: NETWORK\nA: ADJACENT\nL: LOCAL\nP: PHYSICAL\n",
		"Enter your choice (e.g., N for NETWORK): ",
		"Scope (S)\nU: UNCHANGED\nC: CHANGED\n",
		"Availability (A)\nH: HIGH\nL: LOW\nN: NONE\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(text, InvalidInputMessage) {
		t.Error("unexpected invalid input message")
	}
	if n := strings.Count(text, Question); n != 8 {
		t.Errorf("question asked %d times, want 8", n)
	}
	if !strings.Contains(text, "Scope (S)\nU: UNCHANGED\nC: CHANGED\n"+Question) {
		t.Errorf("Scope prompt does not use the shared question:\n%s", text)
	}
}

func TestCollectRepromptsOnInvalid(t *testing.T) {
	in := strings.NewReader("X\n\nNETWORK\nA\n")
	var out bytes.Buffer

	d, _ := cvss.DimensionFor(cvss.KeyAttackVector)
	got, err := NewCollector(in, &out, nil).Metric(context.Background(), d)
	if err != nil {
		t.Fatalf("Metric: %v", err)
	}
	if got != "ADJACENT" {
		t.Errorf("got %q, want ADJACENT", got)
	}
	if n := strings.Count(out.String(), InvalidInputMessage); n != 3 {
		t.Errorf("invalid input message printed %d times, want 3", n)
	}
	if n := strings.Count(out.String(), "Enter your choice"); n != 4 {
		t.Errorf("asked %d times, want 4", n)
	}
}

func TestCollectSkipsPresetMetrics(t *testing.T) {
	preset := cvss.Metrics{
		AttackVector:       cvss.AttackVectorLocal,
		AttackComplexity:   cvss.AttackComplexityLow,
		PrivilegesRequired: cvss.PrivilegesRequiredLow,
		UserInteraction:    cvss.UserInteractionNone,
		Scope:              cvss.ScopeUnchanged,
		Confidentiality:    cvss.ImpactLow,
	}
	in := strings.NewReader("N\nN\n")
	var out bytes.Buffer

	m, err := NewCollector(in, &out, nil).Collect(context.Background(), preset)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got := m.Vector(); got != "CVSS:3.1/AV:L/AC:L/PR:L/UI:N/S:U/C:L/I:N/A:N" {
		t.Errorf("Vector = %s", got)
	}
	if strings.Contains(out.String(), "Attack Vector") {
		t.Error("prompted for a preset metric")
	}
	if !strings.Contains(out.String(), "Integrity (I)") {
		t.Error("did not prompt for Integrity")
	}
}

func TestCollectInputClosed(t *testing.T) {
	in := strings.NewReader("N\nL\nbogus\n")
	var out bytes.Buffer

	m, err := NewCollector(in, &out, nil).Collect(context.Background(), cvss.Metrics{})
	if !errors.Is(err, ErrInputClosed) {
		t.Fatalf("err = %v, want ErrInputClosed", err)
	}
	if m.AttackVector != cvss.AttackVectorNetwork || m.AttackComplexity != cvss.AttackComplexityLow {
		t.Errorf("answered metrics lost: %+v", m)
	}
}

func TestCollectCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCollector(strings.NewReader("N\n"), &bytes.Buffer{}, nil).Collect(ctx, cvss.Metrics{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
