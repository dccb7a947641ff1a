package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/prestige/internal/wire"
)

// TraceSnapshot captures a scenario run for golden comparison. All fields
// serialize canonically, so a run is byte-identical across machines.
type TraceSnapshot struct {
	ScenarioName string
	SessionID    string
	Trace        []TraceEvent
}

// toCanonicalValue converts the snapshot into a wire value so the
// canonical marshaler can render it with sorted keys and NFC strings.
func (s *TraceSnapshot) toCanonicalValue() wire.Value {
	traceList := make(wire.Array, len(s.Trace))
	for i, event := range s.Trace {
		eventObj := wire.Object{
			"type":    wire.String(event.Type),
			"seq":     wire.Int(event.Seq),
			"outcome": wire.String(event.Outcome),
		}
		if event.Call != "" {
			eventObj["call"] = wire.String(event.Call)
		}
		if event.Args != "" {
			eventObj["args"] = wire.String(event.Args)
		}
		if event.Matched != "" {
			eventObj["matched"] = wire.String(event.Matched)
		}
		if event.Result != "" {
			eventObj["result"] = wire.String(event.Result)
		}
		if event.Detail != "" {
			eventObj["detail"] = wire.String(event.Detail)
		}
		traceList[i] = eventObj
	}

	return wire.Object{
		"scenario_name": wire.String(s.ScenarioName),
		"session_id":    wire.String(s.SessionID),
		"trace":         traceList,
	}
}

// RunWithGolden executes a scenario and compares its trace against the
// golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error when scenario execution itself fails; trace divergence
// fails the test through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares an already-obtained result's trace against the
// golden file for scenarioName.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		SessionID:    result.SessionID,
		Trace:        result.Trace,
	}

	traceJSON, err := wire.MarshalCanonical(snapshot.toCanonicalValue())
	if err != nil {
		t.Fatalf("marshal trace snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
}
