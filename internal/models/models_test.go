package models

import (
	"encoding/json"
	"testing"
)

func TestPollCache_WrappedAndBareAreEquivalent(t *testing.T) {
	wrapped := `{"lastUpdate":"12/01/2026","candidates":[{"name":"J. Bardella","fullName":"Jordan Bardella","score":35,"color":"#800080"}]}`
	bare := `[{"name":"J. Bardella","fullName":"Jordan Bardella","score":35,"color":"#800080"}]`

	var w, b PollCache
	if err := json.Unmarshal([]byte(wrapped), &w); err != nil {
		t.Fatalf("wrapped: %v", err)
	}
	if err := json.Unmarshal([]byte(bare), &b); err != nil {
		t.Fatalf("bare: %v", err)
	}

	if w.LastUpdate != "12/01/2026" {
		t.Errorf("expected wrapped lastUpdate to be kept, got %q", w.LastUpdate)
	}
	if b.LastUpdate != ManualUpdateLabel {
		t.Errorf("expected bare lastUpdate %q, got %q", ManualUpdateLabel, b.LastUpdate)
	}
	if len(w.Candidates) != 1 || len(b.Candidates) != 1 {
		t.Fatalf("expected one candidate in both shapes, got %d and %d", len(w.Candidates), len(b.Candidates))
	}
	if w.Candidates[0].Label() != b.Candidates[0].Label() || *w.Candidates[0].Score != *b.Candidates[0].Score {
		t.Errorf("shapes decoded differently: %+v vs %+v", w.Candidates[0], b.Candidates[0])
	}
}

func TestPollCache_EmptyShapesMarshalAsEmptyArray(t *testing.T) {
	for _, doc := range []string{`[]`, `{}`, `{"lastUpdate":"x"}`} {
		var c PollCache
		if err := json.Unmarshal([]byte(doc), &c); err != nil {
			t.Fatalf("%s: %v", doc, err)
		}
		out, _ := json.Marshal(c)
		var back map[string]json.RawMessage
		json.Unmarshal(out, &back)
		if string(back["candidates"]) != "[]" {
			t.Errorf("%s: expected candidates [], got %s", doc, back["candidates"])
		}
	}
}

func TestPollCache_Malformed(t *testing.T) {
	tests := []string{
		`{"candidates": 12}`,
		`"just a string"`,
		`[{"score":"high"}]`,
	}
	for _, doc := range tests {
		var c PollCache
		if err := json.Unmarshal([]byte(doc), &c); err == nil {
			t.Errorf("expected error for %s", doc)
		}
	}
}

func TestSecondRoundCache_Shapes(t *testing.T) {
	var w SecondRoundCache
	if err := json.Unmarshal([]byte(`{"lastUpdate":"x","duel":"A / B","candidates":[{"fullName":"A","score":60}]}`), &w); err != nil {
		t.Fatal(err)
	}
	if w.Duel != "A / B" || len(w.Candidates) != 1 {
		t.Errorf("unexpected wrapped decode: %+v", w)
	}

	var b SecondRoundCache
	if err := json.Unmarshal([]byte(`[]`), &b); err != nil {
		t.Fatal(err)
	}
	if b.Duel != "" || b.Candidates == nil || b.LastUpdate != ManualUpdateLabel {
		t.Errorf("unexpected bare decode: %+v", b)
	}
}

func TestCandidateCache_CityEntries(t *testing.T) {
	doc := `[{"cityName":"Lyon","region":"AURA","favorite":"X (Parti)","scores":[{"label":"X","value":55,"color":"#abc"}]}]`
	var c CandidateCache
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		t.Fatal(err)
	}
	if len(c.Candidates) != 1 || !c.Candidates[0].IsCity() {
		t.Fatalf("expected one city entry, got %+v", c.Candidates)
	}
	if c.Candidates[0].Scores[0].Value != 55 {
		t.Errorf("expected score 55, got %v", c.Candidates[0].Scores[0].Value)
	}
}

func TestDetailedPollCache_Shapes(t *testing.T) {
	var w DetailedPollCache
	if err := json.Unmarshal([]byte(`{"polls":[{"institute":"Ifop","sampleSize":1200,"results":[{"name":"A","score":"30-33"}]}],"lastUpdate":"hier"}`), &w); err != nil {
		t.Fatal(err)
	}
	if w.LastUpdate == nil || *w.LastUpdate != "hier" {
		t.Errorf("expected lastUpdate hier, got %v", w.LastUpdate)
	}
	if w.Polls[0].SampleSize != "1200" {
		t.Errorf("expected numeric sample size as string, got %q", w.Polls[0].SampleSize)
	}
	if got := w.Polls[0].Results[0].Score.Value; got != 31.5 {
		t.Errorf("expected range midpoint 31.5, got %v", got)
	}

	var b DetailedPollCache
	if err := json.Unmarshal([]byte(`[{"institute":"Elabe","results":[]}]`), &b); err != nil {
		t.Fatal(err)
	}
	if b.LastUpdate == nil || *b.LastUpdate != ManualUpdateLabel || len(b.Polls) != 1 {
		t.Errorf("unexpected bare decode: %+v", b)
	}
}

func TestMapCache_Shapes(t *testing.T) {
	var w, b MapCache
	if err := json.Unmarshal([]byte(`{"cities":[{"cityName":"Paris","lat":48.85,"lng":2.35,"scores":[]}]}`), &w); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(`[{"cityName":"Paris","scores":[]}]`), &b); err != nil {
		t.Fatal(err)
	}
	if len(w.Cities) != 1 || len(b.Cities) != 1 {
		t.Fatalf("expected one city in each shape")
	}
	if w.Cities[0].Lat == nil || *w.Cities[0].Lat != 48.85 {
		t.Errorf("expected lat to be decoded, got %v", w.Cities[0].Lat)
	}
}

func TestFlexScore(t *testing.T) {
	tests := []struct {
		in       string
		value    float64
		isRange  bool
		marshals string
	}{
		{`31.5`, 31.5, false, `31.5`},
		{`"28"`, 28, false, `28`},
		{`"12,5"`, 12.5, false, `12.5`},
		{`"30-33"`, 31.5, true, `"30-33"`},
		{`"20 – 24 %"`, 22, true, `"20 – 24 %"`},
		{`"n/a"`, 0, true, `"n/a"`},
		{`null`, 0, false, `0`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var s FlexScore
			if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if s.Value != tt.value {
				t.Errorf("Value = %v, want %v", s.Value, tt.value)
			}
			if s.IsRange() != tt.isRange {
				t.Errorf("IsRange = %v, want %v", s.IsRange(), tt.isRange)
			}
			out, err := json.Marshal(s)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.marshals {
				t.Errorf("marshal = %s, want %s", out, tt.marshals)
			}
		})
	}
}

func TestFlexScore_RejectsObjects(t *testing.T) {
	var s FlexScore
	if err := json.Unmarshal([]byte(`{"v":1}`), &s); err == nil {
		t.Error("expected error for object score")
	}
}

func TestFlexString(t *testing.T) {
	tests := map[string]string{
		`"1 000"`: "1 000",
		`1000`:    "1000",
		`null`:    "",
	}
	for in, want := range tests {
		var f FlexString
		if err := json.Unmarshal([]byte(in), &f); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if f.String() != want {
			t.Errorf("%s: got %q, want %q", in, f, want)
		}
	}

	var f FlexString
	if err := json.Unmarshal([]byte(`[1]`), &f); err == nil {
		t.Error("expected error for array")
	}
}

func TestPoll_Label(t *testing.T) {
	if got := (Poll{Name: "J. Bardella", FullName: "Jordan Bardella"}).Label(); got != "Jordan Bardella" {
		t.Errorf("expected full name, got %q", got)
	}
	if got := (Poll{Name: "RN"}).Label(); got != "RN" {
		t.Errorf("expected short name, got %q", got)
	}
}
