package gdocs

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRequest_RoundTripPreservesUnknownFields(t *testing.T) {
	raw := `{"insertInlineImage":{"location":{"index":7,"tabId":"t.x"},"uri":"https://example.com/a.png","objectSize":{"height":{"magnitude":120.5,"unit":"PT"}}}}`

	var req Request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal([]byte(raw), &want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip changed request:\nexpected %v\ngot      %v", want, got)
	}
}

func TestRequest_RoundTripKeepsLargeIntegersExact(t *testing.T) {
	// Beyond float64's 2^53 integer precision. A float decode would
	// corrupt the value.
	raw := `{"customOp":{"id":9007199254740993}}`

	var req Request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id := req.Ops["customOp"].(map[string]any)["id"]
	num, ok := id.(json.Number)
	if !ok {
		t.Fatalf("expected json.Number, got %T", id)
	}
	if num.String() != "9007199254740993" {
		t.Errorf("expected 9007199254740993, got %s", num)
	}

	out, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != raw {
		t.Errorf("expected %s, got %s", raw, out)
	}
}

func TestRequest_Kinds(t *testing.T) {
	var req Request
	if err := json.Unmarshal([]byte(`{"insertText":{},"deleteContentRange":{}}`), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"deleteContentRange", "insertText"}
	if got := req.Kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNewInsertText(t *testing.T) {
	req := NewInsertText("hi", 4, "t.a")
	want := map[string]any{
		"insertText": map[string]any{
			"location": map[string]any{"index": int64(4), "tabId": "t.a"},
			"text":     "hi",
		},
	}
	if !reflect.DeepEqual(req.Ops, want) {
		t.Errorf("expected %v, got %v", want, req.Ops)
	}

	unscoped := NewInsertText("hi", 4, "")
	loc := unscoped.Ops["insertText"].(map[string]any)["location"].(map[string]any)
	if _, ok := loc["tabId"]; ok {
		t.Errorf("expected no tabId on unscoped location, got %v", loc["tabId"])
	}
}

func TestNewDeleteContentRange(t *testing.T) {
	req := NewDeleteContentRange(3, 9, "t.b")
	rng := req.Ops["deleteContentRange"].(map[string]any)["range"].(map[string]any)
	if rng["startIndex"] != int64(3) || rng["endIndex"] != int64(9) || rng["tabId"] != "t.b" {
		t.Errorf("unexpected range %v", rng)
	}
}

func TestNewReplaceAllText(t *testing.T) {
	req := NewReplaceAllText("a", "b", false, []string{"t.1", "t.2"})
	body := req.Ops["replaceAllText"].(map[string]any)
	if body["replaceText"] != "b" {
		t.Errorf("expected replaceText b, got %v", body["replaceText"])
	}
	contains := body["containsText"].(map[string]any)
	if contains["text"] != "a" || contains["matchCase"] != false {
		t.Errorf("unexpected containsText %v", contains)
	}
	ids := body["tabsCriteria"].(map[string]any)["tabIds"].([]any)
	if len(ids) != 2 || ids[0] != "t.1" || ids[1] != "t.2" {
		t.Errorf("expected tabIds [t.1 t.2], got %v", ids)
	}
}
