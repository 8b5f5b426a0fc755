package chart

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMarshalJSONKeepsDeclaredOrder(t *testing.T) {
	root := &Node{
		Name:    "parent",
		Version: "1.0.0",
		Children: []*Node{
			{Name: "zeta", Version: "2.0.0"},
			{Name: "alpha", Version: "3.0.0"},
		},
	}
	encoded, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	got := string(encoded)
	want := `{"name":"parent","version":"1.0.0","repository":"",` +
		`"dependencies":{"zeta":{"name":"zeta","version":"2.0.0","repository":""},` +
		`"alpha":{"name":"alpha","version":"3.0.0","repository":""}}}`
	if got != want {
		t.Fatalf("unexpected encoding:\n got %s\nwant %s", got, want)
	}
}

func TestMarshalJSONOmitsEmptyCondition(t *testing.T) {
	encoded, err := json.Marshal(&Node{Name: "solo", Version: "1.0.0"})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if strings.Contains(string(encoded), "condition") {
		t.Fatalf("empty condition must be omitted: %s", encoded)
	}

	encoded, err = json.Marshal(&Node{Name: "solo", Condition: "solo.enabled"})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if !strings.Contains(string(encoded), `"condition":"solo.enabled"`) {
		t.Fatalf("condition missing: %s", encoded)
	}
}

func TestMarshalJSONCollapsesDuplicateSiblingNames(t *testing.T) {
	root := &Node{
		Name:    "parent",
		Version: "1.0.0",
		Children: []*Node{
			{Name: "common", Version: "0.1.0"},
			{Name: "common", Version: "0.2.0"},
		},
	}
	encoded, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if got := strings.Count(string(encoded), `"common":`); got != 1 {
		t.Fatalf("expected one common key, found %d: %s", got, encoded)
	}
	// First occurrence wins.
	if !strings.Contains(string(encoded), `"version":"0.1.0"`) || strings.Contains(string(encoded), "0.2.0") {
		t.Fatalf("expected the first duplicate to survive: %s", encoded)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	root := &Node{
		Name:       "parent",
		Version:    "1.0.0",
		Repository: "https://charts.example.com",
		Children: []*Node{
			{
				Name:      "redis",
				Version:   "4.0.0",
				Condition: "redis.enabled",
				Children: []*Node{
					{Name: "common", Version: "0.1.0"},
				},
			},
			{Name: "zeta", Version: "2.0.0"},
			{Name: "alpha", Version: "3.0.0"},
		},
	}
	encoded, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	decoded := &Node{}
	if err := json.Unmarshal(encoded, decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	assertTreesEqual(t, root, decoded)
}

func assertTreesEqual(t *testing.T, want, got *Node) {
	t.Helper()
	if got.Name != want.Name || got.Version != want.Version ||
		got.Repository != want.Repository || got.Condition != want.Condition {
		t.Fatalf("node mismatch: want %+v, got %+v", want, got)
	}
	if len(got.Children) != len(want.Children) {
		t.Fatalf("node %s: expected %d children, got %d", want.Name, len(want.Children), len(got.Children))
	}
	for i := range want.Children {
		assertTreesEqual(t, want.Children[i], got.Children[i])
	}
}
