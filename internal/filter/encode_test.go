package filter

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
)

func TestSetMarshalJSON(t *testing.T) {
	s := Parse("price >= 100\ncategory = Drinks")

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	want := `{"category":{"type":"equals","value":"Drinks"},"price":{"type":"gte","value":100}}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestSetMarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(Set{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("empty set should encode as {}, got %s", data)
	}
}

func TestSetUnmarshalJSON(t *testing.T) {
	var s Set
	err := json.Unmarshal([]byte(`{"price":{"type":"lt","value":9.5},"brand":{"type":"notEquals","value":"Acme"}}`), &s)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	want := Parse("price < 9.5\nbrand != Acme")
	if !s.Equal(want) {
		t.Errorf("decoded %v, want %v", s.Conditions(), want.Conditions())
	}
}

func TestSetUnmarshalJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown operator", `{"price":{"type":"between","value":1}}`},
		{"bool value", `{"price":{"type":"equals","value":true}}`},
		{"empty field", `{"":{"type":"equals","value":1}}`},
		{"not an object", `[1,2]`},
		{"number out of range", `{"price":{"type":"gte","value":1e99999999}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Set
			if err := json.Unmarshal([]byte(tt.input), &s); err == nil {
				t.Errorf("expected error for %s", tt.input)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	orig := Parse("price >= 100\ntitle = The Let Them Theory Book\nrating != 4.5\nbrand =")

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	var back Set
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(orig) {
		t.Errorf("round trip changed set: %v -> %v", orig.Conditions(), back.Conditions())
	}
}

func TestFormat(t *testing.T) {
	s := Parse("price >= 100\ncategory = Drinks\nbrand != Acme")
	want := "brand != Acme\ncategory = Drinks\nprice >= 100"
	if got := Format(s); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	if got := Format(Set{}); got != "" {
		t.Errorf("Format(empty) = %q, want empty", got)
	}
}

func TestFormatReparse(t *testing.T) {
	inputs := []string{
		"price >= 100",
		"price > 0.25",
		"stock_quantity <= 10",
		"brand != Samsung",
		"category = Uncategorized",
		"title = The Let Them Theory Book",
		"price = -3",
		"tags == Books",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			s := Parse(in)
			if s.Len() != 1 {
				t.Fatalf("expected 1 condition, got %d", s.Len())
			}
			if back := Parse(Format(s)); !back.Equal(s) {
				t.Errorf("re-parse of %q gave %v, want %v", Format(s), back.Conditions(), s.Conditions())
			}
		})
	}
}

func TestQueryParam(t *testing.T) {
	got, err := QueryParam(Parse("price >= 100"))
	if err != nil {
		t.Fatal(err)
	}
	want := "%7B%22price%22%3A%7B%22type%22%3A%22gte%22%2C%22value%22%3A100%7D%7D"
	if got != want {
		t.Errorf("QueryParam() = %s, want %s", got, want)
	}
}

func TestQueryParamEncodeURIComponent(t *testing.T) {
	got, err := QueryParam(Parse("title = Rock 'n' Roll (Live)!*"))
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(got, "+") {
		t.Errorf("spaces must be %%20, got %s", got)
	}
	for _, keep := range []string{"'", "(", ")", "!", "*", "%20"} {
		if !strings.Contains(got, keep) {
			t.Errorf("expected %q to stay literal in %s", keep, got)
		}
	}

	decoded, err := url.QueryUnescape(got)
	if err != nil {
		t.Fatal(err)
	}
	var s Set
	if err := json.Unmarshal([]byte(decoded), &s); err != nil {
		t.Fatalf("decoded param is not a filter set: %v", err)
	}
	c, _ := s.Get("title")
	if c.Value.String() != "Rock 'n' Roll (Live)!*" {
		t.Errorf("title = %q", c.Value.String())
	}
}

func TestQueryParamNoHTMLEscape(t *testing.T) {
	got, err := QueryParam(Parse("brand = A&B"))
	if err != nil {
		t.Fatal(err)
	}
	// encodeURIComponent('{"brand":{"type":"equals","value":"A&B"}}')
	want := "%7B%22brand%22%3A%7B%22type%22%3A%22equals%22%2C%22value%22%3A%22A%26B%22%7D%7D"
	if got != want {
		t.Errorf("QueryParam() = %s, want %s", got, want)
	}
}
