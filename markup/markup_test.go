package markup

import (
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"

	apperrors "github.com/kbukum/xesmeta/errors"
)

func TestAddTagValue(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		value string
		want  string
	}{
		{"plain", "Activity", "Check-in", "<Activity>Check-in</Activity>\n"},
		{"empty", "Role", "", "<Role></Role>\n"},
		{"escaped", "TimestampRegex", `a<b & "c" > d`, "<TimestampRegex>a&lt;b &amp; \"c\" &gt; d</TimestampRegex>\n"},
		{"carriage return", "Resource", "a\r\nb", "<Resource>a&#xD;\nb</Resource>\n"},
		{"cdata terminator", "Group", "x]]>y", "<Group>x]]&gt;y</Group>\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AddTagValue(tc.tag, tc.value)
			if err != nil {
				t.Fatalf("AddTagValue failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAddTagValue_RejectsUnrepresentable(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		value string
	}{
		{"nul byte", "Activity", "a\x00b"},
		{"vertical tab", "Activity", "a\vb"},
		{"invalid utf8", "Activity", "a\xffb"},
		{"bad tag", "1Activity", "x"},
		{"empty tag", "", "x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AddTagValue(tc.tag, tc.value)
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperrors.Is(err, apperrors.ErrCodeSerialization) {
				t.Errorf("expected SERIALIZATION_ERROR, got %v", err)
			}
		})
	}
}

func TestParse_Fragment(t *testing.T) {
	root, err := Parse("<Activity>Check-in</Activity>\n<Timestamp>2024-01-01</Timestamp>")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(root.Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children()))
	}
	if v, ok := root.ChildText("Timestamp"); !ok || v != "2024-01-01" {
		t.Errorf("expected Timestamp=2024-01-01, got %q ok=%v", v, ok)
	}
	if _, ok := root.ChildText("Resource"); ok {
		t.Error("expected Resource to be missing")
	}
}

func TestParse_EmptyElements(t *testing.T) {
	root, err := Parse("<Role/><Group></Group>")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for _, name := range []string{"Role", "Group"} {
		v, ok := root.ChildText(name)
		if !ok || v != "" {
			t.Errorf("%s: expected present empty text, got %q ok=%v", name, v, ok)
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{"<Activity>x</Role>", "<Activity>x", "<<>"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestParse_UnbalancedWrapsErrXML(t *testing.T) {
	for _, in := range []string{"<Activity>x</Role>", "<Activity>x"} {
		_, err := Parse(in)
		if !errors.Is(err, etree.ErrXML) {
			t.Errorf("%q: expected etree.ErrXML, got %v", in, err)
		}
	}
}

func TestParse_EmptyFragment(t *testing.T) {
	root, err := Parse("")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(root.Children()) != 0 {
		t.Errorf("expected no children, got %d", len(root.Children()))
	}
}

func TestRoundTrip_EscapedValues(t *testing.T) {
	values := []string{
		"simple",
		"",
		"  padded  ",
		"line1\nline2\r\n\tend",
		`<tag attr="v">&amp;</tag>`,
		"ünïcødé ✓ 🎉",
		"a]]>b",
		"\r",
		`^\d{4}-\d{2}-\d{2}$`,
	}
	for _, v := range values {
		frag, err := AddTagValue("Value", v)
		if err != nil {
			t.Fatalf("AddTagValue(%q) failed: %v", v, err)
		}
		root, err := Parse(frag)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", frag, err)
		}
		got, ok := root.ChildText("Value")
		if !ok || got != v {
			t.Errorf("round trip: expected %q, got %q", v, got)
		}
	}
}

func TestNode_FindAndAttr(t *testing.T) {
	doc := `<?xml version="1.0"?>
<step type="XESPlugin">
  <name>export</name>
  <fields><field>a</field></fields>
</step>`
	root, err := ParseDocument(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	step := root.Child("step")
	if step == nil {
		t.Fatal("expected step element")
	}
	if v, _ := step.Attr("type"); v != "XESPlugin" {
		t.Errorf("expected type attr, got %q", v)
	}
	if v, _ := root.Find("step", "fields", "field").Text(); v != "a" {
		t.Errorf("expected field=a, got %q", v)
	}
	if root.Find("step", "missing", "field") != nil {
		t.Error("expected nil for missing path")
	}
}

func TestNode_NilSafe(t *testing.T) {
	var n *Node
	if n.Name() != "" || n.Children() != nil || n.Child("x") != nil {
		t.Error("nil node accessors should return zero values")
	}
	if _, ok := n.Text(); ok {
		t.Error("nil node Text should report false")
	}
	if _, ok := n.Attr("x"); ok {
		t.Error("nil node Attr should report false")
	}
}
