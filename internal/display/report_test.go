package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/harrison/sassglob/internal/expander"
)

func TestCheckReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewCheckReport(&buf, 3, "/p")

	r.Start()
	r.Step("/p/main.scss", []expander.Expansion{
		{Line: 2, Keyword: "import", Pattern: "components/*", Targets: []string{"components/_a.scss", "components/_b.scss"}},
		{Line: 5, Keyword: "use", Pattern: "themes/*"},
	})
	r.Step("/p/plain.scss", nil)
	r.Fail("/p/broken.scss", errors.New("permission denied"))
	r.Complete()

	expected := "Checking 3 stylesheet(s):\n" +
		"  [1/3] main.scss\n" +
		"      line 2: @import \"components/*\" -> 2 file(s)\n" +
		"        components/_a.scss\n" +
		"        components/_b.scss\n" +
		"      line 5: @use \"themes/*\" -> no matches\n" +
		"  [2/3] plain.scss\n" +
		"  [3/3] broken.scss: permission denied\n" +
		"! Resolved 2 wildcard directive(s), 1 with no matches\n"

	if got := buf.String(); got != expected {
		t.Errorf("report =\n%s\nwant\n%s", got, expected)
	}
	if r.EmptyCount() != 1 {
		t.Errorf("EmptyCount() = %d, want 1", r.EmptyCount())
	}
}

func TestCheckReport_AllResolved(t *testing.T) {
	var buf bytes.Buffer
	r := NewCheckReport(&buf, 1, "")
	r.Step("/p/main.scss", []expander.Expansion{{Line: 1, Keyword: "forward", Pattern: "a/*", Targets: []string{"a/_x.scss"}}})
	r.Complete()

	if !strings.Contains(buf.String(), "✓ Resolved 1 wildcard directive(s), 0 with no matches") {
		t.Errorf("unexpected completion line: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "/p/main.scss") {
		t.Errorf("expected absolute path without base dir: %q", buf.String())
	}
}
