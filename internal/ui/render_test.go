package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nibzard/taskboard/internal/board"
)

func TestRenderText(t *testing.T) {
	b := board.New()
	var buf bytes.Buffer
	if err := RenderText(&buf, b); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		board.DefaultTitle + "\n",
		"待办 (2)\n",
		"  [1] 完善登录功能\n      支持 CSRF token\n",
		"进行中 (1)\n",
		"已完成 (2)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTextEmptyColumn(t *testing.T) {
	b := board.New(board.WithColumns(nil))
	var buf bytes.Buffer
	if err := RenderText(&buf, b); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if got := strings.Count(buf.String(), "(empty)"); got != 3 {
		t.Errorf("empty markers: got %d, want 3", got)
	}
}

func TestSummary(t *testing.T) {
	if got, want := Summary(board.New()), "待办: 2  进行中: 1  已完成: 2"; got != want {
		t.Errorf("Summary: got %q, want %q", got, want)
	}
}
