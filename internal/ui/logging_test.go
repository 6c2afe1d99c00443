package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerDebugGate(t *testing.T) {
	var buf bytes.Buffer

	l := newLogger(false, &buf)
	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line printed without debug: %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("info line missing: %q", out)
	}

	buf.Reset()
	l = newLogger(true, &buf)
	l.Debugf("visible")
	if !strings.Contains(buf.String(), "visible") || !strings.Contains(buf.String(), "level=debug") {
		t.Errorf("debug output = %q", buf.String())
	}
}

func TestLoggerWithField(t *testing.T) {
	var buf bytes.Buffer

	newLogger(false, &buf).WithField("chapter", "3").Errorf("boom")
	if !strings.Contains(buf.String(), "chapter=3") {
		t.Errorf("field missing: %q", buf.String())
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	if err := PrintTable(&buf, []string{"#", "Title"}, [][]string{{"1", "Chapter One"}}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Chapter One") {
		t.Errorf("table output = %q", buf.String())
	}
}
