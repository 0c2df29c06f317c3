package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdcheck/pkg/langdetect"
)

func TestGuess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want string
	}{
		{"bash shebang", "#!/bin/bash\necho hello", "bash"},
		{"sh shebang", "#!/bin/sh\necho hello", "bash"},
		{"python shebang", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"shebang wins", "#!/bin/bash\ndef foo():\n    pass", "bash"},
		{"go", "package main\n\nfunc main() {}", "go"},
		{"python", "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", "python"},
		{"javascript", "const x = () => 42;\nconsole.log(x());", "javascript"},
		{"json", `{"key": "value"}`, "json"},
		{"yaml", "key: value\nother: 123\nlist:\n  - a\n  - b", "yaml"},
		{"rust", "fn main() {\n    println!(\"hi\");\n}", "rust"},
		{"sql", "SELECT * FROM users;", "sql"},
		{"html", "<!DOCTYPE html>\n<html></html>", "html"},
		{"dockerfile", "FROM golang:1.25\nRUN go build", "dockerfile"},
		{"empty", "   \n", "text"},
	}

	g := langdetect.New("text")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, g.Guess(tt.code))
		})
	}
}

func TestGuessFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", langdetect.New("none").Guess(""))
}

func BenchmarkGuess(b *testing.B) {
	g := langdetect.New("text")
	code := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}"
	for b.Loop() {
		g.Guess(code)
	}
}
