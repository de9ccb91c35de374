package telegram

import (
	"strings"
	"testing"
)

func TestChunkTextShortTextSingleChunk(t *testing.T) {
	chunks := ChunkText("halo\ndunia", 100)
	if len(chunks) != 1 || chunks[0] != "halo\ndunia" {
		t.Fatalf("unexpected chunks: %q", chunks)
	}
}

func TestChunkTextSplitsOnLineBoundaries(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = strings.Repeat("x", 30)
	}
	text := strings.Join(lines, "\n")

	chunks := ChunkText(text, 100)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	var rejoined []string
	for _, c := range chunks {
		if len(c) > 100 {
			t.Fatalf("chunk exceeds limit: %d", len(c))
		}
		rejoined = append(rejoined, strings.Split(c, "\n")...)
	}
	if len(rejoined) != len(lines) {
		t.Fatalf("expected all %d lines preserved, got %d", len(lines), len(rejoined))
	}
}

func TestChunkTextLongSingleLine(t *testing.T) {
	text := strings.Repeat("y", 250)
	chunks := ChunkText(text, 100)
	if len(chunks) != 1 || chunks[0] != text {
		t.Fatalf("expected oversize line kept whole, got %d chunks", len(chunks))
	}
}
