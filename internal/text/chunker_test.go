package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	t.Run("basic punctuation", func(t *testing.T) {
		got := SplitSentences("One. Two! Three? Four")
		assert.Equal(t, []string{"One.", "Two!", "Three?", "Four"}, got)
	})

	t.Run("punctuation without trailing whitespace does not split", func(t *testing.T) {
		got := SplitSentences("e.g.the end")
		assert.Equal(t, []string{"e.g.the end"}, got)
	})

	t.Run("trailing terminator keeps last sentence", func(t *testing.T) {
		got := SplitSentences("Only one sentence.")
		assert.Equal(t, []string{"Only one sentence."}, got)
	})
}

func TestChunk(t *testing.T) {
	t.Run("empty input yields zero chunks", func(t *testing.T) {
		assert.Empty(t, Chunk("", 500, 50))
		assert.Empty(t, Chunk("   \n\t  ", 500, 50))
	})

	t.Run("short input yields exactly one chunk", func(t *testing.T) {
		text := "Mitosis is cell division. It has four phases."
		chunks := Chunk(text, 500, 50)
		assert.Len(t, chunks, 1)
		assert.Equal(t, text, chunks[0])
	})

	t.Run("long input is split with sentence overlap", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 20; i++ {
			sb.WriteString("This sentence pads the chunk with enough characters to matter. ")
		}
		chunks := Chunk(sb.String(), 200, 50)
		assert.Greater(t, len(chunks), 1)

		// Each flushed chunk seeds the next one, so consecutive chunks
		// share their boundary sentences.
		for i := 1; i < len(chunks); i++ {
			prev := chunks[i-1]
			lastSentence := prev[strings.LastIndex(strings.TrimSpace(prev[:len(prev)-1]), ".")+1:]
			assert.Contains(t, chunks[i], strings.TrimSpace(lastSentence))
		}
	})

	t.Run("oversized sentence accepted whole", func(t *testing.T) {
		long := strings.Repeat("word ", 200) + "end."
		chunks := Chunk(long, 100, 10)
		assert.Len(t, chunks, 1)
		assert.Equal(t, strings.TrimSpace(long), chunks[0])
	})

	t.Run("no chunk splits mid-sentence", func(t *testing.T) {
		text := "Alpha is first. Beta is second. Gamma is third. Delta is fourth. Epsilon is fifth."
		chunks := Chunk(text, 40, 10)
		for _, c := range chunks {
			assert.True(t, strings.HasSuffix(c, "."), "chunk should end on a sentence boundary: %q", c)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		text := "One sentence here. Another one there! A question? And a closer."
		first := Chunk(text, 30, 10)
		second := Chunk(text, 30, 10)
		assert.Equal(t, first, second)
	})

	t.Run("overlap preserves total content", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 15; i++ {
			sb.WriteString("Every sentence in this block carries some weight. ")
		}
		text := strings.TrimSpace(sb.String())
		chunks := Chunk(text, 150, 50)

		total := 0
		for _, c := range chunks {
			total += len(c)
		}
		assert.GreaterOrEqual(t, total, len(text))
	})
}
