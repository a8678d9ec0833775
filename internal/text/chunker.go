package text

import (
	"regexp"
	"strings"
)

// sentenceBoundary matches sentence-ending punctuation followed by
// whitespace. The punctuation stays with the sentence it terminates.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// SplitSentences splits text on sentence-boundary punctuation. The final
// fragment is kept even without a terminator so no input is ever dropped.
func SplitSentences(text string) []string {
	var sentences []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[last:loc[0]+1])
		last = loc[1]
	}
	if last < len(text) {
		sentences = append(sentences, text[last:])
	}
	return sentences
}

// Chunk splits text into overlapping passages of roughly chunkSize
// characters. Sentences are accumulated greedily; when the next sentence
// would push a non-empty chunk past chunkSize, the chunk is flushed and the
// next one is seeded with the trailing one or two sentences of the previous
// chunk. chunkSize is a soft target: a single sentence longer than
// chunkSize is accepted whole, never truncated.
//
// overlap is advisory only — the seeded overlap is always the trailing one
// or two sentences, whichever keeps it non-empty.
//
// Empty (or all-whitespace) input yields no chunks; anything shorter than
// chunkSize yields exactly one. The function is deterministic and
// side-effect-free.
func Chunk(text string, chunkSize, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := SplitSentences(text)

	var chunks []string
	var current []string
	currentLen := 0

	for _, sentence := range sentences {
		sentenceLen := len(sentence)

		if currentLen+sentenceLen > chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))

			overlapText := current[len(current)-1]
			if len(current) >= 2 {
				overlapText = strings.Join(current[len(current)-2:], " ")
			}
			current = []string{overlapText, sentence}
			currentLen = len(overlapText) + sentenceLen
		} else {
			current = append(current, sentence)
			currentLen += sentenceLen
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
