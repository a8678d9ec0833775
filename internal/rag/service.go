package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"studyhall/backend/internal/index"
	"studyhall/backend/internal/llm"
	"studyhall/backend/internal/middleware"
)

const (
	defaultAnswerTopK = 5
	defaultQuizTopK   = 10
	flashcardTopK     = 10

	// quizContextChunks caps how many retrieved chunks feed the quiz
	// prompt, regardless of how many survived re-ranking.
	quizContextChunks = 10

	// groundedConfidenceFloor keeps grounded answers from reporting
	// near-zero confidence just because raw distances are large.
	groundedConfidenceFloor = 0.3

	// generalKnowledgeConfidence marks answers produced without any
	// document evidence: unverified but plausible. Distinguishable from
	// both grounded confidence (>= 0.3 with sources) and the 0.0 of an
	// unpopulated corpus.
	generalKnowledgeConfidence = 0.75

	sourceExcerptLimit = 300

	// Relevance label thresholds over score = 1/(1+distance). Calibrated
	// empirically for the embedding model in use, not derived.
	highRelevanceThreshold   = 0.7
	mediumRelevanceThreshold = 0.5

	genericQuizQuery     = "study material"
	genericCardQuery     = "key concepts"
	quizTopicQueryFormat = "about %s concepts definitions examples"
)

const (
	msgNoCorpus       = "No documents have been uploaded yet. Please upload documents first before asking questions."
	msgQuizNoCorpus   = "No documents uploaded yet. Please upload documents first."
	msgQuizNoContent  = "No relevant content found. Try uploading more documents or using a different topic."
	msgCardsNoCorpus  = "No documents uploaded yet. Please upload documents first or provide custom text."
	msgCardsNoContent = "No content found. Please upload documents first or provide custom text."
)

// Service orchestrates the retrieval-and-generation pipeline. It owns no
// persistent state of its own; it is constructed once at startup and shared
// across requests.
type Service struct {
	embedder  Embedder
	generator Generator
	index     *index.Index
	logger    *QueryLogger
	timeout   time.Duration
}

func NewService(e Embedder, g Generator, ix *index.Index, ql *QueryLogger, timeout time.Duration) *Service {
	return &Service{embedder: e, generator: g, index: ix, logger: ql, timeout: timeout}
}

// Ingest embeds a document's chunk texts, appends them to the index and
// persists it. Chunk order becomes the per-document chunk_index.
func (s *Service) Ingest(ctx context.Context, documentID string, chunks []string) error {
	if len(chunks) == 0 {
		return nil
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	vectors, err := s.embedder.EmbedBatch(callCtx, chunks)
	if err != nil {
		return fmt.Errorf("embed document %s: %w", documentID, err)
	}

	meta := make([]index.Meta, len(chunks))
	for i, chunk := range chunks {
		meta[i] = index.Meta{DocumentID: documentID, ChunkIndex: i, Text: chunk}
	}

	if err := s.index.Add(vectors, meta); err != nil {
		return fmt.Errorf("index document %s: %w", documentID, err)
	}
	if err := s.index.Save(); err != nil {
		return fmt.Errorf("persist index after %s: %w", documentID, err)
	}

	slog.InfoContext(ctx, "document ingested", "document_id", documentID, "chunks", len(chunks))
	return nil
}

// Answer runs the question-answering workflow. It never returns an error:
// every failure is folded into a well-formed result.
func (s *Service) Answer(ctx context.Context, req AnswerRequest) AnswerResult {
	start := time.Now()
	res := s.answer(ctx, req)
	s.log(ctx, "answer", req.Question, len(res.Sources), res.Outcome, time.Since(start))
	return res
}

func (s *Service) answer(ctx context.Context, req AnswerRequest) AnswerResult {
	topK := req.TopK
	if topK <= 0 {
		topK = defaultAnswerTopK
	}

	// The corpus never receiving data is a distinct situation from a query
	// matching nothing, and is reported without a model call.
	if s.index.Len() == 0 {
		return AnswerResult{Outcome: OutcomeEmpty, Answer: msgNoCorpus, Sources: []Source{}, Confidence: 0.0}
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	queryVec, err := s.embedder.Embed(callCtx, req.Question)
	if err != nil {
		return s.failedAnswer(ctx, err)
	}

	results := filterByDocuments(s.index.Search(queryVec, topK), req.DocumentIDs)

	personalization := personalizationClause(req.Majors, req.Year)

	var prompt string
	if len(results) > 0 {
		prompt = buildGroundedPrompt(req.Question, results, personalization)
	} else {
		prompt = buildGeneralKnowledgePrompt(req.Question, personalization)
	}

	answer, err := s.generator.Complete(callCtx, personaPrompt, prompt, llm.CompleteOptions{
		Temperature:     0.7,
		MaxOutputTokens: 500,
	})
	if err != nil {
		return s.failedAnswer(ctx, err)
	}

	if len(results) == 0 {
		return AnswerResult{Outcome: OutcomeOK, Answer: answer, Sources: []Source{}, Confidence: generalKnowledgeConfidence}
	}

	return AnswerResult{
		Outcome:    OutcomeOK,
		Answer:     answer,
		Sources:    buildSources(results),
		Confidence: groundedConfidence(results),
	}
}

func (s *Service) failedAnswer(ctx context.Context, err error) AnswerResult {
	classified := llm.Classify(err)
	slog.ErrorContext(ctx, "answer pipeline failed", "error", err)
	return AnswerResult{
		Outcome:    OutcomeFailed,
		Answer:     llm.UserMessage(classified),
		Sources:    []Source{},
		Confidence: 0.0,
	}
}

// Quiz runs the quiz-generation workflow.
func (s *Service) Quiz(ctx context.Context, req QuizRequest) QuizResult {
	start := time.Now()
	res := s.quiz(ctx, req)
	s.log(ctx, "quiz", req.Topic, len(res.Questions), res.Outcome, time.Since(start))
	return res
}

func (s *Service) quiz(ctx context.Context, req QuizRequest) QuizResult {
	topic := resolvedTopic(req.Topic)
	numQuestions := req.NumQuestions
	if numQuestions <= 0 {
		numQuestions = 5
	}
	questionType := req.QuestionType
	if questionType == "" {
		questionType = "multiple_choice"
	}
	topK := req.TopK
	if topK <= 0 {
		topK = defaultQuizTopK
	}

	if s.index.Len() == 0 {
		return QuizResult{Outcome: OutcomeEmpty, Questions: []QuizQuestion{}, Topic: topic, Error: msgQuizNoCorpus}
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	// A topic widens retrieval, then re-ranks by verbatim-topic boost; the
	// generic query takes the nearest chunks as-is.
	query := genericQuizQuery
	k := topK
	if req.Topic != "" {
		query = fmt.Sprintf(quizTopicQueryFormat, req.Topic)
		k = 2 * topK
	}

	queryVec, err := s.embedder.Embed(callCtx, query)
	if err != nil {
		return s.failedQuiz(ctx, topic, err)
	}

	results := filterByDocuments(s.index.Search(queryVec, k), req.DocumentIDs)
	results = boostByTopic(results, req.Topic, topK)

	if len(results) == 0 {
		return QuizResult{Outcome: OutcomeEmpty, Questions: []QuizQuestion{}, Topic: topic, Error: msgQuizNoContent}
	}

	material := concatTexts(results, quizContextChunks)

	raw, err := s.generator.Complete(callCtx, "You are a quiz generator for study materials.",
		buildQuizPrompt(numQuestions, questionType, material), llm.CompleteOptions{
			Temperature: 0.8,
			JSON:        true,
		})
	if err != nil {
		return s.failedQuiz(ctx, topic, err)
	}

	questions, err := parseQuizJSON(raw)
	if err != nil {
		return s.failedQuiz(ctx, topic, err)
	}

	return QuizResult{Outcome: OutcomeOK, Questions: questions, Topic: topic}
}

func (s *Service) failedQuiz(ctx context.Context, topic string, err error) QuizResult {
	classified := llm.Classify(err)
	slog.ErrorContext(ctx, "quiz pipeline failed", "error", err)
	return QuizResult{
		Outcome:   OutcomeFailed,
		Questions: []QuizQuestion{},
		Topic:     topic,
		Error:     llm.UserMessage(classified),
	}
}

// Flashcards runs the flashcard-generation workflow. Supplied text is used
// verbatim as context and bypasses retrieval entirely.
func (s *Service) Flashcards(ctx context.Context, req FlashcardRequest) FlashcardResult {
	start := time.Now()
	res := s.flashcards(ctx, req)
	s.log(ctx, "flashcards", "", len(res.Cards), res.Outcome, time.Since(start))
	return res
}

func (s *Service) flashcards(ctx context.Context, req FlashcardRequest) FlashcardResult {
	numCards := req.NumCards
	if numCards <= 0 {
		numCards = 10
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	material := req.Text
	if material == "" {
		if s.index.Len() == 0 {
			return FlashcardResult{Outcome: OutcomeEmpty, Cards: []Flashcard{}, Error: msgCardsNoCorpus}
		}

		queryVec, err := s.embedder.Embed(callCtx, genericCardQuery)
		if err != nil {
			return s.failedFlashcards(ctx, err)
		}

		results := filterByDocuments(s.index.Search(queryVec, flashcardTopK), req.DocumentIDs)
		if len(results) == 0 {
			return FlashcardResult{Outcome: OutcomeEmpty, Cards: []Flashcard{}, Error: msgCardsNoContent}
		}
		material = concatTexts(results, len(results))
	}

	raw, err := s.generator.Complete(callCtx, "You are a flashcard generator.",
		buildFlashcardPrompt(numCards, material), llm.CompleteOptions{
			Temperature: 0.7,
			JSON:        true,
		})
	if err != nil {
		return s.failedFlashcards(ctx, err)
	}

	cards, err := parseFlashcardJSON(raw)
	if err != nil {
		return s.failedFlashcards(ctx, err)
	}

	return FlashcardResult{Outcome: OutcomeOK, Cards: cards}
}

func (s *Service) failedFlashcards(ctx context.Context, err error) FlashcardResult {
	classified := llm.Classify(err)
	slog.ErrorContext(ctx, "flashcard pipeline failed", "error", err)
	return FlashcardResult{
		Outcome: OutcomeFailed,
		Cards:   []Flashcard{},
		Error:   llm.UserMessage(classified),
	}
}

func (s *Service) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Service) log(ctx context.Context, task, query string, numResults int, outcome Outcome, duration time.Duration) {
	if s.logger == nil {
		return
	}
	entry := QueryLogEntry{
		Task:       task,
		Query:      query,
		NumResults: numResults,
		Outcome:    outcome,
		Duration:   duration,
	}
	if id := middleware.GetCorrelationID(ctx); id != "unknown" {
		entry.CorrelationID = id
	}
	s.logger.Log(entry)
}

func resolvedTopic(topic string) string {
	if topic == "" {
		return "general"
	}
	return topic
}

func groundedConfidence(results []index.SearchResult) float64 {
	var sum float64
	for _, r := range results {
		sum += r.Score
	}
	mean := sum / float64(len(results))

	if mean < groundedConfidenceFloor {
		return groundedConfidenceFloor
	}
	if mean > 1.0 {
		return 1.0
	}
	return mean
}

func buildSources(results []index.SearchResult) []Source {
	sources := make([]Source, 0, len(results))
	for _, r := range results {
		sources = append(sources, Source{
			Text:       excerpt(r.Text),
			DocumentID: r.DocumentID,
			ChunkIndex: r.ChunkIndex,
			Score:      r.Score,
			Relevance:  relevanceLabel(r.Score),
		})
	}
	return sources
}

func excerpt(text string) string {
	if len(text) <= sourceExcerptLimit {
		return text
	}
	return text[:sourceExcerptLimit] + "..."
}

func relevanceLabel(score float64) string {
	switch {
	case score > highRelevanceThreshold:
		return "High"
	case score > mediumRelevanceThreshold:
		return "Medium"
	default:
		return "Low"
	}
}

func concatTexts(results []index.SearchResult, limit int) string {
	if limit > len(results) {
		limit = len(results)
	}
	texts := make([]string, 0, limit)
	for _, r := range results[:limit] {
		texts = append(texts, r.Text)
	}
	return strings.Join(texts, "\n\n")
}
