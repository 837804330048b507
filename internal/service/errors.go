package service

import "errors"

// Typed failures surfaced by the engine. Controllers map these to HTTP
// statuses with errors.Is; storage-layer duplicate-key errors are
// interpreted before they reach this taxonomy.
var (
	// ErrIncompleteProfile is returned when the user has not declared an
	// education level and at least one interest.
	ErrIncompleteProfile = errors.New("profile incomplete: education level and at least one interest required")

	// ErrInvalidSession covers wrong owner, wrong status, or not found.
	// Ownership failures collapse into this error so responses do not
	// reveal whether a foreign session exists.
	ErrInvalidSession = errors.New("session not found or not accessible")

	// ErrSessionExpired is returned when a write reaches a session past
	// its deadline. The session is flipped to expired at that point.
	ErrSessionExpired = errors.New("session has expired")

	// ErrQuestionNotInSession is returned when an answer references a
	// question outside the session's question list.
	ErrQuestionNotInSession = errors.New("question is not part of this session")

	// ErrPoolExhausted is returned when a subject ends with zero questions
	// after both the pool query and the AI backfill.
	ErrPoolExhausted = errors.New("question pool exhausted")

	// ErrNoAnswers rejects submit/evaluate with nothing to grade.
	ErrNoAnswers = errors.New("no answers recorded for session")

	// ErrNotSubmitted is returned when evaluation or result reads reach a
	// session that has not left in_progress.
	ErrNotSubmitted = errors.New("session has not been submitted")

	// ErrUpstreamGeneration marks an AI generator failure. The session
	// builder degrades it to ErrPoolExhausted when it leaves a subject
	// empty.
	ErrUpstreamGeneration = errors.New("question generation upstream failed")
)
