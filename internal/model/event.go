// Package model defines core data structures for CaseFlow.
package model

import "time"

// Source identifies where an event came from.
type Source struct {
	Table string `json:"table"`
	File  string `json:"file"`
	Row   int    `json:"row"`
}

// Event is one timestamped activity extracted from a table row.
// Events are immutable once created; rows whose timestamp cannot be
// resolved are dropped upstream and never become events.
type Event struct {
	// EntityID identifies the acting party (customer, policyholder, ...).
	// Never empty; rows without an identifier column resolve to "unknown".
	EntityID string

	// CaseHint is an explicit case/session/journey identifier, present
	// only when the owning table carries such a column.
	CaseHint string

	// EventType is the canonical vocabulary label. Never empty.
	EventType string

	// Timestamp is the resolved instant for the row.
	Timestamp time.Time

	// Source records the originating table, file and row ordinal.
	Source Source

	// RawRow is a string-normalized snapshot of the row, kept for
	// explanation text.
	RawRow map[string]string

	// seq is the position in the global discovery stream, used as the
	// stable tie-break when timestamps collide.
	seq int
}

// Seq returns the event's discovery-order sequence number.
func (e *Event) Seq() int { return e.seq }

// SetSeq assigns the discovery-order sequence number. Called exactly once
// by the engine while merging table streams.
func (e *Event) SetSeq(n int) { e.seq = n }

// Case is one reconstructed lifecycle instance for an entity.
// Created by the segmentation engine and never mutated afterwards.
type Case struct {
	// ID is a dense positive integer assigned by global ascending
	// first-timestamp rank. IDs form a gapless permutation of 1..N.
	ID int

	// EntityID is the acting party the case belongs to.
	EntityID string

	// Events is the case's activity list, timestamp ascending with ties
	// broken by discovery order. Never empty.
	Events []*Event
}

// First returns the case's earliest event.
func (c *Case) First() *Event { return c.Events[0] }

// Last returns the case's latest event.
func (c *Case) Last() *Event { return c.Events[len(c.Events)-1] }

// Sequence returns the derived event-type sequence.
func (c *Case) Sequence() []string {
	seq := make([]string, len(c.Events))
	for i, e := range c.Events {
		seq[i] = e.EventType
	}
	return seq
}
