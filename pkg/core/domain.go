// Package core holds the collection domain: the three record kinds, the
// in-memory Store, and the Service that applies CRUD operations with
// write-through persistence.
package core

import (
	"fmt"
	"time"
)

// Date is a calendar day in YYYY-MM-DD form.
type Date string

const dateLayout = "2006-01-02"

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// Time parses the date at midnight UTC.
func (d Date) Time() (time.Time, error) {
	return time.Parse(dateLayout, string(d))
}

// Valid reports whether d is a well-formed date.
func (d Date) Valid() bool {
	_, err := d.Time()
	return err == nil
}

func (d Date) String() string { return string(d) }

// Record is satisfied by the value types stored in a Collection.
type Record[T any] interface {
	RecordID() string
	Label() string
	Added() Date
	withIdentity(id string, added Date) T
	compare(other T, key SortKey) int
}

// EventType represents the type of change observed on the store file.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change made to the store file outside this process.
type Event struct {
	Type      EventType
	ID        string // path of the store file
	Timestamp int64  // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

type refKind int

const (
	refID refKind = iota
	refName
	refIndex
)

// Ref identifies a record inside a collection, either by its stable ID,
// by display name (first match wins), or by insertion position.
type Ref struct {
	kind  refKind
	key   string
	index int
}

// ByID references a record by its surrogate identifier.
func ByID(id string) Ref { return Ref{kind: refID, key: id} }

// ByName references the first record whose label equals name exactly.
func ByName(name string) Ref { return Ref{kind: refName, key: name} }

// ByIndex references a record by its 0-based insertion position.
func ByIndex(i int) Ref { return Ref{kind: refIndex, index: i} }

func (r Ref) String() string {
	switch r.kind {
	case refID:
		return "id " + r.key
	case refName:
		return fmt.Sprintf("name %q", r.key)
	default:
		return fmt.Sprintf("index %d", r.index)
	}
}

func locate[T Record[T]](items []T, ref Ref) int {
	switch ref.kind {
	case refIndex:
		if ref.index >= 0 && ref.index < len(items) {
			return ref.index
		}
	case refID:
		for i, it := range items {
			if it.RecordID() == ref.key {
				return i
			}
		}
	case refName:
		for i, it := range items {
			if it.Label() == ref.key {
				return i
			}
		}
	}
	return -1
}
