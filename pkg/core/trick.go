package core

import (
	"cmp"
	"strings"
)

// AudienceSize is the audience a trick plays best for.
type AudienceSize string

const (
	AudienceSolo   AudienceSize = "solo"   // one spectator
	AudienceSmall  AudienceSize = "small"  // 2-5
	AudienceMedium AudienceSize = "medium" // 5-10
	AudienceLarge  AudienceSize = "large"  // 10+
	AudienceAny    AudienceSize = "any"
)

var AudienceSizes = []AudienceSize{AudienceSolo, AudienceSmall, AudienceMedium, AudienceLarge, AudienceAny}

func ParseAudienceSize(s string) (AudienceSize, error) {
	return parseEnum("audience_size", s, AudienceSizes)
}

// MagicTrick is a trick in the repertoire. PerformanceTime is in minutes,
// zero when unknown.
type MagicTrick struct {
	ID               string       `json:"id" yaml:"id"`
	Name             string       `json:"name" yaml:"name"`
	Genre            string       `json:"genre" yaml:"genre"`
	AmazementRating  int          `json:"amazement_rating" yaml:"amazement_rating"`
	DifficultyRating int          `json:"difficulty_rating" yaml:"difficulty_rating"`
	VideoURL         string       `json:"video_url,omitempty" yaml:"video_url,omitempty"`
	PerformanceTime  int          `json:"performance_time,omitempty" yaml:"performance_time,omitempty"`
	PropsNeeded      string       `json:"props_needed,omitempty" yaml:"props_needed,omitempty"`
	AudienceSize     AudienceSize `json:"audience_size" yaml:"audience_size"`
	Notes            string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	AddedDate        Date         `json:"added_date" yaml:"added_date"`
}

func (m MagicTrick) RecordID() string { return m.ID }
func (m MagicTrick) Label() string    { return m.Name }
func (m MagicTrick) Added() Date      { return m.AddedDate }

func (m MagicTrick) withIdentity(id string, added Date) MagicTrick {
	m.ID = id
	m.AddedDate = added
	return m
}

func (m MagicTrick) compare(o MagicTrick, key SortKey) int {
	switch key {
	case SortLabel:
		return strings.Compare(m.Name, o.Name)
	case SortRating:
		return cmp.Compare(m.AmazementRating, o.AmazementRating)
	case SortDifficulty:
		return cmp.Compare(m.DifficultyRating, o.DifficultyRating)
	case SortDuration:
		return cmp.Compare(m.PerformanceTime, o.PerformanceTime)
	case SortAdded:
		return strings.Compare(string(m.AddedDate), string(o.AddedDate))
	}
	return 0
}

// Validate checks the field ranges that the store itself does not enforce.
func (m MagicTrick) Validate() error {
	if err := checkLabel(m.Name); err != nil {
		return err
	}
	if err := checkRating("amazement_rating", float64(m.AmazementRating), 1); err != nil {
		return err
	}
	if err := checkRating("difficulty_rating", float64(m.DifficultyRating), 1); err != nil {
		return err
	}
	if m.PerformanceTime < 0 {
		return invalid("performance_time", "must not be negative, got %d", m.PerformanceTime)
	}
	if err := checkEnum("audience_size", m.AudienceSize, AudienceSizes); err != nil {
		return err
	}
	return checkURL("video_url", m.VideoURL)
}
