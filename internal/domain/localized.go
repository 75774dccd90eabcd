// Package domain defines the persistence models for the multilingual
// catalog (blog posts, diet programs, live classes), the transactional
// records (purchases, class tickets), support conversations, and user
// profiles. These types are mapped with GORM and form the core data layer
// of the application.
//
// This file holds the localized value types. Every display field is stored
// on the wire as one flat column per supported language (title_en, title_az,
// title_ru), and assembled in memory into a LocalizedText. The mapping is
// expressed once, via GORM embedded structs, instead of being repeated at
// every call site.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Supported language codes. These are fixed: a persisted record always
// carries a column per language, and an absent value scans to "".
const (
	LangEN = "en"
	LangAZ = "az"
	LangRU = "ru"
)

// Languages lists the supported language codes in canonical order.
var Languages = []string{LangEN, LangAZ, LangRU}

// LocalizedText carries one string per supported display language.
// It is embedded into entity structs with a column prefix, so a field
// declared as
//
//	Title LocalizedText `gorm:"embedded;embeddedPrefix:title_"`
//
// maps to the flat columns title_en, title_az, title_ru.
type LocalizedText struct {
	EN string `json:"en" gorm:"column:en;type:text;not null;default:''"`
	AZ string `json:"az" gorm:"column:az;type:text;not null;default:''"`
	RU string `json:"ru" gorm:"column:ru;type:text;not null;default:''"`
}

// In returns the value for the given language code, falling back to
// English when the requested language is unknown or empty.
func (t LocalizedText) In(lang string) string {
	switch lang {
	case LangAZ:
		if t.AZ != "" {
			return t.AZ
		}
	case LangRU:
		if t.RU != "" {
			return t.RU
		}
	}
	return t.EN
}

// IsComplete reports whether all three languages carry a non-empty value.
// Persisting an incomplete LocalizedText silently stores empty strings, so
// admin write paths validate with this before handing records to the store.
func (t LocalizedText) IsComplete() bool {
	return t.EN != "" && t.AZ != "" && t.RU != ""
}

// StringList is an ordered list of short strings stored as a single JSON
// array column. SQLite and Postgres both accept it as text; the list order
// is preserved across a round trip.
type StringList []string

// Value implements driver.Valuer. A nil list is stored as an empty array,
// never as NULL, so scans are uniform.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for text and blob column representations.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		if v == "" {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	case []byte:
		if len(v) == 0 {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("domain: cannot scan %T into StringList", src)
	}
}

// LocalizedStringList carries one ordered string list per language, stored
// as three parallel array columns (e.g. features_en, features_az,
// features_ru for program feature bullets).
type LocalizedStringList struct {
	EN StringList `json:"en" gorm:"column:en;type:text;not null;default:'[]'"`
	AZ StringList `json:"az" gorm:"column:az;type:text;not null;default:'[]'"`
	RU StringList `json:"ru" gorm:"column:ru;type:text;not null;default:'[]'"`
}

// In returns the list for the given language code, falling back to English.
func (l LocalizedStringList) In(lang string) []string {
	switch lang {
	case LangAZ:
		if len(l.AZ) > 0 {
			return l.AZ
		}
	case LangRU:
		if len(l.RU) > 0 {
			return l.RU
		}
	}
	return l.EN
}
