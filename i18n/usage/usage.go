// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package usage defines the closed set of template usages that a form layer
attaches pattern lists to. Every usage has exactly one string form, and
[Parse] is the exact inverse of [Usage.String].
*/
package usage

import (
	"errors"
	"fmt"
)

// ErrUnknownUsage is returned by [Parse] for strings that name no usage.
var ErrUnknownUsage = errors.New("unknown template usage")

// Usage identifies what a template is used for.
type Usage int

// Template usages.
const (
	None Usage = iota
	Bool
	BoolHelp
	Clarify
	Confirmation
	CurrentChoice
	DateTime
	DateTimeHelp
	Double
	DoubleHelp
	EnumManyNumberHelp
	EnumOneNumberHelp
	EnumManyWordHelp
	EnumOneWordHelp
	EnumSelectOne
	EnumSelectMany
	Feedback
	Help
	HelpClarify
	HelpConfirm
	HelpNavigation
	Integer
	IntegerHelp
	Navigation
	NavigationCommandHelp
	NavigationFormat
	NavigationHelp
	NoPreference
	NotUnderstood
	StatusFormat
	String
	StringHelp
	Unspecified

	count
)

var names = [count]string{
	None:                  "None",
	Bool:                  "Bool",
	BoolHelp:              "BoolHelp",
	Clarify:               "Clarify",
	Confirmation:          "Confirmation",
	CurrentChoice:         "CurrentChoice",
	DateTime:              "DateTime",
	DateTimeHelp:          "DateTimeHelp",
	Double:                "Double",
	DoubleHelp:            "DoubleHelp",
	EnumManyNumberHelp:    "EnumManyNumberHelp",
	EnumOneNumberHelp:     "EnumOneNumberHelp",
	EnumManyWordHelp:      "EnumManyWordHelp",
	EnumOneWordHelp:       "EnumOneWordHelp",
	EnumSelectOne:         "EnumSelectOne",
	EnumSelectMany:        "EnumSelectMany",
	Feedback:              "Feedback",
	Help:                  "Help",
	HelpClarify:           "HelpClarify",
	HelpConfirm:           "HelpConfirm",
	HelpNavigation:        "HelpNavigation",
	Integer:               "Integer",
	IntegerHelp:           "IntegerHelp",
	Navigation:            "Navigation",
	NavigationCommandHelp: "NavigationCommandHelp",
	NavigationFormat:      "NavigationFormat",
	NavigationHelp:        "NavigationHelp",
	NoPreference:          "NoPreference",
	NotUnderstood:         "NotUnderstood",
	StatusFormat:          "StatusFormat",
	String:                "String",
	StringHelp:            "StringHelp",
	Unspecified:           "Unspecified",
}

var byName = func() map[string]Usage {
	m := make(map[string]Usage, count)
	for u, name := range names {
		m[name] = Usage(u)
	}

	return m
}()

// String returns the stable name of u. Values outside the enumeration
// render as "Usage(n)", which [Parse] rejects.
func (u Usage) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Usage(%d)", int(u))
	}

	return names[u]
}

// Valid reports whether u is one of the declared usages.
func (u Usage) Valid() bool {
	return u >= 0 && u < count
}

// Parse returns the usage named s. Matching is case-sensitive.
func Parse(s string) (Usage, error) {
	if u, ok := byName[s]; ok {
		return u, nil
	}

	return None, fmt.Errorf("%w: %q", ErrUnknownUsage, s)
}

// All returns every usage in declaration order.
func All() []Usage {
	out := make([]Usage, count)
	for i := range out {
		out[i] = Usage(i)
	}

	return out
}

// MarshalText implements [encoding.TextMarshaler].
func (u Usage) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUsage, int(u))
	}

	return []byte(names[u]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *Usage) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*u = parsed

	return nil
}
