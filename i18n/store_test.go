// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/locstore/locstore/i18n/usage"
)

type color int

const (
	red color = iota
	green
)

func (c color) String() string {
	return [...]string{"Red", "Green"}[c]
}

func TestScalarsAndLists(t *testing.T) {
	t.Parallel()

	s := New("en")

	_, ok := s.Lookup("greeting")
	assert.False(t, ok)

	s.Add("greeting", "hi")
	s.Add("greeting", "hello")

	v, ok := s.Lookup("greeting")
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	in := []string{"b", "a", "c"}
	s.AddValues("letters", in)
	in[0] = "z"

	got, ok := s.LookupValues("letters")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a", "c"}, got, "order kept and input copied")

	got[1] = "changed"
	again, _ := s.LookupValues("letters")
	assert.Equal(t, []string{"b", "a", "c"}, again, "result is a copy")

	s.AddValues("none", nil)
	got, ok = s.LookupValues("none")
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestRemoveFromEveryTable(t *testing.T) {
	t.Parallel()

	s := New("en")
	s.Add("x", "v")
	s.AddValues("x", []string{"v"})
	s.Add("y", "kept")

	s.Remove("x")
	s.Remove("absent")

	_, ok := s.Lookup("x")
	assert.False(t, ok)

	_, ok = s.LookupValues("x")
	assert.False(t, ok)

	_, ok = s.Lookup("y")
	assert.True(t, ok)
}

func TestRemoveTemplate(t *testing.T) {
	t.Parallel()

	s := New("en")
	s.AddTemplate("Name", TemplateEntry{Usage: usage.Help, Patterns: []string{"p"}})

	s.Remove(templateKey("Name", usage.Help))

	_, ok := s.LookupTemplate("Name", usage.Help)
	assert.False(t, ok)
}

func TestDictionary(t *testing.T) {
	t.Parallel()

	s := New("fr")
	AddDictionary(s, "Color", map[color]string{red: "Rouge"})
	AddDictionaryValues(s, "Color", map[color][]string{green: {"Vert", "Verte"}})

	v, ok := s.Lookup("Color;Red")
	assert.True(t, ok)
	assert.Equal(t, "Rouge", v)

	inOut := map[color]string{red: "Red", green: "Green"}
	assert.Equal(t, 1, LookupDictionary(s, "Color", inOut))
	assert.Equal(t, map[color]string{red: "Rouge", green: "Green"}, inOut)

	inOutValues := map[color][]string{red: {"Red"}, green: {"Green"}}
	assert.Equal(t, 1, LookupDictionaryValues(s, "Color", inOutValues))
	assert.Equal(t, map[color][]string{red: {"Red"}, green: {"Vert", "Verte"}}, inOutValues)
}

func TestDictionaryEscapesKeys(t *testing.T) {
	t.Parallel()

	s := New("en")
	AddDictionary(s, "a;b", map[Text]string{"c;d": "v"})

	_, ok := s.Lookup("a;b;c;d")
	assert.False(t, ok)

	v, ok := s.Lookup("a__semib;c__semid")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	inOut := map[Text]string{"c;d": "default", "e": "default"}
	LookupDictionary(s, "a;b", inOut)
	assert.Equal(t, map[Text]string{"c;d": "v", "e": "default"}, inOut)
}

func TestTemplates(t *testing.T) {
	t.Parallel()

	s := New("en")
	s.AddTemplates("Name", map[usage.Usage]TemplateEntry{
		usage.Help:          {Usage: usage.Help, Patterns: []string{"Enter your name"}},
		usage.NotUnderstood: {Usage: usage.NotUnderstood, Patterns: []string{"Huh?", "Say again?"}},
	})

	got, ok := s.LookupTemplate("Name", usage.NotUnderstood)
	require.True(t, ok)
	assert.Equal(t, []string{"Huh?", "Say again?"}, got)

	inOut := map[usage.Usage]TemplateEntry{
		usage.Help:     {Usage: usage.Help, Patterns: []string{"default help"}},
		usage.Feedback: {Usage: usage.Feedback, Patterns: []string{"default feedback"}},
	}
	assert.Equal(t, 1, s.LookupTemplates("Name", inOut))
	assert.Equal(t, []string{"Enter your name"}, inOut[usage.Help].Patterns)
	assert.Equal(t, []string{"default feedback"}, inOut[usage.Feedback].Patterns)

	outOfRange := usage.Usage(len(usage.All()) + 100)
	require.False(t, outOfRange.Valid())

	assert.Panics(t, func() {
		s.AddTemplate("Name", TemplateEntry{Usage: usage.Usage(-1)})
	})
	assert.Panics(t, func() {
		s.AddTemplate("Name", TemplateEntry{Usage: outOfRange})
	})
	assert.Equal(t, 2, s.Len().Templates, "a rejected entry is not stored")
}

func TestLenKeysClone(t *testing.T) {
	t.Parallel()

	s := New("en", WithStrictMissingKeys(true))
	s.Add("b", "1")
	s.Add("a", "2")
	s.AddValues("l", []string{"x"})
	s.AddTemplate("F", TemplateEntry{Usage: usage.Help, Patterns: []string{"p"}})

	assert.Equal(t, Sizes{Scalars: 2, Lists: 1, Templates: 1}, s.Len())
	assert.Equal(t, 4, s.Len().Total())

	scalars, lists, templates := s.Keys()
	assert.Equal(t, []string{"a", "b"}, scalars)
	assert.Equal(t, []string{"l"}, lists)
	assert.Equal(t, []string{"F;Help"}, templates)

	c := s.Clone()
	c.Add("a", "changed")
	c.AddValues("l", []string{"y"})
	c.SetLocale("fr")

	v, _ := s.Lookup("a")
	assert.Equal(t, "2", v)

	l, _ := s.LookupValues("l")
	assert.Equal(t, []string{"x"}, l)
	assert.Equal(t, "en", s.Locale())
	assert.True(t, c.strict)
}

func TestTag(t *testing.T) {
	t.Parallel()

	tag, err := New("pt_BR").Tag()
	require.NoError(t, err)
	assert.Equal(t, "pt-BR", tag.String())

	_, err = New("not a locale").Tag()
	assert.Error(t, err)
}
