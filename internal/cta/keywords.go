package cta

import (
	"strings"
	"unicode"
)

// DefaultPhrases are the CTA phrases recognized out of the box (Turkish and English).
var DefaultPhrases = []string{
	"satın al", "sepete ekle", "hemen al", "sipariş ver", "teklif al", "kayıt ol",
	"üye ol", "giriş yap", "başvur", "incele", "keşfet", "sorgula", "devamı",
	"daha fazla", "bilgi al", "tümünü gör", "buy now", "add to cart", "shop now",
	"sign up", "register", "login", "learn more", "read more", "discover",
	"explore", "get started", "altyapı sorgula", "contact us", "detaylı incele",
}

// DefaultVerbs are single-word action verbs; a match is weaker evidence than a phrase.
var DefaultVerbs = []string{
	"al", "ekle", "ver", "ol", "yap", "başvur", "incele", "keşfet", "sorgula",
	"gör", "tıkla", "başla", "izle", "dinle", "buy", "add", "shop", "sign",
	"register", "login", "learn", "read", "discover", "explore", "get", "watch",
	"listen",
}

// Normalize lowercases text and collapses every run of non-alphanumeric
// characters into a single space.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	space := false
	for _, r := range text {
		if r == 'İ' {
			r = 'i'
		}
		r = unicode.ToLower(r)
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
			continue
		}
		space = true
	}
	return b.String()
}

// Lexicon matches normalized text against CTA phrases and action verbs.
type Lexicon struct {
	phrases []string
	verbs   map[string]struct{}
}

// NewLexicon normalizes and indexes the given phrases and verbs.
func NewLexicon(phrases, verbs []string) Lexicon {
	l := Lexicon{verbs: make(map[string]struct{}, len(verbs))}
	for _, p := range phrases {
		if n := Normalize(p); n != "" {
			l.phrases = append(l.phrases, n)
		}
	}
	for _, v := range verbs {
		if n := Normalize(v); n != "" {
			l.verbs[n] = struct{}{}
		}
	}
	return l
}

// DefaultLexicon uses DefaultPhrases and DefaultVerbs.
func DefaultLexicon() Lexicon {
	return NewLexicon(DefaultPhrases, DefaultVerbs)
}

// HasPhrase reports whether a phrase occurs in text on token boundaries, so
// "buy now!" and "click to buy now" match "buy now" but "albums" does not
// match "al".
func (l Lexicon) HasPhrase(text string) bool {
	t := Normalize(text)
	if t == "" {
		return false
	}
	padded := " " + t + " "
	for _, p := range l.phrases {
		if strings.Contains(padded, " "+p+" ") {
			return true
		}
	}
	return false
}

// HasVerb reports whether any token of text is an action verb.
func (l Lexicon) HasVerb(text string) bool {
	for _, tok := range strings.Fields(Normalize(text)) {
		if _, ok := l.verbs[tok]; ok {
			return true
		}
	}
	return false
}
