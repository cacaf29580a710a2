// Package lang holds per-language treebank conventions: punctuation
// classes, start symbols, label annotation marks and head rules.
package lang

import (
	"fmt"
	"sort"
	"sync"

	"rutb/nlp/parser/headfind"
)

// MorphFeatureSpec describes which morphological features a treebank
// carries. It is opaque here and handed to feature extractors as is.
type MorphFeatureSpec interface {
	Features() []string
}

type BasicMorphFeatureSpec []string

func (b BasicMorphFeatureSpec) Features() []string {
	return []string(b)
}

// A Pack is immutable after construction and may be shared freely
type Pack struct {
	Name string

	PunctuationTags               []string
	PunctuationWords              []string
	SentenceFinalPunctuationTags  []string
	SentenceFinalPunctuationWords []string
	StartSymbols                  []string
	AnnotationMarks               headfind.AnnotationMarks
	DefaultRule                   headfind.DefaultRule
	FileExtension                 string
	MorphFeatures                 MorphFeatureSpec
	TestSentence                  []string

	Rules *headfind.RuleTable

	punctTags, punctWords, sfTags, sfWords, start map[string]bool
}

// init builds the lookup sets; every constructor calls it once
func (p *Pack) init() *Pack {
	p.punctTags = toSet(p.PunctuationTags)
	p.punctWords = toSet(p.PunctuationWords)
	p.sfTags = toSet(p.SentenceFinalPunctuationTags)
	p.sfWords = toSet(p.SentenceFinalPunctuationWords)
	p.start = toSet(p.StartSymbols)
	return p
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func (p *Pack) BasicCategory(label string) string {
	return headfind.BasicCategory(label, p.AnnotationMarks)
}

func (p *Pack) IsPunctuationTag(tag string) bool {
	return p.punctTags[p.BasicCategory(tag)]
}

func (p *Pack) IsPunctuationWord(word string) bool {
	return p.punctWords[word]
}

func (p *Pack) IsSentenceFinalPunctuationTag(tag string) bool {
	return p.sfTags[p.BasicCategory(tag)]
}

func (p *Pack) IsSentenceFinalPunctuationWord(word string) bool {
	return p.sfWords[word]
}

func (p *Pack) IsStartSymbol(label string) bool {
	return p.start[p.BasicCategory(label)]
}

// StartSymbol is the first configured start symbol
func (p *Pack) StartSymbol() string {
	if len(p.StartSymbols) == 0 {
		return ""
	}
	return p.StartSymbols[0]
}

// HeadFinder returns a head finder configured by the pack
func (p *Pack) HeadFinder(metrics *headfind.Metrics) *headfind.HeadFinder {
	return headfind.New(headfind.Config{
		Table:        p.Rules,
		Marks:        p.AnnotationMarks,
		Default:      p.DefaultRule,
		StartSymbols: p.StartSymbols,
		Metrics:      metrics,
	})
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(strict bool) (*Pack, error))
)

// Register makes a pack constructor available by name
func Register(name string, ctor func(strict bool) (*Pack, error)) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic("lang: pack registered twice: " + name)
	}
	registry[name] = ctor
}

// Get constructs the named pack. With strict set, head rule tables that
// redefine a category fail to build.
func Get(name string, strict bool) (*Pack, error) {
	registryMu.RLock()
	ctor, exists := registry[name]
	registryMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPack, name)
	}
	return ctor(strict)
}

func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
