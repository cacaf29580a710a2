package lang

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"rutb/nlp/parser/headfind"

	"gopkg.in/yaml.v3"
)

// PackFile is the YAML form of a language pack
type PackFile struct {
	Name                          string     `yaml:"name"`
	PunctuationTags               []string   `yaml:"punctuation_tags"`
	PunctuationWords              []string   `yaml:"punctuation_words"`
	SentenceFinalPunctuationTags  []string   `yaml:"sentence_final_tags"`
	SentenceFinalPunctuationWords []string   `yaml:"sentence_final_words"`
	StartSymbols                  []string   `yaml:"start_symbols"`
	AnnotationMarks               string     `yaml:"annotation_marks"`
	DefaultRule                   string     `yaml:"default_rule"`
	FileExtension                 string     `yaml:"file_extension"`
	MorphFeatures                 []string   `yaml:"morph_features"`
	TestSentence                  []string   `yaml:"test_sentence"`
	Strict                        bool       `yaml:"strict"`
	Rules                         []RuleSpec `yaml:"rules"`
}

// RuleSpec defines (or with Append, extends) the rule groups of a category.
// Each group is a direction token followed by candidate categories.
type RuleSpec struct {
	Category string     `yaml:"category"`
	Append   bool       `yaml:"append"`
	Groups   [][]string `yaml:"groups"`
}

func Read(reader io.Reader, strict bool) (*Pack, error) {
	var file PackFile
	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPack, err)
	}
	return file.Pack(strict)
}

func ReadFile(filename string, strict bool) (*Pack, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	pack, err := Read(bytes.NewReader(data), strict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return pack, nil
}

// Pack builds the language pack; strict overrides a false Strict field
func (f *PackFile) Pack(strict bool) (*Pack, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrBadPack)
	}
	defaultRule := headfind.LeftmostChild
	if f.DefaultRule != "" {
		var err error
		if defaultRule, err = headfind.ParseDefaultRule(f.DefaultRule); err != nil {
			return nil, err
		}
	}
	b := headfind.NewBuilder(strict || f.Strict)
	for _, spec := range f.Rules {
		if spec.Category == "" {
			return nil, fmt.Errorf("%w: rule without category", ErrBadPack)
		}
		var err error
		if spec.Append {
			err = b.AppendTokens(spec.Category, spec.Groups)
		} else {
			err = b.DefineTokens(spec.Category, spec.Groups)
		}
		if err != nil {
			return nil, err
		}
	}
	rules, err := b.Build()
	if err != nil {
		return nil, err
	}
	marks := headfind.AnnotationMarks(f.AnnotationMarks)
	if f.AnnotationMarks == "" {
		marks = headfind.DefaultAnnotationMarks
	}
	var morph MorphFeatureSpec
	if f.MorphFeatures != nil {
		morph = BasicMorphFeatureSpec(f.MorphFeatures)
	}
	return (&Pack{
		Name:                          f.Name,
		PunctuationTags:               f.PunctuationTags,
		PunctuationWords:              f.PunctuationWords,
		SentenceFinalPunctuationTags:  f.SentenceFinalPunctuationTags,
		SentenceFinalPunctuationWords: f.SentenceFinalPunctuationWords,
		StartSymbols:                  f.StartSymbols,
		AnnotationMarks:               marks,
		DefaultRule:                   defaultRule,
		FileExtension:                 f.FileExtension,
		MorphFeatures:                 morph,
		TestSentence:                  f.TestSentence,
		Rules:                         rules,
	}).init(), nil
}

// Load returns a registered pack by name, or reads nameOrPath as a YAML
// pack file when no pack of that name is registered.
func Load(nameOrPath string, strict bool) (*Pack, error) {
	registryMu.RLock()
	_, registered := registry[nameOrPath]
	registryMu.RUnlock()
	if registered {
		return Get(nameOrPath, strict)
	}
	if _, err := os.Stat(nameOrPath); err != nil {
		return nil, fmt.Errorf("%w: %q is neither a registered pack nor a readable file", ErrUnknownPack, nameOrPath)
	}
	return ReadFile(nameOrPath, strict)
}
