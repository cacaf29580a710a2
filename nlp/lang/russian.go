package lang

import (
	. "rutb/nlp/parser/headfind"
)

// Russian treebank conventions shared by both Russian rule sets
var (
	russianPunctTags       = []string{"''", "``", ".", ":", ",", "PUNCT", "Пункт"}
	russianSFPunctTags     = []string{".", "PUNCT", "Пункт"}
	russianPunctWords      = []string{"=", "*", "/", "\\", "]", "[", "\"", "''", "'", "``", "`", ".", "?", "!", ",", ":", "-", "--", "...", ";", "&quot;"}
	russianSFPunctWords    = []string{".", "!", "?", "?!", "...", "!?"}
	russianStartSymbols    = []string{"ROOT"}
	russianAnnotationMarks = AnnotationMarks{'-', '|', '#', '_'}

	// UD morphological features annotated in the Russian treebanks
	russianMorphFeatures = BasicMorphFeatureSpec{
		"Animacy", "Aspect", "Case", "Degree", "Gender", "Mood",
		"Number", "Person", "Tense", "VerbForm", "Voice",
	}

	russianTestSentence = []string{"Я", "иду", "искать", "."}
)

func init() {
	Register("ru", Russian)
	Register("ru-ftb", RussianFTB)
}

func newRussianPack(name string, rules *RuleTable) *Pack {
	return (&Pack{
		Name:                          name,
		PunctuationTags:               russianPunctTags,
		PunctuationWords:              russianPunctWords,
		SentenceFinalPunctuationTags:  russianSFPunctTags,
		SentenceFinalPunctuationWords: russianSFPunctWords,
		StartSymbols:                  russianStartSymbols,
		AnnotationMarks:               russianAnnotationMarks,
		DefaultRule:                   LeftmostChild,
		FileExtension:                 "tree",
		MorphFeatures:                 russianMorphFeatures,
		TestSentence:                  russianTestSentence,
		Rules:                         rules,
	}).init()
}

// Russian is the pack for treebanks tagged with UD part-of-speech tags:
// ADJ ADP ADV AUX CCONJ DET INTJ NOUN NUM PART PRON PROPN PUNCT SCONJ SYM VERB X.
//
// ADVP, NP and VP are defined twice; the second definition is the one in
// effect, and both replacements are recorded on the table.
func Russian(strict bool) (*Pack, error) {
	b := NewBuilder(strict)

	b.Define("ROOT", LeftDis("VERB", "NP"))

	b.Define("ADVP", LeftDis("ADV"), Left())
	b.Define("ADVP", RightDis("ADV"), Right())

	b.Define("COORD", Left("CONJ"), Left())

	b.Define("NP", LeftDis("NOUN", "PRON", "NP"))
	b.Define("NP", Right("NP"))

	// right branching, "в лесу"
	b.Define("PP", LeftDis("ADP"))

	b.Define("VP", Left("VERB", "VP"))
	b.Define("VP", Right("VERB", "VP"))

	b.Define("Srel", Left("CONJ"))
	b.Define("Ssub", Left("CONJ"))

	rules, err := b.Build()
	if err != nil {
		return nil, err
	}
	return newRussianPack("ru", rules), nil
}

// RussianFTB is the pack for treebanks using the FTB-style tagset:
// A ADV C CL CS D ET I N P PREF PRO V PUNC, with MW* multiword categories.
//
// VPinf is defined three times; only the last definition is in effect.
func RussianFTB(strict bool) (*Pack, error) {
	b := NewBuilder(strict)

	b.Define("ROOT", Left("VN", "NP"), Left())
	b.Define("SENT", Left("VN", "NP"), Left())

	b.Define("AP", Left("A", "V"), RightDis("N", "ET"), Left())
	b.Define("AdP", Right("ADV"), Left("N"), Right())
	b.Define("COORD", LeftDis("C", "CC", "ADV", "PP", "P"), Left())
	b.Define("NP", RightDis("N", "PRO", "NP", "A"), Right("ET"), Right())
	b.Define("PP", Left("P", "PRO", "A", "NP", "V", "PP", "ADV"), Left())
	b.Define("VN", Right("V", "VN"), Right())

	// "хочется смеяться"
	b.Define("VPinf", Left("VERB", "VERB"), Left())
	// "быстро решил вмешаться"
	b.Define("VPinf", Left("VP", "VERB"), Left())
	// "решил не вмешиваться"
	b.Define("VPinf", Left("VERB", "VP"), Left())

	b.Define("VPpart", Left("VN", "V", "AP", "A", "AdP", "VPpart"), Left())
	b.Define("Srel", Left("NP", "PRO", "PP", "C", "ADV"))
	b.Define("Ssub", Left("C", "PC", "ADV", "P", "PP"), Left())
	b.Define("Sint", Left("VN", "V", "NP", "Sint", "Ssub", "PP"), Left())
	b.Define("ADV", Left("ADV", "PP", "P"))

	b.Define("MWD", Left("D"), Left())
	b.Define("MWA", Left("P"), Left("N"), Right("A"), Right())
	b.Define("MWC", Left("C", "CS"), Left())
	b.Define("MWN", Right("N", "ET"), Right())
	b.Define("MWV", Left("V"), Left())
	b.Define("MWP", Left("P", "ADV", "PRO"), Left())
	b.Define("MWPRO", Left("PRO", "CL", "N", "A"), Left())
	b.Define("MWCL", Left("CL"), Right())
	b.Define("MWADV", Left("P", "ADV"), Left())
	b.Define("MWI", Left("N", "ADV", "P"), Left())
	b.Define("MWET", Left("ET", "N"), Left())

	rules, err := b.Build()
	if err != nil {
		return nil, err
	}
	return newRussianPack("ru-ftb", rules), nil
}
