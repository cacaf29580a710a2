package app

import (
	"fmt"
	"log"
	"strings"

	"rutb/eval"
	"rutb/nlp/format/conll"
	"rutb/nlp/format/conllu"
	"rutb/nlp/parser/headfind"
	nlp "rutb/nlp/types"
	"rutb/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

var (
	scorePunct bool
	topErrors  int
)

func HeadEval(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in", "gold"}); err != nil {
		return err
	}
	if !VerifyExists(inputGold) {
		return fmt.Errorf("gold file %s not found", inputGold)
	}
	pack, err := LoadPack(langName)
	if err != nil {
		return err
	}
	if allOut {
		ConfigOut(pack)
		log.Printf("Gold:\t\t\t%s", inputGold)
		log.Printf("Score punctuation:\t%v", scorePunct)
		log.Println()
	}
	trees, err := ReadTrees(pack)
	if err != nil {
		return err
	}
	gold, err := ReadGold(inputGold)
	if err != nil {
		return err
	}
	if len(gold) != len(trees) {
		return fmt.Errorf("%w: %d trees vs %d gold sentences", eval.ErrMisaligned, len(trees), len(gold))
	}
	if _, err := Annotate(pack, trees); err != nil {
		return err
	}
	var skip func(nlp.TaggedToken) bool
	if !scorePunct {
		skip = func(token nlp.TaggedToken) bool {
			return pack.IsPunctuationTag(token.POS) || pack.IsPunctuationWord(token.Token)
		}
	}
	total := &eval.Total{}
	for i, t := range trees {
		test, err := headfind.Dependencies(t, pack.AnnotationMarks)
		if err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
		result, err := eval.Attachment(test, gold[i], skip)
		if err != nil {
			return fmt.Errorf("sentence %d: %w", i, err)
		}
		total.Add(result)
	}
	log.Printf("Attachment:\t%.4f (%d/%d)", total.Precision(), total.TP, total.TestPositives())
	log.Printf("Exact:\t\t%.4f (%d/%d)", total.ExactMatch(), total.Exact, total.Population)
	if topErrors > 0 {
		log.Println("Errors by head tag:")
		for _, datum := range util.GetTopNStrInt(total.Errors().ByType(), topErrors) {
			log.Printf("  %s\t%d", datum.S, datum.N)
		}
	}
	return nil
}

// ReadGold reads gold dependencies, as CoNLL-U when the file name ends
// with .conllu and as CoNLL-X otherwise
func ReadGold(filename string) ([]*nlp.DependencyGraph, error) {
	if strings.HasSuffix(filename, ".conllu") {
		sents, err := conllu.ReadFile(filename, limit)
		if err != nil {
			return nil, err
		}
		return conllu.ConllU2GraphCorpus(sents), nil
	}
	sents, err := conll.ReadFile(filename, limit)
	if err != nil {
		return nil, err
	}
	return conll.Conll2GraphCorpus(sents), nil
}

func HeadEvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       HeadEval,
		UsageLine: "headeval <file options> [arguments]",
		Short:     "score head rules against gold dependencies",
		Long: `
score head rules by the attachment accuracy of the dependencies they
induce, against a gold CoNLL-X or CoNLL-U (.conllu) file aligned
sentence by sentence

	$ ./rutb headeval -in <trees> -gold <conll|conllu> [-lang ru|ru-ftb|<pack.yaml>] [options]

`,
		Flag: *flag.NewFlagSet("headeval", flag.ExitOnError),
	}
	addCorpusFlags(cmd)
	cmd.Flag.StringVar(&inputGold, "gold", "", "Gold CoNLL-X or CoNLL-U file")
	cmd.Flag.BoolVar(&scorePunct, "punct", false, "Score punctuation tokens")
	cmd.Flag.IntVar(&topErrors, "errors", 10, "Number of most frequent error classes to show")
	return cmd
}
