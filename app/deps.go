package app

import (
	"fmt"
	"log"
	"os"

	"rutb/nlp/format/conll"
	"rutb/nlp/format/conllu"
	"rutb/nlp/parser/headfind"
	nlp "rutb/nlp/types"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

var outFormat string

func Deps(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in"}); err != nil {
		return err
	}
	pack, err := LoadPack(langName)
	if err != nil {
		return err
	}
	if allOut {
		ConfigOut(pack)
		log.Printf("Out (%s):\t\t%s", outFormat, outFile)
		log.Println()
	}
	trees, err := ReadTrees(pack)
	if err != nil {
		return err
	}
	if _, err := Annotate(pack, trees); err != nil {
		return err
	}
	graphs := make([]*nlp.DependencyGraph, len(trees))
	for i, t := range trees {
		if graphs[i], err = headfind.Dependencies(t, pack.AnnotationMarks); err != nil {
			return err
		}
	}
	if err := WriteGraphs(graphs); err != nil {
		return err
	}
	if outFile != "" {
		log.Println("Wrote", len(graphs), "in", outFormat, "format to", outFile)
	}
	return nil
}

func WriteGraphs(graphs []*nlp.DependencyGraph) error {
	switch outFormat {
	case "conll":
		sents := conll.Graph2ConllCorpus(graphs)
		if outFile == "" {
			return conll.Write(os.Stdout, sents)
		}
		return conll.WriteFile(outFile, sents)
	case "conllu":
		sents := conllu.Graph2ConllUCorpus(graphs)
		if outFile == "" {
			return conllu.Write(os.Stdout, sents)
		}
		return conllu.WriteFile(outFile, sents)
	default:
		return fmt.Errorf("unknown output format %q", outFormat)
	}
}

func DepsCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Deps,
		UsageLine: "deps <file options> [arguments]",
		Short:     "convert constituency trees to head dependencies",
		Long: `
convert constituency trees to unlabeled head dependencies in CoNLL format;
each dependent is labeled with the base category of its maximal projection

	$ ./rutb deps -in <trees> [-lang ru|ru-ftb|<pack.yaml>] [-format conll|conllu] [-out <file>] [options]

`,
		Flag: *flag.NewFlagSet("deps", flag.ExitOnError),
	}
	addCorpusFlags(cmd)
	cmd.Flag.StringVar(&outFile, "out", "", "Output CoNLL file (default stdout)")
	cmd.Flag.StringVar(&outFormat, "format", "conll", "Output format (conll|conllu)")
	return cmd
}
