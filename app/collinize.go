package app

import (
	"log"
	"os"

	"rutb/nlp/format/bracketed"
	"rutb/nlp/transform"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

var deletePunct bool

func Collinize(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in"}); err != nil {
		return err
	}
	pack, err := LoadPack(langName)
	if err != nil {
		return err
	}
	trees, err := ReadTrees(pack)
	if err != nil {
		return err
	}
	collinizer := &transform.Collinizer{Lang: pack, DeletePunct: deletePunct}
	collinized := collinizer.TransformCorpus(trees)
	if allOut {
		log.Println("Collinized", len(collinized), "of", len(trees), "trees")
	}
	if outFile == "" {
		return bracketed.Write(os.Stdout, collinized, false)
	}
	return bracketed.WriteFile(outFile, collinized, false)
}

func CollinizeCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Collinize,
		UsageLine: "collinize <file options> [arguments]",
		Short:     "normalize trees for evaluation",
		Long: `
normalize trees for evaluation: strip label annotation, remove empty
elements and (optionally) punctuation, drop a unary start symbol root

	$ ./rutb collinize -in <trees> [-lang ru|ru-ftb|<pack.yaml>] [-nopunct] [-out <file>]

`,
		Flag: *flag.NewFlagSet("collinize", flag.ExitOnError),
	}
	addCorpusFlags(cmd)
	cmd.Flag.StringVar(&outFile, "out", "", "Output tree file (default stdout)")
	cmd.Flag.BoolVar(&deletePunct, "nopunct", false, "Remove punctuation pre-terminals")
	return cmd
}
