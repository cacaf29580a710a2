package app

import (
	"log"
	"os"

	"rutb/nlp/format/bracketed"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func Heads(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in"}); err != nil {
		return err
	}
	pack, err := LoadPack(langName)
	if err != nil {
		return err
	}
	if allOut {
		ConfigOut(pack)
		log.Printf("Out (trees):\t\t%s", outFile)
		log.Println()
	}
	trees, err := ReadTrees(pack)
	if err != nil {
		return err
	}
	if _, err := Annotate(pack, trees); err != nil {
		return err
	}
	if outFile == "" {
		return bracketed.Write(os.Stdout, trees, true)
	}
	if err := bracketed.WriteFile(outFile, trees, true); err != nil {
		return err
	}
	log.Println("Wrote", len(trees), "head annotated trees to", outFile)
	return nil
}

func HeadsCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Heads,
		UsageLine: "heads <file options> [arguments]",
		Short:     "annotate constituency trees with head children",
		Long: `
annotate constituency trees with head children, marking each head with '^'

	$ ./rutb heads -in <trees> [-lang ru|ru-ftb|<pack.yaml>] [-out <file>] [options]

`,
		Flag: *flag.NewFlagSet("heads", flag.ExitOnError),
	}
	addCorpusFlags(cmd)
	cmd.Flag.StringVar(&outFile, "out", "", "Output tree file (default stdout)")
	return cmd
}
