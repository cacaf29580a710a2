package app

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"rutb/nlp/lang"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

var showPack string

func Packs(cmd *commander.Command, args []string) error {
	if showPack == "" {
		for _, name := range lang.Names() {
			fmt.Println(name)
		}
		return nil
	}
	pack, err := LoadPack(showPack)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "name\t%s\n", pack.Name)
	fmt.Fprintf(w, "start symbols\t%s\n", strings.Join(pack.StartSymbols, " "))
	fmt.Fprintf(w, "annotation marks\t%s\n", string(pack.AnnotationMarks))
	fmt.Fprintf(w, "default rule\t%v\n", pack.DefaultRule)
	fmt.Fprintf(w, "punctuation tags\t%s\n", strings.Join(pack.PunctuationTags, " "))
	fmt.Fprintf(w, "file extension\t%s\n", pack.FileExtension)
	if pack.TestSentence != nil {
		fmt.Fprintf(w, "test sentence\t%s\n", strings.Join(pack.TestSentence, " "))
	}
	fmt.Fprintln(w)
	for _, cat := range pack.Rules.Categories() {
		groups, _ := pack.Rules.Lookup(cat)
		strs := make([]string, len(groups))
		for i, g := range groups {
			strs[i] = g.String()
		}
		fmt.Fprintf(w, "%s\t%s\n", cat, strings.Join(strs, " "))
	}
	for _, o := range pack.Rules.Overwrites() {
		fmt.Fprintf(w, "redefined\t%v\n", o)
	}
	return w.Flush()
}

func PacksCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Packs,
		UsageLine: "packs [-lang <name|pack.yaml>]",
		Short:     "list language packs or show a pack's head rules",
		Long: `
list the registered language packs, or show the constants and head rule
table of one pack including categories whose rules were redefined

	$ ./rutb packs [-lang ru|ru-ftb|<pack.yaml>] [-strict]

`,
		Flag: *flag.NewFlagSet("packs", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&showPack, "lang", "", "Language pack name or YAML pack file")
	cmd.Flag.BoolVar(&strict, "strict", false, "Fail on head rule tables that redefine a category")
	return cmd
}
