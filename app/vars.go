package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"rutb/nlp/format/bracketed"
	"rutb/nlp/lang"
	"rutb/nlp/parser/headfind"
	nlp "rutb/nlp/types"
	"rutb/util"

	"github.com/gonuts/commander"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

var (
	allOut bool = true

	// processing options
	CPUs   int
	strict bool
	limit  int

	// file names
	langName    string
	input       string
	inputGold   string
	outFile     string
	metricsFile string
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		log.Println("Error accessing file", filename)
		log.Println(err)
		return false
	}
	return true
}

func VerifyFlags(cmd *commander.Command, required []string) error {
	for _, flag := range required {
		f := cmd.Flag.Lookup(flag)
		if f == nil || f.Value.String() == "" {
			cmd.Usage()
			return fmt.Errorf("required flag -%s not set", flag)
		}
	}
	return nil
}

// addCorpusFlags registers the flags shared by commands that annotate
// a treebank
func addCorpusFlags(cmd *commander.Command) {
	cmd.Flag.StringVar(&langName, "lang", "ru", "Language pack name or YAML pack file")
	cmd.Flag.StringVar(&input, "in", "", "Input bracketed tree files (comma separated, ** globs allowed)")
	cmd.Flag.BoolVar(&strict, "strict", false, "Fail on head rule tables that redefine a category")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit number of trees read")
	cmd.Flag.StringVar(&metricsFile, "metrics", "", "Optional - write head decision metrics (Prometheus text format)")
}

func LoadPack(name string) (*lang.Pack, error) {
	pack, err := lang.Load(name, strict)
	if err != nil {
		return nil, err
	}
	for _, o := range pack.Rules.Overwrites() {
		log.Printf("Warning: %s head rules redefined, %v discarded in favor of %v", o.Category, o.Previous, o.Current)
	}
	return pack, nil
}

func ConfigOut(pack *lang.Pack) {
	log.Println("Configuration")
	log.Printf("Language Pack:\t\t%s", pack.Name)
	log.Printf("Head Rules:\t\t%d categories", pack.Rules.Len())
	log.Printf("Default Rule:\t\t%v", pack.DefaultRule)
	log.Printf("Start Symbols:\t\t%s", strings.Join(pack.StartSymbols, " "))
	log.Printf("Strict:\t\t\t%v", strict)
	log.Printf("CPUs:\t\t\t%d", CPUs)
	log.Println()
	log.Println("Data")
	log.Printf("Input (trees):\t\t%s", input)
}

func ReadTrees(pack *lang.Pack) ([]*nlp.Tree, error) {
	patterns := strings.Split(input, ",")
	trees, err := bracketed.ReadFiles(patterns, pack.StartSymbol(), limit)
	if err != nil {
		return nil, err
	}
	if allOut {
		log.Println("Read", len(trees), "trees from", input)
	}
	return trees, nil
}

// Annotate percolates heads over all trees concurrently. Trees are
// independent so each worker owns the trees it is handed; the returned
// report is the sum of all per-tree reports.
func Annotate(pack *lang.Pack, trees []*nlp.Tree) (*headfind.Report, error) {
	var (
		registry = prometheus.NewRegistry()
		metrics  *headfind.Metrics
		err      error
	)
	if metricsFile != "" {
		if metrics, err = headfind.NewMetrics(registry); err != nil {
			return nil, err
		}
	}
	finder := pack.HeadFinder(metrics)
	reports := make([]*headfind.Report, len(trees))

	startTime := time.Now()
	g, _ := errgroup.WithContext(context.Background())
	workers := CPUs
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g.SetLimit(workers)
	for i, t := range trees {
		i, t := i, t
		g.Go(func() error {
			report, err := finder.Percolate(t)
			reports[i] = report
			if err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			return nil
		})
	}
	err = g.Wait()

	total := &headfind.Report{}
	for _, r := range reports {
		if r != nil {
			total.Add(r)
		}
	}
	if allOut {
		log.Println("HEADS Total Time:", time.Since(startTime))
		log.Printf("Nodes:\t\t%d", total.Nodes)
		for o := headfind.Outcome(0); o < headfind.NUM_OUTCOMES; o++ {
			log.Printf("  %-8v\t%d", o, total.Outcomes[o])
		}
		for _, cat := range util.SortedKeys(total.Fallbacks) {
			log.Printf("Fallback:\t%s\t%d", cat, total.Fallbacks[cat])
		}
		for _, w := range total.Warnings {
			log.Println("Warning:", w)
		}
	}
	if err != nil {
		return total, err
	}
	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
			return total, err
		}
		log.Println("Wrote metrics to", metricsFile)
	}
	return total, nil
}

func InitCommand(cmd *commander.Command, args []string) {
	maxCPUs := runtime.NumCPU()
	if CPUs > maxCPUs {
		log.Printf("Warning: Number of CPUs capped to all available (%d)", maxCPUs)
		CPUs = 0
	}
	if CPUs <= 0 {
		CPUs = maxCPUs
	}
	runtime.GOMAXPROCS(CPUs)
}

func NewAppWrapCommand(f func(cmd *commander.Command, args []string) error) func(cmd *commander.Command, args []string) error {
	return func(cmd *commander.Command, args []string) error {
		InitCommand(cmd, args)
		return f(cmd, args)
	}
}

func AllCommands() []*commander.Command {
	commands := []*commander.Command{
		HeadsCmd(),
		DepsCmd(),
		HeadEvalCmd(),
		CollinizeCmd(),
		PacksCmd(),
	}
	for _, app := range commands {
		app.Run = NewAppWrapCommand(app.Run)
		app.Flag.IntVar(&CPUs, "cpus", 0, "Max CPUS to use (runtime.GOMAXPROCS); 0 = all")
	}
	return commands
}
