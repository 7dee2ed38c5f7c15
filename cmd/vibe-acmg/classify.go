package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inodb/vibe-acmg/internal/engine"
	"github.com/inodb/vibe-acmg/internal/evcache"
	"github.com/inodb/vibe-acmg/internal/evidence"
	"github.com/inodb/vibe-acmg/internal/resolve"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// caseFile is the on-disk shape of one variant's observations.
type caseFile struct {
	Gene        string  `json:"gene" yaml:"gene"`
	Chromosome  string  `json:"chromosome" yaml:"chromosome"`
	Position    int64   `json:"position" yaml:"position"`
	Ref         string  `json:"ref" yaml:"ref"`
	Alt         string  `json:"alt" yaml:"alt"`
	Consequence string  `json:"consequence" yaml:"consequence"`
	HGVSc       string  `json:"hgvsc,omitempty" yaml:"hgvsc,omitempty"`
	HGVSp       string  `json:"hgvsp,omitempty" yaml:"hgvsp,omitempty"`
	Inheritance string  `json:"inheritance,omitempty" yaml:"inheritance,omitempty"`
	Zygosity    string  `json:"zygosity,omitempty" yaml:"zygosity,omitempty"`

	Population *variant.PopulationObservation `json:"population,omitempty" yaml:"population,omitempty"`
	Predictors map[string]float64             `json:"predictors,omitempty" yaml:"predictors,omitempty"`
	Pedigree   *variant.PedigreeObservation   `json:"pedigree,omitempty" yaml:"pedigree,omitempty"`
}

func newClassifyCmd(verbose *bool) *cobra.Command {
	var (
		guideline string
		cacheDir  string
		offline   bool
		reputable bool
		dosageURL string
	)

	var batch bool

	cmd := &cobra.Command{
		Use:   "classify <case-file>",
		Short: "Classify a variant from a case file",
		Long:  "Read a variant and its observations from a JSON or YAML case file and print the classification with the assigned evidence codes. With --batch the file holds one JSON case per line.",
		Example: `  vibe-acmg classify case.json
  vibe-acmg classify --guideline 2023 case.yaml
  vibe-acmg classify --batch cohort.jsonl
  vibe-acmg classify --offline case.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			opts := []engine.Option{
				engine.WithLogger(log),
				engine.WithRuleConfig(evidence.Config{EnableReputableCode: reputable}),
			}
			if !offline && dosageURL != "" {
				rest := resolve.NewRESTResolver(dosageURL)
				mem := evcache.New()
				opts = append(opts, engine.WithResolvers(
					&resolve.CachedGeneResolver{Inner: rest, Cache: mem, Version: "1"},
					&resolve.CachedClinVarResolver{Inner: rest, Cache: mem, Version: "1"},
				))
			}
			if cacheDir != "" {
				store, err := evcache.OpenStore(cacheDir + "/evidence.duckdb")
				if err != nil {
					return err
				}
				defer store.Close()
				opts = append(opts, engine.WithAuditStore(store))
			}

			ev := engine.New(opts...)
			if batch {
				return runBatch(cmd.Context(), ev, args[0], variant.Guideline(guideline))
			}
			cf, err := readCaseFile(args[0])
			if err != nil {
				return err
			}
			in, err := cf.toInputs()
			if err != nil {
				return err
			}
			res, err := ev.Evaluate(cmd.Context(), in, variant.Guideline(guideline))
			if err != nil {
				return err
			}
			return printResult(res)
		},
	}

	cmd.Flags().StringVar(&guideline, "guideline", string(variant.Guideline2015), "Guideline revision: 2015 or 2023")
	cmd.Flags().BoolVar(&batch, "batch", false, "Treat the input as one JSON case per line")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", viper.GetString("cache.dir"), "Directory for the evidence cache and audit trail")
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip external lookups; use built-in gene lists only")
	cmd.Flags().BoolVar(&reputable, "reputable-source", viper.GetBool("evidence.reputable_source"), "Assign reputable-source codes from prior submissions")
	cmd.Flags().StringVar(&dosageURL, "knowledge-url", viper.GetString("knowledge.url"), "Base URL for gene dosage and assertion lookups")

	return cmd
}

// toInputs validates the case file and builds evaluator inputs.
func (cf *caseFile) toInputs() (engine.Inputs, error) {
	v, err := variant.New(cf.Gene, cf.Chromosome, cf.Position, cf.Ref, cf.Alt, variant.Consequence(cf.Consequence))
	if err != nil {
		return engine.Inputs{}, err
	}
	v.HGVSc = cf.HGVSc
	v.HGVSp = cf.HGVSp
	if cf.Inheritance != "" {
		v.Inheritance = variant.Inheritance(cf.Inheritance)
	}
	if cf.Zygosity != "" {
		v.Zygosity = variant.Zygosity(cf.Zygosity)
	}
	return engine.Inputs{
		Variant:    v,
		Population: cf.Population,
		Predictors: cf.Predictors,
		Pedigree:   cf.Pedigree,
	}, nil
}

// runBatch streams JSON-lines cases through the worker pool and prints
// results in input order.
func runBatch(ctx context.Context, ev *engine.Evaluator, path string, g variant.Guideline) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()

	items := make(chan engine.WorkItem)
	errc := make(chan error, 1)
	go func() {
		defer close(items)
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 1<<20), 1<<20)
		seq := 0
		for sc.Scan() {
			line := bytes.TrimSpace(sc.Bytes())
			if len(line) == 0 {
				continue
			}
			var cf caseFile
			if err := json.Unmarshal(line, &cf); err != nil {
				errc <- fmt.Errorf("parse batch line %d: %w", seq+1, err)
				return
			}
			in, err := cf.toInputs()
			if err != nil {
				errc <- fmt.Errorf("batch line %d: %w", seq+1, err)
				return
			}
			items <- engine.WorkItem{Seq: seq, Inputs: in}
			seq++
		}
		errc <- sc.Err()
	}()

	results := ev.EvaluateAll(ctx, items, g, 0)
	collectErr := engine.OrderedCollect(results, func(r engine.WorkResult) error {
		if r.Err != nil {
			return r.Err
		}
		fmt.Printf("%s\t%s\t%s\n", r.Result.RunID, r.Result.Label, codeTags(r.Result))
		return nil
	})
	if collectErr != nil {
		return collectErr
	}
	return <-errc
}

func codeTags(res *variant.ClassificationResult) string {
	tags := make([]string, len(res.Codes))
	for i, c := range res.Codes {
		tags[i] = string(c.Tag)
	}
	return strings.Join(tags, ",")
}

func readCaseFile(path string) (*caseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case file: %w", err)
	}
	var cf caseFile
	if json.Valid(data) {
		if err := json.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse case file: %w", err)
		}
		return &cf, nil
	}
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse case file: %w", err)
	}
	return &cf, nil
}

func printResult(res *variant.ClassificationResult) error {
	fmt.Printf("Classification: %s (guideline %s)\n", res.Label, res.Guideline)
	fmt.Printf("Run: %s\n", res.RunID)
	if len(res.Codes) == 0 {
		fmt.Println("No evidence codes assigned.")
	}
	for _, c := range res.Codes {
		fmt.Printf("  %-5s %-18s %s\n", c.Tag, c.Strength, c.Justification)
	}
	for _, reason := range res.Indeterminate {
		fmt.Printf("  note: %s\n", reason)
	}
	return nil
}
