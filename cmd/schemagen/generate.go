package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/lychee-technology/typeschema"
	"github.com/lychee-technology/typeschema/factory"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type generateOptions struct {
	catalog string
	typeID  string
	format  string
	naming  string
	out     string
	strict  bool
	inline  bool
}

func newGenerateFlags(name string, opts *generateOptions) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(os.Stdout)
	flags.Usage = func() {
		fmt.Printf("Usage: schemagen %s [options]\n", name)
		fmt.Println("")
		fmt.Println("Options:")
		flags.PrintDefaults()
	}

	flags.StringVar(&opts.catalog, "catalog", "", "Path to the YAML type catalog (required)")
	flags.StringVar(&opts.typeID, "type", "", "Identity of the catalog type to generate (required)")
	flags.StringVar(&opts.format, "format", "json", "Output format: json, yaml or jsonschema")
	flags.StringVar(&opts.naming, "naming", "camel", "Property naming: camel, identity or snake")
	flags.StringVar(&opts.out, "out", "", "Path to write the output (defaults to stdout)")
	flags.BoolVar(&opts.strict, "strict", false, "Fail when the pass reports warnings")
	flags.BoolVar(&opts.inline, "inline", false, "Inline named schemas into the root where no cycle prevents it")
	return flags
}

func (o *generateOptions) validate() error {
	if o.catalog == "" {
		return fmt.Errorf("-catalog is required")
	}
	if o.typeID == "" {
		return fmt.Errorf("-type is required")
	}
	switch o.format {
	case "json", "yaml", "jsonschema":
	default:
		return fmt.Errorf("unsupported -format %q", o.format)
	}
	return nil
}

func runGenerate(args []string) error {
	var opts generateOptions
	flags := newGenerateFlags("generate", &opts)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := opts.validate(); err != nil {
		return err
	}

	encoded, err := render(&opts)
	if err != nil {
		return err
	}
	return writeOutput(opts.out, encoded)
}

// render runs one generation pass for the requested catalog type and encodes
// the result in the requested format.
func render(opts *generateOptions) ([]byte, error) {
	catalog, err := factory.LoadCatalog(opts.catalog)
	if err != nil {
		return nil, err
	}
	desc, err := catalog.Lookup(typeschema.TypeIdentity(opts.typeID))
	if err != nil {
		return nil, err
	}

	config := typeschema.DefaultConfig()
	config.NamingTransform, err = typeschema.ParseNameTransform(opts.naming)
	if err != nil {
		return nil, err
	}
	if opts.format == "jsonschema" {
		config.RefPrefix = typeschema.DefsRefPrefix
	}

	bundle, diag, err := factory.GenerateBundle(config, desc)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", opts.typeID, err)
	}
	if opts.strict {
		if err := diag.Strict(); err != nil {
			return nil, err
		}
	} else if diag.HasWarnings() {
		zap.S().Warnw("generation produced warnings", "type", opts.typeID, "count", len(diag.Warnings()))
	}

	switch opts.format {
	case "yaml":
		if opts.inline {
			return yaml.Marshal(bundle.Inline())
		}
		return yaml.Marshal(bundle)
	case "jsonschema":
		doc := bundle.ToJSONSchema()
		if _, err := doc.Resolve(&jsonschema.ResolveOptions{}); err != nil {
			return nil, fmt.Errorf("resolve generated JSON Schema: %w", err)
		}
		return json.MarshalIndent(doc, "", "  ")
	default:
		if opts.inline {
			return json.MarshalIndent(bundle.Inline(), "", "  ")
		}
		return json.MarshalIndent(bundle, "", "  ")
	}
}

func writeOutput(path string, encoded []byte) error {
	if path == "" {
		fmt.Println(strings.TrimRight(string(encoded), "\n"))
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	zap.S().Infow("schema written", "output", path)
	return nil
}
