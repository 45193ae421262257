package main

import (
	"fmt"
	"text/tabwriter"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/yamlutil"
)

// styleListing is the YAML shape printed by "styles --yaml".
type styleListing struct {
	Styles     []styleListingEntry `yaml:"styles"`
	CodeStyles []string            `yaml:"codeStyles"`
}

type styleListingEntry struct {
	Name      string `yaml:"name"`
	Label     string `yaml:"label"`
	CodeStyle string `yaml:"codeStyle"`
	BuiltIn   bool   `yaml:"builtIn"`
}

// runStylesCmd lists the preview styles and the available code styles.
func runStylesCmd(args []string, env *Environment) error {
	flags, err := parseStylesFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}

	assetPath := flags.assetPath
	if assetPath == "" {
		cfg, err := resolveConfig(flags.common, nil)
		if err != nil {
			return err
		}
		assetPath = cfg.Assets.BasePath
	}

	catalog, err := mdpreview.NewStyleCatalog(assetPath)
	if err != nil {
		return err
	}
	styles, err := catalog.Styles()
	if err != nil {
		return err
	}

	if flags.yaml {
		listing := styleListing{CodeStyles: mdpreview.CodeStyleNames()}
		for _, s := range styles {
			listing.Styles = append(listing.Styles, styleListingEntry{
				Name:      s.Name,
				Label:     s.Label,
				CodeStyle: s.CodeStyle,
				BuiltIn:   s.BuiltIn,
			})
		}
		data, err := yamlutil.Marshal(listing)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(data)
		return err
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLABEL\tCODE STYLE\tSOURCE")
	for _, s := range styles {
		source := "custom"
		if s.BuiltIn {
			source = "built-in"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, s.Label, s.CodeStyle, source)
	}
	return tw.Flush()
}
