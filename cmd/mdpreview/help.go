package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Live preview a markdown file in the browser")
	fmt.Fprintln(w, "  render     Render a markdown file to HTML")
	fmt.Fprintln(w, "  export     Export a markdown file to HTML or PDF")
	fmt.Fprintln(w, "  styles     List preview and code styles")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpreview help <command>' for details on a specific command.")
}

// printPreviewFlags prints the rendering flags shared by several commands.
func printPreviewFlags(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -s, --style <name>        Preview style (see 'mdpreview styles')")
	fmt.Fprintln(w, "      --code-style <name>   Chroma style for code blocks")
	fmt.Fprintln(w, "      --highlight           Highlight fenced code (default true)")
	fmt.Fprintln(w, "      --math                Enable MathJax")
	fmt.Fprintln(w, "      --raw-html            Keep raw HTML, sanitized")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
}

// printCommonFlags prints the flags every command accepts.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview serve <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve a live preview and re-render on every save.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default 127.0.0.1:8080)")
	fmt.Fprintln(w, "      --debounce <d>        Delay grouping save events (default 100ms)")
	fmt.Fprintln(w)
	printPreviewFlags(w)
	printCommonFlags(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview render <file.md|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown to a standalone HTML page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default stdout)")
	fmt.Fprintln(w, "      --toc                 Write the table of contents instead")
	fmt.Fprintln(w, "      --bare                Do not inject the style CSS")
	fmt.Fprintln(w)
	printPreviewFlags(w)
	printCommonFlags(w)
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview export <file.md|-> -o <out.html|out.pdf> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export markdown as HTML or PDF. PDF export needs Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file")
	fmt.Fprintln(w, "  -f, --format <s>          html or pdf (default from extension)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	printPreviewFlags(w)
	printCommonFlags(w)
}

// printStylesUsage prints usage for the styles command.
func printStylesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview styles [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List preview styles from the catalog.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --yaml                Print the catalog and code styles as YAML")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "serve":
		printServeUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "export":
		printExportUsage(env.Stdout)
	case "styles":
		printStylesUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpreview version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdpreview help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
