package mdpreview_test

import (
	"fmt"
	"log"

	"github.com/alnah/go-mdpreview"
)

func Example() {
	conv, err := mdpreview.NewMarkdownConverter(mdpreview.WithTemplate(""))
	if err != nil {
		log.Fatal(err)
	}

	gen := mdpreview.NewGenerator(conv, mdpreview.WithInitialConfig(mdpreview.WorkerConfig{}))
	gen.OnTOCReady(func(toc string) { fmt.Print(toc) })
	if err := gen.Start(); err != nil {
		log.Fatal(err)
	}

	_ = gen.Enqueue("# Intro\n\n## Usage")
	gen.Shutdown()

	// Output:
	// <ul>
	// <li><a href="#intro">Intro</a><ul>
	// <li><a href="#usage">Usage</a></li>
	// </ul>
	// </li>
	// </ul>
}
