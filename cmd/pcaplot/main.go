// Command pcaplot shows a labelled 4-feature dataset projected onto its
// first two principal components.
//
// Usage:
//
//	pcaplot [--input ./result_dogs] [--output plot.png] [--standardize]
package main

import (
	"os"

	"github.com/ezoic/pcaplot/internal/cli"
	"github.com/ezoic/pcaplot/pkg/log"
	"github.com/ezoic/pcaplot/viewer"
)

func main() {
	if err := cli.NewRootCommand(viewer.Show).Execute(); err != nil {
		log.LogError(err, "pcaplot failed")
		os.Exit(1)
	}
}
