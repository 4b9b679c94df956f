package display

import (
	"fmt"
	"io"

	"github.com/Camier/MinerOUI/internal/logging"
)

// PrintBanner prints the ASCII art banner to w; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	if logging.Magenta != "" {
		fmt.Fprint(w, logging.Magenta)
	}
	fmt.Fprint(w, `           _                 __          __       __
  __ _  (_)__  ___ ____   / /  ___ _  / /_____/ /
 /  ' \/ / _ \/ -_) __/  / _ \/ _ `+"`"+`/ / __/ __/ _ \
/_/_/_/_/_//_/\__/_/    /_.__/\_,_/  \__/\__/_//_/
`)
	if logging.Magenta != "" {
		fmt.Fprintln(w, logging.NC)
	}
}
