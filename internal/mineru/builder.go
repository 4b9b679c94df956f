package mineru

import "github.com/Camier/MinerOUI/internal/config"

// Build returns the argv for converting input into outDir. args[0] is the
// executable.
func Build(executable, input, outDir string, mode config.ProcessMode) []string {
	return []string{
		executable,
		"-p", input,
		"-o", outDir,
		"-m", string(mode),
	}
}
