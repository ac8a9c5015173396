package cli

// Exit codes for ditaspace.
const (
	// ExitSuccess means the run completed. Individual files may still have
	// failed; they are reported, not signalled through the exit code.
	ExitSuccess = 0

	// ExitFailure means the command itself failed: bad flags, a missing
	// input path or an invalid configuration.
	ExitFailure = 1
)

// ExitCode maps the error returned by the root command to an exit code.
func ExitCode(err error) int {
	if err != nil {
		return ExitFailure
	}
	return ExitSuccess
}
