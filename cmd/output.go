package cmd

import "io"

// outWriter receives results meant for scripts (version, config, committed subject).
func outWriter() io.Writer {
	return rootCmd.OutOrStdout()
}

// errWriter receives progress, prompts and logs.
func errWriter() io.Writer {
	return rootCmd.ErrOrStderr()
}
