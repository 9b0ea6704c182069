package main

import "fmt"

type versionCmd struct{ *root }

func (v *versionCmd) Run() error {
	fmt.Fprintf(stdout, "%s version %s", v.program, version)
	if commit != "" {
		fmt.Fprintf(stdout, " (%s", commit)
		if date != "" {
			fmt.Fprintf(stdout, ", %s", date)
		}
		fmt.Fprint(stdout, ")")
	}
	fmt.Fprintln(stdout)
	return nil
}
