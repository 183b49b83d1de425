// Command regtool drives an in-memory registry tree from the shell: it
// is a thin cobra CLI over pkg/registry.Service, backing every mutating
// command with a load-modify-save cycle against a registry text file.
package main

func main() {
	execute()
}
